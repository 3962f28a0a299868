package input

import (
	"time"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

// keyTable maps keyboard codes to logical buttons.
var keyTable = map[uint16]core.Button{
	evdev.KeyEnter:     core.ButtonA,
	evdev.KeyKPEnter:   core.ButtonA,
	evdev.KeyPageUp:    core.ButtonA,
	evdev.KeySpace:     core.ButtonB,
	evdev.KeyX:         core.ButtonX,
	evdev.KeyBackspace: core.ButtonX,
	evdev.KeyY:         core.ButtonY,
	evdev.KeyL:         core.ButtonLB,
	evdev.KeyTab:       core.ButtonLB,
	evdev.KeyS:         core.ButtonStart,
	evdev.KeyUp:        core.ButtonUp,
	evdev.KeyDown:      core.ButtonDown,
	evdev.KeyPageDown:  core.ButtonDown,
	evdev.KeyLeft:      core.ButtonLeft,
	evdev.KeyRight:     core.ButtonRight,
}

// quitKeys end the program.
var quitKeys = map[uint16]bool{
	evdev.KeyEsc: true,
	evdev.KeyQ:   true,
}

// KeyboardSource reads key-down/up events from an evdev keyboard.
type KeyboardSource struct {
	id   string
	name string
	dev  RawDevice
}

// NewKeyboardSource wraps dev.
func NewKeyboardSource(id, name string, dev RawDevice) *KeyboardSource {
	return &KeyboardSource{id: id, name: name, dev: dev}
}

func (k *KeyboardSource) ID() string       { return k.id }
func (k *KeyboardSource) Name() string     { return k.name }
func (k *KeyboardSource) Kind() DeviceKind { return KindKeyboard }
func (k *KeyboardSource) Close() error     { return k.dev.Close() }

// Poll maps pending key events. Auto-repeat is ignored; the Tracker keeps a
// key held until its release arrives.
func (k *KeyboardSource) Poll(now time.Time) ([]core.InputEvent, error) {
	raw, err := k.dev.Read()
	var out []core.InputEvent
	for _, ev := range raw {
		if ev.Type != evdev.EvKey || ev.Value == evdev.KeyRepeat {
			continue
		}
		down := ev.Value == evdev.KeyPressed
		if quitKeys[ev.Code] {
			if down {
				out = append(out, core.InputEvent{Source: k.id, Kind: core.EventQuit, Time: eventTime(ev, now)})
			}
			continue
		}
		b, ok := keyTable[ev.Code]
		if !ok {
			continue
		}
		out = append(out, core.InputEvent{
			Source: k.id,
			Kind:   core.EventButton,
			Button: b,
			Down:   down,
			Time:   eventTime(ev, now),
		})
	}
	return out, err
}
