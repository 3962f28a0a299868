package input

import (
	"time"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// TerminalID is the source id of the terminal key source.
const TerminalID = "terminal"

type termKey struct {
	button core.Button
	quit   bool
}

// TerminalKeys is a keyboard source fed by a terminal front-end. Terminals
// report key presses only, so a key counts as down until hold has passed
// without another press; auto-repeat keeps a held key down.
type TerminalKeys struct {
	hold  time.Duration
	keys  chan termKey
	until [core.NumButtons]time.Time
}

// NewTerminalKeys creates a source with the given hold window.
func NewTerminalKeys(hold time.Duration) *TerminalKeys {
	if hold <= 0 {
		hold = 120 * time.Millisecond
	}
	return &TerminalKeys{
		hold: hold,
		keys: make(chan termKey, 64),
	}
}

// Press records a key press. It never blocks; presses beyond the buffer
// are dropped.
func (t *TerminalKeys) Press(b core.Button) {
	select {
	case t.keys <- termKey{button: b}:
	default:
	}
}

// Quit records a quit request.
func (t *TerminalKeys) Quit() {
	select {
	case t.keys <- termKey{quit: true}:
	default:
	}
}

func (t *TerminalKeys) ID() string       { return TerminalID }
func (t *TerminalKeys) Name() string     { return "terminal keyboard" }
func (t *TerminalKeys) Kind() DeviceKind { return KindKeyboard }
func (t *TerminalKeys) Close() error     { return nil }

// Poll drains queued presses and releases keys whose hold window expired.
func (t *TerminalKeys) Poll(now time.Time) ([]core.InputEvent, error) {
	var out []core.InputEvent
	for {
		select {
		case k := <-t.keys:
			if k.quit {
				out = append(out, core.InputEvent{Source: TerminalID, Kind: core.EventQuit, Time: now})
				continue
			}
			if t.until[k.button].IsZero() {
				out = append(out, core.InputEvent{Source: TerminalID, Kind: core.EventButton, Button: k.button, Down: true, Time: now})
			}
			t.until[k.button] = now.Add(t.hold)
		default:
			return t.expire(now, out), nil
		}
	}
}

func (t *TerminalKeys) expire(now time.Time, out []core.InputEvent) []core.InputEvent {
	for i, until := range t.until {
		if until.IsZero() || now.Before(until) {
			continue
		}
		t.until[i] = time.Time{}
		out = append(out, core.InputEvent{Source: TerminalID, Kind: core.EventButton, Button: core.Button(i), Down: false, Time: now})
	}
	return out
}
