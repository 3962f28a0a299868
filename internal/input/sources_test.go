package input

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

func TestKeyboardMapsKeys(t *testing.T) {
	dev := &fakeDevice{}
	kb := NewKeyboardSource("kbd#1", "kbd", dev)
	now := time.Unix(100, 0)

	dev.push(
		key(evdev.KeyEnter, evdev.KeyPressed),
		key(evdev.KeySpace, evdev.KeyPressed),
		key(evdev.KeySpace, evdev.KeyRepeat),
		key(evdev.KeyLeft, evdev.KeyReleased),
		key(999, evdev.KeyPressed),
		abs(evdev.AbsX, 10),
	)
	evs, err := kb.Poll(now)
	require.NoError(t, err)
	require.Len(t, evs, 3)

	assert.Equal(t, core.ButtonA, evs[0].Button)
	assert.True(t, evs[0].Down)
	assert.Equal(t, now, evs[0].Time)
	assert.Equal(t, core.ButtonB, evs[1].Button)
	assert.Equal(t, core.ButtonLeft, evs[2].Button)
	assert.False(t, evs[2].Down)
	for _, ev := range evs {
		assert.Equal(t, "kbd#1", ev.Source)
	}
}

func TestKeyboardQuitKeys(t *testing.T) {
	dev := &fakeDevice{}
	kb := NewKeyboardSource("kbd#1", "kbd", dev)

	dev.push(key(evdev.KeyQ, evdev.KeyPressed), key(evdev.KeyQ, evdev.KeyReleased), key(evdev.KeyEsc, evdev.KeyPressed))
	evs, err := kb.Poll(time.Now())
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, core.EventQuit, evs[0].Kind)
	assert.Equal(t, core.EventQuit, evs[1].Kind)
}

func TestKeyboardReturnsReadError(t *testing.T) {
	dev := &fakeDevice{err: errors.New("no such device")}
	dev.push(key(evdev.KeyEnter, evdev.KeyPressed))
	kb := NewKeyboardSource("kbd#1", "kbd", dev)

	evs, err := kb.Poll(time.Now())
	assert.Error(t, err)
	assert.Len(t, evs, 1)
}

func xboxProfile(t *testing.T) *Profile {
	t.Helper()
	p, ok := DefaultProfiles().Get("xbox")
	require.True(t, ok)
	return p
}

func TestGamepadButtonsAndHat(t *testing.T) {
	dev := &fakeDevice{}
	pad := NewGamepadSource("pad#1", "Xbox Wireless Controller", dev, xboxProfile(t))

	dev.push(key(evdev.BtnSouth, evdev.KeyPressed), key(evdev.BtnTL, evdev.KeyPressed), key(evdev.BtnMode, evdev.KeyPressed))
	evs, err := pad.Poll(time.Now())
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, core.ButtonA, evs[0].Button)
	assert.Equal(t, core.ButtonLB, evs[1].Button)

	dev.push(abs(evdev.AbsHat0X, -1))
	evs, _ = pad.Poll(time.Now())
	require.Len(t, evs, 1)
	assert.Equal(t, core.ButtonLeft, evs[0].Button)
	assert.True(t, evs[0].Down)

	// Swinging the hat straight across releases one side and presses the other.
	dev.push(abs(evdev.AbsHat0X, 1))
	evs, _ = pad.Poll(time.Now())
	require.Len(t, evs, 2)
	assert.Equal(t, core.ButtonLeft, evs[0].Button)
	assert.False(t, evs[0].Down)
	assert.Equal(t, core.ButtonRight, evs[1].Button)
	assert.True(t, evs[1].Down)

	dev.push(abs(evdev.AbsHat0X, 0), abs(evdev.AbsHat0Y, 1))
	evs, _ = pad.Poll(time.Now())
	require.Len(t, evs, 2)
	assert.Equal(t, core.ButtonRight, evs[0].Button)
	assert.False(t, evs[0].Down)
	assert.Equal(t, core.ButtonDown, evs[1].Button)
}

func TestGamepadStickDeadzone(t *testing.T) {
	dev := &fakeDevice{}
	pad := NewGamepadSource("pad#1", "pad", dev, xboxProfile(t))

	// Inside the 0.2 deadzone: no axis event.
	dev.push(abs(evdev.AbsX, 3000), abs(evdev.AbsY, -3000))
	evs, err := pad.Poll(time.Now())
	require.NoError(t, err)
	assert.Empty(t, evs)

	dev.push(abs(evdev.AbsX, 32767))
	evs, _ = pad.Poll(time.Now())
	require.Len(t, evs, 1)
	assert.Equal(t, core.EventAxis, evs[0].Kind)
	assert.InDelta(t, 1.0, evs[0].Axis.X, 1e-3)
	assert.InDelta(t, 0.0, evs[0].Axis.Y, 1e-9)

	// Unchanged reports produce nothing.
	dev.push(abs(evdev.AbsX, 32767))
	evs, _ = pad.Poll(time.Now())
	assert.Empty(t, evs)

	dev.push(abs(evdev.AbsX, 0))
	evs, _ = pad.Poll(time.Now())
	require.Len(t, evs, 1)
	assert.Equal(t, core.Axis{}, evs[0].Axis)
}

func TestGamepadUsesStrongestStick(t *testing.T) {
	dev := &fakeDevice{}
	pad := NewGamepadSource("pad#1", "pad", dev, xboxProfile(t))

	dev.push(abs(evdev.AbsX, -20000), abs(evdev.AbsRY, 32767))
	evs, _ := pad.Poll(time.Now())
	require.Len(t, evs, 1)
	assert.InDelta(t, 0.0, evs[0].Axis.X, 1e-9)
	assert.InDelta(t, 1.0, evs[0].Axis.Y, 1e-3)
}

func TestGamepadUsesDeviceRanges(t *testing.T) {
	dev := rangedDevice{&fakeDevice{ranges: map[uint16][2]int32{
		evdev.AbsX: {0, 255},
		evdev.AbsY: {0, 255},
	}}}
	pad := NewGamepadSource("pad#1", "pad", dev, xboxProfile(t))

	dev.push(abs(evdev.AbsX, 0), abs(evdev.AbsY, 128))
	evs, _ := pad.Poll(time.Now())
	require.Len(t, evs, 1)
	assert.InDelta(t, -1.0, evs[0].Axis.X, 1e-9)
	assert.InDelta(t, 0.0, evs[0].Axis.Y, 1e-9)
}

func TestTerminalKeysHoldWindow(t *testing.T) {
	keys := NewTerminalKeys(100 * time.Millisecond)
	start := time.Unix(0, 0)

	keys.Press(core.ButtonA)
	evs, err := keys.Poll(start)
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.True(t, evs[0].Down)

	// Auto-repeat extends the hold without another down event.
	keys.Press(core.ButtonA)
	evs, _ = keys.Poll(start.Add(80 * time.Millisecond))
	assert.Empty(t, evs)

	evs, _ = keys.Poll(start.Add(150 * time.Millisecond))
	assert.Empty(t, evs)

	evs, _ = keys.Poll(start.Add(180 * time.Millisecond))
	require.Len(t, evs, 1)
	assert.Equal(t, core.ButtonA, evs[0].Button)
	assert.False(t, evs[0].Down)
}

func TestTerminalKeysQuit(t *testing.T) {
	keys := NewTerminalKeys(0)
	keys.Quit()
	evs, _ := keys.Poll(time.Now())
	require.Len(t, evs, 1)
	assert.Equal(t, core.EventQuit, evs[0].Kind)
	assert.Equal(t, TerminalID, evs[0].Source)
}

type caps struct {
	ev   map[uint16]bool
	keys map[uint16]bool
	abs  map[uint16]bool
}

func (c caps) HasEventType(ev uint16) bool { return c.ev[ev] }
func (c caps) HasKey(code uint16) bool     { return c.keys[code] }
func (c caps) HasAbs(code uint16) bool     { return c.abs[code] }

func TestClassify(t *testing.T) {
	keyboard := caps{
		ev:   map[uint16]bool{evdev.EvKey: true},
		keys: map[uint16]bool{evdev.KeyA: true, evdev.KeyEnter: true, evdev.KeySpace: true},
	}
	gamepad := caps{
		ev:   map[uint16]bool{evdev.EvKey: true, evdev.EvAbs: true},
		keys: map[uint16]bool{evdev.BtnSouth: true, evdev.BtnStart: true},
	}
	power := caps{
		ev:   map[uint16]bool{evdev.EvKey: true},
		keys: map[uint16]bool{116: true},
	}
	mouse := caps{ev: map[uint16]bool{evdev.EvRel: true}}

	assert.Equal(t, KindKeyboard, Classify(keyboard))
	assert.Equal(t, KindGamepad, Classify(gamepad))
	assert.Equal(t, KindUnknown, Classify(power))
	assert.Equal(t, KindUnknown, Classify(mouse))
}

func TestDescribe(t *testing.T) {
	pad := caps{
		ev:   map[uint16]bool{evdev.EvKey: true, evdev.EvAbs: true},
		keys: map[uint16]bool{evdev.BtnSouth: true, evdev.BtnStart: true},
		abs:  map[uint16]bool{evdev.AbsRX: true, evdev.AbsHat0Y: true},
	}
	assert.Equal(t, []string{"BTN_SOUTH", "BTN_START", "ABS_RX", "ABS_HAT0Y"}, Describe(pad))

	// Axis bits are ignored without EV_ABS.
	pad.ev[evdev.EvAbs] = false
	assert.Equal(t, []string{"BTN_SOUTH", "BTN_START"}, Describe(pad))
}
