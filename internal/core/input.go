package core

import (
	"math"
	"time"
)

// Button is a logical button, independent of the physical device that
// produced it.
type Button uint8

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonStart
	ButtonLB

	NumButtons = int(ButtonLB) + 1
)

var buttonNames = [NumButtons]string{"Up", "Down", "Left", "Right", "A", "B", "X", "Y", "Start", "LB"}

// String returns a human-readable name for the button.
func (b Button) String() string {
	if int(b) < NumButtons {
		return buttonNames[b]
	}
	return "Unknown"
}

// ParseButton resolves a button name as written in gamepad profiles.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return Button(i), true
		}
	}
	return 0, false
}

// ButtonState is the edge-detected state of a button during one tick.
type ButtonState uint8

const (
	Idle     ButtonState = iota
	Pressed              // went down this tick
	Held                 // down this tick and the previous one
	Released             // went up this tick
)

// String returns a human-readable name for the state.
func (s ButtonState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pressed:
		return "Pressed"
	case Held:
		return "Held"
	case Released:
		return "Released"
	default:
		return "Unknown"
	}
}

// Transition computes the state of a button from whether it was down on the
// previous tick and whether it is down now.
func Transition(wasDown, isDown bool) ButtonState {
	switch {
	case isDown && wasDown:
		return Held
	case isDown:
		return Pressed
	case wasDown:
		return Released
	}
	return Idle
}

// ButtonStates holds one state per logical button.
type ButtonStates [NumButtons]ButtonState

// Pressed reports whether b went down this tick.
func (bs *ButtonStates) Pressed(b Button) bool {
	return bs[b] == Pressed
}

// Down reports whether b is currently down, pressed or held.
func (bs *ButtonStates) Down(b Button) bool {
	return bs[b] == Pressed || bs[b] == Held
}

// Released reports whether b went up this tick.
func (bs *ButtonStates) Released(b Button) bool {
	return bs[b] == Released
}

// AnyPressed reports whether any button went down this tick.
func (bs *ButtonStates) AnyPressed() bool {
	for _, s := range bs {
		if s == Pressed {
			return true
		}
	}
	return false
}

// AnyDown reports whether any button is pressed or held.
func (bs *ButtonStates) AnyDown() bool {
	for _, s := range bs {
		if s == Pressed || s == Held {
			return true
		}
	}
	return false
}

// Axis is an analog stick position, each component in [-1, 1] with +Y down.
type Axis struct {
	X, Y float64
}

// Magnitude returns the length of the stick vector.
func (a Axis) Magnitude() float64 {
	return math.Hypot(a.X, a.Y)
}

// MaxSlots is the number of controller slots used for gameplay.
const MaxSlots = 2

// Pad is the per-controller view of the input state.
type Pad struct {
	Connected bool
	Buttons   ButtonStates
	Axis      Axis
}

// InputState is the aggregated input for one tick.
type InputState struct {
	Tick uint64

	// Buttons merges every keyboard and every slotted gamepad.
	Buttons ButtonStates

	// Pads holds controller slots 0 and 1.
	Pads [MaxSlots]Pad

	// Keyboard merges all keyboard-like sources.
	Keyboard Pad

	// Quit is set when a quit key was pressed this tick.
	Quit bool
}

// Pressed reports whether b went down this tick on any source.
func (in *InputState) Pressed(b Button) bool {
	return in.Buttons.Pressed(b)
}

// Down reports whether b is down on any source.
func (in *InputState) Down(b Button) bool {
	return in.Buttons.Down(b)
}

// Released reports whether b went up this tick on every source.
func (in *InputState) Released(b Button) bool {
	return in.Buttons.Released(b)
}

// Stick returns the strongest stick deflection over the connected pads.
func (in *InputState) Stick() Axis {
	var best Axis
	for _, p := range in.Pads {
		if p.Connected && p.Axis.Magnitude() > best.Magnitude() {
			best = p.Axis
		}
	}
	return best
}

// EventKind discriminates InputEvent payloads.
type EventKind uint8

const (
	EventButton EventKind = iota
	EventAxis
	EventQuit
)

// InputEvent is one normalized event produced by an input source.
type InputEvent struct {
	Source string
	Kind   EventKind
	Button Button
	Down   bool
	Axis   Axis
	Time   time.Time
}
