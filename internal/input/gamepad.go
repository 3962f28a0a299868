package input

import (
	"math"
	"time"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

type axisRange struct {
	min, max int32
}

var defaultAxisRange = axisRange{min: -32768, max: 32767}

// GamepadSource reads buttons and axes from an evdev gamepad and maps them
// through a Profile.
type GamepadSource struct {
	id      string
	name    string
	dev     RawDevice
	profile *Profile

	ranges map[uint16]axisRange
	abs    map[uint16]int32
	hat    [2]int32 // last x, y hat values
	axis   core.Axis
}

// NewGamepadSource wraps dev. When dev also implements AbsRanger the real
// axis ranges are used for normalization.
func NewGamepadSource(id, name string, dev RawDevice, profile *Profile) *GamepadSource {
	g := &GamepadSource{
		id:      id,
		name:    name,
		dev:     dev,
		profile: profile,
		ranges:  make(map[uint16]axisRange),
		abs:     make(map[uint16]int32),
	}
	if r, ok := dev.(AbsRanger); ok {
		for _, s := range profile.sticks {
			for _, code := range []uint16{s.x, s.y} {
				if lo, hi, ok := r.AbsRange(code); ok {
					g.ranges[code] = axisRange{min: lo, max: hi}
				}
			}
		}
	}
	return g
}

func (g *GamepadSource) ID() string       { return g.id }
func (g *GamepadSource) Name() string     { return g.name }
func (g *GamepadSource) Kind() DeviceKind { return KindGamepad }
func (g *GamepadSource) Close() error     { return g.dev.Close() }

// Profile returns the profile the pad is mapped through.
func (g *GamepadSource) Profile() *Profile { return g.profile }

// Poll maps pending reports. Stick movement is reported once per poll as a
// single axis event carrying the strongest stick after the deadzone.
func (g *GamepadSource) Poll(now time.Time) ([]core.InputEvent, error) {
	raw, err := g.dev.Read()
	var out []core.InputEvent
	sticksMoved := false

	for _, ev := range raw {
		at := eventTime(ev, now)
		switch ev.Type {
		case evdev.EvKey:
			if ev.Value == evdev.KeyRepeat {
				continue
			}
			if b, ok := g.profile.buttons[ev.Code]; ok {
				out = append(out, g.button(b, ev.Value != 0, at))
			}
		case evdev.EvAbs:
			if g.profile.hasHat && (ev.Code == g.profile.hatX || ev.Code == g.profile.hatY) {
				out = append(out, g.hatEvents(ev.Code, ev.Value, at)...)
				continue
			}
			g.abs[ev.Code] = ev.Value
			sticksMoved = true
		}
	}

	if sticksMoved {
		if a := g.stick(); a != g.axis {
			g.axis = a
			out = append(out, core.InputEvent{Source: g.id, Kind: core.EventAxis, Axis: a, Time: now})
		}
	}
	return out, err
}

func (g *GamepadSource) button(b core.Button, down bool, at time.Time) core.InputEvent {
	return core.InputEvent{Source: g.id, Kind: core.EventButton, Button: b, Down: down, Time: at}
}

// hatEvents converts a hat axis change into d-pad button transitions.
func (g *GamepadSource) hatEvents(code uint16, value int32, at time.Time) []core.InputEvent {
	neg, pos, i := core.ButtonLeft, core.ButtonRight, 0
	if code == g.profile.hatY {
		neg, pos, i = core.ButtonUp, core.ButtonDown, 1
	}
	prev := g.hat[i]
	g.hat[i] = value
	if prev == value {
		return nil
	}

	var out []core.InputEvent
	if prev < 0 {
		out = append(out, g.button(neg, false, at))
	} else if prev > 0 {
		out = append(out, g.button(pos, false, at))
	}
	if value < 0 {
		out = append(out, g.button(neg, true, at))
	} else if value > 0 {
		out = append(out, g.button(pos, true, at))
	}
	return out
}

// stick returns the strongest deflection over the profile's sticks.
func (g *GamepadSource) stick() core.Axis {
	var best core.Axis
	for _, s := range g.profile.sticks {
		a := core.Axis{
			X: g.normalize(s.x),
			Y: g.normalize(s.y),
		}
		if s.invertY {
			a.Y = -a.Y
		}
		if a.Magnitude() > best.Magnitude() {
			best = a
		}
	}
	return best
}

// normalize maps a raw axis value to [-1, 1] and applies the deadzone,
// rescaling the live zone so output starts at 0 just past the deadzone.
func (g *GamepadSource) normalize(code uint16) float64 {
	v, ok := g.abs[code]
	if !ok {
		return 0
	}
	r, ok := g.ranges[code]
	if !ok {
		r = defaultAxisRange
	}
	f := 2*(float64(v)-float64(r.min))/(float64(r.max)-float64(r.min)) - 1
	f = core.ClampF(f, -1, 1)

	dz := g.profile.Deadzone
	if math.Abs(f) <= dz {
		return 0
	}
	return core.Sign(f) * (math.Abs(f) - dz) / (1 - dz)
}
