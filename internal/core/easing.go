package core

import "math"

// Curve selects an easing function.
type Curve uint8

const (
	Linear Curve = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInOutSine
	Arc // 0 -> 1 -> 0 parabola, used for jumps
	Pulse
)

// Progress returns elapsed/duration clamped to [0, 1]. A non-positive
// duration is treated as already complete.
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return ClampF(elapsed/duration, 0, 1)
}

// Ease maps a progress fraction p in [0, 1] through the curve.
func Ease(c Curve, p float64) float64 {
	p = ClampF(p, 0, 1)
	switch c {
	case EaseInQuad:
		return p * p
	case EaseOutQuad:
		return 1 - (1-p)*(1-p)
	case EaseInOutQuad:
		if p < 0.5 {
			return 2 * p * p
		}
		return 1 - 2*(1-p)*(1-p)
	case EaseInOutSine:
		return 0.5 - 0.5*math.Cos(math.Pi*p)
	case Arc:
		return 4 * p * (1 - p)
	case Pulse:
		return math.Sin(math.Pi * p)
	default:
		return p
	}
}

// Interpolate returns the eased value between from and to after elapsed of
// duration units.
func Interpolate(c Curve, from, to, elapsed, duration float64) float64 {
	return from + (to-from)*Ease(c, Progress(elapsed, duration))
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Cue is a transient animation that starts at a tick and lasts a fixed
// number of ticks. The zero Cue is inactive.
type Cue struct {
	Kind     string
	Start    uint64
	Duration uint64
	Curve    Curve
}

// NewCue starts a cue at tick start.
func NewCue(kind string, start, duration uint64, c Curve) Cue {
	return Cue{Kind: kind, Start: start, Duration: duration, Curve: c}
}

// Active reports whether the cue is running at tick.
func (c Cue) Active(tick uint64) bool {
	return c.Duration > 0 && tick >= c.Start && tick < c.Start+c.Duration
}

// Done reports whether the cue has finished by tick.
func (c Cue) Done(tick uint64) bool {
	return tick >= c.Start+c.Duration
}

// Value returns the eased progress of the cue at tick.
func (c Cue) Value(tick uint64) float64 {
	if tick < c.Start {
		return Ease(c.Curve, 0)
	}
	return Ease(c.Curve, Progress(float64(tick-c.Start), float64(c.Duration)))
}
