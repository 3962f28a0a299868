package core

import (
	"math"
	"testing"
)

func TestEaseEndpoints(t *testing.T) {
	curves := []Curve{Linear, EaseInQuad, EaseOutQuad, EaseInOutQuad, EaseInOutSine}
	for _, c := range curves {
		if got := Ease(c, 0); math.Abs(got) > 1e-9 {
			t.Errorf("Ease(%d, 0) = %f, expected 0", c, got)
		}
		if got := Ease(c, 1); math.Abs(got-1) > 1e-9 {
			t.Errorf("Ease(%d, 1) = %f, expected 1", c, got)
		}
	}
}

func TestEaseMonotonic(t *testing.T) {
	curves := []Curve{Linear, EaseInQuad, EaseOutQuad, EaseInOutQuad, EaseInOutSine}
	for _, c := range curves {
		prev := Ease(c, 0)
		for i := 1; i <= 100; i++ {
			v := Ease(c, float64(i)/100)
			if v < prev-1e-12 {
				t.Fatalf("Ease(%d) decreased at p=%.2f", c, float64(i)/100)
			}
			prev = v
		}
	}
}

func TestArcReturnsToZero(t *testing.T) {
	if Ease(Arc, 0) != 0 || Ease(Arc, 1) != 0 {
		t.Error("Arc should start and end at 0")
	}
	if Ease(Arc, 0.5) != 1 {
		t.Errorf("Arc peak = %f, expected 1", Ease(Arc, 0.5))
	}
}

func TestProgressClamps(t *testing.T) {
	if Progress(-3, 10) != 0 || Progress(30, 10) != 1 || Progress(5, 10) != 0.5 {
		t.Error("Progress should clamp to [0, 1]")
	}
	if Progress(1, 0) != 1 {
		t.Error("Progress with zero duration should be complete")
	}
}

func TestInterpolateIsStateless(t *testing.T) {
	a := Interpolate(EaseInOutSine, -2, 2, 7, 20)
	b := Interpolate(EaseInOutSine, -2, 2, 7, 20)
	if a != b {
		t.Error("Interpolate should be a pure function")
	}
}

func TestCueLifecycle(t *testing.T) {
	c := NewCue("flash", 100, 10, Linear)

	if c.Active(99) || !c.Active(100) || !c.Active(109) || c.Active(110) {
		t.Error("Active() should cover [start, start+duration)")
	}
	if c.Done(109) || !c.Done(110) {
		t.Error("Done() should flip at start+duration")
	}
	if v := c.Value(105); v != 0.5 {
		t.Errorf("Value(105) = %f, expected 0.5", v)
	}

	var zero Cue
	if zero.Active(0) {
		t.Error("zero Cue should be inactive")
	}
}
