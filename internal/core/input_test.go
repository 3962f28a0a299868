package core

import "testing"

func TestTransition(t *testing.T) {
	tests := []struct {
		wasDown, isDown bool
		expected        ButtonState
	}{
		{false, false, Idle},
		{false, true, Pressed},
		{true, true, Held},
		{true, false, Released},
	}

	for _, tc := range tests {
		t.Run(tc.expected.String(), func(t *testing.T) {
			if got := Transition(tc.wasDown, tc.isDown); got != tc.expected {
				t.Errorf("Transition(%v, %v) = %v, expected %v", tc.wasDown, tc.isDown, got, tc.expected)
			}
		})
	}
}

func TestButtonStatesQueries(t *testing.T) {
	var bs ButtonStates
	bs[ButtonA] = Pressed
	bs[ButtonB] = Held
	bs[ButtonX] = Released

	if !bs.Pressed(ButtonA) || bs.Pressed(ButtonB) {
		t.Error("Pressed() should only report buttons that went down this tick")
	}
	if !bs.Down(ButtonA) || !bs.Down(ButtonB) || bs.Down(ButtonX) {
		t.Error("Down() should report pressed and held buttons only")
	}
	if !bs.Released(ButtonX) {
		t.Error("Released() should report X")
	}
	if !bs.AnyPressed() {
		t.Error("AnyPressed() should be true")
	}
	if !bs.AnyDown() {
		t.Error("AnyDown() should be true")
	}

	var held ButtonStates
	held[ButtonRight] = Held
	if held.AnyPressed() || !held.AnyDown() {
		t.Error("a held button is down but not pressed")
	}
	held[ButtonRight] = Released
	if held.AnyDown() {
		t.Error("a released button is not down")
	}
}

func TestParseButton(t *testing.T) {
	for i := 0; i < NumButtons; i++ {
		b := Button(i)
		got, ok := ParseButton(b.String())
		if !ok || got != b {
			t.Errorf("ParseButton(%q) = %v, %v", b.String(), got, ok)
		}
	}
	if _, ok := ParseButton("Turbo"); ok {
		t.Error("ParseButton should reject unknown names")
	}
}

func TestInputStateStickIgnoresDisconnected(t *testing.T) {
	var in InputState
	in.Pads[0] = Pad{Connected: false, Axis: Axis{X: 1}}
	in.Pads[1] = Pad{Connected: true, Axis: Axis{Y: -0.5}}

	if got := in.Stick(); got != (Axis{Y: -0.5}) {
		t.Errorf("Stick() = %+v, expected the connected pad's axis", got)
	}
}

func TestKindForButton(t *testing.T) {
	tests := []struct {
		button Button
		kind   Kind
	}{
		{ButtonA, KindDino},
		{ButtonB, KindPong},
		{ButtonY, KindSnake},
		{ButtonLB, KindDraw},
		{ButtonStart, KindDraw},
	}
	for _, tc := range tests {
		t.Run(tc.button.String(), func(t *testing.T) {
			got, ok := KindForButton(tc.button)
			if !ok || got != tc.kind {
				t.Errorf("KindForButton(%v) = %q, %v, want %q", tc.button, got, ok, tc.kind)
			}
		})
	}
	for _, b := range []Button{ButtonX, ButtonUp, ButtonDown} {
		if k, ok := KindForButton(b); ok {
			t.Errorf("KindForButton(%v) = %q, want none", b, k)
		}
	}
	for _, k := range Kinds() {
		if len(k.MenuButtons()) == 0 {
			t.Errorf("%s has no start-screen button", k)
		}
	}
}
