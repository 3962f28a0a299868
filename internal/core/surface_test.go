package core

import (
	"strings"
	"testing"
)

func countLit(s *Surface) int {
	n := 0
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Lit(x, y) {
				n++
			}
		}
	}
	return n
}

func TestNewSurface(t *testing.T) {
	s := NewSurface()

	if s.Width() != 128 {
		t.Errorf("Width() = %d, expected 128", s.Width())
	}
	if s.Height() != 19 {
		t.Errorf("Height() = %d, expected 19", s.Height())
	}
	if n := countLit(s); n != 0 {
		t.Errorf("new surface has %d lit pixels, expected 0", n)
	}
}

func TestSurfaceSetGetClipping(t *testing.T) {
	s := NewSurface()

	s.Set(5, 5, On)
	if s.Get(5, 5) != On {
		t.Errorf("Get(5, 5) = %v, expected On", s.Get(5, 5))
	}

	// Out of bounds writes are dropped without panicking.
	s.Set(-1, 0, On)
	s.Set(Width, 0, On)
	s.Set(0, -1, On)
	s.Set(0, Height, On)

	if n := countLit(s); n != 1 {
		t.Errorf("lit pixels = %d, expected 1 after out of bounds writes", n)
	}
	if s.Get(-1, 0) != Off || s.Get(0, Height) != Off {
		t.Error("out of bounds Get should return Off")
	}
}

func TestSurfaceClear(t *testing.T) {
	s := NewSurface()
	s.FillRect(Bounds(), On)
	if n := countLit(s); n != Width*Height {
		t.Fatalf("FillRect(Bounds()) lit %d pixels, expected %d", n, Width*Height)
	}

	s.Clear()
	if n := countLit(s); n != 0 {
		t.Errorf("after Clear() %d pixels lit, expected 0", n)
	}
}

func TestSurfaceBlitClipsPartially(t *testing.T) {
	b := NewBitmap(
		"XXX",
		"X X",
		"XXX",
	)

	tests := []struct {
		name     string
		x, y     int
		expected int
	}{
		{"fully inside", 10, 5, 8},
		{"left edge", -1, 5, 5},
		{"right edge", Width - 2, 5, 5},
		{"top edge", 10, -2, 3},
		{"bottom right corner", Width - 1, Height - 1, 1},
		{"fully outside", Width + 5, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSurface()
			s.Blit(b, tc.x, tc.y, On)
			if n := countLit(s); n != tc.expected {
				t.Errorf("Blit at (%d, %d) lit %d pixels, expected %d", tc.x, tc.y, n, tc.expected)
			}
		})
	}
}

func TestSurfaceDrawRect(t *testing.T) {
	s := NewSurface()
	s.DrawRect(NewRect(0, 0, 4, 3), On)

	// Outline of 4x3 has 10 pixels, interior stays off.
	if n := countLit(s); n != 10 {
		t.Errorf("DrawRect lit %d pixels, expected 10", n)
	}
	if s.Lit(1, 1) {
		t.Error("DrawRect should not fill the interior")
	}
}

func TestSurfaceDrawText(t *testing.T) {
	s := NewSurface()
	s.DrawText(0, 0, "I", On)

	// 'I' is 0b1110, 0b0100 x3, 0b1110
	expected := []string{
		"### ",
		" #  ",
		" #  ",
		" #  ",
		"### ",
	}
	rows := strings.Split(s.String(), "\n")
	for y, want := range expected {
		if got := rows[y][:4]; got != want {
			t.Errorf("row %d = %q, expected %q", y, got, want)
		}
	}
}

func TestSurfaceDrawTextLowercase(t *testing.T) {
	upper := NewSurface()
	upper.DrawText(3, 3, "GO!", On)
	lower := NewSurface()
	lower.DrawText(3, 3, "go!", On)

	if !upper.Equal(lower) {
		t.Error("DrawText should render lowercase as uppercase")
	}
}

func TestFontTextWidth(t *testing.T) {
	if w := SmallFont.TextWidth("GAME OVER"); w != 9*5-1 {
		t.Errorf("TextWidth(GAME OVER) = %d, expected %d", w, 9*5-1)
	}
	if w := SmallFont.TextWidth(""); w != 0 {
		t.Errorf("TextWidth(\"\") = %d, expected 0", w)
	}
	if w := LargeFont.TextWidth("PLAY!"); w != 5*6-1 {
		t.Errorf("large TextWidth(PLAY!) = %d, expected %d", w, 5*6-1)
	}
}

func TestSurfaceStringShape(t *testing.T) {
	s := NewSurface()
	s.Set(0, 0, On)
	s.Set(Width-1, Height-1, Accent)

	rows := strings.Split(s.String(), "\n")
	if len(rows) != Height {
		t.Fatalf("String() has %d rows, expected %d", len(rows), Height)
	}
	if rows[0][0] != '#' || rows[Height-1][Width-1] != '#' {
		t.Error("String() should mark every lit pixel with '#'")
	}
}

func TestSurfaceInvert(t *testing.T) {
	s := NewSurface()
	s.Set(1, 1, On)
	s.Invert()

	if s.Lit(1, 1) {
		t.Error("Invert() should switch lit pixels off")
	}
	if n := countLit(s); n != Width*Height-1 {
		t.Errorf("Invert() lit %d pixels, expected %d", n, Width*Height-1)
	}
}
