package core

import "strings"

// Display geometry of the LED matrix.
const (
	Width  = 128
	Height = 19
)

// Surface is the monochrome pixel buffer every frame is drawn into.
// Coordinates outside the surface are clipped silently: writes are dropped
// and reads return Off.
type Surface struct {
	width  int
	height int
	pix    []Color
}

// NewSurface creates a cleared surface with the display geometry.
func NewSurface() *Surface {
	return &Surface{
		width:  Width,
		height: Height,
		pix:    make([]Color, Width*Height),
	}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.width
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.height
}

// Clear switches every pixel off.
func (s *Surface) Clear() {
	for i := range s.pix {
		s.pix[i] = Off
	}
}

func (s *Surface) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set stores c at (x, y).
func (s *Surface) Set(x, y int, c Color) {
	if !s.inside(x, y) {
		return
	}
	s.pix[y*s.width+x] = c
}

// Get returns the pixel at (x, y).
func (s *Surface) Get(x, y int) Color {
	if !s.inside(x, y) {
		return Off
	}
	return s.pix[y*s.width+x]
}

// Lit reports whether the pixel at (x, y) is on.
func (s *Surface) Lit(x, y int) bool {
	return s.Get(x, y).Lit()
}

// Invert toggles every pixel between Off and On.
func (s *Surface) Invert() {
	for i, c := range s.pix {
		if c.Lit() {
			s.pix[i] = Off
		} else {
			s.pix[i] = On
		}
	}
}

// HLine draws a horizontal line of the given length starting at (x, y).
func (s *Surface) HLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, c)
	}
}

// VLine draws a vertical line of the given length starting at (x, y).
func (s *Surface) VLine(x, y, length int, c Color) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, c)
	}
}

// DrawRect draws the outline of r.
func (s *Surface) DrawRect(r Rect, c Color) {
	if r.Empty() {
		return
	}
	s.HLine(r.X, r.Y, r.W, c)
	s.HLine(r.X, r.Bottom()-1, r.W, c)
	s.VLine(r.X, r.Y, r.H, c)
	s.VLine(r.Right()-1, r.Y, r.H, c)
}

// FillRect fills r.
func (s *Surface) FillRect(r Rect, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		s.HLine(r.X, y, r.W, c)
	}
}

// Blit copies the lit pixels of b with their top-left corner at (x, y).
// Parts of the bitmap that fall outside the surface are clipped.
func (s *Surface) Blit(b *Bitmap, x, y int, c Color) {
	if b == nil {
		return
	}
	for by := 0; by < b.H; by++ {
		for bx := 0; bx < b.W; bx++ {
			if b.At(bx, by) {
				s.Set(x+bx, y+by, c)
			}
		}
	}
}

// DrawText renders text with the small 4x5 font starting at (x, y).
// Unknown runes advance the cursor without drawing.
func (s *Surface) DrawText(x, y int, text string, c Color) {
	s.drawWith(SmallFont, x, y, text, c)
}

// DrawTextCentered renders text with the small font centred horizontally.
func (s *Surface) DrawTextCentered(y int, text string, c Color) {
	s.DrawText((s.width-SmallFont.TextWidth(text))/2, y, text, c)
}

// DrawLargeText renders text with the 5x7 font starting at (x, y).
func (s *Surface) DrawLargeText(x, y int, text string, c Color) {
	s.drawWith(LargeFont, x, y, text, c)
}

// DrawLargeTextCentered renders text with the large font centred horizontally.
func (s *Surface) DrawLargeTextCentered(y int, text string, c Color) {
	s.DrawLargeText((s.width-LargeFont.TextWidth(text))/2, y, text, c)
}

func (s *Surface) drawWith(f *Font, x, y int, text string, c Color) {
	for _, r := range strings.ToUpper(text) {
		if g := f.Glyph(r); g != nil {
			s.Blit(g, x, y, c)
		}
		x += f.Advance
	}
}

// Equal reports whether two surfaces hold the same pixels.
func (s *Surface) Equal(other *Surface) bool {
	if other == nil || s.width != other.width || s.height != other.height {
		return false
	}
	for i := range s.pix {
		if s.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// CopyFrom overwrites s with the pixels of other.
func (s *Surface) CopyFrom(other *Surface) {
	copy(s.pix, other.pix)
}

// String renders the surface as rows of '#' and ' ', joined by newlines.
func (s *Surface) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.width; x++ {
			if s.Lit(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}
