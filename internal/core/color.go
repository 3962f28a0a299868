package core

// Color is a small palette index stored per pixel. The LED matrix is
// monochrome, so every non-zero value is a lit pixel there; the terminal
// uses the index to pick a style.
type Color uint8

// Palette entries.
const (
	Off Color = iota
	On
	Accent // highlighted pixels (cursor, ball, food)
	Dim    // secondary detail (ground line, net)
)

// Lit reports whether the pixel is switched on.
func (c Color) Lit() bool {
	return c != Off
}
