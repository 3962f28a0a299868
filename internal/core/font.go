package core

// Font is a fixed-cell bitmap font.
type Font struct {
	Advance int // horizontal distance between glyph origins
	Height  int
	glyphs  map[rune]*Bitmap
}

// Glyph returns the bitmap for r, or nil when the font has no such glyph.
func (f *Font) Glyph(r rune) *Bitmap {
	return f.glyphs[r]
}

// TextWidth returns the rendered width of text in pixels, without the
// trailing gap after the last glyph.
func (f *Font) TextWidth(text string) int {
	n := len([]rune(text))
	if n == 0 {
		return 0
	}
	return n*f.Advance - 1
}

// SmallFont is the 4x5 font used for scores, captions and menus.
var SmallFont = newMaskFont(4, 5, map[rune][5]uint8{
	'A': {0b0110, 0b1001, 0b1111, 0b1001, 0b1001},
	'B': {0b1110, 0b1001, 0b1110, 0b1001, 0b1110},
	'C': {0b0111, 0b1000, 0b1000, 0b1000, 0b0111},
	'D': {0b1110, 0b1001, 0b1001, 0b1001, 0b1110},
	'E': {0b1111, 0b1000, 0b1110, 0b1000, 0b1111},
	'F': {0b1111, 0b1000, 0b1110, 0b1000, 0b1000},
	'G': {0b0111, 0b1000, 0b1011, 0b1001, 0b0110},
	'H': {0b1001, 0b1001, 0b1111, 0b1001, 0b1001},
	'I': {0b1110, 0b0100, 0b0100, 0b0100, 0b1110},
	'J': {0b0011, 0b0001, 0b0001, 0b1001, 0b0110},
	'K': {0b1001, 0b1010, 0b1100, 0b1010, 0b1001},
	'L': {0b1000, 0b1000, 0b1000, 0b1000, 0b1111},
	'M': {0b1001, 0b1111, 0b1111, 0b1001, 0b1001},
	'N': {0b1001, 0b1101, 0b1011, 0b1001, 0b1001},
	'O': {0b0110, 0b1001, 0b1001, 0b1001, 0b0110},
	'P': {0b1110, 0b1001, 0b1110, 0b1000, 0b1000},
	'Q': {0b0110, 0b1001, 0b1001, 0b1010, 0b0101},
	'R': {0b1110, 0b1001, 0b1110, 0b1010, 0b1001},
	'S': {0b0111, 0b1000, 0b0110, 0b0001, 0b1110},
	'T': {0b1111, 0b0100, 0b0100, 0b0100, 0b0100},
	'U': {0b1001, 0b1001, 0b1001, 0b1001, 0b0110},
	'V': {0b1001, 0b1001, 0b1001, 0b0110, 0b0100},
	'W': {0b1001, 0b1001, 0b1111, 0b1111, 0b1001},
	'X': {0b1001, 0b0110, 0b0110, 0b0110, 0b1001},
	'Y': {0b1001, 0b1001, 0b0110, 0b0100, 0b0100},
	'Z': {0b1111, 0b0001, 0b0110, 0b1000, 0b1111},
	'0': {0b0110, 0b1001, 0b1001, 0b1001, 0b0110},
	'1': {0b0100, 0b1100, 0b0100, 0b0100, 0b1110},
	'2': {0b0110, 0b1001, 0b0010, 0b0100, 0b1111},
	'3': {0b1110, 0b0001, 0b0110, 0b0001, 0b1110},
	'4': {0b1001, 0b1001, 0b1111, 0b0001, 0b0001},
	'5': {0b1111, 0b1000, 0b1110, 0b0001, 0b1110},
	'6': {0b0110, 0b1000, 0b1110, 0b1001, 0b0110},
	'7': {0b1111, 0b0001, 0b0010, 0b0100, 0b1000},
	'8': {0b0110, 0b1001, 0b0110, 0b1001, 0b0110},
	'9': {0b0110, 0b1001, 0b0111, 0b0001, 0b0110},
	'!': {0b0100, 0b0100, 0b0100, 0b0000, 0b0100},
	'?': {0b0110, 0b1001, 0b0010, 0b0000, 0b0100},
	':': {0b0000, 0b0100, 0b0000, 0b0100, 0b0000},
	'-': {0b0000, 0b0000, 0b1111, 0b0000, 0b0000},
	'.': {0b0000, 0b0000, 0b0000, 0b0000, 0b0100},
	'/': {0b0001, 0b0001, 0b0010, 0b0100, 0b1000},
	' ': {},
})

// LargeFont is the 5x7 font used for headlines.
var LargeFont = newRowFont(5, 7, map[rune][]string{
	'A': {" XXX ", "X   X", "X   X", "XXXXX", "X   X", "X   X", "X   X"},
	'D': {"XXXX ", "X   X", "X   X", "X   X", "X   X", "X   X", "XXXX "},
	'E': {"XXXXX", "X    ", "X    ", "XXXX ", "X    ", "X    ", "XXXXX"},
	'G': {" XXX ", "X   X", "X    ", "X XXX", "X   X", "X   X", " XXXX"},
	'I': {"XXXXX", "  X  ", "  X  ", "  X  ", "  X  ", "  X  ", "XXXXX"},
	'K': {"X   X", "X  X ", "X X  ", "XX   ", "X X  ", "X  X ", "X   X"},
	'L': {"X    ", "X    ", "X    ", "X    ", "X    ", "X    ", "XXXXX"},
	'N': {"X   X", "XX  X", "XX  X", "X X X", "X  XX", "X  XX", "X   X"},
	'O': {" XXX ", "X   X", "X   X", "X   X", "X   X", "X   X", " XXX "},
	'P': {"XXXX ", "X   X", "X   X", "XXXX ", "X    ", "X    ", "X    "},
	'R': {"XXXX ", "X   X", "X   X", "XXXX ", "X X  ", "X  X ", "X   X"},
	'S': {" XXXX", "X    ", "X    ", " XXX ", "    X", "    X", "XXXX "},
	'W': {"X   X", "X   X", "X   X", "X X X", "X X X", "XX XX", "X   X"},
	'Y': {"X   X", "X   X", " X X ", "  X  ", "  X  ", "  X  ", "  X  "},
	'!': {"  X  ", "  X  ", "  X  ", "  X  ", "  X  ", "     ", "  X  "},
	' ': {"     ", "     ", "     ", "     ", "     ", "     ", "     "},
})

func newMaskFont(w, h int, masks map[rune][5]uint8) *Font {
	f := &Font{Advance: w + 1, Height: h, glyphs: make(map[rune]*Bitmap, len(masks))}
	for r, m := range masks {
		f.glyphs[r] = bitmapFromMasks(w, m[:h]...)
	}
	return f
}

func newRowFont(w, h int, rows map[rune][]string) *Font {
	f := &Font{Advance: w + 1, Height: h, glyphs: make(map[rune]*Bitmap, len(rows))}
	for r, g := range rows {
		f.glyphs[r] = NewBitmap(g...)
	}
	return f
}
