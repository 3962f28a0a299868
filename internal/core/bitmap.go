package core

// Bitmap is an immutable monochrome sprite.
type Bitmap struct {
	W, H int
	bits []bool
}

// NewBitmap builds a bitmap from row strings where 'X' or '#' marks a lit
// pixel and anything else is transparent. The width is the longest row.
func NewBitmap(rows ...string) *Bitmap {
	w := 0
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	b := &Bitmap{W: w, H: len(rows), bits: make([]bool, w*len(rows))}
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == 'X' || row[x] == '#' {
				b.bits[y*w+x] = true
			}
		}
	}
	return b
}

// bitmapFromMasks builds a bitmap from per-row bit masks, most significant
// bit on the left.
func bitmapFromMasks(width int, masks ...uint8) *Bitmap {
	b := &Bitmap{W: width, H: len(masks), bits: make([]bool, width*len(masks))}
	for y, m := range masks {
		for x := 0; x < width; x++ {
			if m&(1<<uint(width-1-x)) != 0 {
				b.bits[y*width+x] = true
			}
		}
	}
	return b
}

// At reports whether the pixel at (x, y) is lit. Out of range is false.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || x >= b.W || y < 0 || y >= b.H {
		return false
	}
	return b.bits[y*b.W+x]
}

// Bounds returns the rectangle the bitmap covers when drawn at (x, y).
func (b *Bitmap) Bounds(x, y int) Rect {
	return Rect{X: x, Y: y, W: b.W, H: b.H}
}
