package display

import (
	"bytes"
	"fmt"
	"os"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// DefaultFramebufferPath is the LED matrix framebuffer device.
const DefaultFramebufferPath = "/dev/fb0"

// Layout describes the memory layout of a framebuffer.
type Layout struct {
	Width        int
	Height       int
	BitsPerPixel int
	LineLength   int // bytes per row
}

// DefaultLayout is used when the device cannot be queried: a 1 bpp
// 128x19 panel with 16 bytes per row.
var DefaultLayout = Layout{Width: core.Width, Height: core.Height, BitsPerPixel: 1, LineLength: core.Width / 8}

// Size returns the number of bytes covered by the layout.
func (l Layout) Size() int { return l.LineLength * l.Height }

func (l Layout) validate() error {
	switch l.BitsPerPixel {
	case 1, 8, 16, 32:
	default:
		return fmt.Errorf("display: unsupported framebuffer depth %d bpp", l.BitsPerPixel)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("display: bad framebuffer size %dx%d", l.Width, l.Height)
	}
	if l.LineLength*8 < l.Width*l.BitsPerPixel {
		return fmt.Errorf("display: line length %d too short for %d px at %d bpp", l.LineLength, l.Width, l.BitsPerPixel)
	}
	return nil
}

// Pack converts s into framebuffer memory for layout l, reusing buf when it
// is large enough. Lit pixels are written full on; 1 bpp rows are packed
// most significant bit first. Pixels outside either area are skipped.
func Pack(s *core.Surface, l Layout, buf []byte) []byte {
	size := l.Size()
	if cap(buf) < size {
		buf = make([]byte, size)
	}
	buf = buf[:size]
	clear(buf)

	w := min(l.Width, s.Width())
	h := min(l.Height, s.Height())
	for y := range h {
		row := buf[y*l.LineLength : (y+1)*l.LineLength]
		for x := range w {
			if !s.Lit(x, y) {
				continue
			}
			switch l.BitsPerPixel {
			case 1:
				row[x/8] |= 0x80 >> (x % 8)
			case 8:
				row[x] = 0xff
			case 16:
				row[2*x], row[2*x+1] = 0xff, 0xff // RGB565 white
			case 32:
				copy(row[4*x:4*x+4], []byte{0xff, 0xff, 0xff, 0xff})
			}
		}
	}
	return buf
}

// Framebuffer writes frames to a Linux framebuffer device.
type Framebuffer struct {
	f      *os.File
	path   string
	layout Layout
	buf    []byte
	last   []byte
}

// OpenFramebuffer opens the device at path and queries its layout. Files
// that do not answer the framebuffer ioctls are treated as DefaultLayout.
func OpenFramebuffer(path string) (*Framebuffer, error) {
	if path == "" {
		path = DefaultFramebufferPath
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("display: open framebuffer: %w", err)
	}
	layout, err := queryLayout(f)
	if err != nil {
		layout = DefaultLayout
	}
	if err := layout.validate(); err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Framebuffer{f: f, path: path, layout: layout}, nil
}

// Name implements Sink.
func (fb *Framebuffer) Name() string { return "framebuffer" }

// Driver returns the id string reported by the framebuffer driver, or ""
// for plain files.
func (fb *Framebuffer) Driver() string { return framebufferID(fb.f) }

// Layout returns the device layout.
func (fb *Framebuffer) Layout() Layout { return fb.layout }

// Present implements Sink. Unchanged frames are not rewritten.
func (fb *Framebuffer) Present(s *core.Surface) error {
	fb.buf = Pack(s, fb.layout, fb.buf)
	if fb.last != nil && bytes.Equal(fb.buf, fb.last) {
		return nil
	}
	if _, err := fb.f.WriteAt(fb.buf, 0); err != nil {
		return fmt.Errorf("display: write %s: %w", fb.path, err)
	}
	fb.last = append(fb.last[:0], fb.buf...)
	return nil
}

// Close blanks the panel and closes the device.
func (fb *Framebuffer) Close() error {
	blank := make([]byte, fb.layout.Size())
	_, werr := fb.f.WriteAt(blank, 0)
	if err := fb.f.Close(); err != nil {
		return err
	}
	if werr != nil {
		return fmt.Errorf("display: blank %s: %w", fb.path, werr)
	}
	return nil
}
