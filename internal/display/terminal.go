package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// cursorHome moves the cursor to the top-left corner.
const cursorHome = "\x1b[H"

// FrameWriter receives rendered terminal frames.
type FrameWriter interface {
	WriteFrame(frame string) error
}

// StreamWriter writes frames to a raw stream, homing the cursor first so
// each frame overdraws the previous one.
type StreamWriter struct {
	W io.Writer
}

// WriteFrame implements FrameWriter.
func (sw StreamWriter) WriteFrame(frame string) error {
	_, err := io.WriteString(sw.W, cursorHome+frame+"\n")
	return err
}

// FrameWriterFunc adapts a function to FrameWriter.
type FrameWriterFunc func(frame string) error

// WriteFrame implements FrameWriter.
func (f FrameWriterFunc) WriteFrame(frame string) error { return f(frame) }

// Terminal renders frames as text. Unchanged frames are not redrawn.
type Terminal struct {
	w      FrameWriter
	styles Styles

	mu    sync.Mutex
	last  *core.Surface
	drawn int
}

// NewTerminal creates a terminal sink writing through w.
func NewTerminal(w FrameWriter, styles Styles) *Terminal {
	return &Terminal{w: w, styles: styles}
}

// Name implements Sink.
func (t *Terminal) Name() string { return "terminal" }

// Present implements Sink.
func (t *Terminal) Present(s *core.Surface) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.last != nil && t.last.Equal(s) {
		return nil
	}
	if err := t.w.WriteFrame(RenderSurface(s, t.styles)); err != nil {
		return fmt.Errorf("display: terminal: %w", err)
	}
	if t.last == nil {
		t.last = core.NewSurface()
	}
	t.last.CopyFrom(s)
	t.drawn++
	return nil
}

// Drawn returns how many frames were actually written.
func (t *Terminal) Drawn() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.drawn
}

// Close implements Sink.
func (t *Terminal) Close() error { return nil }
