package display

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

func testScene() *core.Surface {
	s := core.NewSurface()
	s.DrawTextCentered(1, "GAME OVER", core.On)
	s.HLine(0, core.Height-1, core.Width, core.Dim)
	s.FillRect(core.NewRect(60, 10, 3, 3), core.Accent)
	s.Set(0, 0, core.On)
	s.Set(core.Width-1, 0, core.On)
	return s
}

func TestPack1bpp(t *testing.T) {
	s := core.NewSurface()
	s.Set(0, 0, core.On)
	s.Set(9, 0, core.On)
	s.Set(127, 18, core.Accent)

	buf := Pack(s, DefaultLayout, nil)
	require.Len(t, buf, 16*19)
	assert.Equal(t, byte(0x80), buf[0])
	assert.Equal(t, byte(0x40), buf[1])
	assert.Equal(t, byte(0x01), buf[18*16+15])
}

func TestPackDeeperFormats(t *testing.T) {
	s := core.NewSurface()
	s.Set(1, 1, core.On)

	l8 := Layout{Width: 128, Height: 19, BitsPerPixel: 8, LineLength: 128}
	buf := Pack(s, l8, nil)
	assert.Equal(t, byte(0xff), buf[128+1])
	assert.Equal(t, byte(0), buf[128])

	l16 := Layout{Width: 128, Height: 19, BitsPerPixel: 16, LineLength: 256}
	buf = Pack(s, l16, nil)
	assert.Equal(t, []byte{0xff, 0xff}, buf[256+2:256+4])

	l32 := Layout{Width: 128, Height: 19, BitsPerPixel: 32, LineLength: 512}
	buf = Pack(s, l32, nil)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, buf[512+4:512+8])
}

func TestPackClipsToSmallerPanel(t *testing.T) {
	s := core.NewSurface()
	s.Set(100, 5, core.On)
	l := Layout{Width: 64, Height: 8, BitsPerPixel: 1, LineLength: 8}
	buf := Pack(s, l, make([]byte, 1))
	assert.Len(t, buf, 64)
	assert.Equal(t, make([]byte, 64), buf)
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, DefaultLayout.validate())
	assert.Error(t, Layout{Width: 128, Height: 19, BitsPerPixel: 24, LineLength: 384}.validate())
	assert.Error(t, Layout{Width: 128, Height: 19, BitsPerPixel: 8, LineLength: 64}.validate())
}

func TestFramebufferWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fb0")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	fb, err := OpenFramebuffer(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout, fb.Layout())

	s := testScene()
	require.NoError(t, fb.Present(s))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Pack(s, DefaultLayout, nil), data)

	require.NoError(t, fb.Close())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, DefaultLayout.Size()), data)
}

func TestOpenFramebufferMissing(t *testing.T) {
	_, err := OpenFramebuffer(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func plainStyles(w io.Writer) Styles {
	return NewStyles(lipgloss.NewRenderer(w), DefaultPalette)
}

func TestTerminalRendersBorderedFrame(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(StreamWriter{W: &out}, plainStyles(&out))

	s := testScene()
	require.NoError(t, term.Present(s))
	frame := ansiSeq.ReplaceAllString(out.String(), "")
	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")

	require.Len(t, lines, core.Height+2)
	border := "+" + strings.Repeat("-", core.Width) + "+"
	assert.Equal(t, border, lines[0])
	assert.Equal(t, border, lines[len(lines)-1])
	for _, l := range lines[1 : len(lines)-1] {
		assert.True(t, strings.HasPrefix(l, "|") && strings.HasSuffix(l, "|"))
		assert.Len(t, l, core.Width+2)
	}
}

func TestTerminalSkipsUnchangedFrames(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(StreamWriter{W: &out}, plainStyles(&out))

	s := testScene()
	require.NoError(t, term.Present(s))
	require.NoError(t, term.Present(s))
	assert.Equal(t, 1, term.Drawn())

	s.Set(5, 5, core.On)
	require.NoError(t, term.Present(s))
	assert.Equal(t, 2, term.Drawn())
}

// The framebuffer and the terminal must show the same picture.
func TestFramebufferAndTerminalAgree(t *testing.T) {
	s := testScene()

	var frame string
	term := NewTerminal(FrameWriterFunc(func(f string) error {
		frame = f
		return nil
	}), plainStyles(io.Discard))
	require.NoError(t, term.Present(s))

	lines := strings.Split(ansiSeq.ReplaceAllString(frame, ""), "\n")
	lines = lines[1 : len(lines)-1]
	require.Len(t, lines, core.Height)

	buf := Pack(s, DefaultLayout, nil)
	for y := range core.Height {
		row := lines[y][1 : core.Width+1]
		for x := range core.Width {
			fbLit := buf[y*DefaultLayout.LineLength+x/8]&(0x80>>(x%8)) != 0
			termLit := row[x] == PixelRune
			require.Equal(t, fbLit, termLit, "pixel %d,%d", x, y)
		}
	}
}

type stubSink struct {
	name     string
	err      error
	frames   int
	closed   bool
	closeErr error
}

func (s *stubSink) Name() string { return s.name }
func (s *stubSink) Present(*core.Surface) error {
	s.frames++
	return s.err
}
func (s *stubSink) Close() error {
	s.closed = true
	return s.closeErr
}

func TestBroadcastKeepsPresenting(t *testing.T) {
	bad := &stubSink{name: "bad", err: errors.New("boom")}
	good := &stubSink{name: "good"}
	b, err := NewBroadcast(log.New(io.Discard), bad, good)
	require.NoError(t, err)

	s := core.NewSurface()
	for range 3 {
		assert.NoError(t, b.Present(s))
	}
	assert.Equal(t, 3, good.frames)
	assert.Equal(t, 3, b.Errors("bad"))
	assert.Equal(t, 0, b.Errors("good"))

	good.err = errors.New("also boom")
	assert.Error(t, b.Present(s))

	bad.closeErr = errors.New("close")
	assert.Error(t, b.Close())
	assert.True(t, good.closed)
}

func TestBroadcastNeedsSinks(t *testing.T) {
	_, err := NewBroadcast(nil)
	assert.ErrorIs(t, err, ErrNoSinks)
}
