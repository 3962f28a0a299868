package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// PixelRune is drawn for every lit pixel.
const PixelRune = '#'

// Palette names the lipgloss colours used for lit pixels.
type Palette struct {
	Lit    string
	Accent string
	Dim    string
}

// DefaultPalette is amber on black, close to the LED panel.
var DefaultPalette = Palette{Lit: "#FFB000", Accent: "#FF5F00", Dim: "#7F5800"}

var frameBorder = lipgloss.Border{
	Top:         "-",
	Bottom:      "-",
	Left:        "|",
	Right:       "|",
	TopLeft:     "+",
	TopRight:    "+",
	BottomLeft:  "+",
	BottomRight: "+",
}

// Styles holds the per-colour styles of one renderer.
type Styles struct {
	pixels map[core.Color]lipgloss.Style
	frame  lipgloss.Style
}

// NewStyles builds styles for r. A nil renderer uses the default one.
func NewStyles(r *lipgloss.Renderer, p Palette) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		pixels: map[core.Color]lipgloss.Style{
			core.On:     r.NewStyle().Foreground(lipgloss.Color(p.Lit)),
			core.Accent: r.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
			core.Dim:    r.NewStyle().Foreground(lipgloss.Color(p.Dim)),
		},
		frame: r.NewStyle().Border(frameBorder),
	}
}

// Pixel returns the style of colour c. Unlit colours get a plain style.
func (st Styles) Pixel(c core.Color) lipgloss.Style {
	if style, ok := st.pixels[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Frame returns the +--+ border style drawn around the panel.
func (st Styles) Frame() lipgloss.Style {
	return st.frame
}

// RenderSurface draws s as rows of PixelRune and spaces inside a +--+
// border. Adjacent pixels of the same colour share one styled run.
func RenderSurface(s *core.Surface, st Styles) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < s.Width() {
			c := s.Get(x, y)
			start := x
			for x < s.Width() && s.Get(x, y) == c {
				x++
			}
			if !c.Lit() {
				sb.WriteString(strings.Repeat(" ", x-start))
				continue
			}
			run := strings.Repeat(string(PixelRune), x-start)
			if style, ok := st.pixels[c]; ok {
				run = style.Render(run)
			}
			sb.WriteString(run)
		}
	}
	return st.frame.Render(sb.String())
}
