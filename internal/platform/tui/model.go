package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/display"
	"github.com/vovakirdan/matrix-arcade/internal/input"
)

// FrameMsg carries one rendered frame from the terminal sink.
type FrameMsg string

// Keys receives the presses read by the front-end.
type Keys interface {
	Press(b core.Button)
	Quit()
}

// Model is the Bubble Tea front-end of the terminal display. The engine
// runs elsewhere: frames arrive as FrameMsg and key presses are forwarded
// to Keys.
type Model struct {
	keys     Keys
	keymap   KeyMap
	help     help.Model
	frame    string
	width    int
	shotDir  string
	status   string
	quitting bool
}

// NewModel creates a front-end feeding keys.
func NewModel(keys Keys) Model {
	h := help.New()
	h.ShowAll = false

	dir := ""
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	return Model{
		keys:    keys,
		keymap:  DefaultKeyMap(),
		help:    h,
		shotDir: dir,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case FrameMsg:
		m.frame = string(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.keys.Quit()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Shot):
		m.status = m.saveScreenshot()
		return m, nil
	}
	if b, ok := m.keymap.Button(msg); ok {
		m.keys.Press(b)
	}
	return m, nil
}

// saveScreenshot writes the current frame without colour codes and returns
// a status line.
func (m Model) saveScreenshot() string {
	if m.shotDir == "" || m.frame == "" {
		return "nothing to save"
	}
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "screenshot failed: " + err.Error()
	}
	name := fmt.Sprintf("arcade_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(ansi.Strip(m.frame)+"\n"), 0o600); err != nil {
		return "screenshot failed: " + err.Error()
	}
	return "saved " + path
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	out := m.frame + "\n" + statusStyle.Render(m.help.View(m.keymap))
	if m.status != "" {
		out += "\n" + statusStyle.Render(m.status)
	}
	return out
}

// FrameWriter returns a display.FrameWriter that hands frames to p.
func FrameWriter(p *tea.Program) display.FrameWriter {
	return display.FrameWriterFunc(func(frame string) error {
		p.Send(FrameMsg(frame))
		return nil
	})
}

// NewProgram creates the full-screen front-end program for keys.
func NewProgram(keys *input.TerminalKeys) *tea.Program {
	return tea.NewProgram(NewModel(keys), tea.WithAltScreen())
}
