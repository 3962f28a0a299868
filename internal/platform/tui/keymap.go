package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// KeyMap binds terminal keys to the logical buttons, using the same table
// as the evdev keyboard source.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	A     key.Binding
	B     key.Binding
	X     key.Binding
	Y     key.Binding
	LB    key.Binding
	Start key.Binding
	Shot  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "pgdown"), key.WithHelp("↓", "down/duck")),
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		A:     key.NewBinding(key.WithKeys("enter", "pgup"), key.WithHelp("enter", "A dino")),
		B:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "B pong")),
		X:     key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "X back")),
		Y:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Y snake")),
		LB:    key.NewBinding(key.WithKeys("l", "tab"), key.WithHelp("l/tab", "LB draw")),
		Start: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Shot:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Quit:  key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q/esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.A, k.B, k.Y, k.LB, k.X, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.A, k.B, k.X, k.Y},
		{k.LB, k.Start, k.Shot, k.Quit},
	}
}

// Button returns the logical button bound to msg.
func (k KeyMap) Button(msg tea.KeyMsg) (core.Button, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return core.ButtonUp, true
	case key.Matches(msg, k.Down):
		return core.ButtonDown, true
	case key.Matches(msg, k.Left):
		return core.ButtonLeft, true
	case key.Matches(msg, k.Right):
		return core.ButtonRight, true
	case key.Matches(msg, k.A):
		return core.ButtonA, true
	case key.Matches(msg, k.B):
		return core.ButtonB, true
	case key.Matches(msg, k.X):
		return core.ButtonX, true
	case key.Matches(msg, k.Y):
		return core.ButtonY, true
	case key.Matches(msg, k.LB):
		return core.ButtonLB, true
	case key.Matches(msg, k.Start):
		return core.ButtonStart, true
	}
	return 0, false
}
