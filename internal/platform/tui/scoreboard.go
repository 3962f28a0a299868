package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/display"
	"github.com/vovakirdan/matrix-arcade/internal/storage"
)

// historyLimit is how many finished games the board lists per module.
const historyLimit = 50

// ScoreSource reads what the console stored for a module.
type ScoreSource interface {
	HighScore(game string) (int, error)
	TopScores(game string, limit int) ([]storage.ScoreEntry, error)
}

// boardHelp is the help line of the scoreboard. Keys are matched through
// the console KeyMap, so the start-screen buttons pick the same modules.
type boardHelp struct {
	pick, cycle, scroll, quit key.Binding
}

func (h boardHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.pick, h.cycle, h.scroll, h.quit}
}

func (h boardHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

func newBoardHelp() boardHelp {
	return boardHelp{
		pick:   key.NewBinding(key.WithKeys("enter", " ", "y", "l"), key.WithHelp("A/B/Y/LB", "module")),
		cycle:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "cycle")),
		scroll: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		quit:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the high score and the best finished games of each
// module in the panel's colours.
type ScoreboardModel struct {
	kinds   []core.Kind
	cursor  int
	store   ScoreSource
	high    int
	scores  []storage.ScoreEntry
	loadErr error

	table    table.Model
	help     help.Model
	hints    boardHelp
	console  KeyMap
	panel    display.Styles
	height   int
	quitting bool
}

// NewScoreboardModel opens the board on first, or on Dino when first is
// empty or unknown.
func NewScoreboardModel(store ScoreSource, first core.Kind, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		kinds:   core.Kinds(),
		store:   store,
		help:    help.New(),
		hints:   newBoardHelp(),
		console: DefaultKeyMap(),
		panel:   display.NewStyles(nil, display.DefaultPalette),
		height:  height,
	}
	m.help.Width = width
	for i, k := range m.kinds {
		if k == first {
			m.cursor = i
		}
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Played", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 5)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(display.DefaultPalette.Dim)).
		BorderBottom(true).
		Foreground(lipgloss.Color(display.DefaultPalette.Lit)).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(display.DefaultPalette.Lit)).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) kind() core.Kind {
	return m.kinds[m.cursor]
}

// load reads the high score and history of the selected module.
func (m *ScoreboardModel) load() {
	m.high, m.scores, m.loadErr = 0, nil, nil
	if m.store != nil {
		game := m.kind().String()
		if m.high, m.loadErr = m.store.HighScore(game); m.loadErr == nil {
			m.scores, m.loadErr = m.store.TopScores(game, historyLimit)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rank := fmt.Sprintf("#%d", i+1)
		if s.Score == m.high {
			rank += " *"
		}
		rows[i] = table.Row{rank, fmt.Sprint(s.Score), s.CreatedAt.Format("Jan 02 15:04")}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) selectKind(k core.Kind) {
	for i, kind := range m.kinds {
		if kind == k && i != m.cursor {
			m.cursor = i
			m.load()
		}
	}
}

func (m *ScoreboardModel) step(d int) {
	n := len(m.kinds)
	m.cursor = ((m.cursor+d)%n + n) % n
	m.load()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.console.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		b, ok := m.console.Button(msg)
		if !ok {
			return m, nil
		}
		if k, ok := core.KindForButton(b); ok {
			m.selectKind(k)
			return m, nil
		}
		switch b {
		case core.ButtonLeft:
			m.step(-1)
		case core.ButtonRight:
			m.step(1)
		case core.ButtonUp, core.ButtonDown:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-10, 5))
	}
	return m, nil
}

func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}
	lit := m.panel.Pixel(core.On)
	accent := m.panel.Pixel(core.Accent)
	dim := m.panel.Pixel(core.Dim)

	var b strings.Builder
	b.WriteString(accent.Render("HIGH SCORES"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.kinds))
	for i, k := range m.kinds {
		label := fmt.Sprintf("%s %s", k.MenuButtons()[0], strings.ToUpper(k.String()))
		if i == m.cursor {
			tabs[i] = accent.Render("[" + label + "]")
		} else {
			tabs[i] = dim.Render(" " + label + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.loadErr != nil:
		body = accent.Render("Cannot load scores: " + m.loadErr.Error())
	case m.kind() == core.KindPong:
		body = dim.Render("Pong runs until you leave it; no scores are kept.")
	case len(m.scores) == 0:
		body = dim.Render("No scores recorded yet.")
	default:
		body = lit.Render(fmt.Sprintf("HIGH SCORE %d", m.high)) + "\n\n" + m.table.View()
	}
	b.WriteString(m.panel.Frame().Padding(0, 1).Render(body))
	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.hints)))
	return b.String()
}

// RunScoreboard runs the scoreboard until the user leaves it.
func RunScoreboard(store ScoreSource, first core.Kind, width, height int) error {
	_, err := tea.NewProgram(
		NewScoreboardModel(store, first, width, height),
		tea.WithAltScreen(),
	).Run()
	return err
}
