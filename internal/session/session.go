// Package session implements the menu shell around the game modules: the
// animated start screen, the running module and the game-over screen.
package session

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
)

// State is the session phase.
type State int

const (
	StartScreen State = iota
	InGame
	GameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StartScreen:
		return "start"
	case InGame:
		return "in-game"
	case GameOver:
		return "game-over"
	}
	return "unknown"
}

// HighScores stores the best score per game.
type HighScores interface {
	HighScore(game string) (int, error)
	SetHighScore(game string, score int) error
}

// ScoreHistory is implemented by stores that also keep every finished game.
type ScoreHistory interface {
	SaveScore(game string, score int) (int64, error)
}

// View renders one frame of the current state.
type View interface {
	Render(dst *core.Surface)
}

// Context carries the collaborators of a Machine.
type Context struct {
	HighScores HighScores
	Audio      audio.Player
	Log        *log.Logger
	Games      registry.Env
	Timeouts   config.SessionConfig
}

// dismiss lists the buttons that leave the game-over screen.
var dismiss = []core.Button{
	core.ButtonA, core.ButtonB, core.ButtonX, core.ButtonY, core.ButtonLB, core.ButtonStart,
}

// Machine is the session state machine. It is driven by the engine once per
// tick and is not safe for concurrent use.
type Machine struct {
	ctx Context
	rng *rand.Rand

	state State
	start *startScreen
	kind  core.Kind
	game  registry.Game
	idle  int // ticks without input in Draw
	over  gameOver
	quit  bool
}

// New creates a Machine on the start screen.
func New(ctx Context) *Machine {
	if ctx.Audio == nil {
		ctx.Audio = audio.Nop{}
	}
	if ctx.Log == nil {
		ctx.Log = log.Default()
	}
	if ctx.Games.Audio == nil {
		ctx.Games.Audio = ctx.Audio
	}
	if ctx.Games.Log == nil {
		ctx.Games.Log = ctx.Log
	}
	if ctx.Timeouts.GameOverTimeout <= 0 {
		ctx.Timeouts.GameOverTimeout = 300
	}
	if ctx.Timeouts.DrawIdleTimeout <= 0 {
		ctx.Timeouts.DrawIdleTimeout = 900
	}

	rng := rand.New(rand.NewSource(ctx.Games.Seed))
	return &Machine{
		ctx:   ctx,
		rng:   rng,
		state: StartScreen,
		start: newStartScreen(ctx.Audio, rng, ctx.Timeouts.SceneTicks),
	}
}

// State returns the current phase.
func (m *Machine) State() State {
	return m.state
}

// Kind returns the running or last finished module.
func (m *Machine) Kind() core.Kind {
	return m.kind
}

// Game returns the running module, or nil outside InGame.
func (m *Machine) Game() registry.Game {
	return m.game
}

// Result returns the score and best score shown on the game-over screen.
func (m *Machine) Result() (score, high int) {
	return m.over.score, m.over.high
}

// Quit reports whether the session asked the engine to stop.
func (m *Machine) Quit() bool {
	return m.quit
}

// Update advances the session by one tick and returns the view to render.
func (m *Machine) Update(in *core.InputState, tick uint64) View {
	if in.Quit {
		m.quit = true
	}
	switch m.state {
	case StartScreen:
		m.updateStart(in)
	case InGame:
		m.updateGame(in, tick)
	case GameOver:
		m.updateGameOver(in)
	}
	return m.View()
}

// View returns the view of the current state.
func (m *Machine) View() View {
	switch m.state {
	case InGame:
		return m.game
	case GameOver:
		return &m.over
	default:
		return m.start
	}
}

func (m *Machine) updateStart(in *core.InputState) {
	if in.Pressed(core.ButtonX) {
		m.ctx.Log.Info("quit requested from start screen")
		m.quit = true
		return
	}
	if kind, ok := menuChoice(in); ok {
		m.enter(kind)
		return
	}
	m.start.update()
}

// menuChoice returns the module selected by this tick's presses. Earlier
// kinds in menu order take precedence.
func menuChoice(in *core.InputState) (core.Kind, bool) {
	for _, kind := range core.Kinds() {
		for _, b := range kind.MenuButtons() {
			if in.Pressed(b) {
				return kind, true
			}
		}
	}
	return "", false
}

// enter builds a fresh module and switches to InGame. The module is first
// updated on the next tick.
func (m *Machine) enter(kind core.Kind) {
	env := m.ctx.Games
	env.Seed = m.rng.Int63()
	game, err := registry.Create(kind, env)
	if err != nil {
		m.ctx.Log.Error("cannot start game", "game", kind, "err", err)
		return
	}
	m.ctx.Log.Info("game started", "game", kind, "seed", env.Seed)
	m.kind = kind
	m.game = game
	m.idle = 0
	m.state = InGame
	m.ctx.Audio.PlayEffect(audio.EffectStart)
	m.ctx.Audio.Speak("Go!")
}

func (m *Machine) updateGame(in *core.InputState, tick uint64) {
	if in.Pressed(core.ButtonX) {
		m.ctx.Log.Info("game abandoned", "game", m.kind, "score", m.game.Score())
		m.toStart()
		return
	}

	out := m.game.Update(in, tick)
	if out.Terminal {
		m.finish(out.Score)
		return
	}

	if m.kind == core.KindDraw {
		if in.Buttons.AnyDown() || in.Stick().Magnitude() > m.ctx.Games.Config.Draw.Deadzone {
			m.idle = 0
		} else {
			m.idle++
		}
		if m.idle >= m.ctx.Timeouts.DrawIdleTimeout {
			m.ctx.Log.Info("draw idle, returning to start screen", "ticks", m.idle)
			m.toStart()
		}
	}
}

// finish records the score and switches to GameOver. Storage errors are
// logged and never end the session.
func (m *Machine) finish(score int) {
	game := m.kind.String()
	high := 0
	if m.ctx.HighScores != nil {
		h, err := m.ctx.HighScores.HighScore(game)
		if err != nil {
			m.ctx.Log.Error("read high score", "game", game, "err", err)
		}
		high = h
	}

	newHigh := score > high
	if newHigh && m.ctx.HighScores != nil {
		if err := m.ctx.HighScores.SetHighScore(game, score); err != nil {
			m.ctx.Log.Error("save high score", "game", game, "err", err)
		}
	}
	if h, ok := m.ctx.HighScores.(ScoreHistory); ok && score > 0 {
		if _, err := h.SaveScore(game, score); err != nil {
			m.ctx.Log.Error("save score", "game", game, "err", err)
		}
	}

	m.ctx.Log.Info("game over", "game", game, "score", score, "high", max(score, high))
	m.ctx.Audio.PlayEffect(audio.EffectGameOver)
	if newHigh {
		m.ctx.Audio.Speak(fmt.Sprintf("Game over! New high score %d!", score))
	} else {
		m.ctx.Audio.Speak(fmt.Sprintf("Game over! Score %d", score))
	}

	m.game = nil
	m.over = gameOver{kind: m.kind, score: score, high: max(score, high), newHigh: newHigh}
	m.state = GameOver
}

func (m *Machine) updateGameOver(in *core.InputState) {
	m.over.ticks++
	for _, b := range dismiss {
		if in.Pressed(b) {
			m.toStart()
			return
		}
	}
	if m.over.ticks >= m.ctx.Timeouts.GameOverTimeout {
		m.toStart()
	}
}

// toStart drops any running module and rewinds the start screen.
func (m *Machine) toStart() {
	m.game = nil
	m.idle = 0
	m.state = StartScreen
	m.start.restart()
}
