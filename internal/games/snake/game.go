// Package snake implements Snake on a grid of 2x2 pixel cells.
package snake

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	}
	return "unknown"
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Point is a grid cell.
type Point struct {
	X, Y int
}

func (p Point) step(d Direction) Point {
	switch d {
	case DirUp:
		p.Y--
	case DirDown:
		p.Y++
	case DirLeft:
		p.X--
	case DirRight:
		p.X++
	}
	return p
}

// Game implements the Snake game.
type Game struct {
	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	audio      audio.Player
	log        *log.Logger
	seed       int64
	rng        *rand.Rand

	cols, rows int

	snake     []Point // head at index 0
	direction Direction
	nextDir   Direction
	food      Point
	score     int
	ticker    int // ticks since the last step
}

// New creates a new Snake game.
func New(env registry.Env) *Game {
	g := &Game{
		cfg:   env.Config.Snake,
		audio: env.Audio,
		log:   env.Log,
		seed:  env.Seed,
	}
	if g.cfg.CellSize <= 0 {
		g.cfg.CellSize = 1
	}
	if g.audio == nil {
		g.audio = audio.Nop{}
	}
	if g.log == nil {
		g.log = log.Default()
	}
	return g
}

// Kind returns the module identifier.
func (g *Game) Kind() core.Kind {
	return core.KindSnake
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game. The snake starts in the middle row
// heading right.
func (g *Game) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.cols = core.Width / g.cfg.CellSize
	g.rows = core.Height / g.cfg.CellSize

	n := max(g.cfg.InitialLength, 1)
	head := Point{X: min(g.cols/4+n, g.cols-1), Y: g.rows / 2}
	g.snake = make([]Point, 0, n+16)
	for i := range n {
		g.snake = append(g.snake, Point{X: head.X - i, Y: head.Y})
	}
	g.direction = DirRight
	g.nextDir = DirRight
	g.score = 0
	g.ticker = 0
	g.spawnFood()
}

// Grid returns the grid size in cells.
func (g *Game) Grid() (cols, rows int) {
	return g.cols, g.rows
}

// StepTicks returns the number of ticks between moves at the current score.
func (g *Game) StepTicks() int {
	return g.difficulty.Interval(g.cfg.StepTicks, g.score, 0, max(g.cfg.MinStepTicks, 1))
}

// spawnFood places food on a random empty cell. It reports false when the
// snake fills the grid.
func (g *Game) spawnFood() bool {
	occupied := make(map[Point]bool, len(g.snake))
	for _, p := range g.snake {
		occupied[p] = true
	}
	var emptyCells []Point
	for y := range g.rows {
		for x := range g.cols {
			if p := (Point{x, y}); !occupied[p] {
				emptyCells = append(emptyCells, p)
			}
		}
	}
	if len(emptyCells) == 0 {
		return false
	}
	g.food = emptyCells[g.rng.Intn(len(emptyCells))]
	return true
}

// Update advances the game by one tick.
func (g *Game) Update(in *core.InputState, tick uint64) core.Outcome {
	g.processInput(in)

	g.ticker++
	if g.ticker < g.StepTicks() {
		return core.Continue()
	}
	g.ticker = 0
	if !g.move() {
		g.log.Debug("snake crashed", "score", g.score, "tick", tick, "length", len(g.snake))
		return core.Terminal(g.score)
	}
	return core.Continue()
}

// processInput buffers a direction change for the next move. A reversal
// into the body is ignored.
func (g *Game) processInput(in *core.InputState) {
	dir, ok := g.wanted(in)
	if !ok {
		return
	}
	if dir != g.direction.Opposite() {
		g.nextDir = dir
	}
}

// wanted reads the d-pad first and then the strongest stick, mapped to the
// dominant axis.
func (g *Game) wanted(in *core.InputState) (Direction, bool) {
	switch {
	case in.Pressed(core.ButtonUp):
		return DirUp, true
	case in.Pressed(core.ButtonDown):
		return DirDown, true
	case in.Pressed(core.ButtonLeft):
		return DirLeft, true
	case in.Pressed(core.ButtonRight):
		return DirRight, true
	}
	return StickDirection(in.Stick(), g.cfg.Deadzone)
}

// StickDirection maps a stick position to a cardinal direction by its
// dominant axis. Deflections within the deadzone map to nothing.
func StickDirection(a core.Axis, deadzone float64) (Direction, bool) {
	ax, ay := math.Abs(a.X), math.Abs(a.Y)
	switch {
	case ax >= ay && ax > deadzone:
		if a.X > 0 {
			return DirRight, true
		}
		return DirLeft, true
	case ay > ax && ay > deadzone:
		if a.Y > 0 {
			return DirDown, true
		}
		return DirUp, true
	}
	return 0, false
}

// move advances the snake one cell. It returns false on a crash.
func (g *Game) move() bool {
	g.direction = g.nextDir
	head := g.snake[0].step(g.direction)

	if head.X < 0 || head.X >= g.cols || head.Y < 0 || head.Y >= g.rows {
		return false
	}
	// The tail cell is free: it moves away this step unless the head eats,
	// and food is never on the snake.
	for _, p := range g.snake[:len(g.snake)-1] {
		if p == head {
			return false
		}
	}

	eating := head == g.food
	if eating {
		g.snake = append(g.snake, Point{})
	}
	copy(g.snake[1:], g.snake[:len(g.snake)-1])
	g.snake[0] = head

	if eating {
		g.score++
		g.audio.PlayEffect(audio.EffectScore)
		if !g.spawnFood() {
			g.log.Info("snake filled the grid", "score", g.score)
			return false
		}
	}
	return true
}

// Render draws the snake and the food.
func (g *Game) Render(dst *core.Surface) {
	cs := g.cfg.CellSize
	cell := func(p Point) core.Rect {
		return core.NewRect(p.X*cs, p.Y*cs, cs, cs)
	}
	for i, p := range g.snake {
		c := core.On
		if i == 0 {
			c = core.Accent
		}
		dst.FillRect(cell(p), c)
	}
	dst.DrawRect(cell(g.food), core.Accent)
}

// Score returns the food eaten so far.
func (g *Game) Score() int {
	return g.score
}

// Segments returns the snake, head first.
func (g *Game) Segments() []Point {
	return g.snake
}

// Food returns the food cell.
func (g *Game) Food() Point {
	return g.food
}

// Direction returns the direction of the last move.
func (g *Game) Direction() Direction {
	return g.direction
}

func init() {
	registry.Register(core.KindSnake, func(env registry.Env) registry.Game {
		return New(env)
	})
}
