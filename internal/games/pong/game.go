// Package pong implements two-player Pong on the LED matrix.
// Controller slot 0 drives the left paddle and slot 1 the right one; the
// keyboard takes the first side without a pad and any side left over is
// played by the CPU. The game keeps score but never ends by itself.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
)

// Side indexes a paddle.
type Side int

const (
	Left Side = iota
	Right
)

// Controller says who moves a paddle.
type Controller int

const (
	CPU Controller = iota
	Gamepad
	Keyboard
)

// serveSpread bounds the vertical speed of a serve.
const serveSpread = 0.3

// Paddle is one bat.
type Paddle struct {
	X int     // column
	Y float64 // top row
}

// Game implements the Pong game logic.
type Game struct {
	cfg        config.PongConfig
	difficulty *config.DifficultyManager
	audio      audio.Player
	log        *log.Logger
	seed       int64
	rng        *rand.Rand

	paddles [2]Paddle
	scores  [2]int

	ballX, ballY   float64
	ballVX, ballVY float64
	speed          float64
	serveDelay     int
	server         Side

	elapsed  uint64 // ticks since reset
	contacts int
}

// New creates a new Pong game instance.
func New(env registry.Env) *Game {
	g := &Game{
		cfg:   env.Config.Pong,
		audio: env.Audio,
		log:   env.Log,
		seed:  env.Seed,
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
	return core.KindPong
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Reset initializes or restarts the game.
func (g *Game) Reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	h := g.cfg.Paddle.Height
	top := float64(core.Height-h) / 2
	g.paddles[Left] = Paddle{X: g.cfg.Paddle.Inset, Y: top}
	g.paddles[Right] = Paddle{X: core.Width - 1 - g.cfg.Paddle.Inset, Y: top}
	g.scores = [2]int{}
	g.elapsed = 0
	g.contacts = 0
	g.speed = g.cfg.Ball.Speed

	g.startServe(Side(g.rng.Intn(2)))
}

// startServe parks the ball in the centre. After the serve delay it
// travels towards server's opponent.
func (g *Game) startServe(server Side) {
	g.server = server
	g.serveDelay = g.cfg.Ball.ServeDelay
	g.ballX = float64(core.Width) / 2
	g.ballY = float64(core.Height) / 2
	g.ballVX = 0
	g.ballVY = 0
}

// launch starts the ball after the serve delay.
func (g *Game) launch() {
	dir := 1.0
	if g.server == Right {
		dir = -1
	}
	g.ballVX = dir * g.speed
	g.ballVY = (g.rng.Float64()*2 - 1) * serveSpread
}

// Controllers reports who drives each paddle for the given input.
func Controllers(in *core.InputState) [2]Controller {
	var c [2]Controller
	keyboardFree := in.Keyboard.Connected
	for i := range c {
		switch {
		case in.Pads[i].Connected:
			c[i] = Gamepad
		case keyboardFree:
			c[i] = Keyboard
			keyboardFree = false
		default:
			c[i] = CPU
		}
	}
	return c
}

// Update advances the game by one tick.
func (g *Game) Update(in *core.InputState, tick uint64) core.Outcome {
	g.elapsed++

	for i, c := range Controllers(in) {
		side := Side(i)
		switch c {
		case Gamepad:
			g.movePaddle(side, g.padDirection(&in.Pads[i]))
		case Keyboard:
			g.movePaddle(side, buttonDirection(&in.Keyboard.Buttons))
		default:
			g.updateCPU(side)
		}
	}

	g.updateSpeed()

	if g.serveDelay > 0 {
		g.serveDelay--
		if g.serveDelay == 0 {
			g.launch()
		}
		return core.Continue()
	}

	g.stepBall(tick)
	return core.Continue()
}

// padDirection reads the stick first and falls back to the d-pad.
func (g *Game) padDirection(p *core.Pad) float64 {
	if math.Abs(p.Axis.Y) > g.cfg.Paddle.Deadzone {
		return p.Axis.Y
	}
	return buttonDirection(&p.Buttons)
}

func buttonDirection(b *core.ButtonStates) float64 {
	switch {
	case b.Down(core.ButtonUp) && !b.Down(core.ButtonDown):
		return -1
	case b.Down(core.ButtonDown) && !b.Down(core.ButtonUp):
		return 1
	}
	return 0
}

func (g *Game) movePaddle(side Side, dir float64) {
	p := &g.paddles[side]
	p.Y = core.ClampF(p.Y+dir*g.cfg.Paddle.Speed, 0, float64(core.Height-g.cfg.Paddle.Height))
}

// updateCPU follows the ball while it approaches and drifts back to the
// middle otherwise.
func (g *Game) updateCPU(side Side) {
	p := &g.paddles[side]
	h := float64(g.cfg.Paddle.Height)

	target := float64(core.Height-g.cfg.Paddle.Height) / 2
	approaching := (side == Left && g.ballVX < 0) || (side == Right && g.ballVX > 0)
	if approaching {
		target = g.ballY + 0.5 - h/2
	}

	diff := target - p.Y
	if math.Abs(diff) <= g.cfg.CPU.Slack {
		return
	}
	step := math.Min(math.Abs(diff), g.cfg.CPU.Speed)
	g.movePaddle(side, core.Sign(diff)*step/g.cfg.Paddle.Speed)
}

// updateSpeed raises the ball speed with elapsed time, keeping direction.
func (g *Game) updateSpeed() {
	g.speed = min(g.difficulty.Speed(g.cfg.Ball.Speed, 0, g.elapsed), g.cfg.Ball.MaxSpeed)
	if g.ballVX != 0 {
		g.ballVX = core.Sign(g.ballVX) * g.speed
	}
}

// stepBall moves the ball one tick. Paddle contact is tested against the
// paddle face the ball crosses during the tick, so a fast ball cannot skip
// over a paddle.
func (g *Game) stepBall(tick uint64) {
	nx := g.ballX + g.ballVX
	rawY := g.ballY + g.ballVY

	// Top and bottom walls.
	ny := foldWalls(rawY)
	if ny != rawY {
		g.ballVY = -g.ballVY
	}

	if g.ballVX < 0 {
		face := float64(g.paddles[Left].X + 1)
		if g.ballX >= face && nx < face {
			if y := g.crossRow(face, rawY); g.hits(Left, y) {
				nx = 2*face - nx
				g.bounce(Left, y, tick)
			}
		}
	} else if g.ballVX > 0 {
		face := float64(g.paddles[Right].X - 1)
		if g.ballX <= face && nx > face {
			if y := g.crossRow(face, rawY); g.hits(Right, y) {
				nx = 2*face - nx
				g.bounce(Right, y, tick)
			}
		}
	}

	g.ballX, g.ballY = nx, ny

	switch {
	case g.ballX < 0:
		g.point(Right)
	case g.ballX > float64(core.Width-1):
		g.point(Left)
	}
}

// foldWalls reflects a row that left the field back off the top or bottom
// wall.
func foldWalls(y float64) float64 {
	maxY := float64(core.Height - 1)
	switch {
	case y < 0:
		return -y
	case y > maxY:
		return 2*maxY - y
	}
	return y
}

// crossRow returns the row where the ball crosses the plane x = face. The
// path is followed before any wall reflection of this tick and folded back
// afterwards, so a tick that meets both a wall and a paddle still finds the
// true contact row. rawY is the unreflected row at the end of the tick.
func (g *Game) crossRow(face, rawY float64) float64 {
	t := (face - g.ballX) / g.ballVX
	return foldWalls(g.ballY + (rawY-g.ballY)*t)
}

// hits reports whether a ball at row y meets the paddle on side.
func (g *Game) hits(side Side, y float64) bool {
	p := g.paddles[side]
	return y+1 > p.Y && y < p.Y+float64(g.cfg.Paddle.Height)
}

// bounce reflects the ball off a paddle. The vertical speed follows where
// the ball met the paddle: the centre returns it flat, the tips at the
// steepest angle.
func (g *Game) bounce(side Side, y float64, tick uint64) {
	p := g.paddles[side]
	half := float64(g.cfg.Paddle.Height) / 2
	offset := core.ClampF((y+0.5-(p.Y+half))/half, -1, 1)

	g.ballVX = -g.ballVX
	g.ballVY = offset * g.cfg.Ball.MaxDeflect
	g.contacts++
	g.audio.PlayEffect(audio.EffectBounce)
	g.log.Debug("pong contact", "side", side, "offset", offset, "tick", tick)
}

// point awards a point and serves again towards the side that conceded.
func (g *Game) point(scorer Side) {
	g.scores[scorer]++
	g.audio.PlayEffect(audio.EffectScore)
	g.startServe(scorer)
}

// Render draws the current game state to the surface.
func (g *Game) Render(dst *core.Surface) {
	mid := dst.Width() / 2
	for y := 0; y < dst.Height(); y += 2 {
		dst.Set(mid, y, core.Dim)
	}

	left := fmt.Sprint(g.scores[Left])
	dst.DrawText(mid-4-core.SmallFont.TextWidth(left), 1, left, core.Dim)
	dst.DrawText(mid+4, 1, fmt.Sprint(g.scores[Right]), core.Dim)

	for _, p := range g.paddles {
		dst.VLine(p.X, int(p.Y+0.5), g.cfg.Paddle.Height, core.On)
	}
	dst.Set(int(g.ballX), int(g.ballY+0.5), core.Accent)
}

// Score returns the left player's points.
func (g *Game) Score() int {
	return g.scores[Left]
}

// Scores returns both sides' points.
func (g *Game) Scores() [2]int {
	return g.scores
}

// Contacts returns how many times the ball met a paddle.
func (g *Game) Contacts() int {
	return g.contacts
}

// Ball returns the ball position and velocity.
func (g *Game) Ball() (x, y, vx, vy float64) {
	return g.ballX, g.ballY, g.ballVX, g.ballVY
}

// BallSpeed returns the horizontal ball speed in pixels per tick.
func (g *Game) BallSpeed() float64 {
	return g.speed
}

// Paddles returns both paddles.
func (g *Game) Paddles() [2]Paddle {
	return g.paddles
}

// Register the game with the registry
func init() {
	registry.Register(core.KindPong, func(env registry.Env) registry.Game {
		return New(env)
	})
}
