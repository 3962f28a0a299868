// Package draw is a free drawing mode. The stick glides a cursor over the
// matrix, A paints, B undoes the last painted pixel and Y wipes the canvas.
package draw

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
)

// Pixel is one canvas coordinate.
type Pixel struct {
	X, Y int
}

// action is one draw action: the pixel and whether it was lit before.
type action struct {
	Pixel
	was bool
}

// velocity is a cursor speed in pixels per tick.
type velocity struct {
	X, Y float64
}

// ramp eases the cursor velocity from one value to another.
type ramp struct {
	from, to velocity
	start    uint64
}

// Game implements Draw mode.
type Game struct {
	cfg   config.DrawConfig
	audio audio.Player
	log   *log.Logger

	canvas [core.Width * core.Height]bool
	undo   []action

	x, y    float64
	vel     velocity
	ramp    ramp
	tick    uint64
	pen     bool  // A was down on the previous tick
	lastPen Pixel // last pixel visited while painting
}

// New creates a new Draw game.
func New(env registry.Env) *Game {
	g := &Game{
		cfg:   env.Config.Draw,
		audio: env.Audio,
		log:   env.Log,
	}
	if g.cfg.RampTicks <= 0 {
		g.cfg.RampTicks = 1
	}
	if g.cfg.BlinkTicks <= 0 {
		g.cfg.BlinkTicks = 20
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
	return core.KindDraw
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Draw"
}

// Reset wipes the canvas and centres the cursor.
func (g *Game) Reset() {
	g.Clear()
	g.x = float64(core.Width / 2)
	g.y = float64(core.Height / 2)
	g.vel = velocity{}
	g.ramp = ramp{}
	g.tick = 0
	g.pen = false
}

// Update advances the game by one tick. Draw never ends by itself.
func (g *Game) Update(in *core.InputState, tick uint64) core.Outcome {
	g.tick = tick

	g.steer(g.target(in), tick)
	g.x = core.ClampF(g.x+g.vel.X, 0, core.Width-1)
	g.y = core.ClampF(g.y+g.vel.Y, 0, core.Height-1)

	switch {
	case in.Pressed(core.ButtonY):
		g.Clear()
		g.audio.PlayEffect(audio.EffectSurprise)
	case in.Pressed(core.ButtonB):
		g.Undo()
	}

	if in.Down(core.ButtonA) {
		cur := g.Cursor()
		if g.pen {
			g.line(g.lastPen, cur)
		} else {
			g.Paint(cur.X, cur.Y)
		}
		g.lastPen = cur
		g.pen = true
	} else {
		g.pen = false
	}
	return core.Continue()
}

// target returns the velocity the stick or d-pad asks for.
func (g *Game) target(in *core.InputState) velocity {
	a := in.Stick()
	var v velocity
	if a.Magnitude() > g.cfg.Deadzone {
		v = velocity{a.X, a.Y}
	}
	if in.Down(core.ButtonLeft) {
		v.X = -1
	} else if in.Down(core.ButtonRight) {
		v.X = 1
	}
	if in.Down(core.ButtonUp) {
		v.Y = -1
	} else if in.Down(core.ButtonDown) {
		v.Y = 1
	}
	return velocity{v.X * g.cfg.MaxSpeed, v.Y * g.cfg.MaxSpeed}
}

// steer moves the velocity along the current ramp, starting a new ramp
// from the present velocity whenever the target changes.
func (g *Game) steer(target velocity, tick uint64) {
	if target != g.ramp.to {
		g.ramp = ramp{from: g.vel, to: target, start: tick}
	}
	elapsed := float64(tick-g.ramp.start) + 1
	d := float64(g.cfg.RampTicks)
	g.vel = velocity{
		X: core.Interpolate(core.EaseOutQuad, g.ramp.from.X, g.ramp.to.X, elapsed, d),
		Y: core.Interpolate(core.EaseOutQuad, g.ramp.from.Y, g.ramp.to.Y, elapsed, d),
	}
}

// line paints every pixel on the line from a to b except a, which was
// painted on the previous tick.
func (g *Game) line(a, b Pixel) {
	dx, dy := core.Abs(b.X-a.X), -core.Abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	for a != b {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
		g.Paint(a.X, a.Y)
	}
}

// Paint lights (x, y) and records the draw action for Undo, even when the
// pixel was already lit. The oldest entry is forgotten once the undo limit
// is reached. It reports false for pixels off the canvas.
func (g *Game) Paint(x, y int) bool {
	if x < 0 || x >= core.Width || y < 0 || y >= core.Height {
		return false
	}
	i := y*core.Width + x
	g.undo = append(g.undo, action{Pixel{x, y}, g.canvas[i]})
	g.canvas[i] = true
	if limit := g.cfg.UndoLimit; limit > 0 && len(g.undo) > limit {
		g.undo = append(g.undo[:0], g.undo[len(g.undo)-limit:]...)
	}
	return true
}

// Undo reverts the most recent draw action.
func (g *Game) Undo() bool {
	if len(g.undo) == 0 {
		return false
	}
	a := g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]
	g.canvas[a.Y*core.Width+a.X] = a.was
	return true
}

// Clear empties the canvas and the undo stack.
func (g *Game) Clear() {
	clear(g.canvas[:])
	g.undo = g.undo[:0]
}

// Lit reports whether the canvas pixel at (x, y) is painted.
func (g *Game) Lit(x, y int) bool {
	if x < 0 || x >= core.Width || y < 0 || y >= core.Height {
		return false
	}
	return g.canvas[y*core.Width+x]
}

// UndoDepth returns the number of undoable draw actions.
func (g *Game) UndoDepth() int {
	return len(g.undo)
}

// Cursor returns the pixel under the cursor.
func (g *Game) Cursor() Pixel {
	return Pixel{int(math.Round(g.x)), int(math.Round(g.y))}
}

// Velocity returns the cursor velocity in pixels per tick.
func (g *Game) Velocity() (vx, vy float64) {
	return g.vel.X, g.vel.Y
}

// Render draws the canvas and the blinking cursor.
func (g *Game) Render(dst *core.Surface) {
	for i, on := range g.canvas {
		if on {
			dst.Set(i%core.Width, i/core.Width, core.On)
		}
	}
	if (g.tick/uint64(g.cfg.BlinkTicks))%2 == 0 {
		c := g.Cursor()
		dst.Set(c.X, c.Y, core.Accent)
	}
}

// Score returns the number of painted pixels.
func (g *Game) Score() int {
	n := 0
	for _, on := range g.canvas {
		if on {
			n++
		}
	}
	return n
}

func init() {
	registry.Register(core.KindDraw, func(env registry.Env) registry.Game {
		return New(env)
	})
}
