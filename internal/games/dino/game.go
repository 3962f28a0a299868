// Package dino implements a Chrome Dino-style endless runner game.
// The player must jump over cacti and duck under birds while running
// automatically.
package dino

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
)

// groundY is the row of the ground line.
const groundY = core.Height - 1

// flashTicks is the length of the milestone flash.
const flashTicks = 24

// Game implements the Dino Runner game logic.
type Game struct {
	cfg        config.DinoConfig
	difficulty *config.DifficultyManager
	obstacles  *ObstacleManager
	audio      audio.Player
	log        *log.Logger
	seed       int64

	tick      uint64 // last tick seen by Update
	score     int
	speed     float64
	jumping   bool
	jumpStart uint64
	ducking   bool
	duckTimer int
	runFrame  int
	flash     core.Cue
}

// New creates a new Dino Runner game instance.
func New(env registry.Env) *Game {
	g := &Game{
		cfg:   env.Config.Dino,
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
	return core.KindDino
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dino Runner"
}

// Reset initializes or restarts the game.
func (g *Game) Reset() {
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	if g.obstacles == nil {
		g.obstacles = NewObstacleManager(g.seed, &g.cfg)
	} else {
		g.obstacles.Reset(g.seed)
	}
	// Reseed for the next round so a restart does not replay the same course.
	g.seed = rand.New(rand.NewSource(g.seed)).Int63()

	g.tick = 0
	g.score = 0
	g.speed = g.cfg.Physics.BaseSpeed
	g.jumping = false
	g.jumpStart = 0
	g.ducking = false
	g.duckTimer = 0
	g.runFrame = 0
	g.flash = core.Cue{}
}

// Update advances the game by one tick.
func (g *Game) Update(in *core.InputState, tick uint64) core.Outcome {
	g.tick = tick

	if g.jumping && tick-g.jumpStart >= uint64(g.cfg.Physics.JumpTicks) {
		g.jumping = false
	}

	if (in.Pressed(core.ButtonA) || in.Pressed(core.ButtonUp)) && !g.jumping && !g.ducking {
		g.jumping = true
		g.jumpStart = tick
		g.audio.PlayEffect(audio.EffectJump)
	}
	g.updateDuck(in.Down(core.ButtonB) || in.Down(core.ButtonDown))
	if !g.jumping {
		g.runFrame++
	}

	passed := g.obstacles.Update(g.speed, g.score)
	for range passed {
		g.addPoints(tick)
	}
	g.updateSpeed()

	if g.obstacles.CheckCollision(g.Hitbox()) {
		g.log.Debug("dino collision", "score", g.score, "tick", tick)
		return core.Terminal(g.score)
	}
	return core.Continue()
}

// updateDuck handles the duck state. A duck lasts at least DuckTicks and
// holding the button keeps it going.
func (g *Game) updateDuck(want bool) {
	if !g.cfg.DuckEnabled || g.jumping {
		g.ducking = false
		g.duckTimer = 0
		return
	}
	if want {
		g.ducking = true
		g.duckTimer = g.cfg.Physics.DuckTicks
		return
	}
	if g.ducking {
		g.duckTimer--
		if g.duckTimer <= 0 {
			g.ducking = false
		}
	}
}

// addPoints scores one passed obstacle.
func (g *Game) addPoints(tick uint64) {
	old := g.score
	g.score += g.cfg.Scoring.PassPoints
	m := g.cfg.Scoring.Milestone
	if m > 0 && g.score/m > old/m {
		g.audio.PlayEffect(audio.EffectMilestone)
		g.audio.Speak(fmt.Sprintf("%d points!", g.score))
		g.flash = core.NewCue("milestone", tick, flashTicks, core.Pulse)
		return
	}
	g.audio.PlayEffect(audio.EffectScore)
}

// updateSpeed recomputes the scroll speed from the score.
func (g *Game) updateSpeed() {
	old := g.speed
	g.speed = min(g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score, 0), g.cfg.Physics.MaxSpeed)
	if g.speed > old && old > g.cfg.Physics.BaseSpeed {
		g.audio.PlayEffect(audio.EffectSpeedup)
	}
}

// Lift returns how many pixels the player is above the ground.
func (g *Game) Lift() float64 {
	if !g.jumping {
		return 0
	}
	return core.Interpolate(core.Arc, 0, g.cfg.Physics.JumpHeight,
		float64(g.tick-g.jumpStart), float64(g.cfg.Physics.JumpTicks))
}

// Velocity returns the vertical speed in pixels per tick, positive upwards.
func (g *Game) Velocity() float64 {
	if !g.jumping {
		return 0
	}
	d := float64(g.cfg.Physics.JumpTicks)
	p := core.Progress(float64(g.tick-g.jumpStart), d)
	return g.cfg.Physics.JumpHeight * 4 * (1 - 2*p) / d
}

// playerTop returns the top row of the player sprite.
func (g *Game) playerTop() int {
	if g.ducking {
		return groundY - g.cfg.Player.DuckHeight
	}
	return groundY - g.cfg.Player.StandHeight - int(g.Lift()+0.5)
}

// Hitbox returns the player's collision rectangle.
func (g *Game) Hitbox() core.Rect {
	h := g.cfg.Player.StandHeight
	if g.ducking {
		h = g.cfg.Player.DuckHeight
	}
	return core.NewRect(g.cfg.Player.X, g.playerTop(), g.cfg.Player.Width, h).Inset(1)
}

// Render draws the current game state to the surface.
func (g *Game) Render(dst *core.Surface) {
	dst.HLine(0, groundY, dst.Width(), core.Dim)

	for _, o := range g.obstacles.Obstacles() {
		dst.Blit(o.Sprite(), int(o.X), o.Y, core.On)
	}

	x, y := g.cfg.Player.X, g.playerTop()
	switch {
	case g.jumping:
		dst.Blit(jumpSprite, x, y, core.Accent)
	case g.ducking:
		dst.Blit(duckSprite, x, y, core.Accent)
	default:
		dst.Blit(runSprites[(g.runFrame/6)%2], x, y, core.Accent)
	}

	text := fmt.Sprint(g.score)
	dst.DrawText(dst.Width()-core.SmallFont.TextWidth(text)-2, 1, text, core.On)

	if g.flash.Active(g.tick) && g.flash.Value(g.tick) > 0.5 {
		dst.Invert()
	}
}

// Score returns the current score.
func (g *Game) Score() int {
	return g.score
}

// Speed returns the current scroll speed in pixels per tick.
func (g *Game) Speed() float64 {
	return g.speed
}

// Jumping reports whether the player is in the air.
func (g *Game) Jumping() bool {
	return g.jumping
}

// Ducking reports whether the player is ducking.
func (g *Game) Ducking() bool {
	return g.ducking
}

// Obstacles returns the obstacles on screen.
func (g *Game) Obstacles() []Obstacle {
	return g.obstacles.Obstacles()
}

// Register the game with the registry
func init() {
	registry.Register(core.KindDino, func(env registry.Env) registry.Game {
		return New(env)
	})
}
