package dino

import (
	"math"
	"testing"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/registry"
)

// newQuietGame returns a game whose first obstacle never arrives.
func newQuietGame(t *testing.T) (*Game, *audio.Recorder) {
	t.Helper()
	rec := &audio.Recorder{}
	env := registry.DefaultEnv()
	env.Audio = rec
	env.Config.Dino.Obstacles.FirstSpawn = 1 << 30
	g := New(env)
	g.Reset()
	return g, rec
}

func pressed(buttons ...core.Button) *core.InputState {
	in := &core.InputState{}
	for _, b := range buttons {
		in.Buttons[b] = core.Pressed
	}
	return in
}

func held(buttons ...core.Button) *core.InputState {
	in := &core.InputState{}
	for _, b := range buttons {
		in.Buttons[b] = core.Held
	}
	return in
}

func TestFreshGame(t *testing.T) {
	g, _ := newQuietGame(t)

	if g.Score() != 0 {
		t.Errorf("score = %d, want 0", g.Score())
	}
	if g.Velocity() != 0 {
		t.Errorf("velocity = %v, want 0", g.Velocity())
	}
	if len(g.Obstacles()) != 0 {
		t.Errorf("obstacles = %d, want 0", len(g.Obstacles()))
	}
	if g.Jumping() || g.Ducking() {
		t.Error("fresh game should be running")
	}
	if g.Kind() != core.KindDino {
		t.Errorf("kind = %q", g.Kind())
	}
}

func TestJumpLandsAfterFixedTicks(t *testing.T) {
	for _, score := range []int{0, 300, 1500} {
		g, rec := newQuietGame(t)
		g.score = score
		g.updateSpeed()

		const start = 10
		d := uint64(g.cfg.Physics.JumpTicks)
		g.Update(pressed(core.ButtonA), start)
		if !g.Jumping() {
			t.Fatalf("score %d: A should start a jump", score)
		}
		if rec.Count(audio.EffectJump) != 1 {
			t.Errorf("score %d: jump effect played %d times", score, rec.Count(audio.EffectJump))
		}

		for tick := uint64(start + 1); tick < start+d; tick++ {
			g.Update(&core.InputState{}, tick)
			if !g.Jumping() {
				t.Fatalf("score %d: landed early at tick %d", score, tick)
			}
		}
		g.Update(&core.InputState{}, start+d)
		if g.Jumping() {
			t.Errorf("score %d: still airborne at tick %d", score, start+d)
		}
		if g.Lift() != 0 {
			t.Errorf("score %d: lift after landing = %v", score, g.Lift())
		}
	}
}

func TestJumpPeak(t *testing.T) {
	g, _ := newQuietGame(t)
	g.Update(pressed(core.ButtonA), 0)
	mid := uint64(g.cfg.Physics.JumpTicks) / 2
	for tick := uint64(1); tick <= mid; tick++ {
		g.Update(&core.InputState{}, tick)
	}
	if math.Abs(g.Lift()-g.cfg.Physics.JumpHeight) > 0.1 {
		t.Errorf("lift at mid jump = %v, want about %v", g.Lift(), g.cfg.Physics.JumpHeight)
	}
	// The tallest cactus starts at groundY-7; its hitbox one row lower.
	if g.Hitbox().Bottom() > groundY-6 {
		t.Errorf("hitbox bottom %d does not clear a tall cactus", g.Hitbox().Bottom())
	}
}

func TestNoDoubleJump(t *testing.T) {
	g, rec := newQuietGame(t)
	g.Update(pressed(core.ButtonA), 0)
	g.Update(pressed(core.ButtonA), 5)
	if g.jumpStart != 0 {
		t.Errorf("second press restarted the jump at %d", g.jumpStart)
	}
	if rec.Count(audio.EffectJump) != 1 {
		t.Errorf("jump effect played %d times, want 1", rec.Count(audio.EffectJump))
	}
}

func TestDuckMinimumDuration(t *testing.T) {
	g, _ := newQuietGame(t)
	d := g.cfg.Physics.DuckTicks

	g.Update(held(core.ButtonDown), 1)
	if !g.Ducking() {
		t.Fatal("Down should duck")
	}
	for tick := 2; tick <= d; tick++ {
		g.Update(&core.InputState{}, uint64(tick))
		if !g.Ducking() {
			t.Fatalf("duck ended early at tick %d", tick)
		}
	}
	g.Update(&core.InputState{}, uint64(d+1))
	if g.Ducking() {
		t.Error("duck should end after the minimum duration")
	}
}

func TestDuckDisabled(t *testing.T) {
	env := registry.DefaultEnv()
	env.Config.Dino.DuckEnabled = false
	g := New(env)
	g.Reset()

	g.Update(held(core.ButtonB), 1)
	if g.Ducking() {
		t.Error("duck should be ignored when disabled")
	}
	for range 500 {
		g.obstacles.spawn()
	}
	for _, o := range g.obstacles.Obstacles() {
		if o.Kind == BirdHigh {
			t.Fatal("high birds must not spawn without ducking")
		}
	}
}

func TestCollisionEndsGame(t *testing.T) {
	g, _ := newQuietGame(t)
	x := float64(g.cfg.Player.X + 2)
	g.obstacles.obstacles = append(g.obstacles.obstacles,
		Obstacle{Kind: CactusSmall, X: x, Y: groundY - 5, W: 3, H: 5})

	out := g.Update(&core.InputState{}, 1)
	if !out.Terminal {
		t.Fatal("running into a cactus should end the game")
	}
	if out.Score != 0 {
		t.Errorf("terminal score = %d, want 0", out.Score)
	}
}

func TestDuckUnderHighBird(t *testing.T) {
	tests := []struct {
		name     string
		in       *core.InputState
		terminal bool
	}{
		{"standing", &core.InputState{}, true},
		{"ducking", held(core.ButtonDown), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newQuietGame(t)
			g.obstacles.obstacles = append(g.obstacles.obstacles,
				Obstacle{Kind: BirdHigh, X: float64(g.cfg.Player.X + 1), Y: groundY - 8, W: 3, H: 2})
			out := g.Update(tt.in, 1)
			if out.Terminal != tt.terminal {
				t.Errorf("terminal = %v, want %v", out.Terminal, tt.terminal)
			}
		})
	}
}

func TestPassingObstacleScores(t *testing.T) {
	g, rec := newQuietGame(t)
	g.obstacles.obstacles = append(g.obstacles.obstacles,
		Obstacle{Kind: CactusSmall, X: -2.5, Y: groundY - 5, W: 3, H: 5})

	g.Update(&core.InputState{}, 1)
	if g.Score() != g.cfg.Scoring.PassPoints {
		t.Errorf("score = %d, want %d", g.Score(), g.cfg.Scoring.PassPoints)
	}
	if rec.Count(audio.EffectScore) != 1 {
		t.Errorf("score effect played %d times", rec.Count(audio.EffectScore))
	}
	if len(g.Obstacles()) != 0 {
		t.Error("passed obstacle should be removed")
	}
}

func TestMilestone(t *testing.T) {
	g, rec := newQuietGame(t)
	g.score = 90
	g.obstacles.obstacles = append(g.obstacles.obstacles,
		Obstacle{Kind: CactusSmall, X: -2.5, Y: groundY - 5, W: 3, H: 5})

	g.Update(&core.InputState{}, 50)
	if g.Score() != 100 {
		t.Fatalf("score = %d, want 100", g.Score())
	}
	if rec.Count(audio.EffectMilestone) != 1 {
		t.Error("milestone effect not played")
	}
	spoken := rec.Spoken()
	if len(spoken) != 1 || spoken[0] != "100 points!" {
		t.Errorf("spoken = %v", spoken)
	}
	if !g.flash.Active(51) {
		t.Error("milestone flash should be running")
	}
	if g.Speed() <= g.cfg.Physics.BaseSpeed {
		t.Errorf("speed should step up at 100 points, got %v", g.Speed())
	}
}

func TestSpeedProgression(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.6},
		{99, 0.6},
		{100, 0.72},
		{550, 1.2},
		{1500, 2.4},
		{9000, 2.4},
	}
	g, _ := newQuietGame(t)
	prev := 0.0
	for _, tt := range tests {
		g.score = tt.score
		g.updateSpeed()
		if math.Abs(g.Speed()-tt.want) > 1e-9 {
			t.Errorf("speed at %d = %v, want %v", tt.score, g.Speed(), tt.want)
		}
		if g.Speed() < prev {
			t.Errorf("speed decreased at %d", tt.score)
		}
		prev = g.Speed()
	}
}

func TestSpawnRange(t *testing.T) {
	g, _ := newQuietGame(t)
	tests := []struct {
		score  int
		lo, hi int
	}{
		{0, 90, 180},
		{250, 69, 135},
		{500, 48, 90},
		{2000, 48, 90},
	}
	for _, tt := range tests {
		lo, hi := g.obstacles.SpawnRange(tt.score)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("SpawnRange(%d) = %d..%d, want %d..%d", tt.score, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestSpawnTiming(t *testing.T) {
	cfg := registry.DefaultEnv().Config.Dino
	om := NewObstacleManager(42, &cfg)

	ticks := 0
	for len(om.Obstacles()) == 0 {
		om.Update(0, 0)
		ticks++
		if ticks > 1000 {
			t.Fatal("no obstacle spawned")
		}
	}
	first := cfg.Obstacles.FirstSpawn
	if ticks < first || ticks > first+firstSpawnJitter {
		t.Errorf("first spawn after %d ticks, want %d..%d", ticks, first, first+firstSpawnJitter)
	}

	gap := 0
	for len(om.Obstacles()) == 1 {
		om.Update(0, 0)
		gap++
	}
	if gap < cfg.Obstacles.SpawnMin || gap > cfg.Obstacles.SpawnMax {
		t.Errorf("gap %d outside %d..%d", gap, cfg.Obstacles.SpawnMin, cfg.Obstacles.SpawnMax)
	}
	if x := om.Obstacles()[1].X; x != float64(core.Width) {
		t.Errorf("spawn x = %v, want %d", x, core.Width)
	}
}

func TestRender(t *testing.T) {
	g, _ := newQuietGame(t)
	s := core.NewSurface()
	g.Render(s)

	if !s.Lit(0, groundY) || !s.Lit(core.Width-1, groundY) {
		t.Error("ground line missing")
	}
	lit := 0
	for y := 0; y < groundY; y++ {
		for x := g.cfg.Player.X; x < g.cfg.Player.X+7; x++ {
			if s.Lit(x, y) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("player not drawn")
	}
	// "0" in the top right corner
	if !s.Lit(core.Width-6, 2) {
		t.Error("score not drawn")
	}
}
