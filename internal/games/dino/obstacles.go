package dino

import (
	"math/rand"

	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// ObstacleKind identifies an obstacle variant.
type ObstacleKind string

const (
	CactusSmall  ObstacleKind = "cactus_small"
	CactusMedium ObstacleKind = "cactus_medium"
	CactusTall   ObstacleKind = "cactus_tall"
	BirdLow      ObstacleKind = "bird_low"
	BirdHigh     ObstacleKind = "bird_high"
)

// obstacleType describes the sprite and the row an obstacle is drawn at.
type obstacleType struct {
	kind   ObstacleKind
	sprite *core.Bitmap
	y      int
}

var (
	cactusTypes = []obstacleType{
		{CactusSmall, cactusSmall, groundY - 5},
		{CactusMedium, cactusMedium, groundY - 6},
		{CactusTall, cactusTall, groundY - 7},
	}
	birdTypes = []obstacleType{
		{BirdLow, birdSprites[0], groundY - 4},
		{BirdHigh, birdSprites[0], groundY - 8},
	}
	// Without ducking every bird must be clearable by a jump.
	jumpableBirdTypes = []obstacleType{
		{BirdLow, birdSprites[0], groundY - 4},
	}
)

// firstSpawnJitter widens the delay before the first obstacle.
const firstSpawnJitter = 60

// Obstacle is a cactus or bird scrolling towards the player.
type Obstacle struct {
	Kind ObstacleKind
	X    float64
	Y    int
	W, H int
	age  int
}

// IsBird reports whether the obstacle flies.
func (o Obstacle) IsBird() bool {
	return o.Kind == BirdLow || o.Kind == BirdHigh
}

// Sprite returns the bitmap for the current animation frame.
func (o Obstacle) Sprite() *core.Bitmap {
	switch o.Kind {
	case BirdLow, BirdHigh:
		return birdSprites[(o.age/6)%2]
	case CactusMedium:
		return cactusMedium
	case CactusTall:
		return cactusTall
	default:
		return cactusSmall
	}
}

// Rect returns the sprite bounds.
func (o Obstacle) Rect() core.Rect {
	return core.NewRect(int(o.X), o.Y, o.W, o.H)
}

// Hitbox returns the collision rectangle, one pixel inside the sprite.
func (o Obstacle) Hitbox() core.Rect {
	return o.Rect().Inset(1)
}

// ObstacleManager handles spawning, movement, and removal of obstacles.
type ObstacleManager struct {
	obstacles []Obstacle
	rng       *rand.Rand
	cfg       *config.DinoConfig
	nextSpawn int // ticks until the next obstacle
}

// NewObstacleManager creates a new obstacle manager with the given RNG seed.
func NewObstacleManager(seed int64, cfg *config.DinoConfig) *ObstacleManager {
	om := &ObstacleManager{
		obstacles: make([]Obstacle, 0, 8),
		cfg:       cfg,
	}
	om.Reset(seed)
	return om
}

// Reset clears all obstacles and resets the RNG.
func (om *ObstacleManager) Reset(seed int64) {
	om.obstacles = om.obstacles[:0]
	om.rng = rand.New(rand.NewSource(seed))
	om.nextSpawn = om.cfg.Obstacles.FirstSpawn + om.rng.Intn(firstSpawnJitter+1)
}

// SpawnRange returns the inter-arrival bounds in ticks at score. The range
// narrows linearly until the configured ramp score.
func (om *ObstacleManager) SpawnRange(score int) (lo, hi int) {
	o := om.cfg.Obstacles
	d := 1.0
	if o.RampScore > 0 {
		d = core.ClampF(float64(score)/float64(o.RampScore), 0, 1)
	}
	lo = int(core.Lerp(float64(o.SpawnMin), float64(o.FastSpawnMin), d) + 0.5)
	hi = int(core.Lerp(float64(o.SpawnMax), float64(o.FastSpawnMax), d) + 0.5)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Update moves obstacles left by speed, spawns new ones as needed and
// returns how many left the screen this tick.
func (om *ObstacleManager) Update(speed float64, score int) int {
	for i := range om.obstacles {
		om.obstacles[i].X -= speed
		om.obstacles[i].age++
	}

	passed := 0
	kept := om.obstacles[:0]
	for _, o := range om.obstacles {
		if o.X+float64(o.W) <= 0 {
			passed++
			continue
		}
		kept = append(kept, o)
	}
	om.obstacles = kept

	om.nextSpawn--
	if om.nextSpawn <= 0 {
		om.spawn()
		lo, hi := om.SpawnRange(score)
		om.nextSpawn = lo + om.rng.Intn(hi-lo+1)
	}
	return passed
}

// spawn adds a random obstacle just right of the screen.
func (om *ObstacleManager) spawn() {
	types := make([]obstacleType, 0, len(cactusTypes)+len(birdTypes))
	types = append(types, cactusTypes...)
	if om.cfg.DuckEnabled {
		types = append(types, birdTypes...)
	} else {
		types = append(types, jumpableBirdTypes...)
	}
	t := types[om.rng.Intn(len(types))]
	om.obstacles = append(om.obstacles, Obstacle{
		Kind: t.kind,
		X:    float64(core.Width),
		Y:    t.y,
		W:    t.sprite.W,
		H:    t.sprite.H,
	})
}

// Obstacles returns the current list of obstacles.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.obstacles
}

// CheckCollision tests if the given rectangle collides with any obstacle.
func (om *ObstacleManager) CheckCollision(hitbox core.Rect) bool {
	for _, o := range om.obstacles {
		if hitbox.Intersects(o.Hitbox()) {
			return true
		}
	}
	return false
}
