// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the session
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/audio"
	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// Game is the contract every playable module implements.
// Games contain pure logic: they read the tick's InputState and draw into a
// Surface. The engine handles devices, timing and output.
type Game interface {
	// Kind returns the module identifier, also used for score storage.
	Kind() core.Kind

	// Title returns a human-readable name for display.
	Title() string

	// Reset puts the game in its initial state.
	Reset()

	// Update advances the simulation by one fixed tick. tick is the
	// engine tick counter and only grows.
	Update(in *core.InputState, tick uint64) core.Outcome

	// Render draws the current state. The surface is cleared before the call.
	Render(dst *core.Surface)

	// Score returns the current score.
	Score() int
}

// Env carries what a game needs from its surroundings.
type Env struct {
	Config config.GamesConfig
	Audio  audio.Player
	Seed   int64
	Log    *log.Logger
}

// DefaultEnv returns an Env with default tunables, silent audio and a fixed
// seed.
func DefaultEnv() Env {
	return Env{
		Config: config.DefaultGamesConfig(),
		Audio:  audio.Nop{},
		Seed:   1,
		Log:    log.Default(),
	}
}

// normalize fills unset fields so games never see nil dependencies.
func (e Env) normalize() Env {
	if e.Audio == nil {
		e.Audio = audio.Nop{}
	}
	if e.Log == nil {
		e.Log = log.Default()
	}
	return e
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	Kind  core.Kind
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func(env Env) Game

var (
	factories = make(map[core.Kind]Factory)
	titles    = make(map[core.Kind]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same kind is already registered.
func Register(kind core.Kind, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", kind))
	}

	factories[kind] = f

	// Get title by creating a temporary instance
	g := f(DefaultEnv())
	titles[kind] = g.Title()
}

// List returns information about all registered games in menu order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	order := make(map[core.Kind]int)
	for i, k := range core.Kinds() {
		order[k] = i + 1
	}

	result := make([]GameInfo, 0, len(factories))
	for kind := range factories {
		result = append(result, GameInfo{Kind: kind, Title: titles[kind]})
	}
	sort.Slice(result, func(i, j int) bool {
		oi, oj := order[result[i].Kind], order[result[j].Kind]
		if oi != oj {
			if oi == 0 || oj == 0 {
				return oj == 0
			}
			return oi < oj
		}
		return result[i].Kind < result[j].Kind
	})
	return result
}

// Create instantiates a new game by its kind. The returned game has been
// Reset. Returns an error if the kind is not registered.
func Create(kind core.Kind, env Env) (Game, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", kind)
	}
	g := f(env.normalize())
	g.Reset()
	return g, nil
}

// Exists checks if a game with the given kind is registered.
func Exists(kind core.Kind) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[kind]
	return ok
}
