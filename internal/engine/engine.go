// Package engine runs the fixed-rate loop that ties input, the session and
// the display together.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/display"
	"github.com/vovakirdan/matrix-arcade/internal/input"
	"github.com/vovakirdan/matrix-arcade/internal/session"
)

// ErrNoUsableSink is returned by Run when every sink kept failing for a
// whole second of frames.
var ErrNoUsableSink = errors.New("engine: no usable sink")

// Clock abstracts time for the loop.
type Clock struct {
	Now   func() time.Time
	Sleep func(time.Duration)
}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return Clock{Now: time.Now, Sleep: time.Sleep}
}

// Session is what the loop drives each tick.
type Session interface {
	Update(in *core.InputState, tick uint64) session.View
	Quit() bool
}

// Options tunes the loop.
type Options struct {
	TickRate    int // ticks per second, default 60
	RescanEvery int // ticks between device rescans, default 1; negative disables
	Clock       Clock
	Log         *log.Logger
}

// Engine owns the surface and drives one session.
type Engine struct {
	devices *input.Registry
	tracker *input.Tracker
	session Session
	sink    display.Sink
	surface *core.Surface

	clock     Clock
	period    time.Duration
	rescan    int
	log       *log.Logger
	tickRate  int
	tick      uint64
	lastStart time.Time
	overruns  int
	failing   int // consecutive frames no sink accepted
}

// New creates an engine. devices may have no discoverer; sink is usually a
// display.Broadcast.
func New(devices *input.Registry, sess Session, sink display.Sink, opts Options) *Engine {
	if opts.TickRate <= 0 {
		opts.TickRate = core.TickRate
	}
	if opts.RescanEvery == 0 {
		opts.RescanEvery = 1
	}
	if opts.Clock.Now == nil {
		opts.Clock.Now = time.Now
	}
	if opts.Clock.Sleep == nil {
		opts.Clock.Sleep = time.Sleep
	}
	if opts.Log == nil {
		opts.Log = log.Default()
	}
	return &Engine{
		devices:  devices,
		tracker:  input.NewTracker(),
		session:  sess,
		sink:     sink,
		surface:  core.NewSurface(),
		clock:    opts.Clock,
		period:   time.Second / time.Duration(opts.TickRate),
		rescan:   opts.RescanEvery,
		log:      opts.Log,
		tickRate: opts.TickRate,
	}
}

// Tick returns the number of ticks run so far.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// Overruns returns how many ticks started late because the previous one
// took longer than the tick period.
func (e *Engine) Overruns() int {
	return e.overruns
}

// Surface returns the frame rendered by the last tick.
func (e *Engine) Surface() *core.Surface {
	return e.surface
}

// Run drives the loop until the session or the player quits, or ctx is
// cancelled. Both end the loop without an error.
func (e *Engine) Run(ctx context.Context) error {
	_, err := e.run(ctx, -1)
	return err
}

// RunTicks runs at most n ticks and returns how many ran.
func (e *Engine) RunTicks(ctx context.Context, n int) (int, error) {
	return e.run(ctx, n)
}

func (e *Engine) run(ctx context.Context, limit int) (int, error) {
	e.log.Info("engine started", "tick_rate", e.tickRate, "limit", limit)
	ran := 0
	for limit < 0 || ran < limit {
		if ctx.Err() != nil {
			e.log.Info("engine cancelled", "tick", e.tick)
			return ran, nil
		}
		e.pace()

		quit, err := e.Step()
		ran++
		if err != nil {
			return ran, err
		}
		if quit {
			e.log.Info("quit requested", "tick", e.tick, "overruns", e.overruns)
			return ran, nil
		}
	}
	return ran, nil
}

// pace sleeps out the remainder of the tick period. A late tick starts at
// once and is counted; missed ticks are not caught up.
func (e *Engine) pace() {
	now := e.clock.Now()
	if !e.lastStart.IsZero() {
		elapsed := now.Sub(e.lastStart)
		if elapsed < e.period {
			e.clock.Sleep(e.period - elapsed)
			now = e.clock.Now()
		} else if elapsed > e.period {
			e.overruns++
			e.log.Debug("tick overrun", "tick", e.tick, "elapsed", elapsed, "overruns", e.overruns)
		}
	}
	e.lastStart = now
}

// Step runs one tick without pacing: rescan, poll, update, render,
// present. It reports whether the loop should stop.
func (e *Engine) Step() (bool, error) {
	if e.rescan > 0 && e.tick%uint64(e.rescan) == 0 {
		e.refresh()
	}

	events := e.devices.Poll(e.clock.Now())
	in := e.tracker.Build(e.tick, events, e.devices.Live())

	view := e.session.Update(&in, e.tick)
	e.surface.Clear()
	if view != nil {
		view.Render(e.surface)
	}

	err := e.sink.Present(e.surface)
	e.tick++
	if err != nil {
		e.failing++
		if e.failing >= e.tickRate {
			return true, fmt.Errorf("%w: %w", ErrNoUsableSink, err)
		}
	} else {
		e.failing = 0
	}
	return in.Quit || e.session.Quit(), nil
}

func (e *Engine) refresh() {
	diff, err := e.devices.Refresh()
	if err != nil {
		e.log.Warn("device scan failed", "err", err)
	}
	if !diff.Empty() {
		e.log.Debug("devices changed", "tick", e.tick, "added", len(diff.Added), "removed", len(diff.Removed), "live", len(e.devices.Live()))
	}
}
