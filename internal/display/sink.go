// Package display presents rendered surfaces: to the LED matrix through
// the Linux framebuffer, to a terminal, or to several sinks at once.
package display

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// ErrNoSinks is returned when a Broadcast is built without sinks.
var ErrNoSinks = errors.New("display: no sinks configured")

// Sink receives every completed frame.
type Sink interface {
	Name() string
	Present(s *core.Surface) error
	Close() error
}

// Broadcast presents each frame to every sink in order. A failing sink is
// logged and counted, and the remaining sinks still get the frame.
type Broadcast struct {
	sinks []Sink
	log   *log.Logger

	mu     sync.Mutex
	errors map[string]int
}

// NewBroadcast combines sinks. It fails when sinks is empty.
func NewBroadcast(logger *log.Logger, sinks ...Sink) (*Broadcast, error) {
	if len(sinks) == 0 {
		return nil, ErrNoSinks
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Broadcast{
		sinks:  sinks,
		log:    logger,
		errors: make(map[string]int),
	}, nil
}

// Name implements Sink.
func (b *Broadcast) Name() string { return "broadcast" }

// Sinks returns the wrapped sinks.
func (b *Broadcast) Sinks() []Sink { return b.sinks }

// Present implements Sink. It returns an error only when every sink
// failed this frame.
func (b *Broadcast) Present(s *core.Surface) error {
	failed := 0
	var last error
	for _, sink := range b.sinks {
		if err := sink.Present(s); err != nil {
			failed++
			last = err
			b.mu.Lock()
			b.errors[sink.Name()]++
			n := b.errors[sink.Name()]
			b.mu.Unlock()
			// Log the first failure and then every 600th so a dead sink
			// does not flood the log at 60 Hz.
			if n == 1 || n%600 == 0 {
				b.log.Warn("sink present failed", "sink", sink.Name(), "count", n, "err", err)
			}
		}
	}
	if failed == len(b.sinks) {
		return fmt.Errorf("display: all sinks failed: %w", last)
	}
	return nil
}

// Errors returns how many frames the named sink failed to present.
func (b *Broadcast) Errors(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errors[name]
}

// Close closes every sink.
func (b *Broadcast) Close() error {
	var errs []error
	for _, sink := range b.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
		}
	}
	return errors.Join(errs...)
}
