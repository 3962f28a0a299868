package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// Discoverer finds candidate device paths and opens them as sources.
type Discoverer interface {
	// Scan returns the device paths currently present.
	Scan() ([]string, error)
	// Open opens path as a source with the given id. It returns ErrIgnored
	// for devices that are not keyboards or gamepads.
	Open(path, id string) (Source, error)
}

// DeviceInfo describes a registered source.
type DeviceInfo struct {
	ID   string
	Path string
	Name string
	Kind DeviceKind
	Slot int
}

// Diff lists the sources added and removed by one Refresh.
type Diff struct {
	Added   []DeviceInfo
	Removed []DeviceInfo
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool { return len(d.Added) == 0 && len(d.Removed) == 0 }

type entry struct {
	src  Source
	path string
	slot int
}

func (e *entry) info() DeviceInfo {
	return DeviceInfo{ID: e.src.ID(), Path: e.path, Name: e.src.Name(), Kind: e.src.Kind(), Slot: e.slot}
}

// Registry tracks the connected sources. Gamepads get controller slots
// 0 and 1 in connection order; a pad connected while both slots are taken
// waits with slot -1 and is promoted when a slot frees.
//
// A Registry is driven from the engine goroutine only.
type Registry struct {
	disc    Discoverer
	log     *log.Logger
	entries []*entry // connection order
	skipped map[string]bool
	gen     map[string]int
	dropped []DeviceInfo
}

// NewRegistry creates a registry. disc may be nil when only attached
// sources are used.
func NewRegistry(disc Discoverer, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		disc:    disc,
		log:     logger,
		skipped: make(map[string]bool),
		gen:     make(map[string]int),
	}
}

// Attach adds a source that is not discovered, such as the terminal keys.
func (r *Registry) Attach(src Source) {
	r.entries = append(r.entries, &entry{src: src, slot: -1})
	r.assignSlots()
}

// Refresh rescans for devices, opening new ones and dropping those that
// disappeared. Devices dropped by Poll since the last Refresh are
// reported in the returned Diff.
func (r *Registry) Refresh() (Diff, error) {
	diff := Diff{Removed: r.dropped}
	r.dropped = nil
	if r.disc == nil {
		r.assignSlots()
		return diff, nil
	}

	paths, err := r.disc.Scan()
	if err != nil {
		return diff, fmt.Errorf("input: scan devices: %w", err)
	}
	present := make(map[string]bool, len(paths))
	for _, p := range paths {
		present[p] = true
	}

	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.path != "" && !present[e.path] {
			_ = e.src.Close()
			diff.Removed = append(diff.Removed, e.info())
			r.log.Info("device removed", "id", e.src.ID(), "name", e.src.Name())
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept

	// A path that failed to open is retried once it has gone away.
	for p := range r.skipped {
		if !present[p] {
			delete(r.skipped, p)
		}
	}

	var added []*entry
	for _, p := range paths {
		if r.skipped[p] || r.has(p) {
			continue
		}
		r.gen[p]++
		id := fmt.Sprintf("%s#%d", p, r.gen[p])
		src, err := r.disc.Open(p, id)
		if err != nil {
			r.skipped[p] = true
			if !errors.Is(err, ErrIgnored) {
				r.log.Warn("device open failed", "path", p, "err", err)
			}
			continue
		}
		e := &entry{src: src, path: p, slot: -1}
		r.entries = append(r.entries, e)
		added = append(added, e)
	}

	r.assignSlots()

	for _, e := range added {
		diff.Added = append(diff.Added, e.info())
		r.log.Info("device added", "id", e.src.ID(), "name", e.src.Name(), "kind", e.src.Kind(), "slot", e.slot)
	}
	return diff, nil
}

func (r *Registry) has(path string) bool {
	for _, e := range r.entries {
		if e.path == path {
			return true
		}
	}
	return false
}

// assignSlots gives free controller slots to unassigned gamepads in
// connection order.
func (r *Registry) assignSlots() {
	var used [core.MaxSlots]bool
	for _, e := range r.entries {
		if e.slot >= 0 {
			used[e.slot] = true
		}
	}
	for _, e := range r.entries {
		if e.src.Kind() != KindGamepad || e.slot >= 0 {
			continue
		}
		for s := range used {
			if !used[s] {
				used[s] = true
				e.slot = s
				if e.path != "" {
					r.log.Debug("slot assigned", "id", e.src.ID(), "slot", s)
				}
				break
			}
		}
	}
}

// Poll collects events from every source. A source whose read fails is
// closed and dropped; its events up to the failure are still returned and
// the removal shows up in the next Refresh. The path is not reopened until
// it disappears from the scan.
func (r *Registry) Poll(now time.Time) []core.InputEvent {
	var events []core.InputEvent
	kept := r.entries[:0]
	for _, e := range r.entries {
		evs, err := e.src.Poll(now)
		events = append(events, evs...)
		if err != nil {
			r.log.Warn("device dropped", "id", e.src.ID(), "name", e.src.Name(), "err", err)
			_ = e.src.Close()
			r.dropped = append(r.dropped, e.info())
			if e.path != "" {
				r.skipped[e.path] = true
			}
			continue
		}
		kept = append(kept, e)
	}
	changed := len(kept) != len(r.entries)
	r.entries = kept
	if changed {
		r.assignSlots()
	}
	return events
}

// Live returns the connected sources for the Tracker.
func (r *Registry) Live() []SourceInfo {
	out := make([]SourceInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, SourceInfo{ID: e.src.ID(), Kind: e.src.Kind(), Slot: e.slot})
	}
	return out
}

// Devices returns a description of every connected source.
func (r *Registry) Devices() []DeviceInfo {
	out := make([]DeviceInfo, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.info())
	}
	return out
}

// Close closes every source.
func (r *Registry) Close() error {
	var errs []error
	for _, e := range r.entries {
		if err := e.src.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.entries = nil
	return errors.Join(errs...)
}
