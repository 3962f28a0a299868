package input

import (
	"errors"
	"time"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

// fakeDevice is a RawDevice fed by tests.
type fakeDevice struct {
	pending []evdev.Event
	err     error
	closed  bool
	ranges  map[uint16][2]int32
}

func (f *fakeDevice) push(evs ...evdev.Event) { f.pending = append(f.pending, evs...) }

func (f *fakeDevice) Read() ([]evdev.Event, error) {
	evs := f.pending
	f.pending = nil
	return evs, f.err
}

func (f *fakeDevice) Close() error {
	f.closed = true
	return nil
}

type rangedDevice struct {
	*fakeDevice
}

func (r rangedDevice) AbsRange(code uint16) (int32, int32, bool) {
	v, ok := r.ranges[code]
	return v[0], v[1], ok
}

func key(code uint16, value int32) evdev.Event {
	return evdev.Event{Type: evdev.EvKey, Code: code, Value: value}
}

func abs(code uint16, value int32) evdev.Event {
	return evdev.Event{Type: evdev.EvAbs, Code: code, Value: value}
}

// fakeSource is a Source with scripted events.
type fakeSource struct {
	id     string
	kind   DeviceKind
	events []core.InputEvent
	err    error
	closed bool
}

func (f *fakeSource) ID() string       { return f.id }
func (f *fakeSource) Name() string     { return "fake " + f.id }
func (f *fakeSource) Kind() DeviceKind { return f.kind }
func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func (f *fakeSource) Poll(now time.Time) ([]core.InputEvent, error) {
	evs := f.events
	f.events = nil
	return evs, f.err
}

func (f *fakeSource) press(b core.Button, down bool) {
	f.events = append(f.events, core.InputEvent{Source: f.id, Kind: core.EventButton, Button: b, Down: down})
}

// fakeDiscoverer serves a scripted set of paths.
type fakeDiscoverer struct {
	paths   []string
	kinds   map[string]DeviceKind
	failing map[string]bool
	opened  map[string]*fakeSource
	opens   int
}

func newFakeDiscoverer() *fakeDiscoverer {
	return &fakeDiscoverer{
		kinds:   make(map[string]DeviceKind),
		failing: make(map[string]bool),
		opened:  make(map[string]*fakeSource),
	}
}

func (d *fakeDiscoverer) plug(path string, kind DeviceKind) {
	d.paths = append(d.paths, path)
	d.kinds[path] = kind
}

func (d *fakeDiscoverer) unplug(path string) {
	for i, p := range d.paths {
		if p == path {
			d.paths = append(d.paths[:i], d.paths[i+1:]...)
			return
		}
	}
}

func (d *fakeDiscoverer) Scan() ([]string, error) {
	return append([]string(nil), d.paths...), nil
}

func (d *fakeDiscoverer) Open(path, id string) (Source, error) {
	d.opens++
	if d.failing[path] {
		return nil, errors.New("permission denied")
	}
	kind := d.kinds[path]
	if kind == KindUnknown {
		return nil, ErrIgnored
	}
	src := &fakeSource{id: id, kind: kind}
	d.opened[path] = src
	return src, nil
}
