package evdev

import (
	"sort"

	"github.com/pkg/errors"
)

// Snapshot is the device state read back after the kernel dropped events.
type Snapshot struct {
	Keys []byte           // EVIOCGKEY bitmap
	Abs  map[uint16]int32 // current value per absolute axis
}

// syncer repairs the event stream after SYN_DROPPED. Events up to the next
// SYN_REPORT are discarded and replaced by the differences between the key
// state seen so far and the state the device reports now, followed by the
// current axis values.
type syncer struct {
	keys     []byte
	dropping bool
}

func newSyncer() *syncer {
	return &syncer{keys: make([]byte, keyMax/8+1)}
}

func (s *syncer) filter(in []Event, read func() (Snapshot, error)) ([]Event, error) {
	var out []Event
	for _, ev := range in {
		switch {
		case ev.Type == EvSyn && ev.Code == SynDropped:
			s.dropping = true
		case s.dropping:
			if ev.Type != EvSyn || ev.Code != SynReport {
				continue
			}
			s.dropping = false
			snap, err := read()
			if err != nil {
				return out, errors.Wrap(err, "evdev: resync after dropped events")
			}
			out = append(out, s.reconcile(snap, ev)...)
		default:
			if ev.Type == EvKey {
				s.track(ev.Code, ev.Value != KeyReleased)
			}
			out = append(out, ev)
		}
	}
	return out, nil
}

func testBit(bits []byte, n uint16) bool {
	i := int(n / 8)
	if i >= len(bits) {
		return false
	}
	return bits[i]&(1<<(n%8)) != 0
}

func (s *syncer) track(code uint16, down bool) {
	i := int(code / 8)
	if i >= len(s.keys) {
		return
	}
	if down {
		s.keys[i] |= 1 << (code % 8)
	} else {
		s.keys[i] &^= 1 << (code % 8)
	}
}

// reconcile emits the key changes and axis values of snap, closed by report.
func (s *syncer) reconcile(snap Snapshot, report Event) []Event {
	var out []Event
	for code := uint16(0); code <= keyMax; code++ {
		was, is := testBit(s.keys, code), testBit(snap.Keys, code)
		if was == is {
			continue
		}
		value := KeyReleased
		if is {
			value = KeyPressed
		}
		s.track(code, is)
		out = append(out, Event{Time: report.Time, Type: EvKey, Code: code, Value: value})
	}

	axes := make([]uint16, 0, len(snap.Abs))
	for code := range snap.Abs {
		axes = append(axes, code)
	}
	sort.Slice(axes, func(i, j int) bool { return axes[i] < axes[j] })
	for _, code := range axes {
		out = append(out, Event{Time: report.Time, Type: EvAbs, Code: code, Value: snap.Abs[code]})
	}
	return append(out, report)
}
