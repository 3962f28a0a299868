package input

import (
	"github.com/vovakirdan/matrix-arcade/internal/core"
)

// SourceInfo describes a live source as seen by the Tracker.
type SourceInfo struct {
	ID   string
	Kind DeviceKind
	Slot int // -1 when the source has no controller slot
}

type downSet [core.NumButtons]bool

func (d *downSet) merge(o downSet) {
	for i, v := range o {
		if v {
			d[i] = true
		}
	}
}

type sourceState struct {
	down   downSet
	tapped downSet // went down at some point this tick
	axis   core.Axis

	slot     int     // controller slot held on the previous tick, -1 for none
	slotDown downSet // what the source contributed to that slot
}

// Tracker folds per-tick events into an edge-detected core.InputState.
// A source that leaves the live list takes all its held buttons with it,
// so a disconnected device can never leave a button stuck down. Pad edges
// follow the source occupying the slot: a pad promoted into a slot reports
// the buttons it already holds as Pressed.
type Tracker struct {
	sources  map[string]*sourceState
	prevAll  downSet
	prevKeys downSet
	prevPads [core.MaxSlots]downSet
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{sources: make(map[string]*sourceState)}
}

// Build returns the input state for tick from the tick's events and the
// sources that are still connected. Events from sources missing from live
// are ignored.
func (t *Tracker) Build(tick uint64, events []core.InputEvent, live []SourceInfo) core.InputState {
	in := core.InputState{Tick: tick}

	alive := make(map[string]bool, len(live))
	for _, s := range live {
		alive[s.ID] = true
		st, ok := t.sources[s.ID]
		if !ok {
			st = &sourceState{slot: -1}
			t.sources[s.ID] = st
		}
		st.tapped = downSet{}
	}
	for id := range t.sources {
		if !alive[id] {
			delete(t.sources, id)
		}
	}

	for _, ev := range events {
		st, ok := t.sources[ev.Source]
		if !ok {
			continue
		}
		switch ev.Kind {
		case core.EventButton:
			if int(ev.Button) >= core.NumButtons {
				continue
			}
			st.down[ev.Button] = ev.Down
			if ev.Down {
				st.tapped[ev.Button] = true
			}
		case core.EventAxis:
			st.axis = ev.Axis
		case core.EventQuit:
			in.Quit = true
		}
	}

	var all, keys downSet
	var pads, held [core.MaxSlots]downSet
	for _, s := range live {
		st := t.sources[s.ID]
		eff := st.down
		eff.merge(st.tapped)

		slot := -1
		switch {
		case s.Kind == KindKeyboard:
			keys.merge(eff)
			all.merge(eff)
			in.Keyboard.Connected = true
		case s.Kind == KindGamepad && s.Slot >= 0 && s.Slot < core.MaxSlots:
			slot = s.Slot
			pads[slot].merge(eff)
			all.merge(eff)
			in.Pads[slot].Connected = true
			in.Pads[slot].Axis = st.axis
			if st.slot == slot {
				held[slot].merge(st.slotDown)
			}
		}
		st.slot, st.slotDown = slot, eff
	}

	fill(&in.Buttons, t.prevAll, all)
	fill(&in.Keyboard.Buttons, t.prevKeys, keys)
	for i := range pads {
		fillSlot(&in.Pads[i].Buttons, t.prevPads[i], held[i], pads[i])
	}

	t.prevAll, t.prevKeys, t.prevPads = all, keys, pads
	return in
}

func fill(states *core.ButtonStates, prev, cur downSet) {
	for i := range states {
		states[i] = core.Transition(prev[i], cur[i])
	}
}

// fillSlot is fill for a controller slot. A down button is Held only when
// the source now in the slot already had it down there on the previous
// tick; releases come from whatever the slot showed before.
func fillSlot(states *core.ButtonStates, prev, held, cur downSet) {
	for i := range states {
		switch {
		case cur[i] && held[i]:
			states[i] = core.Held
		case cur[i]:
			states[i] = core.Pressed
		case prev[i]:
			states[i] = core.Released
		default:
			states[i] = core.Idle
		}
	}
}
