package evdev

import (
	"errors"
	"testing"
	"time"
)

var t0 = time.Unix(100, 0)

func key(code uint16, value int32) Event {
	return Event{Time: t0, Type: EvKey, Code: code, Value: value}
}

func syn(code uint16) Event {
	return Event{Time: t0, Type: EvSyn, Code: code}
}

func keysDown(codes ...uint16) []byte {
	bits := make([]byte, keyMax/8+1)
	for _, c := range codes {
		bits[c/8] |= 1 << (c % 8)
	}
	return bits
}

func noRead(t *testing.T) func() (Snapshot, error) {
	return func() (Snapshot, error) {
		t.Fatal("state read back without a dropped report")
		return Snapshot{}, nil
	}
}

func TestSyncerPassesCleanStream(t *testing.T) {
	s := newSyncer()
	in := []Event{key(BtnSouth, KeyPressed), syn(SynReport), key(BtnSouth, KeyRepeat), key(BtnSouth, KeyReleased), syn(SynReport)}
	out, err := s.filter(in, noRead(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) {
		t.Fatalf("got %d events, want %d", len(out), len(in))
	}
	if testBit(s.keys, BtnSouth) {
		t.Error("released button still tracked as down")
	}
}

func TestSyncerReleasesKeysLostInOverflow(t *testing.T) {
	s := newSyncer()
	if _, err := s.filter([]Event{key(BtnSouth, KeyPressed), key(BtnStart, KeyPressed), syn(SynReport)}, noRead(t)); err != nil {
		t.Fatal(err)
	}

	// The queue overflowed: the release of BTN_SOUTH was lost, BTN_EAST went
	// down meanwhile and the hat came back to centre.
	in := []Event{
		syn(SynDropped),
		key(BtnStart, KeyReleased), // partial packet, discarded
		syn(SynReport),
		key(BtnStart, KeyRepeat),
		syn(SynReport),
	}
	reads := 0
	out, err := s.filter(in, func() (Snapshot, error) {
		reads++
		return Snapshot{Keys: keysDown(BtnStart, BtnEast), Abs: map[uint16]int32{AbsHat0Y: 0, AbsRX: 128}}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if reads != 1 {
		t.Fatalf("state read %d times, want 1", reads)
	}

	want := []Event{
		key(BtnSouth, KeyReleased),
		key(BtnEast, KeyPressed),
		{Time: t0, Type: EvAbs, Code: AbsRX, Value: 128},
		{Time: t0, Type: EvAbs, Code: AbsHat0Y, Value: 0},
		syn(SynReport),
		key(BtnStart, KeyRepeat),
		syn(SynReport),
	}
	if len(out) != len(want) {
		t.Fatalf("got %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, out[i], want[i])
		}
	}
	if testBit(s.keys, BtnSouth) || !testBit(s.keys, BtnEast) || !testBit(s.keys, BtnStart) {
		t.Error("tracked key state does not match the device after resync")
	}
}

func TestSyncerReadError(t *testing.T) {
	s := newSyncer()
	_, err := s.filter([]Event{syn(SynDropped), syn(SynReport)}, func() (Snapshot, error) {
		return Snapshot{}, errors.New("no such device")
	})
	if err == nil {
		t.Fatal("expected the read-back error")
	}
}

func TestSyncerWaitsForReport(t *testing.T) {
	s := newSyncer()
	out, err := s.filter([]Event{syn(SynDropped), key(BtnSouth, KeyPressed)}, noRead(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 || !s.dropping {
		t.Fatalf("events before the next report must be dropped, got %v", out)
	}
	out, err = s.filter([]Event{syn(SynReport)}, func() (Snapshot, error) {
		return Snapshot{Keys: keysDown()}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != syn(SynReport) {
		t.Errorf("got %v, want a lone report", out)
	}
}
