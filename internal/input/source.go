// Package input turns keyboards, gamepads and terminal keys into the
// per-tick core.InputState. Devices are discovered and hot-plugged by the
// Registry; the Tracker folds their events into edge-detected states.
package input

import (
	"errors"
	"time"

	"github.com/vovakirdan/matrix-arcade/internal/core"
	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

// DeviceKind classifies an input source.
type DeviceKind uint8

const (
	KindUnknown DeviceKind = iota
	KindKeyboard
	KindGamepad
)

// String returns a human-readable name for the kind.
func (k DeviceKind) String() string {
	switch k {
	case KindKeyboard:
		return "keyboard"
	case KindGamepad:
		return "gamepad"
	default:
		return "unknown"
	}
}

// ErrIgnored is returned by a Discoverer for devices that are not game
// input (power buttons, mice, sensors).
var ErrIgnored = errors.New("input: not a game input device")

// Source produces normalized events. Poll must not block.
type Source interface {
	ID() string
	Name() string
	Kind() DeviceKind
	Poll(now time.Time) ([]core.InputEvent, error)
	Close() error
}

// RawDevice is the evdev-level device a keyboard or gamepad source reads.
type RawDevice interface {
	Read() ([]evdev.Event, error)
	Close() error
}

// AbsRanger reports the range of an absolute axis.
type AbsRanger interface {
	AbsRange(code uint16) (int32, int32, bool)
}

func eventTime(ev evdev.Event, now time.Time) time.Time {
	if ev.Time.IsZero() {
		return now
	}
	return ev.Time
}
