//go:build !linux

package evdev

import "github.com/pkg/errors"

// ErrUnsupported is returned on platforms without evdev.
var ErrUnsupported = errors.New("evdev: not supported on this platform")

// Device is unavailable outside Linux.
type Device struct{}

// Open always fails outside Linux.
func Open(path string) (*Device, error) {
	return nil, errors.Wrap(ErrUnsupported, path)
}

func (d *Device) Path() string                              { return "" }
func (d *Device) Name() string                              { return "" }
func (d *Device) HasEventType(ev uint16) bool               { return false }
func (d *Device) HasKey(code uint16) bool                   { return false }
func (d *Device) HasAbs(code uint16) bool                   { return false }
func (d *Device) AbsRange(code uint16) (int32, int32, bool) { return 0, 0, false }
func (d *Device) Grab() error                               { return ErrUnsupported }
func (d *Device) Read() ([]Event, error)                    { return nil, ErrUnsupported }
func (d *Device) Close() error                              { return nil }
