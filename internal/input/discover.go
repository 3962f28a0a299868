package input

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matrix-arcade/internal/input/evdev"
)

// DefaultDeviceGlob matches the evdev nodes on a Linux system.
const DefaultDeviceGlob = "/dev/input/event*"

// Capabilities is the part of an evdev device Classify needs.
type Capabilities interface {
	HasEventType(ev uint16) bool
	HasKey(code uint16) bool
	HasAbs(code uint16) bool
}

// Classify decides whether a device is a gamepad, a keyboard or neither.
func Classify(c Capabilities) DeviceKind {
	if !c.HasEventType(evdev.EvKey) {
		return KindUnknown
	}
	if c.HasKey(evdev.BtnSouth) || c.HasKey(evdev.BtnDpadUp) ||
		(c.HasKey(evdev.BtnStart) && c.HasEventType(evdev.EvAbs)) {
		return KindGamepad
	}
	if c.HasKey(evdev.KeyA) && c.HasKey(evdev.KeyEnter) && c.HasKey(evdev.KeySpace) {
		return KindKeyboard
	}
	return KindUnknown
}

var (
	probeButtons = []uint16{
		evdev.BtnSouth, evdev.BtnEast, evdev.BtnNorth, evdev.BtnWest,
		evdev.BtnTL, evdev.BtnTR, evdev.BtnTL2, evdev.BtnTR2,
		evdev.BtnSelect, evdev.BtnStart, evdev.BtnMode, evdev.BtnThumbL, evdev.BtnThumbR,
		evdev.BtnDpadUp, evdev.BtnDpadDown, evdev.BtnDpadLeft, evdev.BtnDpadRight,
	}
	probeAxes = []uint16{
		evdev.AbsX, evdev.AbsY, evdev.AbsZ, evdev.AbsRX, evdev.AbsRY, evdev.AbsRZ,
		evdev.AbsGas, evdev.AbsBrake, evdev.AbsHat0X, evdev.AbsHat0Y,
	}
)

// Describe lists the gamepad buttons and axes a device reports, by their
// profile names.
func Describe(c Capabilities) []string {
	var out []string
	for _, code := range probeButtons {
		if c.HasKey(code) {
			out = append(out, evdev.CodeName(evdev.EvKey, code))
		}
	}
	if !c.HasEventType(evdev.EvAbs) {
		return out
	}
	for _, code := range probeAxes {
		if c.HasAbs(code) {
			out = append(out, evdev.CodeName(evdev.EvAbs, code))
		}
	}
	return out
}

// EvdevDiscoverer finds keyboards and gamepads under /dev/input.
type EvdevDiscoverer struct {
	Glob     string
	Profiles *ProfileSet
	Grab     bool
	Log      *log.Logger
}

// Scan implements Discoverer.
func (d *EvdevDiscoverer) Scan() ([]string, error) {
	glob := d.Glob
	if glob == "" {
		glob = DefaultDeviceGlob
	}
	paths, err := filepath.Glob(glob)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// Open implements Discoverer.
func (d *EvdevDiscoverer) Open(path, id string) (Source, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, err
	}

	kind := Classify(dev)
	if kind == KindUnknown {
		_ = dev.Close()
		return nil, ErrIgnored
	}
	if d.Grab {
		if err := dev.Grab(); err != nil && d.Log != nil {
			d.Log.Warn("grab failed", "path", path, "err", err)
		}
	}

	if kind == KindKeyboard {
		return NewKeyboardSource(id, dev.Name(), dev), nil
	}
	profiles := d.Profiles
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	return NewGamepadSource(id, dev.Name(), dev, profiles.Match(dev.Name())), nil
}

// DeviceReport describes one evdev node for the devices command.
type DeviceReport struct {
	Path    string
	Name    string
	Kind    DeviceKind
	Profile string
	Caps    []string
	Err     error
}

// ListDevices opens every node matching glob, classifies it and closes it
// again.
func ListDevices(glob string, profiles *ProfileSet) ([]DeviceReport, error) {
	d := &EvdevDiscoverer{Glob: glob, Profiles: profiles}
	paths, err := d.Scan()
	if err != nil {
		return nil, fmt.Errorf("input: scan devices: %w", err)
	}
	if profiles == nil {
		profiles = DefaultProfiles()
	}

	reports := make([]DeviceReport, 0, len(paths))
	for _, p := range paths {
		r := DeviceReport{Path: p}
		dev, err := evdev.Open(p)
		if err != nil {
			r.Err = err
			reports = append(reports, r)
			continue
		}
		r.Name = dev.Name()
		r.Kind = Classify(dev)
		if r.Kind == KindGamepad {
			if prof := profiles.Match(r.Name); prof != nil {
				r.Profile = prof.Name
			}
			r.Caps = Describe(dev)
		}
		_ = dev.Close()
		reports = append(reports, r)
	}
	return reports, nil
}
