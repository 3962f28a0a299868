// Package evdev reads Linux input devices (/dev/input/event*) without
// blocking and exposes their capabilities.
package evdev

import (
	"fmt"
	"time"
)

// Event types.
const (
	EvSyn uint16 = 0x00
	EvKey uint16 = 0x01
	EvRel uint16 = 0x02
	EvAbs uint16 = 0x03
	EvMsc uint16 = 0x04
)

// EV_SYN codes.
const (
	SynReport  uint16 = 0
	SynDropped uint16 = 3
)

// Key values carried by EV_KEY events.
const (
	KeyReleased int32 = 0
	KeyPressed  int32 = 1
	KeyRepeat   int32 = 2
)

// Keyboard codes.
const (
	KeyEsc       uint16 = 1
	KeyBackspace uint16 = 14
	KeyTab       uint16 = 15
	KeyQ         uint16 = 16
	KeyY         uint16 = 21
	KeyEnter     uint16 = 28
	KeyA         uint16 = 30
	KeyS         uint16 = 31
	KeyL         uint16 = 38
	KeyX         uint16 = 45
	KeySpace     uint16 = 57
	KeyKPEnter   uint16 = 96
	KeyUp        uint16 = 103
	KeyPageUp    uint16 = 104
	KeyLeft      uint16 = 105
	KeyRight     uint16 = 106
	KeyDown      uint16 = 108
	KeyPageDown  uint16 = 109
)

// Gamepad button codes.
const (
	BtnSouth     uint16 = 0x130
	BtnEast      uint16 = 0x131
	BtnC         uint16 = 0x132
	BtnNorth     uint16 = 0x133
	BtnWest      uint16 = 0x134
	BtnZ         uint16 = 0x135
	BtnTL        uint16 = 0x136
	BtnTR        uint16 = 0x137
	BtnTL2       uint16 = 0x138
	BtnTR2       uint16 = 0x139
	BtnSelect    uint16 = 0x13a
	BtnStart     uint16 = 0x13b
	BtnMode      uint16 = 0x13c
	BtnThumbL    uint16 = 0x13d
	BtnThumbR    uint16 = 0x13e
	BtnDpadUp    uint16 = 0x220
	BtnDpadDown  uint16 = 0x221
	BtnDpadLeft  uint16 = 0x222
	BtnDpadRight uint16 = 0x223
)

// Absolute axis codes.
const (
	AbsX     uint16 = 0x00
	AbsY     uint16 = 0x01
	AbsZ     uint16 = 0x02
	AbsRX    uint16 = 0x03
	AbsRY    uint16 = 0x04
	AbsRZ    uint16 = 0x05
	AbsGas   uint16 = 0x09
	AbsBrake uint16 = 0x0a
	AbsHat0X uint16 = 0x10
	AbsHat0Y uint16 = 0x11
)

// Capability table sizes.
const (
	keyMax = 0x2ff
	absMax = 0x3f
	evMax  = 0x1f
)

// Event is one decoded input_event.
type Event struct {
	Time  time.Time
	Type  uint16
	Code  uint16
	Value int32
}

func (e Event) String() string {
	return fmt.Sprintf("%s type=%d code=%s value=%d", e.Time.Format("15:04:05.000"), e.Type, CodeName(e.Type, e.Code), e.Value)
}

// codeNames maps the names used in gamepad profiles to codes. BTN_A/B/X/Y
// are the kernel aliases of the compass names.
var codeNames = map[string]uint16{
	"BTN_SOUTH":      BtnSouth,
	"BTN_A":          BtnSouth,
	"BTN_EAST":       BtnEast,
	"BTN_B":          BtnEast,
	"BTN_C":          BtnC,
	"BTN_NORTH":      BtnNorth,
	"BTN_X":          BtnNorth,
	"BTN_WEST":       BtnWest,
	"BTN_Y":          BtnWest,
	"BTN_Z":          BtnZ,
	"BTN_TL":         BtnTL,
	"BTN_TR":         BtnTR,
	"BTN_TL2":        BtnTL2,
	"BTN_TR2":        BtnTR2,
	"BTN_SELECT":     BtnSelect,
	"BTN_START":      BtnStart,
	"BTN_MODE":       BtnMode,
	"BTN_THUMBL":     BtnThumbL,
	"BTN_THUMBR":     BtnThumbR,
	"BTN_DPAD_UP":    BtnDpadUp,
	"BTN_DPAD_DOWN":  BtnDpadDown,
	"BTN_DPAD_LEFT":  BtnDpadLeft,
	"BTN_DPAD_RIGHT": BtnDpadRight,
	"ABS_X":          AbsX,
	"ABS_Y":          AbsY,
	"ABS_Z":          AbsZ,
	"ABS_RX":         AbsRX,
	"ABS_RY":         AbsRY,
	"ABS_RZ":         AbsRZ,
	"ABS_GAS":        AbsGas,
	"ABS_BRAKE":      AbsBrake,
	"ABS_HAT0X":      AbsHat0X,
	"ABS_HAT0Y":      AbsHat0Y,
}

// ParseCode resolves a BTN_* or ABS_* name, or a numeric code such as
// "0x130" or "304".
func ParseCode(name string) (uint16, error) {
	if c, ok := codeNames[name]; ok {
		return c, nil
	}
	var n uint16
	if _, err := fmt.Sscan(name, &n); err == nil {
		return n, nil
	}
	return 0, fmt.Errorf("evdev: unknown code %q", name)
}

// CodeName returns a readable name for a code of the given event type.
func CodeName(typ, code uint16) string {
	prefix := "BTN_"
	if typ == EvAbs {
		prefix = "ABS_"
	}
	best := ""
	for name, c := range codeNames {
		if c != code || len(name) < len(prefix) || name[:len(prefix)] != prefix {
			continue
		}
		// Prefer the compass names, which are longer than the aliases.
		if len(name) > len(best) {
			best = name
		}
	}
	if best != "" {
		return best
	}
	return fmt.Sprintf("0x%x", code)
}
