//go:build linux

package display

import (
	"bytes"
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

// varScreenInfo mirrors struct fb_var_screeninfo as 40 words.
type varScreenInfo [40]uint32

const (
	varXRes         = 0
	varYRes         = 1
	varBitsPerPixel = 6
)

// fixScreenInfo mirrors struct fb_fix_screeninfo.
type fixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MMIOStart    uintptr
	MMIOLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

func fbIoctl(fd uintptr, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func queryLayout(f *os.File) (Layout, error) {
	var v varScreenInfo
	if err := fbIoctl(f.Fd(), fbioGetVScreenInfo, unsafe.Pointer(&v)); err != nil {
		return Layout{}, fmt.Errorf("FBIOGET_VSCREENINFO: %w", err)
	}
	var fix fixScreenInfo
	if err := fbIoctl(f.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&fix)); err != nil {
		return Layout{}, fmt.Errorf("FBIOGET_FSCREENINFO: %w", err)
	}

	l := Layout{
		Width:        int(v[varXRes]),
		Height:       int(v[varYRes]),
		BitsPerPixel: int(v[varBitsPerPixel]),
		LineLength:   int(fix.LineLength),
	}
	if l.LineLength == 0 {
		l.LineLength = (l.Width*l.BitsPerPixel + 7) / 8
	}
	return l, nil
}

// framebufferID returns the driver id string of the device, for logging.
func framebufferID(f *os.File) string {
	var fix fixScreenInfo
	if err := fbIoctl(f.Fd(), fbioGetFScreenInfo, unsafe.Pointer(&fix)); err != nil {
		return ""
	}
	if i := bytes.IndexByte(fix.ID[:], 0); i >= 0 {
		return string(fix.ID[:i])
	}
	return string(fix.ID[:])
}
