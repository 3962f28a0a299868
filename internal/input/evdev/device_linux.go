//go:build linux

package evdev

import (
	"bytes"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// rawEvent mirrors struct input_event for the running architecture.
type rawEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

const rawEventSize = int(unsafe.Sizeof(rawEvent{}))

// absInfo mirrors struct input_absinfo.
type absInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

const (
	iocWrite = 1
	iocRead  = 2
)

func ioc(dir, typ, nr, size uintptr) uint {
	return uint(dir<<30 | size<<16 | typ<<8 | nr)
}

func eviocgname(n int) uint { return ioc(iocRead, 'E', 0x06, uintptr(n)) }
func eviocgbit(ev, n int) uint { return ioc(iocRead, 'E', 0x20+uintptr(ev), uintptr(n)) }
func eviocgkey(n int) uint { return ioc(iocRead, 'E', 0x18, uintptr(n)) }
func eviocgabs(code uint16) uint { return ioc(iocRead, 'E', 0x40+uintptr(code), unsafe.Sizeof(absInfo{})) }

var eviocgrab = ioc(iocWrite, 'E', 0x90, unsafe.Sizeof(int32(0)))

func ioctl(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// Device is an opened evdev node. Reads never block.
type Device struct {
	fd      int
	path    string
	name    string
	evBits  []byte
	keyBits []byte
	absBits []byte
	grabbed bool
	buf     []rawEvent
	sync    *syncer
}

// Open opens path in non-blocking mode and reads its name and capabilities.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "evdev: open %s", path)
	}

	d := &Device{
		fd:      fd,
		path:    path,
		evBits:  make([]byte, evMax/8+1),
		keyBits: make([]byte, keyMax/8+1),
		absBits: make([]byte, absMax/8+1),
		buf:     make([]rawEvent, 64),
		sync:    newSyncer(),
	}

	name := make([]byte, 256)
	if err := ioctl(fd, eviocgname(len(name)), unsafe.Pointer(&name[0])); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "evdev: EVIOCGNAME %s", path)
	}
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	d.name = string(name)

	if err := ioctl(fd, eviocgbit(0, len(d.evBits)), unsafe.Pointer(&d.evBits[0])); err != nil {
		unix.Close(fd)
		return nil, errors.Wrapf(err, "evdev: EVIOCGBIT %s", path)
	}
	if d.HasEventType(EvKey) {
		if err := ioctl(fd, eviocgbit(int(EvKey), len(d.keyBits)), unsafe.Pointer(&d.keyBits[0])); err != nil {
			unix.Close(fd)
			return nil, errors.Wrapf(err, "evdev: EVIOCGBIT(EV_KEY) %s", path)
		}
	}
	if d.HasEventType(EvAbs) {
		if err := ioctl(fd, eviocgbit(int(EvAbs), len(d.absBits)), unsafe.Pointer(&d.absBits[0])); err != nil {
			unix.Close(fd)
			return nil, errors.Wrapf(err, "evdev: EVIOCGBIT(EV_ABS) %s", path)
		}
	}

	return d, nil
}

// Path returns the device node path.
func (d *Device) Path() string { return d.path }

// Name returns the name reported by the driver.
func (d *Device) Name() string { return d.name }

// HasEventType reports whether the device emits events of type ev.
func (d *Device) HasEventType(ev uint16) bool { return testBit(d.evBits, ev) }

// HasKey reports whether the device can emit the key or button code.
func (d *Device) HasKey(code uint16) bool { return testBit(d.keyBits, code) }

// HasAbs reports whether the device has the absolute axis.
func (d *Device) HasAbs(code uint16) bool { return testBit(d.absBits, code) }

// AbsRange returns the minimum and maximum of an absolute axis.
func (d *Device) AbsRange(code uint16) (int32, int32, bool) {
	if !d.HasAbs(code) {
		return 0, 0, false
	}
	var info absInfo
	if err := ioctl(d.fd, eviocgabs(code), unsafe.Pointer(&info)); err != nil {
		return 0, 0, false
	}
	if info.Maximum <= info.Minimum {
		return 0, 0, false
	}
	return info.Minimum, info.Maximum, true
}

// Grab takes exclusive access so key presses do not reach the console.
func (d *Device) Grab() error {
	if err := unix.IoctlSetInt(d.fd, eviocgrab, 1); err != nil {
		return errors.Wrapf(err, "evdev: grab %s", d.path)
	}
	d.grabbed = true
	return nil
}

// Read returns every event queued on the device. It returns no events and
// no error when nothing is pending. An unplugged device reports ENODEV.
// After a kernel queue overflow the key and axis state is read back, so a
// release lost in the overflow still reaches the caller.
func (d *Device) Read() ([]Event, error) {
	events, err := d.read()
	if err != nil {
		return events, err
	}
	return d.sync.filter(events, d.snapshot)
}

func (d *Device) read() ([]Event, error) {
	var events []Event
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&d.buf[0])), len(d.buf)*rawEventSize)
	for {
		n, err := unix.Read(d.fd, raw)
		if err == unix.EAGAIN || err == unix.EINTR {
			return events, nil
		}
		if err != nil {
			return events, errors.Wrapf(err, "evdev: read %s", d.path)
		}
		if n == 0 {
			return events, errors.Errorf("evdev: read %s: end of file", d.path)
		}
		for _, r := range d.buf[:n/rawEventSize] {
			events = append(events, Event{
				Time:  time.Unix(int64(r.Time.Sec), int64(r.Time.Usec)*1000),
				Type:  r.Type,
				Code:  r.Code,
				Value: r.Value,
			})
		}
		if n < len(raw) {
			return events, nil
		}
	}
}

// snapshot reads the current key bitmap and axis values.
func (d *Device) snapshot() (Snapshot, error) {
	snap := Snapshot{Keys: make([]byte, keyMax/8+1), Abs: make(map[uint16]int32)}
	if d.HasEventType(EvKey) {
		if err := ioctl(d.fd, eviocgkey(len(snap.Keys)), unsafe.Pointer(&snap.Keys[0])); err != nil {
			return snap, errors.Wrapf(err, "evdev: EVIOCGKEY %s", d.path)
		}
	}
	for code := uint16(0); code <= absMax; code++ {
		if !d.HasAbs(code) {
			continue
		}
		var info absInfo
		if err := ioctl(d.fd, eviocgabs(code), unsafe.Pointer(&info)); err != nil {
			return snap, errors.Wrapf(err, "evdev: EVIOCGABS %s", d.path)
		}
		snap.Abs[code] = info.Value
	}
	return snap, nil
}

// Close releases the grab and closes the node.
func (d *Device) Close() error {
	if d.grabbed {
		_ = unix.IoctlSetInt(d.fd, eviocgrab, 0)
		d.grabbed = false
	}
	return unix.Close(d.fd)
}
