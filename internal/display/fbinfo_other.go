//go:build !linux

package display

import (
	"errors"
	"os"
)

func queryLayout(f *os.File) (Layout, error) {
	return Layout{}, errors.New("framebuffer ioctls need linux")
}

func framebufferID(f *os.File) string { return "" }
