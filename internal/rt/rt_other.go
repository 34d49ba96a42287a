//go:build !linux

package rt

import "errors"

var errUnsupported = errors.New("not supported on this platform")

func lockMemory() error {
	return errUnsupported
}

func pinCPU(int) error {
	return errUnsupported
}
