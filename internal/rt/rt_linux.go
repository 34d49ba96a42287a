//go:build linux

package rt

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func lockMemory() error {
	if err := unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE); err != nil {
		return fmt.Errorf("failed to lock memory: %v", err)
	}
	return nil
}

func pinCPU(cpu int) error {
	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("failed to pin to cpu %d: %v", cpu, err)
	}
	return nil
}
