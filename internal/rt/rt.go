// Package rt prepares the process for steady tick output: memory locked
// against paging and the render goroutine pinned to one CPU.
package rt

import "runtime"

// Options selects what Prepare does.
type Options struct {
	// CPU pins the calling goroutine's thread to this CPU. Negative leaves
	// scheduling alone.
	CPU int
	// LockMemory locks current and future pages into RAM.
	LockMemory bool
}

// Prepare applies opts. It locks the calling goroutine to its OS thread
// whenever a CPU is given, so call it from the goroutine that will run the
// engine and call Release when it is done.
func Prepare(opts Options) error {
	if opts.LockMemory {
		if err := lockMemory(); err != nil {
			return err
		}
	}
	if opts.CPU >= 0 {
		runtime.LockOSThread()
		if err := pinCPU(opts.CPU); err != nil {
			runtime.UnlockOSThread()
			return err
		}
	}
	return nil
}

// Release undoes the thread lock taken by Prepare.
func Release(opts Options) {
	if opts.CPU >= 0 {
		runtime.UnlockOSThread()
	}
}
