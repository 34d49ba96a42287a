package panel

// State is the engine state active on a tick. The zero value is
// StateAwaitingStart.
type State uint8

const (
	// StateAwaitingStart holds the panel blanked with all counters at zero.
	StateAwaitingStart State = iota
	// StateStartupInit loads an FM6126 configuration pattern.
	StateStartupInit
	// StateStartupLatchReg1 shifts and latches configuration register 1.
	StateStartupLatchReg1
	// StateStartupLatchReg2 shifts and latches configuration register 2.
	StateStartupLatchReg2
	// StateMainShiftRelease releases blank one tick before the first column
	// of a row is shifted.
	StateMainShiftRelease
	// StateMainShift shifts one column per tick.
	StateMainShift
	// StateMainShiftEnd lets the last column settle with the clock low.
	StateMainShiftEnd
	// StateBlank blanks the panel, drives the new row address and latches.
	StateBlank
	// StateUnblank drops blank and latch and advances the row.
	StateUnblank
)

var stateNames = [...]string{
	StateAwaitingStart:    "AwaitingStart",
	StateStartupInit:      "StartupInit",
	StateStartupLatchReg1: "StartupLatch(reg1)",
	StateStartupLatchReg2: "StartupLatch(reg2)",
	StateMainShiftRelease: "MainShift(release)",
	StateMainShift:        "MainShift",
	StateMainShiftEnd:     "MainShiftEnd",
	StateBlank:            "Blank",
	StateUnblank:          "Unblank",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Scanning reports whether the state belongs to the raster scan.
func (s State) Scanning() bool {
	return s >= StateMainShiftRelease
}
