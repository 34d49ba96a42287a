package panel

// FM6126 configuration register contents, shifted most significant bit
// first, four times per burst to fill the 64 columns of the chain.
const (
	PatternReg1 uint16 = 0x7fff
	PatternReg2 uint16 = 0x0040
)

const (
	// startupBurst is the number of bits shifted per register.
	startupBurst = Columns
	// The latch line is raised once the latch counter reaches zero, which
	// marks the trailing bits of the burst as a register write.
	reg1LatchCount = 53
	reg2LatchCount = 52
)

// StartupTicks is the number of ticks from reset until StartupSequencer
// reports done.
const StartupTicks = 2 + startupBurst + 1 + startupBurst

type startupPhase uint8

const (
	phaseIdle startupPhase = iota
	phaseLoadReg1
	phaseShiftReg1
	phaseLoadReg2
	phaseShiftReg2
	phaseDone
)

// StartupSequencer generates the FM6126 wake-up handshake once after reset.
type StartupSequencer struct {
	phase   startupPhase
	pattern uint16
	shifted int
	latch   int
}

// Done reports whether the handshake has completed. Once true it stays true
// until Reset.
func (s *StartupSequencer) Done() bool {
	return s.phase == phaseDone
}

// State returns the engine state for the current tick. It is only
// meaningful while Done is false.
func (s *StartupSequencer) State() State {
	switch s.phase {
	case phaseLoadReg1, phaseLoadReg2:
		return StateStartupInit
	case phaseShiftReg1:
		return StateStartupLatchReg1
	case phaseShiftReg2:
		return StateStartupLatchReg2
	}
	return StateAwaitingStart
}

// Word returns the output for the current tick.
func (s *StartupSequencer) Word() Word {
	if s.phase != phaseShiftReg1 && s.phase != phaseShiftReg2 {
		return idleWord
	}
	var c RGB
	if s.pattern&0x8000 != 0 {
		c = White
	}
	return Word{
		RGB0:  c,
		RGB1:  c,
		Blank: true,
		Latch: s.latch == 0,
		Clock: true,
	}
}

// Tick advances the sequencer by one clock.
func (s *StartupSequencer) Tick() {
	switch s.phase {
	case phaseIdle:
		s.phase = phaseLoadReg1
	case phaseLoadReg1:
		s.load(PatternReg1, reg1LatchCount)
		s.phase = phaseShiftReg1
	case phaseShiftReg1:
		if s.shift() {
			s.phase = phaseLoadReg2
		}
	case phaseLoadReg2:
		s.load(PatternReg2, reg2LatchCount)
		s.phase = phaseShiftReg2
	case phaseShiftReg2:
		if s.shift() {
			s.phase = phaseDone
		}
	}
}

// Reset restarts the handshake from the first register.
func (s *StartupSequencer) Reset() {
	*s = StartupSequencer{}
}

func (s *StartupSequencer) load(pattern uint16, latch int) {
	s.pattern = pattern
	s.shifted = 0
	s.latch = latch
}

// shift rotates the next bit into place and reports whether the burst is
// complete.
func (s *StartupSequencer) shift() bool {
	s.pattern = s.pattern<<1 | s.pattern>>15
	if s.latch > 0 {
		s.latch--
	}
	s.shifted++
	return s.shifted == startupBurst
}
