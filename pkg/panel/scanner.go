package panel

// Scan timing.
const (
	// RowTicks is the number of ticks spent on one row: the blank release,
	// 64 column shifts, shift end, blank and unblank.
	RowTicks = 1 + Columns + 3
	// SubframeTicks is the number of ticks per subframe.
	SubframeTicks = Rows * RowTicks
	// FrameTicks is the number of ticks per frame.
	FrameTicks = Subframes * SubframeTicks
)

// scanRegs is the part of the scan state machine that determines its own
// future. step is total and has no side effects, which lets the sequencer
// look latency ticks ahead to drive the lookahead counter.
type scanRegs struct {
	state State
	// delay counts the start delay ticks left in StateAwaitingStart. Zero
	// means the sequencer is still waiting for the start condition.
	delay uint8
	// column mirrors Pipeline.Scan().Column().
	column uint8
}

// step returns the registers for the next tick and whether the scan counter
// advances on this one.
func (r scanRegs) step(start bool, latency int) (scanRegs, bool) {
	switch r.state {
	case StateAwaitingStart:
		switch {
		case r.delay > 0:
			r.delay--
			if r.delay == 0 {
				r.state = StateMainShiftRelease
			}
		case start && latency == 0:
			r.state = StateMainShiftRelease
		case start:
			r.delay = uint8(latency)
		}
		return r, false
	case StateMainShiftRelease:
		r.state = StateMainShift
		return r, false
	case StateMainShift:
		if r.column == Columns-1 {
			r.column = 0
			r.state = StateMainShiftEnd
		} else {
			r.column++
		}
		return r, true
	case StateMainShiftEnd:
		r.state = StateBlank
	case StateBlank:
		r.state = StateUnblank
	default:
		r.state = StateMainShiftRelease
	}
	return r, false
}

// ScanSequencer raster-scans the panel once the start condition is seen.
type ScanSequencer struct {
	latency int
	regs    scanRegs
	pos     Pipeline
	// row is the row address whose columns are being shifted.
	row uint8
	// addr is the row address presented on the connector.
	addr  uint8
	ready bool
}

// NewScanSequencer returns a sequencer in StateAwaitingStart. The latency
// must already be validated.
func NewScanSequencer(latency int) *ScanSequencer {
	return &ScanSequencer{latency: latency}
}

// State returns the state of the current tick.
func (s *ScanSequencer) State() State {
	return s.regs.state
}

// Ready reports whether the start delay has elapsed. It stays true until
// Reset.
func (s *ScanSequencer) Ready() bool {
	return s.ready
}

// Scan returns the position shifted on the current tick.
func (s *ScanSequencer) Scan() Position {
	return s.pos.Scan()
}

// Lookahead returns the position published to painters on the current tick.
func (s *ScanSequencer) Lookahead() Position {
	return s.pos.Lookahead()
}

// Pipeline exposes both counters.
func (s *ScanSequencer) Pipeline() *Pipeline {
	return &s.pos
}

// Word returns the output for the current tick. sample is the painter
// decision that arrived for the current scan position.
func (s *ScanSequencer) Word(sample Sample) Word {
	w := Word{Addr: s.addr}
	switch s.regs.state {
	case StateAwaitingStart:
		w.Blank = true
	case StateMainShift:
		w.RGB0 = sample.RGB0 & rgbMask
		w.RGB1 = sample.RGB1 & rgbMask
		w.Clock = true
	case StateBlank:
		// The new address only becomes visible while blanked.
		w.Addr = s.row
		w.Blank = true
		w.Latch = true
	}
	return w
}

// Tick advances the sequencer. start is the start condition sampled on this
// tick.
func (s *ScanSequencer) Tick(start bool) {
	next, advance := s.regs.step(start, s.latency)

	switch s.regs.state {
	case StateAwaitingStart:
		if next.state == StateMainShiftRelease {
			s.ready = true
		}
	case StateBlank:
		s.addr = s.row
	case StateUnblank:
		s.row = (s.row + 1) % Rows
	}

	s.pos.advance(advance, s.advancesIn(s.latency, start))
	s.regs = next
}

// advancesIn reports whether the scan counter advances k ticks from now.
// The start condition is monotone, so holding it for the look ahead is
// exact.
func (s *ScanSequencer) advancesIn(k int, start bool) bool {
	r := s.regs
	var advance bool
	for i := 0; i <= k; i++ {
		r, advance = r.step(start, s.latency)
	}
	return advance
}

// Reset returns the sequencer to StateAwaitingStart with every counter zeroed.
func (s *ScanSequencer) Reset() {
	*s = ScanSequencer{latency: s.latency}
}
