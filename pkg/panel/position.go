package panel

import "fmt"

// Panel geometry. None of it is configurable.
const (
	// Columns is the number of pixels shifted per row.
	Columns = 64
	// Rows is the number of addressable row pairs.
	Rows = 32
	// PhysicalRows is the number of pixel rows on the panel (two banks).
	PhysicalRows = 2 * Rows
	// SubframeBits is the width of the PWM subframe counter.
	SubframeBits = 8
	// Subframes is the number of subframes in a frame.
	Subframes = 1 << SubframeBits
	// FrameBits is the width of the frame counter.
	FrameBits = 12
	// Frames is the number of frames before the frame counter wraps.
	Frames = 1 << FrameBits
)

const (
	columnBits    = 6
	rowBits       = 5
	rowShift      = columnBits
	subframeShift = rowShift + rowBits
	frameShift    = subframeShift + SubframeBits
	positionBits  = frameShift + FrameBits

	positionMask = 1<<positionBits - 1
)

// Position is a packed scan coordinate. Column occupies the least
// significant bits, followed by row, subframe and frame, so incrementing the
// packed value walks the panel in raster order and carries from one field
// into the next like an unsigned counter.
type Position uint32

// MakePosition packs a coordinate. Out of range fields are truncated.
func MakePosition(column, row int, subframe uint8, frame uint16) Position {
	p := uint32(column) & (Columns - 1)
	p |= (uint32(row) & (Rows - 1)) << rowShift
	p |= uint32(subframe) << subframeShift
	p |= (uint32(frame) & (Frames - 1)) << frameShift
	return Position(p)
}

// Column returns the column being shifted, 0..63.
func (p Position) Column() int {
	return int(p & (Columns - 1))
}

// Row returns the row address, 0..31.
func (p Position) Row() int {
	return int(p>>rowShift) & (Rows - 1)
}

// Row0 returns the physical row of the top bank (rgb0).
func (p Position) Row0() int {
	return p.Row()
}

// Row1 returns the physical row of the bottom bank (rgb1).
func (p Position) Row1() int {
	return p.Row() + Rows
}

// Subframe returns the PWM subframe, 0..255.
func (p Position) Subframe() uint8 {
	return uint8(p >> subframeShift)
}

// Frame returns the frame counter, 0..4095.
func (p Position) Frame() uint16 {
	return uint16(p>>frameShift) & (Frames - 1)
}

// Next returns the position one column later.
func (p Position) Next() Position {
	return (p + 1) & positionMask
}

// Coord returns the painter coordinate of this position for a bank
// (0 for the top half, 1 for the bottom half).
func (p Position) Coord(bank int) Coord {
	y := p.Row0()
	if bank != 0 {
		y = p.Row1()
	}
	return Coord{
		X:        p.Column(),
		Y:        y,
		Subframe: p.Subframe(),
		Frame:    p.Frame(),
	}
}

func (p Position) String() string {
	return fmt.Sprintf("x=%d row=%d sub=%d frame=%d", p.Column(), p.Row(), p.Subframe(), p.Frame())
}

// Pipeline holds the scan counter and the lookahead counter published to
// painters. It is mutated only by the ScanSequencer.
type Pipeline struct {
	scan      Position
	lookahead Position
}

// Scan returns the position being shifted out on the current tick.
func (p *Pipeline) Scan() Position {
	return p.scan
}

// Lookahead returns the position painters must paint on the current tick.
func (p *Pipeline) Lookahead() Position {
	return p.lookahead
}

// Lead returns how many columns the lookahead counter is ahead of the scan
// counter.
func (p *Pipeline) Lead() int {
	return int((p.lookahead - p.scan) & positionMask)
}

func (p *Pipeline) advance(scan, lookahead bool) {
	if scan {
		p.scan = p.scan.Next()
	}
	if lookahead {
		p.lookahead = p.lookahead.Next()
	}
}

func (p *Pipeline) reset() {
	*p = Pipeline{}
}
