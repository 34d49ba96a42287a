package panel

import "fmt"

// RGB is a one-bit-per-channel colour for a single pixel sample.
type RGB uint8

const (
	Red   RGB = 1 << 0
	Green RGB = 1 << 1
	Blue  RGB = 1 << 2

	Black  RGB = 0
	Yellow     = Red | Green
	Cyan       = Green | Blue
	Purple     = Red | Blue
	White      = Red | Green | Blue
)

const rgbMask = 0b111

// Word is the set of connector signals for one tick.
type Word struct {
	RGB0 RGB // top bank colour lines
	RGB1 RGB // bottom bank colour lines
	// Addr is the row address, 0..31.
	Addr uint8
	// Blank disables the LED outputs when set (OE high).
	Blank bool
	// Latch transfers the shift registers to the output latches.
	Latch bool
	// Clock shifts RGB0 and RGB1 into the column shift registers.
	Clock bool
}

// Packed word layout.
const (
	RGB0Shift  = 0
	RGB1Shift  = 3
	AddrShift  = 6
	BlankShift = 11
	LatchShift = 12
	ClockShift = 13
	// WordBits is the number of significant bits in a packed Word.
	WordBits = 14
)

// Pack returns the word as rgb0 | rgb1<<3 | addr<<6 | blank<<11 | latch<<12 | clock<<13.
func (w Word) Pack() uint16 {
	v := uint16(w.RGB0&rgbMask)<<RGB0Shift |
		uint16(w.RGB1&rgbMask)<<RGB1Shift |
		uint16(w.Addr&(Rows-1))<<AddrShift
	if w.Blank {
		v |= 1 << BlankShift
	}
	if w.Latch {
		v |= 1 << LatchShift
	}
	if w.Clock {
		v |= 1 << ClockShift
	}
	return v
}

// Unpack is the inverse of Pack. Bits above WordBits are ignored.
func Unpack(v uint16) Word {
	return Word{
		RGB0:  RGB(v>>RGB0Shift) & rgbMask,
		RGB1:  RGB(v>>RGB1Shift) & rgbMask,
		Addr:  uint8(v>>AddrShift) & (Rows - 1),
		Blank: v&(1<<BlankShift) != 0,
		Latch: v&(1<<LatchShift) != 0,
		Clock: v&(1<<ClockShift) != 0,
	}
}

func (w Word) String() string {
	return fmt.Sprintf("rgb0=%03b rgb1=%03b addr=%02d blank=%d latch=%d clk=%d",
		w.RGB0, w.RGB1, w.Addr, b2i(w.Blank), b2i(w.Latch), b2i(w.Clock))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// idleWord is presented whenever nothing is being shifted or latched.
var idleWord = Word{Blank: true}
