package sink

import "github.com/fkcurrie/fm6126-scan/pkg/panel"

// Double data rate output layout. Each control signal gets two bits, one
// per half of the pixel clock period, so the shift clock can rise in the
// middle of a word while the data lines are stable.
const (
	DDRBlankShift = 11
	DDRLatchShift = 13
	DDRClockShift = 15
	// DDRBits is the width of a packed DDR word.
	DDRBits = 17
)

// PackDDR returns w in the double data rate layout used by FPGA style
// output stages: rgb0 | rgb1<<3 | addr<<6 | blank<<11 | latch<<13 | sclk<<15,
// where blank and latch are held for both halves and sclk is high only in the
// second half of a shifting word.
func PackDDR(w panel.Word) uint32 {
	v := uint32(w.Pack()) & (1<<DDRBlankShift - 1)
	if w.Blank {
		v |= 0b11 << DDRBlankShift
	}
	if w.Latch {
		v |= 0b11 << DDRLatchShift
	}
	if w.Clock {
		v |= 0b10 << DDRClockShift
	}
	return v
}
