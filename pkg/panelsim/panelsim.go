// Package panelsim models a HUB75 panel built from FM6126 style column
// drivers, so the words produced by the scan engine can be checked and
// rendered without hardware.
//
// The model has one 64 bit shift register per colour line, clocked on every
// word with Clock set, copied to the output latch on the falling edge of
// Latch, and shown on the addressed row pair while Blank is low. The light
// each pixel emits is integrated per channel.
package panelsim

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

// Panel is a software panel. The zero value is ready to use.
type Panel struct {
	shift   [2][panel.Columns]panel.RGB
	latched [2][panel.Columns]panel.RGB
	offset  int
	latch   bool
	addr    uint8

	energy  [panel.PhysicalRows][panel.Columns][3]uint32
	latches [panel.Rows]uint64
	words   uint64
	lit     uint64
}

// New returns a blank panel.
func New() *Panel {
	return &Panel{}
}

// Write implements sink.Sink.
func (p *Panel) Write(w panel.Word) error {
	p.words++
	if w.Clock {
		p.shift[0][p.offset] = w.RGB0 & panel.White
		p.shift[1][p.offset] = w.RGB1 & panel.White
		p.offset = (p.offset + 1) % panel.Columns
	}
	if p.latch && !w.Latch {
		p.latched = p.shift
		p.latches[w.Addr%panel.Rows]++
	}
	p.latch = w.Latch
	p.addr = w.Addr % panel.Rows

	if !w.Blank {
		p.lit++
		p.light(int(p.addr), &p.latched[0])
		p.light(int(p.addr)+panel.Rows, &p.latched[1])
	}
	return nil
}

func (p *Panel) light(y int, row *[panel.Columns]panel.RGB) {
	for x, c := range row {
		for ch := 0; ch < 3; ch++ {
			if c&(1<<ch) != 0 {
				p.energy[y][x][ch]++
			}
		}
	}
}

// Close implements sink.Sink.
func (p *Panel) Close() error {
	return nil
}

// Latched returns the output latch of a bank (0 top, 1 bottom).
func (p *Panel) Latched(bank int) [panel.Columns]panel.RGB {
	return p.latched[bank&1]
}

// Latches returns how many latch pulses ended while addr was selected.
func (p *Panel) Latches(addr int) uint64 {
	return p.latches[addr%panel.Rows]
}

// Words returns the number of words written.
func (p *Panel) Words() uint64 {
	return p.words
}

// LitTicks returns the number of words written with Blank low.
func (p *Panel) LitTicks() uint64 {
	return p.lit
}

// Energy returns the number of lit ticks of each channel of a pixel, in
// red, green, blue order.
func (p *Panel) Energy(x, y int) [3]uint32 {
	return p.energy[y][x]
}

// ClearEnergy zeroes the light integrators. Registers are kept.
func (p *Panel) ClearEnergy() {
	p.energy = [panel.PhysicalRows][panel.Columns][3]uint32{}
	p.lit = 0
}

// Image renders the integrated light, scaled so the brightest channel is
// full intensity.
func (p *Panel) Image() *image.RGBA {
	var peak uint32
	for y := range p.energy {
		for x := range p.energy[y] {
			for _, e := range p.energy[y][x] {
				peak = max(peak, e)
			}
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, panel.Columns, panel.PhysicalRows))
	if peak == 0 {
		return img
	}
	for y := range p.energy {
		for x, e := range p.energy[y] {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(uint64(e[0]) * 255 / uint64(peak)),
				G: uint8(uint64(e[1]) * 255 / uint64(peak)),
				B: uint8(uint64(e[2]) * 255 / uint64(peak)),
				A: 255,
			})
		}
	}
	return img
}

var glyphs = [8]byte{'.', 'R', 'G', 'Y', 'B', 'M', 'C', 'W'}

// Render writes the panel as text, one character per pixel. A channel counts
// as on when it reached at least half of the brightest channel.
func (p *Panel) Render(w io.Writer) error {
	img := p.Image()
	line := make([]byte, panel.Columns+1)
	line[panel.Columns] = '\n'
	for y := 0; y < panel.PhysicalRows; y++ {
		for x := 0; x < panel.Columns; x++ {
			c := img.RGBAAt(x, y)
			var rgb panel.RGB
			if c.R >= 128 {
				rgb |= panel.Red
			}
			if c.G >= 128 {
				rgb |= panel.Green
			}
			if c.B >= 128 {
				rgb |= panel.Blue
			}
			line[x] = glyphs[rgb]
		}
		if _, err := w.Write(line); err != nil {
			return fmt.Errorf("failed to render row %d: %v", y, err)
		}
	}
	return nil
}
