package panel

// Coord is the pixel a painter is asked about. Y is the physical row, so the
// top bank sees 0..31 and the bottom bank 32..63.
type Coord struct {
	X        int
	Y        int
	Subframe uint8
	Frame    uint16
}

// Painter decides the colour lines for one pixel during one subframe.
//
// Paint is called twice per tick, once per bank, from the goroutine that
// owns the Driver. It must not retain or mutate anything the Driver owns.
type Painter interface {
	Paint(c Coord) RGB
}

// PainterFunc adapts a function to the Painter interface.
type PainterFunc func(c Coord) RGB

// Paint calls f(c).
func (f PainterFunc) Paint(c Coord) RGB {
	return f(c)
}

// Sample is the pair of colour decisions supplied on one tick.
type Sample struct {
	RGB0 RGB
	RGB1 RGB
}

// delayLine holds painter samples for latency ticks.
type delayLine struct {
	buf   [MaxLatency]Sample
	depth int
	head  int
}

// push stores s and returns the sample pushed depth ticks earlier. With a
// depth of zero s is returned unchanged.
func (d *delayLine) push(s Sample) Sample {
	if d.depth == 0 {
		return s
	}
	out := d.buf[d.head]
	d.buf[d.head] = s
	d.head++
	if d.head == d.depth {
		d.head = 0
	}
	return out
}

func (d *delayLine) reset() {
	d.buf = [MaxLatency]Sample{}
	d.head = 0
}
