package sink

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

// Pins drives the connector through periph.io pins, one per word bit, and
// only touches pins whose level changed.
type Pins struct {
	pins   [panel.WordBits]gpio.PinOut
	last   uint16
	primed bool
}

// NewPins returns a sink over pins, where pins[i] carries bit i of
// panel.Word.Pack. Every pin is driven to the blanked idle level.
func NewPins(pins []gpio.PinOut) (*Pins, error) {
	if len(pins) != panel.WordBits {
		return nil, fmt.Errorf("need %d pins, got %d", panel.WordBits, len(pins))
	}
	p := &Pins{}
	for i, pin := range pins {
		if pin == nil {
			return nil, fmt.Errorf("pin for bit %d is nil", i)
		}
		p.pins[i] = pin
	}
	if err := p.Write(panel.Word{Blank: true}); err != nil {
		return nil, err
	}
	return p, nil
}

// Write implements Sink.
func (p *Pins) Write(w panel.Word) error {
	v := w.Pack()
	changed := v ^ p.last
	if !p.primed {
		changed = 1<<panel.WordBits - 1
	}
	for i, pin := range p.pins {
		if changed>>i&1 == 0 {
			continue
		}
		if err := pin.Out(gpio.Level(v>>i&1 != 0)); err != nil {
			return fmt.Errorf("failed to drive %s: %v", pin, err)
		}
	}
	p.last = v
	p.primed = true
	return nil
}

// Close leaves the panel blanked. The pins themselves are owned by the
// caller.
func (p *Pins) Close() error {
	return p.Write(panel.Word{Blank: true})
}
