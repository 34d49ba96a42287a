package types

import "fmt"

// PinConfig is the BCM GPIO number of every HUB75 signal
type PinConfig struct {
	R1  int `json:"r1"`
	G1  int `json:"g1"`
	B1  int `json:"b1"`
	R2  int `json:"r2"`
	G2  int `json:"g2"`
	B2  int `json:"b2"`
	A   int `json:"a"`
	B   int `json:"b"`
	C   int `json:"c"`
	D   int `json:"d"`
	E   int `json:"e"`
	OE  int `json:"oe"`
	LAT int `json:"lat"`
	CLK int `json:"clk"`
}

// BonnetPins returns the pinout of the Adafruit RGB Matrix Bonnet
func BonnetPins() PinConfig {
	return PinConfig{
		R1: 5, G1: 13, B1: 6,
		R2: 12, G2: 16, B2: 23,
		A: 22, B: 26, C: 27, D: 20, E: 24,
		OE: 4, LAT: 21, CLK: 17,
	}
}

// Names returns the signal names in word bit order
func (p PinConfig) Names() []string {
	return []string{"R1", "G1", "B1", "R2", "G2", "B2", "A", "B", "C", "D", "E", "OE", "LAT", "CLK"}
}

// Offsets returns the GPIO numbers in word bit order: rgb0, rgb1, address,
// blank, latch, clock.
func (p PinConfig) Offsets() []int {
	return []int{
		p.R1, p.G1, p.B1,
		p.R2, p.G2, p.B2,
		p.A, p.B, p.C, p.D, p.E,
		p.OE, p.LAT, p.CLK,
	}
}

// Validate checks that every signal has its own non-negative pin
func (p PinConfig) Validate() error {
	seen := make(map[int]string)
	names := p.Names()
	for i, pin := range p.Offsets() {
		if pin < 0 {
			return fmt.Errorf("pin %s: invalid gpio %d", names[i], pin)
		}
		if other, ok := seen[pin]; ok {
			return fmt.Errorf("pins %s and %s both use gpio %d", other, names[i], pin)
		}
		seen[pin] = names[i]
	}
	return nil
}
