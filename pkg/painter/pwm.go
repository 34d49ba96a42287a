package painter

import (
	"image/color"
	"math/bits"

	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

// PWM reports whether a channel of intensity v is lit during subframe. The
// subframe is bit reversed so the on time of a channel is spread across the
// frame instead of being one long pulse.
func PWM(v, subframe uint8) bool {
	return v > bits.Reverse8(subframe)
}

// Dither reduces c to the colour lines for one subframe. Alpha is ignored.
func Dither(c color.RGBA, subframe uint8) panel.RGB {
	r := bits.Reverse8(subframe)
	var out panel.RGB
	if c.R > r {
		out |= panel.Red
	}
	if c.G > r {
		out |= panel.Green
	}
	if c.B > r {
		out |= panel.Blue
	}
	return out
}
