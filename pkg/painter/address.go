package painter

import "github.com/fkcurrie/fm6126-scan/pkg/panel"

// AddressTest paints the panel border blue and, during the subframes whose
// upper nibble is 1, marks power-of-two columns red and power-of-two rows
// green. A wrong address line or a swapped bank shows up as a misplaced
// stripe.
var AddressTest panel.Painter = panel.PainterFunc(addressTest)

func addressTest(c panel.Coord) panel.RGB {
	var rgb panel.RGB
	if c.Subframe>>4 == 1 {
		if isPow2(c.X) {
			rgb |= panel.Red
		}
		if isPow2(c.Y) {
			rgb |= panel.Green
		}
	}
	last := panel.PhysicalRows - 1
	if c.X == 0 || c.X == panel.Columns-1 || c.Y == 0 || c.Y == last {
		rgb |= panel.Blue
	}
	return rgb
}

func isPow2(v int) bool {
	return v > 0 && v&(v-1) == 0
}
