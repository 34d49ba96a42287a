package painter

import "github.com/fkcurrie/fm6126-scan/pkg/panel"

// Solid paints every pixel with one colour.
type Solid panel.RGB

// Paint implements panel.Painter.
func (s Solid) Paint(panel.Coord) panel.RGB {
	return panel.RGB(s)
}

// Banks routes the top half of the panel to Top and the bottom half to
// Bottom. A nil half is black.
type Banks struct {
	Top    panel.Painter
	Bottom panel.Painter
}

// Paint implements panel.Painter.
func (b Banks) Paint(c panel.Coord) panel.RGB {
	p := b.Top
	if c.Y >= panel.Rows {
		p = b.Bottom
	}
	if p == nil {
		return panel.Black
	}
	return p.Paint(c)
}

// Mask limits p to the colour lines in m.
func Mask(p panel.Painter, m panel.RGB) panel.Painter {
	return panel.PainterFunc(func(c panel.Coord) panel.RGB {
		return p.Paint(c) & m
	})
}
