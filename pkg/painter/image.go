package painter

import (
	"image/color"

	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

// Source is a readable 64x64 RGBA pixel store. *image.RGBA satisfies it.
type Source interface {
	RGBAAt(x, y int) color.RGBA
}

// Image paints a Source with PWM dithering.
type Image struct {
	Src Source
	// Tracer overlays a blue pixel walking along the top row, one column per
	// frame, so a stalled scan is obvious.
	Tracer bool
}

// NewImage returns an Image painter reading src.
func NewImage(src Source, tracer bool) *Image {
	return &Image{Src: src, Tracer: tracer}
}

// Paint implements panel.Painter.
func (p *Image) Paint(c panel.Coord) panel.RGB {
	if p.Tracer && c.Y == 0 && c.X == int(c.Frame)%panel.Columns {
		return panel.Blue
	}
	if p.Src == nil {
		return panel.Black
	}
	return Dither(p.Src.RGBAAt(c.X, c.Y), c.Subframe)
}
