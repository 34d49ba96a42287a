package matrix

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"
)

var _ display.Drawer = (*Matrix)(nil)

// String returns a string representation of the framebuffer.
func (m *Matrix) String() string {
	return fmt.Sprintf("matrix.Matrix{%dx%d}", m.width, m.height)
}

// Halt blanks the panel and rejects further drawing.
func (m *Matrix) Halt() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.halted = true
	m.buf.blank()
	return nil
}

// ColorModel returns the color model of the framebuffer.
func (m *Matrix) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds returns the image bounds of the framebuffer.
func (m *Matrix) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Draw draws src into the dst rectangle and publishes the result.
func (m *Matrix) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	dst = dst.Intersect(m.buf.back.Rect)
	if dst.Empty() {
		return nil
	}
	draw.Draw(m.buf.back, dst, src, sp, draw.Src)
	m.buf.publish(m.brightness)
	return nil
}

// Displayer adapts the framebuffer to the TinyGo display interface so the
// TinyGo drawing libraries can render into it.
func (m *Matrix) Displayer() drivers.Displayer {
	return displayer{m}
}

type displayer struct {
	m *Matrix
}

func (d displayer) Size() (x, y int16) {
	return int16(d.m.width), int16(d.m.height)
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	// Out of range pixels are dropped, as on a real display.
	_ = d.m.SetPixel(int(x), int(y), c)
}

func (d displayer) Display() error {
	return d.m.Show()
}
