package matrix

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/fkcurrie/fm6126-scan/pkg/painter"
)

// SetImage scales img to the framebuffer and draws it into the back buffer
func (m *Matrix) SetImage(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	back := m.buf.back
	if img.Bounds().Size() == back.Rect.Size() {
		draw.Draw(back, back.Rect, img, img.Bounds().Min, draw.Src)
		return nil
	}
	draw.ApproxBiLinear.Scale(back, back.Rect, img, img.Bounds(), draw.Src, nil)
	return nil
}

// SetText draws text with its baseline starting at (x, y) using the 7x13
// bitmap font. Text running off the edge is clipped.
func (m *Matrix) SetText(text string, x, y int, c color.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	d := &font.Drawer{
		Dst:  m.buf.back,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
	return nil
}

// TextWidth returns the width in pixels SetText needs for text.
func TextWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}

// LoadSVG renders an SVG document over the whole back buffer, replacing its
// contents.
func (m *Matrix) LoadSVG(r io.Reader) error {
	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return fmt.Errorf("failed to parse svg: %v", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	back := m.buf.back
	w, h := back.Rect.Dx(), back.Rect.Dy()
	m.buf.fill(color.RGBA{0, 0, 0, 255})
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, back, back.Rect)
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return nil
}

// Seed fills the back buffer with pseudo random colours from seed. The same
// seed always produces the same picture.
func (m *Matrix) Seed(seed uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	rng := painter.NewXORShift(seed)
	pix := m.buf.back.Pix
	for i := 0; i < len(pix); i += 4 {
		v := rng.Next()
		pix[i] = uint8(v)
		pix[i+1] = uint8(v >> 8)
		pix[i+2] = uint8(v >> 16)
		pix[i+3] = 255
	}
	return nil
}
