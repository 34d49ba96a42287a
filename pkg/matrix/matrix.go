// Package matrix is the framebuffer behind the panel painters: a mutable
// back buffer edited by the application and a published front buffer read by
// the scan engine without locking.
package matrix

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

const (
	// DefaultWidth is the panel width in pixels.
	DefaultWidth = panel.Columns
	// DefaultHeight is the panel height in pixels, both banks.
	DefaultHeight = panel.PhysicalRows
)

// ErrHalted is returned by drawing operations after Halt or Close.
var ErrHalted = errors.New("matrix: halted")

// Matrix represents the pixel contents of an RGB LED panel
type Matrix struct {
	width      int
	height     int
	brightness int
	buf        *frameBuffer
	halted     bool
	mu         sync.RWMutex
}

// Config holds the configuration for the framebuffer
type Config struct {
	Width      int
	Height     int
	Brightness int
}

// NewMatrix creates a new framebuffer. A zero width or height selects the
// panel size.
func NewMatrix(cfg *Config) (*Matrix, error) {
	c := Config{Width: DefaultWidth, Height: DefaultHeight, Brightness: 255}
	if cfg != nil {
		c = *cfg
	}
	if c.Width == 0 && c.Height == 0 {
		c.Width, c.Height = DefaultWidth, DefaultHeight
	}
	if c.Width <= 0 || c.Height <= 0 || c.Width > DefaultWidth || c.Height > DefaultHeight {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", c.Width, c.Height)
	}
	if c.Brightness < 0 || c.Brightness > 255 {
		return nil, fmt.Errorf("brightness must be between 0 and 255")
	}

	m := &Matrix{
		width:      c.Width,
		height:     c.Height,
		brightness: c.Brightness,
		buf:        newFrameBuffer(c.Width, c.Height),
	}
	return m, nil
}

// Close blanks the published frame and stops further drawing
func (m *Matrix) Close() error {
	return m.Halt()
}

// Clear sets every pixel of the back buffer to black
func (m *Matrix) Clear() error {
	return m.Fill(color.Black)
}

// SetPixel sets a pixel at the given coordinates to the given color
func (m *Matrix) SetPixel(x, y int, c color.Color) error {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	m.buf.back.Set(x, y, c)
	return nil
}

// Show publishes the back buffer, scaled by the brightness, to the painters
func (m *Matrix) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	m.buf.publish(m.brightness)
	return nil
}

// SetBrightness sets the brightness applied by the next Show
func (m *Matrix) SetBrightness(brightness int) error {
	if brightness < 0 || brightness > 255 {
		return fmt.Errorf("brightness must be between 0 and 255")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.brightness = brightness
	return nil
}

// GetBrightness returns the current brightness
func (m *Matrix) GetBrightness() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.brightness
}

// GetDimensions returns the dimensions of the framebuffer
func (m *Matrix) GetDimensions() (width, height int) {
	return m.width, m.height
}

// Fill fills the entire back buffer with a color
func (m *Matrix) Fill(c color.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	m.buf.fill(color.RGBAModel.Convert(c).(color.RGBA))
	return nil
}

// Scroll shifts the back buffer by the given number of pixels, wrapping
// around the edges. Positive dx moves content left.
func (m *Matrix) Scroll(dx, dy int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.halted {
		return ErrHalted
	}
	m.buf.scroll(dx, dy)
	return nil
}

// SetPixelColor sets a pixel at the given coordinates to the given color
func (m *Matrix) SetPixelColor(x, y int, r, g, b uint8) error {
	return m.SetPixel(x, y, color.RGBA{r, g, b, 255})
}

// GetPixelColor gets the color of a pixel in the back buffer
func (m *Matrix) GetPixelColor(x, y int) (r, g, b uint8, err error) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0, 0, 0, fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.buf.back.RGBAAt(x, y)
	return c.R, c.G, c.B, nil
}

// SetPixelHSV sets a pixel using HSV color values. h is in degrees, s and v
// in 0..1.
func (m *Matrix) SetPixelHSV(x, y int, h, s, v float64) error {
	return m.SetPixel(x, y, hsvToRGB(h, s, v))
}

// RGBAAt returns the published colour of a pixel. It never blocks and is
// safe to call from the scan goroutine while the back buffer is edited.
func (m *Matrix) RGBAAt(x, y int) color.RGBA {
	return m.buf.front.Load().RGBAAt(x, y)
}

// Snapshot returns the published frame. The image must not be modified.
func (m *Matrix) Snapshot() *image.RGBA {
	return m.buf.front.Load()
}

func hsvToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(1, s))
	v = math.Max(0, math.Min(1, v))

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	var r, g, b float64
	switch {
	case h < 60:
		r, g = c, x
	case h < 120:
		r, g = x, c
	case h < 180:
		g, b = c, x
	case h < 240:
		g, b = x, c
	case h < 300:
		r, b = x, c
	default:
		r, b = c, x
	}
	mm := v - c
	conv := func(f float64) uint8 {
		return uint8(math.Round((f + mm) * 255))
	}
	return color.RGBA{conv(r), conv(g), conv(b), 255}
}
