package types

import "image/color"

// Matrix represents the framebuffer painters read from
type Matrix interface {
	// Clear clears the back buffer
	Clear() error
	// SetPixel sets a pixel at the given coordinates to the given color
	SetPixel(x, y int, c color.Color) error
	// SetText draws text with its baseline at (x, y)
	SetText(text string, x, y int, c color.Color) error
	// Show publishes the back buffer
	Show() error
	// Close blanks the matrix
	Close() error
}
