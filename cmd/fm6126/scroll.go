package main

import (
	"context"
	"image/color"
	"log"
	"time"

	"github.com/fkcurrie/fm6126-scan/internal/types"
	"github.com/fkcurrie/fm6126-scan/pkg/matrix"
	"github.com/fkcurrie/fm6126-scan/pkg/panel"
)

const scrollInterval = 60 * time.Millisecond

// scrollText runs a text banner across the bottom bank until the context is
// cancelled.
func scrollText(ctx context.Context, m types.Matrix, text string) {
	width := matrix.TextWidth(text)
	baseline := panel.Rows + 20
	x := panel.Columns

	ticker := time.NewTicker(scrollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := drawBanner(m, text, x, baseline); err != nil {
			log.Printf("Failed to draw text: %v", err)
			return
		}
		x--
		if x < -width {
			x = panel.Columns
		}
	}
}

func drawBanner(m types.Matrix, text string, x, baseline int) error {
	black := color.RGBA{0, 0, 0, 255}
	for y := baseline - 13; y < baseline+3; y++ {
		for col := 0; col < panel.Columns; col++ {
			if err := m.SetPixel(col, y, black); err != nil {
				return err
			}
		}
	}
	if err := m.SetText(text, x, baseline, color.RGBA{255, 160, 0, 255}); err != nil {
		return err
	}
	return m.Show()
}
