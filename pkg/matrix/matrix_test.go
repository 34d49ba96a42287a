package matrix

import (
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
)

// TestNewMatrix tests the creation of a new matrix
func TestNewMatrix(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{
			name:    "nil config",
			cfg:     nil,
			wantErr: false,
		},
		{
			name:    "panel size",
			cfg:     &Config{Width: 64, Height: 64, Brightness: 128},
			wantErr: false,
		},
		{
			name:    "zero size uses panel",
			cfg:     &Config{Brightness: 255},
			wantErr: false,
		},
		{
			name:    "invalid width",
			cfg:     &Config{Width: -1, Height: 8, Brightness: 128},
			wantErr: true,
		},
		{
			name:    "larger than panel",
			cfg:     &Config{Width: 128, Height: 64, Brightness: 128},
			wantErr: true,
		},
		{
			name:    "invalid brightness",
			cfg:     &Config{Width: 32, Height: 8, Brightness: 256},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matrix, err := NewMatrix(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMatrix() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && matrix == nil {
				t.Error("NewMatrix() returned nil matrix when no error expected")
			}
		})
	}
}

// TestMatrixOperations tests basic matrix operations
func TestMatrixOperations(t *testing.T) {
	cfg := &Config{
		Width:      64,
		Height:     64,
		Brightness: 255,
	}

	matrix, err := NewMatrix(cfg)
	if err != nil {
		t.Fatalf("Failed to create matrix: %v", err)
	}
	defer matrix.Close()

	width, height := matrix.GetDimensions()
	if width != cfg.Width || height != cfg.Height {
		t.Errorf("GetDimensions() = %dx%d, want %dx%d", width, height, cfg.Width, cfg.Height)
	}

	red := color.RGBA{255, 0, 0, 255}
	if err := matrix.SetPixel(0, 0, red); err != nil {
		t.Errorf("SetPixel() error = %v", err)
	}

	r, g, b, err := matrix.GetPixelColor(0, 0)
	if err != nil {
		t.Errorf("GetPixelColor() error = %v", err)
	}
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("GetPixelColor() = (%d, %d, %d), want (255, 0, 0)", r, g, b)
	}

	// Nothing is visible before Show.
	if got := matrix.RGBAAt(0, 0); got.R != 0 {
		t.Errorf("RGBAAt() before Show() = %v", got)
	}
	if err := matrix.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if got := matrix.RGBAAt(0, 0); got != red {
		t.Errorf("RGBAAt() after Show() = %v, want %v", got, red)
	}

	if err := matrix.Clear(); err != nil {
		t.Errorf("Clear() error = %v", err)
	}
	if r, _, _, _ := matrix.GetPixelColor(0, 0); r != 0 {
		t.Errorf("GetPixelColor() after Clear() r = %d", r)
	}

	if err := matrix.SetPixel(-1, 0, red); err == nil {
		t.Error("SetPixel() with negative x did not return error")
	}
	if err := matrix.SetPixel(0, cfg.Height, red); err == nil {
		t.Error("SetPixel() with y >= height did not return error")
	}
}

func TestBrightness(t *testing.T) {
	matrix, err := NewMatrix(nil)
	if err != nil {
		t.Fatalf("Failed to create matrix: %v", err)
	}

	if err := matrix.SetBrightness(300); err == nil {
		t.Error("SetBrightness(300) did not return error")
	}
	if err := matrix.SetBrightness(128); err != nil {
		t.Fatalf("SetBrightness() error = %v", err)
	}
	if got := matrix.GetBrightness(); got != 128 {
		t.Errorf("GetBrightness() = %d, want 128", got)
	}

	matrix.SetPixelColor(3, 4, 255, 100, 0)
	matrix.Show()
	got := matrix.RGBAAt(3, 4)
	if got.R != 128 || got.G != 50 || got.B != 0 || got.A != 255 {
		t.Errorf("RGBAAt() = %v, want {128 50 0 255}", got)
	}

	// The back buffer keeps full intensity.
	if r, _, _, _ := matrix.GetPixelColor(3, 4); r != 255 {
		t.Errorf("GetPixelColor() r = %d, want 255", r)
	}
}

func TestScroll(t *testing.T) {
	matrix, _ := NewMatrix(nil)
	matrix.SetPixelColor(1, 0, 0, 0, 255)
	if err := matrix.Scroll(1, 0); err != nil {
		t.Fatalf("Scroll() error = %v", err)
	}
	if _, _, b, _ := matrix.GetPixelColor(0, 0); b != 255 {
		t.Error("pixel did not move left")
	}

	matrix.Scroll(-1, -1)
	if _, _, b, _ := matrix.GetPixelColor(1, 1); b != 255 {
		t.Error("pixel did not move right and down")
	}

	matrix.Scroll(0, 65)
	if _, _, b, _ := matrix.GetPixelColor(1, 0); b != 255 {
		t.Error("scroll did not wrap")
	}
}

func TestSetPixelHSV(t *testing.T) {
	tests := []struct {
		h    float64
		want color.RGBA
	}{
		{0, color.RGBA{255, 0, 0, 255}},
		{120, color.RGBA{0, 255, 0, 255}},
		{240, color.RGBA{0, 0, 255, 255}},
		{420, color.RGBA{255, 255, 0, 255}},
	}
	for _, tt := range tests {
		if got := hsvToRGB(tt.h, 1, 1); got != tt.want {
			t.Errorf("hsvToRGB(%v, 1, 1) = %v, want %v", tt.h, got, tt.want)
		}
	}

	matrix, _ := NewMatrix(nil)
	if err := matrix.SetPixelHSV(1, 1, 0, 1, 1); err != nil {
		t.Fatalf("SetPixelHSV() error = %v", err)
	}
	if r, g, b, _ := matrix.GetPixelColor(1, 1); r != 255 || g != 0 || b != 0 {
		t.Errorf("GetPixelColor() after SetPixelHSV() = (%d, %d, %d)", r, g, b)
	}
}

func TestSetImageScales(t *testing.T) {
	matrix, _ := NewMatrix(nil)
	src := image.NewUniform(color.RGBA{0, 200, 0, 255})
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, src.C)
		}
	}

	if err := matrix.SetImage(img); err != nil {
		t.Fatalf("SetImage() error = %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {32, 32}, {63, 63}} {
		if _, g, _, _ := matrix.GetPixelColor(p.X, p.Y); g < 195 {
			t.Errorf("pixel %v green = %d, want 200", p, g)
		}
	}
}

func TestSetText(t *testing.T) {
	matrix, _ := NewMatrix(nil)
	if err := matrix.SetText("Hi", 0, 12, color.White); err != nil {
		t.Fatalf("SetText() error = %v", err)
	}

	lit := 0
	for y := 0; y < 13; y++ {
		for x := 0; x < TextWidth("Hi"); x++ {
			if r, _, _, _ := matrix.GetPixelColor(x, y); r != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("SetText() drew nothing")
	}
	if r, _, _, _ := matrix.GetPixelColor(40, 40); r != 0 {
		t.Error("SetText() drew outside the text box")
	}
	if w := TextWidth("Hi"); w != 14 {
		t.Errorf("TextWidth() = %d, want 14", w)
	}
}

func TestLoadSVG(t *testing.T) {
	const doc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
<rect x="0" y="0" width="32" height="64" fill="#ff0000"/>
</svg>`

	matrix, _ := NewMatrix(nil)
	if err := matrix.LoadSVG(strings.NewReader(doc)); err != nil {
		t.Fatalf("LoadSVG() error = %v", err)
	}
	if r, _, _, _ := matrix.GetPixelColor(10, 30); r < 250 {
		t.Errorf("left half red = %d, want 255", r)
	}
	if r, _, _, _ := matrix.GetPixelColor(50, 30); r != 0 {
		t.Errorf("right half red = %d, want 0", r)
	}

	if err := matrix.LoadSVG(strings.NewReader("<svg><rect")); err == nil {
		t.Error("LoadSVG() accepted garbage")
	}
}

func TestSeed(t *testing.T) {
	a, _ := NewMatrix(nil)
	b, _ := NewMatrix(nil)
	a.Seed(3)
	b.Seed(3)
	a.Show()
	b.Show()
	if string(a.Snapshot().Pix) != string(b.Snapshot().Pix) {
		t.Error("same seed produced different frames")
	}

	b.Seed(4)
	b.Show()
	if string(a.Snapshot().Pix) == string(b.Snapshot().Pix) {
		t.Error("different seeds produced the same frame")
	}
}

func TestDrawer(t *testing.T) {
	matrix, _ := NewMatrix(nil)
	if got := matrix.String(); got != "matrix.Matrix{64x64}" {
		t.Errorf("String() = %q", got)
	}
	if matrix.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Errorf("Bounds() = %v", matrix.Bounds())
	}

	blue := color.RGBA{0, 0, 255, 255}
	if err := matrix.Draw(image.Rect(60, 60, 80, 80), image.NewUniform(blue), image.Point{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if got := matrix.RGBAAt(63, 63); got != blue {
		t.Errorf("RGBAAt() after Draw() = %v", got)
	}
	if got := matrix.RGBAAt(59, 59); got == blue {
		t.Error("Draw() wrote outside dst")
	}

	if err := matrix.Halt(); err != nil {
		t.Fatalf("Halt() error = %v", err)
	}
	if got := matrix.RGBAAt(63, 63); got.B != 0 {
		t.Error("Halt() did not blank the panel")
	}
	if err := matrix.Draw(matrix.Bounds(), image.NewUniform(blue), image.Point{}); err != ErrHalted {
		t.Errorf("Draw() after Halt() error = %v, want ErrHalted", err)
	}
}

func TestDisplayer(t *testing.T) {
	matrix, _ := NewMatrix(nil)
	d := matrix.Displayer()
	if x, y := d.Size(); x != 64 || y != 64 {
		t.Errorf("Size() = %d, %d", x, y)
	}
	d.SetPixel(5, 6, color.RGBA{1, 2, 3, 255})
	d.SetPixel(-5, 600, color.RGBA{1, 2, 3, 255})
	if err := d.Display(); err != nil {
		t.Fatalf("Display() error = %v", err)
	}
	if got := matrix.RGBAAt(5, 6); got != (color.RGBA{1, 2, 3, 255}) {
		t.Errorf("RGBAAt() = %v", got)
	}
}

// TestMatrixConcurrency tests editing while the scan side reads
func TestMatrixConcurrency(t *testing.T) {
	matrix, err := NewMatrix(nil)
	if err != nil {
		t.Fatalf("Failed to create matrix: %v", err)
	}
	defer matrix.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				x := (i + j) % DefaultWidth
				y := (i * j) % DefaultHeight
				if err := matrix.SetPixel(x, y, color.RGBA{uint8(i), uint8(j), 0, 255}); err != nil {
					t.Errorf("SetPixel() error = %v", err)
				}
				if j%10 == 0 {
					matrix.Show()
				}
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for k := 0; k < 10000; k++ {
			matrix.RGBAAt(k%DefaultWidth, k%DefaultHeight)
		}
	}()

	wg.Wait()
	<-done
}
