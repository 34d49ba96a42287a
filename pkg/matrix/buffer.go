package matrix

import (
	"image"
	"image/color"
	"sync/atomic"
)

// frameBuffer is the double buffer. back is only touched with the Matrix
// lock held; front is replaced wholesale on publish and never written after.
type frameBuffer struct {
	back  *image.RGBA
	front atomic.Pointer[image.RGBA]
}

func newFrameBuffer(width, height int) *frameBuffer {
	b := &frameBuffer{
		back: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	b.front.Store(image.NewRGBA(b.back.Rect))
	return b
}

// publish copies back into a fresh front image scaled by brightness.
func (b *frameBuffer) publish(brightness int) {
	front := image.NewRGBA(b.back.Rect)
	if brightness == 255 {
		copy(front.Pix, b.back.Pix)
	} else {
		for i, v := range b.back.Pix {
			if i%4 == 3 {
				front.Pix[i] = v
				continue
			}
			front.Pix[i] = uint8(int(v) * brightness / 255)
		}
	}
	b.front.Store(front)
}

// blank publishes an all black frame.
func (b *frameBuffer) blank() {
	b.front.Store(image.NewRGBA(b.back.Rect))
}

func (b *frameBuffer) fill(c color.RGBA) {
	for i := 0; i < len(b.back.Pix); i += 4 {
		b.back.Pix[i] = c.R
		b.back.Pix[i+1] = c.G
		b.back.Pix[i+2] = c.B
		b.back.Pix[i+3] = c.A
	}
}

func (b *frameBuffer) scroll(dx, dy int) {
	w, h := b.back.Rect.Dx(), b.back.Rect.Dy()
	next := image.NewRGBA(b.back.Rect)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcX := ((x+dx)%w + w) % w
			srcY := ((y+dy)%h + h) % h
			next.SetRGBA(x, y, b.back.RGBAAt(srcX, srcY))
		}
	}
	b.back = next
}
