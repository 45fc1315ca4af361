package phong

import (
	"image"

	"github.com/chewxy/math32"
)

// Framebuffer is the software pipeline's render target: a linear RGBA
// color buffer plus a depth buffer, one float32 depth per pixel in
// [0, 1] with 1 the far plane.
type Framebuffer struct {
	width  int
	height int
	color  []float32
	depth  []float32
}

// NewFramebuffer creates a framebuffer cleared to transparent black and
// far depth.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{
		width:  width,
		height: height,
		color:  make([]float32, width*height*4),
		depth:  make([]float32, width*height),
	}
	fb.Clear(RGBA{})
	return fb
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// Clear resets every pixel to c and every depth value to the far plane.
func (fb *Framebuffer) Clear(c RGBA) {
	for i := 0; i < len(fb.color); i += 4 {
		fb.color[i] = c.R
		fb.color[i+1] = c.G
		fb.color[i+2] = c.B
		fb.color[i+3] = c.A
	}
	for i := range fb.depth {
		fb.depth[i] = 1
	}
}

// Pixel returns the color at (x, y).
func (fb *Framebuffer) Pixel(x, y int) RGBA {
	i := (y*fb.width + x) * 4
	return RGBA{R: fb.color[i], G: fb.color[i+1], B: fb.color[i+2], A: fb.color[i+3]}
}

// Depth returns the depth at (x, y).
func (fb *Framebuffer) Depth(x, y int) float32 {
	return fb.depth[y*fb.width+x]
}

// setPixel writes color and depth without a depth test; callers test
// first.
func (fb *Framebuffer) setPixel(x, y int, c RGBA, depth float32) {
	i := (y*fb.width + x) * 4
	fb.color[i] = c.R
	fb.color[i+1] = c.G
	fb.color[i+2] = c.B
	fb.color[i+3] = c.A
	fb.depth[y*fb.width+x] = depth
}

// Image converts the framebuffer to an 8-bit image. RGB is unclamped in
// the buffer (the output contract), so conversion clamps here, at the
// presentation boundary.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i := 0; i < len(fb.color); i += 4 {
		img.Pix[i] = to8(fb.color[i])
		img.Pix[i+1] = to8(fb.color[i+1])
		img.Pix[i+2] = to8(fb.color[i+2])
		img.Pix[i+3] = to8(fb.color[i+3])
	}
	return img
}

// RGBA8 returns the color buffer as 8-bit RGBA bytes, the layout GPU
// texture upload expects.
func (fb *Framebuffer) RGBA8() []byte {
	buf := make([]byte, len(fb.color))
	for i, v := range fb.color {
		buf[i] = to8(v)
	}
	return buf
}

func to8(v float32) uint8 {
	return uint8(math32.Min(math32.Max(v, 0), 1)*255 + 0.5)
}
