package phong

import (
	"image"

	"github.com/chewxy/math32"
	xdraw "golang.org/x/image/draw"
)

// FilterMode selects how the sampler blends texels.
type FilterMode int

const (
	// FilterLinear blends the four nearest texels (the GPU sampler default
	// used by the lit pipeline).
	FilterLinear FilterMode = iota

	// FilterNearest picks the single nearest texel.
	FilterNearest
)

// AddressMode selects how coordinates outside [0, 1] are resolved.
type AddressMode int

const (
	// AddressClampToEdge clamps coordinates to the edge texel.
	AddressClampToEdge AddressMode = iota

	// AddressRepeat wraps coordinates, tiling the texture.
	AddressRepeat
)

// Texture is the CPU-side diffuse texture: an RGBA float32 texel grid
// with the sampler state the software fragment stages use. It mirrors the
// texture + sampler pair the GPU path binds per draw call.
type Texture struct {
	width  int
	height int
	// pix holds RGBA texels row by row, four float32 per texel.
	pix []float32

	// Filter is the sampling filter. Defaults to FilterLinear.
	Filter FilterMode

	// Address is the out-of-range coordinate behavior.
	// Defaults to AddressClampToEdge.
	Address AddressMode
}

// NewTexture creates an empty texture of the given size.
func NewTexture(width, height int) *Texture {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Texture{
		width:  width,
		height: height,
		pix:    make([]float32, width*height*4),
	}
}

// NewTextureFromImage converts any image.Image into a texture.
func NewTextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return textureFromRGBA(rgba)
}

// NewTextureFromImageScaled converts an image, resizing it to the given
// dimensions with bilinear filtering. Useful for bounding texture memory
// regardless of source asset size.
func NewTextureFromImageScaled(img image.Image, width, height int) *Texture {
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return textureFromRGBA(rgba)
}

// WhiteTexture returns a 1x1 opaque white texture, the identity element
// for the lit formula's texture multiply.
func WhiteTexture() *Texture {
	t := NewTexture(1, 1)
	t.pix[0], t.pix[1], t.pix[2], t.pix[3] = 1, 1, 1, 1
	return t
}

func textureFromRGBA(rgba *image.RGBA) *Texture {
	t := NewTexture(rgba.Rect.Dx(), rgba.Rect.Dy())
	for i, v := range rgba.Pix {
		t.pix[i] = float32(v) / 255
	}
	return t
}

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// SetTexel writes one texel.
func (t *Texture) SetTexel(x, y int, c RGBA) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	i := (y*t.width + x) * 4
	t.pix[i] = c.R
	t.pix[i+1] = c.G
	t.pix[i+2] = c.B
	t.pix[i+3] = c.A
}

// Texel reads one texel with the configured address mode.
func (t *Texture) Texel(x, y int) RGBA {
	switch t.Address {
	case AddressRepeat:
		x = wrap(x, t.width)
		y = wrap(y, t.height)
	default:
		x = clampInt(x, 0, t.width-1)
		y = clampInt(y, 0, t.height-1)
	}
	i := (y*t.width + x) * 4
	return RGBA{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: t.pix[i+3]}
}

// Sample samples the texture at normalized coordinates (u, v), with
// (0, 0) the top-left corner as in WebGPU. Out-of-range coordinates
// follow the address mode; they are valid input, never an error.
func (t *Texture) Sample(u, v float32) RGBA {
	// Texel centers sit at half-texel offsets.
	x := u*float32(t.width) - 0.5
	y := v*float32(t.height) - 0.5

	if t.Filter == FilterNearest {
		return t.Texel(int(math32.Round(x)), int(math32.Round(y)))
	}

	x0 := int(math32.Floor(x))
	y0 := int(math32.Floor(y))
	fx := x - float32(x0)
	fy := y - float32(y0)

	c00 := t.Texel(x0, y0)
	c10 := t.Texel(x0+1, y0)
	c01 := t.Texel(x0, y0+1)
	c11 := t.Texel(x0+1, y0+1)

	lerp := func(a, b, t float32) float32 { return a + (b-a)*t }
	mix := func(a, b RGBA, t float32) RGBA {
		return RGBA{
			R: lerp(a.R, b.R, t),
			G: lerp(a.G, b.G, t),
			B: lerp(a.B, b.B, t),
			A: lerp(a.A, b.A, t),
		}
	}
	return mix(mix(c00, c10, fx), mix(c01, c11, fx), fy)
}

// RGBA8 returns the texel data as 8-bit RGBA bytes, row by row, the
// layout queue.WriteTexture expects. Values are clamped to [0, 1].
func (t *Texture) RGBA8() []byte {
	buf := make([]byte, len(t.pix))
	for i, v := range t.pix {
		buf[i] = uint8(math32.Min(math32.Max(v, 0), 1)*255 + 0.5)
	}
	return buf
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func clampInt(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}
