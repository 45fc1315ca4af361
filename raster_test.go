package phong

import "testing"

// ccwTriangle returns a counter-clockwise clip-space triangle covering
// most of the viewport, colored red.
func ccwTriangle() (VertexOutput, VertexOutput, VertexOutput) {
	mk := func(x, y float32) VertexOutput {
		return VertexOutput{ClipPosition: V4(x, y, 0, 1), Color: V3(1, 0, 0)}
	}
	return mk(-0.9, -0.9), mk(0.9, -0.9), mk(0, 0.9)
}

func TestRasterTriangle_CoversCenter(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	o0, o1, o2 := ccwTriangle()
	rasterTriangle(fb, o0, o1, o2, CullNone, FlatFragment)

	got := fb.Pixel(8, 8)
	if got.R != 1 || got.A != 1 {
		t.Errorf("center pixel = %v, want shaded red", got)
	}
	// Corners stay untouched.
	if got := fb.Pixel(0, 0); got != (RGBA{}) {
		t.Errorf("corner pixel = %v, want clear", got)
	}
	if fb.Depth(8, 8) != 0 {
		t.Errorf("center depth = %v, want the triangle's 0", fb.Depth(8, 8))
	}
}

func TestRasterTriangle_CullsBackFaces(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	o0, o1, o2 := ccwTriangle()

	// Reversed winding is back-facing.
	rasterTriangle(fb, o0, o2, o1, CullBack, FlatFragment)
	if got := fb.Pixel(8, 8); got != (RGBA{}) {
		t.Errorf("center pixel = %v, want untouched after culling", got)
	}

	// CullNone rasterizes it anyway.
	rasterTriangle(fb, o0, o2, o1, CullNone, FlatFragment)
	if got := fb.Pixel(8, 8); got.R != 1 {
		t.Errorf("center pixel = %v, want shaded with culling off", got)
	}
}

func TestRasterTriangle_FrontFaceNotCulled(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	o0, o1, o2 := ccwTriangle()
	rasterTriangle(fb, o0, o1, o2, CullBack, FlatFragment)
	if got := fb.Pixel(8, 8); got.R != 1 {
		t.Errorf("center pixel = %v, want counter-clockwise face drawn", got)
	}
}

func TestRasterTriangle_DepthTest(t *testing.T) {
	fb := NewFramebuffer(16, 16)

	tri := func(z float32, color Vec3) (VertexOutput, VertexOutput, VertexOutput) {
		mk := func(x, y float32) VertexOutput {
			return VertexOutput{ClipPosition: V4(x, y, z, 1), Color: color}
		}
		return mk(-0.9, -0.9), mk(0.9, -0.9), mk(0, 0.9)
	}

	// Far triangle first, then a nearer one overwrites it.
	o0, o1, o2 := tri(0.8, V3(1, 0, 0))
	rasterTriangle(fb, o0, o1, o2, CullNone, FlatFragment)
	o0, o1, o2 = tri(0.2, V3(0, 1, 0))
	rasterTriangle(fb, o0, o1, o2, CullNone, FlatFragment)

	if got := fb.Pixel(8, 8); got.G != 1 || got.R != 0 {
		t.Errorf("center pixel = %v, want the nearer green triangle", got)
	}
	if fb.Depth(8, 8) != 0.2 {
		t.Errorf("center depth = %v, want 0.2", fb.Depth(8, 8))
	}

	// A farther triangle after that fails the depth test.
	o0, o1, o2 = tri(0.9, V3(0, 0, 1))
	rasterTriangle(fb, o0, o1, o2, CullNone, FlatFragment)
	if got := fb.Pixel(8, 8); got.G != 1 {
		t.Errorf("center pixel = %v, want the depth test to hold", got)
	}
}

func TestRasterTriangle_EqualDepthPasses(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	o0, o1, o2 := ccwTriangle()
	rasterTriangle(fb, o0, o1, o2, CullNone, FlatFragment)

	// Same depth, different color: LessEqual lets the later draw win.
	green := func(o VertexOutput) VertexOutput {
		o.Color = V3(0, 1, 0)
		return o
	}
	rasterTriangle(fb, green(o0), green(o1), green(o2), CullNone, FlatFragment)
	if got := fb.Pixel(4, 4); got.G != 1 {
		t.Errorf("center pixel = %v, want the equal-depth redraw", got)
	}
}

func TestRasterTriangle_RejectsBehindEye(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	o0, o1, o2 := ccwTriangle()
	o1.ClipPosition.W = -1
	rasterTriangle(fb, o0, o1, o2, CullNone, FlatFragment)
	if got := fb.Pixel(4, 4); got != (RGBA{}) {
		t.Errorf("center pixel = %v, want the triangle discarded", got)
	}
}

func TestRasterTriangle_DegenerateIsNoop(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	mk := func(x, y float32) VertexOutput {
		return VertexOutput{ClipPosition: V4(x, y, 0, 1)}
	}
	// All three vertices collinear.
	rasterTriangle(fb, mk(-0.5, 0), mk(0, 0), mk(0.5, 0), CullNone, FlatFragment)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := fb.Pixel(x, y); got != (RGBA{}) {
				t.Fatalf("pixel (%d, %d) = %v, want untouched", x, y, got)
			}
		}
	}
}

func TestRasterTriangle_ClipsToViewport(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	mk := func(x, y float32) VertexOutput {
		return VertexOutput{ClipPosition: V4(x, y, 0, 1), Color: V3(1, 1, 1)}
	}
	// Extends far outside NDC; only the visible part rasterizes and
	// no out-of-range write panics.
	rasterTriangle(fb, mk(-4, -4), mk(4, -4), mk(0, 4), CullNone, FlatFragment)
	if got := fb.Pixel(4, 4); got.R != 1 {
		t.Errorf("center pixel = %v, want covered", got)
	}
}
