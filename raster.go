package phong

// Triangle rasterization for the software pipeline. One triangle at a
// time: clip-space vertices go through perspective division to NDC, NDC
// to pixel coordinates, then an edge-function walk over the bounding box
// shades covered pixels. Forwarded attributes are interpolated
// perspective-correctly via [Interpolate]; depth is the screen-linear
// NDC z, compared LessEqual against the depth buffer, matching the GPU
// pipeline's depth state.

// CullMode controls which triangle winding is discarded.
type CullMode int

const (
	// CullNone rasterizes both windings.
	CullNone CullMode = iota

	// CullBack discards clockwise (back-facing) triangles, with
	// counter-clockwise front faces as in the GPU pipelines.
	CullBack
)

// fragmentFunc shades one covered pixel from its interpolated attributes.
type fragmentFunc func(in VertexOutput) RGBA

// screenVertex is a vertex after perspective division and viewport
// transform.
type screenVertex struct {
	x, y float32 // pixel coordinates
	z    float32 // NDC depth in [0, 1]
}

// rasterTriangle rasterizes one triangle into fb. Vertices behind the
// eye (w <= 0) discard the whole triangle; near-plane clipping is not
// modeled, which matches the no-error contract (geometry degenerates, the
// stage completes).
func rasterTriangle(fb *Framebuffer, o0, o1, o2 VertexOutput, cull CullMode, frag fragmentFunc) {
	if o0.ClipPosition.W <= 0 || o1.ClipPosition.W <= 0 || o2.ClipPosition.W <= 0 {
		return
	}

	v0 := toScreen(fb, o0)
	v1 := toScreen(fb, o1)
	v2 := toScreen(fb, o2)

	// Signed doubled area in pixel space. The viewport transform flips y,
	// so a counter-clockwise (front-facing) triangle in NDC comes out
	// negative here.
	area := edge(v0, v1, v2)
	if area == 0 {
		return
	}
	frontFacing := area < 0
	if cull == CullBack && !frontFacing {
		return
	}
	if frontFacing {
		// Reorder so the edge functions are positive inside.
		v1, v2 = v2, v1
		o1, o2 = o2, o1
		area = -area
	}

	minX := clampInt(int(min3(v0.x, v1.x, v2.x)), 0, fb.width-1)
	maxX := clampInt(int(max3(v0.x, v1.x, v2.x))+1, 0, fb.width-1)
	minY := clampInt(int(min3(v0.y, v1.y, v2.y)), 0, fb.height-1)
	maxY := clampInt(int(max3(v0.y, v1.y, v2.y))+1, 0, fb.height-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := screenVertex{x: float32(x) + 0.5, y: float32(y) + 0.5}
			w0 := edge(v1, v2, p)
			w1 := edge(v2, v0, p)
			w2 := edge(v0, v1, p)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			bary := V3(w0/area, w1/area, w2/area)

			// Depth interpolates linearly in screen space; NDC z is
			// already divided by w.
			depth := bary.X*v0.z + bary.Y*v1.z + bary.Z*v2.z
			if depth > fb.Depth(x, y) {
				continue
			}

			in := Interpolate(o0, o1, o2, bary)
			fb.setPixel(x, y, frag(in), depth)
		}
	}
}

// toScreen divides by w and maps NDC to pixel coordinates, flipping y so
// NDC +y is the top of the image.
func toScreen(fb *Framebuffer, o VertexOutput) screenVertex {
	w := o.ClipPosition.W
	ndcX := o.ClipPosition.X / w
	ndcY := o.ClipPosition.Y / w
	ndcZ := o.ClipPosition.Z / w
	return screenVertex{
		x: (ndcX + 1) / 2 * float32(fb.width),
		y: (1 - ndcY) / 2 * float32(fb.height),
		z: ndcZ,
	}
}

// edge is the signed doubled area of triangle (a, b, c).
func edge(a, b, c screenVertex) float32 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
