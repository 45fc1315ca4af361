package phong

import "github.com/chewxy/math32"

// Mesh is indexed triangle geometry in object space. Indices form a
// triangle list; winding is counter-clockwise for front faces.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// NewPlane returns a unit quad in the XZ plane facing +Y, size units on
// each side.
func NewPlane(size float32) *Mesh {
	h := size / 2
	return &Mesh{
		Name: "plane",
		Vertices: []Vertex{
			{Position: V3(-h, 0, -h), TexCoords: V2(0, 0), Normal: V3(0, 1, 0)},
			{Position: V3(-h, 0, h), TexCoords: V2(0, 1), Normal: V3(0, 1, 0)},
			{Position: V3(h, 0, h), TexCoords: V2(1, 1), Normal: V3(0, 1, 0)},
			{Position: V3(h, 0, -h), TexCoords: V2(1, 0), Normal: V3(0, 1, 0)},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// NewCube returns a unit cube centered at the origin with per-face
// normals and full-face texture coordinates.
func NewCube() *Mesh {
	// One face per axis direction; vertices are duplicated per face so
	// each carries the face normal.
	faces := []struct {
		normal Vec3
		right  Vec3
		up     Vec3
	}{
		{V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},   // +Z
		{V3(0, 0, -1), V3(-1, 0, 0), V3(0, 1, 0)}, // -Z
		{V3(1, 0, 0), V3(0, 0, -1), V3(0, 1, 0)},  // +X
		{V3(-1, 0, 0), V3(0, 0, 1), V3(0, 1, 0)},  // -X
		{V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},  // +Y
		{V3(0, -1, 0), V3(1, 0, 0), V3(0, 0, 1)},  // -Y
	}

	m := &Mesh{Name: "cube"}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		center := f.normal.Mul(0.5)
		for _, corner := range [4]Vec2{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}} {
			pos := center.Add(f.right.Mul(corner.X)).Add(f.up.Mul(corner.Y))
			uv := V2(corner.X+0.5, 0.5-corner.Y)
			m.Vertices = append(m.Vertices, Vertex{Position: pos, TexCoords: uv, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// NewSphere returns a UV sphere of the given radius. sectors is the
// number of longitudinal slices, stacks the number of latitudinal rows;
// both are clamped to a minimum of 3. Normals are unit length and texture
// coordinates wrap once around.
func NewSphere(radius float32, sectors, stacks int) *Mesh {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 3 {
		stacks = 3
	}

	m := &Mesh{Name: "sphere"}
	sectorStep := 2 * math32.Pi / float32(sectors)
	stackStep := math32.Pi / float32(stacks)
	lengthInv := 1 / radius

	for i := 0; i <= stacks; i++ {
		stackAngle := math32.Pi/2 - float32(i)*stackStep
		xy := radius * math32.Cos(stackAngle)
		z := radius * math32.Sin(stackAngle)

		for j := 0; j <= sectors; j++ {
			sectorAngle := float32(j) * sectorStep
			x := xy * math32.Cos(sectorAngle)
			y := xy * math32.Sin(sectorAngle)
			m.Vertices = append(m.Vertices, Vertex{
				Position:  V3(x, y, z),
				Normal:    V3(x*lengthInv, y*lengthInv, z*lengthInv),
				TexCoords: V2(float32(j)/float32(sectors), float32(i)/float32(stacks)),
			})
		}
	}

	// Two triangles per quad; the pole rows contribute one each.
	for i := 0; i < stacks; i++ {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1
		for j := 0; j < sectors; j++ {
			if i != 0 {
				m.Indices = append(m.Indices, k1, k2, k1+1)
			}
			if i != stacks-1 {
				m.Indices = append(m.Indices, k1+1, k2, k2+1)
			}
			k1++
			k2++
		}
	}
	return m
}
