package phong

// Vertex attribute packing. Strides and field order here are the contract
// the GPU vertex buffer layouts in package gpu describe; the two must
// change together.
const (
	// VertexStride is the byte stride of a packed Vertex:
	// position vec3 + tex coords vec2 + normal vec3.
	VertexStride = (3 + 2 + 3) * 4

	// FlatVertexStride is the byte stride of a packed FlatVertex:
	// position vec3 + color vec3.
	FlatVertexStride = (3 + 3) * 4

	// InstanceStride is the byte stride of a packed InstanceRaw:
	// four vec4 model matrix columns + three vec3 normal matrix columns.
	InstanceStride = (4*4 + 3*3) * 4
)

// Vertex is the per-vertex record of a lit or textured mesh.
type Vertex struct {
	Position  Vec3
	TexCoords Vec2
	Normal    Vec3
}

// FlatVertex is the per-vertex record of the flat-color program:
// a clip-space position and a color, nothing else.
type FlatVertex struct {
	Position Vec3
	Color    Vec3
}

// Instance places one copy of a mesh in the world. Hosts keep instances
// in this compact form and flatten them with Raw when uploading.
type Instance struct {
	Position Vec3
	Rotation Quat
}

// InstanceRaw is the flattened per-instance attribute record: the model
// matrix split into four vec4 columns and the normal matrix into three
// vec3 columns. Matrix-typed vertex attributes are not portable across
// back ends, so the matrices cross the buffer boundary as plain vectors
// and the vertex stage reassembles them.
type InstanceRaw struct {
	Model  [4]Vec4
	Normal [3]Vec3
}

// Raw flattens the instance into its attribute-record form. The normal
// matrix is the inverse-transpose of the model matrix's upper 3x3 block,
// which for a pure rotation equals the rotation itself.
func (in Instance) Raw() InstanceRaw {
	model := Mat4Translate(in.Position).Mul(in.Rotation.Mat4())
	return RawFromModel(model)
}

// RawFromModel flattens an arbitrary model matrix, computing the matching
// normal matrix. Use this instead of [Instance.Raw] when instances carry
// scale or shear.
func RawFromModel(model Mat4) InstanceRaw {
	normal := NormalMatrix(model)
	return InstanceRaw{
		Model:  [4]Vec4{model.Col(0), model.Col(1), model.Col(2), model.Col(3)},
		Normal: [3]Vec3{normal.Col(0), normal.Col(1), normal.Col(2)},
	}
}

// ModelMatrix reassembles the 4x4 model matrix from the four columns.
// This is the same reconstruction the vertex stage performs.
func (r InstanceRaw) ModelMatrix() Mat4 {
	return Mat4FromCols(r.Model[0], r.Model[1], r.Model[2], r.Model[3])
}

// NormalMat reassembles the 3x3 normal matrix from the three columns.
func (r InstanceRaw) NormalMat() Mat3 {
	return Mat3FromCols(r.Normal[0], r.Normal[1], r.Normal[2])
}

// PackVertices packs vertices into the byte layout of the lit/textured
// vertex stream (float32x3 position, float32x2 tex coords, float32x3
// normal, little endian).
func PackVertices(verts []Vertex) []byte {
	buf := make([]byte, len(verts)*VertexStride)
	for i, v := range verts {
		off := i * VertexStride
		putVec3(buf[off:], v.Position)
		putVec2(buf[off+12:], v.TexCoords)
		putVec3(buf[off+20:], v.Normal)
	}
	return buf
}

// PackFlatVertices packs vertices into the byte layout of the flat-color
// vertex stream (float32x3 position, float32x3 color).
func PackFlatVertices(verts []FlatVertex) []byte {
	buf := make([]byte, len(verts)*FlatVertexStride)
	for i, v := range verts {
		off := i * FlatVertexStride
		putVec3(buf[off:], v.Position)
		putVec3(buf[off+12:], v.Color)
	}
	return buf
}

// PackInstances flattens and packs instances into the byte layout of the
// instance stream.
func PackInstances(instances []Instance) []byte {
	buf := make([]byte, len(instances)*InstanceStride)
	for i, in := range instances {
		packInstanceRaw(buf[i*InstanceStride:], in.Raw())
	}
	return buf
}

// PackInstanceRaws packs pre-flattened instance records.
func PackInstanceRaws(raws []InstanceRaw) []byte {
	buf := make([]byte, len(raws)*InstanceStride)
	for i, r := range raws {
		packInstanceRaw(buf[i*InstanceStride:], r)
	}
	return buf
}

func packInstanceRaw(buf []byte, r InstanceRaw) {
	for i, col := range r.Model {
		putVec4(buf[i*16:], col)
	}
	for i, col := range r.Normal {
		putVec3(buf[64+i*12:], col)
	}
}
