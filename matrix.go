package phong

import "github.com/chewxy/math32"

// Mat4 is a 4x4 float32 matrix in column-major order, the layout WGSL and
// uniform buffers use: element (row, col) is stored at index col*4+row.
type Mat4 [16]float32

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Translate returns a translation matrix.
func Mat4Translate(t Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = t.X
	m[13] = t.Y
	m[14] = t.Z
	return m
}

// Mat4Scale returns a uniform scaling matrix.
func Mat4Scale(s float32) Mat4 {
	return Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		0, 0, 0, 1,
	}
}

// Mat4ScaleVec returns a per-axis scaling matrix.
func Mat4ScaleVec(s Vec3) Mat4 {
	return Mat4{
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	}
}

// At returns element (row, col).
func (m Mat4) At(row, col int) float32 {
	return m[col*4+row]
}

// Col returns column i as a Vec4.
func (m Mat4) Col(i int) Vec4 {
	return Vec4{X: m[i*4], Y: m[i*4+1], Z: m[i*4+2], W: m[i*4+3]}
}

// Mat4FromCols assembles a matrix from four column vectors.
func Mat4FromCols(c0, c1, c2, c3 Vec4) Mat4 {
	return Mat4{
		c0.X, c0.Y, c0.Z, c0.W,
		c1.X, c1.Y, c1.Z, c1.W,
		c2.X, c2.Y, c2.Z, c2.W,
		c3.X, c3.Y, c3.Z, c3.W,
	}
}

// Mul returns the matrix product m × n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 returns m × v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms a position (w=1) and returns the xyz result.
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return m.MulVec4(FromPoint(p)).XYZ()
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[row*4+col] = m[col*4+row]
		}
	}
	return out
}

// Upper3 returns the upper-left 3x3 rotation/scale block.
func (m Mat4) Upper3() Mat3 {
	return Mat3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Approx returns true if all elements match within epsilon.
func (m Mat4) Approx(n Mat4, epsilon float32) bool {
	for i := range m {
		if math32.Abs(m[i]-n[i]) >= epsilon {
			return false
		}
	}
	return true
}

// Mat3 is a 3x3 float32 matrix in column-major order.
type Mat3 [9]float32

// Mat3Identity returns the identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// At returns element (row, col).
func (m Mat3) At(row, col int) float32 {
	return m[col*3+row]
}

// Col returns column i as a Vec3.
func (m Mat3) Col(i int) Vec3 {
	return Vec3{X: m[i*3], Y: m[i*3+1], Z: m[i*3+2]}
}

// Mat3FromCols assembles a matrix from three column vectors.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// MulVec3 returns m × v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		Y: m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		Z: m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float32 {
	return m.At(0, 0)*(m.At(1, 1)*m.At(2, 2)-m.At(1, 2)*m.At(2, 1)) -
		m.At(0, 1)*(m.At(1, 0)*m.At(2, 2)-m.At(1, 2)*m.At(2, 0)) +
		m.At(0, 2)*(m.At(1, 0)*m.At(2, 1)-m.At(1, 1)*m.At(2, 0))
}

// Inverse returns the inverse matrix and whether it exists.
// A singular matrix returns (identity, false); callers using the result
// anyway get degenerate but finite geometry, never a panic.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m.Determinant()
	if det == 0 {
		return Mat3Identity(), false
	}
	inv := 1 / det
	var out Mat3
	out[0] = (m[4]*m[8] - m[7]*m[5]) * inv
	out[1] = (m[7]*m[2] - m[1]*m[8]) * inv
	out[2] = (m[1]*m[5] - m[4]*m[2]) * inv
	out[3] = (m[6]*m[5] - m[3]*m[8]) * inv
	out[4] = (m[0]*m[8] - m[6]*m[2]) * inv
	out[5] = (m[3]*m[2] - m[0]*m[5]) * inv
	out[6] = (m[3]*m[7] - m[6]*m[4]) * inv
	out[7] = (m[6]*m[1] - m[0]*m[7]) * inv
	out[8] = (m[0]*m[4] - m[3]*m[1]) * inv
	return out, true
}

// Approx returns true if all elements match within epsilon.
func (m Mat3) Approx(n Mat3, epsilon float32) bool {
	for i := range m {
		if math32.Abs(m[i]-n[i]) >= epsilon {
			return false
		}
	}
	return true
}

// NormalMatrix returns the inverse-transpose of the model matrix's upper
// 3x3 block. Transforming normals with it instead of the model matrix
// keeps them perpendicular to surfaces under non-uniform scaling.
// For a singular model matrix the result falls back to the untransposed
// upper block (degenerate output, matching the no-error contract).
func NormalMatrix(model Mat4) Mat3 {
	inv, ok := model.Upper3().Inverse()
	if !ok {
		return model.Upper3()
	}
	return inv.Transpose()
}

// Quat is a rotation quaternion (x, y, z, w).
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatAxisAngle returns the rotation of angle radians about axis.
// The axis must be unit length.
func QuatAxisAngle(axis Vec3, angle float32) Quat {
	half := angle / 2
	s := math32.Sin(half)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(half),
	}
}

// Mul returns the composed rotation q then r (q × r applies r first).
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Mat4 returns the rotation as a 4x4 matrix.
func (q Quat) Mat4() Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2
	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Mul(2 * q.W)).Add(uuv.Mul(2))
}

// Mat4LookAt returns a right-handed view matrix for a camera at eye
// looking toward target with the given up direction.
func Mat4LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Mat4Perspective returns a right-handed perspective projection with an
// OpenGL depth range of [-1, 1]. fovy is the vertical field of view in
// radians. Compose with [WGPUDepthMatrix] before uploading, since WebGPU
// clips depth to [0, 1].
func Mat4Perspective(fovy, aspect, znear, zfar float32) Mat4 {
	f := 1 / math32.Tan(fovy/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (zfar + znear) / (znear - zfar)
	m[11] = -1
	m[14] = (2 * zfar * znear) / (znear - zfar)
	return m
}

// WGPUDepthMatrix remaps OpenGL clip depth [-1, 1] to WebGPU's [0, 1].
// Multiply on the left of an OpenGL-convention projection matrix.
func WGPUDepthMatrix() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0.5, 0,
		0, 0, 0.5, 1,
	}
}
