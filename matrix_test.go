package phong

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestMat4_Identity(t *testing.T) {
	id := Mat4Identity()
	v := V4(1, 2, 3, 4)
	if got := id.MulVec4(v); !got.Approx(v, epsilon) {
		t.Errorf("identity × %v = %v, want %v", v, got, v)
	}

	m := Mat4Translate(V3(5, 6, 7))
	if got := id.Mul(m); !got.Approx(m, epsilon) {
		t.Errorf("identity × m ≠ m")
	}
	if got := m.Mul(id); !got.Approx(m, epsilon) {
		t.Errorf("m × identity ≠ m")
	}
}

func TestMat4_Translate(t *testing.T) {
	m := Mat4Translate(V3(1, 2, 3))
	got := m.MulPoint(V3(10, 20, 30))
	want := V3(11, 22, 33)
	if !got.Approx(want, epsilon) {
		t.Errorf("translate point = %v, want %v", got, want)
	}
}

func TestMat4_Scale(t *testing.T) {
	m := Mat4Scale(2)
	got := m.MulPoint(V3(1, 2, 3))
	want := V3(2, 4, 6)
	if !got.Approx(want, epsilon) {
		t.Errorf("scale point = %v, want %v", got, want)
	}

	mv := Mat4ScaleVec(V3(1, 2, 3))
	got = mv.MulPoint(V3(1, 1, 1))
	want = V3(1, 2, 3)
	if !got.Approx(want, epsilon) {
		t.Errorf("per-axis scale point = %v, want %v", got, want)
	}
}

func TestMat4_MulComposition(t *testing.T) {
	// Translate then scale, applied right to left.
	m := Mat4Scale(2).Mul(Mat4Translate(V3(1, 0, 0)))
	got := m.MulPoint(V3(1, 1, 1))
	want := V3(4, 2, 2)
	if !got.Approx(want, epsilon) {
		t.Errorf("scale∘translate point = %v, want %v", got, want)
	}
}

func TestMat4_ColsRoundTrip(t *testing.T) {
	m := Mat4Translate(V3(1, 2, 3)).Mul(Mat4Scale(2))
	got := Mat4FromCols(m.Col(0), m.Col(1), m.Col(2), m.Col(3))
	if !got.Approx(m, epsilon) {
		t.Errorf("Mat4FromCols(m.Col(0..3)) = %v, want %v", got, m)
	}
}

func TestMat4_Transpose(t *testing.T) {
	m := Mat4Translate(V3(1, 2, 3))
	tr := m.Transpose()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if tr.At(row, col) != m.At(col, row) {
				t.Fatalf("transpose At(%d,%d) = %v, want %v", row, col, tr.At(row, col), m.At(col, row))
			}
		}
	}
	if !tr.Transpose().Approx(m, epsilon) {
		t.Error("double transpose did not restore matrix")
	}
}

func TestMat3_Inverse(t *testing.T) {
	tests := []struct {
		name string
		m    Mat3
		ok   bool
	}{
		{"identity", Mat3Identity(), true},
		{"scale", Mat4Scale(3).Upper3(), true},
		{"rotation", QuatAxisAngle(V3(0, 1, 0), 1).Mat4().Upper3(), true},
		{"singular", Mat3{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if ok != tt.ok {
				t.Fatalf("Inverse() ok = %v, want %v", ok, tt.ok)
			}
			if !tt.ok {
				if !inv.Approx(Mat3Identity(), epsilon) {
					t.Errorf("singular Inverse() = %v, want identity fallback", inv)
				}
				return
			}
			// m × m⁻¹ round trip through a probe vector.
			v := V3(1, 2, 3)
			got := tt.m.MulVec3(inv.MulVec3(v))
			if !got.Approx(v, epsilon) {
				t.Errorf("m × m⁻¹ × %v = %v, want %v", v, got, v)
			}
		})
	}
}

func TestNormalMatrix_UniformScaleInvariance(t *testing.T) {
	// Under uniform scaling the renormalized transformed normal must not
	// change direction.
	n := V3(0, 0, 1)
	rot := QuatAxisAngle(V3(1, 0, 0), 0.7).Mat4()

	base := NormalMatrix(rot).MulVec3(n).Normalize()
	scaled := NormalMatrix(rot.Mul(Mat4Scale(4))).MulVec3(n).Normalize()

	if !base.Approx(scaled, epsilon) {
		t.Errorf("normal direction changed under uniform scale: %v vs %v", base, scaled)
	}
}

func TestNormalMatrix_NonUniformScale(t *testing.T) {
	// A plane tilted by non-uniform scaling: the model matrix would bend
	// the normal off perpendicular, the normal matrix must not.
	model := Mat4ScaleVec(V3(1, 2, 1))
	// Surface direction (1, -1, 0) on the unscaled geometry maps to
	// (1, -2, 0); the transformed normal must stay perpendicular to it.
	n := NormalMatrix(model).MulVec3(V3(1, 1, 0).Normalize())
	tangent := V3(1, -2, 0)
	if got := n.Dot(tangent); math32.Abs(got) > epsilon {
		t.Errorf("normal · tangent = %v, want 0", got)
	}
}

func TestNormalMatrix_SingularFallback(t *testing.T) {
	var zero Mat4
	got := NormalMatrix(zero)
	if !got.Approx(zero.Upper3(), epsilon) {
		t.Errorf("singular NormalMatrix = %v, want untransposed upper block", got)
	}
}

func TestQuat_Rotate(t *testing.T) {
	tests := []struct {
		name   string
		q      Quat
		v      Vec3
		expect Vec3
	}{
		{"identity", QuatIdentity(), V3(1, 2, 3), V3(1, 2, 3)},
		{"quarter turn about z", QuatAxisAngle(V3(0, 0, 1), math32.Pi/2), V3(1, 0, 0), V3(0, 1, 0)},
		{"half turn about y", QuatAxisAngle(V3(0, 1, 0), math32.Pi), V3(1, 0, 0), V3(-1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Rotate(tt.v)
			if !got.Approx(tt.expect, epsilon) {
				t.Errorf("Rotate(%v) = %v, want %v", tt.v, got, tt.expect)
			}
			// The matrix form must agree with the direct rotation.
			viaMat := tt.q.Mat4().MulPoint(tt.v)
			if !viaMat.Approx(tt.expect, epsilon) {
				t.Errorf("Mat4().MulPoint(%v) = %v, want %v", tt.v, viaMat, tt.expect)
			}
		})
	}
}

func TestQuat_MulComposition(t *testing.T) {
	a := QuatAxisAngle(V3(0, 0, 1), math32.Pi/2)
	b := QuatAxisAngle(V3(1, 0, 0), math32.Pi/2)

	// q.Mul(r) applies r first.
	got := a.Mul(b).Rotate(V3(0, 1, 0))
	want := a.Rotate(b.Rotate(V3(0, 1, 0)))
	if !got.Approx(want, epsilon) {
		t.Errorf("(a×b).Rotate = %v, want %v", got, want)
	}
}

func TestMat4LookAt(t *testing.T) {
	view := Mat4LookAt(V3(0, 0, 5), V3(0, 0, 0), V3(0, 1, 0))

	// The eye maps to the origin.
	if got := view.MulPoint(V3(0, 0, 5)); !got.Approx(V3(0, 0, 0), epsilon) {
		t.Errorf("eye maps to %v, want origin", got)
	}
	// The target sits on the negative z axis in view space (right-handed).
	if got := view.MulPoint(V3(0, 0, 0)); !got.Approx(V3(0, 0, -5), epsilon) {
		t.Errorf("target maps to %v, want (0, 0, -5)", got)
	}
}

func TestMat4Perspective_DepthRange(t *testing.T) {
	const znear, zfar = 0.1, 100.0
	proj := Mat4Perspective(math32.Pi/4, 1, znear, zfar)

	nearClip := proj.MulVec4(V4(0, 0, -znear, 1))
	if got := nearClip.Z / nearClip.W; math32.Abs(got-(-1)) > epsilon {
		t.Errorf("near plane depth = %v, want -1", got)
	}
	farClip := proj.MulVec4(V4(0, 0, -zfar, 1))
	if got := farClip.Z / farClip.W; math32.Abs(got-1) > 1e-3 {
		t.Errorf("far plane depth = %v, want 1", got)
	}
}

func TestWGPUDepthMatrix(t *testing.T) {
	m := WGPUDepthMatrix()

	tests := []struct {
		name   string
		clip   Vec4
		expect float32
	}{
		{"gl near -1 to 0", V4(0, 0, -1, 1), 0},
		{"gl mid 0 to 0.5", V4(0, 0, 0, 1), 0.5},
		{"gl far 1 to 1", V4(0, 0, 1, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.MulVec4(tt.clip)
			if math32.Abs(got.Z-tt.expect) > epsilon {
				t.Errorf("remapped z = %v, want %v", got.Z, tt.expect)
			}
			// x, y, w pass through untouched.
			if got.X != tt.clip.X || got.Y != tt.clip.Y || got.W != tt.clip.W {
				t.Errorf("remap disturbed x/y/w: %v", got)
			}
		})
	}
}
