package phong

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestVertexStrides(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"vertex", VertexStride, 32},
		{"flat_vertex", FlatVertexStride, 24},
		{"instance", InstanceStride, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("stride = %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestInstanceRaw_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   Instance
	}{
		{"identity", Instance{Rotation: QuatIdentity()}},
		{"translated", Instance{Position: V3(1, -2, 3), Rotation: QuatIdentity()}},
		{
			"rotated",
			Instance{
				Position: V3(4, 0, -1),
				Rotation: QuatAxisAngle(V3(0, 1, 0), math32.Pi/3),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := tt.in.Raw()
			model := Mat4Translate(tt.in.Position).Mul(tt.in.Rotation.Mat4())
			if !raw.ModelMatrix().Approx(model, epsilon) {
				t.Errorf("ModelMatrix() = %v, want %v", raw.ModelMatrix(), model)
			}
			// Pure rotations are their own normal matrix.
			want := model.Upper3()
			if !matApprox3(raw.NormalMat(), want, epsilon) {
				t.Errorf("NormalMat() = %v, want %v", raw.NormalMat(), want)
			}
		})
	}
}

func TestRawFromModel_NonUniformScale(t *testing.T) {
	model := Mat4ScaleVec(V3(1, 2, 1))
	raw := RawFromModel(model)
	want := NormalMatrix(model)
	if !matApprox3(raw.NormalMat(), want, epsilon) {
		t.Errorf("NormalMat() = %v, want %v", raw.NormalMat(), want)
	}
}

func matApprox3(a, b Mat3, eps float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestPackVertices_Layout(t *testing.T) {
	verts := []Vertex{
		{Position: V3(1, 2, 3), TexCoords: V2(0.5, 0.75), Normal: V3(0, 0, 1)},
		{Position: V3(-1, 0, 0), TexCoords: V2(1, 0), Normal: V3(0, 1, 0)},
	}
	buf := PackVertices(verts)
	if len(buf) != 2*VertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 2*VertexStride)
	}

	if got := f32At(t, buf, 0); got != 1 {
		t.Errorf("position.x = %v, want 1", got)
	}
	if got := f32At(t, buf, 12); got != 0.5 {
		t.Errorf("tex_coords.u = %v, want 0.5", got)
	}
	if got := f32At(t, buf, 28); got != 1 {
		t.Errorf("normal.z = %v, want 1", got)
	}
	// Second vertex starts at the full stride.
	if got := f32At(t, buf, VertexStride); got != -1 {
		t.Errorf("verts[1].position.x = %v, want -1", got)
	}
	if got := f32At(t, buf, VertexStride+24); got != 1 {
		t.Errorf("verts[1].normal.y = %v, want 1", got)
	}
}

func TestPackFlatVertices_Layout(t *testing.T) {
	verts := []FlatVertex{
		{Position: V3(0.5, -0.5, 0), Color: V3(1, 0, 0)},
	}
	buf := PackFlatVertices(verts)
	if len(buf) != FlatVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), FlatVertexStride)
	}
	if got := f32At(t, buf, 0); got != 0.5 {
		t.Errorf("position.x = %v, want 0.5", got)
	}
	if got := f32At(t, buf, 12); got != 1 {
		t.Errorf("color.r = %v, want 1", got)
	}
}

func TestPackInstanceRaws_Layout(t *testing.T) {
	raw := RawFromModel(Mat4Translate(V3(7, 8, 9)))
	buf := PackInstanceRaws([]InstanceRaw{raw})
	if len(buf) != InstanceStride {
		t.Fatalf("len = %d, want %d", len(buf), InstanceStride)
	}

	// Model columns at 16-byte steps; the translation lives in column 3.
	if got := f32At(t, buf, 0); got != 1 {
		t.Errorf("model col0.x = %v, want 1", got)
	}
	if got := f32At(t, buf, 48); got != 7 {
		t.Errorf("model col3.x = %v, want 7", got)
	}
	if got := f32At(t, buf, 56); got != 9 {
		t.Errorf("model col3.z = %v, want 9", got)
	}

	// Normal columns at 12-byte steps from offset 64; a pure translation
	// packs an identity normal matrix.
	for i := range 3 {
		off := 64 + i*12 + i*4
		if got := f32At(t, buf, off); got != 1 {
			t.Errorf("normal col%d diagonal = %v, want 1", i, got)
		}
	}
}

func TestPackInstances_MatchesRaw(t *testing.T) {
	in := Instance{Position: V3(1, 2, 3), Rotation: QuatAxisAngle(V3(1, 0, 0), math32.Pi/5)}
	got := PackInstances([]Instance{in})
	want := PackInstanceRaws([]InstanceRaw{in.Raw()})
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, got[i], want[i])
		}
	}
}
