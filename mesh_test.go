package phong

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestNewPlane(t *testing.T) {
	m := NewPlane(2)
	if len(m.Vertices) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(m.Vertices))
	}
	if len(m.Indices) != 6 {
		t.Fatalf("index count = %d, want 6", len(m.Indices))
	}
	for i, v := range m.Vertices {
		if !v.Normal.Approx(V3(0, 1, 0), epsilon) {
			t.Errorf("vertex %d normal = %v, want +y", i, v.Normal)
		}
		if v.Position.Y != 0 {
			t.Errorf("vertex %d y = %v, want 0", i, v.Position.Y)
		}
		if math32.Abs(v.Position.X) != 1 || math32.Abs(v.Position.Z) != 1 {
			t.Errorf("vertex %d = %v, want corners at half the size", i, v.Position)
		}
	}
}

func TestNewCube(t *testing.T) {
	m := NewCube()
	if len(m.Vertices) != 24 {
		t.Fatalf("vertex count = %d, want 24 (four per face)", len(m.Vertices))
	}
	if len(m.Indices) != 36 {
		t.Fatalf("index count = %d, want 36", len(m.Indices))
	}

	for i, v := range m.Vertices {
		if math32.Abs(v.Normal.Length()-1) > epsilon {
			t.Errorf("vertex %d normal %v not unit length", i, v.Normal)
		}
		// Every corner of a unit cube is half a unit from the center on
		// each axis.
		for _, c := range [3]float32{v.Position.X, v.Position.Y, v.Position.Z} {
			if math32.Abs(c) != 0.5 {
				t.Errorf("vertex %d position %v not on the unit cube", i, v.Position)
			}
		}
		// The face normal points away from the center through the vertex.
		if v.Position.Dot(v.Normal) <= 0 {
			t.Errorf("vertex %d normal %v points into the cube at %v", i, v.Normal, v.Position)
		}
	}

	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}

func TestNewSphere(t *testing.T) {
	const (
		radius  = 2.0
		sectors = 12
		stacks  = 8
	)
	m := NewSphere(radius, sectors, stacks)

	wantVerts := (stacks + 1) * (sectors + 1)
	if len(m.Vertices) != wantVerts {
		t.Fatalf("vertex count = %d, want %d", len(m.Vertices), wantVerts)
	}
	// Pole rows hold one triangle per sector, inner rows two.
	wantIndices := 3 * 2 * sectors * (stacks - 1)
	if len(m.Indices) != wantIndices {
		t.Fatalf("index count = %d, want %d", len(m.Indices), wantIndices)
	}

	for i, v := range m.Vertices {
		if math32.Abs(v.Position.Length()-radius) > 1e-4 {
			t.Errorf("vertex %d at distance %v, want %v", i, v.Position.Length(), float32(radius))
		}
		if math32.Abs(v.Normal.Length()-1) > 1e-4 {
			t.Errorf("vertex %d normal %v not unit length", i, v.Normal)
		}
		// The normal is the outward radial direction.
		if !v.Normal.Approx(v.Position.Mul(1/float32(radius)), 1e-4) {
			t.Errorf("vertex %d normal %v not radial for %v", i, v.Normal, v.Position)
		}
	}

	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d = %d out of range", i, idx)
		}
	}
}

func TestNewSphere_ClampsTessellation(t *testing.T) {
	m := NewSphere(1, 1, 0)
	wantVerts := 4 * 4
	if len(m.Vertices) != wantVerts {
		t.Errorf("vertex count = %d, want %d after clamping to 3x3", len(m.Vertices), wantVerts)
	}
}
