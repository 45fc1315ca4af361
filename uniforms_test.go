package phong

import (
	"encoding/binary"
	"math"
	"testing"
)

func f32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	if offset+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d-byte buffer", offset, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestUniformSizes(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"globals", GlobalsSize, 96},
		{"locals", LocalsSize, 64},
		{"light", LightSize, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("size = %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestGlobals_Pack(t *testing.T) {
	g := Globals{
		ViewPos:  V4(1, 2, 3, 4),
		ViewProj: Mat4Translate(V3(5, 6, 7)),
		Ambient:  V4(0.1, 0.2, 0.3, 0.4),
	}
	buf := g.Pack()
	if len(buf) != GlobalsSize {
		t.Fatalf("len = %d, want %d", len(buf), GlobalsSize)
	}

	// view_pos at offset 0.
	if got := f32At(t, buf, 0); got != 1 {
		t.Errorf("view_pos.x = %v, want 1", got)
	}
	if got := f32At(t, buf, 12); got != 4 {
		t.Errorf("view_pos.w = %v, want 4", got)
	}

	// view_proj at offset 16, column major. The translation column of
	// Mat4Translate is column 3, elements 12..14.
	if got := f32At(t, buf, 16); got != 1 {
		t.Errorf("view_proj[0] = %v, want 1", got)
	}
	if got := f32At(t, buf, 16+12*4); got != 5 {
		t.Errorf("view_proj tx = %v, want 5", got)
	}
	if got := f32At(t, buf, 16+14*4); got != 7 {
		t.Errorf("view_proj tz = %v, want 7", got)
	}

	// ambient at offset 80.
	if got := f32At(t, buf, 80); got != float32(0.1) {
		t.Errorf("ambient.x = %v, want 0.1", got)
	}
	if got := f32At(t, buf, 92); got != float32(0.4) {
		t.Errorf("ambient.w = %v, want 0.4", got)
	}
}

func TestLocals_Pack(t *testing.T) {
	l := Locals{
		Position: V4(1, 2, 3, 0),
		Color:    V4(4, 5, 6, 1),
		Normal:   V4(7, 8, 9, 0),
		Lights:   V4(10, 11, 12, 0),
	}
	buf := l.Pack()
	if len(buf) != LocalsSize {
		t.Fatalf("len = %d, want %d", len(buf), LocalsSize)
	}

	fields := []struct {
		name   string
		offset int
		x      float32
	}{
		{"position", 0, 1},
		{"color", 16, 4},
		{"normal", 32, 7},
		{"lights", 48, 10},
	}
	for _, f := range fields {
		if got := f32At(t, buf, f.offset); got != f.x {
			t.Errorf("%s.x at offset %d = %v, want %v", f.name, f.offset, got, f.x)
		}
	}
}

func TestLight_Pack(t *testing.T) {
	l := Light{
		Position: V3(2, 3, 4),
		Color:    V3(1, 0.5, 0.25),
	}
	buf := l.Pack()
	if len(buf) != LightSize {
		t.Fatalf("len = %d, want %d", len(buf), LightSize)
	}

	if got := f32At(t, buf, 0); got != 2 {
		t.Errorf("position.x = %v, want 2", got)
	}
	if got := f32At(t, buf, 8); got != 4 {
		t.Errorf("position.z = %v, want 4", got)
	}
	// color starts on the next 16-byte boundary.
	if got := f32At(t, buf, 16); got != 1 {
		t.Errorf("color.x = %v, want 1", got)
	}
	if got := f32At(t, buf, 24); got != 0.25 {
		t.Errorf("color.z = %v, want 0.25", got)
	}

	// The pad lanes after each vec3 stay zero.
	for _, offset := range []int{12, 28} {
		if got := f32At(t, buf, offset); got != 0 {
			t.Errorf("pad at offset %d = %v, want 0", offset, got)
		}
	}
}
