package phong

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestNewCamera_Defaults(t *testing.T) {
	c := NewCamera(V3(0, 0, 5), V3(0, 0, 0), 16.0/9.0)
	if !c.Up.Approx(V3(0, 1, 0), epsilon) {
		t.Errorf("Up = %v, want +y", c.Up)
	}
	if math32.Abs(c.Fovy-math32.Pi/4) > 1e-4 {
		t.Errorf("Fovy = %v, want 45 degrees in radians", c.Fovy)
	}
	if c.Znear != 0.1 || c.Zfar != 100 {
		t.Errorf("depth range = [%v, %v], want [0.1, 100]", c.Znear, c.Zfar)
	}
}

func TestCamera_TargetProjectsToCenter(t *testing.T) {
	c := NewCamera(V3(3, 2, 8), V3(0, 0, 0), 1)
	clip := c.ViewProjection().MulVec4(FromPoint(c.Target))
	x := clip.X / clip.W
	y := clip.Y / clip.W
	if math32.Abs(x) > 1e-4 || math32.Abs(y) > 1e-4 {
		t.Errorf("target at NDC (%v, %v), want the view center", x, y)
	}
}

func TestCamera_DepthInZeroOneRange(t *testing.T) {
	c := NewCamera(V3(0, 0, 5), V3(0, 0, 0), 1)
	vp := c.ViewProjection()

	tests := []struct {
		name  string
		point Vec3
	}{
		{"near_the_camera", V3(0, 0, 4.5)},
		{"at_the_target", V3(0, 0, 0)},
		{"far_behind_target", V3(0, 0, -80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := vp.MulVec4(FromPoint(tt.point))
			z := clip.Z / clip.W
			if z < 0 || z > 1 {
				t.Errorf("NDC depth = %v, want within [0, 1]", z)
			}
		})
	}
}

func TestCamera_DepthOrdering(t *testing.T) {
	c := NewCamera(V3(0, 0, 5), V3(0, 0, 0), 1)
	vp := c.ViewProjection()

	nearClip := vp.MulVec4(FromPoint(V3(0, 0, 2)))
	farClip := vp.MulVec4(FromPoint(V3(0, 0, -2)))
	if nearClip.Z/nearClip.W >= farClip.Z/farClip.W {
		t.Errorf("nearer point depth %v not below farther point depth %v",
			nearClip.Z/nearClip.W, farClip.Z/farClip.W)
	}
}

func TestCamera_Globals(t *testing.T) {
	c := NewCamera(V3(1, 2, 3), V3(0, 0, 0), 2)
	ambient := V4(0.1, 0.1, 0.1, 1)
	g := c.Globals(ambient)

	if !g.ViewPos.Approx(V4(1, 2, 3, 1), epsilon) {
		t.Errorf("ViewPos = %v, want the eye at w = 1", g.ViewPos)
	}
	if g.Ambient != ambient {
		t.Errorf("Ambient = %v, want %v", g.Ambient, ambient)
	}
	if !g.ViewProj.Approx(c.ViewProjection(), epsilon) {
		t.Errorf("ViewProj does not match ViewProjection()")
	}
}
