package phong

// Camera builds the view and projection matrices the host folds into
// Globals.ViewProj once per frame.
type Camera struct {
	// Eye is the camera world position.
	Eye Vec3

	// Target is the point the camera looks at.
	Target Vec3

	// Up is the camera's up direction.
	Up Vec3

	// Aspect is the viewport width / height ratio.
	Aspect float32

	// Fovy is the vertical field of view in radians.
	Fovy float32

	// Znear and Zfar bound the visible depth range.
	Znear, Zfar float32
}

// Default perspective parameters, in radians for Fovy.
const (
	defaultFovy  = 45 * (3.14159265 / 180)
	defaultZnear = 0.1
	defaultZfar  = 100
)

// NewCamera returns a camera at eye looking at target with Y up and
// default perspective parameters.
func NewCamera(eye, target Vec3, aspect float32) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     V3(0, 1, 0),
		Aspect: aspect,
		Fovy:   defaultFovy,
		Znear:  defaultZnear,
		Zfar:   defaultZfar,
	}
}

// View returns the view matrix.
func (c *Camera) View() Mat4 {
	return Mat4LookAt(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective projection remapped to WebGPU's
// [0, 1] clip depth.
func (c *Camera) Projection() Mat4 {
	return WGPUDepthMatrix().Mul(Mat4Perspective(c.Fovy, c.Aspect, c.Znear, c.Zfar))
}

// ViewProjection returns the combined matrix for Globals.ViewProj.
func (c *Camera) ViewProjection() Mat4 {
	return c.Projection().Mul(c.View())
}

// Globals returns a per-frame uniform snapshot for this camera with the
// given scene ambient color.
func (c *Camera) Globals(ambient Vec4) *Globals {
	return &Globals{
		ViewPos:  FromPoint(c.Eye),
		ViewProj: c.ViewProjection(),
		Ambient:  ambient,
	}
}
