package phong

import "github.com/chewxy/math32"

// Shading constants shared by the Go and WGSL implementations of the lit
// fragment stage.
const (
	// AmbientStrength scales the light color for the ambient term.
	AmbientStrength = 0.1

	// SpecularExponent is the Blinn-Phong shininess exponent.
	SpecularExponent = 32

	// LightMarkerScale shrinks the marker mesh drawn at the light position.
	LightMarkerScale = 0.25
)

// VertexOutput is the interpolation contract between a vertex stage and
// its fragment stage. ClipPosition is consumed by the rasterizer; the
// remaining fields are forwarded attributes, interpolated
// perspective-correctly across the primitive. Each program populates only
// the fields its fragment stage reads.
type VertexOutput struct {
	// ClipPosition is the clip-space position before perspective division.
	ClipPosition Vec4

	// TexCoords is the forwarded texture coordinate (lit, texture).
	TexCoords Vec2

	// WorldNormal is the forwarded world-space normal (lit).
	WorldNormal Vec3

	// WorldPosition is the forwarded world-space position (lit).
	WorldPosition Vec3

	// Color is the forwarded flat color (flat, light marker) or the
	// procedural 2D position in X, Y (background).
	Color Vec3
}

// RGBA is one shaded fragment: unclamped linear RGB plus alpha in [0, 1].
// Clamping and compositing happen downstream in the host or device.
type RGBA struct {
	R, G, B, A float32
}

// LitVertex is the vertex stage of the lit instanced program.
//
// The model and normal matrices are reassembled from the instance record,
// the normal goes to world space through the normal matrix (the model
// matrix would skew it under non-uniform scale), and the per-object
// Locals position offset is added in object space before the instance
// transform so instancing and repositioning compose additively.
func LitVertex(globals *Globals, locals *Locals, v Vertex, inst InstanceRaw) VertexOutput {
	model := inst.ModelMatrix()
	normal := inst.NormalMat()

	worldPos := model.MulVec4(FromPoint(v.Position.Add(locals.Position.XYZ())))
	return VertexOutput{
		ClipPosition:  globals.ViewProj.MulVec4(worldPos),
		TexCoords:     v.TexCoords,
		WorldNormal:   normal.MulVec3(v.Normal),
		WorldPosition: worldPos.XYZ(),
	}
}

// TextureVertex is the vertex stage of the texture-only program: the same
// transform as the lit program minus instancing and lighting attributes.
func TextureVertex(globals *Globals, locals *Locals, v Vertex) VertexOutput {
	worldPos := FromPoint(v.Position.Add(locals.Position.XYZ()))
	return VertexOutput{
		ClipPosition: globals.ViewProj.MulVec4(worldPos),
		TexCoords:    v.TexCoords,
	}
}

// FlatVertexStage forwards a per-vertex color with the position treated
// directly as clip space (homogeneous w = 1). No camera, no instancing.
func FlatVertexStage(v FlatVertex) VertexOutput {
	return VertexOutput{
		ClipPosition: FromPoint(v.Position),
		Color:        v.Color,
	}
}

// BackgroundVertex derives a screen-space triangle vertex from the
// invocation index alone, with no vertex buffer bound. The mapping is
// closed form and must yield identical output for indices 0, 1, 2 on
// every invocation:
//
//	x = (1 - index) * 0.5
//	y = ((index & 1) * 2 - 1) * 0.5
//
// The 2D position is forwarded in Color.X, Color.Y for the gradient
// fragment stage. Depth is pinned to the far plane so the backdrop never
// occludes geometry drawn after it.
func BackgroundVertex(index uint32) VertexOutput {
	x := float32(1-int32(index)) * 0.5
	y := float32(int32(index&1)*2-1) * 0.5
	return VertexOutput{
		ClipPosition: V4(x, y, 1, 1),
		Color:        V3(x, y, 0),
	}
}

// LightMarkerVertex scales the marker mesh by a fixed factor and
// translates it to the light's world position, forwarding the light color
// flat.
func LightMarkerVertex(globals *Globals, light *Light, v Vertex) VertexOutput {
	pos := v.Position.Mul(LightMarkerScale).Add(light.Position)
	return VertexOutput{
		ClipPosition: globals.ViewProj.MulVec4(FromPoint(pos)),
		Color:        light.Color,
	}
}

// LitFragment is the Blinn-Phong fragment stage. Evaluated independently
// per covered pixel with no shared state:
//
//	ambient  = light.color * AmbientStrength
//	diffuse  = light.color * max(dot(N, L), 0)
//	specular = light.color * max(dot(N, H), 0)^SpecularExponent
//	result   = (ambient + diffuse + specular) * texture.rgb, texture.a
//
// where N is the normalized interpolated world normal, L the direction to
// the light, and H the half vector between L and the view direction.
// The ambient term intentionally ignores globals.Ambient. Zero-length
// normals are undefined, not guarded. Locals is bound but unused by the
// formula.
func LitFragment(globals *Globals, locals *Locals, light *Light, tex *Texture, in VertexOutput) RGBA {
	_ = locals
	objectColor := tex.Sample(in.TexCoords.X, in.TexCoords.Y)

	ambient := light.Color.Mul(AmbientStrength)

	n := in.WorldNormal.Normalize()
	lightDir := light.Position.Sub(in.WorldPosition).Normalize()
	diffuse := light.Color.Mul(math32.Max(n.Dot(lightDir), 0))

	viewDir := globals.ViewPos.XYZ().Sub(in.WorldPosition).Normalize()
	halfDir := viewDir.Add(lightDir).Normalize()
	specular := light.Color.Mul(math32.Pow(math32.Max(n.Dot(halfDir), 0), SpecularExponent))

	rgb := ambient.Add(diffuse).Add(specular).MulVec(V3(objectColor.R, objectColor.G, objectColor.B))
	return RGBA{R: rgb.X, G: rgb.Y, B: rgb.Z, A: objectColor.A}
}

// FlatFragment returns the interpolated per-vertex color unchanged at
// full opacity.
func FlatFragment(in VertexOutput) RGBA {
	return RGBA{R: in.Color.X, G: in.Color.Y, B: in.Color.Z, A: 1}
}

// GradientFragment returns the procedural 2D position as the red and
// green channels with a fixed 0.5 blue, a visual placeholder rather than
// a lighting model.
func GradientFragment(in VertexOutput) RGBA {
	return RGBA{R: in.Color.X, G: in.Color.Y, B: 0.5, A: 1}
}

// TextureFragment samples the diffuse texture and returns it unmodified.
// No lighting leaks into this path.
func TextureFragment(tex *Texture, in VertexOutput) RGBA {
	return tex.Sample(in.TexCoords.X, in.TexCoords.Y)
}

// LightMarkerFragment returns the forwarded light color at full opacity.
func LightMarkerFragment(in VertexOutput) RGBA {
	return RGBA{R: in.Color.X, G: in.Color.Y, B: in.Color.Z, A: 1}
}

// Interpolate blends three vertex outputs with perspective-correct
// barycentric weighting. bary holds the screen-space barycentric weights
// of the fragment within the triangle (summing to 1). Attributes are
// weighted by 1/w so that values vary linearly across the primitive's
// surface rather than across the screen, which is the contract the lit
// fragment stage assumes for world position and normal.
func Interpolate(o0, o1, o2 VertexOutput, bary Vec3) VertexOutput {
	w0 := bary.X / o0.ClipPosition.W
	w1 := bary.Y / o1.ClipPosition.W
	w2 := bary.Z / o2.ClipPosition.W
	sum := w0 + w1 + w2
	if sum == 0 {
		return o0
	}
	w0 /= sum
	w1 /= sum
	w2 /= sum

	lerp2 := func(a, b, c Vec2) Vec2 {
		return a.Mul(w0).Add(b.Mul(w1)).Add(c.Mul(w2))
	}
	lerp3 := func(a, b, c Vec3) Vec3 {
		return a.Mul(w0).Add(b.Mul(w1)).Add(c.Mul(w2))
	}

	return VertexOutput{
		// Clip position is not forwarded to fragment stages; the depth the
		// rasterizer needs is interpolated separately in screen space.
		TexCoords:     lerp2(o0.TexCoords, o1.TexCoords, o2.TexCoords),
		WorldNormal:   lerp3(o0.WorldNormal, o1.WorldNormal, o2.WorldNormal),
		WorldPosition: lerp3(o0.WorldPosition, o1.WorldPosition, o2.WorldPosition),
		Color:         lerp3(o0.Color, o1.Color, o2.Color),
	}
}
