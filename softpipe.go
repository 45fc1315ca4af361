package phong

import "log/slog"

// SoftwarePipeline runs the five shading programs on the CPU, rendering
// into a [Framebuffer]. It is the reference implementation of the shading
// core: the GPU path in package gpu must produce the same values for the
// same inputs.
//
// Uniform state is snapshotted per draw: SetCamera and SetLight capture
// immutable copies, so a host can mutate its own camera or light freely
// between draws without racing a draw in progress. A SoftwarePipeline is
// not safe for concurrent use; render one frame per goroutine or
// synchronize externally.
type SoftwarePipeline struct {
	fb      *Framebuffer
	globals Globals
	light   Light
}

// NewSoftwarePipeline creates a pipeline rendering into fb.
func NewSoftwarePipeline(fb *Framebuffer) *SoftwarePipeline {
	return &SoftwarePipeline{
		fb: fb,
		light: Light{
			Position: V3(2, 2, 2),
			Color:    V3(1, 1, 1),
		},
	}
}

// Framebuffer returns the render target.
func (p *SoftwarePipeline) Framebuffer() *Framebuffer { return p.fb }

// SetTarget switches the pipeline to render into fb, keeping the current
// camera and light state.
func (p *SoftwarePipeline) SetTarget(fb *Framebuffer) { p.fb = fb }

// SetGlobals snapshots the per-frame uniform state directly.
func (p *SoftwarePipeline) SetGlobals(g *Globals) {
	p.globals = *g
}

// SetCamera rebuilds the per-frame globals from a camera with a zero
// ambient color.
func (p *SoftwarePipeline) SetCamera(cam *Camera) {
	p.globals = *cam.Globals(Vec4{})
}

// SetLight snapshots the active point light.
func (p *SoftwarePipeline) SetLight(l *Light) {
	p.light = *l
}

// Clear resets the framebuffer to c and far depth.
func (p *SoftwarePipeline) Clear(c RGBA) {
	p.fb.Clear(c)
}

// DrawNode renders a node with the lit instanced program: every instance
// of the mesh, textured and Blinn-Phong shaded, back faces culled.
func (p *SoftwarePipeline) DrawNode(n *Node) {
	globals := p.globals
	light := p.light
	locals := n.Locals
	tex := n.texture()

	frag := func(in VertexOutput) RGBA {
		return LitFragment(&globals, &locals, &light, tex, in)
	}

	for _, raw := range n.InstanceRaws() {
		p.drawIndexed(n.Mesh, CullBack, frag, func(v Vertex) VertexOutput {
			return LitVertex(&globals, &locals, v, raw)
		})
	}
}

// DrawTextured renders a node with the texture-only program: no
// instancing, no lighting, the sampled texture returned unmodified.
func (p *SoftwarePipeline) DrawTextured(n *Node) {
	globals := p.globals
	locals := n.Locals
	tex := n.texture()

	p.drawIndexed(n.Mesh, CullBack, func(in VertexOutput) RGBA {
		return TextureFragment(tex, in)
	}, func(v Vertex) VertexOutput {
		return TextureVertex(&globals, &locals, v)
	})
}

// DrawLightMarker renders mesh scaled down at the light's position in
// the light's color.
func (p *SoftwarePipeline) DrawLightMarker(mesh *Mesh) {
	globals := p.globals
	light := p.light

	p.drawIndexed(mesh, CullBack, LightMarkerFragment, func(v Vertex) VertexOutput {
		return LightMarkerVertex(&globals, &light, v)
	})
}

// DrawFlat renders a flat-color triangle list with positions treated as
// clip space. The vertex count must be a multiple of three; a trailing
// partial triangle is ignored.
func (p *SoftwarePipeline) DrawFlat(verts []FlatVertex) {
	if len(verts)%3 != 0 {
		Logger().Debug("flat draw with partial triangle",
			slog.Int("vertices", len(verts)))
	}
	for i := 0; i+2 < len(verts); i += 3 {
		o0 := FlatVertexStage(verts[i])
		o1 := FlatVertexStage(verts[i+1])
		o2 := FlatVertexStage(verts[i+2])
		rasterTriangle(p.fb, o0, o1, o2, CullNone, FlatFragment)
	}
}

// DrawBackground runs the procedural gradient program: one triangle from
// vertex indices 0, 1, 2, no vertex buffer, no culling, gradient
// fragments.
func (p *SoftwarePipeline) DrawBackground() {
	o0 := BackgroundVertex(0)
	o1 := BackgroundVertex(1)
	o2 := BackgroundVertex(2)
	rasterTriangle(p.fb, o0, o1, o2, CullNone, GradientFragment)
}

// drawIndexed runs vertex stage and rasterizer over the mesh's triangle
// list.
func (p *SoftwarePipeline) drawIndexed(mesh *Mesh, cull CullMode, frag fragmentFunc, vert func(Vertex) VertexOutput) {
	// Shade each vertex once, then assemble triangles from indices.
	outs := make([]VertexOutput, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		outs[i] = vert(v)
	}
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		rasterTriangle(p.fb,
			outs[mesh.Indices[i]],
			outs[mesh.Indices[i+1]],
			outs[mesh.Indices[i+2]],
			cull, frag)
	}
}
