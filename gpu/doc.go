// Package gpu runs the phong shading programs on a WebGPU device through
// github.com/gogpu/wgpu/hal.
//
// The package mirrors the software path in the parent package: the same
// five programs, the same uniform layouts, the same vertex and instance
// attribute formats. WGSL sources are embedded and compiled to SPIR-V
// through github.com/gogpu/naga at renderer creation time.
//
// The entry point is [Renderer]. A typical frame:
//
//	r, err := gpu.NewRenderer(device, queue, gpu.Config{Format: surfaceFormat})
//	if err != nil { ... }
//	defer r.Destroy()
//
//	r.SetGlobals(cam.Globals(phong.V4(0, 0, 0, 1)))
//	r.SetLight(&phong.Light{Position: phong.V3(2, 2, 2), Color: phong.V3(1, 1, 1)})
//
//	frame, err := r.BeginFrame(targetView, width, height, phong.RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1})
//	frame.DrawBackground()
//	frame.DrawNode(node)
//	frame.DrawLightMarker(markerMesh)
//	err = frame.End()
//
// Resource uploads (meshes, textures, uniform updates) happen between
// frames on the queue; draws record into a single render pass with a
// shared depth attachment.
package gpu
