// Package phong provides a Blinn-Phong 3D shading core for Go.
//
// # Overview
//
// phong is the 3D counterpart to gogpu/gg: where gg renders 2D vector
// graphics, phong implements the per-vertex transform and per-fragment
// lighting stages of a small real-time 3D renderer. It defines five
// shading programs sharing one architectural pattern:
//
//   - ProgramLit: instanced meshes with a diffuse texture and Blinn-Phong
//     lighting (ambient + diffuse + specular from one point light)
//   - ProgramFlat: per-vertex flat color passthrough
//   - ProgramBackground: a procedural gradient triangle generated from
//     the vertex index with no vertex buffer
//   - ProgramTexture: textured geometry with no lighting
//   - ProgramLightMarker: a small mesh drawn at the point light's position
//     in the light's color, for debugging
//
// # Execution paths
//
// Like gg, phong has two execution paths that share one data model:
//
// The software path evaluates every stage in pure Go. Vertex stages
// ([LitVertex], [FlatVertexStage], [BackgroundVertex], ...) map attributes
// to a [VertexOutput]; fragment stages ([LitFragment], [GradientFragment],
// ...) map interpolated outputs to a color. [SoftwarePipeline] combines
// them with a depth-tested, perspective-correct triangle rasterizer and
// renders into a [Framebuffer]. This path is the reference implementation:
// every lighting and transform property is unit-testable on the CPU.
//
// The GPU path (package gpu) runs the same five programs as WGSL shaders
// through gogpu/wgpu, with bind group and vertex buffer layouts matching
// the byte images produced by [Globals.Pack], [Locals.Pack], [Light.Pack]
// and the attribute packing helpers in this package.
//
// # Uniform data model
//
// Three uniform records are read, never written, by the shading core:
// [Globals] (camera position, view-projection, scene ambient; per frame),
// [Locals] (per-object position offset and reserved fields; per object),
// and [Light] (the single active point light; per frame). Hosts update
// them between draws and upload the packed byte images unchanged.
//
// # Quick start
//
//	cam := phong.NewCamera(eye, target, 800.0/600.0)
//	scene := []*phong.Node{
//	    {Mesh: phong.NewCube(), Instances: instances, Texture: tex},
//	}
//	fb := phong.NewFramebuffer(800, 600)
//	pipe := phong.NewSoftwarePipeline(fb)
//	pipe.SetCamera(cam)
//	pipe.SetLight(&phong.Light{Position: phong.V3(2, 2, 2), Color: phong.V3(1, 1, 1)})
//	pipe.DrawBackground()
//	for _, n := range scene {
//	    pipe.DrawNode(n)
//	}
//	png.Encode(out, fb.Image())
package phong
