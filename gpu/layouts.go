package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/phong"
)

// meshVertexLayout returns the vertex buffer layout for mesh programs.
// Matches VertexInput in phong.wgsl, texture.wgsl, and light.wgsl:
//
//	location 0: position (vec3<f32>)
//	location 1: tex_coords (vec2<f32>)
//	location 2: normal (vec3<f32>)
func meshVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: phong.VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // tex_coords
			{Format: gputypes.VertexFormatFloat32x3, Offset: 20, ShaderLocation: 2}, // normal
		},
	}
}

// instanceLayout returns the per-instance buffer layout for the lit
// program. Matches InstanceInput in phong.wgsl: the model matrix as four
// vec4 columns at locations 5..8 and the normal matrix as three vec3
// columns at locations 9..11.
func instanceLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: phong.InstanceStride,
		StepMode:    gputypes.VertexStepModeInstance,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 5},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 6},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 7},
			{Format: gputypes.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 8},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 64, ShaderLocation: 9},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 76, ShaderLocation: 10},
			{Format: gputypes.VertexFormatFloat32x3, Offset: 88, ShaderLocation: 11},
		},
	}
}

// flatVertexLayout returns the vertex buffer layout for the flat program.
// Matches VertexInput in flat.wgsl:
//
//	location 0: position (vec3<f32>)
//	location 1: color (vec3<f32>)
func flatVertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: phong.FlatVertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // color
		},
	}
}

// vertexLayouts returns the vertex buffer layouts for a program, in slot
// order. The background program has none.
func vertexLayouts(p phong.Program) []gputypes.VertexBufferLayout {
	switch {
	case p == phong.ProgramFlat:
		return []gputypes.VertexBufferLayout{flatVertexLayout()}
	case p.Instanced():
		return []gputypes.VertexBufferLayout{meshVertexLayout(), instanceLayout()}
	case p.HasVertexBuffer():
		return []gputypes.VertexBufferLayout{meshVertexLayout()}
	default:
		return nil
	}
}

// createBindGroupLayouts creates the two bind group layouts shared by all
// five pipelines.
//
// Group 0 (per frame):
//
//	binding 0: Globals (uniform buffer, vertex+fragment)
//	binding 1: Light (uniform buffer, vertex+fragment)
//	binding 2: diffuse sampler (fragment)
//
// Group 1 (per object):
//
//	binding 0: Locals (uniform buffer, vertex+fragment)
//	binding 1: diffuse texture (texture_2d, fragment)
//
// Programs that ignore some entries still bind them; a shared layout keeps
// bind group churn down when switching pipelines mid-pass.
func createBindGroupLayouts(device hal.Device) (frame, object hal.BindGroupLayout, err error) {
	frame, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "phong_frame_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create frame bind group layout: %w", err)
	}

	object, err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "phong_object_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		device.DestroyBindGroupLayout(frame)
		return nil, nil, fmt.Errorf("create object bind group layout: %w", err)
	}

	return frame, object, nil
}
