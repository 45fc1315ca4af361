package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/phong"
)

// DepthFormat is the depth attachment format used by all pipelines.
const DepthFormat = gputypes.TextureFormatDepth32Float

// pipelineSet holds the compiled shader modules, shared layouts, and one
// render pipeline per program.
type pipelineSet struct {
	frameLayout  hal.BindGroupLayout
	objectLayout hal.BindGroupLayout
	pipeLayout   hal.PipelineLayout

	shaders   [phong.NumPrograms]hal.ShaderModule
	pipelines [phong.NumPrograms]hal.RenderPipeline
}

// createPipelines compiles all five programs and builds their render
// pipelines against the given color target format.
//
// All pipelines share one pipeline layout (frame group 0, object group 1)
// and the same depth state: Depth32Float with LessEqual compare and depth
// writes enabled. Color output is written unblended. The lit, texture, and
// light-marker programs cull back faces; the flat and background programs
// draw both sides.
func (ps *pipelineSet) createPipelines(device hal.Device, format gputypes.TextureFormat) error {
	frame, object, err := createBindGroupLayouts(device)
	if err != nil {
		return err
	}
	ps.frameLayout = frame
	ps.objectLayout = object

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "phong_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{ps.frameLayout, ps.objectLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	ps.pipeLayout = pipeLayout

	for _, p := range phong.Programs() {
		shader, err := createShaderModule(device, p)
		if err != nil {
			return err
		}
		ps.shaders[p] = shader

		cullMode := gputypes.CullModeNone
		if p.HasVertexBuffer() && p != phong.ProgramFlat {
			cullMode = gputypes.CullModeBack
		}

		pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  p.String() + "_pipeline",
			Layout: ps.pipeLayout,
			Vertex: hal.VertexState{
				Module:     shader,
				EntryPoint: "vs_main",
				Buffers:    vertexLayouts(p),
			},
			Fragment: &hal.FragmentState{
				Module:     shader,
				EntryPoint: "fs_main",
				Targets: []gputypes.ColorTargetState{
					{
						Format:    format,
						WriteMask: gputypes.ColorWriteMaskAll,
					},
				},
			},
			DepthStencil: &hal.DepthStencilState{
				Format:            DepthFormat,
				DepthWriteEnabled: true,
				DepthCompare:      gputypes.CompareFunctionLessEqual,
				StencilFront: hal.StencilFaceState{
					Compare:     gputypes.CompareFunctionAlways,
					FailOp:      hal.StencilOperationKeep,
					DepthFailOp: hal.StencilOperationKeep,
					PassOp:      hal.StencilOperationKeep,
				},
				StencilBack: hal.StencilFaceState{
					Compare:     gputypes.CompareFunctionAlways,
					FailOp:      hal.StencilOperationKeep,
					DepthFailOp: hal.StencilOperationKeep,
					PassOp:      hal.StencilOperationKeep,
				},
				StencilReadMask:  0x00,
				StencilWriteMask: 0x00,
			},
			Primitive: gputypes.PrimitiveState{
				Topology:  gputypes.PrimitiveTopologyTriangleList,
				FrontFace: gputypes.FrontFaceCCW,
				CullMode:  cullMode,
			},
			Multisample: gputypes.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		})
		if err != nil {
			return fmt.Errorf("create %s pipeline: %w", p, err)
		}
		ps.pipelines[p] = pipeline
	}

	return nil
}

// destroy releases all pipeline resources in reverse creation order. Safe
// to call on a partially created set.
func (ps *pipelineSet) destroy(device hal.Device) {
	if device == nil {
		return
	}
	for i := len(ps.pipelines) - 1; i >= 0; i-- {
		if ps.pipelines[i] != nil {
			device.DestroyRenderPipeline(ps.pipelines[i])
			ps.pipelines[i] = nil
		}
		if ps.shaders[i] != nil {
			device.DestroyShaderModule(ps.shaders[i])
			ps.shaders[i] = nil
		}
	}
	if ps.pipeLayout != nil {
		device.DestroyPipelineLayout(ps.pipeLayout)
		ps.pipeLayout = nil
	}
	if ps.objectLayout != nil {
		device.DestroyBindGroupLayout(ps.objectLayout)
		ps.objectLayout = nil
	}
	if ps.frameLayout != nil {
		device.DestroyBindGroupLayout(ps.frameLayout)
		ps.frameLayout = nil
	}
}
