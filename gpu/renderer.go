package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/phong"
)

// Renderer errors.
var (
	// ErrNilDevice is returned when NewRenderer is called without a device
	// or queue.
	ErrNilDevice = errors.New("gpu: device and queue are required")

	// ErrFrameEnded is returned when draws are recorded on an ended frame.
	ErrFrameEnded = errors.New("gpu: frame has already ended")
)

// submitTimeout bounds the fence wait after a frame submit.
const submitTimeout = 5 * time.Second

// Config holds renderer creation options.
type Config struct {
	// Format is the color target format, typically the surface format.
	Format gputypes.TextureFormat

	// Filter selects the diffuse sampler filtering. Default linear.
	Filter phong.FilterMode

	// Address selects the diffuse sampler addressing. Default clamp.
	Address phong.AddressMode
}

// Renderer owns the device-side state for the five shading programs: the
// compiled pipelines, the shared sampler, the per-frame uniform buffers,
// and the depth target. Scene resources (meshes, textures, objects) are
// created through the Renderer and owned by the caller.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	pipes   pipelineSet
	sampler hal.Sampler

	globalsBuf hal.Buffer
	lightBuf   hal.Buffer
	frameBind  hal.BindGroup

	depth depthTarget

	// white backs draws whose object has no texture and the background
	// and light-marker programs, which need a complete object group even
	// though their shading ignores it.
	white         *Texture
	defaultObject *Object
}

// NewRenderer compiles the shader programs, creates the pipelines for the
// given color format, and allocates the per-frame uniform buffers.
func NewRenderer(device hal.Device, queue hal.Queue, cfg Config) (*Renderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}

	r := &Renderer{device: device, queue: queue}
	if err := r.init(cfg); err != nil {
		r.Destroy()
		return nil, err
	}

	phong.Logger().Info("gpu renderer ready",
		slog.Int("programs", phong.NumPrograms))
	return r, nil
}

func (r *Renderer) init(cfg Config) error {
	if err := r.pipes.createPipelines(r.device, cfg.Format); err != nil {
		return err
	}

	sampler, err := createSampler(r.device, cfg.Filter, cfg.Address)
	if err != nil {
		return err
	}
	r.sampler = sampler

	globalsBuf, err := r.createUniformBuffer("phong_globals", phong.GlobalsSize)
	if err != nil {
		return err
	}
	r.globalsBuf = globalsBuf

	lightBuf, err := r.createUniformBuffer("phong_light", phong.LightSize)
	if err != nil {
		return err
	}
	r.lightBuf = lightBuf

	frameBind, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "phong_frame_bind",
		Layout: r.pipes.frameLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.globalsBuf.NativeHandle(), Offset: 0, Size: phong.GlobalsSize,
			}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: r.lightBuf.NativeHandle(), Offset: 0, Size: phong.LightSize,
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: r.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("create frame bind group: %w", err)
	}
	r.frameBind = frameBind

	white, err := r.UploadTexture(phong.WhiteTexture())
	if err != nil {
		return fmt.Errorf("upload white texture: %w", err)
	}
	r.white = white

	defaultObject, err := r.createObjectGroup(phong.Locals{}, white, nil, 0, nil)
	if err != nil {
		return fmt.Errorf("create default object: %w", err)
	}
	r.defaultObject = defaultObject

	// Seed the uniforms so a frame drawn before SetGlobals/SetLight reads
	// defined values.
	r.SetGlobals(&phong.Globals{ViewProj: phong.Mat4Identity()})
	r.SetLight(&phong.Light{Position: phong.V3(2, 2, 2), Color: phong.V3(1, 1, 1)})

	return nil
}

// SetGlobals uploads the per-frame camera uniforms.
func (r *Renderer) SetGlobals(g *phong.Globals) {
	r.queue.WriteBuffer(r.globalsBuf, 0, g.Pack())
}

// SetCamera rebuilds and uploads the per-frame globals from a camera with
// a zero ambient color, mirroring the software pipeline.
func (r *Renderer) SetCamera(cam *phong.Camera) {
	r.SetGlobals(cam.Globals(phong.Vec4{}))
}

// SetLight uploads the active point light.
func (r *Renderer) SetLight(l *phong.Light) {
	r.queue.WriteBuffer(r.lightBuf, 0, l.Pack())
}

// Destroy releases all device resources held by the renderer. Safe to
// call multiple times or on a partially initialized renderer.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	r.DestroyObject(r.defaultObject)
	r.defaultObject = nil
	r.DestroyTexture(r.white)
	r.white = nil
	r.depth.destroy(r.device)
	if r.frameBind != nil {
		r.device.DestroyBindGroup(r.frameBind)
		r.frameBind = nil
	}
	if r.lightBuf != nil {
		r.device.DestroyBuffer(r.lightBuf)
		r.lightBuf = nil
	}
	if r.globalsBuf != nil {
		r.device.DestroyBuffer(r.globalsBuf)
		r.globalsBuf = nil
	}
	if r.sampler != nil {
		r.device.DestroySampler(r.sampler)
		r.sampler = nil
	}
	r.pipes.destroy(r.device)
}

// Mesh holds a mesh's vertex and index buffers on the device.
type Mesh struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	indexCount uint32
}

// UploadMesh creates device buffers for a mesh's vertices and indices.
func (r *Renderer) UploadMesh(m *phong.Mesh) (*Mesh, error) {
	vertBuf, err := r.createAndUploadBuffer(m.Name+"_verts", phong.PackVertices(m.Vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	idxData := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		idxData[i*4] = byte(idx)
		idxData[i*4+1] = byte(idx >> 8)
		idxData[i*4+2] = byte(idx >> 16)
		idxData[i*4+3] = byte(idx >> 24)
	}
	idxBuf, err := r.createAndUploadBuffer(m.Name+"_indices", idxData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.device.DestroyBuffer(vertBuf)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	return &Mesh{
		vertBuf:    vertBuf,
		idxBuf:     idxBuf,
		indexCount: uint32(len(m.Indices)), //nolint:gosec // index count fits uint32
	}, nil
}

// DestroyMesh releases a mesh's device buffers. Safe to call with nil.
func (r *Renderer) DestroyMesh(m *Mesh) {
	if m == nil {
		return
	}
	if m.idxBuf != nil {
		r.device.DestroyBuffer(m.idxBuf)
		m.idxBuf = nil
	}
	if m.vertBuf != nil {
		r.device.DestroyBuffer(m.vertBuf)
		m.vertBuf = nil
	}
}

// Object holds the per-object device state: the mesh reference, the
// instance buffer, the Locals uniform buffer, and the bind group tying
// Locals and the diffuse texture together.
type Object struct {
	mesh      *Mesh
	instBuf   hal.Buffer
	instCount uint32
	localsBuf hal.Buffer
	bind      hal.BindGroup
}

// CreateObject uploads a node's mesh, instances, Locals, and texture and
// builds the per-object bind group. The returned Object owns its mesh
// buffers; the texture stays owned by the caller when the node carries
// one, while nodes without a texture share the renderer's white texture.
func (r *Renderer) CreateObject(n *phong.Node, tex *Texture) (*Object, error) {
	mesh, err := r.UploadMesh(n.Mesh)
	if err != nil {
		return nil, err
	}

	raws := n.InstanceRaws()
	instBuf, err := r.createAndUploadBuffer("phong_instances", phong.PackInstanceRaws(raws),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		r.DestroyMesh(mesh)
		return nil, fmt.Errorf("create instance buffer: %w", err)
	}

	if tex == nil {
		tex = r.white
	}
	obj, err := r.createObjectGroup(n.Locals, tex, mesh, uint32(len(raws)), instBuf) //nolint:gosec // instance count fits uint32
	if err != nil {
		r.device.DestroyBuffer(instBuf)
		r.DestroyMesh(mesh)
		return nil, err
	}
	return obj, nil
}

// createObjectGroup allocates the Locals buffer and object bind group.
func (r *Renderer) createObjectGroup(locals phong.Locals, tex *Texture, mesh *Mesh, instCount uint32, instBuf hal.Buffer) (*Object, error) {
	localsBuf, err := r.createAndUploadBuffer("phong_locals", locals.Pack(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create locals buffer: %w", err)
	}

	bind, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "phong_object_bind",
		Layout: r.pipes.objectLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: localsBuf.NativeHandle(), Offset: 0, Size: phong.LocalsSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: tex.view.NativeHandle(),
			}},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(localsBuf)
		return nil, fmt.Errorf("create object bind group: %w", err)
	}

	return &Object{
		mesh:      mesh,
		instBuf:   instBuf,
		instCount: instCount,
		localsBuf: localsBuf,
		bind:      bind,
	}, nil
}

// UpdateLocals re-uploads an object's Locals uniform contents.
func (r *Renderer) UpdateLocals(obj *Object, locals *phong.Locals) {
	r.queue.WriteBuffer(obj.localsBuf, 0, locals.Pack())
}

// UpdateInstances re-uploads an object's instance records. The new slice
// must not exceed the count the object was created with.
func (r *Renderer) UpdateInstances(obj *Object, raws []phong.InstanceRaw) {
	r.queue.WriteBuffer(obj.instBuf, 0, phong.PackInstanceRaws(raws))
	obj.instCount = uint32(len(raws)) //nolint:gosec // instance count fits uint32
}

// DestroyObject releases an object's device resources. Safe to call with
// nil.
func (r *Renderer) DestroyObject(obj *Object) {
	if obj == nil {
		return
	}
	if obj.bind != nil {
		r.device.DestroyBindGroup(obj.bind)
		obj.bind = nil
	}
	if obj.localsBuf != nil {
		r.device.DestroyBuffer(obj.localsBuf)
		obj.localsBuf = nil
	}
	if obj.instBuf != nil {
		r.device.DestroyBuffer(obj.instBuf)
		obj.instBuf = nil
	}
	r.DestroyMesh(obj.mesh)
	obj.mesh = nil
}

// FlatBuffer holds an uploaded flat-color vertex list.
type FlatBuffer struct {
	vertBuf   hal.Buffer
	vertCount uint32
}

// UploadFlat creates a device buffer for flat-color vertices.
func (r *Renderer) UploadFlat(verts []phong.FlatVertex) (*FlatBuffer, error) {
	vertBuf, err := r.createAndUploadBuffer("phong_flat_verts", phong.PackFlatVertices(verts),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create flat vertex buffer: %w", err)
	}
	return &FlatBuffer{
		vertBuf:   vertBuf,
		vertCount: uint32(len(verts)), //nolint:gosec // vertex count fits uint32
	}, nil
}

// DestroyFlat releases a flat vertex buffer. Safe to call with nil.
func (r *Renderer) DestroyFlat(fb *FlatBuffer) {
	if fb == nil {
		return
	}
	if fb.vertBuf != nil {
		r.device.DestroyBuffer(fb.vertBuf)
		fb.vertBuf = nil
	}
}

// createUniformBuffer allocates a zeroed uniform buffer.
func (r *Renderer) createUniformBuffer(label string, size uint64) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return buf, nil
}

// createAndUploadBuffer creates a device buffer and uploads data.
func (r *Renderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// Frame records one frame's draws into a single render pass over the
// caller's color target and the renderer's depth texture.
type Frame struct {
	r       *Renderer
	encoder hal.CommandEncoder
	rp      hal.RenderPassEncoder
	ended   bool
}

// BeginFrame starts a render pass targeting view, clearing color to the
// given value and depth to the far plane. The depth texture is resized to
// match if needed.
func (r *Renderer) BeginFrame(view hal.TextureView, w, h uint32, clear phong.RGBA) (*Frame, error) {
	if err := r.depth.ensure(r.device, w, h); err != nil {
		return nil, err
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "phong_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("phong_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "phong_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  gputypes.LoadOpClear,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(clear.R), G: float64(clear.G), B: float64(clear.B), A: float64(clear.A),
			},
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            r.depth.view,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	// Group 0 is shared by every program in the pass.
	rp.SetBindGroup(0, r.frameBind, nil)
	rp.SetBindGroup(1, r.defaultObject.bind, nil)

	return &Frame{r: r, encoder: encoder, rp: rp}, nil
}

// DrawNode records the lit instanced program over an object: all
// instances in one indexed draw.
func (f *Frame) DrawNode(obj *Object) {
	f.rp.SetPipeline(f.r.pipes.pipelines[phong.ProgramLit])
	f.rp.SetBindGroup(1, obj.bind, nil)
	f.rp.SetVertexBuffer(0, obj.mesh.vertBuf, 0)
	f.rp.SetVertexBuffer(1, obj.instBuf, 0)
	f.rp.SetIndexBuffer(obj.mesh.idxBuf, gputypes.IndexFormatUint32, 0)
	f.rp.DrawIndexed(obj.mesh.indexCount, obj.instCount, 0, 0, 0)
}

// DrawTextured records the texture-only program over an object.
func (f *Frame) DrawTextured(obj *Object) {
	f.rp.SetPipeline(f.r.pipes.pipelines[phong.ProgramTexture])
	f.rp.SetBindGroup(1, obj.bind, nil)
	f.rp.SetVertexBuffer(0, obj.mesh.vertBuf, 0)
	f.rp.SetIndexBuffer(obj.mesh.idxBuf, gputypes.IndexFormatUint32, 0)
	f.rp.DrawIndexed(obj.mesh.indexCount, 1, 0, 0, 0)
}

// DrawLightMarker records the light-marker program over a marker mesh.
func (f *Frame) DrawLightMarker(mesh *Mesh) {
	f.rp.SetPipeline(f.r.pipes.pipelines[phong.ProgramLightMarker])
	f.rp.SetBindGroup(1, f.r.defaultObject.bind, nil)
	f.rp.SetVertexBuffer(0, mesh.vertBuf, 0)
	f.rp.SetIndexBuffer(mesh.idxBuf, gputypes.IndexFormatUint32, 0)
	f.rp.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
}

// DrawFlat records the flat program over an uploaded vertex list.
func (f *Frame) DrawFlat(fb *FlatBuffer) {
	f.rp.SetPipeline(f.r.pipes.pipelines[phong.ProgramFlat])
	f.rp.SetBindGroup(1, f.r.defaultObject.bind, nil)
	f.rp.SetVertexBuffer(0, fb.vertBuf, 0)
	f.rp.Draw(fb.vertCount, 1, 0, 0)
}

// DrawBackground records the background program: three vertices, no
// vertex buffer.
func (f *Frame) DrawBackground() {
	f.rp.SetPipeline(f.r.pipes.pipelines[phong.ProgramBackground])
	f.rp.SetBindGroup(1, f.r.defaultObject.bind, nil)
	f.rp.Draw(3, 1, 0, 0)
}

// End closes the render pass, submits the frame, and waits for the device
// to finish.
func (f *Frame) End() error {
	if f.ended {
		return ErrFrameEnded
	}
	f.ended = true

	f.rp.End()

	cmdBuf, err := f.encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer f.r.device.FreeCommandBuffer(cmdBuf)

	fence, err := f.r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer f.r.device.DestroyFence(fence)

	if err := f.r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := f.r.device.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("GPU timeout after %v", submitTimeout)
	}
	return nil
}
