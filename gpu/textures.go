package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/phong"
)

// depthTarget holds the depth texture backing the render pass, recreated
// when the target size changes.
type depthTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// ensure creates or recreates the depth texture if the requested
// dimensions differ from the current size. If dimensions match and the
// texture exists, this is a no-op.
func (dt *depthTarget) ensure(device hal.Device, w, h uint32) error {
	if dt.width == w && dt.height == h && dt.tex != nil {
		return nil
	}
	dt.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "phong_depth",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create depth texture: %w", err)
	}
	dt.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "phong_depth_view",
	})
	if err != nil {
		dt.destroy(device)
		return fmt.Errorf("create depth view: %w", err)
	}
	dt.view = view

	dt.width = w
	dt.height = h
	return nil
}

// destroy releases the depth texture and resets dimensions.
func (dt *depthTarget) destroy(device hal.Device) {
	if dt.view != nil {
		device.DestroyTextureView(dt.view)
		dt.view = nil
	}
	if dt.tex != nil {
		device.DestroyTexture(dt.tex)
		dt.tex = nil
	}
	dt.width = 0
	dt.height = 0
}

// Texture is a diffuse texture uploaded to the device.
type Texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// UploadTexture creates a device texture from a CPU texture and writes its
// pixels as RGBA8 through the queue.
func (r *Renderer) UploadTexture(src *phong.Texture) (*Texture, error) {
	w := uint32(src.Width())  //nolint:gosec // texture dimensions fit uint32
	h := uint32(src.Height()) //nolint:gosec // texture dimensions fit uint32

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "phong_diffuse",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create diffuse texture: %w", err)
	}

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "phong_diffuse_view",
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create diffuse view: %w", err)
	}

	r.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: 0, Y: 0, Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		src.RGBA8(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	return &Texture{tex: tex, view: view, width: w, height: h}, nil
}

// DestroyTexture releases a device texture. Safe to call with nil.
func (r *Renderer) DestroyTexture(t *Texture) {
	if t == nil {
		return
	}
	if t.view != nil {
		r.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		r.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

// createSampler creates the shared diffuse sampler from the CPU-side
// filter and address modes.
func createSampler(device hal.Device, filter phong.FilterMode, address phong.AddressMode) (hal.Sampler, error) {
	halFilter := gputypes.FilterModeLinear
	if filter == phong.FilterNearest {
		halFilter = gputypes.FilterModeNearest
	}
	halAddress := gputypes.AddressModeClampToEdge
	if address == phong.AddressRepeat {
		halAddress = gputypes.AddressModeRepeat
	}

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "phong_diffuse_sampler",
		AddressModeU: halAddress,
		AddressModeV: halAddress,
		AddressModeW: halAddress,
		MagFilter:    halFilter,
		MinFilter:    halFilter,
		MipmapFilter: halFilter,
	})
	if err != nil {
		return nil, fmt.Errorf("create diffuse sampler: %w", err)
	}
	return sampler, nil
}
