// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package phongview presents a software-rendered phong scene inside a
// gogpu window. The scene is rasterized on the CPU into a framebuffer and
// uploaded as a texture through gpucontext, so a host application can
// composite 3-D content without owning a device itself.
package phongview

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/phong"
)

// Common errors returned by View operations.
var (
	// ErrViewClosed is returned when operations are attempted on a closed view.
	ErrViewClosed = errors.New("phongview: view is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("phongview: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("phongview: nil DeviceProvider")
)

// textureDestroyer is the interface for destroying textures.
type textureDestroyer interface {
	Destroy()
}

// View owns a software pipeline and the GPU texture its framebuffer is
// uploaded to. Draw into the pipeline, then hand the view to a texture
// drawer each frame.
//
// View is NOT safe for concurrent use. Create one View per goroutine, or
// use external synchronization.
type View struct {
	pipe        *phong.SoftwarePipeline
	provider    gpucontext.DeviceProvider
	texture     any  // Lazy-created texture
	oldTexture  any  // Previous texture awaiting deferred destruction
	dirty       bool // Needs GPU upload
	sizeChanged bool // Resize pending, texture must be recreated
	width       int
	height      int
	closed      bool
}

// New creates a View rendering at the given size.
// The provider should come from the host's GPU context.
func New(provider gpucontext.DeviceProvider, width, height int) (*View, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	return &View{
		pipe:     phong.NewSoftwarePipeline(phong.NewFramebuffer(width, height)),
		provider: provider,
		width:    width,
		height:   height,
		dirty:    true, // First Flush creates the texture.
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(provider gpucontext.DeviceProvider, width, height int) *View {
	v, err := New(provider, width, height)
	if err != nil {
		panic(err)
	}
	return v
}

// Pipeline returns the software pipeline for drawing.
// Returns nil if the view is closed.
func (v *View) Pipeline() *phong.SoftwarePipeline {
	if v.closed {
		return nil
	}
	return v.pipe
}

// Width returns the view width in pixels.
func (v *View) Width() int {
	return v.width
}

// Height returns the view height in pixels.
func (v *View) Height() int {
	return v.height
}

// Size returns width and height as a convenience.
func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// MarkDirty flags the view for GPU upload on next Flush().
func (v *View) MarkDirty() {
	v.dirty = true
}

// Render calls fn with the software pipeline and marks the view as dirty.
// This is the recommended way to update view content, as it ensures the
// dirty flag is set correctly for GPU upload on next Flush/RenderTo.
func (v *View) Render(fn func(*phong.SoftwarePipeline)) error {
	if v.closed {
		return ErrViewClosed
	}
	fn(v.pipe)
	v.dirty = true
	return nil
}

// IsDirty returns true if the view has pending changes that need to be
// uploaded to the GPU.
func (v *View) IsDirty() bool {
	return v.dirty
}

// Resize changes view dimensions. The framebuffer is recreated and
// cleared; camera and light state carry over.
func (v *View) Resize(width, height int) error {
	if v.closed {
		return ErrViewClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	if v.width == width && v.height == height {
		return nil
	}

	v.pipe.SetTarget(phong.NewFramebuffer(width, height))
	v.width = width
	v.height = height
	v.sizeChanged = true
	v.dirty = true

	return nil
}

// Flush uploads the framebuffer to the GPU texture if dirty.
// Returns the texture for manual drawing if needed.
//
// The texture is created lazily on first Flush(). Subsequent calls only
// upload data if the dirty flag is set.
func (v *View) Flush() (any, error) {
	if v.closed {
		return nil, ErrViewClosed
	}

	// If size changed, defer old texture destruction until after the GPU
	// is idle. In-flight command buffers may still reference it.
	if v.sizeChanged {
		if v.texture != nil {
			if v.oldTexture != nil {
				if destroyer, ok := v.oldTexture.(textureDestroyer); ok {
					destroyer.Destroy()
				}
			}
			v.oldTexture = v.texture
			v.texture = nil
		}
		v.sizeChanged = false
	}

	if !v.dirty && v.texture != nil {
		return v.texture, nil
	}

	data := v.pipe.Framebuffer().RGBA8()

	// Create texture if needed (lazy initialization).
	if v.texture == nil {
		v.texture = &pendingTexture{
			width:  v.width,
			height: v.height,
			data:   data,
		}
		v.dirty = false
		return v.texture, nil
	}

	// Update existing texture.
	if updater, ok := v.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(data); err != nil {
			return nil, fmt.Errorf("phongview: texture update failed: %w", err)
		}
	}

	v.dirty = false
	return v.texture, nil
}

// Texture returns the current GPU texture without flushing.
// Returns nil if the texture hasn't been created yet.
func (v *View) Texture() any {
	return v.texture
}

// Close releases all resources associated with the View.
// After Close, the View should not be used.
// Close is idempotent, multiple calls are safe.
func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	if v.oldTexture != nil {
		if destroyer, ok := v.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		v.oldTexture = nil
	}
	if v.texture != nil {
		if destroyer, ok := v.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		v.texture = nil
	}

	v.pipe = nil
	v.provider = nil
	return nil
}

// pendingTexture is a placeholder for texture creation. It holds the data
// needed to create a real texture when a textureCreator is available
// (during RenderTo).
type pendingTexture struct {
	width  int
	height int
	data   []byte
}

// Provider returns the DeviceProvider associated with this view.
// Returns nil if the view is closed.
func (v *View) Provider() gpucontext.DeviceProvider {
	if v.closed {
		return nil
	}
	return v.provider
}
