// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package phongview

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when the draw context doesn't implement
	// gpucontext.TextureDrawer.
	ErrInvalidDrawContext = errors.New("phongview: dc must implement gpucontext.TextureDrawer")

	// ErrInvalidRenderer is returned when the renderer doesn't implement
	// gpucontext.TextureCreator.
	ErrInvalidRenderer = errors.New("phongview: renderer must implement gpucontext.TextureCreator")
)

// RenderOptions controls how the view is rendered to the target.
type RenderOptions struct {
	// X, Y is the position to draw the texture (default: 0, 0)
	X, Y float32
}

// RenderTo draws the view content to a gpucontext.TextureDrawer.
// This is the primary integration method.
//
// The framebuffer is flushed to the GPU and drawn at position (0, 0).
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    view.RenderTo(dc.AsTextureDrawer())
//	})
func (v *View) RenderTo(dc gpucontext.TextureDrawer) error {
	return v.RenderToEx(dc, RenderOptions{})
}

// RenderToEx draws the view at a given position.
func (v *View) RenderToEx(dc gpucontext.TextureDrawer, opts RenderOptions) error {
	if v.closed {
		return ErrViewClosed
	}

	tex, err := v.Flush()
	if err != nil {
		return err
	}

	// If the texture is pending (placeholder), create the real GPU
	// texture now that a creator is in reach.
	if pending, isPending := tex.(*pendingTexture); isPending {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}

		// NewTextureFromRGBA waits for the GPU internally, so once it
		// returns the deferred old texture is safe to destroy.
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("phongview: NewTextureFromRGBA failed: %w", err)
		}

		v.texture = realTex
		tex = realTex

		if v.oldTexture != nil {
			if destroyer, ok := v.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			v.oldTexture = nil
		}
	}

	gpuTex, ok := tex.(gpucontext.Texture)
	if !ok {
		return ErrInvalidDrawContext
	}

	return dc.DrawTexture(gpuTex, opts.X, opts.Y)
}

// RenderToPosition is a convenience method for rendering at a specific
// position.
func (v *View) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	return v.RenderToEx(dc, RenderOptions{X: x, Y: y})
}
