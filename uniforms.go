package phong

import (
	"encoding/binary"
	"math"
)

// Uniform buffer byte sizes. These are the exact sizes of the packed byte
// images and must match the struct declarations in the WGSL programs.
// A mismatch between host packing and shader layout is silently wrong,
// never detected, so the Pack methods below are the single source of truth
// for field order and padding.
const (
	// GlobalsSize is the byte size of the packed Globals uniform:
	// view_pos vec4 + view_proj mat4x4 + ambient vec4.
	GlobalsSize = 16 + 64 + 16

	// LocalsSize is the byte size of the packed Locals uniform:
	// four vec4 fields.
	LocalsSize = 4 * 16

	// LightSize is the byte size of the packed Light uniform:
	// position vec3 + pad + color vec3 + pad.
	LightSize = 2 * 16
)

// Globals is the per-frame uniform state shared by all draws: the camera
// world position, the combined view-projection matrix, and the scene
// ambient color. The host rebuilds it once per frame; the shading core
// only reads it.
type Globals struct {
	// ViewPos is the camera world position. W is padding and unused.
	ViewPos Vec4

	// ViewProj is the combined view × projection matrix.
	ViewProj Mat4

	// Ambient is the scene ambient light color. The current lit fragment
	// formula uses a fixed 0.1 × light color ambient term instead, but the
	// field is part of the uniform contract and is uploaded regardless.
	Ambient Vec4
}

// Pack returns the uniform byte image in std140-compatible layout.
func (g *Globals) Pack() []byte {
	buf := make([]byte, GlobalsSize)
	putVec4(buf[0:], g.ViewPos)
	putMat4(buf[16:], g.ViewProj)
	putVec4(buf[80:], g.Ambient)
	return buf
}

// Locals is the per-object uniform state. Only Position feeds the current
// lighting path; Color, Normal, and Lights are reserved fields that are
// packed and bound but never read by the fragment formula.
type Locals struct {
	// Position is an object-space translation offset added to each vertex
	// position before the per-instance model transform.
	Position Vec4

	// Color is a reserved object tint.
	Color Vec4

	// Normal is reserved orientation data.
	Normal Vec4

	// Lights is reserved light-count/selector data.
	Lights Vec4
}

// Pack returns the uniform byte image in std140-compatible layout.
func (l *Locals) Pack() []byte {
	buf := make([]byte, LocalsSize)
	putVec4(buf[0:], l.Position)
	putVec4(buf[16:], l.Color)
	putVec4(buf[32:], l.Normal)
	putVec4(buf[48:], l.Lights)
	return buf
}

// Light is the single active point light. Its color feeds the ambient,
// diffuse, and specular terms alike; multi-light support is not modeled.
type Light struct {
	// Position is the light's world-space position.
	Position Vec3

	// Color is the light's radiance.
	Color Vec3
}

// Pack returns the uniform byte image. Each vec3 is padded to 16 bytes,
// as uniform address rules require.
func (l *Light) Pack() []byte {
	buf := make([]byte, LightSize)
	putVec3(buf[0:], l.Position)
	putVec3(buf[16:], l.Color)
	return buf
}

func putF32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func putVec2(buf []byte, v Vec2) {
	putF32(buf[0:], v.X)
	putF32(buf[4:], v.Y)
}

func putVec3(buf []byte, v Vec3) {
	putF32(buf[0:], v.X)
	putF32(buf[4:], v.Y)
	putF32(buf[8:], v.Z)
}

func putVec4(buf []byte, v Vec4) {
	putF32(buf[0:], v.X)
	putF32(buf[4:], v.Y)
	putF32(buf[8:], v.Z)
	putF32(buf[12:], v.W)
}

// putMat4 writes the matrix column by column, which for a column-major
// Mat4 is its natural element order.
func putMat4(buf []byte, m Mat4) {
	for i, v := range m {
		putF32(buf[i*4:], v)
	}
}
