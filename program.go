package phong

import "fmt"

// Program identifies one of the five shading programs. The set is closed:
// each program is an independent (vertex stage, fragment stage) pair, and
// the host chooses which one runs for a draw. There is no data flow
// between programs.
type Program int

const (
	// ProgramLit renders instanced meshes with a diffuse texture and
	// Blinn-Phong lighting from the single point light.
	ProgramLit Program = iota

	// ProgramFlat forwards a per-vertex color with positions treated
	// directly as clip space.
	ProgramFlat

	// ProgramBackground draws a gradient triangle generated from the
	// vertex index, with no vertex buffer bound.
	ProgramBackground

	// ProgramTexture samples the diffuse texture and returns it
	// unmodified, with no lighting.
	ProgramTexture

	// ProgramLightMarker draws a small mesh at the light's position in
	// the light's color, for debugging.
	ProgramLightMarker

	// NumPrograms is the number of programs in the set.
	NumPrograms = iota
)

// Programs returns all programs in declaration order.
func Programs() [NumPrograms]Program {
	return [NumPrograms]Program{
		ProgramLit, ProgramFlat, ProgramBackground, ProgramTexture, ProgramLightMarker,
	}
}

// String returns the program's pipeline name.
func (p Program) String() string {
	switch p {
	case ProgramLit:
		return "lit"
	case ProgramFlat:
		return "flat"
	case ProgramBackground:
		return "background"
	case ProgramTexture:
		return "texture"
	case ProgramLightMarker:
		return "light_marker"
	default:
		return fmt.Sprintf("Program(%d)", int(p))
	}
}

// NeedsTexCoords reports whether the program's vertex stream must supply
// texture coordinates.
func (p Program) NeedsTexCoords() bool {
	return p == ProgramLit || p == ProgramTexture || p == ProgramLightMarker
}

// NeedsNormals reports whether the program's vertex stream must supply
// normals. The light marker consumes the full mesh vertex layout even
// though its shading ignores the normal.
func (p Program) NeedsNormals() bool {
	return p == ProgramLit || p == ProgramTexture || p == ProgramLightMarker
}

// Instanced reports whether the program requires the per-instance
// model/normal matrix stream.
func (p Program) Instanced() bool {
	return p == ProgramLit
}

// SamplesTexture reports whether the program's fragment stage samples the
// diffuse texture.
func (p Program) SamplesTexture() bool {
	return p == ProgramLit || p == ProgramTexture
}

// HasVertexBuffer reports whether the program reads a vertex buffer at
// all. The background triangle derives its three positions purely from
// the vertex index.
func (p Program) HasVertexBuffer() bool {
	return p != ProgramBackground
}
