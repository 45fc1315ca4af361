package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/phong"
)

// Embedded WGSL sources, one per program.

//go:embed shaders/phong.wgsl
var phongShaderSource string

//go:embed shaders/flat.wgsl
var flatShaderSource string

//go:embed shaders/background.wgsl
var backgroundShaderSource string

//go:embed shaders/texture.wgsl
var textureShaderSource string

//go:embed shaders/light.wgsl
var lightShaderSource string

// ShaderSource returns the embedded WGSL source for a program.
func ShaderSource(p phong.Program) string {
	switch p {
	case phong.ProgramLit:
		return phongShaderSource
	case phong.ProgramFlat:
		return flatShaderSource
	case phong.ProgramBackground:
		return backgroundShaderSource
	case phong.ProgramTexture:
		return textureShaderSource
	case phong.ProgramLightMarker:
		return lightShaderSource
	default:
		return ""
	}
}

// compileSPIRV compiles WGSL to SPIR-V words via naga.
func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}

	// Convert bytes to uint32 slice for SPIR-V.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// createShaderModule compiles a program's WGSL to SPIR-V and creates the
// hal shader module.
func createShaderModule(device hal.Device, p phong.Program) (hal.ShaderModule, error) {
	source := ShaderSource(p)
	if source == "" {
		return nil, fmt.Errorf("no shader source for program %v", p)
	}

	spirv, err := compileSPIRV(source)
	if err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", p, err)
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.String() + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", p, err)
	}
	return module, nil
}
