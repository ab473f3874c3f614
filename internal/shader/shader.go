// Package shader compiles WGSL shaders into HAL shader modules.
package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileToSPIRV compiles WGSL source to SPIR-V words.
func CompileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("compile shader: SPIR-V length %d is not word aligned", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// Module is a created shader module and how it was sourced.
type Module struct {
	hal.ShaderModule

	// SPIRV is true when the module was created from naga output, false
	// when it fell back to WGSL source.
	SPIRV bool

	// CompileErr is the naga error that caused a WGSL fallback.
	CompileErr error
}

// NewModule creates a shader module from WGSL. The source is compiled to
// SPIR-V first; when compilation fails the device receives the WGSL source
// directly.
func NewModule(device hal.Device, label, wgslSource string) (Module, error) {
	if wgslSource == "" {
		return Module{}, fmt.Errorf("%s: shader source is empty", label)
	}

	spirv, compileErr := CompileToSPIRV(wgslSource)
	src := hal.ShaderSource{SPIRV: spirv}
	if compileErr != nil {
		src = hal.ShaderSource{WGSL: wgslSource}
	}

	m, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: src,
	})
	if err != nil {
		return Module{}, fmt.Errorf("create %s: %w", label, err)
	}
	return Module{ShaderModule: m, SPIRV: compileErr == nil, CompileErr: compileErr}, nil
}
