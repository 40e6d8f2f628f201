package shadercache

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// CompileToSPIRV compiles WGSL source to SPIR-V words. This is the
// default CompileFunc.
func CompileToSPIRV(wgsl string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("shadercache: compile WGSL: %w", err)
	}
	return spirvWords(spirvBytes), nil
}

// spirvWords packs SPIR-V bytes into little-endian 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}

// CreateModule creates a HAL shader module from compiled SPIR-V words.
// The caller owns the module and destroys it through the device.
func CreateModule(device hal.Device, label string, words []uint32) (hal.ShaderModule, error) {
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: words,
		},
	})
}

// DeviceFromProvider extracts the HAL device from a shared GPU provider.
// The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue, the shape shared GPU contexts
// expose.
func DeviceFromProvider(provider any) (hal.Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("shadercache: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("shadercache: provider HalDevice is not hal.Device")
	}
	return device, nil
}
