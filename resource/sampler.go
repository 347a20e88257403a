package resource

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// BorderColor is the color returned for clamp-to-border addressing.
type BorderColor uint8

const (
	// BorderColorTransparentBlack is (0, 0, 0, 0).
	BorderColorTransparentBlack BorderColor = iota
	// BorderColorOpaqueBlack is (0, 0, 0, 1).
	BorderColorOpaqueBlack
	// BorderColorOpaqueWhite is (1, 1, 1, 1).
	BorderColorOpaqueWhite
)

// String returns the border color name.
func (c BorderColor) String() string {
	switch c {
	case BorderColorTransparentBlack:
		return "TransparentBlack"
	case BorderColorOpaqueBlack:
		return "OpaqueBlack"
	case BorderColorOpaqueWhite:
		return "OpaqueWhite"
	default:
		return "Unknown"
	}
}

// SamplerInfo is the full set of sampler creation parameters.
// It is comparable and keys SamplerCache by value.
//
// LOD clamps must not be NaN: a NaN key never matches itself, so every
// lookup would miss.
type SamplerInfo struct {
	AddressModeU  gputypes.AddressMode
	AddressModeV  gputypes.AddressMode
	AddressModeW  gputypes.AddressMode
	MagFilter     gputypes.FilterMode
	MinFilter     gputypes.FilterMode
	MipmapFilter  gputypes.MipmapFilterMode
	LodMinClamp   float32
	LodMaxClamp   float32
	Compare       gputypes.CompareFunction
	MaxAnisotropy uint16

	// BorderColor and Unnormalized have no counterpart in
	// hal.SamplerDescriptor; HALDescriptor does not carry them and
	// backends that cannot honor non-zero values reject them.
	BorderColor BorderColor

	// Unnormalized selects texel coordinates instead of [0, 1].
	Unnormalized bool
}

// DefaultSamplerInfo returns clamp-to-edge, nearest filtering parameters.
func DefaultSamplerInfo() SamplerInfo {
	return SamplerInfoFrom(gputypes.DefaultSamplerDescriptor())
}

// LinearSamplerInfo returns clamp-to-edge, linear filtering parameters.
func LinearSamplerInfo() SamplerInfo {
	return SamplerInfoFrom(gputypes.LinearSamplerDescriptor())
}

// SamplerInfoFrom converts a WebGPU sampler descriptor. The label is
// dropped: two descriptors differing only by label share a sampler.
func SamplerInfoFrom(desc gputypes.SamplerDescriptor) SamplerInfo {
	return SamplerInfo{
		AddressModeU:  desc.AddressModeU,
		AddressModeV:  desc.AddressModeV,
		AddressModeW:  desc.AddressModeW,
		MagFilter:     desc.MagFilter,
		MinFilter:     desc.MinFilter,
		MipmapFilter:  desc.MipmapFilter,
		LodMinClamp:   desc.LodMinClamp,
		LodMaxClamp:   desc.LodMaxClamp,
		Compare:       desc.Compare,
		MaxAnisotropy: desc.MaxAnisotropy,
	}
}

// HALDescriptor returns the descriptor passed to hal.Device.CreateSampler.
func (i SamplerInfo) HALDescriptor(label string) *hal.SamplerDescriptor {
	mip := gputypes.FilterModeNearest
	if i.MipmapFilter == gputypes.MipmapFilterModeLinear {
		mip = gputypes.FilterModeLinear
	}
	anisotropy := i.MaxAnisotropy
	if anisotropy == 0 {
		anisotropy = 1
	}
	return &hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: i.AddressModeU,
		AddressModeV: i.AddressModeV,
		AddressModeW: i.AddressModeW,
		MagFilter:    i.MagFilter,
		MinFilter:    i.MinFilter,
		MipmapFilter: mip,
		LodMinClamp:  i.LodMinClamp,
		LodMaxClamp:  i.LodMaxClamp,
		Compare:      i.Compare,
		Anisotropy:   anisotropy,
	}
}

// Sampler is a created native sampler together with its parameters.
type Sampler struct {
	raw  hal.Sampler
	info SamplerInfo
}

// NewSampler wraps a native sampler created from info.
func NewSampler(raw hal.Sampler, info SamplerInfo) Sampler {
	return Sampler{raw: raw, info: info}
}

// Raw returns the native sampler.
func (s Sampler) Raw() hal.Sampler { return s.raw }

// Info returns the parameters the sampler was created with.
func (s Sampler) Info() SamplerInfo { return s.info }
