package native

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuhost/resource"
)

// CreateSampler creates a HAL sampler for info. The returned handle owns
// one share; the sampler is destroyed through the device when the last
// share is released.
//
// Device memory exhaustion is reported as an error matching both
// resource.ErrAllocation and hal.ErrDeviceOutOfMemory. Parameters the hal
// descriptor has no field for are rejected with ErrUnsupportedSampler.
func (b *Backend) CreateSampler(info resource.SamplerInfo) (*resource.Handle[resource.Sampler], error) {
	if info.BorderColor != resource.BorderColorTransparentBlack || info.Unnormalized {
		return nil, fmt.Errorf("%w: border color %s, unnormalized %t",
			ErrUnsupportedSampler, info.BorderColor, info.Unnormalized)
	}
	raw, err := b.device.CreateSampler(info.HALDescriptor(b.opts.label + " sampler"))
	if err != nil {
		if errors.Is(err, hal.ErrDeviceOutOfMemory) {
			return nil, fmt.Errorf("%w: %w", resource.ErrAllocation, err)
		}
		return nil, fmt.Errorf("native: create sampler: %w", err)
	}

	slogger().Debug("native: sampler created",
		"mag", info.MagFilter.String(),
		"min", info.MinFilter.String(),
		"address_u", info.AddressModeU.String(),
		"compare", info.Compare.String())

	device := b.device
	return resource.NewHandle(resource.NewSampler(raw, info), func(s resource.Sampler) {
		device.DestroySampler(s.Raw())
	}), nil
}

// SamplerCreator returns a resource.CreateFunc creating info on this
// backend, for use on a cache miss.
func (b *Backend) SamplerCreator(info resource.SamplerInfo) resource.CreateFunc {
	return func() (*resource.Handle[resource.Sampler], error) {
		return b.CreateSampler(info)
	}
}
