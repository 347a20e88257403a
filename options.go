package gpuhost

import (
	"log/slog"
	"time"

	"github.com/gogpu/gpuhost/backend/native"
	"github.com/gogpu/gpuhost/command"
)

// Option configures a Host during creation.
//
// Example:
//
//	h, err := gpuhost.New(open,
//	    gpuhost.WithFamilyID(2),
//	    gpuhost.WithCapability(command.CapabilityGraphics|command.CapabilityTransfer),
//	)
type Option func(*hostOptions)

// hostOptions holds optional configuration for Host creation.
type hostOptions struct {
	logger       *slog.Logger
	familyID     command.FamilyID
	caps         command.Capability
	pollInterval time.Duration
	samplerLabel string
}

// defaultOptions returns the default host options.
func defaultOptions() hostOptions {
	return hostOptions{
		caps:         command.CapabilityGeneral,
		pollInterval: native.DefaultPollInterval,
		samplerLabel: "gpuhost",
	}
}

// WithLogger installs l as the package logger when the Host is created.
// It is equivalent to calling SetLogger(l) before New.
func WithLogger(l *slog.Logger) Option {
	return func(o *hostOptions) {
		o.logger = l
	}
}

// WithFamilyID sets the queue family identifier. Submittables recorded for
// the host's queue must carry the same family. Defaults to 0.
func WithFamilyID(id command.FamilyID) Option {
	return func(o *hostOptions) {
		o.familyID = id
	}
}

// WithCapability sets the capabilities advertised by the queue family.
// Defaults to command.CapabilityGeneral.
func WithCapability(caps command.Capability) Option {
	return func(o *hostOptions) {
		o.caps = caps
	}
}

// WithPollInterval sets how often fence waits poll the device for
// completion. Non-positive values keep native.DefaultPollInterval.
func WithPollInterval(d time.Duration) Option {
	return func(o *hostOptions) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithSamplerLabel sets the debug label prefix for samplers the host creates.
func WithSamplerLabel(label string) Option {
	return func(o *hostOptions) {
		o.samplerLabel = label
	}
}

func (o *hostOptions) backendOptions() []native.Option {
	return []native.Option{
		native.WithPollInterval(o.pollInterval),
		native.WithLabel(o.samplerLabel),
	}
}
