package gpuhost

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuhost/backend/native"
	"github.com/gogpu/gpuhost/command"
	"github.com/gogpu/gpuhost/resource"
)

// Host assembles a queue family and a shared sampler cache on top of one
// HAL device.
//
// Thread Safety: Sampler, Samplers and the fence helpers are safe for
// concurrent use. The queue returned by Queue must be driven by one
// goroutine at a time.
type Host struct {
	backend  *native.Backend
	family   *command.Family
	samplers *resource.SyncSamplerCache
	closed   atomic.Bool
}

// New creates a host for a device opened through hal.Adapter.Open.
func New(open hal.OpenDevice, opts ...Option) (*Host, error) {
	if open.Device == nil || open.Queue == nil {
		return nil, ErrNoDevice
	}
	o := applyOptions(opts)
	return newHost(native.New(open, o.backendOptions()...), o), nil
}

// NewFromProvider creates a host for the device and queue of a
// gpucontext.DeviceProvider that exposes HAL objects.
func NewFromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Host, error) {
	o := applyOptions(opts)
	b, err := native.FromProvider(provider, o.backendOptions()...)
	if err != nil {
		return nil, fmt.Errorf("gpuhost: %w", err)
	}
	return newHost(b, o), nil
}

func applyOptions(opts []Option) hostOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}
	return o
}

func newHost(b *native.Backend, o hostOptions) *Host {
	h := &Host{
		backend:  b,
		family:   b.NewFamily(o.familyID, o.caps),
		samplers: resource.NewSyncSamplerCache(),
	}
	Logger().Info("gpuhost: host opened",
		"family", o.familyID,
		"capability", o.caps.String(),
		"queues", h.family.Len())
	return h
}

// Backend returns the native backend the host submits through.
func (h *Host) Backend() *native.Backend { return h.backend }

// Family returns the host's queue family.
func (h *Host) Family() *command.Family { return h.family }

// Queue returns the first queue of the host's family.
func (h *Host) Queue() *command.Queue { return h.family.Queue(0) }

// Samplers returns the host's shared sampler cache.
func (h *Host) Samplers() *resource.SyncSamplerCache { return h.samplers }

// Sampler returns a shared sampler for info, creating it on the device on
// a cache miss. The caller owns one share of the returned handle and must
// Release it.
//
// Two goroutines missing on the same info may both create a sampler; the
// cache keeps the later one and each caller keeps its own handle.
func (h *Host) Sampler(info resource.SamplerInfo) (*resource.Handle[resource.Sampler], error) {
	if h.closed.Load() {
		return nil, ErrClosed
	}
	s, err := h.samplers.Get(info, h.backend.SamplerCreator(info))
	if err != nil {
		return nil, err
	}
	// Close may have cleared the cache while the sampler was being
	// created; drop what this call inserted after that.
	if h.closed.Load() {
		h.samplers.Clear()
		s.Release()
		return nil, ErrClosed
	}
	return s, nil
}

// NewFence creates an unsignaled fence for the host's queue.
func (h *Host) NewFence() *command.Fence {
	return command.NewFence(h.backend.NewFence())
}

// NewSemaphore creates a semaphore for ordering submissions on the
// host's queue.
func (h *Host) NewSemaphore() *native.Semaphore {
	return h.backend.NewSemaphore()
}

// WaitFence waits up to timeout for f's submission to complete. It reports
// false with a nil error on timeout.
func (h *Host) WaitFence(f *command.Fence, timeout time.Duration) (bool, error) {
	if h.closed.Load() {
		return false, ErrClosed
	}
	return f.Wait(h.backend.FenceWaiter(), timeout)
}

// ResetFence returns a signaled fence to the unsignaled state.
func (h *Host) ResetFence(f *command.Fence) error {
	if h.closed.Load() {
		return ErrClosed
	}
	return f.Reset(h.backend.FenceWaiter())
}

// Close waits for the device to go idle and releases the cache's sampler
// shares. Handles still held by callers stay valid until released.
// Close is idempotent; later calls return nil. After Close, Sampler,
// WaitFence and ResetFence return ErrClosed.
func (h *Host) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := h.Queue().WaitIdle()
	stats := h.samplers.Stats()
	h.samplers.Clear()
	Logger().Info("gpuhost: host closed",
		"samplers", stats.Len,
		"hit_rate", stats.HitRate())
	if err != nil {
		return fmt.Errorf("gpuhost: close: %w", err)
	}
	return nil
}
