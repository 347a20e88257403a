package native

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuhost/command"
)

// DefaultPollInterval is how often FenceWaiter polls the HAL queue for
// completed submissions.
const DefaultPollInterval = 100 * time.Microsecond

// Option configures a Backend.
type Option func(*options)

type options struct {
	pollInterval time.Duration
	label        string
}

func defaultOptions() options {
	return options{
		pollInterval: DefaultPollInterval,
		label:        "gpuhost",
	}
}

// WithPollInterval sets the fence polling interval. Non-positive values
// keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.pollInterval = d
		}
	}
}

// WithLabel sets the debug label prefix given to created resources.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// Backend bridges gpuhost to a HAL device and its queue.
//
// Thread Safety: Backend is safe for concurrent use. The Queue it exposes
// follows command.Queue's single-submitter rule.
type Backend struct {
	device hal.Device
	queue  *Queue
	waiter *FenceWaiter
	opts   options
}

// New creates a backend for a device opened through hal.Adapter.Open.
func New(open hal.OpenDevice, opts ...Option) *Backend {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Backend{
		device: open.Device,
		opts:   o,
	}
	b.queue = &Queue{raw: open.Queue, device: open.Device}
	b.waiter = &FenceWaiter{queue: b.queue, interval: o.pollInterval}

	slogger().Debug("native: backend created", "label", o.label, "poll_interval", o.pollInterval)
	return b
}

// FromProvider creates a backend for the device and queue of provider.
// The provider must expose hal.Device and hal.Queue values.
func FromProvider(provider gpucontext.DeviceProvider, opts ...Option) (*Backend, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrUnsupportedProvider)
	}
	device, ok := provider.Device().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: device is %T", ErrUnsupportedProvider, provider.Device())
	}
	queue, ok := provider.Queue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: queue is %T", ErrUnsupportedProvider, provider.Queue())
	}
	info := provider.AdapterInfo()
	slogger().Info("native: using provider device", "adapter", info.Name, "type", info.Type.String())
	return New(hal.OpenDevice{Device: device, Queue: queue}, opts...), nil
}

// Device returns the HAL device.
func (b *Backend) Device() hal.Device { return b.device }

// Queue returns the backend's queue as a command.RawQueue.
func (b *Backend) Queue() *Queue { return b.queue }

// FenceWaiter returns the command.FenceDevice for the backend's fences.
func (b *Backend) FenceWaiter() *FenceWaiter { return b.waiter }

// NewFamily creates a command family over the backend's queue.
// A HAL device exposes a single queue, so the family has one queue.
func (b *Backend) NewFamily(id command.FamilyID, caps command.Capability) *command.Family {
	return command.NewFamily(id, caps, b.queue)
}

// NewSemaphore creates a semaphore for submissions on the backend's queue.
func (b *Backend) NewSemaphore() *Semaphore {
	return &Semaphore{queue: b.queue}
}

// NewFence creates an unsignaled fence for the backend's queue.
func (b *Backend) NewFence() *Fence {
	return &Fence{queue: b.queue}
}

// WaitIdle blocks until the device has finished all submitted work.
func (b *Backend) WaitIdle() error {
	return b.queue.WaitIdle()
}
