// Package native drives gogpu/wgpu HAL devices for gpuhost.
//
// A [Backend] wraps the hal.Device and hal.Queue returned by
// hal.Adapter.Open (or exposed by a gpucontext.DeviceProvider) and provides:
//
//   - [Queue], a command.RawQueue issuing submissions through hal.Queue
//   - [Semaphore] and [Fence], host-tracked synchronization objects
//   - [FenceWaiter], a command.FenceDevice observing those fences
//   - sampler creation for resource.SamplerCache misses
//
// HAL queues execute submissions in order, so semaphores between
// submissions on the same queue only need host-side validation: a wait
// must follow the signal it consumes. Fences record the HAL submission
// index of the call they traveled with and are signaled once
// hal.Queue.PollCompleted reaches it.
//
// Example:
//
//	import "github.com/gogpu/wgpu/hal/noop"
//
//	open, _ := (&noop.Adapter{}).Open(0, gputypes.DefaultLimits())
//	b := native.New(open)
//	family := b.NewFamily(0, command.CapabilityGeneral)
//	q := family.Queue(0)
//
//	fence := command.NewFence(b.NewFence())
//	_ = q.Submit(nil, fence)
//	ok, err := fence.Wait(b.FenceWaiter(), time.Second)
package native
