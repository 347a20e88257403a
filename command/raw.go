package command

import (
	"time"

	"github.com/gogpu/wgpu/hal"
)

// Semaphore is a native GPU-GPU synchronization primitive.
// Its lifetime is owned by the caller; a semaphore referenced by a
// submission must stay alive until the GPU has consumed it.
type Semaphore interface {
	hal.Resource
}

// RawWait is a semaphore wait as seen by the native queue.
type RawWait struct {
	Semaphore Semaphore
	Stage     PipelineStage
}

// RawSubmission is a single native submit call: command buffers to
// execute, semaphores to wait on before the given stages, and semaphores
// to signal when the command buffers complete.
type RawSubmission struct {
	CommandBuffers []hal.CommandBuffer
	Waits          []RawWait
	Signals        []Semaphore
}

// Empty reports whether the submission carries no work and no
// synchronization.
func (s *RawSubmission) Empty() bool {
	return len(s.CommandBuffers) == 0 && len(s.Waits) == 0 && len(s.Signals) == 0
}

// RawQueue is the native command queue driven by a Queue.
type RawQueue interface {
	// Submit issues one native submission. The fence, if non-nil, is
	// signaled when the submission and all work issued before it on the
	// queue complete. From the caller's point of view the call is atomic.
	Submit(sub RawSubmission, fence hal.Fence) error

	// WaitIdle blocks until all work submitted to the queue has completed.
	// Implementations report device memory exhaustion with an error
	// matching hal.ErrDeviceOutOfMemory.
	WaitIdle() error
}

// FenceDevice is the part of a native device used to observe and reset
// fences. hal.Device satisfies it.
type FenceDevice interface {
	Wait(fence hal.Fence, value uint64, timeout time.Duration) (bool, error)
	ResetFence(fence hal.Fence) error
}
