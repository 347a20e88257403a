package native

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// Semaphore is a binary semaphore between submissions on one Queue.
// It implements command.Semaphore.
type Semaphore struct {
	queue *Queue

	// signaled is the submission index of the pending signal, 0 if none.
	// Guarded by queue.mu.
	signaled uint64
}

// Destroy is a no-op: the semaphore holds no HAL object.
func (s *Semaphore) Destroy() {}

// Fence tracks the HAL submission it traveled with.
// It implements hal.Fence and is used through command.Fence.
type Fence struct {
	queue *Queue

	// index is the submission index to wait for, 0 if unsubmitted.
	index atomic.Uint64
}

// Destroy is a no-op: the fence holds no HAL object.
func (f *Fence) Destroy() {}

// Index returns the HAL submission index the fence waits for.
func (f *Fence) Index() uint64 { return f.index.Load() }

// FenceWaiter observes fences of one Queue. It implements
// command.FenceDevice.
type FenceWaiter struct {
	queue    *Queue
	interval time.Duration
}

// fence resolves a hal.Fence to one of this queue's.
func (w *FenceWaiter) fence(fence hal.Fence) (*Fence, error) {
	f, ok := fence.(*Fence)
	if !ok || f.queue != w.queue {
		return nil, fmt.Errorf("%w: %T", ErrForeignFence, fence)
	}
	return f, nil
}

// Status reports whether the fence's submission has completed.
func (w *FenceWaiter) Status(fence hal.Fence) (bool, error) {
	f, err := w.fence(fence)
	if err != nil {
		return false, err
	}
	idx := f.index.Load()
	if idx == 0 {
		return false, ErrFenceIdle
	}
	return w.queue.Completed() >= idx, nil
}

// Wait blocks until the fence's submission completes or timeout elapses,
// polling the HAL queue. It returns false with a nil error on timeout.
// The value argument is unused: backend fences are binary.
func (w *FenceWaiter) Wait(fence hal.Fence, _ uint64, timeout time.Duration) (bool, error) {
	f, err := w.fence(fence)
	if err != nil {
		return false, err
	}
	idx := f.index.Load()
	if idx == 0 {
		return false, ErrFenceIdle
	}

	deadline := time.Now().Add(timeout)
	for {
		if w.queue.Completed() >= idx {
			return true, nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			slogger().Debug("native: fence wait timed out", "index", idx, "timeout", timeout)
			return false, nil
		}
		time.Sleep(min(w.interval, remaining))
	}
}

// ResetFence detaches the fence from its submission.
func (w *FenceWaiter) ResetFence(fence hal.Fence) error {
	f, err := w.fence(fence)
	if err != nil {
		return err
	}
	f.index.Store(0)
	return nil
}
