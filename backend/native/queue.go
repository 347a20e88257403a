package native

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpuhost/command"
)

// Queue issues command.RawSubmission values through a hal.Queue.
// It implements command.RawQueue.
type Queue struct {
	raw    hal.Queue
	device hal.Device

	// mu orders submissions and guards semaphore state.
	mu sync.Mutex
}

// Raw returns the HAL queue.
func (q *Queue) Raw() hal.Queue { return q.raw }

// Submit issues sub as one HAL submission. fence, if non-nil, must be a
// *Fence created by the same backend; it records the submission index.
//
// Waits are checked before anything is issued: every waited semaphore
// must have been signaled by an earlier submission on this queue. A
// successful wait consumes the signal.
func (q *Queue) Submit(sub command.RawSubmission, fence hal.Fence) error {
	var f *Fence
	if fence != nil {
		var ok bool
		if f, ok = fence.(*Fence); !ok || f.queue != q {
			return fmt.Errorf("%w: %T", ErrForeignFence, fence)
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	waits := make([]*Semaphore, len(sub.Waits))
	for i, w := range sub.Waits {
		s, err := q.semaphore(w.Semaphore)
		if err != nil {
			return err
		}
		if s.signaled == 0 {
			return fmt.Errorf("%w: wait %d at %s", ErrSemaphoreNotSignaled, i, w.Stage)
		}
		waits[i] = s
	}
	signals := make([]*Semaphore, len(sub.Signals))
	for i, sem := range sub.Signals {
		s, err := q.semaphore(sem)
		if err != nil {
			return err
		}
		signals[i] = s
	}

	index, err := q.raw.Submit(sub.CommandBuffers)
	if err != nil {
		return fmt.Errorf("native: submit %d command buffers: %w", len(sub.CommandBuffers), err)
	}

	for _, s := range waits {
		s.signaled = 0
	}
	for _, s := range signals {
		s.signaled = index
	}
	if f != nil {
		f.index.Store(index)
	}

	slogger().Debug("native: submitted",
		"index", index,
		"command_buffers", len(sub.CommandBuffers),
		"waits", len(waits),
		"signals", len(signals),
		"fenced", f != nil)
	return nil
}

// semaphore resolves a command.Semaphore to one of this queue's.
func (q *Queue) semaphore(sem command.Semaphore) (*Semaphore, error) {
	s, ok := sem.(*Semaphore)
	if !ok || s.queue != q {
		return nil, fmt.Errorf("%w: %T", ErrForeignSemaphore, sem)
	}
	return s, nil
}

// WaitIdle blocks until the device has finished all submitted work.
// hal.ErrDeviceOutOfMemory is passed through for the caller to classify.
func (q *Queue) WaitIdle() error {
	if err := q.device.WaitIdle(); err != nil {
		slogger().Warn("native: wait idle failed", "err", err)
		return fmt.Errorf("native: wait idle: %w", err)
	}
	return nil
}

// Completed returns the highest HAL submission index known to be complete.
func (q *Queue) Completed() uint64 {
	return q.raw.PollCompleted()
}
