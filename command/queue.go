package command

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Queue wraps a native command queue with submission bookkeeping.
//
// Queue is not safe for concurrent use.
type Queue struct {
	raw       RawQueue
	id        QueueID
	nextEpoch uint64
}

// newQueue creates a queue. Only Family creates queues.
func newQueue(raw RawQueue, id QueueID) *Queue {
	return &Queue{raw: raw, id: id}
}

// ID returns the queue identifier.
func (q *Queue) ID() QueueID { return q.id }

// Family returns the family the queue belongs to.
func (q *Queue) Family() FamilyID { return q.id.Family }

// NextEpoch returns the epoch the next fenced submission will receive.
func (q *Queue) NextEpoch() uint64 { return q.nextEpoch }

// Raw returns the native queue for operations outside Queue's contract.
func (q *Queue) Raw() RawQueue { return q.raw }

// String returns a debug representation of the queue.
func (q *Queue) String() string {
	return fmt.Sprintf("Queue{id: %s, next_epoch: %d}", q.id, q.nextEpoch)
}

// Submit issues the submissions to the queue in order.
//
// If fence is non-nil it must be unsignaled; it is attached to the last
// native call only and then tagged with the queue's next epoch, which is
// advanced by one. An empty batch with a fence issues one empty native
// submission carrying the fence.
//
// Semaphores and command buffers referenced by the submissions must stay
// alive until the GPU has consumed them. Submit panics if fence is not
// unsignaled or if a command buffer was recorded for another family.
//
// If the native queue fails, issuance stops, the error is returned and
// the fence and epoch are left untouched.
func (q *Queue) Submit(submissions []Submission, fence *Fence) error {
	var raw hal.Fence
	if fence != nil {
		if !fence.IsUnsignaled() {
			panic(fmt.Sprintf("command: fence submitted to queue %s in state %s", q.id, fence.State()))
		}
		raw = fence.Raw()
	}

	if err := q.issue(submissions, raw); err != nil {
		return err
	}

	if fence != nil {
		fence.markSubmitted(FenceEpoch{Queue: q.id, Epoch: q.nextEpoch})
		slogger().Debug("command: fenced submission",
			"queue", q.id.String(), "epoch", q.nextEpoch, "batches", len(submissions))
		q.nextEpoch++
	}
	return nil
}

// SubmitRawFence issues the submissions like Submit, attaching the native
// fence to the last native call. It performs no fence state checks and no
// epoch bookkeeping; the caller manages the fence's lifecycle.
func (q *Queue) SubmitRawFence(submissions []Submission, fence hal.Fence) error {
	return q.issue(submissions, fence)
}

// issue performs the native calls for a batch. The fence travels with the
// final call only.
func (q *Queue) issue(submissions []Submission, fence hal.Fence) error {
	if len(submissions) == 0 {
		if fence == nil {
			return nil
		}
		if err := q.raw.Submit(RawSubmission{}, fence); err != nil {
			return fmt.Errorf("command: submit fence to queue %s: %w", q.id, err)
		}
		return nil
	}

	last := len(submissions) - 1
	for i := range submissions {
		sub := submissions[i].raw(q.id.Family)
		var f hal.Fence
		if i == last {
			f = fence
		}
		if err := q.raw.Submit(sub, f); err != nil {
			slogger().Warn("command: native submit failed",
				"queue", q.id.String(), "batch", i, "of", len(submissions), "err", err)
			return fmt.Errorf("command: submit batch %d to queue %s: %w", i, q.id, err)
		}
	}
	return nil
}

// WaitIdle blocks until all work submitted to the queue has completed.
// Device memory exhaustion is reported as an error matching
// ErrOutOfMemory.
func (q *Queue) WaitIdle() error {
	err := q.raw.WaitIdle()
	if err == nil {
		return nil
	}
	if errors.Is(err, hal.ErrDeviceOutOfMemory) {
		return fmt.Errorf("%w: queue %s: %w", ErrOutOfMemory, q.id, err)
	}
	return fmt.Errorf("command: wait idle on queue %s: %w", q.id, err)
}
