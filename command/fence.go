package command

import (
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// FenceState is the host-side view of a fence.
type FenceState uint8

const (
	// FenceUnsignaled means the fence is ready to be submitted.
	FenceUnsignaled FenceState = iota
	// FenceSubmitted means the fence travels with a submission that has
	// not been observed as complete.
	FenceSubmitted
	// FenceSignaled means the submission completed and the fence must be
	// reset before reuse.
	FenceSignaled
)

// String returns the state name.
func (s FenceState) String() string {
	switch s {
	case FenceUnsignaled:
		return "Unsignaled"
	case FenceSubmitted:
		return "Submitted"
	case FenceSignaled:
		return "Signaled"
	default:
		return "Unknown"
	}
}

// FenceEpoch identifies the fenced submission a fence belongs to:
// the Epoch-th fenced submission issued on Queue.
type FenceEpoch struct {
	Queue QueueID
	Epoch uint64
}

// Fence is a native fence with host-side state tracking.
//
// A Fence is externally owned. Queue.Submit moves it from unsignaled to
// submitted and records its epoch; Wait and MarkSignaled move it to
// signaled; Reset moves it back to unsignaled.
type Fence struct {
	raw      hal.Fence
	state    FenceState
	epoch    FenceEpoch
	hasEpoch bool
}

// NewFence wraps an unsignaled native fence.
func NewFence(raw hal.Fence) *Fence {
	return &Fence{raw: raw}
}

// NewSignaledFence wraps a native fence created in the signaled state.
func NewSignaledFence(raw hal.Fence) *Fence {
	return &Fence{raw: raw, state: FenceSignaled}
}

// Raw returns the native fence.
func (f *Fence) Raw() hal.Fence { return f.raw }

// State returns the current state.
func (f *Fence) State() FenceState { return f.state }

// IsUnsignaled reports whether the fence may be passed to Queue.Submit.
func (f *Fence) IsUnsignaled() bool { return f.state == FenceUnsignaled }

// IsSubmitted reports whether the fence is pending on a queue.
func (f *Fence) IsSubmitted() bool { return f.state == FenceSubmitted }

// IsSignaled reports whether the fence has been observed as signaled.
func (f *Fence) IsSignaled() bool { return f.state == FenceSignaled }

// Epoch returns the epoch recorded by the last submission.
// The second result is false if the fence was never submitted.
func (f *Fence) Epoch() (FenceEpoch, bool) {
	if f.state == FenceUnsignaled || !f.hasEpoch {
		return FenceEpoch{}, false
	}
	return f.epoch, true
}

// markSubmitted records the submission the fence now represents.
func (f *Fence) markSubmitted(epoch FenceEpoch) {
	if f.state != FenceUnsignaled {
		panic(fmt.Sprintf("command: fence submitted in state %s", f.state))
	}
	f.state = FenceSubmitted
	f.epoch = epoch
	f.hasEpoch = true
}

// MarkSignaled records that the fence's submission completed, for callers
// that observed completion without calling Wait.
// It panics unless the fence is submitted.
func (f *Fence) MarkSignaled() {
	if f.state != FenceSubmitted {
		panic(fmt.Sprintf("command: fence marked signaled in state %s", f.state))
	}
	f.state = FenceSignaled
}

// Wait blocks until the fence's submission completes or timeout elapses.
// It returns false with a nil error on timeout.
func (f *Fence) Wait(dev FenceDevice, timeout time.Duration) (bool, error) {
	switch f.state {
	case FenceUnsignaled:
		return false, ErrFenceNotSubmitted
	case FenceSignaled:
		return true, nil
	}

	ok, err := dev.Wait(f.raw, 1, timeout)
	if err != nil {
		slogger().Warn("command: fence wait failed",
			"queue", f.epoch.Queue.String(), "epoch", f.epoch.Epoch, "err", err)
		return false, fmt.Errorf("command: wait fence %s#%d: %w", f.epoch.Queue, f.epoch.Epoch, err)
	}
	if ok {
		f.state = FenceSignaled
	}
	return ok, nil
}

// Reset returns a signaled fence to the unsignaled state.
// Resetting a submitted fence returns ErrFencePending.
func (f *Fence) Reset(dev FenceDevice) error {
	switch f.state {
	case FenceUnsignaled:
		return nil
	case FenceSubmitted:
		return ErrFencePending
	}
	if err := dev.ResetFence(f.raw); err != nil {
		return fmt.Errorf("command: reset fence: %w", err)
	}
	f.state = FenceUnsignaled
	f.hasEpoch = false
	return nil
}
