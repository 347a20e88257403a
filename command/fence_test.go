package command

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// fakeFenceDevice completes waits according to its fields.
type fakeFenceDevice struct {
	done     bool
	waitErr  error
	resetErr error
	waits    int
	resets   int
}

func (d *fakeFenceDevice) Wait(_ hal.Fence, _ uint64, _ time.Duration) (bool, error) {
	d.waits++
	return d.done, d.waitErr
}

func (d *fakeFenceDevice) ResetFence(_ hal.Fence) error {
	d.resets++
	return d.resetErr
}

func submittedFence(t *testing.T) (*Fence, *Queue) {
	t.Helper()
	q, _ := newTestQueue(0)
	f := NewFence(newRes("fence"))
	if err := q.Submit(nil, f); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	return f, q
}

func TestFenceInitialState(t *testing.T) {
	f := NewFence(newRes("f"))
	if !f.IsUnsignaled() || f.IsSubmitted() || f.IsSignaled() {
		t.Errorf("NewFence state = %s, want Unsignaled", f.State())
	}
	if _, ok := f.Epoch(); ok {
		t.Error("unsubmitted fence reports an epoch")
	}

	s := NewSignaledFence(newRes("s"))
	if !s.IsSignaled() {
		t.Errorf("NewSignaledFence state = %s, want Signaled", s.State())
	}
	if _, ok := s.Epoch(); ok {
		t.Error("signaled fence without submission reports an epoch")
	}
}

func TestFenceWait(t *testing.T) {
	f, q := submittedFence(t)

	dev := &fakeFenceDevice{}
	ok, err := f.Wait(dev, time.Millisecond)
	if err != nil || ok {
		t.Fatalf("Wait on incomplete fence = (%v, %v), want (false, nil)", ok, err)
	}
	if !f.IsSubmitted() {
		t.Errorf("state after timeout = %s, want Submitted", f.State())
	}

	dev.done = true
	ok, err = f.Wait(dev, time.Second)
	if err != nil || !ok {
		t.Fatalf("Wait on complete fence = (%v, %v), want (true, nil)", ok, err)
	}
	if !f.IsSignaled() {
		t.Errorf("state after wait = %s, want Signaled", f.State())
	}
	epoch, ok := f.Epoch()
	if !ok || epoch != (FenceEpoch{Queue: q.ID(), Epoch: 0}) {
		t.Errorf("Epoch() = (%+v, %v), want (%v#0, true)", epoch, ok, q.ID())
	}

	// Signaled fences do not reach the device again.
	waits := dev.waits
	if ok, err := f.Wait(dev, time.Second); !ok || err != nil {
		t.Errorf("Wait on signaled fence = (%v, %v), want (true, nil)", ok, err)
	}
	if dev.waits != waits {
		t.Errorf("device waits = %d, want %d", dev.waits, waits)
	}
}

func TestFenceWaitErrors(t *testing.T) {
	f := NewFence(newRes("f"))
	if _, err := f.Wait(&fakeFenceDevice{done: true}, time.Second); !errors.Is(err, ErrFenceNotSubmitted) {
		t.Errorf("Wait on unsubmitted fence error = %v, want ErrFenceNotSubmitted", err)
	}

	f, _ = submittedFence(t)
	_, err := f.Wait(&fakeFenceDevice{waitErr: hal.ErrDeviceLost}, time.Second)
	if !errors.Is(err, hal.ErrDeviceLost) {
		t.Errorf("Wait error = %v, want hal.ErrDeviceLost", err)
	}
	if !f.IsSubmitted() {
		t.Errorf("state after failed wait = %s, want Submitted", f.State())
	}
}

func TestFenceReset(t *testing.T) {
	f, q := submittedFence(t)
	dev := &fakeFenceDevice{done: true}

	if err := f.Reset(dev); !errors.Is(err, ErrFencePending) {
		t.Fatalf("Reset on submitted fence = %v, want ErrFencePending", err)
	}

	f.MarkSignaled()
	if err := f.Reset(dev); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if !f.IsUnsignaled() {
		t.Errorf("state after reset = %s, want Unsignaled", f.State())
	}
	if dev.resets != 1 {
		t.Errorf("device resets = %d, want 1", dev.resets)
	}

	// A reset fence can be submitted again and receives the next epoch.
	if err := q.Submit(nil, f); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if epoch, _ := f.Epoch(); epoch.Epoch != 1 {
		t.Errorf("resubmitted epoch = %d, want 1", epoch.Epoch)
	}

	if err := NewFence(newRes("u")).Reset(dev); err != nil {
		t.Errorf("Reset on unsignaled fence = %v, want nil", err)
	}
}

func TestFenceResetError(t *testing.T) {
	f := NewSignaledFence(newRes("s"))
	err := f.Reset(&fakeFenceDevice{resetErr: hal.ErrDeviceLost})
	if !errors.Is(err, hal.ErrDeviceLost) {
		t.Fatalf("Reset error = %v, want hal.ErrDeviceLost", err)
	}
	if !f.IsSignaled() {
		t.Errorf("state after failed reset = %s, want Signaled", f.State())
	}
}

func TestFenceMarkSignaledPanics(t *testing.T) {
	mustPanic(t, "unsignaled", func() { NewFence(newRes("f")).MarkSignaled() })
	mustPanic(t, "signaled", func() { NewSignaledFence(newRes("f")).MarkSignaled() })
}

func TestFenceStateString(t *testing.T) {
	tests := map[FenceState]string{
		FenceUnsignaled: "Unsignaled",
		FenceSubmitted:  "Submitted",
		FenceSignaled:   "Signaled",
		FenceState(9):   "Unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("FenceState(%d).String() = %q, want %q", s, got, want)
		}
	}
}
