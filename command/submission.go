package command

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Submittable is a recorded command buffer that can be issued to a queue.
type Submittable interface {
	// Family returns the queue family the buffer was recorded for.
	Family() FamilyID

	// Raw returns the native command buffer.
	Raw() hal.CommandBuffer
}

// Submit is a recorded native command buffer tagged with its family.
type Submit struct {
	family FamilyID
	raw    hal.CommandBuffer
}

// NewSubmit wraps a command buffer recorded for family.
func NewSubmit(family FamilyID, raw hal.CommandBuffer) Submit {
	return Submit{family: family, raw: raw}
}

// Family returns the family the buffer was recorded for.
func (s Submit) Family() FamilyID { return s.family }

// Raw returns the native command buffer.
func (s Submit) Raw() hal.CommandBuffer { return s.raw }

// Wait is a semaphore wait performed at the given pipeline stages.
type Wait struct {
	Semaphore Semaphore
	Stage     PipelineStage
}

// Submission is one item of a submission batch. All three sequences keep
// their order when issued. A Submission is consumed by a single call to
// Queue.Submit or Queue.SubmitRawFence and is not retained.
type Submission struct {
	Waits   []Wait
	Submits []Submittable
	Signals []Semaphore
}

// raw converts the submission for the native queue, checking that every
// command buffer was recorded for family.
func (s *Submission) raw(family FamilyID) RawSubmission {
	out := RawSubmission{
		CommandBuffers: make([]hal.CommandBuffer, 0, len(s.Submits)),
		Waits:          make([]RawWait, 0, len(s.Waits)),
		Signals:        s.Signals,
	}
	for _, sub := range s.Submits {
		if f := sub.Family(); f != family {
			panic(fmt.Sprintf("command: command buffer recorded for family %d submitted to family %d", f, family))
		}
		out.CommandBuffers = append(out.CommandBuffers, sub.Raw())
	}
	for _, w := range s.Waits {
		out.Waits = append(out.Waits, RawWait(w))
	}
	return out
}
