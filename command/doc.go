// Package command implements host-side command submission for gpuhost.
//
// A [Family] owns one or more [Queue] values, each wrapping a native
// [RawQueue]. Callers hand a queue an ordered batch of [Submission] values
// (wait semaphores with their pipeline stages, recorded command buffers and
// signal semaphores) and optionally a [Fence] that represents completion of
// the whole batch.
//
// # Fencing
//
// A native queue accepts at most one fence per submit call. Queue.Submit
// therefore attaches the fence to the last native call of the batch only,
// and every earlier call is issued without one. When the batch is empty
// the fence still travels with a single empty native submission, so a
// caller can submit "just a fence" to learn when previously issued work
// completes.
//
// Each fenced Submit tags the fence with a [FenceEpoch] made of the queue
// identifier and the queue's next epoch, then advances the epoch. Epochs
// let callers correlate a fence with the Nth fenced submission of a queue.
// Queue.SubmitRawFence is the lower-level variant that takes a native
// fence directly and does no epoch bookkeeping.
//
// # Contract violations
//
// Passing a fence that is not unsignaled, or a command buffer recorded for
// a different queue family, is a programming error and panics before the
// offending native call is made. Environmental failures (device out of
// memory, device lost) are returned as errors.
//
// # Thread Safety
//
// Queue is not safe for concurrent use. Native queues are not thread-safe
// for concurrent submission, so each Queue must be driven by one goroutine
// at a time or guarded externally.
package command
