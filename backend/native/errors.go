package native

import "errors"

// Package errors for the native backend.
var (
	// ErrForeignFence is returned when a fence not created by this
	// backend's queue is used with it.
	ErrForeignFence = errors.New("native: fence does not belong to this queue")

	// ErrForeignSemaphore is returned when a semaphore not created by this
	// backend's queue is used with it.
	ErrForeignSemaphore = errors.New("native: semaphore does not belong to this queue")

	// ErrSemaphoreNotSignaled is returned when a submission waits on a
	// semaphore no earlier submission signals. The GPU would never
	// complete such a wait.
	ErrSemaphoreNotSignaled = errors.New("native: wait on unsignaled semaphore")

	// ErrFenceIdle is returned when waiting on a fence that carries no
	// submission.
	ErrFenceIdle = errors.New("native: fence has no submission")

	// ErrUnsupportedProvider is returned when a gpucontext.DeviceProvider
	// does not expose hal devices and queues.
	ErrUnsupportedProvider = errors.New("native: provider does not expose hal.Device and hal.Queue")

	// ErrUnsupportedSampler is returned for sampler parameters the hal
	// sampler descriptor cannot express: a border color other than
	// transparent black, or unnormalized coordinates.
	ErrUnsupportedSampler = errors.New("native: unsupported sampler parameters")
)
