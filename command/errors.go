package command

import "errors"

// Package errors for command submission.
var (
	// ErrOutOfMemory is returned when the device reports an out-of-memory
	// condition while the host waits on it.
	ErrOutOfMemory = errors.New("command: out of memory")

	// ErrFenceNotSubmitted is returned when waiting on a fence that was
	// never handed to a queue.
	ErrFenceNotSubmitted = errors.New("command: fence not submitted")

	// ErrFencePending is returned when resetting a fence whose submission
	// has not been observed as complete.
	ErrFencePending = errors.New("command: fence pending")
)
