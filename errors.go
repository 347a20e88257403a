package gpuhost

import "errors"

var (
	// ErrNoDevice is returned by New when the opened device or queue is nil.
	ErrNoDevice = errors.New("gpuhost: no device")

	// ErrClosed is returned by operations on a closed Host.
	ErrClosed = errors.New("gpuhost: host closed")
)
