package resource

import "sync/atomic"

// Handle is a shared, reference-counted owner of a GPU resource.
//
// Every holder of a Handle owns one share. Clone adds a share and returns
// the same Handle; Release gives one up. When the last share is released
// the release function runs once, destroying the native resource.
type Handle[T any] struct {
	value   T
	refs    atomic.Int64
	release func(T)
}

// NewHandle returns a handle with one share owned by the caller.
// release may be nil.
func NewHandle[T any](value T, release func(T)) *Handle[T] {
	h := &Handle[T]{value: value, release: release}
	h.refs.Store(1)
	return h
}

// Value returns the shared resource.
func (h *Handle[T]) Value() T { return h.value }

// Clone adds a share and returns h. It panics if no share is left; the
// count is not changed in that case.
func (h *Handle[T]) Clone() *Handle[T] {
	for {
		n := h.refs.Load()
		if n <= 0 {
			panic("resource: clone of released handle")
		}
		if h.refs.CompareAndSwap(n, n+1) {
			return h
		}
	}
}

// Release gives up one share. It panics if no share is left.
func (h *Handle[T]) Release() {
	n := h.refs.Add(-1)
	switch {
	case n < 0:
		panic("resource: handle released too many times")
	case n == 0 && h.release != nil:
		h.release(h.value)
	}
}

// Refs returns the current number of shares.
func (h *Handle[T]) Refs() int64 { return h.refs.Load() }
