package resource

import (
	"sync"
	"sync/atomic"
)

// SyncSamplerCache is a SamplerCache guarded by a reader/writer lock.
// Lookups that hit only take the shared lock.
//
// SyncSamplerCache is safe for concurrent use.
// SyncSamplerCache must not be copied after creation (has mutex).
type SyncSamplerCache struct {
	mu    sync.RWMutex
	cache SamplerCache
}

// NewSyncSamplerCache creates an empty synchronized cache.
func NewSyncSamplerCache() *SyncSamplerCache {
	return &SyncSamplerCache{}
}

// ReadGuard holds a shared lock on a SyncSamplerCache.
type ReadGuard struct {
	owner    *SyncSamplerCache
	released atomic.Bool
}

// Cache returns the locked cache. Only read access is allowed.
func (g *ReadGuard) Cache() *SamplerCache { return &g.owner.cache }

// Unlock releases the shared lock. It panics if called twice.
func (g *ReadGuard) Unlock() {
	if g.released.Swap(true) {
		panic("resource: read guard unlocked twice")
	}
	g.owner.mu.RUnlock()
}

// WriteGuard holds the exclusive lock on a SyncSamplerCache.
type WriteGuard struct {
	owner    *SyncSamplerCache
	released atomic.Bool
}

// Cache returns the locked cache.
func (g *WriteGuard) Cache() *SamplerCache { return &g.owner.cache }

// Unlock releases the exclusive lock. It panics if called twice.
func (g *WriteGuard) Unlock() {
	if g.released.Swap(true) {
		panic("resource: write guard unlocked twice")
	}
	g.owner.mu.Unlock()
}

// RLock takes the shared lock.
func (s *SyncSamplerCache) RLock() *ReadGuard {
	s.mu.RLock()
	return &ReadGuard{owner: s}
}

// Lock takes the exclusive lock.
func (s *SyncSamplerCache) Lock() *WriteGuard {
	s.mu.Lock()
	return &WriteGuard{owner: s}
}

// Upgrade converts a shared holder into the exclusive holder.
//
// sync.RWMutex cannot upgrade in place, so the shared lock is released
// before the exclusive one is taken; other writers may run in between.
// Exclusive sections never overlap.
func (s *SyncSamplerCache) Upgrade(r *ReadGuard) *WriteGuard {
	if r.owner != s {
		panic("resource: upgrade of a guard from another cache")
	}
	r.Unlock()
	return s.Lock()
}

// Get returns a share of the sampler for info through
// GetWithUpgradableLock: hits only take the shared lock, and create runs
// without the exclusive lock held.
func (s *SyncSamplerCache) Get(info SamplerInfo, create CreateFunc) (*Handle[Sampler], error) {
	return GetWithUpgradableLock(s.RLock(), s.Upgrade, info, create)
}

// GetExclusive returns a share of the sampler for info while holding the
// exclusive lock for the whole lookup, including create. Concurrent
// misses on the same info create a single sampler.
func (s *SyncSamplerCache) GetExclusive(info SamplerInfo, create CreateFunc) (*Handle[Sampler], error) {
	w := s.Lock()
	defer w.Unlock()
	return w.Cache().Get(info, create)
}

// Len returns the number of cached samplers.
func (s *SyncSamplerCache) Len() int {
	r := s.RLock()
	defer r.Unlock()
	return r.Cache().Len()
}

// Stats returns cache statistics.
func (s *SyncSamplerCache) Stats() Stats {
	r := s.RLock()
	defer r.Unlock()
	return r.Cache().Stats()
}

// Clear drops every entry, releasing the cache's shares.
func (s *SyncSamplerCache) Clear() {
	w := s.Lock()
	defer w.Unlock()
	w.Cache().Clear()
}
