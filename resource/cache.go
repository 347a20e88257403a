package resource

import "sync/atomic"

// CreateFunc creates a sampler on a cache miss. The returned handle's
// share is transferred to the cache.
type CreateFunc func() (*Handle[Sampler], error)

// SamplerCache maps sampler parameters to shared sampler handles.
//
// The map only grows: entries are never evicted by the cache itself.
// SamplerCache is not safe for concurrent use on its own; see
// SyncSamplerCache and GetWithUpgradableLock.
type SamplerCache struct {
	samplers map[SamplerInfo]*Handle[Sampler]

	// Statistics are atomic so that readers holding only a shared lock
	// can record hits.
	hits     atomic.Uint64
	misses   atomic.Uint64
	failures atomic.Uint64
	replaced atomic.Uint64
}

// NewSamplerCache creates an empty cache. The zero value is also ready
// to use.
func NewSamplerCache() *SamplerCache {
	return &SamplerCache{samplers: make(map[SamplerInfo]*Handle[Sampler])}
}

// Get returns a share of the sampler for info, calling create on a miss.
// If create fails its error is returned unchanged and the cache is left
// untouched. Get requires exclusive access to the cache.
func (c *SamplerCache) Get(info SamplerInfo, create CreateFunc) (*Handle[Sampler], error) {
	if h, ok := c.samplers[info]; ok {
		c.hits.Add(1)
		return h.Clone(), nil
	}

	c.misses.Add(1)
	h, err := create()
	if err != nil {
		c.failures.Add(1)
		slogger().Debug("resource: sampler creation failed", "err", err)
		return nil, err
	}
	c.insert(info, h)
	return h.Clone(), nil
}

// Lookup returns the cached handle for info without adding a share.
func (c *SamplerCache) Lookup(info SamplerInfo) (*Handle[Sampler], bool) {
	h, ok := c.samplers[info]
	return h, ok
}

// Len returns the number of cached samplers.
func (c *SamplerCache) Len() int { return len(c.samplers) }

// Clear drops every entry, releasing the cache's shares. Handles held by
// callers stay valid. Clear requires exclusive access to the cache.
func (c *SamplerCache) Clear() {
	for info, h := range c.samplers {
		delete(c.samplers, info)
		h.Release()
	}
}

// Stats returns cache statistics.
func (c *SamplerCache) Stats() Stats {
	return Stats{
		Len:      len(c.samplers),
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Failures: c.failures.Load(),
		Replaced: c.replaced.Load(),
	}
}

// insert stores h under info, taking over h's share. A handle already
// stored under info is replaced and the cache's share of it released.
func (c *SamplerCache) insert(info SamplerInfo, h *Handle[Sampler]) {
	if c.samplers == nil {
		c.samplers = make(map[SamplerInfo]*Handle[Sampler])
	}
	if old, ok := c.samplers[info]; ok && old != h {
		c.replaced.Add(1)
		slogger().Warn("resource: concurrent sampler creation, keeping last insert",
			"mag", info.MagFilter.String(), "min", info.MinFilter.String())
		old.Release()
	}
	c.samplers[info] = h
}

// Stats contains sampler cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Hits is the number of lookups served from the cache.
	Hits uint64
	// Misses is the number of lookups that called create.
	Misses uint64
	// Failures is the number of create calls that returned an error.
	Failures uint64
	// Replaced is the number of inserts that overwrote an entry created
	// by a concurrent miss.
	Replaced uint64
}

// HitRate returns the fraction of lookups served from the cache.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Guard is a lock held on a SamplerCache. Ownership of a guard passes to
// the function it is given to, which releases it with Unlock.
type Guard interface {
	// Cache returns the locked cache.
	Cache() *SamplerCache

	// Unlock releases the lock.
	Unlock()
}

// GetWithUpgradableLock returns a share of the sampler for info, where
// read holds a shared lock on the cache.
//
// On a hit the share is returned without ever calling upgrade. On a miss
// create runs while only the shared lock is held; then upgrade converts
// read into an exclusive holder (upgrade owns releasing read), the
// sampler is inserted and the exclusive lock released. If create fails,
// read is released and the error returned unchanged.
//
// Concurrent misses on the same info are not deduplicated: each creates
// its own sampler, the last insert stays in the cache and the others
// remain valid only through the handles returned to their callers.
func GetWithUpgradableLock[R, W Guard](read R, upgrade func(R) W, info SamplerInfo, create CreateFunc) (*Handle[Sampler], error) {
	// held is the guard to release on return, including when create or
	// upgrade panics. It is nil while upgrade owns the read guard.
	var held Guard = read
	defer func() {
		if held != nil {
			held.Unlock()
		}
	}()

	c := read.Cache()
	if h, ok := c.samplers[info]; ok {
		c.hits.Add(1)
		return h.Clone(), nil
	}

	c.misses.Add(1)
	h, err := create()
	if err != nil {
		c.failures.Add(1)
		slogger().Debug("resource: sampler creation failed", "err", err)
		return nil, err
	}

	// The caller's share is taken before the insert so that a racing
	// replacement cannot release the last share.
	out := h.Clone()
	held = nil
	w := upgrade(read)
	held = w
	w.Cache().insert(info, h)
	return out, nil
}
