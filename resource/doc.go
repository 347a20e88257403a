// Package resource memoizes immutable GPU resources keyed by their
// creation parameters.
//
// # Handles
//
// Resources are shared through [Handle], an atomically reference-counted
// wrapper. The cache holds one share of every resource it stores and gives
// each caller its own share, so dropping an entry never invalidates a
// handle that was already handed out. The native resource is destroyed
// when the last share is released.
//
// # Sampler cache
//
// [SamplerCache] maps a [SamplerInfo] to a sampler handle, creating the
// sampler on first request. Two access modes are provided:
//
//   - SamplerCache.Get requires exclusive access to the cache.
//   - GetWithUpgradableLock takes a shared-lock holder and only upgrades
//     to an exclusive lock on a miss, after the sampler was created.
//
// The upgradable path does not deduplicate concurrent creators: two
// goroutines missing on the same SamplerInfo may both create a sampler.
// The last insert wins and the other sampler stays valid through its
// callers' handles only. [SyncSamplerCache] pairs a cache with a
// sync.RWMutex and drives this path.
package resource
