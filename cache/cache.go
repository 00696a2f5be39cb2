// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a sharded LRU cache used by the render pipeline
// to reuse pixel buffers across builds. Keys are content hashes, so a hit
// is only possible when the asset and its whole dependency chain are
// byte-for-byte unchanged.
package cache

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
)

const (
	// shardCount must be a power of 2 so shard selection is a mask.
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultCapacity is the per-shard entry limit when none is given.
	DefaultCapacity = 256
)

// Hasher computes the shard-selection hash for a key.
type Hasher[K any] func(K) uint64

// Uint64Hasher is the identity hash, for keys that are already hashes.
func Uint64Hasher(u uint64) uint64 {
	return u
}

// StringHasher computes the FNV-1a hash of a string key.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// Sharded is a thread-safe LRU cache split into 16 independently locked
// shards. Values are stored as-is, not copied; callers must not mutate a
// value after handing it to the cache.
type Sharded[K comparable, V any] struct {
	shards   [shardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]*entry[K, V]
	lru     *lruList[K]
}

type entry[K comparable, V any] struct {
	value V
	node  *lruNode[K]
}

// NewSharded creates a cache holding up to capacity entries per shard.
// capacity <= 0 selects DefaultCapacity.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{
			entries: make(map[K]*entry[K, V]),
			lru:     &lruList[K]{},
		}
	}
	return c
}

func (c *Sharded[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get retrieves a value and marks it most recently used.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)

	s.mu.RLock()
	_, exists := s.entries[key]
	s.mu.RUnlock()
	if !exists {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	// The LRU bump needs the write lock; the entry may be gone by now.
	s.mu.Lock()
	e, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.moveToFront(e.node)
	v := e.value
	s.mu.Unlock()

	c.hits.Add(1)
	return v, true
}

// Set stores a value, evicting least recently used entries past capacity.
func (c *Sharded[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		s.lru.moveToFront(e.node)
		return
	}
	c.evict(s)
	s.entries[key] = &entry[K, V]{value: value, node: s.lru.pushFront(key)}
}

// GetOrCreate returns the cached value, calling create under the shard
// lock when absent so concurrent callers never compute the same key twice.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}

	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.lru.moveToFront(e.node)
		c.hits.Add(1)
		return e.value
	}

	c.misses.Add(1)
	v := create()
	c.evict(s)
	s.entries[key] = &entry[K, V]{value: v, node: s.lru.pushFront(key)}
	return v
}

// evict drops least recently used entries until the shard is under
// capacity. Caller holds the shard lock.
func (c *Sharded[K, V]) evict(s *shard[K, V]) {
	for s.lru.len >= c.capacity {
		oldest, ok := s.lru.removeOldest()
		if !ok {
			return
		}
		delete(s.entries, oldest)
		c.evictions.Add(1)
	}
}

// Delete removes an entry, reporting whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.remove(e.node)
	delete(s.entries, key)
	return true
}

// Clear removes all entries.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[K]*entry[K, V])
		s.lru.clear()
		s.mu.Unlock()
	}
}

// Len returns the total entry count across shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.RLock()
		total += len(s.entries)
		s.mu.RUnlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *Sharded[K, V]) Capacity() int {
	return c.capacity
}

// Stats is a point-in-time snapshot of cache behavior.
type Stats struct {
	// Len is the current entry count.
	Len int
	// Capacity is the per-shard entry limit.
	Capacity int
	// Hits and Misses count lookups since creation.
	Hits   uint64
	Misses uint64
	// HitRate is Hits over all lookups, 0 when none happened.
	HitRate float64
	// Evictions counts entries dropped for capacity.
	Evictions uint64
}

// Stats returns current counters. Reads are atomic but not mutually
// consistent under concurrent traffic.
func (c *Sharded[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	st := Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
	}
	if total := hits + misses; total > 0 {
		st.HitRate = float64(hits) / float64(total)
	}
	return st
}
