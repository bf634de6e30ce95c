package store

import (
	"sync"

	"github.com/hupe1980/prost/quantization"
)

// SequenceCache maps raw amino-acid sequences to their fingerprints.
//
// It is keyed by sequence content, not by identifier. Put marks the cache
// dirty; MarkClean resets the flag after the cache was persisted.
// SequenceCache is safe for concurrent use.
type SequenceCache struct {
	mu      sync.RWMutex
	entries map[string]quantization.Fingerprint
	dirty   bool
}

// NewSequenceCache returns an empty, clean cache.
func NewSequenceCache() *SequenceCache {
	return &SequenceCache{entries: make(map[string]quantization.Fingerprint)}
}

// Get returns the cached fingerprint for seq.
func (c *SequenceCache) Get(seq string) (quantization.Fingerprint, bool) {
	if c == nil {
		return quantization.Fingerprint{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	fp, ok := c.entries[seq]
	return fp, ok
}

// Put stores the fingerprint for seq and marks the cache dirty.
func (c *SequenceCache) Put(seq string, fp quantization.Fingerprint) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[seq] = fp
	c.dirty = true
}

// Load inserts an entry without marking the cache dirty.
// Used when restoring a persisted cache.
func (c *SequenceCache) Load(seq string, fp quantization.Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[seq] = fp
}

// Len returns the number of cached sequences.
func (c *SequenceCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Dirty reports whether entries were added since the last MarkClean.
func (c *SequenceCache) Dirty() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dirty
}

// MarkClean clears the dirty flag.
func (c *SequenceCache) MarkClean() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = false
}

// Range calls fn for every entry until fn returns false.
// The iteration order is unspecified; fn must not modify the cache.
func (c *SequenceCache) Range(fn func(seq string, fp quantization.Fingerprint) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for seq, fp := range c.entries {
		if !fn(seq, fp) {
			return
		}
	}
}
