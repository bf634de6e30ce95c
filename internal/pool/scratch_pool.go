// Package pool recycles per-worker search buffers across searches.
package pool

import (
	"sync"

	"github.com/hupe1980/prost/searcher"
)

// MaxPooledTargets caps the capacity of a scratch returned to the pool.
// Larger buffers are left to the garbage collector.
const MaxPooledTargets = 1 << 22

var scratchPool = sync.Pool{
	New: func() any {
		return searcher.NewScratch(0)
	},
}

// Get returns a scratch with room for at least targets entries.
func Get(targets int) *searcher.Scratch {
	s := scratchPool.Get().(*searcher.Scratch)
	s.Grow(targets)
	return s
}

// Put returns a scratch to the pool.
func Put(s *searcher.Scratch) {
	if s == nil || s.Cap() > MaxPooledTargets {
		return
	}
	scratchPool.Put(s)
}
