package searcher

import (
	"cmp"
	"slices"

	"github.com/hupe1980/prost/distance"
	"github.com/hupe1980/prost/internal/stats"
	"github.com/hupe1980/prost/store"
)

// Hit is a target that passed the e-value threshold.
type Hit struct {
	Index    int     // target index in the store
	Distance float64 // halved raw distance
	EValue   float64
}

// Scores holds the per-target statistics of one query.
// Slices alias the Scratch they were computed with and are overwritten by the
// next Score call on that Scratch.
type Scores struct {
	Raw     []int32   // raw L1 distance per target
	EValues []float64 // e-value per target
	Median  float64   // median raw distance
	Spread  float64   // MAD × 1.4826 of the raw distances
}

// Scratch holds reusable per-target buffers.
// A Scratch is owned by one goroutine at a time.
type Scratch struct {
	raw   []int32
	dist  []float64
	sort  []float64
	evals []float64
}

// NewScratch allocates buffers for a store of the given size.
func NewScratch(targets int) *Scratch {
	s := &Scratch{}
	s.ensure(targets)
	return s
}

// SizeBytes estimates the memory held by a scratch for n targets.
func SizeBytes(n int) int64 {
	return int64(n) * (4 + 8 + 8 + 8)
}

// Grow makes room for n targets.
func (s *Scratch) Grow(n int) { s.ensure(n) }

// Cap returns the number of targets the scratch holds without reallocating.
func (s *Scratch) Cap() int { return cap(s.raw) }

func (s *Scratch) ensure(n int) {
	if cap(s.raw) < n {
		s.raw = make([]int32, n)
		s.dist = make([]float64, n)
		s.sort = make([]float64, n)
		s.evals = make([]float64, n)
	}
	s.raw = s.raw[:n]
	s.dist = s.dist[:n]
	s.sort = s.sort[:n]
	s.evals = s.evals[:n]
}

// Score computes raw distances and e-values of query against every target.
// A nil scratch allocates a fresh one.
func Score(query []int8, targets *store.Store, s *Scratch) Scores {
	n := targets.Len()
	if s == nil {
		s = &Scratch{}
	}
	s.ensure(n)
	if n == 0 {
		return Scores{Raw: s.raw, EValues: s.evals}
	}

	distance.ManhattanBatch(query, targets.Codes(), store.Dim, s.raw)
	for i, r := range s.raw {
		s.dist[i] = float64(r)
	}

	median := stats.Median(s.dist, s.sort)
	spread := stats.MAD(s.dist, median, s.sort) * stats.MADScale

	count := float64(n)
	for i, d := range s.dist {
		s.evals[i] = stats.NormalCDF(stats.ZScore(d, median, spread)) * count
	}

	return Scores{Raw: s.raw, EValues: s.evals, Median: median, Spread: spread}
}

// Select returns the indices of targets with an e-value below threshold,
// ordered by ascending e-value, ties by index.
func (sc Scores) Select(threshold float64) []int {
	var idx []int
	for i, e := range sc.EValues {
		if e < threshold {
			idx = append(idx, i)
		}
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(sc.EValues[a], sc.EValues[b])
	})
	return idx
}

// Hits materializes the targets selected by threshold.
func (sc Scores) Hits(threshold float64) []Hit {
	idx := sc.Select(threshold)
	hits := make([]Hit, len(idx))
	for k, i := range idx {
		hits[k] = Hit{
			Index:    i,
			Distance: distance.Half(sc.Raw[i]),
			EValue:   sc.EValues[i],
		}
	}
	return hits
}

// Search scores query against targets and returns the hits with
// evalue < threshold.
func Search(query []int8, targets *store.Store, threshold float64, s *Scratch) []Hit {
	return Score(query, targets, s).Hits(threshold)
}
