package searcher

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/hupe1980/prost/distance"
	"github.com/hupe1980/prost/quantization"
	"github.com/hupe1980/prost/store"
	"github.com/hupe1980/prost/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atDistance builds a store whose targets lie at the given raw distances from
// the zero fingerprint.
func atDistance(t *testing.T, raws ...int) *store.Store {
	t.Helper()
	s := store.New(len(raws))
	for i, d := range raws {
		require.LessOrEqual(t, d, store.Dim)
		var fp quantization.Fingerprint
		for k := range d {
			fp[k] = 1
		}
		s.Append(fmt.Sprintf("t%d", i), fp)
	}
	return s
}

func randomStore(rng *testutil.RNG, n int) *store.Store {
	s := store.New(n)
	for i := range n {
		s.Append(fmt.Sprintf("t%d", i), quantization.FromSlice(rng.Code(store.Dim)))
	}
	return s
}

func TestSearch_ZeroSpread(t *testing.T) {
	targets := atDistance(t, 10, 10, 10, 40)
	var query quantization.Fingerprint

	sc := Score(query[:], targets, NewScratch(targets.Len()))
	assert.Equal(t, []float64{2, 2, 2, 4}, sc.EValues)
	assert.Equal(t, 10.0, sc.Median)
	assert.Zero(t, sc.Spread)

	hits := Search(query[:], targets, 3, nil)
	require.Len(t, hits, 3)
	for i, h := range hits {
		assert.Equal(t, i, h.Index)
		assert.Equal(t, 5.0, h.Distance)
		assert.Equal(t, 2.0, h.EValue)
	}
}

func TestSearch_ThresholdIsStrict(t *testing.T) {
	targets := atDistance(t, 10, 10, 10, 40)
	var query quantization.Fingerprint

	assert.Empty(t, Search(query[:], targets, 2, nil))
	assert.Len(t, Search(query[:], targets, 4, nil), 3)
	assert.Len(t, Search(query[:], targets, 4.0000001, nil), 4)
}

func TestSearch_RobustStatistics(t *testing.T) {
	targets := atDistance(t, 40, 0, 30, 10, 20)
	var query quantization.Fingerprint

	sc := Score(query[:], targets, nil)
	assert.Equal(t, 20.0, sc.Median)
	assert.InDelta(t, 14.826, sc.Spread, 1e-12)

	hits := sc.Hits(math.Inf(1))
	require.Len(t, hits, 5)
	assert.Equal(t, []int{1, 3, 4, 2, 0}, indices(hits))
	assert.InDelta(t, 5*0.5, hits[2].EValue, 1e-12)
	assert.Equal(t, 0.0, hits[0].Distance)
	assert.Equal(t, 20.0, hits[4].Distance)
}

func TestSearch_Monotonic(t *testing.T) {
	rng := testutil.NewRNG(7)
	targets := randomStore(rng, 200)
	query := rng.Code(store.Dim)

	sc := Score(query, targets, NewScratch(targets.Len()))
	order := make([]int, targets.Len())
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int { return int(sc.Raw[a] - sc.Raw[b]) })
	for k := 1; k < len(order); k++ {
		assert.LessOrEqual(t, sc.EValues[order[k-1]], sc.EValues[order[k]])
	}
	for i, e := range sc.EValues {
		assert.GreaterOrEqual(t, e, 0.0)
		assert.LessOrEqual(t, e, float64(targets.Len()))
		assert.Equal(t, distance.Manhattan(query, targets.Code(i)), sc.Raw[i])
	}
}

func TestSearch_ThresholdContract(t *testing.T) {
	rng := testutil.NewRNG(8)
	targets := randomStore(rng, 150)
	query := rng.Code(store.Dim)

	const thr = 20.0
	sc := Score(query, targets, nil)
	want := 0
	for _, e := range sc.EValues {
		if e < thr {
			want++
		}
	}
	hits := sc.Hits(thr)
	require.Len(t, hits, want)
	for k, h := range hits {
		assert.Less(t, h.EValue, thr)
		assert.Equal(t, distance.Half(sc.Raw[h.Index]), h.Distance)
		if k > 0 {
			assert.LessOrEqual(t, hits[k-1].EValue, h.EValue)
		}
	}
}

func TestSearch_SelfHitRanksFirst(t *testing.T) {
	rng := testutil.NewRNG(9)
	targets := randomStore(rng, 100)
	query := targets.Code(42)

	hits := Search(query, targets, 1, nil)
	require.NotEmpty(t, hits)
	assert.Equal(t, 42, hits[0].Index)
	assert.Zero(t, hits[0].Distance)
}

func TestSearch_EmptyStore(t *testing.T) {
	var query quantization.Fingerprint
	assert.Empty(t, Search(query[:], store.New(0), 10, nil))
}

func TestScratch_Reuse(t *testing.T) {
	rng := testutil.NewRNG(10)
	big := randomStore(rng, 50)
	small := randomStore(rng, 5)
	query := rng.Code(store.Dim)

	s := NewScratch(big.Len())
	want := Search(query, small, 10, nil)
	Search(query, big, 10, s)
	assert.Equal(t, want, Search(query, small, 10, s))
	assert.Equal(t, int64(50*28), SizeBytes(50))
}

func indices(hits []Hit) []int {
	out := make([]int, len(hits))
	for i, h := range hits {
		out[i] = h.Index
	}
	return out
}
