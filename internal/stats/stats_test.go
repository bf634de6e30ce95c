package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		x        []float64
		expected float64
	}{
		{"Odd", []float64{3, 1, 2}, 2},
		{"Even", []float64{4, 1, 3, 2}, 2.5},
		{"Single", []float64{7}, 7},
		{"Ties", []float64{10, 10, 10, 40}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := append([]float64(nil), tt.x...)
			assert.Equal(t, tt.expected, Median(tt.x, nil))
			assert.Equal(t, orig, tt.x, "input must not be reordered")
		})
	}

	assert.True(t, math.IsNaN(Median(nil, nil)))
}

func TestMedian_UsesScratch(t *testing.T) {
	scratch := make([]float64, 8)
	assert.Equal(t, 2.0, Median([]float64{3, 1, 2}, scratch))
	assert.Equal(t, []float64{1, 2, 3}, scratch[:3])
}

func TestMAD(t *testing.T) {
	x := []float64{1, 2, 3, 4, 100}
	m := Median(x, nil)
	assert.Equal(t, 3.0, m)
	// |x-3| = 2 1 0 1 97 -> median 1
	assert.Equal(t, 1.0, MAD(x, m, nil))

	assert.Equal(t, 0.0, MAD([]float64{10, 10, 10, 40}, 10, nil))
	assert.True(t, math.IsNaN(MAD(nil, 0, nil)))
}

func TestZScore(t *testing.T) {
	assert.Equal(t, 2.0, ZScore(7, 3, 2))
	assert.Equal(t, 0.0, ZScore(10, 10, 0))
	assert.True(t, math.IsInf(ZScore(40, 10, 0), 1))
	assert.True(t, math.IsInf(ZScore(5, 10, 0), -1))
}

func TestNormal(t *testing.T) {
	assert.InDelta(t, 0.5, NormalCDF(0), 1e-15)
	assert.InDelta(t, 0.15865525393145707, NormalCDF(-1), 1e-12)
	assert.InDelta(t, 0.6914624612740131, NormalCDF(0.5), 1e-12)
	assert.Equal(t, 0.0, NormalCDF(math.Inf(-1)))
	assert.Equal(t, 1.0, NormalCDF(math.Inf(1)))

	assert.InDelta(t, 1-0.6914624612740131, NormalSF(0.5), 1e-12)

	assert.InDelta(t, 2.3263478740408408, NormalISF(0.01), 1e-9)
	assert.InDelta(t, 0, NormalISF(0.5), 1e-12)
	assert.True(t, math.IsInf(NormalISF(0), 1))
	assert.True(t, math.IsInf(NormalISF(1), -1))
	assert.True(t, math.IsNaN(NormalISF(math.NaN())))
}

func TestStouffer(t *testing.T) {
	assert.InDelta(t, 0.0009768028322181266, Stouffer([]float64{0.01, 0.02}), 1e-10)
	assert.InDelta(t, 0.03, Stouffer([]float64{0.03}), 1e-12)
	assert.Equal(t, 0.0, Stouffer([]float64{0, 0.2}))
	assert.True(t, math.IsNaN(Stouffer(nil)))
}

func TestPoissonAtLeastOne(t *testing.T) {
	assert.Equal(t, 0.0, PoissonAtLeastOne(0))
	assert.InDelta(t, 1-math.Exp(-0.5), PoissonAtLeastOne(0.5), 1e-15)
	assert.InDelta(t, 1e-12, PoissonAtLeastOne(1e-12), 1e-24)
}

func TestChiSquare_Yates(t *testing.T) {
	stat, p := ChiSquare(Table2x2{{10, 20}, {30, 40}}, true)
	assert.InDelta(t, 0.44642857142857145, stat, 1e-12)
	assert.InDelta(t, 0.5040358664525048, p, 1e-9)
}

func TestChiSquare_NoCorrection(t *testing.T) {
	// (O-E)^2 = 4 in every cell.
	stat, p := ChiSquare(Table2x2{{10, 20}, {30, 40}}, false)
	assert.InDelta(t, 4*(1.0/12+1.0/18+1.0/28+1.0/42), stat, 1e-12)
	assert.InDelta(t, math.Erfc(math.Sqrt(stat/2)), p, 1e-9)
}

func TestChiSquare_CorrectionNeverOvershoots(t *testing.T) {
	// Observed equals expected: Yates must not move counts past expectation.
	stat, p := ChiSquare(Table2x2{{10, 10}, {10, 10}}, true)
	assert.Equal(t, 0.0, stat)
	assert.InDelta(t, 1.0, p, 1e-12)
}

func TestChiSquare_EmptyExpected(t *testing.T) {
	stat, p := ChiSquare(Table2x2{{3, 0}, {5, 0}}, true)
	assert.Equal(t, 0.0, stat)
	assert.Equal(t, 1.0, p)
}

func TestExpected(t *testing.T) {
	e := Table2x2{{10, 20}, {30, 40}}.Expected()
	require.Equal(t, Table2x2{{12, 18}, {28, 42}}, e)
	assert.Equal(t, Table2x2{}, Table2x2{}.Expected())
}

func TestBonferroni(t *testing.T) {
	out := Bonferroni([]float64{0.0001, 0.2, 0.5})
	assert.InDeltaSlice(t, []float64{0.0003, 0.6, 1}, out, 1e-15)
	assert.Empty(t, Bonferroni(nil))
}
