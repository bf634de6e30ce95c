package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalCDF returns P(Z <= z) for a standard normal Z.
func NormalCDF(z float64) float64 {
	return distuv.UnitNormal.CDF(z)
}

// NormalSF returns P(Z > z) for a standard normal Z.
func NormalSF(z float64) float64 {
	return distuv.UnitNormal.Survival(z)
}

// NormalISF returns z such that P(Z > z) = p.
// p <= 0 yields +Inf and p >= 1 yields -Inf.
func NormalISF(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return math.NaN()
	case p <= 0:
		return math.Inf(1)
	case p >= 1:
		return math.Inf(-1)
	}
	// Symmetry keeps precision for small p, where 1-p would round to 1.
	return -distuv.UnitNormal.Quantile(p)
}

// Stouffer combines independent p-values with equal weights:
//
//	Z = sum(ISF(p_i)) / sqrt(k),  p = SF(Z)
//
// An empty input returns NaN.
func Stouffer(pvalues []float64) float64 {
	if len(pvalues) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, p := range pvalues {
		sum += NormalISF(p)
	}
	return NormalSF(sum / math.Sqrt(float64(len(pvalues))))
}

// PoissonAtLeastOne returns the probability of one or more events under a
// Poisson distribution with mean e: 1 - exp(-e).
func PoissonAtLeastOne(e float64) float64 {
	return -math.Expm1(-e)
}
