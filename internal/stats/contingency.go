package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Table2x2 is a 2×2 contingency table of observed counts, row-major.
type Table2x2 [2][2]float64

// Expected returns the table of expected counts under independence.
func (t Table2x2) Expected() Table2x2 {
	var e Table2x2
	rows := [2]float64{t[0][0] + t[0][1], t[1][0] + t[1][1]}
	cols := [2]float64{t[0][0] + t[1][0], t[0][1] + t[1][1]}
	total := rows[0] + rows[1]
	if total == 0 {
		return e
	}
	for i := range 2 {
		for j := range 2 {
			e[i][j] = rows[i] * cols[j] / total
		}
	}
	return e
}

// ChiSquare tests t for independence with one degree of freedom and returns
// the test statistic and its p-value.
//
// With yates set, every observed count is moved up to 0.5 towards its
// expected count before the Pearson statistic is computed. A table with an
// empty expected cell carries no evidence: the statistic is 0 and p is 1.
func ChiSquare(t Table2x2, yates bool) (stat, p float64) {
	e := t.Expected()
	for i := range 2 {
		for j := range 2 {
			if e[i][j] == 0 {
				return 0, 1
			}
		}
	}

	for i := range 2 {
		for j := range 2 {
			o := t[i][j]
			if yates {
				diff := e[i][j] - o
				o += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			d := o - e[i][j]
			stat += d * d / e[i][j]
		}
	}

	chi2 := distuv.ChiSquared{K: 1}
	return stat, chi2.Survival(stat)
}

// Bonferroni multiplies every p-value by the number of tests, capped at 1.
// The result is written to a new slice.
func Bonferroni(pvalues []float64) []float64 {
	k := float64(len(pvalues))
	out := make([]float64, len(pvalues))
	for i, p := range pvalues {
		out[i] = math.Min(1, p*k)
	}
	return out
}
