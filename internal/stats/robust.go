package stats

import (
	"math"
	"slices"
)

// MADScale makes the median absolute deviation a consistent estimator of the
// standard deviation for normally distributed data.
const MADScale = 1.4826

// Median returns the median of x. For an even count it is the mean of the two
// middle values. scratch is used for sorting and must have len >= len(x); pass
// nil to allocate. x is not modified. Median of an empty slice is NaN.
func Median(x, scratch []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	if len(scratch) < n {
		scratch = make([]float64, n)
	}
	buf := scratch[:n]
	copy(buf, x)
	slices.Sort(buf)
	if n%2 == 1 {
		return buf[n/2]
	}
	return (buf[n/2-1] + buf[n/2]) / 2
}

// MAD returns the (unscaled) median absolute deviation of x around center.
// scratch follows the same contract as in Median.
func MAD(x []float64, center float64, scratch []float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	if len(scratch) < n {
		scratch = make([]float64, n)
	}
	buf := scratch[:n]
	for i, v := range x {
		buf[i] = math.Abs(v - center)
	}
	slices.Sort(buf)
	if n%2 == 1 {
		return buf[n/2]
	}
	return (buf[n/2-1] + buf[n/2]) / 2
}

// ZScore standardizes x with the given location and spread.
//
// A zero spread has no scale: values equal to the location map to 0, values
// below to -Inf and values above to +Inf. The result is never NaN for finite
// inputs.
func ZScore(x, location, spread float64) float64 {
	if spread == 0 {
		switch {
		case x < location:
			return math.Inf(-1)
		case x > location:
			return math.Inf(1)
		default:
			return 0
		}
	}
	return (x - location) / spread
}
