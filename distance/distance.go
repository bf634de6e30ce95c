package distance

// manhattanGeneric computes sum_i |a[i] - b[i]|.
//
// Assumes len(a) == len(b). Caller's responsibility.
func manhattanGeneric(a, b []int8) int32 {
	var s0, s1, s2, s3 int32

	n := len(a)
	b = b[:n]

	i := 0
	for ; i+4 <= n; i += 4 {
		s0 += abs32(int32(a[i]) - int32(b[i]))
		s1 += abs32(int32(a[i+1]) - int32(b[i+1]))
		s2 += abs32(int32(a[i+2]) - int32(b[i+2]))
		s3 += abs32(int32(a[i+3]) - int32(b[i+3]))
	}
	for ; i < n; i++ {
		s0 += abs32(int32(a[i]) - int32(b[i]))
	}
	return s0 + s1 + s2 + s3
}

func abs32(x int32) int32 {
	m := x >> 31
	return (x ^ m) - m
}

var manhattanImpl = manhattanGeneric

// Manhattan returns the raw L1 distance between two codes.
//
// Assumes len(a) == len(b). Caller's responsibility.
func Manhattan(a, b []int8) int32 {
	return manhattanImpl(a, b)
}

// ManhattanBatch fills out[j] with the raw L1 distance between query and the
// j-th row of codes, where codes is a flat row-major matrix with rows of
// length dim.
//
// out must have length len(codes)/dim.
func ManhattanBatch(query, codes []int8, dim int, out []int32) {
	if dim <= 0 {
		return
	}
	query = query[:dim]
	for j := range out {
		off := j * dim
		out[j] = manhattanImpl(query, codes[off:off+dim])
	}
}

// Half converts a raw L1 distance into fingerprint units.
//
// Codes are scaled by 127 from [0,1] values, so one unit of reported distance
// corresponds to two units of raw integer difference.
func Half(raw int32) float64 {
	return float64(raw) / 2
}
