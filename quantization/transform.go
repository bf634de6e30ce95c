package quantization

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

type projectionKey struct {
	length int
	keep   int
}

// projections caches keep×length resampling matrices. Channel widths are
// fixed per model, residue counts vary with the protein.
var projections sync.Map // projectionKey -> *mat.Dense

// dctBasis returns the first keep rows of the orthonormal DCT-II matrix of
// size length:
//
//	D[k][t] = s(k) * cos(pi*(2t+1)*k / (2*length))
//	s(0) = sqrt(1/length), s(k>0) = sqrt(2/length)
func dctBasis(length, keep int) *mat.Dense {
	d := mat.NewDense(keep, length, nil)
	s0 := math.Sqrt(1 / float64(length))
	sk := math.Sqrt(2 / float64(length))
	for k := range keep {
		s := sk
		if k == 0 {
			s = s0
		}
		for t := range length {
			d.Set(k, t, s*math.Cos(math.Pi*float64((2*t+1)*k)/float64(2*length)))
		}
	}
	return d
}

// projection returns the keep×length matrix P = IDCT_keep · DCT_length[:keep].
//
// Applied to a length-long signal it keeps the lowest keep frequencies and
// re-synthesizes keep samples from them. The orthonormal inverse (DCT-III) is
// the transpose of the DCT-II matrix.
func projection(length, keep int) *mat.Dense {
	key := projectionKey{length: length, keep: keep}
	if p, ok := projections.Load(key); ok {
		return p.(*mat.Dense)
	}

	fwd := dctBasis(length, keep)
	inv := dctBasis(keep, keep)

	p := new(mat.Dense)
	p.Mul(inv.T(), fwd)

	actual, _ := projections.LoadOrStore(key, p)
	return actual.(*mat.Dense)
}

// scaleRows min-max scales every row of m to [0,1] in place.
// A row without range becomes all zeros.
func scaleRows(m *mat.Dense) {
	rows, cols := m.Dims()
	for i := range rows {
		lo, hi := math.Inf(1), math.Inf(-1)
		for j := range cols {
			v := m.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		span := hi - lo
		for j := range cols {
			if span == 0 {
				m.Set(i, j, 0)
				continue
			}
			m.Set(i, j, (m.At(i, j)-lo)/span)
		}
	}
}

// scaleCols min-max scales every column of m to [0,1] in place.
// A column without range becomes all zeros.
func scaleCols(m *mat.Dense) {
	rows, cols := m.Dims()
	for j := range cols {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := range rows {
			v := m.At(i, j)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		span := hi - lo
		for i := range rows {
			if span == 0 {
				m.Set(i, j, 0)
				continue
			}
			m.Set(i, j, (m.At(i, j)-lo)/span)
		}
	}
}
