package quantization

import (
	"fmt"

	"github.com/hupe1980/prost/embed"
	"gonum.org/v1/gonum/mat"
)

// Quantize compresses an embedding into its fingerprint.
//
// Both layers must carry the two boundary-token rows; they are discarded
// before compression. Quantize is pure and safe for concurrent use.
func Quantize(e embed.Embedding) (Fingerprint, error) {
	var fp Fingerprint

	if err := e.Validate(); err != nil {
		return fp, err
	}

	layers := [2][][]float32{e.Deep, e.Shallow}
	for i, b := range Layout {
		layer := layers[i]
		if len(layer) < 2 {
			return fp, fmt.Errorf("%w: %s layer has %d rows", ErrEmbeddingTooSmall, b.Layer, len(layer))
		}
		code, err := Compress2D(layer[1:len(layer)-1], b.Rows, b.Cols)
		if err != nil {
			return fp, fmt.Errorf("%s layer: %w", b.Layer, err)
		}
		copy(fp[b.Offset:], code)
	}
	return fp, nil
}

// Compress2D resamples a rows×width matrix to n×m, scales it to [0,1] and
// returns the row-major int8 code (values in [0,127]).
func Compress2D(rows [][]float32, n, m int) ([]int8, error) {
	length := len(rows)
	if length < n || length == 0 {
		return nil, fmt.Errorf("%w: %d residue rows, need %d", ErrEmbeddingTooSmall, length, n)
	}
	width := len(rows[0])
	if width < m {
		return nil, fmt.Errorf("%w: %d channels, need %d", ErrEmbeddingTooSmall, width, m)
	}

	x := mat.NewDense(length, width, nil)
	for i, row := range rows {
		if len(row) != width {
			return nil, ErrRaggedEmbedding
		}
		for j, v := range row {
			x.Set(i, j, float64(v))
		}
	}

	// Residue axis: length -> n, then scale each channel over the n rows.
	var r mat.Dense
	r.Mul(projection(length, n), x)
	scaleCols(&r)

	// Channel axis: width -> m, then scale each of the n rows over m values.
	var s mat.Dense
	s.Mul(&r, projection(width, m).T())
	scaleRows(&s)

	code := make([]int8, n*m)
	for i := range n {
		for j := range m {
			code[i*m+j] = int8(s.At(i, j) * MaxValue)
		}
	}
	return code, nil
}
