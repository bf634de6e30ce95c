package quantization

import "errors"

// CodeLength is the number of values in a fingerprint.
const CodeLength = deepRows*deepCols + shallowRows*shallowCols

// MaxValue is the largest value a fingerprint element can take.
const MaxValue = 127

const (
	deepRows    = 5
	deepCols    = 44
	shallowRows = 3
	shallowCols = 85
)

var (
	// ErrEmbeddingTooSmall is returned when a layer has fewer residue rows or
	// channels than the compression keeps.
	ErrEmbeddingTooSmall = errors.New("quantization: embedding too small")

	// ErrRaggedEmbedding is returned when rows of a layer differ in width.
	ErrRaggedEmbedding = errors.New("quantization: ragged embedding")
)

// Fingerprint is the quantized code of one protein.
// Two equal embeddings always produce identical fingerprints.
type Fingerprint [CodeLength]int8

// Slice returns the fingerprint as a slice sharing its storage.
func (f *Fingerprint) Slice() []int8 { return f[:] }

// FromSlice copies a CodeLength-long code into a Fingerprint.
// It panics if len(code) != CodeLength.
func FromSlice(code []int8) Fingerprint {
	var f Fingerprint
	if len(code) != CodeLength {
		panic("quantization: code length mismatch")
	}
	copy(f[:], code)
	return f
}

// Block describes one compressed layer inside a fingerprint.
type Block struct {
	Layer  string
	Offset int
	Rows   int // kept residue-axis coefficients (n)
	Cols   int // kept channel-axis coefficients (m)
}

// Layout lists the fingerprint blocks in storage order.
var Layout = [2]Block{
	{Layer: "deep", Offset: 0, Rows: deepRows, Cols: deepCols},
	{Layer: "shallow", Offset: deepRows * deepCols, Rows: shallowRows, Cols: shallowCols},
}
