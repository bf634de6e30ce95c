package quantization

import (
	"testing"

	"github.com/hupe1980/prost/embed"
	"github.com/hupe1980/prost/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantize_Shape(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, residues := range []int{5, 17, 300, 1500} {
		fp, err := Quantize(rng.Embedding(residues, 128))
		require.NoError(t, err, "residues=%d", residues)
		require.Len(t, fp, CodeLength)
		for _, v := range fp {
			assert.GreaterOrEqual(t, v, int8(0))
			assert.LessOrEqual(t, v, int8(MaxValue))
		}
	}
	assert.Equal(t, 475, CodeLength)
}

func TestQuantize_Deterministic(t *testing.T) {
	e := testutil.NewRNG(1).Embedding(64, 96)

	a, err := Quantize(e)
	require.NoError(t, err)
	b, err := Quantize(e)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQuantize_BlocksUseTheirLayers(t *testing.T) {
	rng := testutil.NewRNG(2)
	e := rng.Embedding(40, 96)

	fp, err := Quantize(e)
	require.NoError(t, err)

	deep, err := Compress2D(e.Deep[1:len(e.Deep)-1], 5, 44)
	require.NoError(t, err)
	shallow, err := Compress2D(e.Shallow[1:len(e.Shallow)-1], 3, 85)
	require.NoError(t, err)

	assert.Equal(t, deep, fp[:220])
	assert.Equal(t, shallow, fp[220:])
}

func TestQuantize_IgnoresBoundaryRows(t *testing.T) {
	rng := testutil.NewRNG(3)
	e := rng.Embedding(30, 96)

	a, err := Quantize(e)
	require.NoError(t, err)

	for _, layer := range [][][]float32{e.Shallow, e.Deep} {
		for j := range layer[0] {
			layer[0][j] = 1e6
			layer[len(layer)-1][j] = -1e6
		}
	}
	b, err := Quantize(e)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQuantize_Errors(t *testing.T) {
	rng := testutil.NewRNG(4)

	_, err := Quantize(embed.Embedding{})
	assert.ErrorIs(t, err, embed.ErrEmptyEmbedding)

	// 4 residues < 5 kept rows of the deep block.
	_, err = Quantize(rng.Embedding(4, 96))
	assert.ErrorIs(t, err, ErrEmbeddingTooSmall)

	// 60 channels < 85 kept columns of the shallow block.
	_, err = Quantize(rng.Embedding(10, 60))
	assert.ErrorIs(t, err, ErrEmbeddingTooSmall)
}

func TestCompress2D_ConstantInputIsZero(t *testing.T) {
	rows := make([][]float32, 12)
	for i := range rows {
		rows[i] = make([]float32, 50)
		for j := range rows[i] {
			rows[i][j] = 3.5
		}
	}
	code, err := Compress2D(rows, 5, 44)
	require.NoError(t, err)
	assert.Equal(t, make([]int8, 5*44), code)
}

func TestCompress2D_RowsSpanFullRange(t *testing.T) {
	e := testutil.NewRNG(5).Embedding(50, 96)

	code, err := Compress2D(e.Deep[1:51], 5, 44)
	require.NoError(t, err)

	// After the last scaling every row reaches both 0 and 127.
	for i := range 5 {
		row := code[i*44 : (i+1)*44]
		assert.Contains(t, row, int8(0))
		assert.Contains(t, row, int8(127))
	}
}

func TestCompress2D_Ragged(t *testing.T) {
	rows := [][]float32{make([]float32, 50), make([]float32, 50), make([]float32, 49), make([]float32, 50), make([]float32, 50)}
	_, err := Compress2D(rows, 5, 44)
	assert.ErrorIs(t, err, ErrRaggedEmbedding)
}

func TestFromSlice(t *testing.T) {
	code := testutil.NewRNG(6).Code(CodeLength)
	fp := FromSlice(code)
	assert.Equal(t, code, fp.Slice())
	assert.Panics(t, func() { FromSlice(code[:10]) })
}
