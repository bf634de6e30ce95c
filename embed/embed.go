package embed

import (
	"context"
	"errors"
)

// ErrEmptyEmbedding is returned when the model produced no rows.
var ErrEmptyEmbedding = errors.New("embed: empty embedding")

// Embedding holds the two model layers used for quantization.
// Each layer is a row per token (including both boundary tokens); all rows of
// a layer have the same width.
type Embedding struct {
	Shallow [][]float32 `json:"shallow"`
	Deep    [][]float32 `json:"deep"`
}

// Residues returns the number of residue rows, excluding boundary tokens.
func (e Embedding) Residues() int {
	n := min(len(e.Shallow), len(e.Deep)) - 2
	return max(n, 0)
}

// Validate checks that both layers carry the same number of rows and that
// every row of a layer has the same width.
func (e Embedding) Validate() error {
	if len(e.Shallow) == 0 || len(e.Deep) == 0 {
		return ErrEmptyEmbedding
	}
	if len(e.Shallow) != len(e.Deep) {
		return errors.New("embed: layers disagree on token count")
	}
	for _, layer := range [][][]float32{e.Shallow, e.Deep} {
		w := len(layer[0])
		for _, row := range layer[1:] {
			if len(row) != w {
				return errors.New("embed: ragged layer")
			}
		}
	}
	return nil
}

// Embedder produces an Embedding for an amino-acid sequence.
// Implementations must be deterministic for fixed model weights and safe for
// concurrent use.
type Embedder interface {
	Embed(ctx context.Context, seq string) (Embedding, error)
}

// EmbedderFunc adapts a function to the Embedder interface.
type EmbedderFunc func(ctx context.Context, seq string) (Embedding, error)

// Embed calls f(ctx, seq).
func (f EmbedderFunc) Embed(ctx context.Context, seq string) (Embedding, error) {
	return f(ctx, seq)
}
