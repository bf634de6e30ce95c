package embed

import (
	"context"
	"fmt"
)

// DefaultMaxResidues is the longest sequence ESM-1b accepts in one pass.
const DefaultMaxResidues = 1022

// Chunked wraps a model that accepts at most MaxResidues residues.
//
// A sequence of length l > MaxResidues is cut into floor(l/MaxResidues)+1
// pieces of near-equal length. Consecutive pieces are joined by dropping the
// trailing boundary row of the accumulated result and the leading boundary row
// of the next piece, so the stitched embedding again has l+2 rows.
type Chunked struct {
	Model       Embedder
	MaxResidues int
}

// NewChunked wraps model with the default residue limit.
func NewChunked(model Embedder) *Chunked {
	return &Chunked{Model: model, MaxResidues: DefaultMaxResidues}
}

// Embed implements Embedder.
func (c *Chunked) Embed(ctx context.Context, seq string) (Embedding, error) {
	limit := c.MaxResidues
	if limit <= 0 {
		limit = DefaultMaxResidues
	}

	l := len(seq)
	if l <= limit {
		return c.Model.Embed(ctx, seq)
	}

	pieces := l/limit + 1
	part := float64(l) / float64(pieces)

	var out Embedding
	for i := range pieces {
		start := int(float64(i) * part)
		stop := int(float64(i+1) * part)

		e, err := c.Model.Embed(ctx, seq[start:stop])
		if err != nil {
			return Embedding{}, fmt.Errorf("embed: piece %d/%d: %w", i+1, pieces, err)
		}
		if len(e.Shallow) < 2 || len(e.Deep) < 2 {
			return Embedding{}, fmt.Errorf("embed: piece %d/%d: %w", i+1, pieces, ErrEmptyEmbedding)
		}

		if i == 0 {
			out = e
			continue
		}
		out.Shallow = stitch(out.Shallow, e.Shallow)
		out.Deep = stitch(out.Deep, e.Deep)
	}
	return out, nil
}

func stitch(acc, next [][]float32) [][]float32 {
	joined := make([][]float32, 0, len(acc)+len(next)-2)
	joined = append(joined, acc[:len(acc)-1]...)
	return append(joined, next[1:]...)
}
