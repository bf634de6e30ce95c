package testutil

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/prost/embed"
)

// Alphabet holds the 20 standard amino acids.
const Alphabet = "ACDEFGHIKLMNPQRSTVWY"

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillGaussian fills dst with standard normal values.
func (r *RNG) FillGaussian(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = float32(r.rand.NormFloat64())
	}
}

// Protein returns a random sequence over the standard alphabet.
func (r *RNG) Protein(length int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(Alphabet[r.rand.Intn(len(Alphabet))])
	}
	return b.String()
}

// Code returns n random fingerprint values in [0,127].
func (r *RNG) Code(n int) []int8 {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := make([]int8, n)
	for i := range code {
		code[i] = int8(r.rand.Intn(128))
	}
	return code
}

// Embedding returns a Gaussian embedding with residues+2 rows per layer.
// Uses a single backing array per layer.
func (r *RNG) Embedding(residues, width int) embed.Embedding {
	return embed.Embedding{
		Shallow: r.layer(residues+2, width),
		Deep:    r.layer(residues+2, width),
	}
}

func (r *RNG) layer(rows, width int) [][]float32 {
	data := make([]float32, rows*width)
	r.FillGaussian(data)

	layer := make([][]float32, rows)
	for i := range layer {
		layer[i] = data[i*width : (i+1)*width]
	}
	return layer
}

// FakeEmbedder is a deterministic stand-in for the language model: the
// embedding is a pure function of the sequence content.
type FakeEmbedder struct {
	Width int

	calls atomic.Int64
}

// NewFakeEmbedder creates a fake model with the given channel width.
func NewFakeEmbedder(width int) *FakeEmbedder {
	return &FakeEmbedder{Width: width}
}

// Embed implements embed.Embedder.
func (f *FakeEmbedder) Embed(ctx context.Context, seq string) (embed.Embedding, error) {
	if err := ctx.Err(); err != nil {
		return embed.Embedding{}, err
	}
	f.calls.Add(1)

	h := fnv.New64a()
	_, _ = h.Write([]byte(seq))
	return NewRNG(int64(h.Sum64())).Embedding(len(seq), f.Width), nil
}

// Calls returns how many times Embed ran.
func (f *FakeEmbedder) Calls() int {
	return int(f.calls.Load())
}
