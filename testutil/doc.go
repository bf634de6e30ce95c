// Package testutil provides testing utilities for prost.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for protein sequences, embeddings
// and fingerprint codes, and a fake embedding model.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	seq := rng.Protein(120)             // random 20-letter sequence
//	emb := rng.Embedding(120, 96)       // 122 token rows per layer
//	code := rng.Code(475)               // values in [0,127]
//
// # Fake Model
//
//	embedder := testutil.NewFakeEmbedder(96)
//	emb, _ := embedder.Embed(ctx, "MKVLA...")  // deterministic per sequence
package testutil
