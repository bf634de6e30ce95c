// Package prost finds remote protein homologs with quantized language-model
// embeddings.
//
// Every protein sequence is reduced to a 475-value int8 fingerprint: the
// per-residue embeddings of two model layers are projected onto a few
// low-frequency cosine components and min-max scaled. Homologs are targets
// whose Manhattan distance to the query is unusually small relative to the
// distribution of all distances to that query; the significance is reported as
// an e-value. Annotation terms over-represented among a query's homologs are
// reported with a confidence score.
//
// # Quick Start
//
//	ctx := context.Background()
//	eng := prost.New(prost.WithEmbedder(embed.NewHTTPEmbedder(embed.HTTPConfig{
//	    BaseURL: "http://localhost:8080",
//	})))
//
//	queries, report, err := eng.Build(ctx, fasta.NewReader(f).All(), nil)
//	results, err := eng.SearchAll(ctx, queries, targets, prost.SearchOptions{
//	    Threshold: 0.05,
//	    Workers:   8,
//	})
//
// # Storage
//
// Databases, sequence caches and term databases are written by the
// persistence package to any blobstore.BlobStore: a local directory
// (memory-mapped reads), S3 or MinIO.
package prost
