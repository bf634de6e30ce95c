// Package searcher implements the distance/significance engine.
//
// A query fingerprint is compared against every target of a store by raw
// Manhattan distance. The distance distribution over the whole target store
// is summarized by its median and its MAD (scaled by 1.4826), each distance is
// turned into a robust z-score, and the z-score into an e-value:
//
//	evalue = Φ(z) × targetCount
//
// i.e. the number of targets expected to score at least this well if the
// database held only unrelated proteins. Hits with evalue < threshold are
// returned in ascending e-value order, ties in target order.
//
// The scan is exact and brute-force; a Scratch holds the per-target buffers so
// a worker can reuse them for all of its queries.
package searcher
