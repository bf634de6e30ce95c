// Package store holds fingerprint databases and the sequence cache.
//
// A Store is an ordered pair of index-aligned columns: identifiers and
// fingerprints. Fingerprints are kept in one flat row-major int8 matrix so a
// search can stream over them without chasing pointers. Insertion order is the
// canonical order of a store; search results refer to targets by index.
//
// A SequenceCache maps raw sequences to fingerprints so that identical
// sequences (even under different identifiers) are quantized only once. It is
// an explicit object: callers load it, pass it to the build, and flush it when
// Dirty reports new entries.
package store
