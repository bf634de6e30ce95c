// Package distance provides distance kernels over quantized fingerprints.
//
// Fingerprints are fixed-length int8 codes with values in [0,127]. The
// distance between two codes is the Manhattan (L1) distance, i.e. the sum of
// absolute element-wise differences. Kernels return the raw integer sum;
// callers that report distances in fingerprint units halve it (see Half).
//
// # Usage
//
//	raw := distance.Manhattan(a, b)
//	distance.ManhattanBatch(query, codes, 475, out) // one raw distance per row
package distance
