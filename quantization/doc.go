// Package quantization compresses protein embeddings into fixed-length
// fingerprints.
//
// An embedding has one row per residue, so its size depends on the protein
// length. Quantize turns it into a Fingerprint of exactly CodeLength int8
// values in [0,127]:
//
//  1. the two boundary-token rows are dropped;
//  2. along the residue axis an orthonormal DCT-II is applied and only the
//     first n coefficients are kept; the orthonormal inverse of size n turns
//     them back into n synthetic rows (a low-pass resampling to a fixed
//     length);
//  3. every channel is min-max scaled to [0,1] over those n rows;
//  4. steps 2-3 are repeated along the channel axis with m coefficients;
//  5. the n×m result is scaled by 127 and truncated to int8.
//
// The deep layer is compressed to 5×44 values and the shallow layer to 3×85;
// the deep block comes first. Distances between fingerprints are positional,
// so this layout is fixed.
//
//	fp, err := quantization.Quantize(emb)
package quantization
