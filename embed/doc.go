// Package embed defines the boundary to the protein language model.
//
// prost never runs the model itself. An Embedder returns, for one amino-acid
// sequence, two per-token layers of the model (the shallow and the deep
// layer). Both layers have residues+2 rows: the first and last rows belong to
// the model's boundary tokens.
//
// Models accept a bounded number of residues. Chunked splits longer sequences
// into near-equal pieces, embeds them separately and stitches the pieces back
// together so that callers always see a single residues+2 row matrix.
package embed
