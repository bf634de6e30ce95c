// Package stats implements the statistical primitives used by search and
// enrichment: robust location/scale estimates, normal tail probabilities, the
// 2×2 chi-square test of independence, Bonferroni correction and Stouffer's
// p-value combination.
//
// Distribution functions come from gonum's distuv package; everything here is
// allocation-free when callers supply scratch buffers.
package stats
