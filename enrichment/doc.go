// Package enrichment reports functional-annotation terms that are
// over-represented among the significant matches of a query.
//
// Every target carries a set of annotation terms (typically GO terms). For the
// candidates of one query the engine counts term occurrences, tests each term
// against the database-wide background with a 2×2 chi-square test (Yates
// corrected), applies a Bonferroni correction, and for the surviving terms
// combines the e-values of the supporting candidates with Stouffer's method
// into a confidence score.
//
// A TermDB is the annotation database; BuildTermDB creates one from an
// accession→terms table and an OBO ontology file.
package enrichment
