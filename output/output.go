// Package output writes search results.
package output

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"github.com/hupe1980/prost"
	"github.com/hupe1980/prost/codec"
	"github.com/hupe1980/prost/fasta"
)

// Order returns the keys of results sorted, for callers without a query order.
func Order(results map[string]prost.Result) []string {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// WriteTSV writes results as tab-separated rows in the given query order.
//
// Per query, the enriched terms come first:
//
//	query  term  description  confidence  source-accession  support  source-evalue
//
// followed by the matches:
//
//	query  accession  name  description  organism  distance  evalue
//
// Queries missing from results are skipped, repeated ones written once.
func WriteTSV(w io.Writer, results map[string]prost.Result, order []string) error {
	bw := bufio.NewWriter(w)
	written := make(map[string]struct{}, len(order))

	for _, q := range order {
		res, ok := results[q]
		if !ok {
			continue
		}
		if _, dup := written[q]; dup {
			continue
		}
		written[q] = struct{}{}

		for _, t := range res.Terms {
			fmt.Fprintf(bw, "%s\t%s\t%s\t%.3f\t%s\t%d\t%.2e\n",
				q, t.ID, t.Description, t.Confidence,
				fasta.ParseHeader(t.SourceID).Accession, t.Support, t.SourceEValue)
		}
		for _, m := range res.Matches {
			h := m.Header
			if h.Accession == "" {
				h = fasta.ParseHeader(m.Target)
			}
			fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%.2e\n",
				q, h.Accession, h.Name, h.Description, h.Organism, m.Distance, m.EValue)
		}
	}
	return bw.Flush()
}

// WriteJSON writes results as one JSON object keyed by query identifier.
// A nil codec selects codec.Default.
func WriteJSON(w io.Writer, results map[string]prost.Result, c codec.Codec) error {
	return codec.Encode(w, c, results)
}
