package enrichment

import (
	"cmp"
	"slices"

	"github.com/hupe1980/prost/internal/stats"
)

const (
	// TermAlpha is the Bonferroni-corrected p-value a term must stay below.
	TermAlpha = 0.001
	// CombinedAlpha is the Stouffer-combined p-value a term must stay below.
	CombinedAlpha = 0.05
)

// Term is an enriched annotation term of one query.
type Term struct {
	ID           string  `json:"id"`
	Description  string  `json:"description"`
	Confidence   float64 `json:"confidence"`
	Source       int     `json:"source"` // best supporting target
	SourceEValue float64 `json:"source_evalue"`
	Support      int     `json:"support"`
}

// Confidence maps a combined p-value and the number of supporting targets to
// a score: 1 - p2·n·10, so that p2·n = 0.05 gives 0.5. The value is not
// bounded below by 0.
func Confidence(p2 float64, n int) float64 {
	return 1 - p2*float64(n)*10
}

// Enrich returns the terms enriched among candidates.
//
// candidates are target indices in ascending e-value order and evalues their
// e-values, index-aligned. The result is ordered by descending confidence;
// ties keep first-encounter order. Nil is returned when the candidates carry
// no non-blank term.
func Enrich(candidates []int, evalues []float64, db *TermDB) []Term {
	if db == nil || len(candidates) == 0 {
		return nil
	}

	var (
		order  []string
		counts = make(map[string]int)
		total  int
	)
	for _, c := range candidates {
		for _, t := range db.Terms[c] {
			if _, ok := counts[t]; !ok {
				order = append(order, t)
			}
			counts[t]++
			total++
		}
	}
	if _, ok := counts[""]; ok {
		delete(counts, "")
		order = slices.DeleteFunc(order, func(t string) bool { return t == "" })
	}
	if len(order) == 0 {
		return nil
	}

	background := float64(db.Background(CountKey))
	pvalues := make([]float64, len(order))
	for i, t := range order {
		table := stats.Table2x2{
			{float64(counts[t]), float64(db.Background(t))},
			{float64(total), background},
		}
		_, pvalues[i] = stats.ChiSquare(table, true)
	}
	corrected := stats.Bonferroni(pvalues)

	var out []Term
	for i, t := range order {
		if corrected[i] >= TermAlpha {
			continue
		}

		targets := db.Targets(t)
		var support []float64
		source := -1
		for k, c := range candidates {
			if !targets.Contains(uint32(c)) {
				continue
			}
			if source < 0 {
				source = k
			}
			support = append(support, stats.PoissonAtLeastOne(evalues[k]))
		}
		if source < 0 {
			continue
		}

		p2 := stats.Stouffer(support)
		if p2 >= CombinedAlpha {
			continue
		}
		out = append(out, Term{
			ID:           t,
			Description:  db.Description(t),
			Confidence:   Confidence(p2, len(support)),
			Source:       candidates[source],
			SourceEValue: evalues[source],
			Support:      len(support),
		})
	}

	slices.SortStableFunc(out, func(a, b Term) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return out
}
