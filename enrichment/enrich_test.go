package enrichment

import (
	"testing"

	"github.com/hupe1980/prost/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureDB has 1000 targets: 0-9 carry GO:1, 20-21 carry GO:3, 30 is
// unannotated and the rest carry GO:2.
func fixtureDB() *TermDB {
	db := &TermDB{
		Terms:        make([][]string, 1000),
		Frequency:    map[string]int{},
		Descriptions: map[string]string{"GO:1": "first", "GO:2": "background"},
	}
	for i := range db.Terms {
		var t string
		switch {
		case i < 10:
			t = "GO:1"
		case i == 20 || i == 21:
			t = "GO:3"
		case i == 30:
			t = ""
		default:
			t = "GO:2"
		}
		db.Terms[i] = []string{t}
		db.Frequency[t]++
	}
	db.Frequency[CountKey] = 1000
	db.Frequency[UniqueKey] = 4
	return db
}

func TestEnrich(t *testing.T) {
	db := fixtureDB()

	candidates := []int{20, 21, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 30}
	evalues := []float64{1e-6, 1e-6, 1e-5, 1e-5, 1e-5, 1e-5, 1e-5, 1e-5, 1e-5, 1e-5, 1e-5, 1e-5, 0.5}

	terms := Enrich(candidates, evalues, db)
	require.Len(t, terms, 2)

	assert.Equal(t, "GO:1", terms[0].ID)
	assert.Equal(t, "first", terms[0].Description)
	assert.Equal(t, 0, terms[0].Source)
	assert.Equal(t, 1e-5, terms[0].SourceEValue)
	assert.Equal(t, 10, terms[0].Support)

	assert.Equal(t, "GO:3", terms[1].ID)
	assert.Empty(t, terms[1].Description)
	assert.Equal(t, 20, terms[1].Source)
	assert.Equal(t, 1e-6, terms[1].SourceEValue)
	assert.Equal(t, 2, terms[1].Support)

	p := stats.PoissonAtLeastOne(1e-6)
	want := Confidence(stats.Stouffer([]float64{p, p}), 2)
	assert.InDelta(t, want, terms[1].Confidence, 1e-15)
	assert.Greater(t, terms[0].Confidence, terms[1].Confidence)
}

func TestEnrich_BonferroniFilter(t *testing.T) {
	db := fixtureDB()

	// GO:2 is common in the background; one supporting candidate is not
	// evidence of enrichment.
	candidates := []int{0, 1, 2, 3, 4, 50}
	evalues := []float64{1e-5, 1e-5, 1e-5, 1e-5, 1e-5, 1e-5}

	terms := Enrich(candidates, evalues, db)
	for _, term := range terms {
		assert.NotEqual(t, "GO:2", term.ID)
	}

	raw := []float64{}
	total := float64(len(candidates))
	for _, id := range []string{"GO:1", "GO:2"} {
		c := 5.0
		if id == "GO:2" {
			c = 1
		}
		_, p := stats.ChiSquare(stats.Table2x2{
			{c, float64(db.Frequency[id])},
			{total, 1000},
		}, true)
		raw = append(raw, p)
	}
	corrected := stats.Bonferroni(raw)
	assert.Less(t, corrected[0], TermAlpha)
	assert.GreaterOrEqual(t, corrected[1], TermAlpha)
	require.Len(t, terms, 1)
	assert.Equal(t, "GO:1", terms[0].ID)
}

func TestEnrich_CombinedFilter(t *testing.T) {
	db := fixtureDB()

	candidates := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	evalues := make([]float64, len(candidates))
	for i := range evalues {
		evalues[i] = 5
	}
	assert.Empty(t, Enrich(candidates, evalues, db))
}

func TestEnrich_NoTerms(t *testing.T) {
	db := &TermDB{
		Terms:     [][]string{{""}, {""}},
		Frequency: map[string]int{"": 2, CountKey: 2, UniqueKey: 1},
	}
	assert.Nil(t, Enrich([]int{0, 1}, []float64{0.1, 0.2}, db))
	assert.Nil(t, Enrich(nil, nil, fixtureDB()))
	assert.Nil(t, Enrich([]int{0}, []float64{0.1}, nil))
}

func TestConfidence(t *testing.T) {
	assert.InDelta(t, 0.5, Confidence(0.05, 1), 1e-12)
	assert.InDelta(t, 0.5, Confidence(0.01, 5), 1e-12)
	assert.InDelta(t, -1.0, Confidence(0.1, 2), 1e-12)
	assert.Equal(t, 1.0, Confidence(0, 7))
}

func TestTermDB_Index(t *testing.T) {
	db := fixtureDB()

	assert.Equal(t, uint64(10), db.Targets("GO:1").GetCardinality())
	assert.True(t, db.Targets("GO:3").Contains(21))
	assert.True(t, db.Targets("").Contains(30))
	assert.True(t, db.Targets("GO:404").IsEmpty())
	assert.Same(t, db.Index()["GO:1"], db.Index()["GO:1"])

	assert.Equal(t, 0, db.Background("GO:404"))
	assert.Empty(t, db.Description("GO:404"))
	assert.Equal(t, 1000, db.Len())

	var nilDB *TermDB
	assert.Zero(t, nilDB.Len())
}
