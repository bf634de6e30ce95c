package enrichment

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// Reserved keys in TermDB.Frequency.
const (
	// CountKey holds the total number of term occurrences in the database.
	CountKey = "count"
	// UniqueKey holds the number of distinct terms in the database.
	UniqueKey = "uniqueTerm"
)

// TermDB is the annotation database of a target store.
// Terms is index-aligned with the store; a target without annotations holds
// the single blank term "".
type TermDB struct {
	Terms        [][]string        `json:"terms"`
	Frequency    map[string]int    `json:"frequency"`
	Descriptions map[string]string `json:"descriptions"`

	once  sync.Once
	index map[string]*roaring.Bitmap
}

// Len returns the number of annotated targets.
func (db *TermDB) Len() int {
	if db == nil {
		return 0
	}
	return len(db.Terms)
}

// Index returns the term → target-index bitmaps. It is built on first use.
func (db *TermDB) Index() map[string]*roaring.Bitmap {
	db.once.Do(func() {
		db.index = make(map[string]*roaring.Bitmap)
		for i, terms := range db.Terms {
			for _, t := range terms {
				b, ok := db.index[t]
				if !ok {
					b = roaring.New()
					db.index[t] = b
				}
				b.Add(uint32(i))
			}
		}
	})
	return db.index
}

// Targets returns the bitmap of targets annotated with term, or an empty
// bitmap.
func (db *TermDB) Targets(term string) *roaring.Bitmap {
	if b, ok := db.Index()[term]; ok {
		return b
	}
	return roaring.New()
}

// Description returns the description of term, or "".
func (db *TermDB) Description(term string) string {
	return db.Descriptions[term]
}

// Background returns the database-wide occurrence count of term, or 0.
func (db *TermDB) Background(term string) int {
	return db.Frequency[term]
}
