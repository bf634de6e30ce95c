package prost

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/hupe1980/prost/fasta"
	"github.com/hupe1980/prost/quantization"
	"github.com/hupe1980/prost/store"
)

// Rejection records a sequence skipped by Build.
type Rejection struct {
	ID  string
	Err error
}

// BuildReport summarizes a Build call.
type BuildReport struct {
	Accepted  int
	CacheHits int
	Embedded  int
	Rejected  []Rejection
}

// Build turns FASTA records into a fingerprint store.
//
// Records are checked in order: shorter than fasta.MinLength, a symbol
// outside fasta.Alphabet, or an identifier seen before are rejected, logged
// and reported without failing the build. Accepted sequences are uppercased
// and looked up in cache; misses are embedded, quantized and added to it.
// cache may be nil. Embedder failures abort the build.
func (e *Engine) Build(ctx context.Context, records iter.Seq2[fasta.Record, error], cache *store.SequenceCache) (*store.Store, BuildReport, error) {
	var report BuildReport
	s := store.New(0)
	seen := make(map[string]struct{})

	for rec, err := range records {
		if err != nil {
			return nil, report, fmt.Errorf("read records: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		if rerr := check(rec, seen); rerr != nil {
			e.logger.LogRejected(ctx, rec.ID, rerr)
			report.Rejected = append(report.Rejected, Rejection{ID: rec.ID, Err: rerr})
			continue
		}
		seen[rec.ID] = struct{}{}

		seq := strings.ToUpper(rec.Sequence)
		fp, cached, err := e.fingerprint(ctx, seq, cache)
		if err != nil {
			return nil, report, fmt.Errorf("sequence %q: %w", rec.ID, err)
		}
		if cached {
			report.CacheHits++
		} else {
			report.Embedded++
		}
		e.logger.LogQuantized(ctx, rec.ID, len(seq), cached)

		s.Append(rec.ID, fp)
		report.Accepted++
	}

	return s, report, nil
}

// BuildRecords is Build over an in-memory slice.
func (e *Engine) BuildRecords(ctx context.Context, records []fasta.Record, cache *store.SequenceCache) (*store.Store, BuildReport, error) {
	return e.Build(ctx, func(yield func(fasta.Record, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}, cache)
}

func check(rec fasta.Record, seen map[string]struct{}) error {
	if n := len(rec.Sequence); n < fasta.MinLength {
		return &ErrSequenceTooShort{ID: rec.ID, Length: n}
	}
	if ok, sym := fasta.CheckAlphabet(rec.Sequence); !ok {
		return &ErrInvalidSequence{ID: rec.ID, Symbol: sym}
	}
	if _, dup := seen[rec.ID]; dup {
		return &ErrDuplicateID{ID: rec.ID}
	}
	return nil
}

func (e *Engine) fingerprint(ctx context.Context, seq string, cache *store.SequenceCache) (quantization.Fingerprint, bool, error) {
	if fp, ok := cache.Get(seq); ok {
		e.metrics.RecordCacheHit()
		return fp, true, nil
	}
	if e.embedder == nil {
		return quantization.Fingerprint{}, false, ErrNoEmbedder
	}

	start := time.Now()
	emb, err := e.embedder.Embed(ctx, seq)
	if err != nil {
		e.metrics.RecordQuantize(len(seq), time.Since(start), err)
		return quantization.Fingerprint{}, false, err
	}
	fp, err := quantization.Quantize(emb)
	e.metrics.RecordQuantize(len(seq), time.Since(start), err)
	if err != nil {
		return quantization.Fingerprint{}, false, err
	}

	cache.Put(seq, fp)
	return fp, false, nil
}

// FillCache adds the fingerprints of db to cache, keyed by the sequences of
// the records with the same identifier. It returns the number of records
// found in db and the identifiers that were not.
func FillCache(records iter.Seq2[fasta.Record, error], db *store.Store, cache *store.SequenceCache) (int, []string, error) {
	index := make(map[string]int, db.Len())
	for i, id := range db.IDs() {
		if _, ok := index[id]; !ok {
			index[id] = i
		}
	}

	found := 0
	var missing []string
	for rec, err := range records {
		if err != nil {
			return found, missing, err
		}
		i, ok := index[rec.ID]
		if !ok {
			missing = append(missing, rec.ID)
			continue
		}
		cache.Put(strings.ToUpper(rec.Sequence), db.Fingerprint(i))
		found++
	}
	return found, missing, nil
}
