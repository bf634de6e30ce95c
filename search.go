package prost

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/prost/enrichment"
	"github.com/hupe1980/prost/fasta"
	"github.com/hupe1980/prost/internal/pool"
	"github.com/hupe1980/prost/searcher"
	"github.com/hupe1980/prost/store"
)

// DefaultThreshold is the default e-value cutoff for homologs and for
// enrichment candidates.
const DefaultThreshold = 0.05

// SearchOptions configures SearchAll.
type SearchOptions struct {
	// Threshold is the e-value cutoff for reported matches. It is used as
	// given: zero or less reports nothing.
	Threshold float64
	// EnrichThreshold is the e-value cutoff for enrichment candidates, used
	// as given.
	EnrichThreshold float64
	// Terms enables term enrichment when set. It must be index-aligned with
	// the target store.
	Terms *enrichment.TermDB
	// Workers is the number of query shards searched in parallel.
	// Zero selects GOMAXPROCS.
	Workers int
}

// DefaultSearchOptions returns options with both thresholds set to
// DefaultThreshold and GOMAXPROCS workers.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Threshold: DefaultThreshold, EnrichThreshold: DefaultThreshold}
}

// Match is a target reported for a query.
type Match struct {
	Target   string       `json:"target"`
	Header   fasta.Header `json:"header"`
	Distance float64      `json:"distance"`
	EValue   float64      `json:"evalue"`
}

// Annotation is an enriched term together with the identifier of its best
// supporting target.
type Annotation struct {
	enrichment.Term
	SourceID string `json:"source_id"`
}

// Result holds the matches and enriched terms of one query.
type Result struct {
	Query   string       `json:"query"`
	Matches []Match      `json:"matches"`
	Terms   []Annotation `json:"terms,omitempty"`
}

// SearchAll searches every query of queries against targets.
//
// Queries are split into Workers contiguous shards searched in parallel, each
// by one goroutine owning its scratch buffers. Results are keyed by the query
// identifier. The result of a query does not depend on the worker count. If
// any shard fails the whole search fails and no results are returned.
func (e *Engine) SearchAll(ctx context.Context, queries, targets *store.Store, opts SearchOptions) (map[string]Result, error) {
	if opts.Terms != nil && opts.Terms.Len() != targets.Len() {
		return nil, fmt.Errorf("term database has %d targets, store has %d", opts.Terms.Len(), targets.Len())
	}

	l := queries.Len()
	if l == 0 {
		return map[string]Result{}, nil
	}
	n := opts.Workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	n = min(n, l)

	shards := make([][]Result, n)
	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		start := int(float64(l) / float64(n) * float64(i))
		stop := min(int(float64(l)/float64(n)*float64(i+1)), l)
		g.Go(func() error {
			res, err := e.searchShard(gctx, queries, targets, opts, start, stop)
			e.logger.LogShard(gctx, i, start, stop, err)
			if err != nil {
				return fmt.Errorf("shard %d: %w", i, err)
			}
			shards[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]Result, l)
	for _, res := range shards {
		for _, r := range res {
			out[r.Query] = r
		}
	}
	return out, nil
}

func (e *Engine) searchShard(ctx context.Context, queries, targets *store.Store, opts SearchOptions, start, stop int) ([]Result, error) {
	// Reserve holds one worker slot and the scratch memory.
	release, err := e.resources.Reserve(ctx, searcher.SizeBytes(targets.Len()))
	if err != nil {
		return nil, err
	}
	defer release()

	scratch := pool.Get(targets.Len())
	defer pool.Put(scratch)
	results := make([]Result, 0, stop-start)
	for q := start; q < stop; q++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, e.searchOne(ctx, queries.ID(q), queries.Code(q), targets, opts, scratch))
	}
	return results, nil
}

func (e *Engine) searchOne(ctx context.Context, id string, query []int8, targets *store.Store, opts SearchOptions, scratch *searcher.Scratch) Result {
	began := time.Now()
	scores := searcher.Score(query, targets, scratch)
	hits := scores.Hits(opts.Threshold)

	res := Result{Query: id, Matches: make([]Match, len(hits))}
	for i, h := range hits {
		target := targets.ID(h.Index)
		res.Matches[i] = Match{
			Target:   target,
			Header:   fasta.ParseHeader(target),
			Distance: h.Distance,
			EValue:   h.EValue,
		}
	}
	e.metrics.RecordSearch(len(hits), time.Since(began))

	if opts.Terms != nil {
		began = time.Now()
		candidates := scores.Select(opts.EnrichThreshold)
		evalues := make([]float64, len(candidates))
		for i, c := range candidates {
			evalues[i] = scores.EValues[c]
		}
		terms := enrichment.Enrich(candidates, evalues, opts.Terms)
		if len(terms) > 0 {
			res.Terms = make([]Annotation, len(terms))
			for i, t := range terms {
				res.Terms[i] = Annotation{Term: t, SourceID: targets.ID(t.Source)}
			}
		}
		e.metrics.RecordEnrich(len(res.Terms), time.Since(began))
	}

	e.logger.LogSearch(ctx, id, len(res.Matches), len(res.Terms))
	return res
}
