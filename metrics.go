package prost

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordQuantize is called after a sequence was embedded and quantized.
	RecordQuantize(residues int, duration time.Duration, err error)

	// RecordCacheHit is called when a fingerprint came from the sequence cache.
	RecordCacheHit()

	// RecordSearch is called after each query. matches is the number of
	// targets below the e-value threshold.
	RecordSearch(matches int, duration time.Duration)

	// RecordEnrich is called after term enrichment of a query.
	RecordEnrich(terms int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordQuantize(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCacheHit()                          {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration)          {}
func (NoopMetricsCollector) RecordEnrich(int, time.Duration)          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	QuantizeCount      atomic.Int64
	QuantizeErrors     atomic.Int64
	QuantizeResidues   atomic.Int64
	QuantizeTotalNanos atomic.Int64
	CacheHits          atomic.Int64
	SearchCount        atomic.Int64
	SearchMatches      atomic.Int64
	SearchTotalNanos   atomic.Int64
	EnrichCount        atomic.Int64
	EnrichTerms        atomic.Int64
	EnrichTotalNanos   atomic.Int64
}

// RecordQuantize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuantize(residues int, duration time.Duration, err error) {
	b.QuantizeCount.Add(1)
	if err != nil {
		b.QuantizeErrors.Add(1)
		return
	}
	b.QuantizeResidues.Add(int64(residues))
	b.QuantizeTotalNanos.Add(duration.Nanoseconds())
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() {
	b.CacheHits.Add(1)
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(matches int, duration time.Duration) {
	b.SearchCount.Add(1)
	b.SearchMatches.Add(int64(matches))
	b.SearchTotalNanos.Add(duration.Nanoseconds())
}

// RecordEnrich implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEnrich(terms int, duration time.Duration) {
	b.EnrichCount.Add(1)
	b.EnrichTerms.Add(int64(terms))
	b.EnrichTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		QuantizeCount:    b.QuantizeCount.Load(),
		QuantizeErrors:   b.QuantizeErrors.Load(),
		QuantizeResidues: b.QuantizeResidues.Load(),
		QuantizeAvgNanos: avg(b.QuantizeTotalNanos.Load(), b.QuantizeCount.Load()-b.QuantizeErrors.Load()),
		CacheHits:        b.CacheHits.Load(),
		SearchCount:      b.SearchCount.Load(),
		SearchMatches:    b.SearchMatches.Load(),
		SearchAvgNanos:   avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		EnrichCount:      b.EnrichCount.Load(),
		EnrichTerms:      b.EnrichTerms.Load(),
		EnrichAvgNanos:   avg(b.EnrichTotalNanos.Load(), b.EnrichCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count <= 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	QuantizeCount    int64
	QuantizeErrors   int64
	QuantizeResidues int64
	QuantizeAvgNanos int64
	CacheHits        int64
	SearchCount      int64
	SearchMatches    int64
	SearchAvgNanos   int64
	EnrichCount      int64
	EnrichTerms      int64
	EnrichAvgNanos   int64
}
