package prost

import (
	"log/slog"

	"github.com/hupe1980/prost/embed"
	"github.com/hupe1980/prost/persistence"
	"github.com/hupe1980/prost/resource"
)

type options struct {
	embedder         embed.Embedder
	maxResidues      int
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
	compression      persistence.Compression
}

// Option configures an Engine.
type Option func(*options)

// WithEmbedder sets the embedding service used by Build.
// The embedder is wrapped so sequences longer than the model window are
// embedded in chunks.
func WithEmbedder(e embed.Embedder) Option {
	return func(o *options) {
		o.embedder = e
	}
}

// WithMaxResidues sets the chunk length for long sequences.
// Defaults to embed.DefaultMaxResidues.
func WithMaxResidues(n int) Option {
	return func(o *options) {
		o.maxResidues = n
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &prost.BasicMetricsCollector{}
//	eng := prost.New(prost.WithMetricsCollector(metrics))
//	// ... build and search ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, cache hits: %d\n", stats.SearchCount, stats.CacheHits)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController bounds search workers, their scratch memory and
// database IO. Without one, the engine is unlimited.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithCompression sets the block compression of written databases and caches.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		maxResidues:      0,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		compression:      persistence.DefaultCompression,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
