package prost

import (
	"github.com/hupe1980/prost/embed"
	"github.com/hupe1980/prost/resource"
)

// Engine builds fingerprint databases and searches them.
//
// An Engine holds no per-search state; Build and SearchAll may be called
// concurrently.
type Engine struct {
	embedder  embed.Embedder
	logger    *Logger
	metrics   MetricsCollector
	resources *resource.Controller
	opts      options
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)

	var embedder embed.Embedder
	if o.embedder != nil {
		chunked := embed.NewChunked(o.embedder)
		if o.maxResidues > 0 {
			chunked.MaxResidues = o.maxResidues
		}
		embedder = chunked
	}

	return &Engine{
		embedder:  embedder,
		logger:    o.logger,
		metrics:   o.metricsCollector,
		resources: o.resources,
		opts:      o,
	}
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *Logger { return e.logger }
