package persistence

import (
	"github.com/hupe1980/prost/codec"
	"github.com/hupe1980/prost/resource"
)

// Options configures encoding and blob IO.
type Options struct {
	Compression Compression
	BlockSize   int
	Codec       codec.Codec
	// Resources rate-limits blob reads and writes. Nil means unlimited.
	Resources *resource.Controller
}

// Option configures Options.
type Option func(*Options)

// WithCompression sets the block compression.
func WithCompression(c Compression) Option {
	return func(o *Options) { o.Compression = c }
}

// WithBlockSize sets the uncompressed block size.
func WithBlockSize(n int) Option {
	return func(o *Options) { o.BlockSize = n }
}

// WithCodec sets the codec used for the term database.
func WithCodec(c codec.Codec) Option {
	return func(o *Options) { o.Codec = c }
}

// WithResourceController applies the controller's IO limit to blob access.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *Options) { o.Resources = rc }
}

func applyOptions(opts []Option) Options {
	o := Options{
		Compression: DefaultCompression,
		BlockSize:   DefaultBlockSize,
		Codec:       codec.Default,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.BlockSize = normalizeBlockSize(o.BlockSize)
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	return o
}
