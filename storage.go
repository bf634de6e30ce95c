package prost

import (
	"context"

	"github.com/hupe1980/prost/blobstore"
	"github.com/hupe1980/prost/enrichment"
	"github.com/hupe1980/prost/persistence"
	"github.com/hupe1980/prost/store"
)

func (e *Engine) persistenceOptions() []persistence.Option {
	return []persistence.Option{
		persistence.WithCompression(e.opts.compression),
		persistence.WithResourceController(e.resources),
	}
}

// SaveDatabase writes a fingerprint database to bs.
func (e *Engine) SaveDatabase(ctx context.Context, bs blobstore.BlobStore, name string, s *store.Store) error {
	return persistence.SaveDatabase(ctx, bs, name, s, e.persistenceOptions()...)
}

// LoadDatabase reads a fingerprint database from bs.
func (e *Engine) LoadDatabase(ctx context.Context, bs blobstore.BlobStore, name string) (*store.Store, error) {
	return persistence.LoadDatabase(ctx, bs, name, e.persistenceOptions()...)
}

// LoadDatabases reads and concatenates databases in argument order.
func (e *Engine) LoadDatabases(ctx context.Context, bs blobstore.BlobStore, names ...string) (*store.Store, error) {
	parts := make([]*store.Store, 0, len(names))
	for _, name := range names {
		s, err := e.LoadDatabase(ctx, bs, name)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return store.Merge(parts...), nil
}

// LoadCache reads the sequence cache. A missing cache is empty.
func (e *Engine) LoadCache(ctx context.Context, bs blobstore.BlobStore, name string) (*store.SequenceCache, error) {
	return persistence.LoadCache(ctx, bs, name, e.persistenceOptions()...)
}

// SaveCache writes the cache unconditionally and marks it clean.
func (e *Engine) SaveCache(ctx context.Context, bs blobstore.BlobStore, name string, c *store.SequenceCache) error {
	err := persistence.SaveCache(ctx, bs, name, c, e.persistenceOptions()...)
	e.logger.LogFlush(ctx, name, c.Len(), err)
	return err
}

// FlushCache writes the cache if it changed since it was loaded or last
// flushed.
func (e *Engine) FlushCache(ctx context.Context, bs blobstore.BlobStore, name string, c *store.SequenceCache) error {
	written, err := persistence.FlushCache(ctx, bs, name, c, e.persistenceOptions()...)
	if written || err != nil {
		e.logger.LogFlush(ctx, name, c.Len(), err)
	}
	return err
}

// SaveTermDB writes a term database to bs.
func (e *Engine) SaveTermDB(ctx context.Context, bs blobstore.BlobStore, name string, db *enrichment.TermDB) error {
	return persistence.SaveTermDB(ctx, bs, name, db, e.persistenceOptions()...)
}

// LoadTermDB reads a term database from bs.
func (e *Engine) LoadTermDB(ctx context.Context, bs blobstore.BlobStore, name string) (*enrichment.TermDB, error) {
	return persistence.LoadTermDB(ctx, bs, name, e.persistenceOptions()...)
}
