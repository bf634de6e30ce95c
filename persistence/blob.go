package persistence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/prost/blobstore"
	"github.com/hupe1980/prost/enrichment"
	"github.com/hupe1980/prost/resource"
	"github.com/hupe1980/prost/store"
)

// SaveDatabase writes a fingerprint database to a blob.
func SaveDatabase(ctx context.Context, bs blobstore.BlobStore, name string, s *store.Store, opts ...Option) error {
	return save(ctx, bs, name, opts, func(w io.Writer) error {
		return WriteDatabase(w, s, opts...)
	})
}

// LoadDatabase reads a fingerprint database from a blob.
func LoadDatabase(ctx context.Context, bs blobstore.BlobStore, name string, opts ...Option) (*store.Store, error) {
	var s *store.Store
	err := load(ctx, bs, name, opts, func(r io.Reader) (err error) {
		s, err = ReadDatabase(r)
		return err
	})
	return s, err
}

// SaveCache writes a sequence cache to a blob and marks it clean.
func SaveCache(ctx context.Context, bs blobstore.BlobStore, name string, c *store.SequenceCache, opts ...Option) error {
	err := save(ctx, bs, name, opts, func(w io.Writer) error {
		return WriteCache(w, c, opts...)
	})
	if err == nil && c != nil {
		c.MarkClean()
	}
	return err
}

// FlushCache saves the cache only if entries were added since the last save.
func FlushCache(ctx context.Context, bs blobstore.BlobStore, name string, c *store.SequenceCache, opts ...Option) (bool, error) {
	if !c.Dirty() {
		return false, nil
	}
	if err := SaveCache(ctx, bs, name, c, opts...); err != nil {
		return false, err
	}
	return true, nil
}

// LoadCache reads a sequence cache from a blob. A missing blob yields an
// empty cache.
func LoadCache(ctx context.Context, bs blobstore.BlobStore, name string, opts ...Option) (*store.SequenceCache, error) {
	var c *store.SequenceCache
	err := load(ctx, bs, name, opts, func(r io.Reader) (err error) {
		c, err = ReadCache(r)
		return err
	})
	if errors.Is(err, blobstore.ErrNotFound) {
		return store.NewSequenceCache(), nil
	}
	return c, err
}

// SaveTermDB writes a term database to a blob.
func SaveTermDB(ctx context.Context, bs blobstore.BlobStore, name string, db *enrichment.TermDB, opts ...Option) error {
	return save(ctx, bs, name, opts, func(w io.Writer) error {
		return WriteTermDB(w, db, opts...)
	})
}

// LoadTermDB reads a term database from a blob.
func LoadTermDB(ctx context.Context, bs blobstore.BlobStore, name string, opts ...Option) (*enrichment.TermDB, error) {
	var db *enrichment.TermDB
	err := load(ctx, bs, name, opts, func(r io.Reader) (err error) {
		db, err = ReadTermDB(r)
		return err
	})
	return db, err
}

func save(ctx context.Context, bs blobstore.BlobStore, name string, opts []Option, encode func(io.Writer) error) error {
	o := applyOptions(opts)

	var buf bytes.Buffer
	if err := encode(resource.NewRateLimitedWriter(ctx, &buf, o.Resources)); err != nil {
		return fmt.Errorf("persistence: encode %s: %w", name, err)
	}
	if err := bs.Put(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("persistence: put %s: %w", name, err)
	}
	return nil
}

func load(ctx context.Context, bs blobstore.BlobStore, name string, opts []Option, decode func(io.Reader) error) error {
	o := applyOptions(opts)

	b, err := bs.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("persistence: open %s: %w", name, err)
	}
	defer b.Close()

	var r io.Reader
	if m, ok := b.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return fmt.Errorf("persistence: map %s: %w", name, err)
		}
		r = bytes.NewReader(data)
	} else {
		rc, err := b.ReadRange(ctx, 0, b.Size())
		if err != nil {
			return fmt.Errorf("persistence: read %s: %w", name, err)
		}
		defer rc.Close()
		r = rc
	}

	if err := decode(resource.NewRateLimitedReader(ctx, r, o.Resources)); err != nil {
		return fmt.Errorf("persistence: decode %s: %w", name, err)
	}
	return nil
}
