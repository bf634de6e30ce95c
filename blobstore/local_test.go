package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreLifecycle(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	data := []byte("PRDB header and fingerprint blocks")
	require.NoError(t, store.Put(ctx, "db/targets.prdb", data))
	require.NoError(t, store.Put(ctx, "cache.prsc", []byte("cache")))

	blob, err := store.Open(ctx, "db/targets.prdb")
	require.NoError(t, err)
	defer blob.Close()
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 4)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "PRDB", string(buf))

	tail := make([]byte, 16)
	n, err = blob.ReadAt(ctx, tail, int64(len(data)-6))
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "blocks", string(tail[:n]))

	rc, err := blob.ReadRange(ctx, 5, 6)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "header", string(part))

	all, err := ReadAll(ctx, store, "db/targets.prdb")
	require.NoError(t, err)
	assert.Equal(t, data, all)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache.prsc", "db/targets.prdb"}, names)

	names, err = store.List(ctx, "db/")
	require.NoError(t, err)
	assert.Equal(t, []string{"db/targets.prdb"}, names)

	// Replace.
	require.NoError(t, store.Put(ctx, "cache.prsc", []byte("cache v2")))
	all, err = ReadAll(ctx, store, "cache.prsc")
	require.NoError(t, err)
	assert.Equal(t, "cache v2", string(all))

	require.NoError(t, store.Delete(ctx, "cache.prsc"))
	require.NoError(t, store.Delete(ctx, "cache.prsc"))
	_, err = store.Open(ctx, "cache.prsc")
	assert.ErrorIs(t, err, ErrNotFound)

	ok, err := Exists(ctx, store, "cache.prsc")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = Exists(ctx, store, "db/targets.prdb")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalStore_Lifecycle(t *testing.T) {
	testStoreLifecycle(t, NewLocalStore(t.TempDir()))
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	testStoreLifecycle(t, NewMemoryStore())
}

func TestLocalStore_PutLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	require.NoError(t, store.Put(context.Background(), "a.prdb", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.prdb", entries[0].Name())
}

func TestLocalStore_EmptyBlob(t *testing.T) {
	ctx := context.Background()
	store := NewLocalStore(t.TempDir())
	require.NoError(t, store.Put(ctx, "empty", nil))

	data, err := ReadAll(ctx, store, "empty")
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestLocalStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestMemoryStore_IsolatesCallerSlice(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "x", data))
	data[0] = 'z'

	got, err := ReadAll(ctx, store, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := ReadAll(ctx, store, "x")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
