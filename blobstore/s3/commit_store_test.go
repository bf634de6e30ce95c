package s3

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/prost/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommitStore(ddb *mockDDBClient, baseURI string) (*CommitStore, *blobstore.MemoryStore) {
	blobs := blobstore.NewMemoryStore()
	return NewCommitStore(blobs, ddb, "prost-commits", baseURI), blobs
}

func readString(t *testing.T, s blobstore.BlobStore, name string) string {
	t.Helper()
	data, err := blobstore.ReadAll(context.Background(), s, name)
	require.NoError(t, err)
	return string(data)
}

func TestCommitStore_NotFoundBeforeCommit(t *testing.T) {
	store, _ := newTestCommitStore(newMockDDBClient(), "s3://bucket/prost")

	_, err := store.Open(context.Background(), "cache.prsc")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	v, err := store.Latest(context.Background(), "cache.prsc")
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestCommitStore_Versions(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCommitStore(newMockDDBClient(), "s3://bucket/prost")

	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Put(ctx, "cache.prsc", []byte(fmt.Sprintf("v%d", i))))
	}

	v, err := store.Latest(ctx, "cache.prsc")
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v)
	assert.Equal(t, "v12", readString(t, store, "cache.prsc"))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache.prsc"}, names)
}

func TestCommitStore_ConcurrentCommits(t *testing.T) {
	ctx := context.Background()
	store, blobs := newTestCommitStore(newMockDDBClient(), "s3://bucket/prost")
	require.NoError(t, store.Put(ctx, "cache.prsc", []byte("initial")))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes []string
	)
	for i := range 8 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			content := fmt.Sprintf("writer-%d", id)
			err := store.Put(ctx, "cache.prsc", []byte(content))
			if errors.Is(err, ErrConcurrentModification) {
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			successes = append(successes, content)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	require.NotEmpty(t, successes)
	assert.Contains(t, successes, readString(t, store, "cache.prsc"))

	// Losing writers clean up their objects.
	objects, err := blobs.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, objects, len(successes)+1)
}

func TestCommitStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, blobs := newTestCommitStore(newMockDDBClient(), "s3://bucket/prost")

	require.NoError(t, store.Put(ctx, "a", []byte("1")))
	require.NoError(t, store.Put(ctx, "a", []byte("2")))
	require.NoError(t, store.Put(ctx, "b", []byte("3")))

	require.NoError(t, store.Delete(ctx, "a"))
	_, err := store.Open(ctx, "a")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
	assert.Equal(t, "3", readString(t, store, "b"))

	objects, err := blobs.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, objects, 1)
}

func TestCommitStore_IsolatedNamespaces(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	store1, _ := newTestCommitStore(ddb, "s3://bucket-a/prost")
	store2, _ := newTestCommitStore(ddb, "s3://bucket-b/prost")

	require.NoError(t, store1.Put(ctx, "cache.prsc", []byte("A")))
	require.NoError(t, store2.Put(ctx, "cache.prsc", []byte("B")))

	assert.Equal(t, "A", readString(t, store1, "cache.prsc"))
	assert.Equal(t, "B", readString(t, store2, "cache.prsc"))
}

func TestLogicalName(t *testing.T) {
	name, ok := logicalName("db/cache.prsc.v3-2f1c0e9a-7d4b-4b8e-9a6f-1c2d3e4f5a6b")
	require.True(t, ok)
	assert.Equal(t, "db/cache.prsc", name)

	for _, bad := range []string{"cache.prsc", "cache.prsc.vx-1", "cache.prsc.v3-notauuid"} {
		_, ok := logicalName(bad)
		assert.False(t, ok, bad)
	}
}
