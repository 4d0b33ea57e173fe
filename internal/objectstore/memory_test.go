package objectstore_test

import (
	"bytes"
	"context"
	"io"
	"sort"
	"testing"

	"github.com/justic/justic-api/internal/domain"
	"github.com/justic/justic-api/internal/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, owner, task string, kind domain.ArtifactKind) domain.ArtifactKey {
	t.Helper()
	key, err := domain.NewArtifactKey(owner, task, kind)
	require.NoError(t, err)
	return key
}

func TestMemoryStorePutGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := objectstore.NewMemoryStore()
	key := mustKey(t, "u1", "t1", domain.ArtifactVideo)
	payload := []byte("fake mp4 payload")

	require.NoError(t, store.Put(ctx, key, bytes.NewReader(payload), int64(len(payload))))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	art, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", art.ContentType)
	assert.Equal(t, int64(len(payload)), art.Size)
	assert.Equal(t, int64(1), store.OpenHandles())

	got, err := io.ReadAll(art.Body)
	require.NoError(t, err)
	require.NoError(t, art.Body.Close())
	assert.Equal(t, payload, got)
	assert.Equal(t, int64(0), store.OpenHandles())
}

func TestMemoryStoreMissing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := objectstore.NewMemoryStore()
	key := mustKey(t, "u1", "nope", domain.ArtifactThumbnail)

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStoreShortBody(t *testing.T) {
	t.Parallel()
	store := objectstore.NewMemoryStore()
	key := mustKey(t, "u1", "t1", domain.ArtifactVideo)

	err := store.Put(context.Background(), key, bytes.NewReader([]byte("abc")), 10)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreListTaskIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := objectstore.NewMemoryStore()

	put := func(owner, task string, kind domain.ArtifactKind) {
		require.NoError(t, store.Put(ctx, mustKey(t, owner, task, kind), bytes.NewReader([]byte("x")), 1))
	}
	put("alice", "a1", domain.ArtifactVideo)
	put("alice", "a2", domain.ArtifactVideo)
	put("alice", "a2", domain.ArtifactThumbnail)
	put("alice", "a3", domain.ArtifactThumbnail)
	put("bob", "b1", domain.ArtifactVideo)
	put("alice2", "x1", domain.ArtifactVideo)

	ids, err := store.ListTaskIDs(ctx, "alice")
	require.NoError(t, err)
	sort.Strings(ids)
	assert.Equal(t, []string{"a1", "a2"}, ids)

	ids, err = store.ListTaskIDs(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = store.ListTaskIDs(ctx, "../etc")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
