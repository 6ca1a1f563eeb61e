package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CorpusReprocessor/internal/domain"
)

func TestMemoryStoreContract(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	older := domain.Artifact{ID: "older", URL: "https://example.com/1", CollectedAt: base}
	newer := domain.Artifact{ID: "newer", URL: "https://example.com/2", CollectedAt: base.Add(time.Hour)}

	_, err := store.Upsert(ctx, newer)
	require.NoError(t, err)
	_, err = store.Upsert(ctx, older)
	require.NoError(t, err)

	all, err := store.GetAll(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "older", all[0].ID)
	assert.Equal(t, "newer", all[1].ID)

	limited, err := store.GetAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)

	got, err := store.GetByID(ctx, "older")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://example.com/1", got.URL)

	missing, err := store.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	exists, err := store.ExistsByURL(ctx, "https://example.com/2")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.ExistsByURL(ctx, "https://example.com/404")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryStoreAssignsID(t *testing.T) {
	store := NewMemoryStore()
	id, err := store.Upsert(context.Background(), domain.Artifact{URL: "https://example.com/x"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestMemoryStoreDoesNotAliasMetadata(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	a := domain.Artifact{ID: "a"}
	a.SetMeta(domain.MetaImpactCategory, "replace")
	_, err := store.Upsert(ctx, a)
	require.NoError(t, err)

	// Mutating the caller's map must not leak into the store.
	a.SetMeta(domain.MetaImpactCategory, "augment")

	got, err := store.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "replace", got.MetaString(domain.MetaImpactCategory))

	// And mutating a read result must not leak back either.
	got.SetMeta(domain.MetaImpactCategory, "human_only")
	again, err := store.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "replace", again.MetaString(domain.MetaImpactCategory))
}
