package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adv-assistant-be/internal/pkg/logger"
	"adv-assistant-be/pkg/session"
)

// failingStore simulates an unreachable session store.
type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]byte, error) {
	return nil, session.ErrStoreUnavailable
}
func (failingStore) Save(context.Context, string, []byte, time.Duration) error {
	return session.ErrStoreUnavailable
}
func (failingStore) Delete(context.Context, string) error {
	return session.ErrStoreUnavailable
}

func TestAppendQueryAccumulates(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(session.NewMemoryStore(), "s1", logger.NewNopLogger())

	require.True(t, agg.AppendQuery(ctx, "bonjour"))
	require.True(t, agg.AppendQuery(ctx, "où est ma commande ?"))

	rec := agg.Get(ctx)
	assert.Equal(t, []string{"bonjour", "où est ma commande ?"}, rec.Queries)
	assert.Equal(t, "s1", rec.SessionID)
	assert.NotEmpty(t, rec.Timestamp)
}

func TestGetCreatesFreshRecord(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	agg := NewAggregator(store, "missing", logger.NewNopLogger())

	rec := agg.Get(ctx)
	require.NotNil(t, rec)
	assert.Equal(t, "missing", rec.SessionID)
	assert.Empty(t, rec.Queries)

	// Get alone must not persist anything.
	_, err := store.Load(ctx, session.HistoryKey("missing"))
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStoreDownDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(failingStore{}, "s1", logger.NewNopLogger())

	rec := agg.Get(ctx)
	require.NotNil(t, rec)
	assert.Empty(t, rec.Queries)

	assert.False(t, agg.AppendQuery(ctx, "bonjour"))
	assert.False(t, agg.SetLanguage(ctx, "fr"))
	assert.False(t, agg.SetIntent(ctx, "OTHER", 0.5))
}

func TestSetIntentAndLanguage(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	agg := NewAggregator(store, "s1", logger.NewNopLogger())

	require.True(t, agg.AppendQuery(ctx, "bonjour"))
	require.True(t, agg.SetLanguage(ctx, "ar"))
	require.True(t, agg.SetIntent(ctx, "PLATFORM_INFO", 0.8))

	rec := agg.Get(ctx)
	assert.Equal(t, "ar", rec.Language)
	assert.Equal(t, "PLATFORM_INFO", rec.Intent)
	assert.Equal(t, 0.8, rec.Confidence)
	assert.Equal(t, []string{"bonjour"}, rec.Queries)
}

func TestCorruptRecordStartsFresh(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(ctx, session.HistoryKey("s1"), []byte("not json"), time.Minute))

	agg := NewAggregator(store, "s1", logger.NewNopLogger())
	rec := agg.Get(ctx)
	require.NotNil(t, rec)
	assert.Empty(t, rec.Queries)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	agg := NewAggregator(store, "s1", logger.NewNopLogger())

	require.True(t, agg.AppendQuery(ctx, "bonjour"))
	require.NoError(t, agg.Delete(ctx))

	_, err := store.Load(ctx, session.HistoryKey("s1"))
	assert.ErrorIs(t, err, session.ErrNotFound)
}
