package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/solsync/solaredge2state/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, "test", zap.NewNop()), mr
}

func testSite() domain.SiteContext {
	return domain.SiteContext{SiteID: "12345"}
}

func TestDeclareAndExists(t *testing.T) {

	store, _ := testStore(t)
	ctx := context.Background()

	ok, err := store.Exists(ctx, testSite(), domain.DP_CURRENT_POWER)
	require.NoError(t, err)
	assert.False(t, ok)

	def := domain.DataPointDefinition{
		Key:  domain.DP_CURRENT_POWER,
		Type: domain.VALUE_TYPE_NUMBER,
		Unit: "W",
		Role: "value.power",
	}
	require.NoError(t, store.Declare(ctx, testSite(), def))

	ok, err = store.Exists(ctx, testSite(), domain.DP_CURRENT_POWER)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedeclareKeepsStoredValue(t *testing.T) {

	store, mr := testStore(t)
	ctx := context.Background()

	def := domain.DataPointDefinition{Key: domain.DP_CURRENT_POWER, Type: domain.VALUE_TYPE_NUMBER}
	require.NoError(t, store.Declare(ctx, testSite(), def))

	changed, err := store.WriteIfChanged(ctx, testSite(), domain.DP_CURRENT_POWER, 3520.5, true)
	require.NoError(t, err)
	require.True(t, changed)

	// bulk re-declare must not alter or reset a stored value
	require.NoError(t, store.Declare(ctx, testSite(), def))

	raw, err := mr.Get("test:12345:val:" + domain.DP_CURRENT_POWER)
	require.NoError(t, err)
	assert.Equal(t, "3520.5", raw)
}

func TestWriteIfChangedSuppressesIdenticalValue(t *testing.T) {

	store, _ := testStore(t)
	ctx := context.Background()

	changed, err := store.WriteIfChanged(ctx, testSite(), domain.DP_FEED_TO_GRID, true, true)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = store.WriteIfChanged(ctx, testSite(), domain.DP_FEED_TO_GRID, true, true)
	require.NoError(t, err)
	assert.False(t, changed, "identical value must be suppressed")

	changed, err = store.WriteIfChanged(ctx, testSite(), domain.DP_FEED_TO_GRID, false, true)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestWriteIfChangedRejectsCommandWrites(t *testing.T) {

	store, _ := testStore(t)

	_, err := store.WriteIfChanged(context.Background(), testSite(), domain.DP_FEED_TO_GRID, true, false)
	require.Error(t, err)
}

func TestInstanceMetadataRoundtrip(t *testing.T) {

	store, _ := testStore(t)
	ctx := context.Background()

	meta, err := store.ReadInstanceMetadata(ctx, testSite())
	require.NoError(t, err)
	assert.Nil(t, meta, "no metadata written yet")

	lastRun := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.WriteInstanceMetadata(ctx, testSite(), domain.InstanceMetadata{
		Schedule: "42 */15 * * * *",
		LastRun:  lastRun,
	}))

	meta, err = store.ReadInstanceMetadata(ctx, testSite())
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "42 */15 * * * *", meta.Schedule)
	assert.True(t, meta.LastRun.Equal(lastRun))
}

func TestSiteNamespacing(t *testing.T) {

	store, _ := testStore(t)
	ctx := context.Background()

	siteA := domain.SiteContext{SiteID: "12345"}
	siteB := domain.SiteContext{SiteID: "67890"}

	def := domain.DataPointDefinition{Key: domain.DP_CURRENT_POWER, Type: domain.VALUE_TYPE_NUMBER}
	require.NoError(t, store.Declare(ctx, siteA, def))

	ok, err := store.Exists(ctx, siteB, domain.DP_CURRENT_POWER)
	require.NoError(t, err)
	assert.False(t, ok, "declarations are keyed per site")
}
