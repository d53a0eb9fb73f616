package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

func newDietStore(t *testing.T, cache PersistentCache) *EntityStore[*models.DietRecord] {
	t.Helper()
	return NewEntityStore[*models.DietRecord](context.Background(), models.CollectionDietRecords, cache, logger.Nop())
}

func dietRecord(id int64, date string, state models.SyncState) *models.DietRecord {
	return &models.DietRecord{
		SyncMeta:   models.SyncMeta{ID: id, SyncState: state},
		RecordType: models.RecordTypeQuick,
		QuickName:  "snack",
		RecordDate: date,
	}
}

func TestEntityStore_UpsertAndList(t *testing.T) {
	cache := NewMemoryCache()
	s := newDietStore(t, cache)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dietRecord(1, "2026-08-27", models.StateSynced)))
	require.NoError(t, s.Upsert(ctx, dietRecord(2, "2026-08-27", models.StateSynced)))

	assert.Len(t, s.List(), 2)

	// same id replaces in place
	updated := dietRecord(1, "2026-08-26", models.StatePendingUpdate)
	require.NoError(t, s.Upsert(ctx, updated))

	got, ok := s.FindByID(1)
	require.True(t, ok)
	assert.Equal(t, "2026-08-26", got.RecordDate)
	assert.Equal(t, models.StatePendingUpdate, got.State())
	assert.Len(t, s.List(), 2)
}

func TestEntityStore_SnapshotSurvivesReload(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	s := newDietStore(t, cache)
	require.NoError(t, s.Upsert(ctx, dietRecord(7, "2026-08-25", models.StatePendingCreate)))

	// a fresh store over the same cache sees the persisted snapshot
	reloaded := newDietStore(t, cache)
	got, ok := reloaded.FindByID(7)
	require.True(t, ok)
	assert.Equal(t, models.StatePendingCreate, got.State())
	assert.Equal(t, "2026-08-25", got.Date())
}

func TestEntityStore_MalformedSnapshotStartsEmpty(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, models.CollectionDietRecords.SnapshotKey(), []byte(`{not json`)))

	s := newDietStore(t, cache)
	assert.Empty(t, s.List())

	// the store is still usable and overwrites the bad blob
	require.NoError(t, s.Upsert(ctx, dietRecord(1, "2026-08-27", models.StateSynced)))
	reloaded := newDietStore(t, cache)
	assert.Len(t, reloaded.List(), 1)
}

func TestEntityStore_Remove(t *testing.T) {
	cache := NewMemoryCache()
	s := newDietStore(t, cache)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dietRecord(1, "2026-08-27", models.StateSynced)))
	require.NoError(t, s.Remove(ctx, 1))
	assert.Empty(t, s.List())

	// removing an absent id is a no-op
	require.NoError(t, s.Remove(ctx, 42))
	assert.Empty(t, s.List())
}

func TestEntityStore_ReplaceAllDropsDatelessRows(t *testing.T) {
	cache := NewMemoryCache()
	s := newDietStore(t, cache)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dietRecord(99, "2026-01-01", models.StateSynced)))

	dropped, err := s.ReplaceAll(ctx, []*models.DietRecord{
		dietRecord(1, "2026-08-27", models.StateSynced),
		dietRecord(2, "", models.StateSynced),
		dietRecord(3, "2026-08-27T12:30:00", models.StateSynced),
		dietRecord(4, "not-a-date", models.StateSynced),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)

	items := s.List()
	require.Len(t, items, 2)
	_, ok := s.FindByID(99)
	assert.False(t, ok, "previous contents must be fully replaced")
}

func TestEntityStore_FilterByDate(t *testing.T) {
	cache := NewMemoryCache()
	s := newDietStore(t, cache)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dietRecord(1, "2026-08-27", models.StateSynced)))
	require.NoError(t, s.Upsert(ctx, dietRecord(2, "2026-08-27T09:00:00.000Z", models.StateSynced)))
	require.NoError(t, s.Upsert(ctx, dietRecord(3, "2026-08-26", models.StateSynced)))

	// both plain and timestamp-shaped query dates select the same day
	assert.Len(t, s.FilterByDate("2026-08-27"), 2)
	assert.Len(t, s.FilterByDate("2026-08-27T23:59:59"), 2)
	assert.Len(t, s.FilterByDate("2026-08-26"), 1)
	assert.Empty(t, s.FilterByDate("2026-08-25"))
	assert.Empty(t, s.FilterByDate("garbage"))
}

func TestEntityStore_ListReturnsCopy(t *testing.T) {
	cache := NewMemoryCache()
	s := newDietStore(t, cache)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, dietRecord(1, "2026-08-27", models.StateSynced)))

	list := s.List()
	list[0] = dietRecord(500, "2026-08-01", models.StateSynced)

	got, ok := s.FindByID(1)
	require.True(t, ok)
	assert.EqualValues(t, 1, got.EntityID())
}

func TestNewClientStoragesWithCache(t *testing.T) {
	cache := NewMemoryCache()
	storages := NewClientStoragesWithCache(context.Background(), cache, logger.Nop())

	require.NotNil(t, storages.Cache)
	assert.Equal(t, models.CollectionDietRecords, storages.DietRecords.Collection())
	assert.Equal(t, models.CollectionCustomFoods, storages.CustomFoods.Collection())
	assert.Equal(t, models.CollectionWeightRecords, storages.WeightRecords.Collection())
	assert.Equal(t, models.CollectionExerciseRecords, storages.ExerciseRecords.Collection())
	assert.Equal(t, models.CollectionFavorites, storages.Favorites.Collection())
}
