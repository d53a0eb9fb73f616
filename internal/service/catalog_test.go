package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nutrikeeper/go-diet-keeper/internal/adapter"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/mock"
	"github.com/nutrikeeper/go-diet-keeper/internal/store"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

var testCatalog = []models.FoodItem{
	{ID: 1, FoodName: "Apple", FoodGroup: "fruits", EnergyKcal: 52, ProteinG: 0.3, CarbohydrateG: 14},
	{ID: 2, FoodName: "Rice", FoodGroup: "grains", EnergyKcal: 130, ProteinG: 2.7, CarbohydrateG: 28},
	{ID: 3, FoodName: "Chicken breast", FoodGroup: "meat", EnergyKcal: 165, ProteinG: 31, FatG: 3.6},
}

func newTestCatalog(t *testing.T, ctrl *gomock.Controller, clock Clock) (*CatalogService, *mock.MockRemoteStore, store.PersistentCache) {
	t.Helper()

	remote := mock.NewMockRemoteStore(ctrl)
	cache := store.NewMemoryCache()
	svc := NewCatalogService(remote, cache, 24*time.Hour, clock, logger.Nop())
	return svc, remote, cache
}

func TestCatalogService_Items_FetchesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	// second read within the TTL must be served locally
	items, err = svc.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalogService_Items_PersistedCopySurvivesRestart(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, cache := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)
	_, err := svc.Items(ctx)
	require.NoError(t, err)

	// a fresh service over the same cache needs no network
	ctrl2 := gomock.NewController(t)
	remote2 := mock.NewMockRemoteStore(ctrl2)
	svc2 := NewCatalogService(remote2, cache, 24*time.Hour, fixedClock{now: testNow.Add(time.Hour)}, logger.Nop())

	items, err := svc2.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalogService_Items_ExpiredRefetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := store.NewMemoryCache()
	remote := mock.NewMockRemoteStore(ctrl)
	ctx := context.Background()

	svc := NewCatalogService(remote, cache, 24*time.Hour, fixedClock{now: testNow}, logger.Nop())
	remote.EXPECT().GetCatalog(ctx).Return(testCatalog[:1], nil)
	_, err := svc.Items(ctx)
	require.NoError(t, err)

	// 25h later the copy is expired and a fresh one is fetched
	later := NewCatalogService(remote, cache, 24*time.Hour, fixedClock{now: testNow.Add(25 * time.Hour)}, logger.Nop())
	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	items, err := later.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalogService_Items_StaleFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := store.NewMemoryCache()
	remote := mock.NewMockRemoteStore(ctrl)
	ctx := context.Background()

	svc := NewCatalogService(remote, cache, 24*time.Hour, fixedClock{now: testNow}, logger.Nop())
	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)
	_, err := svc.Items(ctx)
	require.NoError(t, err)

	// expired and unreachable: the stale copy still serves
	stale := NewCatalogService(remote, cache, 24*time.Hour, fixedClock{now: testNow.Add(48 * time.Hour)}, logger.Nop())
	remote.EXPECT().GetCatalog(ctx).Return(nil, adapter.ErrNetworkUnavailable)

	items, err := stale.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalogService_Items_NoCopyAtAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().GetCatalog(ctx).Return(nil, adapter.ErrNetworkUnavailable)

	_, err := svc.Items(ctx)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestCatalogService_Items_MalformedCacheRefetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, cache := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, catalogCacheKey, []byte(`{broken`)))
	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCatalogService_FindByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	item, ok, err := svc.FindByID(ctx, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Rice", item.FoodName)

	_, ok, err = svc.FindByID(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogService_FindByName_CaseInsensitive(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	item, ok, err := svc.FindByName(ctx, "  chicken BREAST ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 3, item.ID)
}

func TestCatalogService_Search_BackendFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().SearchCatalog(ctx, "rice", "").Return(testCatalog[1:2], nil)

	matches, err := svc.Search(ctx, "rice", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Rice", matches[0].FoodName)
}

func TestCatalogService_Search_GroupPassedToBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().SearchCatalog(ctx, "", "fruits").Return(testCatalog[:1], nil)

	matches, err := svc.Search(ctx, "", "fruits")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Apple", matches[0].FoodName)
}

func TestCatalogService_Search_LocalFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().SearchCatalog(ctx, "chicken", "").Return(nil, adapter.ErrNetworkUnavailable)
	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	matches, err := svc.Search(ctx, "chicken", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Chicken breast", matches[0].FoodName)
}

func TestCatalogService_Search_LocalFallbackByGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().SearchCatalog(ctx, "", "Grains").Return(nil, adapter.ErrNetworkUnavailable)
	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	// group match is case-insensitive and works without a keyword
	matches, err := svc.Search(ctx, "", "Grains")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Rice", matches[0].FoodName)
}

func TestCatalogService_Search_LocalFallbackKeywordAndGroup(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().SearchCatalog(ctx, "r", "fruits").Return(nil, adapter.ErrNetworkUnavailable)
	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil)

	// "r" alone matches Rice and Chicken breast too; the group narrows it
	matches, err := svc.Search(ctx, "r", "fruits")
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestCatalogService_Search_BothFacetsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestCatalog(t, ctrl, fixedClock{now: testNow})

	matches, err := svc.Search(context.Background(), "  ", "")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCatalogService_Invalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, remote, cache := newTestCatalog(t, ctrl, fixedClock{now: testNow})
	ctx := context.Background()

	remote.EXPECT().GetCatalog(ctx).Return(testCatalog, nil).Times(2)

	_, err := svc.Items(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(ctx))
	_, err = cache.Get(ctx, catalogCacheKey)
	assert.ErrorIs(t, err, store.ErrCacheMiss)

	// next read fetches again
	_, err = svc.Items(ctx)
	require.NoError(t, err)
}

func TestCatalogEnvelope_RoundTrip(t *testing.T) {
	env := catalogEnvelope{FetchedAt: testNow, Items: testCatalog}
	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var got catalogEnvelope
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, got.FetchedAt.Equal(testNow))
	assert.Len(t, got.Items, 3)
}
