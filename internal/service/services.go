package service

import (
	"context"

	"github.com/nutrikeeper/go-diet-keeper/internal/adapter"
	"github.com/nutrikeeper/go-diet-keeper/internal/config"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/store"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

// Services bundles every domain service of the client.
type Services struct {
	DietRecords     *SyncService[models.DietRecord, *models.DietRecord]
	CustomFoods     *SyncService[models.CustomFood, *models.CustomFood]
	WeightRecords   *SyncService[models.WeightRecord, *models.WeightRecord]
	ExerciseRecords *SyncService[models.ExerciseRecord, *models.ExerciseRecord]
	Favorites       *SyncService[models.Favorite, *models.Favorite]

	Catalog     *CatalogService
	Profile     *ProfileService
	Recency     *RecencyService
	Aggregation *AggregationService
	SyncJob     SyncJob
}

// NewServices wires the domain services over the storage layer and the
// remote store adapter. All sync coordinators share one temp-ID generator so
// temporary identities never collide across collections. The custom-food
// coordinator's ID-change hook keeps the recency list pointing at the right
// food after reconciliation.
func NewServices(storages *store.ClientStorages, remote adapter.RemoteStore, appCfg config.ClientApp, log *logger.Logger) *Services {
	clock := SystemClock()
	tempIDs := &models.TempIDGenerator{}

	dietSvc := NewSyncService(storages.DietRecords, remote, tempIDs, clock, log)
	customFoodSvc := NewSyncService(storages.CustomFoods, remote, tempIDs, clock, log)
	weightSvc := NewSyncService(storages.WeightRecords, remote, tempIDs, clock, log)
	exerciseSvc := NewSyncService(storages.ExerciseRecords, remote, tempIDs, clock, log)
	favoriteSvc := NewSyncService(storages.Favorites, remote, tempIDs, clock, log)

	catalogSvc := NewCatalogService(remote, storages.Cache, appCfg.CatalogTTL, clock, log)
	profileSvc := NewProfileService(remote, storages.Cache, log)
	recencySvc := NewRecencyService(storages.Cache, catalogSvc, customFoodSvc, clock, log)
	aggregationSvc := NewAggregationService(dietSvc, exerciseSvc, customFoodSvc, catalogSvc, profileSvc, clock, log)

	customFoodSvc.OnIDChange(func(ctx context.Context, oldID, newID int64) {
		recencySvc.RemapID(ctx, models.RecencyCustom, oldID, newID)
	})

	return &Services{
		DietRecords:     dietSvc,
		CustomFoods:     customFoodSvc,
		WeightRecords:   weightSvc,
		ExerciseRecords: exerciseSvc,
		Favorites:       favoriteSvc,

		Catalog:     catalogSvc,
		Profile:     profileSvc,
		Recency:     recencySvc,
		Aggregation: aggregationSvc,
		SyncJob:     NewSyncJob(log, dietSvc, customFoodSvc, weightSvc, exerciseSvc, favoriteSvc),
	}
}
