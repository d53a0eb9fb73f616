package store

import (
	"context"
	"fmt"

	"github.com/nutrikeeper/go-diet-keeper/internal/config"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

// ClientStorages groups the persistent cache and the per-collection entity
// mirrors into a single value that can be passed around the service layer.
type ClientStorages struct {
	// Cache is the durable key/value storage shared by every mirror plus
	// the catalog and recency persistence.
	Cache PersistentCache

	DietRecords     *EntityStore[*models.DietRecord]
	CustomFoods     *EntityStore[*models.CustomFood]
	WeightRecords   *EntityStore[*models.WeightRecord]
	ExerciseRecords *EntityStore[*models.ExerciseRecord]
	Favorites       *EntityStore[*models.Favorite]
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the cache file specified in cfg.DB.DSN,
//     creating the file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs the persistent cache and loads each collection's snapshot
//     into its [EntityStore].
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	cache := NewPersistentCache(db, log)
	return NewClientStoragesWithCache(ctx, cache, log), nil
}

// NewClientStoragesWithCache builds the entity mirrors on top of an existing
// cache. Used directly by tests with [MemoryCache].
func NewClientStoragesWithCache(ctx context.Context, cache PersistentCache, log *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Cache:           cache,
		DietRecords:     NewEntityStore[*models.DietRecord](ctx, models.CollectionDietRecords, cache, log),
		CustomFoods:     NewEntityStore[*models.CustomFood](ctx, models.CollectionCustomFoods, cache, log),
		WeightRecords:   NewEntityStore[*models.WeightRecord](ctx, models.CollectionWeightRecords, cache, log),
		ExerciseRecords: NewEntityStore[*models.ExerciseRecord](ctx, models.CollectionExerciseRecords, cache, log),
		Favorites:       NewEntityStore[*models.Favorite](ctx, models.CollectionFavorites, cache, log),
	}
}
