package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
)

type sqliteCache struct {
	*DB
	logger *logger.Logger
}

// NewPersistentCache returns a [PersistentCache] backed by the SQLite cache
// table managed by the migrations package.
func NewPersistentCache(db *DB, logger *logger.Logger) PersistentCache {
	return &sqliteCache{
		DB:     db,
		logger: logger,
	}
}

func (c *sqliteCache) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("value").
		From("cache").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cache get query: %w", err)
	}

	var value []byte
	row := c.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCacheMiss
		}
		log.Err(err).
			Str("func", "sqliteCache.Get").
			Str("key", key).
			Msg("failed to scan cache row")
		return nil, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	return value, nil
}

func (c *sqliteCache) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Insert("cache").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cache set query: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteCache.Set").
			Str("key", key).
			Msg("failed to execute upsert for cache key")
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}

	return nil
}

func (c *sqliteCache) Remove(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete("cache").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build cache remove query: %w", err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "sqliteCache.Remove").
			Str("key", key).
			Msg("failed to execute delete for cache key")
		return fmt.Errorf("failed to remove cache key %s: %w", key, err)
	}

	return nil
}
