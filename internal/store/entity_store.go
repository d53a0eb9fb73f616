// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

// EntityStore is the in-memory mirror of one synchronized collection. Every
// mutation persists the full collection snapshot to the persistent cache, so
// the on-disk state after any operation is self-consistent. Collection sizes
// are bounded by a single user's personal history, which keeps snapshot
// writes cheap enough.
//
// The store is the sole writer of its snapshot key; coordinators and
// aggregators only go through its methods.
type EntityStore[T models.Syncable] struct {
	collection models.Collection
	cache      PersistentCache
	logger     *logger.Logger

	mu    sync.RWMutex
	items []T
}

// NewEntityStore creates the mirror for collection and loads its persisted
// snapshot. A missing or malformed snapshot starts the store empty; it never
// fails the load path.
func NewEntityStore[T models.Syncable](ctx context.Context, collection models.Collection, cache PersistentCache, log *logger.Logger) *EntityStore[T] {
	s := &EntityStore[T]{
		collection: collection,
		cache:      cache,
		logger:     log,
	}
	s.load(ctx)
	return s
}

// Collection returns the collection this store mirrors.
func (s *EntityStore[T]) Collection() models.Collection {
	return s.collection
}

func (s *EntityStore[T]) load(ctx context.Context) {
	raw, err := s.cache.Get(ctx, s.collection.SnapshotKey())
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn().
				Str("func", "EntityStore.load").
				Str("collection", string(s.collection)).
				Err(err).
				Msg("failed to read snapshot, starting empty")
		}
		return
	}

	var items []T
	if err = json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn().
			Str("func", "EntityStore.load").
			Str("collection", string(s.collection)).
			Err(err).
			Msg("malformed snapshot, starting empty")
		return
	}

	s.items = items
}

// List returns a copy of all entities in the collection.
func (s *EntityStore[T]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// FindByID returns the entity with the given id, if present.
func (s *EntityStore[T]) FindByID(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FilterByDate returns all entities whose primary date equals date. Both
// sides of the comparison are normalized, so any of the accepted date shapes
// selects the same records.
func (s *EntityStore[T]) FilterByDate(date string) []T {
	target := models.NormalizeDate(date)
	if target == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, item := range s.items {
		if item.Date() == target {
			out = append(out, item)
		}
	}
	return out
}

// Upsert replaces the entity with the same id, or appends it when absent,
// then persists the snapshot.
func (s *EntityStore[T]) Upsert(ctx context.Context, entity T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, item := range s.items {
		if item.EntityID() == entity.EntityID() {
			s.items[i] = entity
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, entity)
	}

	return s.persistLocked(ctx)
}

// Remove deletes the entity with the given id and persists the snapshot.
// Removing an absent id is a no-op.
func (s *EntityStore[T]) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	s.items = kept

	return s.persistLocked(ctx)
}

// ReplaceAll swaps the whole collection for entities, typically after an
// authoritative full pull. Entities without a usable date are dropped rather
// than stored — upstream data has historically contained such rows — and the
// number of dropped rows is returned for diagnostics.
func (s *EntityStore[T]) ReplaceAll(ctx context.Context, entities []T) (dropped int, err error) {
	valid := make([]T, 0, len(entities))
	for _, entity := range entities {
		if entity.Date() == "" {
			dropped++
			continue
		}
		valid = append(valid, entity)
	}

	if dropped > 0 {
		s.logger.Warn().
			Str("func", "EntityStore.ReplaceAll").
			Str("collection", string(s.collection)).
			Int("dropped", dropped).
			Msg("dropped entities without a record date")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = valid
	return dropped, s.persistLocked(ctx)
}

func (s *EntityStore[T]) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", s.collection, err)
	}

	if err = s.cache.Set(ctx, s.collection.SnapshotKey(), payload); err != nil {
		return fmt.Errorf("failed to persist %s snapshot: %w", s.collection, err)
	}

	return nil
}
