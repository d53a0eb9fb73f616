// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/store"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

const (
	recencyCacheKey = "recency:foods"

	// recencyLimit bounds the recently-used list; touching a new food evicts
	// the oldest entry.
	recencyLimit = 20
)

// RecencyService maintains the bounded most-recently-used food list. Entries
// are references, not copies: they are resolved against the catalog and the
// custom-food mirror at display time, so edits and deletions are always
// reflected. The list is ordered most recent first and persisted on every
// mutation.
type RecencyService struct {
	cache       store.PersistentCache
	catalog     *CatalogService
	customFoods *SyncService[models.CustomFood, *models.CustomFood]
	clock       Clock
	logger      *logger.Logger

	mu      sync.Mutex
	loaded  bool
	entries []models.RecencyEntry
}

func NewRecencyService(cache store.PersistentCache, catalog *CatalogService, customFoods *SyncService[models.CustomFood, *models.CustomFood], clock Clock, log *logger.Logger) *RecencyService {
	return &RecencyService{
		cache:       cache,
		catalog:     catalog,
		customFoods: customFoods,
		clock:       clock,
		logger:      log,
	}
}

// Touch records that the food identified by (kind, refID) was just used,
// moving it to the front of the list. The list never exceeds its bound; the
// least recently used entry is evicted.
func (r *RecencyService) Touch(ctx context.Context, kind models.RecencyKind, refID int64) error {
	if refID == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked(ctx)

	kept := make([]models.RecencyEntry, 0, len(r.entries)+1)
	kept = append(kept, models.RecencyEntry{
		Kind:      kind,
		RefID:     refID,
		TouchedAt: r.clock.Now().UnixMilli(),
	})
	for _, e := range r.entries {
		if e.Kind == kind && e.RefID == refID {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > recencyLimit {
		kept = kept[:recencyLimit]
	}
	r.entries = kept

	return r.persistLocked(ctx)
}

// Items resolves the list for display, most recent first, returning at most
// max items. A max of zero or less serves the whole bounded list. Entries
// whose food no longer exists are skipped and do not count against max.
func (r *RecencyService) Items(ctx context.Context, max int) []models.RecencyItem {
	r.mu.Lock()
	r.loadLocked(ctx)
	entries := make([]models.RecencyEntry, len(r.entries))
	copy(entries, r.entries)
	r.mu.Unlock()

	if max <= 0 || max > recencyLimit {
		max = recencyLimit
	}

	items := make([]models.RecencyItem, 0, len(entries))
	for _, e := range entries {
		if len(items) == max {
			break
		}
		switch e.Kind {
		case models.RecencyStandard:
			food, ok, err := r.catalog.FindByID(ctx, e.RefID)
			if err != nil || !ok {
				continue
			}
			items = append(items, models.RecencyItem{
				Kind:       e.Kind,
				RefID:      e.RefID,
				FoodName:   food.FoodName,
				EnergyKcal: food.EnergyKcal,
			})
		case models.RecencyCustom:
			food, ok := r.customFoods.Get(e.RefID)
			if !ok {
				continue
			}
			items = append(items, models.RecencyItem{
				Kind:       e.Kind,
				RefID:      e.RefID,
				FoodName:   food.FoodName,
				EnergyKcal: food.EnergyKcal,
			})
		}
	}

	return items
}

// RemapID rewrites entries referencing oldID after a temporary ID was
// exchanged for a server-assigned one.
func (r *RecencyService) RemapID(ctx context.Context, kind models.RecencyKind, oldID, newID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked(ctx)

	changed := false
	for i, e := range r.entries {
		if e.Kind == kind && e.RefID == oldID {
			r.entries[i].RefID = newID
			changed = true
		}
	}
	if !changed {
		return
	}

	if err := r.persistLocked(ctx); err != nil {
		r.logger.Warn().
			Str("func", "RecencyService.RemapID").
			Err(err).
			Msg("failed to persist remapped recency list")
	}
}

// loadLocked reads the persisted list once, migrating legacy full-copy
// entries to the reference-only shape and dropping unrecoverable ones.
func (r *RecencyService) loadLocked(ctx context.Context) {
	if r.loaded {
		return
	}
	r.loaded = true

	raw, err := r.cache.Get(ctx, recencyCacheKey)
	if err != nil {
		if !errors.Is(err, store.ErrCacheMiss) {
			r.logger.Warn().
				Str("func", "RecencyService.loadLocked").
				Err(err).
				Msg("failed to read recency list, starting empty")
		}
		return
	}

	var stored []models.RecencyEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		r.logger.Warn().
			Str("func", "RecencyService.loadLocked").
			Err(err).
			Msg("malformed recency list, starting empty")
		return
	}

	now := r.clock.Now().UnixMilli()
	migrated := 0
	entries := make([]models.RecencyEntry, 0, len(stored))
	for i, e := range stored {
		// synthetic timestamps preserve the stored order for legacy entries
		entry, ok := e.Migrate(now - int64(i))
		if !ok {
			continue
		}
		if entry != e {
			migrated++
		}
		entries = append(entries, entry)
	}
	if len(entries) > recencyLimit {
		entries = entries[:recencyLimit]
	}
	r.entries = entries

	if migrated > 0 {
		r.logger.Info().
			Str("func", "RecencyService.loadLocked").
			Int("migrated", migrated).
			Msg("migrated legacy recency entries")
		if err := r.persistLocked(ctx); err != nil {
			r.logger.Warn().
				Str("func", "RecencyService.loadLocked").
				Err(err).
				Msg("failed to persist migrated recency list")
		}
	}
}

func (r *RecencyService) persistLocked(ctx context.Context) error {
	payload, err := json.Marshal(r.entries)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, recencyCacheKey, payload)
}
