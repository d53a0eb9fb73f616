// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nutrikeeper/go-diet-keeper/internal/adapter"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/store"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

// catalogCacheKey is the persistent-cache key of the catalog envelope.
const catalogCacheKey = "reference:foods"

type catalogEnvelope struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Items     []models.FoodItem `json:"items"`
}

// CatalogService serves the server-owned food nutrition catalog through a
// TTL-bound persistent cache. Within the TTL every read is local; after the
// TTL the catalog is re-fetched, and if the backend is unreachable the stale
// copy keeps serving rather than failing lookups.
type CatalogService struct {
	remote adapter.RemoteStore
	cache  store.PersistentCache
	ttl    time.Duration
	clock  Clock
	logger *logger.Logger

	mu      sync.RWMutex
	loaded  bool
	fetched time.Time
	items   []models.FoodItem
	byID    map[int64]models.FoodItem
	byName  map[string]models.FoodItem
}

func NewCatalogService(remote adapter.RemoteStore, cache store.PersistentCache, ttl time.Duration, clock Clock, log *logger.Logger) *CatalogService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CatalogService{
		remote: remote,
		cache:  cache,
		ttl:    ttl,
		clock:  clock,
		logger: log,
	}
}

// Items returns the full catalog, fetching it from the backend only when the
// cached copy is missing or older than the TTL. Returns
// [ErrCatalogUnavailable] (wrapped) only when no copy exists at all.
func (c *CatalogService) Items(ctx context.Context) ([]models.FoodItem, error) {
	now := c.clock.Now()

	c.mu.RLock()
	if c.loaded && now.Sub(c.fetched) < c.ttl {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		c.loadEnvelopeLocked(ctx)
	}
	if c.loaded && now.Sub(c.fetched) < c.ttl {
		return c.items, nil
	}

	items, err := c.remote.GetCatalog(ctx)
	if err != nil {
		if c.loaded {
			// expired but better than nothing
			c.logger.Warn().
				Str("func", "CatalogService.Items").
				Err(err).
				Msg("catalog refresh failed, serving stale copy")
			return c.items, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	c.installLocked(items, now)
	c.persistLocked(ctx)

	return c.items, nil
}

// FindByID looks up one catalog item. A false return means the item is not
// in the catalog; the error is only non-nil when the catalog itself is
// unavailable.
func (c *CatalogService) FindByID(ctx context.Context, id int64) (models.FoodItem, bool, error) {
	if _, err := c.Items(ctx); err != nil {
		return models.FoodItem{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.byID[id]
	return item, ok, nil
}

// FindByName looks up one catalog item by its exact name, case-insensitively.
func (c *CatalogService) FindByName(ctx context.Context, name string) (models.FoodItem, bool, error) {
	if _, err := c.Items(ctx); err != nil {
		return models.FoodItem{}, false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return item, ok, nil
}

// Search asks the backend for catalog entries matching query, optionally
// restricted to one food group, and falls back to a local scan when the
// backend is unreachable. Either facet may be empty, not both.
func (c *CatalogService) Search(ctx context.Context, query, group string) ([]models.FoodItem, error) {
	query = strings.TrimSpace(query)
	group = strings.TrimSpace(group)
	if query == "" && group == "" {
		return nil, nil
	}

	matches, err := c.remote.SearchCatalog(ctx, query, group)
	if err == nil {
		return matches, nil
	}
	if !errors.Is(err, adapter.ErrNetworkUnavailable) {
		return nil, err
	}

	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	wantGroup := strings.ToLower(group)
	var local []models.FoodItem
	for _, item := range items {
		if needle != "" && !strings.Contains(strings.ToLower(item.FoodName), needle) {
			continue
		}
		if wantGroup != "" && strings.ToLower(item.FoodGroup) != wantGroup {
			continue
		}
		local = append(local, item)
	}
	return local, nil
}

// Invalidate discards the cached catalog so the next read fetches a fresh
// copy.
func (c *CatalogService) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.loaded = false
	c.items = nil
	c.byID = nil
	c.byName = nil
	c.mu.Unlock()

	return c.cache.Remove(ctx, catalogCacheKey)
}

func (c *CatalogService) loadEnvelopeLocked(ctx context.Context) {
	raw, err := c.cache.Get(ctx, catalogCacheKey)
	if err != nil {
		if !errors.Is(err, store.ErrCacheMiss) {
			c.logger.Warn().
				Str("func", "CatalogService.loadEnvelopeLocked").
				Err(err).
				Msg("failed to read catalog cache")
		}
		return
	}

	var env catalogEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn().
			Str("func", "CatalogService.loadEnvelopeLocked").
			Err(err).
			Msg("malformed catalog cache, discarding")
		return
	}

	c.installLocked(env.Items, env.FetchedAt)
}

func (c *CatalogService) installLocked(items []models.FoodItem, fetched time.Time) {
	c.items = items
	c.fetched = fetched
	c.loaded = true

	c.byID = make(map[int64]models.FoodItem, len(items))
	c.byName = make(map[string]models.FoodItem, len(items))
	for _, item := range items {
		c.byID[item.ID] = item
		c.byName[strings.ToLower(item.FoodName)] = item
	}
}

func (c *CatalogService) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(catalogEnvelope{FetchedAt: c.fetched, Items: c.items})
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, catalogCacheKey, payload); err != nil {
		c.logger.Warn().
			Str("func", "CatalogService.persistLocked").
			Err(err).
			Msg("failed to persist catalog cache")
	}
}
