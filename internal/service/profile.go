package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nutrikeeper/go-diet-keeper/internal/adapter"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/store"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

const profileCacheKey = "profile"

// ProfileService keeps the account's body profile available offline. Reads
// prefer the backend and fall back to the cached copy; writes land in the
// cache even when the backend cannot be reached.
type ProfileService struct {
	remote adapter.RemoteStore
	cache  store.PersistentCache
	logger *logger.Logger
}

func NewProfileService(remote adapter.RemoteStore, cache store.PersistentCache, log *logger.Logger) *ProfileService {
	return &ProfileService{
		remote: remote,
		cache:  cache,
		logger: log,
	}
}

// Get returns the body profile. The backend copy wins when reachable and is
// re-cached; otherwise the cached copy serves. Returns
// [ErrProfileUnavailable] (wrapped) when neither exists.
func (p *ProfileService) Get(ctx context.Context) (models.Profile, error) {
	profile, err := p.remote.GetProfile(ctx)
	if err == nil {
		p.persist(ctx, profile)
		return profile, nil
	}
	if !errors.Is(err, adapter.ErrNetworkUnavailable) && !errors.Is(err, adapter.ErrNotFound) {
		return models.Profile{}, err
	}

	cached, ok := p.cached(ctx)
	if !ok {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrProfileUnavailable, err)
	}
	return cached, nil
}

// Local returns the cached body profile without touching the backend.
// Aggregates read through here so a summary never costs a round trip; the
// cache is refreshed by [ProfileService.Get] during sync and explicit
// profile actions. Returns [ErrProfileUnavailable] when nothing is cached.
func (p *ProfileService) Local(ctx context.Context) (models.Profile, error) {
	cached, ok := p.cached(ctx)
	if !ok {
		return models.Profile{}, ErrProfileUnavailable
	}
	return cached, nil
}

// Update pushes profile to the backend and caches the stored copy. When the
// backend is unreachable the local copy is cached anyway so the change
// survives offline; it is overwritten by the next successful Get.
func (p *ProfileService) Update(ctx context.Context, profile models.Profile) (models.Profile, error) {
	stored, err := p.remote.UpdateProfile(ctx, profile)
	if err == nil {
		p.persist(ctx, stored)
		return stored, nil
	}
	if errors.Is(err, adapter.ErrNetworkUnavailable) {
		p.logger.Debug().
			Str("func", "ProfileService.Update").
			Msg("backend unreachable, profile saved locally only")
		p.persist(ctx, profile)
		return profile, nil
	}

	return models.Profile{}, err
}

func (p *ProfileService) cached(ctx context.Context) (models.Profile, bool) {
	raw, err := p.cache.Get(ctx, profileCacheKey)
	if err != nil {
		return models.Profile{}, false
	}

	var profile models.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		p.logger.Warn().
			Str("func", "ProfileService.cached").
			Err(err).
			Msg("malformed cached profile, discarding")
		return models.Profile{}, false
	}
	return profile, true
}

func (p *ProfileService) persist(ctx context.Context, profile models.Profile) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, profileCacheKey, payload); err != nil {
		p.logger.Warn().
			Str("func", "ProfileService.persist").
			Err(err).
			Msg("failed to cache profile")
	}
}
