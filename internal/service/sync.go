// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nutrikeeper/go-diet-keeper/internal/adapter"
	"github.com/nutrikeeper/go-diet-keeper/internal/logger"
	"github.com/nutrikeeper/go-diet-keeper/internal/store"
	"github.com/nutrikeeper/go-diet-keeper/models"
)

// syncablePtr constrains PT to "pointer to T that satisfies models.Syncable",
// which lets the coordinator allocate fresh entities when decoding backend
// responses.
type syncablePtr[T any] interface {
	*T
	models.Syncable
}

// SyncService coordinates one collection between its local mirror and the
// remote store. Writes are optimistic: the local mirror is mutated first and
// the backend is attempted in the same call. When the backend is unreachable
// the entity stays queued in a pending state and [SyncService.ReconcileOffline]
// retries it later; when the backend definitively rejects the payload the
// local mutation is rolled back and the error surfaced.
type SyncService[T any, PT syncablePtr[T]] struct {
	store   *store.EntityStore[PT]
	remote  adapter.RemoteStore
	tempIDs *models.TempIDGenerator
	clock   Clock
	logger  *logger.Logger

	// onIDChange is invoked after a temporary ID has been exchanged for a
	// server-assigned one, so dependents holding the old ID can remap.
	onIDChange func(ctx context.Context, oldID, newID int64)
}

// NewSyncService creates the coordinator for the collection mirrored by
// entityStore. The type parameters are inferred from the store argument.
func NewSyncService[T any, PT syncablePtr[T]](entityStore *store.EntityStore[PT], remote adapter.RemoteStore, tempIDs *models.TempIDGenerator, clock Clock, log *logger.Logger) *SyncService[T, PT] {
	return &SyncService[T, PT]{
		store:   entityStore,
		remote:  remote,
		tempIDs: tempIDs,
		clock:   clock,
		logger:  log,
	}
}

// OnIDChange registers fn to be called whenever a temporary ID is replaced by
// a server-assigned one. At most one hook is supported.
func (s *SyncService[T, PT]) OnIDChange(fn func(ctx context.Context, oldID, newID int64)) {
	s.onIDChange = fn
}

// Collection implements [Reconciler].
func (s *SyncService[T, PT]) Collection() models.Collection {
	return s.store.Collection()
}

// List returns every entity in the collection except queued deletions.
func (s *SyncService[T, PT]) List() []PT {
	return dropTombstones(s.store.List())
}

// ListByDate returns the entities for one calendar day, tombstones excluded.
// Any of the accepted date shapes selects the same day.
func (s *SyncService[T, PT]) ListByDate(date string) []PT {
	return dropTombstones(s.store.FilterByDate(date))
}

// Get returns the entity with the given id. Entities queued for deletion are
// reported as absent.
func (s *SyncService[T, PT]) Get(id int64) (PT, bool) {
	entity, ok := s.store.FindByID(id)
	if !ok || entity.State() == models.StatePendingDelete {
		var zero PT
		return zero, false
	}
	return entity, true
}

// Create inserts entity locally under a fresh temporary ID and attempts to
// push it to the backend in the same call.
//
// On backend success the temporary entity is replaced by the server record
// and any registered ID-change hook fires. If the backend is unreachable the
// entity stays queued as pending_create and Create returns nil. If the
// backend rejects the payload the local insert is rolled back and the
// rejection returned.
func (s *SyncService[T, PT]) Create(ctx context.Context, entity PT) error {
	entity.SetEntityID(s.tempIDs.Next())
	entity.SetState(models.StatePendingCreate)
	entity.Touch(s.timestamp())

	if err := s.store.Upsert(ctx, entity); err != nil {
		return fmt.Errorf("insert %s locally: %w", s.Collection(), err)
	}

	return s.pushCreate(ctx, entity)
}

// Update applies entity's new values locally and attempts to push them to the
// backend. An entity still awaiting its first create (temporary ID) keeps the
// pending_create state and is pushed as a create instead.
//
// If the backend rejects the update the previous local copy is restored and
// the rejection returned; an unreachable backend leaves the entity queued as
// pending_update and returns nil.
func (s *SyncService[T, PT]) Update(ctx context.Context, entity PT) error {
	stored, ok := s.store.FindByID(entity.EntityID())
	if !ok {
		return fmt.Errorf("update %s: entity %d not found locally", s.Collection(), entity.EntityID())
	}

	// FindByID hands out the live stored pointer, and callers routinely pass
	// back the entity they obtained from Get after editing it in place, so
	// the previous values must be copied out before anything is touched.
	prev, err := s.clone(stored)
	if err != nil {
		return fmt.Errorf("update %s: snapshot entity %d: %w", s.Collection(), entity.EntityID(), err)
	}

	entity.Touch(s.timestamp())

	if models.IsTempID(entity.EntityID()) {
		entity.SetState(models.StatePendingCreate)
		if err := s.store.Upsert(ctx, entity); err != nil {
			return fmt.Errorf("update %s locally: %w", s.Collection(), err)
		}
		return s.pushCreate(ctx, entity)
	}

	entity.SetState(models.StatePendingUpdate)
	if err := s.store.Upsert(ctx, entity); err != nil {
		return fmt.Errorf("update %s locally: %w", s.Collection(), err)
	}

	raw, err := s.remote.Update(ctx, s.Collection(), entity.EntityID(), entity)
	switch {
	case err == nil:
		return s.applyServerRecord(ctx, raw, entity.EntityID())
	case errors.Is(err, adapter.ErrNetworkUnavailable):
		s.logger.Debug().
			Str("func", "SyncService.Update").
			Str("collection", string(s.Collection())).
			Int64("id", entity.EntityID()).
			Msg("backend unreachable, update queued")
		return nil
	case errors.Is(err, adapter.ErrValidationRejected):
		if restoreErr := s.store.Upsert(ctx, prev); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	default:
		return err
	}
}

// Delete removes the entity locally and attempts the backend delete. The
// local removal is optimistic and is not rolled back on failure; if the
// backend is unreachable a pending_delete tombstone is kept so the delete
// can be replayed by ReconcileOffline. Deleting an unknown id, or an id the
// backend has already forgotten, is a no-op.
func (s *SyncService[T, PT]) Delete(ctx context.Context, id int64) error {
	entity, ok := s.store.FindByID(id)
	if !ok {
		return nil
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("delete %s locally: %w", s.Collection(), err)
	}

	// never confirmed by the server, nothing to delete remotely
	if models.IsTempID(id) {
		return nil
	}

	err := s.remote.Delete(ctx, s.Collection(), id)
	switch {
	case err == nil, errors.Is(err, adapter.ErrNotFound):
		return nil
	case errors.Is(err, adapter.ErrNetworkUnavailable):
		entity.SetState(models.StatePendingDelete)
		if tombErr := s.store.Upsert(ctx, entity); tombErr != nil {
			return errors.Join(err, tombErr)
		}
		s.logger.Debug().
			Str("func", "SyncService.Delete").
			Str("collection", string(s.Collection())).
			Int64("id", id).
			Msg("backend unreachable, delete queued")
		return nil
	default:
		return err
	}
}

// ReconcileOffline implements [Reconciler]. Entities whose push still fails
// with a network error stay queued silently; definitive rejections are
// resolved (created entities are dropped, updates give way to the server
// copy on the next refresh) and reported in the joined error.
func (s *SyncService[T, PT]) ReconcileOffline(ctx context.Context) error {
	var errs []error

	for _, entity := range s.store.List() {
		switch entity.State() {
		case models.StatePendingCreate:
			if err := s.pushCreate(ctx, entity); err != nil {
				if errors.Is(err, adapter.ErrValidationRejected) {
					s.logger.Warn().
						Str("func", "SyncService.ReconcileOffline").
						Str("collection", string(s.Collection())).
						Int64("id", entity.EntityID()).
						Err(err).
						Msg("queued create rejected, dropping entity")
				}
				errs = append(errs, err)
			}
		case models.StatePendingUpdate:
			if err := s.pushUpdate(ctx, entity); err != nil {
				errs = append(errs, err)
			}
		case models.StatePendingDelete:
			if err := s.pushDelete(ctx, entity); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

// Refresh implements [Reconciler]. It pulls the collection's authoritative
// contents and replaces the mirror with them, re-queueing local pending
// entities on top so unpushed work survives the pull. An unreachable backend
// leaves the mirror untouched.
func (s *SyncService[T, PT]) Refresh(ctx context.Context) error {
	rawItems, err := s.remote.PullAll(ctx, s.Collection())
	if err != nil {
		if errors.Is(err, adapter.ErrNetworkUnavailable) {
			s.logger.Debug().
				Str("func", "SyncService.Refresh").
				Str("collection", string(s.Collection())).
				Msg("backend unreachable, keeping local mirror")
			return nil
		}
		return err
	}

	pulled := make([]PT, 0, len(rawItems))
	for _, raw := range rawItems {
		item := PT(new(T))
		if err := json.Unmarshal(raw, item); err != nil {
			s.logger.Warn().
				Str("func", "SyncService.Refresh").
				Str("collection", string(s.Collection())).
				Err(err).
				Msg("skipping undecodable entity from pull")
			continue
		}
		pulled = append(pulled, item)
	}

	var pending []PT
	for _, entity := range s.store.List() {
		if entity.State() != models.StateSynced {
			pending = append(pending, entity)
		}
	}

	if _, err := s.store.ReplaceAll(ctx, pulled); err != nil {
		return err
	}

	// local pending copies win over the server rows they shadow until
	// reconciliation pushes them
	for _, entity := range pending {
		if err := s.store.Upsert(ctx, entity); err != nil {
			return err
		}
	}

	return nil
}

// pushCreate sends a queued pending_create entity to the backend and swaps
// the temporary identity for the server-assigned one. Network failures keep
// the entity queued and return nil; rejections drop the local entity and
// return the rejection.
func (s *SyncService[T, PT]) pushCreate(ctx context.Context, entity PT) error {
	tempID := entity.EntityID()

	raw, err := s.remote.Create(ctx, s.Collection(), entity)
	switch {
	case err == nil:
		// replace the temp row with the server record
		if err := s.store.Remove(ctx, tempID); err != nil {
			return err
		}
		if err := s.applyServerRecord(ctx, raw, tempID); err != nil {
			return err
		}
		return nil
	case errors.Is(err, adapter.ErrNetworkUnavailable):
		s.logger.Debug().
			Str("func", "SyncService.pushCreate").
			Str("collection", string(s.Collection())).
			Int64("id", tempID).
			Msg("backend unreachable, create queued")
		return nil
	case errors.Is(err, adapter.ErrValidationRejected):
		if removeErr := s.store.Remove(ctx, tempID); removeErr != nil {
			return errors.Join(err, removeErr)
		}
		return err
	default:
		return err
	}
}

func (s *SyncService[T, PT]) pushUpdate(ctx context.Context, entity PT) error {
	raw, err := s.remote.Update(ctx, s.Collection(), entity.EntityID(), entity)
	switch {
	case err == nil:
		return s.applyServerRecord(ctx, raw, entity.EntityID())
	case errors.Is(err, adapter.ErrNetworkUnavailable):
		return nil
	case errors.Is(err, adapter.ErrValidationRejected):
		// give up on the local edit, the next refresh restores the server copy
		entity.SetState(models.StateSynced)
		if upsertErr := s.store.Upsert(ctx, entity); upsertErr != nil {
			return errors.Join(err, upsertErr)
		}
		return err
	default:
		return err
	}
}

func (s *SyncService[T, PT]) pushDelete(ctx context.Context, entity PT) error {
	err := s.remote.Delete(ctx, s.Collection(), entity.EntityID())
	switch {
	case err == nil, errors.Is(err, adapter.ErrNotFound):
		return s.store.Remove(ctx, entity.EntityID())
	case errors.Is(err, adapter.ErrNetworkUnavailable):
		return nil
	default:
		return err
	}
}

// applyServerRecord decodes the backend's stored record, marks it synced and
// upserts it into the mirror. previousID is reported to the ID-change hook
// when the server assigned a different identity.
func (s *SyncService[T, PT]) applyServerRecord(ctx context.Context, raw json.RawMessage, previousID int64) error {
	stored := PT(new(T))
	if err := json.Unmarshal(raw, stored); err != nil {
		return fmt.Errorf("decode %s server record: %w", s.Collection(), err)
	}

	stored.SetState(models.StateSynced)
	if err := s.store.Upsert(ctx, stored); err != nil {
		return err
	}

	if previousID != stored.EntityID() && s.onIDChange != nil {
		s.onIDChange(ctx, previousID, stored.EntityID())
	}

	return nil
}

// clone deep-copies entity through its JSON form, decoupling the copy from
// the live pointer held by the mirror.
func (s *SyncService[T, PT]) clone(entity PT) (PT, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		var zero PT
		return zero, err
	}

	copied := PT(new(T))
	if err := json.Unmarshal(raw, copied); err != nil {
		var zero PT
		return zero, err
	}
	return copied, nil
}

func (s *SyncService[T, PT]) timestamp() string {
	return s.clock.Now().UTC().Format(time.RFC3339)
}

func dropTombstones[PT models.Syncable](items []PT) []PT {
	out := items[:0:0]
	for _, item := range items {
		if item.State() != models.StatePendingDelete {
			out = append(out, item)
		}
	}
	return out
}
