// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package models

import (
	"sync"
	"time"
)

// SyncState describes where a locally held entity stands relative to the
// remote store.
type SyncState string

const (
	// StateSynced means the entity matches the last confirmed server copy.
	StateSynced SyncState = "synced"

	// StatePendingCreate means the entity was created locally and has not
	// yet been confirmed by the server. Such entities always carry a
	// temporary ID.
	StatePendingCreate SyncState = "pending_create"

	// StatePendingUpdate means a local mutation of a server-confirmed
	// entity has not yet been acknowledged by the server.
	StatePendingUpdate SyncState = "pending_update"

	// StatePendingDelete means a local deletion is awaiting server
	// acknowledgement. The entity is already gone from list views.
	StatePendingDelete SyncState = "pending_delete"
)

// Collection identifies one of the synchronized entity collections. The value
// doubles as the path segment of the remote /entities/{collection} endpoints.
type Collection string

const (
	CollectionDietRecords     Collection = "diet-records"
	CollectionCustomFoods     Collection = "custom-foods"
	CollectionWeightRecords   Collection = "weight-records"
	CollectionExerciseRecords Collection = "exercise-records"
	CollectionFavorites       Collection = "favorites"
)

// SnapshotKey returns the persistent-cache key under which the collection's
// full snapshot is stored.
func (c Collection) SnapshotKey() string {
	return "entities:" + string(c)
}

// tempIDFloor separates device-generated temporary IDs from server-assigned
// ones. Server IDs are small sequence values; temporary IDs are derived from
// Unix milliseconds and therefore always sit above the floor.
const tempIDFloor int64 = 1_000_000_000_000

// IsTempID reports whether id was generated locally and is still awaiting a
// server identity.
func IsTempID(id int64) bool {
	return id >= tempIDFloor
}

// TempIDGenerator issues device-local temporary IDs. IDs are strictly
// monotonic even when two entities are created within the same millisecond.
type TempIDGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns the next temporary ID.
func (g *TempIDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
