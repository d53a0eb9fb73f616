// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

// Package models defines the domain entities mirrored by the local-first
// engine: diet records, custom foods, weight and exercise records,
// favorites, the food nutrition catalog, the recency list, and the user
// profile.
//
// Every mutable entity embeds [SyncMeta] and therefore satisfies [Syncable],
// which is the contract the generic local store and the sync coordinator
// operate on. Identity is an int64 that is either a server-assigned ID or a
// device-generated temporary ID (see [IsTempID]).
package models

// Syncable is implemented by every entity that participates in
// local-first synchronization.
type Syncable interface {
	// EntityID returns the entity's current identity, which may be a
	// temporary device-generated ID until the first successful sync.
	EntityID() int64

	// SetEntityID replaces the identity, typically during reconciliation of
	// a temporary ID with a server-assigned one.
	SetEntityID(id int64)

	// State returns the entity's synchronization state.
	State() SyncState

	// SetState moves the entity to the given synchronization state.
	SetState(s SyncState)

	// Date returns the entity's primary date normalized to YYYY-MM-DD, or
	// "" when the entity carries no usable date. Entities with an empty
	// date are dropped during bulk replacement.
	Date() string

	// Touch records a local mutation at the given timestamp. CreatedAt is
	// set only if still empty.
	Touch(ts string)
}

// SyncMeta carries the identity and sync bookkeeping shared by all
// synchronized entities. Embed it by value; its pointer methods promote onto
// the embedding entity's pointer type.
type SyncMeta struct {
	ID int64 `json:"id"`

	// SyncState is local bookkeeping only; the remote store ignores it.
	// An absent value unmarshals as "" and is treated as synced, which is
	// what a bulk pull produces.
	SyncState SyncState `json:"sync_state,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func (m *SyncMeta) EntityID() int64 { return m.ID }

func (m *SyncMeta) SetEntityID(id int64) { m.ID = id }

func (m *SyncMeta) State() SyncState {
	if m.SyncState == "" {
		return StateSynced
	}
	return m.SyncState
}

func (m *SyncMeta) SetState(s SyncState) { m.SyncState = s }

func (m *SyncMeta) Touch(ts string) {
	if m.CreatedAt == "" {
		m.CreatedAt = ts
	}
	m.UpdatedAt = ts
}
