// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

// Package service implements the client's domain logic on top of the local
// entity mirrors and the remote store adapter: optimistic synchronization of
// the five tracked collections, the reference nutrition catalog cache, daily
// aggregation, the bounded recently-used-foods list and the body profile.
//
// All operations are local-first: reads never touch the network, and writes
// land in the local mirror before the backend is attempted. Entities that
// could not be pushed stay queued in a pending state until ReconcileOffline
// flushes them.
package service

import (
	"context"
	"time"

	"github.com/nutrikeeper/go-diet-keeper/models"
)

// Reconciler is the collection-independent surface of a [SyncService], used
// by the background [SyncJob] to flush pending work and refresh mirrors
// without knowing the entity types.
type Reconciler interface {
	// Collection names the collection this reconciler serves.
	Collection() models.Collection

	// ReconcileOffline pushes every queued pending_create, pending_update and
	// pending_delete entity to the backend. Entities the backend cannot be
	// reached for stay queued; running it again when nothing is pending is a
	// no-op.
	ReconcileOffline(ctx context.Context) error

	// Refresh replaces the local mirror with the backend's authoritative
	// contents while preserving locally queued pending entities.
	Refresh(ctx context.Context) error
}

// SyncJob is a background worker that periodically reconciles pending
// entities and refreshes the local mirrors.
type SyncJob interface {
	// Start launches the background goroutine. It runs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()

	// RunOnce performs a single reconcile-and-refresh pass immediately,
	// typically at application startup.
	RunOnce(ctx context.Context)
}

// Clock abstracts time.Now so age- and TTL-dependent logic is testable.
type Clock interface {
	Now() time.Time
}
