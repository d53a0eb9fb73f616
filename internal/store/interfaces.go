// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

// Package store implements the device-local persistence layer: a durable
// key/value cache backed by SQLite and, on top of it, one in-memory mirror
// per synchronized entity collection.
//
// The cache offers no transactional or multi-key guarantees. Every consumer
// treats a missing or malformed value as "absent" rather than failing, so a
// process interrupted mid-write degrades to an empty collection instead of a
// crash on the next start.
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/persistent_cache_mock.go -package=mock

// PersistentCache is durable key/value storage on the device. Pure storage,
// no interpretation of values.
type PersistentCache interface {
	// Get returns the value stored under key, or [ErrCacheMiss] when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the value stored under key. Removing an absent key is
	// not an error.
	Remove(ctx context.Context, key string) error
}
