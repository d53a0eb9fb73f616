// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

// Package adapter provides transport-layer abstractions for communicating with
// the diet-keeper backend.
//
// The primary abstraction is [RemoteStore], which decouples the service layer
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNetworkUnavailable] for unreachable backends,
// [ErrValidationRejected] for definitive 4xx rejections).
package adapter

import (
	"context"
	"encoding/json"

	"github.com/nutrikeeper/go-diet-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic communication with the diet-keeper
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
//
// Entity payloads cross this boundary as raw JSON so that one implementation
// serves every synchronized collection; the sync layer owns the concrete
// entity types.
type RemoteStore interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// AccountID returns the account identifier extracted from the bearer
	// token's subject claim, or 0 when no token is set or the subject cannot
	// be parsed. Used for log correlation only; the backend authenticates
	// from the token itself.
	AccountID() int64

	// PullAll fetches the full authoritative contents of one collection.
	PullAll(ctx context.Context, collection models.Collection) ([]json.RawMessage, error)

	// Create persists a new entity and returns the server-side record,
	// including the id the backend assigned. An idempotency key is attached
	// so a retried create cannot duplicate the entity.
	Create(ctx context.Context, collection models.Collection, entity any) (json.RawMessage, error)

	// Update replaces the entity identified by id and returns the updated
	// server-side record.
	Update(ctx context.Context, collection models.Collection, id int64, entity any) (json.RawMessage, error)

	// Delete removes the entity identified by id. Deleting an id the backend
	// no longer knows returns [ErrNotFound] (wrapped).
	Delete(ctx context.Context, collection models.Collection, id int64) error

	// GetCatalog fetches the complete reference nutrition catalog.
	GetCatalog(ctx context.Context) ([]models.FoodItem, error)

	// SearchCatalog asks the backend for catalog entries matching query
	// and, when group is non-empty, restricted to that food group.
	SearchCatalog(ctx context.Context, query, group string) ([]models.FoodItem, error)

	// GetProfile fetches the account's body profile.
	GetProfile(ctx context.Context) (models.Profile, error)

	// UpdateProfile replaces the account's body profile and returns the
	// stored record.
	UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
}
