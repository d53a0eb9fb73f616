// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-diet-keeper Authors

package config

import (
	"fmt"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-diet-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the remote-store
	// credential and the reference-data cache lifetime.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local persistent cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds network settings for the remote-store HTTP client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background synchronization jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// AuthToken is the bearer credential attached to every remote-store
	// request. Token acquisition is outside the engine; this is the opaque
	// value an external supplier produced.
	// Env: APP_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// CatalogTTL is how long the cached food nutrition catalog stays fresh
	// before a refresh is attempted (e.g. "24h").
	// Env: APP_CATALOG_TTL
	CatalogTTL time.Duration `env:"CATALOG_TTL"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the local SQLite cache settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite cache file.
type DB struct {
	// DSN is the SQLite file path (e.g. "diet-keeper.db" or ":memory:").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds configuration for the remote-store HTTP client.
type Adapter struct {
	// BaseURL is the remote store's base URL (e.g. "http://localhost:3001").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the default timeout for outbound requests
	// (e.g. "15s"). Write paths fall back to local-only state when a
	// request exceeds it.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the background sync job reconciles
	// pending offline writes and refreshes collections (e.g. "5m").
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all sources.
func GetStructuredConfig() (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error building structured config: %w", err)
	}

	return cfg, nil
}
