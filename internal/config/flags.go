package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a remote store base URL
//	-d local SQLite cache path
//	-c/-config json file path with configs
//	-token bearer credential for the remote store
//	-request-timeout request timeout (e.g., "15s", "1m")
//	-sync-interval background sync interval (e.g., "5m")
//	-catalog-ttl nutrition catalog cache lifetime (e.g., "24h")
func ParseFlags() *StructuredConfig {
	var baseURL string
	var cachePath string
	var jsonConfigPath string
	var authToken string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var catalogTTL time.Duration

	flag.StringVar(&baseURL, "a", "", "Remote store base URL")
	flag.StringVar(&cachePath, "d", "", "Local SQLite cache path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&authToken, "token", "", "Bearer credential for the remote store")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s, 1m)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.DurationVar(&catalogTTL, "catalog-ttl", 0, "Catalog cache lifetime (e.g., 24h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AuthToken:  authToken,
			CatalogTTL: catalogTTL,
		},
		Storage: Storage{
			DB: DB{
				DSN: cachePath,
			},
		},
		Adapter: Adapter{
			BaseURL:        baseURL,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
