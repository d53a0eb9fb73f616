package service

import "errors"

var (
	// ErrCatalogUnavailable means the nutrition catalog could not be fetched
	// and no cached copy exists, not even a stale one.
	ErrCatalogUnavailable = errors.New("nutrition catalog unavailable")

	// ErrProfileUnavailable means the body profile could not be fetched and
	// nothing is cached locally.
	ErrProfileUnavailable = errors.New("profile unavailable")
)
