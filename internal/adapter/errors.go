package adapter

import "errors"

var (
	// ErrNetworkUnavailable marks failures that say nothing about the
	// request's validity: transport errors, timeouts and 5xx responses.
	// Callers keep the affected entity pending and retry later.
	ErrNetworkUnavailable = errors.New("remote store unavailable")

	// ErrValidationRejected marks definitive 4xx rejections. Retrying the
	// same payload cannot succeed, so callers must surface the failure
	// instead of queueing it.
	ErrValidationRejected = errors.New("remote store rejected request")

	// ErrNotFound is returned when the backend does not know the requested
	// entity.
	ErrNotFound = errors.New("entity not found on remote store")

	// ErrUnauthorized is returned on HTTP 401. The token is invalid or
	// expired; retrying without a new token is pointless.
	ErrUnauthorized = errors.New("client unauthorized")
)
