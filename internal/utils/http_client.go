// Package utils provides small helper utilities shared across the client:
// HTTP client construction, JWT claim parsing and idempotency-key generation.
package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client. It embeds *resty.Client to expose all of its
// methods directly while allowing extension with application-specific
// behavior.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient with a default-configured underlying
// resty.Client. Each call returns an independent instance with its own
// configuration, connection pool, and state.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
