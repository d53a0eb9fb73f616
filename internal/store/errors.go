package store

import "errors"

// ErrCacheMiss is returned by [PersistentCache.Get] when no value exists
// under the requested key.
var ErrCacheMiss = errors.New("cache key not found")
