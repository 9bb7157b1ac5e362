// Package cache stores downloaded reference-catalog payloads so repeated
// runs do not hit the remote source.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with per-entry TTL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a source URL.
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "exorank:v1:" + hex.EncodeToString(sum[:])
}
