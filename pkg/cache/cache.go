// Package cache memoizes generation results keyed by the request triple.
// The pipeline is cache-agnostic; callers opt in around the entry point.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores serialized generation results. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Close() error
}

// Key derives the cache key for a generation request. Structure is
// deterministic for a fixed triple, so the triple fully identifies a
// result shape.
func Key(description, trigger, complexity string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s", description, trigger, complexity))
	return "flowdraft:generate:" + hex.EncodeToString(sum[:])
}
