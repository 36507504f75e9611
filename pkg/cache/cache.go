// Package cache provides response caching for the query surfaces. The memory
// backend is the default; Redis is available for multi-process deployments.
package cache

import (
	"context"
	"time"

	"github.com/moltbook/moltscope/pkg/utils"
	"go.uber.org/zap"
)

// Cache stores serialized responses under string keys with a per-entry TTL.
type Cache interface {
	// Get returns the cached bytes and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores bytes under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// Stats reports live entry count and keys.
	Stats(ctx context.Context) Stats
	// Clear drops every entry.
	Clear(ctx context.Context) error
}

// Stats is a point-in-time view of cache contents.
type Stats struct {
	Entries int      `json:"entries"`
	Keys    []string `json:"keys"`
}

// New selects a backend from CACHE_BACKEND ("memory" or "redis").
func New(ctx context.Context, logger *zap.Logger) (Cache, error) {
	backend := utils.Env("CACHE_BACKEND", "memory")
	switch backend {
	case "redis":
		return NewRedis(ctx, logger)
	default:
		return NewMemory(), nil
	}
}
