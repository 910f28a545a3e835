// Package cache provides an in-memory TTL cache with ETag support for the
// hot read endpoints. Warehouse data only changes when an ingestion run
// commits, so short TTLs are safe and cheap.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// TTLs per endpoint family. Leaderboards and game logs move only when a
// backfill commits; standings refresh on their own schedule.
const (
	TTLLeaders   = 5 * time.Minute
	TTLGameLog   = 5 * time.Minute
	TTLStandings = 10 * time.Minute
	TTLCounts    = 1 * time.Minute
)

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool
}

// New creates a cache. Pass enabled=false for a no-op cache; ETags are still
// computed so conditional requests keep working without storage.
func New(enabled bool) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
	}
}

// Get retrieves a cached value. Returns data, etag, and whether a live entry
// was found.
func (c *Cache) Get(key string) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Set stores a value with a TTL and returns its ETag.
func (c *Cache) Set(key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: time.Now().Add(ttl),
	}
	return etag
}

// Stats returns cache statistics for the health endpoint.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return map[string]interface{}{
		"enabled":      c.enabled,
		"total_keys":   len(c.entries),
		"active_keys":  active,
		"expired_keys": len(c.entries) - active,
	}
}

// Sweep periodically removes expired entries. Blocks until ctx is cancelled;
// intended to be called with `go`. Expired entries are already invisible to
// Get, the sweep just reclaims their memory.
func (c *Cache) Sweep(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if !c.enabled || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Cache sweeper started", "interval", interval)
	for {
		select {
		case <-ticker.C:
			if n := c.evict(); n > 0 {
				logger.Info("Cache sweep evicted entries", "count", n)
			}
		case <-ctx.Done():
			logger.Info("Cache sweeper stopped")
			return
		}
	}
}

func (c *Cache) evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	evicted := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if an If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	return ifNoneMatch == etag
}
