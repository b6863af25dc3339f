// Package cache implements port.CachePort in process memory and in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/port"
)

const backendMemory = "memory"

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache keeps JSON-encoded values so callers never share mutable state
// through the cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string, out interface{}) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		cacheRequests.WithLabelValues(backendMemory, "miss").Inc()
		return false, nil
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && !c.now().Before(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		cacheRequests.WithLabelValues(backendMemory, "miss").Inc()
		return false, nil
	}

	if err := json.Unmarshal(entry.data, out); err != nil {
		cacheRequests.WithLabelValues(backendMemory, "error").Inc()
		return false, fmt.Errorf("decode cached %q: %w", key, err)
	}
	cacheRequests.WithLabelValues(backendMemory, "hit").Inc()
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q for cache: %w", key, err)
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Flush(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	cacheFlushes.WithLabelValues(backendMemory).Inc()
	return nil
}

// Sweep removes every expired entry and reports how many were dropped.
func (c *MemoryCache) Sweep() int {
	now := c.now()
	removed := 0

	c.mu.Lock()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	if removed > 0 {
		cacheEvictions.WithLabelValues(backendMemory).Add(float64(removed))
	}
	return removed
}

// Len counts stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweeper runs MemoryCache.Sweep on a fixed interval. It satisfies
// port.EventListenerPort so the app starts and stops it with the listeners.
type Sweeper struct {
	cache    *MemoryCache
	interval time.Duration
}

func NewSweeper(cache *MemoryCache, interval time.Duration) *Sweeper {
	return &Sweeper{cache: cache, interval: interval}
}

// Start blocks until ctx is cancelled. A non-positive interval disables sweeping.
func (s *Sweeper) Start(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "MemoryCacheSweeper"})
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if removed := s.cache.Sweep(); removed > 0 {
				logger.Debug("Expired cache entries swept", port.Fields{"removed": removed, "remaining": s.cache.Len()})
			}
		}
	}
}

func (s *Sweeper) Close() error {
	return nil
}
