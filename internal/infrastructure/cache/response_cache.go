// Package cache holds the in-memory response cache used by the HTTP layer.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	Status      int
	ContentType string
	Content     []byte
	Expiration  time.Time
}

// ResponseCache stores rendered responses by key until they expire
type ResponseCache struct {
	mu    sync.RWMutex
	items map[string]entry
	gen   uint64 // bumped by every purge
	now   func() time.Time
}

// NewResponseCache creates an empty cache
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// Get returns a live entry for key
func (c *ResponseCache) Get(key string) (status int, contentType string, content []byte, ok bool) {
	c.mu.RLock()
	e, found := c.items[key]
	c.mu.RUnlock()

	if !found || !e.Expiration.After(c.now()) {
		return 0, "", nil, false
	}
	return e.Status, e.ContentType, e.Content, true
}

// Set stores content under key for ttl
func (c *ResponseCache) Set(key string, status int, contentType string, content []byte, ttl time.Duration) {
	c.mu.Lock()
	c.items[key] = entry{
		Status:      status,
		ContentType: contentType,
		Content:     content,
		Expiration:  c.now().Add(ttl),
	}
	c.mu.Unlock()
}

// Generation identifies the purge epoch. Pass it to SetIfUnchanged so a
// response rendered before a purge is not stored after it.
func (c *ResponseCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfUnchanged stores content only if no purge ran since gen was read
func (c *ResponseCache) SetIfUnchanged(key string, status int, contentType string, content []byte, ttl time.Duration, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return false
	}
	c.items[key] = entry{
		Status:      status,
		ContentType: contentType,
		Content:     content,
		Expiration:  c.now().Add(ttl),
	}
	return true
}

// Purge drops every entry
func (c *ResponseCache) Purge() {
	c.mu.Lock()
	c.items = make(map[string]entry)
	c.gen++
	c.mu.Unlock()
}

// PurgePrefix drops entries whose key starts with prefix
func (c *ResponseCache) PurgePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Len returns the number of stored entries, expired ones included
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats summarises the cache for the health endpoint
func (c *ResponseCache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	expired := 0
	size := 0
	for _, e := range c.items {
		size += len(e.Content)
		if !e.Expiration.After(now) {
			expired++
		}
	}
	return map[string]interface{}{
		"total_items":   len(c.items),
		"expired_items": expired,
		"total_bytes":   size,
	}
}

// CleanExpired removes expired entries
func (c *ResponseCache) CleanExpired() {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.items {
		if !e.Expiration.After(now) {
			delete(c.items, key)
		}
	}
}

// StartJanitor cleans expired entries every interval until ctx is done
func (c *ResponseCache) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.CleanExpired()
			}
		}
	}()
}
