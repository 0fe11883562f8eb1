// Package cache keeps recently fetched skip listings in memory, keyed by
// location, for a bounded freshness window.
package cache

import (
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/skipsel/internal/models"
)

const DefaultTTL = 5 * time.Minute

type entry struct {
	skips    []models.Skip
	storedAt time.Time
}

// Cache maps a location key to the last successful listing for it.
// Stale entries are ignored on read and only dropped by Clear.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds the case-insensitive cache key for a location. Values are
// query-escaped so no postcode/area pair can spell another pair's key.
func Key(p models.LocationParams) string {
	v := url.Values{}
	v.Set("postcode", strings.ToLower(p.Postcode))
	v.Set("area", strings.ToLower(p.Area))
	return "skips?" + v.Encode()
}

// Get returns the cached skips for key while the entry is younger than the TTL.
func (c *Cache) Get(key string) ([]models.Skip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return slices.Clone(e.skips), true
}

// Put stores a copy of skips under key, replacing any previous entry.
func (c *Cache) Put(key string, skips []models.Skip) {
	e := entry{
		skips:    slices.Clone(skips),
		storedAt: c.now(),
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len counts stored entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) TTL() time.Duration {
	return c.ttl
}
