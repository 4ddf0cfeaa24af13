package enrich

import (
	"strings"
	"time"
)

// DefaultTTL is how long a cached lookup stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache holds band lookups keyed by normalized name with a TTL. The exported
// fields make it JSON-serializable so it survives across runs.
type Cache struct {
	Entries  map[string]Info      `json:"entries"`
	CachedAt map[string]time.Time `json:"cached_at"`
	TTL      time.Duration        `json:"-"`
}

// NewCache creates an empty cache. A non-positive ttl selects DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		Entries:  make(map[string]Info),
		CachedAt: make(map[string]time.Time),
		TTL:      ttl,
	}
}

func cacheKey(band string) string {
	return strings.ToLower(strings.TrimSpace(band))
}

// Get returns the cached info for a band, or nil when absent or expired.
// Expired entries are evicted on access.
func (c *Cache) Get(band string) *Info {
	key := cacheKey(band)
	info, ok := c.Entries[key]
	if !ok {
		return nil
	}
	at, hasTime := c.CachedAt[key]
	if !hasTime || time.Since(at) > c.TTL {
		delete(c.Entries, key)
		delete(c.CachedAt, key)
		return nil
	}
	return &info
}

// Set stores the info for a band.
func (c *Cache) Set(band string, info Info) {
	key := cacheKey(band)
	c.Entries[key] = info
	c.CachedAt[key] = time.Now()
}

// CleanExpired drops expired entries and returns how many were removed.
func (c *Cache) CleanExpired() int {
	removed := 0
	now := time.Now()
	for key, at := range c.CachedAt {
		if now.Sub(at) > c.TTL {
			delete(c.Entries, key)
			delete(c.CachedAt, key)
			removed++
		}
	}
	return removed
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	return len(c.Entries)
}
