// Package cache is a bounded in-memory content cache with TTL
// expiration. It is safe for concurrent use by multiple goroutines.
package cache

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/velalabs/vela/domain"
)

// Defaults applied when New is called with nonpositive sizes.
const (
	DefaultMaxSize    = 100
	DefaultTTL        = 5 * time.Minute
	DefaultEvictBatch = 10
)

type entry struct {
	item      domain.ContentItem
	expiresAt time.Time
}

// Cache stores content items by ID with a per-entry expiry and a hard
// size bound. When an insert would grow the cache past the bound, the
// entries closest to expiry are evicted in one batch.
type Cache struct {
	mutex      sync.RWMutex
	index      map[string]entry
	maxSize    int
	defaultTTL time.Duration
	evictBatch int
	logger     *slog.Logger

	now func() time.Time
}

// New returns an empty cache. Nonpositive maxSize, defaultTTL or
// evictBatch fall back to the package defaults.
func New(maxSize int, defaultTTL time.Duration, evictBatch int, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if evictBatch <= 0 {
		evictBatch = DefaultEvictBatch
	}
	if evictBatch > maxSize {
		evictBatch = maxSize
	}
	return &Cache{
		index:      make(map[string]entry),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		evictBatch: evictBatch,
		logger:     logger,
		now:        time.Now,
	}
}

// Put stores an item under its ID, overwriting any existing entry.
// A nonpositive ttl uses the cache's default.
func (c *Cache) Put(item domain.ContentItem, ttl time.Duration) {
	if item.ID == "" {
		return
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	expiresAt := c.now().Add(ttl)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.index[item.ID]; !exists && len(c.index) >= c.maxSize {
		evicted := c.evictOldestLocked(c.evictBatch)
		c.logger.Debug("content cache full, evicted oldest batch", "evicted", evicted, "max_size", c.maxSize)
	}
	c.index[item.ID] = entry{item: item, expiresAt: expiresAt}
}

// Get returns the item for the given ID. An expired entry is removed
// on access and reported as a miss.
func (c *Cache) Get(id string) (domain.ContentItem, bool) {
	now := c.now()

	c.mutex.RLock()
	e, ok := c.index[id]
	c.mutex.RUnlock()

	if !ok {
		return domain.ContentItem{}, false
	}

	if !e.expiresAt.After(now) {
		c.mutex.Lock()
		if e2, ok2 := c.index[id]; ok2 && e2.expiresAt.Equal(e.expiresAt) {
			delete(c.index, id)
		}
		c.mutex.Unlock()

		c.logger.Debug("content cache entry expired", "id", id)
		return domain.ContentItem{}, false
	}

	return e.item, true
}

// Evict removes the entry for the given ID, reporting whether it existed.
func (c *Cache) Evict(id string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, exists := c.index[id]
	delete(c.index, id)
	return exists
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.index = make(map[string]entry)
}

// Len returns the number of entries currently stored, expired or not.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.index)
}

// Items returns every unexpired item, sorted by ID. Expired entries are
// skipped but left in place for Get or Sweep to collect.
func (c *Cache) Items() []domain.ContentItem {
	now := c.now()

	c.mutex.RLock()
	defer c.mutex.RUnlock()

	ids := make([]string, 0, len(c.index))
	for id, e := range c.index {
		if !e.expiresAt.After(now) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]domain.ContentItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, c.index[id].item)
	}
	return items
}

// Sweep removes every expired entry and returns how many were removed.
func (c *Cache) Sweep() int {
	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for id, e := range c.index {
		if !e.expiresAt.After(now) {
			delete(c.index, id)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("content cache sweep", "removed", removed, "remaining", len(c.index))
	}
	return removed
}

// evictOldestLocked removes the n entries closest to expiry. Caller
// must hold the write lock.
func (c *Cache) evictOldestLocked(n int) int {
	type aged struct {
		id        string
		expiresAt time.Time
	}
	all := make([]aged, 0, len(c.index))
	for id, e := range c.index {
		all = append(all, aged{id: id, expiresAt: e.expiresAt})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].expiresAt.Equal(all[j].expiresAt) {
			return all[i].id < all[j].id
		}
		return all[i].expiresAt.Before(all[j].expiresAt)
	})
	if n > len(all) {
		n = len(all)
	}
	for _, a := range all[:n] {
		delete(c.index, a.id)
	}
	return n
}
