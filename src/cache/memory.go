package cache

import (
	"container/list"
	"context"
	"sync"
	"time"

	"price-tracker/src/models"
)

// -----------------------------------------------------------------------------
// MemoryCache
// -----------------------------------------------------------------------------

// MemoryCache is an in-process TTL cache for price-history resolutions.
//
// Expiry is checked lazily on read. A full sweep of expired entries runs
// opportunistically when the entry count passes SweepThreshold, so memory is
// bounded-ish rather than strictly bounded; setting MaxEntries > 0 adds a
// hard LRU capacity on top.
type MemoryCache struct {
	TTL            time.Duration
	SweepThreshold int
	MaxEntries     int // 0 = unbounded

	mu      sync.RWMutex
	entries map[string]*list.Element
	lru     *list.List // Front = most recently used

	// Injectable clock for expiry tests
	now func() time.Time
}

type memoryEntry struct {
	key      string
	value    *models.MPriceHistoryResult
	storedAt time.Time
}

// -----------------------------------------------------------------------------

// NewMemoryCache creates a cache with the given TTL, sweep threshold and
// optional hard capacity.
func NewMemoryCache(ttl time.Duration, sweepThreshold, maxEntries int) *MemoryCache {
	if sweepThreshold <= 0 {
		sweepThreshold = 1000
	}

	return &MemoryCache{
		TTL:            ttl,
		SweepThreshold: sweepThreshold,
		MaxEntries:     maxEntries,
		entries:        make(map[string]*list.Element),
		lru:            list.New(),
		now:            time.Now,
	}
}

// -----------------------------------------------------------------------------

// Get returns the entry for key if it is younger than TTL. An expired entry
// counts as a miss but is left in place for the next sweep.
func (c *MemoryCache) Get(ctx context.Context, key string) (*models.MPriceHistoryResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}

	entry := elem.Value.(*memoryEntry)
	if c.now().Sub(entry.storedAt) > c.TTL {
		return nil, false, nil
	}

	c.lru.MoveToFront(elem)
	return entry.value, true, nil
}

// -----------------------------------------------------------------------------

// Set stores value under key, superseding any previous entry.
func (c *MemoryCache) Set(ctx context.Context, key string, value *models.MPriceHistoryResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.storedAt = c.now()
		c.lru.MoveToFront(elem)
		return nil
	}

	elem := c.lru.PushFront(&memoryEntry{key: key, value: value, storedAt: c.now()})
	c.entries[key] = elem

	// Hard capacity: evict least recently used
	if c.MaxEntries > 0 {
		for len(c.entries) > c.MaxEntries {
			c.removeElement(c.lru.Back())
		}
	}

	// Size-triggered housekeeping sweep
	if len(c.entries) > c.SweepThreshold {
		c.sweepLocked()
	}

	return nil
}

// -----------------------------------------------------------------------------

// sweepLocked removes every expired entry. Caller holds the write lock.
func (c *MemoryCache) sweepLocked() {
	cutoff := c.now().Add(-c.TTL)

	var expired []*list.Element
	for _, elem := range c.entries {
		if elem.Value.(*memoryEntry).storedAt.Before(cutoff) {
			expired = append(expired, elem)
		}
	}
	for _, elem := range expired {
		c.removeElement(elem)
	}
}

// -----------------------------------------------------------------------------

func (c *MemoryCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	entry := elem.Value.(*memoryEntry)
	delete(c.entries, entry.key)
	c.lru.Remove(elem)
}

// -----------------------------------------------------------------------------

// Flush drops every entry.
func (c *MemoryCache) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.lru.Init()
	return nil
}

// -----------------------------------------------------------------------------

// Entries reports the current entry count, expired entries included.
func (c *MemoryCache) Entries() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// -----------------------------------------------------------------------------

func (c *MemoryCache) Close() error {
	return c.Flush(context.Background())
}
