package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Jeffy123-zhu/ai-green/internal/application"
	"github.com/Jeffy123-zhu/ai-green/internal/domain/entitydata"
)

// Stats snapshot of cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Fetches   int64 `json:"fetches"`
	Entries   int   `json:"entries"`
}

type entry struct {
	bundle    *entitydata.Bundle
	expiresAt time.Time
	lruEl     *list.Element
}

// BundleCache memoizes entity data bundles with a TTL. Expiry is checked
// lazily at read time; there is no background sweep. maxEntries == 0 leaves
// the cache unbounded, otherwise the least recently used entry is evicted
// on insert. Concurrent fetches for the same key are collapsed into one
// provider call via singleflight.
type BundleCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	lru     *list.List // front = most recently used

	ttl        time.Duration
	maxEntries int
	clock      application.Clock
	flight     singleflight.Group

	hits      int64
	misses    int64
	evictions int64
	fetches   int64
}

var _ entitydata.BundleCache = (*BundleCache)(nil)

func New(ttl time.Duration, maxEntries int, clock application.Clock) *BundleCache {
	if clock == nil {
		clock = application.SystemClock{}
	}
	return &BundleCache{
		entries:    make(map[string]*entry),
		lru:        list.New(),
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clock,
	}
}

// GetOrFetch returns the cached bundle for key when it is still fresh,
// otherwise runs fetch exactly once across concurrent callers, stores the
// result, and returns it.
func (c *BundleCache) GetOrFetch(ctx context.Context, key string, fetch entitydata.FetchFunc) (*entitydata.Bundle, error) {
	if b, ok := c.Get(key); ok {
		return b, nil
	}

	v, err, _ := c.flight.Do(key, func() (any, error) {
		// A racing caller may have stored the bundle while we queued.
		if b, ok := c.lookup(key); ok {
			return b, nil
		}
		atomic.AddInt64(&c.fetches, 1)
		b, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entitydata.Bundle), nil
}

// Get returns the bundle for key if present and not expired. Expired
// entries are removed on the spot.
func (c *BundleCache) Get(key string) (*entitydata.Bundle, bool) {
	b, ok := c.lookup(key)
	if ok {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	return b, ok
}

func (c *BundleCache) lookup(key string) (*entitydata.Bundle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.removeLocked(key, e)
		return nil, false
	}
	if e.lruEl != nil {
		c.lru.MoveToFront(e.lruEl)
	}
	return e.bundle, true
}

func (c *BundleCache) store(key string, b *entitydata.Bundle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.clock.Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		// Pointer swap keeps replacement atomic for readers.
		e.bundle = b
		e.expiresAt = expires
		if e.lruEl != nil {
			c.lru.MoveToFront(e.lruEl)
		}
		return
	}
	e := &entry{bundle: b, expiresAt: expires}
	e.lruEl = c.lru.PushFront(key)
	c.entries[key] = e
	c.evictIfNeeded()
}

func (c *BundleCache) evictIfNeeded() {
	if c.maxEntries <= 0 {
		return
	}
	for len(c.entries) > c.maxEntries {
		back := c.lru.Back()
		if back == nil {
			return
		}
		k := back.Value.(string)
		if e, ok := c.entries[k]; ok {
			c.removeLocked(k, e)
			atomic.AddInt64(&c.evictions, 1)
		} else {
			c.lru.Remove(back)
		}
	}
}

func (c *BundleCache) removeLocked(key string, e *entry) {
	delete(c.entries, key)
	if e.lruEl != nil {
		c.lru.Remove(e.lruEl)
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *BundleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry. Counters are kept.
func (c *BundleCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.lru.Init()
}

func (c *BundleCache) Stats() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Fetches:   atomic.LoadInt64(&c.fetches),
		Entries:   c.Len(),
	}
}
