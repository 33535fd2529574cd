// Package pagecache keeps the most recently rendered pages of a document in
// regions of a shared pixring allocator.
//
// A viewer asks for a page by key (page number, zoom, crop...). On a hit
// the cached region is returned as is. On a miss the least recently used
// pages beyond the cache capacity are released, a region is allocated and
// the caller's render function fills it.
//
//	alloc, _ := pixring.New(screen)
//	pages := pagecache.New[PageKey](alloc, pagecache.DefaultCapacity)
//
//	r, err := pages.GetOrRender(key, w, h, func(r *pixring.Region) error {
//	    return doc.Render(key, r)
//	})
//
// Cache is safe for concurrent use when its allocator is (see
// pixring.SyncAllocator); with a plain pixring.Allocator all calls must come
// from one goroutine.
package pagecache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/pixring"
)

// DefaultCapacity is the number of rendered pages kept by default: the
// current page, one page of look-ahead and two recently visited pages.
const DefaultCapacity = 4

// Allocator hands out pixel regions. Both *pixring.Allocator and
// *pixring.SyncAllocator satisfy it.
type Allocator interface {
	Allocate(width, height int) (*pixring.Region, error)
}

// RenderFunc draws a page into r. r has the granted size, which may be
// smaller than requested; its previous contents are unspecified.
type RenderFunc func(r *pixring.Region) error

// Cache is an LRU cache of rendered pages keyed by K.
type Cache[K comparable] struct {
	mu       sync.Mutex
	alloc    Allocator
	capacity int
	entries  map[K]*entry[K]
	lru      lruList[K]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// entry is one cached page.
type entry[K comparable] struct {
	region    *pixring.Region
	requested pixring.Size // size asked for, before clamping
	valid     bool
	node      *lruNode[K]
}

// New creates a page cache on top of alloc.
// If capacity <= 0, DefaultCapacity is used.
func New[K comparable](alloc Allocator, capacity int) *Cache[K] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K]{
		alloc:    alloc,
		capacity: capacity,
		entries:  make(map[K]*entry[K], capacity),
	}
}

// Get returns the cached region for key if it is present and valid.
// A hit marks the page as most recently used.
func (c *Cache[K]) Get(key K) (*pixring.Region, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.valid {
		c.misses.Add(1)
		return nil, false
	}
	c.lru.MoveToFront(e.node)
	c.hits.Add(1)
	return e.region, true
}

// GetOrRender returns the cached page for key, rendering it on a miss.
//
// A stale page (see Invalidate) is rendered again into its existing region
// when the requested size is unchanged. Otherwise a new region is
// allocated. If the allocator runs out of space, older pages are evicted
// one at a time and the allocation retried until the cache is empty.
//
// Non-positive sizes fail with pixring.ErrInvalidDimensions before any page
// is evicted. Render errors are returned as is and leave the page uncached.
func (c *Cache[K]) GetOrRender(key K, width, height int, render RenderFunc) (*pixring.Region, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pagecache: page %v: %w: %dx%d",
			key, pixring.ErrInvalidDimensions, width, height)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	want := pixring.Size{Width: width, Height: height}

	if e, ok := c.entries[key]; ok {
		if e.valid {
			c.lru.MoveToFront(e.node)
			c.hits.Add(1)
			return e.region, nil
		}
		if e.requested == want {
			c.misses.Add(1)
			if err := render(e.region); err != nil {
				c.removeLocked(e)
				return nil, err
			}
			e.valid = true
			c.lru.MoveToFront(e.node)
			pixring.Logger().Debug("pagecache: page re-rendered", "key", key)
			return e.region, nil
		}
		c.removeLocked(e)
	}

	c.misses.Add(1)

	// Make room before allocating so that the sweep can reclaim the
	// released pages.
	for c.lru.Len() >= c.capacity {
		c.evictOldestLocked()
	}

	r, err := c.allocateLocked(width, height)
	if err != nil {
		return nil, fmt.Errorf("pagecache: allocate page %v: %w", key, err)
	}

	if err := render(r); err != nil {
		r.Release()
		return nil, err
	}

	c.entries[key] = &entry[K]{
		region:    r,
		requested: want,
		valid:     true,
		node:      c.lru.PushFront(key),
	}
	return r, nil
}

// allocateLocked allocates a region, evicting older pages while the
// allocator reports ErrOutOfSpace. Caller must hold mu.
func (c *Cache[K]) allocateLocked(width, height int) (*pixring.Region, error) {
	for {
		r, err := c.alloc.Allocate(width, height)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, pixring.ErrOutOfSpace) || c.lru.Len() == 0 {
			return nil, err
		}
		c.evictOldestLocked()
	}
}

// evictOldestLocked releases the least recently used page. Caller must
// hold mu.
func (c *Cache[K]) evictOldestLocked() {
	key, ok := c.lru.Oldest()
	if !ok {
		return
	}
	c.removeLocked(c.entries[key])
	c.evictions.Add(1)
	pixring.Logger().Debug("pagecache: page evicted", "key", key)
}

// removeLocked drops e from the cache and releases its region. Caller must
// hold mu.
func (c *Cache[K]) removeLocked(e *entry[K]) {
	c.lru.Remove(e.node)
	delete(c.entries, e.node.key)
	e.region.Release()
}

// Remove drops key from the cache and releases its region.
// Returns true if the page was cached.
func (c *Cache[K]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(e)
	return true
}

// Invalidate marks every cached page as stale, for example after the
// zoom or colour settings change. Stale pages keep their regions until
// they are rendered again or evicted.
func (c *Cache[K]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.valid = false
	}
	pixring.Logger().Debug("pagecache: invalidated", "pages", len(c.entries))
}

// Clear drops every page and releases all regions.
func (c *Cache[K]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		e.region.Release()
	}
	c.entries = make(map[K]*entry[K], c.capacity)
	c.lru.Clear()
	pixring.Logger().Debug("pagecache: cleared")
}

// Keys returns the cached keys from most to least recently used.
func (c *Cache[K]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Keys()
}

// Len returns the number of cached pages, stale ones included.
func (c *Cache[K]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of cached pages.
func (c *Cache[K]) Capacity() int {
	return c.capacity
}

// Stats returns current cache statistics.
func (c *Cache[K]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      hits,
		Misses:    misses,
		HitRate:   hitRate,
		Evictions: c.evictions.Load(),
	}
}

// Stats contains page cache statistics.
type Stats struct {
	// Len is the current number of cached pages.
	Len int
	// Capacity is the maximum number of cached pages.
	Capacity int
	// Hits is the number of lookups served from the cache.
	Hits uint64
	// Misses is the number of lookups that had to render.
	Misses uint64
	// HitRate is Hits/(Hits+Misses), 0.0 to 1.0.
	HitRate float64
	// Evictions is the number of pages dropped to make room.
	Evictions uint64
}
