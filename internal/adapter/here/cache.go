package here

import (
	"context"
	"fmt"
	"sync"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/observability"
)

// IsolineFetcher fetches raw isoline responses.
type IsolineFetcher interface {
	FetchIsolines(ctx context.Context, req domain.IsolineRequest) (domain.IsolineResponse, error)
}

// CachedIsolineSource wraps an IsolineFetcher with an in-memory LRU cache.
// Isoline responses for a fixed origin and range set are stable within a
// session, so repeated renders of the same viewport skip the upstream call.
type CachedIsolineSource struct {
	inner   IsolineFetcher
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedIsolineSource creates a cache decorator around a fetcher.
// Metrics may be nil.
func NewCachedIsolineSource(inner IsolineFetcher, maxEntries int, metrics *observability.Metrics) *CachedIsolineSource {
	return &CachedIsolineSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedIsolineSource) FetchIsolines(ctx context.Context, req domain.IsolineRequest) (domain.IsolineResponse, error) {
	key := requestKey(req)
	if resp, ok := c.cache.get(key); ok {
		c.observe("hit")
		return resp, nil
	}
	c.observe("miss")

	resp, err := c.inner.FetchIsolines(ctx, req)
	if err != nil {
		return resp, err
	}
	// Only cache non-empty responses so transient upstream hiccups can be retried.
	if len(resp.Isolines) > 0 {
		c.cache.put(key, resp)
	}
	return resp, nil
}

func (c *CachedIsolineSource) observe(result string) {
	if c.metrics != nil {
		c.metrics.IsolineCacheLookups.WithLabelValues(result).Inc()
	}
}

// requestKey canonicalizes every field that changes the upstream answer.
func requestKey(req domain.IsolineRequest) string {
	return fmt.Sprintf("%.6f,%.6f|%s|%s|%s|%s|%t",
		req.OriginLat, req.OriginLon,
		req.TransportMode, req.RangeType, req.Ranges.Encode(),
		req.DepartureTime, req.Reverse,
	)
}

// lruCache is a simple thread-safe LRU cache for isoline responses.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.IsolineResponse
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.IsolineResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.IsolineResponse{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.IsolineResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
