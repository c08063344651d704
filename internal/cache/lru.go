// Package cache provides a small bounded LRU used by both the Damerau
// memoization cache and the suggestion cache. Shaped after the teacher's
// HotCache (github.com/bastiangx/typr-lib/pkg/suggest/cache.go): a
// maxWords-bounded map with an access-recency eviction policy. HotCache
// tracked recency with a monotonic counter and evicted by scanning for the
// oldest entry; here the same recency idea is backed by container/list so
// eviction is O(1) instead of O(n) at the cache sizes (~10^5) this module's
// caches are sized for.
package cache

import "container/list"

// LRU is a fixed-capacity, least-recently-used cache mapping string keys to
// arbitrary values. It is not safe for concurrent use without an external
// lock — callers that need concurrent access should wrap it, the same way
// the source treats caches as a single-instance-owned resource.
type LRU struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = most recently used
}

type entry struct {
	key   string
	value any
}

// New creates an LRU bounded to capacity entries. A non-positive capacity
// means "effectively unbounded" (no eviction ever occurs).
func New(capacity int) *LRU {
	return &LRU{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached value for key and marks it most-recently-used.
func (c *LRU) Get(key string) (any, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).value, true
}

// Put inserts or updates key's value and evicts the least-recently-used
// entry if the cache is over capacity.
func (c *LRU) Put(key string, value any) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).value = value
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&entry{key: key, value: value})
	c.items[key] = el

	if c.capacity > 0 {
		for c.order.Len() > c.capacity {
			oldest := c.order.Back()
			if oldest == nil {
				break
			}
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
		}
	}
}

// Clear empties the cache. Suggestion caches call this on any dictionary
// mutation (§3 invariant: "suggestion cache entries are invalidated whenever
// the dictionary table mutates"); the Damerau cache is a pure-function cache
// and never needs to, but may be cleared at will to bound memory.
func (c *LRU) Clear() {
	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of entries currently cached.
func (c *LRU) Len() int {
	return c.order.Len()
}
