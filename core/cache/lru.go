package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// LRUCache is a fixed-capacity cache evicting the least recently used entry.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(K, V)
}

// NewLRUCache creates a cache holding at most capacity entries.
// A non-positive capacity panics.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		panic(ErrInvalidCapacity)
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// SetEvictCallback registers fn to run when an entry is evicted for capacity.
// It is not called for Remove or Clear.
func (c *LRUCache[K, V]) SetEvictCallback(fn func(K, V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get returns the value for key and marks it as recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry[K, V]).value, true
}

// Put inserts or updates key.
func (c *LRUCache[K, V]) Put(key K, value V) {
	var (
		evicted *lruEntry[K, V]
		onEvict func(K, V)
	)

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry[K, V]).value = value
		c.order.MoveToFront(el)
		c.mu.Unlock()
		return
	}

	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		evicted = oldest.Value.(*lruEntry[K, V])
		delete(c.items, evicted.key)
		onEvict = c.onEvict
	}
	c.mu.Unlock()

	// Callback runs outside the lock so it may use the cache.
	if evicted != nil && onEvict != nil {
		onEvict(evicted.key, evicted.value)
	}
}

// Remove deletes key and returns its value.
func (c *LRUCache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.Remove(el)
	delete(c.items, key)
	return el.Value.(*lruEntry[K, V]).value, true
}

// Len returns the number of entries.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries.
func (c *LRUCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}
