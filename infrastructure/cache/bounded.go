// Package cache provides the fixed-capacity, access-ordered caches that sit
// in front of the relational repositories.
package cache

import (
	"container/list"
	"sync"
)

// Entry is one key/value pair, as returned by Entries.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Bounded is a fixed-capacity key-value cache with least-recently-used
// eviction. Recency is refreshed by both insertion and access. Eviction is
// silent: exceeding capacity drops the single least-recently-used entry.
//
// All operations are safe for concurrent use. Compound read-check-replace
// sequences over the whole cache go through Patch, which holds the cache
// lock for the full sweep so concurrent patches cannot interleave.
type Bounded[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List // Front = most recent, Back = least recent
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewBounded creates a cache with the given capacity. The capacity is fixed
// for the lifetime of the cache; a non-positive value is treated as 1.
func NewBounded[K comparable, V any](capacity int) *Bounded[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Bounded[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// Get retrieves a value by key and marks it as most recently used.
func (c *Bounded[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put inserts or replaces a value and marks it as most recently used. If the
// insert pushes the cache over capacity, the least-recently-used entry is
// evicted.
func (c *Bounded[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*entry[K, V]).value = value
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		c.evictOldest()
	}
}

// Replace swaps the value stored under key without touching its recency.
// It reports whether the key was present. Used by cross-entity patches,
// which must not promote entries they happen to touch.
func (c *Bounded[K, V]) Replace(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return false
	}
	elem.Value.(*entry[K, V]).value = value
	return true
}

// Remove deletes the entry for key. It is a no-op if the key is absent.
func (c *Bounded[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.Remove(elem)
		delete(c.items, key)
	}
}

// Clear empties the cache unconditionally.
func (c *Bounded[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*list.Element)
	c.order.Init()
}

// ContainsKey reports whether key is present. Pure lookup: recency is not
// affected.
func (c *Bounded[K, V]) ContainsKey(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.items[key]
	return ok
}

// Len returns the number of cached entries.
func (c *Bounded[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}

// Capacity returns the fixed capacity the cache was built with.
func (c *Bounded[K, V]) Capacity() int {
	return c.capacity
}

// Entries returns a snapshot of all entries ordered least-recent first.
// Taking the snapshot does not affect recency.
func (c *Bounded[K, V]) Entries() []Entry[K, V] {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := make([]Entry[K, V], 0, c.order.Len())
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		e := elem.Value.(*entry[K, V])
		entries = append(entries, Entry[K, V]{Key: e.key, Value: e.value})
	}
	return entries
}

// Patch applies fn to every entry, least-recent first, under the cache
// lock. When fn returns a replacement and true, the entry's value is swapped
// in place; recency is never changed. The whole sweep is atomic with respect
// to every other cache operation, so two concurrent sweeps cannot
// interleave their reads and writes.
func (c *Bounded[K, V]) Patch(fn func(key K, value V) (V, bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		e := elem.Value.(*entry[K, V])
		if replacement, ok := fn(e.key, e.value); ok {
			e.value = replacement
		}
	}
}

func (c *Bounded[K, V]) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.items, oldest.Value.(*entry[K, V]).key)
}
