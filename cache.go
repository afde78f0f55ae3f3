package fifocache

import (
	"fmt"
	"iter"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// EvictFunc is called with every entry dropped from the cache to make room
// for a new one.
//
// EvictFunc must not call back into the cache that invoked it.
type EvictFunc[K comparable, V any] func(k K, v V)

// Cache is a fixed-capacity in-memory cache with FIFO eviction.
//
// When the cache is full, inserting a new key evicts the entry that has been
// resident the longest. Reads and updates of existing keys never change the
// eviction order.
//
// Cache is not safe for concurrent use. Callers sharing a Cache between
// goroutines must guard it with their own lock; the read-only methods (Get,
// Has, Len, Cap, Oldest, All, Keys and Values) may run together under a
// shared read lock.
type Cache[K comparable, V any] struct {
	capacity int

	// order holds the entries themselves, oldest first.
	order queue[K, V]

	// table maps every live key to its slot in order.
	table map[K]int

	onEvict EvictFunc[K, V]
}

// New returns a new cache holding at most capacity entries.
//
// New panics if capacity is not positive.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	return NewWithEvict[K, V](capacity, nil)
}

// NewWithEvict is like [New] but calls onEvict for every entry evicted due to
// cache overflow. A nil onEvict disables the callback.
//
// Entries removed with [Cache.Remove] or [Cache.Reset] are not reported.
func NewWithEvict[K comparable, V any](capacity int, onEvict EvictFunc[K, V]) *Cache[K, V] {
	if capacity <= 0 {
		panic(fmt.Errorf("capacity must be greater than 0; got %d", capacity))
	}

	c := &Cache[K, V]{
		capacity: capacity,
		table:    make(map[K]int, capacity),
		onEvict:  onEvict,
	}
	c.order.init(capacity)

	log.Debugf("Created cache with capacity=%d, evict_callback=%v",
		capacity, onEvict != nil)

	return c
}

// Get returns the value stored for k, or None if k is not in the cache.
//
// Get has no side effects; in particular it does not affect eviction order.
func (c *Cache[K, V]) Get(k K) fn.Option[V] {
	idx, ok := c.table[k]
	if !ok {
		return fn.None[V]()
	}

	return fn.Some(c.order.slots[idx].value)
}

// Has returns true if an entry for k exists in the cache.
func (c *Cache[K, V]) Has(k K) bool {
	_, ok := c.table[k]

	return ok
}

// Insert stores (k, v) in the cache.
//
// If k is already present its value is replaced, the previous value is
// returned and k keeps its place in the eviction order. Otherwise k becomes
// the newest entry, evicting the oldest one if the cache is full, and None is
// returned.
func (c *Cache[K, V]) Insert(k K, v V) fn.Option[V] {
	if idx, ok := c.table[k]; ok {
		s := &c.order.slots[idx]
		prev := s.value
		s.value = v

		return fn.Some(prev)
	}

	c.add(k, v)

	return fn.None[V]()
}

// GetOrInsert returns the existing value for k if present. Otherwise it
// stores v and returns it.
//
// The loaded result is true if the value was loaded, false if stored.
func (c *Cache[K, V]) GetOrInsert(k K, v V) (actual V, loaded bool) {
	if idx, ok := c.table[k]; ok {
		return c.order.slots[idx].value, true
	}

	c.add(k, v)

	return v, false
}

// InsertIfAbsent stores v for k only if k is not already present.
//
// Returns true if the value was stored, false if k already existed.
func (c *Cache[K, V]) InsertIfAbsent(k K, v V) (stored bool) {
	if _, ok := c.table[k]; ok {
		return false
	}

	c.add(k, v)

	return true
}

// Remove deletes the entry for k and returns its value, or None if k was not
// present.
func (c *Cache[K, V]) Remove(k K) fn.Option[V] {
	idx, ok := c.table[k]
	if !ok {
		return fn.None[V]()
	}

	delete(c.table, k)
	s := c.order.unlink(idx)

	return fn.Some(s.value)
}

// Oldest returns the key that the next eviction would drop, or None if the
// cache is empty.
func (c *Cache[K, V]) Oldest() fn.Option[K] {
	if c.order.head == nilSlot {
		return fn.None[K]()
	}

	return fn.Some(c.order.slots[c.order.head].key)
}

// Reset removes all the entries from the cache. The eviction callback is not
// called.
func (c *Cache[K, V]) Reset() {
	log.Debugf("Resetting cache with %d entries", len(c.table))

	clear(c.table)
	c.order.reset()
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	return len(c.table)
}

// Cap returns the maximum number of entries the cache can hold.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// All returns an iterator over all key-value pairs in the cache, from the
// oldest to the newest entry.
//
// The cache must not be modified during iteration.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c.order.rangeSlots(func(s *slot[K, V]) bool {
			return yield(s.key, s.value)
		})
	}
}

// Keys returns an iterator over all keys in the cache, from the oldest to the
// newest entry.
//
// The cache must not be modified during iteration.
func (c *Cache[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		c.order.rangeSlots(func(s *slot[K, V]) bool {
			return yield(s.key)
		})
	}
}

// Values returns an iterator over all values in the cache, from the oldest to
// the newest entry.
//
// The cache must not be modified during iteration.
func (c *Cache[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		c.order.rangeSlots(func(s *slot[K, V]) bool {
			return yield(s.value)
		})
	}
}

// add appends a key known to be absent, evicting from the front of the order
// queue until there is room for exactly one more entry.
func (c *Cache[K, V]) add(k K, v V) {
	for len(c.table) > c.capacity-1 {
		c.evictOldest()
	}

	c.table[k] = c.order.pushBack(k, v)
}

func (c *Cache[K, V]) evictOldest() {
	idx := c.order.head
	if idx == nilSlot {
		err := fmt.Errorf("order queue is empty while table holds %d "+
			"entries", len(c.table))
		log.Criticalf("Cache corrupted: %v", err)
		panic(err)
	}

	k := c.order.slots[idx].key
	if tableIdx, ok := c.table[k]; !ok || tableIdx != idx {
		err := fmt.Errorf("oldest key %v in slot %d has no matching "+
			"table entry", k, idx)
		log.Criticalf("Cache corrupted: %v", err)
		panic(err)
	}

	delete(c.table, k)
	s := c.order.unlink(idx)

	if c.onEvict != nil {
		c.onEvict(s.key, s.value)
	}
}
