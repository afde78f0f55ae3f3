// Package fifocache provides a generic fixed-capacity in-memory cache with
// FIFO eviction.
//
// # Architecture
//
// A [Cache] is made of two structures kept in lockstep:
//
//   - A map[K]int lookup table from each live key to its slot
//   - An order queue of slots in a pre-allocated array, linked by index
//     from the oldest to the newest entry
//
// Each slot stores its key and current value, so the table only records
// where an entry lives. Get, Insert and Remove run in O(1) expected time.
//
// # Eviction
//
// When the cache is full, inserting a new key evicts the oldest entry first
// (FIFO - First In, First Out), no matter how often or how recently it was
// read. Updating the value of an existing key keeps its original place in
// the eviction order. There is no time-based expiration.
//
// Evicted entries are dropped silently unless the cache was created with
// [NewWithEvict].
//
// # Values
//
// Values are returned by value. The cache never mutates a stored value; an
// update replaces it, so a value obtained earlier stays unchanged after the
// key is updated or evicted. Values holding references (slices, maps,
// pointers) share their referents with the caller as usual in Go.
//
// # Thread Safety
//
// A [Cache] is not safe for concurrent use. Wrap it in a [sync.RWMutex] when
// sharing it between goroutines: the read-only methods may run under RLock,
// everything else needs Lock.
package fifocache
