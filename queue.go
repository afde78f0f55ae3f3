package fifocache

// nilSlot marks a missing link in the order queue.
const nilSlot = -1

// slot holds a single live entry together with its links in the order queue.
type slot[K comparable, V any] struct {
	key   K
	value V

	prev int
	next int
}

// queue tracks insertion order of live entries.
//
// Entries live in a backing array of slots linked by index from the oldest
// (head) to the newest (tail) entry. Released slots are chained through next
// starting at free and are reused before the array grows, so the array never
// holds more than capacity slots.
type queue[K comparable, V any] struct {
	slots []slot[K, V]

	head int
	tail int
	free int

	// size is the number of linked slots.
	size int
}

func (q *queue[K, V]) init(capacity int) {
	q.slots = make([]slot[K, V], 0, capacity)
	q.head, q.tail, q.free = nilSlot, nilSlot, nilSlot
	q.size = 0
}

// pushBack links a new slot holding (k, v) at the tail and returns its index.
func (q *queue[K, V]) pushBack(k K, v V) int {
	idx := q.free
	if idx != nilSlot {
		q.free = q.slots[idx].next
	} else {
		idx = len(q.slots)
		q.slots = append(q.slots, slot[K, V]{})
	}

	q.slots[idx] = slot[K, V]{
		key:   k,
		value: v,
		prev:  q.tail,
		next:  nilSlot,
	}
	if q.tail != nilSlot {
		q.slots[q.tail].next = idx
	} else {
		q.head = idx
	}
	q.tail = idx
	q.size++

	return idx
}

// unlink removes the slot at idx from the queue and returns its former
// contents. The slot is zeroed so the queue no longer references its key and
// value.
func (q *queue[K, V]) unlink(idx int) slot[K, V] {
	s := q.slots[idx]

	if s.prev != nilSlot {
		q.slots[s.prev].next = s.next
	} else {
		q.head = s.next
	}
	if s.next != nilSlot {
		q.slots[s.next].prev = s.prev
	} else {
		q.tail = s.prev
	}

	q.slots[idx] = slot[K, V]{prev: nilSlot, next: q.free}
	q.free = idx
	q.size--

	return s
}

func (q *queue[K, V]) reset() {
	clear(q.slots)
	q.slots = q.slots[:0]
	q.head, q.tail, q.free = nilSlot, nilSlot, nilSlot
	q.size = 0
}

// rangeSlots calls f for every linked slot from oldest to newest until f
// returns false.
func (q *queue[K, V]) rangeSlots(f func(s *slot[K, V]) bool) bool {
	for idx := q.head; idx != nilSlot; idx = q.slots[idx].next {
		if !f(&q.slots[idx]) {
			return false
		}
	}

	return true
}
