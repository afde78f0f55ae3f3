package fifocache

import (
	"slices"
	"testing"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fifoModel is a slow reference implementation of a FIFO cache.
type fifoModel struct {
	capacity int
	order    []int
	values   map[int]int
	evicted  []int
}

func newFIFOModel(capacity int) *fifoModel {
	return &fifoModel{
		capacity: capacity,
		values:   make(map[int]int),
	}
}

func (m *fifoModel) insert(k, v int) fn.Option[int] {
	if prev, ok := m.values[k]; ok {
		m.values[k] = v
		return fn.Some(prev)
	}

	if len(m.order) == m.capacity {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.values, oldest)
		m.evicted = append(m.evicted, oldest)
	}
	m.order = append(m.order, k)
	m.values[k] = v

	return fn.None[int]()
}

func (m *fifoModel) get(k int) fn.Option[int] {
	v, ok := m.values[k]
	if !ok {
		return fn.None[int]()
	}

	return fn.Some(v)
}

func (m *fifoModel) remove(k int) fn.Option[int] {
	v, ok := m.values[k]
	if !ok {
		return fn.None[int]()
	}

	delete(m.values, k)
	m.order = slices.DeleteFunc(m.order, func(o int) bool {
		return o == k
	})

	return fn.Some(v)
}

// TestCacheMatchesModel drives the cache with random operation sequences and
// compares every result against the reference model.
func TestCacheMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(t, "capacity")
		keys := rapid.IntRange(0, 3*capacity)

		model := newFIFOModel(capacity)
		var evicted []int
		c := NewWithEvict[int, int](capacity, func(k, _ int) {
			evicted = append(evicted, k)
		})

		t.Repeat(map[string]func(*rapid.T){
			"insert": func(t *rapid.T) {
				k := keys.Draw(t, "key")
				v := rapid.Int().Draw(t, "value")
				require.Equal(t, model.insert(k, v), c.Insert(k, v))
			},
			"get": func(t *rapid.T) {
				k := keys.Draw(t, "key")
				require.Equal(t, model.get(k), c.Get(k))
				require.Equal(t, model.get(k).IsSome(), c.Has(k))
			},
			"remove": func(t *rapid.T) {
				k := keys.Draw(t, "key")
				require.Equal(t, model.remove(k), c.Remove(k))
			},
			"insertIfAbsent": func(t *rapid.T) {
				k := keys.Draw(t, "key")
				v := rapid.Int().Draw(t, "value")
				want := model.get(k).IsNone()
				if want {
					model.insert(k, v)
				}
				require.Equal(t, want, c.InsertIfAbsent(k, v))
			},
			"": func(t *rapid.T) {
				require.NoError(t, checkInvariants(c))
				require.Equal(t, len(model.order), c.Len())
				require.LessOrEqual(t, c.Len(), capacity)
				order := slices.Collect(c.Keys())
				require.Truef(t, slices.Equal(model.order, order),
					"order is %v; want %v", order, model.order)
				require.Truef(t, slices.Equal(model.evicted, evicted),
					"evicted %v; want %v", evicted, model.evicted)
			},
		})
	})
}

// TestCacheUpdateNeverReorders checks that re-inserting live keys leaves the
// eviction order exactly as the first insertions left it.
func TestCacheUpdateNeverReorders(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 32).Draw(t, "capacity")
		c := New[int, int](capacity)

		for k := 0; k < capacity; k++ {
			c.Insert(k, k)
		}
		want := slices.Collect(c.Keys())

		updates := rapid.SliceOf(rapid.IntRange(0, capacity-1)).Draw(t, "updates")
		for i, k := range updates {
			prev := c.Insert(k, -i)
			require.True(t, prev.IsSome())
		}
		require.Equal(t, want, slices.Collect(c.Keys()))

		// The oldest key is still the first one to go.
		c.Insert(capacity, capacity)
		require.False(t, c.Has(0))
	})
}
