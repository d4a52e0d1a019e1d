// Package strmap provides an insertion-ordered, string-keyed map addressed by
// pre-hashed keys.
//
// It backs the shared name table of a DataBlock tree, where every interned name
// is hashed once and then looked up by Key without re-hashing.
package strmap

import "iter"

type entry[V any] struct {
	key   Key
	value V
}

// Map stores (Key, V) pairs in insertion order.
//
// Lookups go through a hash bucket index and confirm with a full string
// compare, so distinct strings sharing a hash are kept apart. Map is not safe
// for concurrent mutation.
type Map[V any] struct {
	entries []entry[V]
	buckets map[uint64][]int32
}

// New creates an empty Map with room for capacity entries.
func New[V any](capacity int) *Map[V] {
	return &Map[V]{
		entries: make([]entry[V], 0, capacity),
		buckets: make(map[uint64][]int32, capacity),
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	return len(m.entries)
}

func (m *Map[V]) find(key Key) int {
	for _, idx := range m.buckets[key.Hash] {
		if m.entries[idx].key.Str == key.Str {
			return int(idx)
		}
	}

	return -1
}

// Insert adds key with value v unless the key is already present.
//
// Returns:
//   - V: the value stored for key after the call
//   - bool: true if a new entry was added
func (m *Map[V]) Insert(key Key, v V) (V, bool) {
	if idx := m.find(key); idx >= 0 {
		return m.entries[idx].value, false
	}
	m.append(key, v)

	return v, true
}

// Set stores v for key, replacing any existing value in place.
func (m *Map[V]) Set(key Key, v V) {
	if idx := m.find(key); idx >= 0 {
		m.entries[idx].value = v
		return
	}
	m.append(key, v)
}

func (m *Map[V]) append(key Key, v V) {
	if m.buckets == nil {
		m.buckets = make(map[uint64][]int32)
	}
	idx := int32(len(m.entries)) //nolint: gosec
	m.entries = append(m.entries, entry[V]{key: key, value: v})
	m.buckets[key.Hash] = append(m.buckets[key.Hash], idx)
}

// Get returns the value stored for key.
func (m *Map[V]) Get(key Key) (V, bool) {
	if idx := m.find(key); idx >= 0 {
		return m.entries[idx].value, true
	}

	var zero V

	return zero, false
}

// GetString hashes s and returns the value stored for it.
func (m *Map[V]) GetString(s string) (V, bool) {
	return m.Get(NewKey(s))
}

// GetKey returns the stored Key equal to key.
func (m *Map[V]) GetKey(key Key) (Key, bool) {
	if idx := m.find(key); idx >= 0 {
		return m.entries[idx].key, true
	}

	return Key{}, false
}

// Contains reports whether key is present.
func (m *Map[V]) Contains(key Key) bool {
	return m.find(key) >= 0
}

// All iterates the entries in insertion order.
func (m *Map[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for _, e := range m.entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []Key {
	keys := make([]Key, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
	}

	return keys
}

// Clear removes every entry while keeping the allocated capacity.
func (m *Map[V]) Clear() {
	clear(m.entries)
	m.entries = m.entries[:0]
	clear(m.buckets)
}
