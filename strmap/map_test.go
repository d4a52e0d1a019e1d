package strmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMap_InsertKeepsExisting(t *testing.T) {
	m := New[int](0)

	v, added := m.Insert(NewKey("alpha"), 1)
	require.True(t, added)
	require.Equal(t, 1, v)

	v, added = m.Insert(NewKey("alpha"), 2)
	require.False(t, added)
	require.Equal(t, 1, v, "insert must not overwrite")
	require.Equal(t, 1, m.Len())

	m.Set(NewKey("alpha"), 3)
	got, ok := m.GetString("alpha")
	require.True(t, ok)
	require.Equal(t, 3, got)
}

func TestMap_InsertionOrder(t *testing.T) {
	m := New[int](4)
	names := []string{"z", "a", "m", "b"}
	for i, n := range names {
		m.Insert(NewKey(n), i)
	}

	var seen []string
	for k, v := range m.All() {
		require.Equal(t, names[v], k.Str)
		seen = append(seen, k.Str)
	}
	require.Equal(t, names, seen)

	keys := m.Keys()
	require.Len(t, keys, 4)
	require.Equal(t, "m", keys[2].Str)
}

func TestMap_HashCollision(t *testing.T) {
	m := New[string](0)

	// Forge two distinct strings with an identical hash.
	k1 := Key{Str: "first", Hash: 42}
	k2 := Key{Str: "second", Hash: 42}

	m.Insert(k1, "one")
	m.Insert(k2, "two")
	require.Equal(t, 2, m.Len())

	v, ok := m.Get(k1)
	require.True(t, ok)
	require.Equal(t, "one", v)

	v, ok = m.Get(k2)
	require.True(t, ok)
	require.Equal(t, "two", v)

	require.False(t, m.Contains(Key{Str: "third", Hash: 42}))
}

func TestMap_GetKeyAndClear(t *testing.T) {
	var m Map[int]
	m.Insert(NewKey("name"), 7)

	stored, ok := m.GetKey(NewKey("name"))
	require.True(t, ok)
	require.True(t, stored.Equal(NewKey("name")))
	require.Equal(t, "name", stored.String())

	m.Clear()
	require.Equal(t, 0, m.Len())
	require.False(t, m.Contains(NewKey("name")))

	_, ok = m.GetString("name")
	require.False(t, ok)
}
