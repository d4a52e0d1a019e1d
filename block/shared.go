package block

import (
	"fmt"
	"iter"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/strmap"
)

// Shared is the per-tree state owned by the topmost block: the name
// interning table and the arena holding every node of the tree.
//
// A Shared and its tree are not safe for concurrent mutation. Concurrent
// reads are safe as long as no goroutine mutates the tree.
type Shared struct {
	strings   *strmap.Map[SharedStringID]
	names     map[SharedStringID]strmap.Key
	maxID     SharedStringID // highest id in use
	idCounter uint32

	nodes []*node
	free  []uint32
}

func newShared() *Shared {
	return &Shared{
		strings: strmap.New[SharedStringID](16),
		names:   make(map[SharedStringID]strmap.Key, 16),
	}
}

// AddString interns name and returns its id. An already interned name keeps
// its id. Returns 0 when the id space is exhausted.
func (s *Shared) AddString(name string) SharedStringID {
	return s.addKey(strmap.NewKey(name))
}

func (s *Shared) addKey(key strmap.Key) SharedStringID {
	if id, ok := s.strings.Get(key); ok {
		return id
	}
	if s.idCounter >= MaxSharedStringID {
		return 0
	}

	s.idCounter++
	id := s.idCounter
	s.strings.Insert(key, id)
	s.setName(id, key)

	return id
}

// StringID returns the id of an interned name, or 0 when name is unknown.
func (s *Shared) StringID(name string) SharedStringID {
	id, _ := s.strings.GetString(name)
	return id
}

// String returns the name interned under id, or "" for unknown ids.
func (s *Shared) String(id SharedStringID) string {
	key, _ := s.HashedString(id)
	return key.Str
}

// HashedString returns the hashed key interned under id.
func (s *Shared) HashedString(id SharedStringID) (strmap.Key, bool) {
	key, ok := s.names[id]
	if !ok {
		return strmap.Key{}, false
	}
	if stored, ok := s.strings.Get(key); !ok || stored != id {
		return strmap.Key{}, false
	}

	return key, true
}

// HasStringID reports whether id refers to an interned name.
func (s *Shared) HasStringID(id SharedStringID) bool {
	_, ok := s.HashedString(id)
	return ok
}

// SetString interns name under an explicit id, as read from a binary string
// table. The id counter is raised to at least id.
func (s *Shared) SetString(name string, id SharedStringID) error {
	if id == 0 || id > MaxSharedStringID {
		return fmt.Errorf("%w: %d", errs.ErrInvalidStringID, id)
	}

	key := strmap.NewKey(name)
	if existing, ok := s.strings.Get(key); ok {
		if existing == id {
			return nil
		}

		return fmt.Errorf("%w: %q already has id %d, not %d", errs.ErrInvalidStringID, name, existing, id)
	}
	if s.HasStringID(id) {
		return fmt.Errorf("%w: id %d already names %q", errs.ErrInvalidStringID, id, s.String(id))
	}

	s.strings.Insert(key, id)
	s.setName(id, key)
	s.idCounter = max(s.idCounter, id)

	return nil
}

func (s *Shared) setName(id SharedStringID, key strmap.Key) {
	s.names[id] = key
	s.maxID = max(s.maxID, id)
}

// StringsCount returns the number of interned names.
func (s *Shared) StringsCount() int {
	return s.strings.Len()
}

// StringsIndexCounter returns the last id handed out.
func (s *Shared) StringsIndexCounter() uint32 {
	return s.idCounter
}

// SetStringsIndexCounter sets the id counter. It never lowers the counter
// below an id that is already in use.
func (s *Shared) SetStringsIndexCounter(counter uint32) {
	s.idCounter = max(counter, s.maxID)
}

// Strings iterates the interned names in insertion order.
func (s *Shared) Strings() iter.Seq2[SharedStringID, string] {
	return func(yield func(SharedStringID, string) bool) {
		for key, id := range s.strings.All() {
			if !yield(id, key.Str) {
				return
			}
		}
	}
}

func (s *Shared) clearStrings() {
	s.strings.Clear()
	clear(s.names)
	s.maxID = 0
	s.idCounter = 0
}

// NodesCount returns the number of live nodes in the tree.
func (s *Shared) NodesCount() int {
	return len(s.nodes) - len(s.free)
}

// allocNode takes a slot from the arena and returns its live node.
func (s *Shared) allocNode(nameIDAndFlags uint32) *node {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.nodes)) //nolint: gosec
		s.nodes = append(s.nodes, &node{idx: idx})
	}

	nd := s.nodes[idx]
	nd.live = true
	nd.nameIDAndFlags = nameIDAndFlags
	nd.handle = &DataBlock{shared: s, idx: idx, gen: nd.gen}

	return nd
}

// freeNode releases a node and its subtree back to the arena, depth-first.
// Handles to released nodes become stale.
func (s *Shared) freeNode(idx uint32) {
	nd := s.nodes[idx]
	for _, child := range nd.children {
		s.freeNode(child)
	}

	nd.reset()
	nd.live = false
	nd.gen++
	nd.handle = nil
	s.free = append(s.free, idx)
}
