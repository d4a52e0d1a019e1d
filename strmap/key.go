package strmap

import "github.com/arloliu/datablock/internal/hash"

// Key is a string paired with its precomputed hash.
//
// Keys compare by full string equality; the hash only narrows the candidates.
// Go strings are immutable, so a Key returned by a Map stays valid for as long
// as the caller holds it.
type Key struct {
	Str  string
	Hash uint64
}

// NewKey hashes s and returns its Key.
func NewKey(s string) Key {
	return Key{Str: s, Hash: hash.String(s)}
}

// Equal reports whether both keys name the same string.
func (k Key) Equal(other Key) bool {
	return k.Hash == other.Hash && k.Str == other.Str
}

func (k Key) String() string {
	return k.Str
}
