// Package hash provides the string hash used to pre-filter interned name lookups.
package hash

import "github.com/cespare/xxhash/v2"

// String computes the xxHash64 of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Bytes computes the xxHash64 of b.
func Bytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
