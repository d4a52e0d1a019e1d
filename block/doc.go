// Package block implements the DataBlock tree and its binary and text serializers.
//
// A DataBlock is a named node holding an ordered list of typed params and an
// ordered list of child blocks. Names may repeat: lookups by name return the
// first match, the Reverse variants the last one. All names of a tree are
// interned in the Shared owned by its topmost block.
//
// # Core Types
//
// **Tree**
//   - DataBlock: handle to one node; params are read with Get/GetAt or the
//     typed methods (GetS32, GetString, ...) and written with Set/Add
//   - Shared: string table and node arena of one tree
//
// **Serializers**
//   - BinaryEncoder / BinaryDecoder: compact binary format with optional
//     CRC32 footer and body compression
//   - TextEncoder / TextDecoder: human-editable text format that keeps comments
//
// # Building a Tree
//
//	root := block.New()
//	root.SetS32("x", 5)
//	root.SetString("name", "hi")
//	child, _ := root.AddDataBlock("child")
//	child.SetF32("y", 1.5)
//
// # Memory Layout
//
// Each node stores its params as 8-byte records ([nameId:24|type:8][value:u32])
// in one byte slice and the payloads that do not fit in 4 bytes in a second
// one. Overwriting a string with a longer one appends the new payload and
// leaves the old bytes unused; Compact reclaims them.
//
// # Thread Safety
//
// A tree must not be mutated concurrently. Concurrent reads are safe while no
// goroutine mutates it. Encoders and decoders hold only their configuration
// and may be shared.
package block
