// Package section defines the fixed binary structures framing a binary DataBlock.
//
// A binary DataBlock is laid out as:
//
//	┌───────────────────────────────────────────────┐
//	│ BinaryHeader (8 bytes)                        │
//	│  - magic (4 bytes): 0x14d38d64                │
//	│  - flags (4 bytes): checksum, compression     │
//	├───────────────────────────────────────────────┤
//	│ CompressedHeader (8 bytes, compressed only)   │
//	├───────────────────────────────────────────────┤
//	│ Body: string table + recursive block tree     │
//	├───────────────────────────────────────────────┤
//	│ CRC32 (4 bytes, checksum flag only)           │
//	└───────────────────────────────────────────────┘
//
// All fields are little-endian.
package section
