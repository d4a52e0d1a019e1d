// Package endian provides the byte order engine used by the datablock streams.
//
// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so a single
// value can both patch fixed positions and append to a growing buffer.
//
// The binary DataBlock format is always little-endian:
//
//	ws := bytebuf.NewWriteStream(buf, endian.Default())
//
// All functions and methods in this package are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Default returns the engine of the DataBlock wire format.
func Default() EndianEngine {
	return binary.LittleEndian
}
