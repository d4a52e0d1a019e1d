// Package bytebuf provides the byte storage primitives the DataBlock
// serializers are built on.
//
// ByteBuffer owns a resizable byte array. ReadStream and WriteStream are
// non-owning cursors over it that read and write fixed-width values through an
// endian.EndianEngine:
//
//	buf := bytebuf.NewByteBuffer(64)
//	ws := bytebuf.NewWriteStream(buf, endian.Default())
//	ws.WriteU32(42)
//
//	rs := bytebuf.NewReadStream(buf.Bytes(), endian.Default())
//	v, err := rs.ReadU32()
//
// Streams are not synchronized; several streams over one buffer must not be
// used from different goroutines.
package bytebuf
