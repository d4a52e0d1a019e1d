package bytebuf

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/datablock/endian"
	"github.com/arloliu/datablock/errs"
)

// ReadStream is a non-owning read cursor over a byte slice.
//
// Typed reads never go out of bounds: when fewer bytes remain than required
// they return errs.ErrTruncated and leave the cursor untouched.
type ReadStream struct {
	data   []byte
	offset int
	engine endian.EndianEngine
}

// NewReadStream creates a read cursor at the start of data.
func NewReadStream(data []byte, engine endian.EndianEngine) *ReadStream {
	return &ReadStream{data: data, engine: engine}
}

// Offset returns the current cursor position.
func (rs *ReadStream) Offset() int { return rs.offset }

// Len returns the total length of the underlying data.
func (rs *ReadStream) Len() int { return len(rs.data) }

// Remaining returns the number of unread bytes.
func (rs *ReadStream) Remaining() int { return len(rs.data) - rs.offset }

// IsEOF reports whether every byte was consumed.
func (rs *ReadStream) IsEOF() bool { return rs.offset >= len(rs.data) }

// CanRead reports whether n more bytes are available.
func (rs *ReadStream) CanRead(n int) bool {
	return n >= 0 && rs.Remaining() >= n
}

// Rewind moves the cursor back to the start.
func (rs *ReadStream) Rewind() { rs.offset = 0 }

// Seek moves the cursor to an absolute offset clamped to the data bounds.
func (rs *ReadStream) Seek(offset int) {
	rs.offset = min(max(offset, 0), len(rs.data))
}

// Skip advances the cursor by n bytes.
func (rs *ReadStream) Skip(n int) error {
	if !rs.CanRead(n) {
		return rs.truncated(n)
	}
	rs.offset += n

	return nil
}

// Read implements io.Reader. It copies up to len(p) bytes into p and returns
// io.EOF once no data remains.
func (rs *ReadStream) Read(p []byte) (int, error) {
	n := copy(p, rs.data[rs.offset:])
	rs.offset += n
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}

	return n, nil
}

// Peek returns the next n bytes without advancing the cursor.
func (rs *ReadStream) Peek(n int) ([]byte, error) {
	if !rs.CanRead(n) {
		return nil, rs.truncated(n)
	}

	return rs.data[rs.offset : rs.offset+n], nil
}

// ReadBytes returns the next n bytes. The returned slice aliases the underlying data.
func (rs *ReadStream) ReadBytes(n int) ([]byte, error) {
	b, err := rs.Peek(n)
	if err != nil {
		return nil, err
	}
	rs.offset += n

	return b, nil
}

// ReadU8 reads one byte.
func (rs *ReadStream) ReadU8() (uint8, error) {
	if !rs.CanRead(1) {
		return 0, rs.truncated(1)
	}
	v := rs.data[rs.offset]
	rs.offset++

	return v, nil
}

// ReadU16 reads a 16-bit unsigned integer.
func (rs *ReadStream) ReadU16() (uint16, error) {
	b, err := rs.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return rs.engine.Uint16(b), nil
}

// ReadU32 reads a 32-bit unsigned integer.
func (rs *ReadStream) ReadU32() (uint32, error) {
	b, err := rs.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return rs.engine.Uint32(b), nil
}

// ReadU64 reads a 64-bit unsigned integer.
func (rs *ReadStream) ReadU64() (uint64, error) {
	b, err := rs.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	return rs.engine.Uint64(b), nil
}

// ReadF32 reads an IEEE-754 single precision float.
func (rs *ReadStream) ReadF32() (float32, error) {
	v, err := rs.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads an IEEE-754 double precision float.
func (rs *ReadStream) ReadF64() (float64, error) {
	v, err := rs.ReadU64()
	return math.Float64frombits(v), err
}

func (rs *ReadStream) truncated(n int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncated, n, rs.offset, rs.Remaining())
}

// WriteStream is a write cursor over a ByteBuffer that grows the buffer on demand.
type WriteStream struct {
	buf    *ByteBuffer
	offset int
	engine endian.EndianEngine
}

// NewWriteStream creates a write cursor positioned at the end of buf.
func NewWriteStream(buf *ByteBuffer, engine endian.EndianEngine) *WriteStream {
	return &WriteStream{buf: buf, offset: buf.Len(), engine: engine}
}

// Buffer returns the backing buffer.
func (ws *WriteStream) Buffer() *ByteBuffer { return ws.buf }

// Offset returns the current cursor position.
func (ws *WriteStream) Offset() int { return ws.offset }

// Seek moves the cursor to an absolute offset, growing the buffer when the
// offset is past its end.
func (ws *WriteStream) Seek(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > ws.buf.Len() {
		ws.buf.Resize(offset)
	}
	ws.offset = offset
}

// Reserve makes room for n more bytes without changing the length.
func (ws *WriteStream) Reserve(n int) {
	ws.buf.Grow(n)
}

// Write writes p at the cursor, overwriting existing bytes and growing the buffer as needed.
func (ws *WriteStream) Write(p []byte) (int, error) {
	copy(ws.next(len(p)), p)
	return len(p), nil
}

// WriteString writes the bytes of s at the cursor.
func (ws *WriteStream) WriteString(s string) (int, error) {
	copy(ws.next(len(s)), s)
	return len(s), nil
}

// WriteByte writes a single byte at the cursor.
func (ws *WriteStream) WriteByte(c byte) error {
	ws.next(1)[0] = c
	return nil
}

// WriteU8 writes one byte.
func (ws *WriteStream) WriteU8(v uint8) {
	ws.next(1)[0] = v
}

// WriteU16 writes a 16-bit unsigned integer.
func (ws *WriteStream) WriteU16(v uint16) {
	ws.engine.PutUint16(ws.next(2), v)
}

// WriteU32 writes a 32-bit unsigned integer.
func (ws *WriteStream) WriteU32(v uint32) {
	ws.engine.PutUint32(ws.next(4), v)
}

// WriteU64 writes a 64-bit unsigned integer.
func (ws *WriteStream) WriteU64(v uint64) {
	ws.engine.PutUint64(ws.next(8), v)
}

// WriteF32 writes an IEEE-754 single precision float.
func (ws *WriteStream) WriteF32(v float32) {
	ws.WriteU32(math.Float32bits(v))
}

// WriteF64 writes an IEEE-754 double precision float.
func (ws *WriteStream) WriteF64(v float64) {
	ws.WriteU64(math.Float64bits(v))
}

// PatchU32 overwrites a 32-bit value at an absolute offset without moving the cursor.
func (ws *WriteStream) PatchU32(offset int, v uint32) {
	ws.engine.PutUint32(ws.buf.B[offset:offset+4], v)
}

// next returns the n bytes at the cursor, extending the buffer when needed,
// and advances the cursor past them.
func (ws *WriteStream) next(n int) []byte {
	end := ws.offset + n
	if end > ws.buf.Len() {
		ws.buf.ExtendOrGrow(end - ws.buf.Len())
	}
	b := ws.buf.B[ws.offset:end]
	ws.offset = end

	return b
}
