package bytebuf

import (
	"bytes"
	"io"
)

// DefaultGrowSize is the minimum growth step of a ByteBuffer.
const DefaultGrowSize = 1024 * 4

// ByteBuffer is an owned, resizable byte array.
//
// Its length is the logical size of the data and its capacity the allocated
// storage. The zero value is an empty buffer ready to use.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// NewByteBufferFrom creates a ByteBuffer holding a copy of data.
func NewByteBufferFrom(data []byte) *ByteBuffer {
	bb := &ByteBuffer{}
	bb.SetData(data)

	return bb
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset empties the buffer but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Clear empties the buffer and releases its memory.
func (bb *ByteBuffer) Clear() {
	bb.B = nil
}

// Resize sets the length of the buffer to n.
//
// Existing content up to min(n, Len()) is kept; bytes past the old length are
// zeroed.
func (bb *ByteBuffer) Resize(n int) {
	if n < 0 {
		panic("bytebuf: negative size")
	}

	cur := len(bb.B)
	if n <= cur {
		bb.B = bb.B[:n]
		return
	}

	bb.Grow(n - cur)
	bb.B = bb.B[:n]
	clear(bb.B[cur:n])
}

// Reserve ensures the capacity of the buffer is at least n bytes.
func (bb *ByteBuffer) Reserve(n int) {
	if n > cap(bb.B) {
		bb.Grow(n - len(bb.B))
	}
}

// Fill sets every byte of the buffer to v.
func (bb *ByteBuffer) Fill(v byte) {
	for i := range bb.B {
		bb.B[i] = v
	}
}

// SetData replaces the content of the buffer with a copy of data.
func (bb *ByteBuffer) SetData(data []byte) {
	bb.B = append(bb.B[:0], data...)
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// Small buffers grow by DefaultGrowSize; larger buffers grow by 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultGrowSize
	if cap(bb.B) > 4*DefaultGrowSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
// The returned slice covers the newly extended bytes.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Append appends data to the end of the buffer.
func (bb *ByteBuffer) Append(data []byte) {
	bb.B = append(bb.B, data...)
}

// Insert opens a gap of n zero bytes at offset at, shifting the tail right.
func (bb *ByteBuffer) Insert(at, n int) {
	if at < 0 || at > len(bb.B) || n < 0 {
		panic("bytebuf: insert out of range")
	}
	if n == 0 {
		return
	}

	oldLen := len(bb.B)
	bb.ExtendOrGrow(n)
	copy(bb.B[at+n:], bb.B[at:oldLen])
	clear(bb.B[at : at+n])
}

// InsertAt inserts data at offset at, shifting the tail right.
func (bb *ByteBuffer) InsertAt(at int, data []byte) {
	bb.Insert(at, len(data))
	copy(bb.B[at:], data)
}

// Erase removes n bytes starting at offset at, shifting the tail left.
func (bb *ByteBuffer) Erase(at, n int) {
	if at < 0 || n < 0 || at+n > len(bb.B) {
		panic("bytebuf: erase out of range")
	}

	bb.B = append(bb.B[:at], bb.B[at+n:]...)
}

// Equal reports whether both buffers hold the same bytes.
func (bb *ByteBuffer) Equal(other *ByteBuffer) bool {
	return bytes.Equal(bb.B, other.B)
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString appends s to the buffer.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteByte appends c to the buffer.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ReadFrom appends everything read from r until EOF.
func (bb *ByteBuffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		bb.Grow(DefaultGrowSize)
		start := len(bb.B)
		n, err := r.Read(bb.B[start:cap(bb.B)])
		bb.B = bb.B[:start+n]
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}
