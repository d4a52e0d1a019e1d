package section

import (
	"fmt"

	"github.com/arloliu/datablock/endian"
	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

// BinaryHeader is the fixed 8-byte prefix of a binary DataBlock.
//
//	[magic:u32][flags:u32]
type BinaryHeader struct {
	Magic uint32
	Flags format.BinaryFlag
}

// NewBinaryHeader creates a header with the given flags.
func NewBinaryHeader(flags format.BinaryFlag) BinaryHeader {
	return BinaryHeader{Magic: Magic, Flags: flags}
}

// Parse parses the header from the start of data.
//
// Returns errs.ErrTruncated when data is shorter than the header and
// errs.ErrInvalidFormat for a bad magic number or reserved flag bits.
func (h *BinaryHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, have %d", errs.ErrTruncated, HeaderSize, len(data))
	}

	engine := endian.Default()
	h.Magic = engine.Uint32(data[0:4])
	h.Flags = format.BinaryFlag(engine.Uint32(data[4:8]))

	return h.Validate()
}

// Validate checks the magic number, reserved bits and compression type.
func (h *BinaryHeader) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: bad magic 0x%08x", errs.ErrInvalidFormat, h.Magic)
	}
	if h.Flags&format.BinaryReservedMask != 0 {
		return fmt.Errorf("%w: reserved flag bits set (0x%08x)", errs.ErrInvalidFormat, uint32(h.Flags))
	}
	if c := h.Flags.Compression(); c != 0 && c != format.CompressionZstd && c != format.CompressionS2 && c != format.CompressionLZ4 {
		return fmt.Errorf("%w: %d", errs.ErrUnsupportedCompression, uint8(c))
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h BinaryHeader) AppendTo(dst []byte) []byte {
	engine := endian.Default()
	dst = engine.AppendUint32(dst, h.Magic)

	return engine.AppendUint32(dst, uint32(h.Flags))
}

// Bytes serializes the header into a new byte slice.
func (h BinaryHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// IsBinary reports whether data starts with the binary DataBlock magic number.
func IsBinary(data []byte) bool {
	return len(data) >= 4 && endian.Default().Uint32(data) == Magic
}
