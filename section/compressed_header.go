package section

import (
	"fmt"

	"github.com/arloliu/datablock/endian"
	"github.com/arloliu/datablock/errs"
)

// CompressedHeader precedes a compressed body.
//
//	[rawSize:u32][packedSize:u32][packed bytes]
type CompressedHeader struct {
	RawSize    uint32
	PackedSize uint32
}

// Parse parses the header from the start of data and checks that the packed
// bytes are present.
func (h *CompressedHeader) Parse(data []byte) error {
	if len(data) < CompressedHeaderSize {
		return fmt.Errorf("%w: compressed header needs %d bytes, have %d", errs.ErrTruncated, CompressedHeaderSize, len(data))
	}

	engine := endian.Default()
	h.RawSize = engine.Uint32(data[0:4])
	h.PackedSize = engine.Uint32(data[4:8])

	if uint64(len(data)-CompressedHeaderSize) < uint64(h.PackedSize) {
		return fmt.Errorf("%w: compressed body declares %d bytes, have %d",
			errs.ErrTruncated, h.PackedSize, len(data)-CompressedHeaderSize)
	}

	return nil
}

// AppendTo appends the serialized header to dst.
func (h CompressedHeader) AppendTo(dst []byte) []byte {
	engine := endian.Default()
	dst = engine.AppendUint32(dst, h.RawSize)

	return engine.AppendUint32(dst, h.PackedSize)
}
