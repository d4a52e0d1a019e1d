package block

import (
	"fmt"
	"hash/crc32"
	"io"

	"github.com/go-kit/log/level"

	"github.com/arloliu/datablock/bytebuf"
	"github.com/arloliu/datablock/compress"
	"github.com/arloliu/datablock/endian"
	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/internal/options"
	"github.com/arloliu/datablock/internal/pool"
	"github.com/arloliu/datablock/section"
)

// BinaryEncoder writes DataBlock trees in the binary format:
//
//	[magic:u32][flags:u32] body [crc32:u32]?
//
// body is the shared string table followed by the recursive block encoding:
//
//	[stringCount:u32][idCounter:u32]{[len:u16][bytes][id:u32]}*
//	[paramsCount:u16][complexSize:u32][params][complex][childCount:u16]{[nameIdAndKind:u32] block}*
//
// When a compression is configured the body is stored as
// [rawSize:u32][packedSize:u32][packed]. The CRC covers the bytes as stored.
//
// A BinaryEncoder holds no per-call state and is safe for concurrent use.
type BinaryEncoder struct {
	cfg *BinaryEncoderConfig
}

// NewBinaryEncoder creates a binary encoder.
func NewBinaryEncoder(opts ...BinaryEncoderOption) (*BinaryEncoder, error) {
	cfg := newBinaryEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &BinaryEncoder{cfg: cfg}, nil
}

// Encode serializes b and its descendants. The whole string table of the tree
// is written, so b does not need to be the topmost block.
func (e *BinaryEncoder) Encode(b *DataBlock) ([]byte, error) {
	data, err := e.encode(b)
	if err != nil {
		level.Error(e.cfg.logger).Log("msg", "failed to encode binary datablock", "err", err)
		return nil, err
	}

	return data, nil
}

// WriteTo encodes b and writes the result to w.
func (e *BinaryEncoder) WriteTo(w io.Writer, b *DataBlock) (int64, error) {
	data, err := e.Encode(b)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)

	return int64(n), err
}

func (e *BinaryEncoder) encode(b *DataBlock) ([]byte, error) {
	if !b.IsValid() {
		return nil, errs.ErrStaleBlock
	}

	body := pool.GetBinaryBuffer()
	defer pool.PutBinaryBuffer(body)

	ws := bytebuf.NewWriteStream(body, endian.Default())
	if err := writeStrings(ws, b.shared); err != nil {
		return nil, err
	}
	writeBlock(ws, b)

	flags := e.cfg.flags
	header := section.NewBinaryHeader(flags)
	out := make([]byte, 0, section.HeaderSize+section.CompressedHeaderSize+body.Len()+section.ChecksumSize)
	out = header.AppendTo(out)

	if comp := flags.Compression(); comp != 0 {
		codec, err := compress.GetCodec(comp)
		if err != nil {
			return nil, err
		}
		packed, err := codec.Compress(body.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to compress body: %w", err)
		}
		ch := section.CompressedHeader{
			RawSize:    uint32(body.Len()), //nolint: gosec
			PackedSize: uint32(len(packed)), //nolint: gosec
		}
		out = ch.AppendTo(out)
		out = append(out, packed...)
	} else {
		out = append(out, body.Bytes()...)
	}

	if flags.HasChecksum() {
		out = endian.Default().AppendUint32(out, crc32.ChecksumIEEE(out))
	}

	return out, nil
}

func writeStrings(ws *bytebuf.WriteStream, s *Shared) error {
	ws.WriteU32(uint32(s.StringsCount())) //nolint: gosec
	ws.WriteU32(s.StringsIndexCounter())
	for id, str := range s.Strings() {
		if len(str) > MaxNameLength {
			return fmt.Errorf("%w: name of %d bytes", errs.ErrStringTooLong, len(str))
		}
		ws.WriteU16(uint16(len(str))) //nolint: gosec
		_, _ = ws.WriteString(str)
		ws.WriteU32(id)
	}

	return nil
}

func writeBlock(ws *bytebuf.WriteStream, b *DataBlock) {
	nd := b.node()

	ws.WriteU16(uint16(nd.paramsCount())) //nolint: gosec
	ws.WriteU32(uint32(len(nd.complex)))  //nolint: gosec
	_, _ = ws.Write(nd.params)
	_, _ = ws.Write(nd.complex)

	ws.WriteU16(uint16(len(nd.children))) //nolint: gosec
	for _, idx := range nd.children {
		child := b.shared.nodes[idx]
		ws.WriteU32(child.nameIDAndFlags & (nameIDMask | flagComment))
		writeBlock(ws, child.handle)
	}
}
