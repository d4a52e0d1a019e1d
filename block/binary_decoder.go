package block

import (
	"fmt"
	"hash/crc32"

	"github.com/go-kit/log/level"

	"github.com/arloliu/datablock/bytebuf"
	"github.com/arloliu/datablock/compress"
	"github.com/arloliu/datablock/endian"
	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/internal/options"
	"github.com/arloliu/datablock/section"
)

// BinaryDecoder reads the format written by BinaryEncoder.
//
// Every length, offset, type tag and name id is validated before use, so
// corrupted input yields an error and never a panic. On failure the target
// block is left empty.
type BinaryDecoder struct {
	cfg *DecoderConfig
}

// NewBinaryDecoder creates a binary decoder.
func NewBinaryDecoder(opts ...DecoderOption) (*BinaryDecoder, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &BinaryDecoder{cfg: cfg}, nil
}

// Decode decodes data into a new topmost block.
func (d *BinaryDecoder) Decode(data []byte) (*DataBlock, error) {
	b := New()
	if err := d.DecodeInto(b, data); err != nil {
		return nil, err
	}

	return b, nil
}

// DecodeInto replaces the content of dst with the tree decoded from data.
//
// A topmost dst adopts the string table of the input, ids included, and loses
// its name. Any other dst keeps its name and receives a copy of the decoded
// tree with names interned into its own table.
func (d *BinaryDecoder) DecodeInto(dst *DataBlock, data []byte) error {
	if !dst.IsValid() {
		return errs.ErrStaleBlock
	}

	target := dst
	if !dst.IsTopmost() {
		target = New()
	}

	target.Clear()
	err := d.decode(target, data)
	if err == nil && target != dst {
		err = dst.CopyFrom(target)
	}
	if err != nil {
		if dst.IsTopmost() {
			dst.Clear()
		} else {
			dst.ClearData()
		}
		level.Error(d.cfg.logger).Log("msg", "failed to decode binary datablock", "source", d.cfg.source, "err", err)

		return err
	}

	return nil
}

func (d *BinaryDecoder) decode(b *DataBlock, data []byte) error {
	var header section.BinaryHeader
	if err := header.Parse(data); err != nil {
		return err
	}

	body := data[section.HeaderSize:]
	if header.Flags.HasChecksum() {
		if len(body) < section.ChecksumSize {
			return fmt.Errorf("%w: missing checksum footer", errs.ErrTruncated)
		}
		stored := len(data) - section.ChecksumSize
		want := endian.Default().Uint32(data[stored:])
		if got := crc32.ChecksumIEEE(data[:stored]); got != want {
			level.Warn(d.cfg.logger).Log("msg", "datablock checksum mismatch", "source", d.cfg.source,
				"want", fmt.Sprintf("%08x", want), "got", fmt.Sprintf("%08x", got))

			return fmt.Errorf("%w: stored %08x, computed %08x", errs.ErrChecksumMismatch, want, got)
		}
		body = body[:len(body)-section.ChecksumSize]
	}

	if comp := header.Flags.Compression(); comp != 0 {
		raw, err := decompressBody(body, header)
		if err != nil {
			return err
		}
		body = raw
	}

	r := &binaryReader{
		rs:     bytebuf.NewReadStream(body, endian.Default()),
		shared: b.shared,
		cfg:    d.cfg,
	}
	if err := r.readStrings(); err != nil {
		return err
	}
	if err := r.readBlock(b, 0); err != nil {
		return err
	}
	if !r.rs.IsEOF() {
		return fmt.Errorf("%w: %d trailing bytes after root block", errs.ErrInvalidFormat, r.rs.Remaining())
	}

	return nil
}

func decompressBody(body []byte, header section.BinaryHeader) ([]byte, error) {
	var ch section.CompressedHeader
	if err := ch.Parse(body); err != nil {
		return nil, err
	}
	packed := body[section.CompressedHeaderSize:]
	if len(packed) != int(ch.PackedSize) {
		return nil, fmt.Errorf("%w: %d trailing bytes after compressed body", errs.ErrInvalidFormat, len(packed)-int(ch.PackedSize))
	}

	comp := header.Flags.Compression()
	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	var raw []byte
	if lz, ok := codec.(compress.LZ4Compressor); ok {
		raw, err = lz.DecompressSized(packed, int(ch.RawSize))
	} else {
		raw, err = codec.Decompress(packed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s body: %w", errs.ErrInvalidFormat, comp, err)
	}
	if len(raw) != int(ch.RawSize) {
		return nil, fmt.Errorf("%w: body decompressed to %d bytes, header declares %d", errs.ErrInvalidFormat, len(raw), ch.RawSize)
	}

	return raw, nil
}

type binaryReader struct {
	rs     *bytebuf.ReadStream
	shared *Shared
	cfg    *DecoderConfig
}

func (r *binaryReader) readStrings() error {
	count, err := r.rs.ReadU32()
	if err != nil {
		return err
	}
	counter, err := r.rs.ReadU32()
	if err != nil {
		return err
	}
	if counter > MaxSharedStringID {
		return fmt.Errorf("%w: id counter %d", errs.ErrInvalidStringID, counter)
	}
	// each entry takes at least 6 bytes
	if uint64(count)*6 > uint64(r.rs.Remaining()) {
		return fmt.Errorf("%w: string table declares %d entries", errs.ErrTruncated, count)
	}

	for range count {
		size, err := r.rs.ReadU16()
		if err != nil {
			return err
		}
		name, err := r.rs.ReadBytes(int(size))
		if err != nil {
			return err
		}
		id, err := r.rs.ReadU32()
		if err != nil {
			return err
		}
		// the counter is the last id ever handed out
		if id == 0 || id > counter {
			return fmt.Errorf("%w: id %d above the id counter %d", errs.ErrInvalidStringID, id, counter)
		}
		if err := r.shared.SetString(string(name), id); err != nil {
			return err
		}
	}
	r.shared.SetStringsIndexCounter(counter)

	return nil
}

func (r *binaryReader) readBlock(b *DataBlock, depth int) error {
	if depth > r.cfg.maxDepth {
		return fmt.Errorf("%w: blocks nested deeper than %d", errs.ErrInvalidFormat, r.cfg.maxDepth)
	}

	count, err := r.rs.ReadU16()
	if err != nil {
		return err
	}
	complexSize, err := r.rs.ReadU32()
	if err != nil {
		return err
	}
	params, err := r.rs.ReadBytes(int(count) * paramRecordSize)
	if err != nil {
		return err
	}
	if uint64(complexSize) > uint64(r.rs.Remaining()) {
		return fmt.Errorf("%w: complex region of %d bytes", errs.ErrTruncated, complexSize)
	}
	complexBytes, err := r.rs.ReadBytes(int(complexSize))
	if err != nil {
		return err
	}

	nd := b.node()
	nd.params = append(nd.params[:0], params...)
	nd.complex = append(nd.complex[:0], complexBytes...)
	if err := r.validateParams(nd); err != nil {
		return err
	}
	if r.cfg.skipComments && !nd.isComment() {
		for i := nd.paramsCount() - 1; i >= 0; i-- {
			if nd.paramType(i).IsComment() {
				nd.removeParam(i)
			}
		}
		nd.compact()
	}

	childCount, err := r.rs.ReadU16()
	if err != nil {
		return err
	}
	for range childCount {
		kind, err := r.rs.ReadU32()
		if err != nil {
			return err
		}
		if kind&^(nameIDMask|flagComment) != 0 {
			return fmt.Errorf("%w: bad child header 0x%08x", errs.ErrInvalidFormat, kind)
		}

		isComment := kind&flagComment != 0
		nameID := kind & nameIDMask
		switch {
		case isComment && nameID != 0:
			return fmt.Errorf("%w: comment block with name id %d", errs.ErrInvalidFormat, nameID)
		case !isComment && !r.shared.HasStringID(nameID):
			return fmt.Errorf("%w: block name id %d", errs.ErrInvalidStringID, nameID)
		}

		child, err := b.addChild(kind)
		if err != nil {
			return err
		}
		if err := r.readBlock(child, depth+1); err != nil {
			return err
		}
		if isComment {
			if _, _, ok := child.Comment(); !ok || child.ParamsCount() != 1 || child.DataBlocksCount() != 0 {
				return fmt.Errorf("%w: malformed comment block", errs.ErrInvalidFormat)
			}
			if r.cfg.skipComments {
				b.RemoveDataBlockAt(b.DataBlocksCount() - 1)
			}
		}
	}

	return nil
}

func (r *binaryReader) validateParams(nd *node) error {
	complexSize := uint64(len(nd.complex))
	for i := range nd.paramsCount() {
		nameID, typ, value := nd.record(i)
		if !typ.IsValid() {
			return fmt.Errorf("%w: tag %d at param %d", errs.ErrInvalidParamType, uint8(typ), i)
		}

		if typ.IsComment() {
			if nameID != 0 {
				return fmt.Errorf("%w: comment param %d has name id %d", errs.ErrInvalidFormat, i, nameID)
			}
		} else if !r.shared.HasStringID(nameID) {
			return fmt.Errorf("%w: param %d name id %d", errs.ErrInvalidStringID, i, nameID)
		}

		switch {
		case typ.IsInPlace():
		case typ.HasStringPayload():
			if uint64(value)+4 > complexSize {
				return fmt.Errorf("%w: string param %d offset %d", errs.ErrInvalidFormat, i, value)
			}
			if uint64(value)+4+uint64(le.Uint32(nd.complex[value:])) > complexSize {
				return fmt.Errorf("%w: string param %d overruns complex region", errs.ErrInvalidFormat, i)
			}
		default:
			if uint64(value)+uint64(typ.Size()) > complexSize {
				return fmt.Errorf("%w: %s param %d offset %d", errs.ErrInvalidFormat, typ, i, value)
			}
		}
	}

	return nil
}
