package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

func encodeBinary(t *testing.T, b *DataBlock, opts ...BinaryEncoderOption) []byte {
	t.Helper()

	enc, err := NewBinaryEncoder(opts...)
	require.NoError(t, err)
	data, err := enc.Encode(b)
	require.NoError(t, err)

	return data
}

func decodeBinary(t *testing.T, data []byte, opts ...DecoderOption) *DataBlock {
	t.Helper()

	dec, err := NewBinaryDecoder(opts...)
	require.NoError(t, err)
	b, err := dec.Decode(data)
	require.NoError(t, err)

	return b
}

func smallTree(t *testing.T) *DataBlock {
	t.Helper()

	root := New()
	_, err := root.SetS32("x", 5)
	require.NoError(t, err)
	_, err = root.SetString("name", "hi")
	require.NoError(t, err)
	child, err := root.AddDataBlock("child")
	require.NoError(t, err)
	_, err = child.SetF32("y", 1.5)
	require.NoError(t, err)

	return root
}

func TestBinary_Layout(t *testing.T) {
	data := encodeBinary(t, smallTree(t))

	want := []byte{
		0x64, 0x8d, 0xd3, 0x14, // magic
		0x00, 0x00, 0x00, 0x00, // flags
		0x04, 0x00, 0x00, 0x00, // string count
		0x04, 0x00, 0x00, 0x00, // id counter
		0x01, 0x00, 'x', 0x01, 0x00, 0x00, 0x00,
		0x04, 0x00, 'n', 'a', 'm', 'e', 0x02, 0x00, 0x00, 0x00,
		0x05, 0x00, 'c', 'h', 'i', 'l', 'd', 0x03, 0x00, 0x00, 0x00,
		0x01, 0x00, 'y', 0x04, 0x00, 0x00, 0x00,
		// root block
		0x02, 0x00, // params
		0x06, 0x00, 0x00, 0x00, // complex size
		0x01, 0x00, 0x00, 0x01, 0x05, 0x00, 0x00, 0x00, // x:S32=5
		0x02, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00, 0x00, // name:String at offset 0
		0x02, 0x00, 0x00, 0x00, 'h', 'i',
		0x01, 0x00, // children
		0x03, 0x00, 0x00, 0x00, // "child"
		0x01, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x04, 0x00, 0x00, 0x05, 0x00, 0x00, 0xc0, 0x3f, // y:F32=1.5
		0x00, 0x00,
	}
	require.Equal(t, want, data)
}

func TestBinary_RoundTrip(t *testing.T) {
	src := New()
	fillAllTypes(t, src)
	child, err := src.AddNewDataBlock("child")
	require.NoError(t, err)
	fillAllTypes(t, child)
	_, err = child.AddNewDataBlock("empty")
	require.NoError(t, err)
	_, err = src.AddNewDataBlock("child")
	require.NoError(t, err)

	tests := []struct {
		name string
		opts []BinaryEncoderOption
	}{
		{"plain", nil},
		{"checksum", []BinaryEncoderOption{WithChecksum(true)}},
		{"zstd", []BinaryEncoderOption{WithCompression(format.CompressionZstd)}},
		{"s2", []BinaryEncoderOption{WithCompression(format.CompressionS2)}},
		{"lz4+checksum", []BinaryEncoderOption{WithCompression(format.CompressionLZ4), WithChecksum(true)}},
		{"none", []BinaryEncoderOption{WithCompression(format.CompressionNone)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeBinary(t, src, tt.opts...)
			got := decodeBinary(t, data)

			require.True(t, got.Equal(src))
			requireAllTypes(t, got)
			requireAllTypes(t, got.GetDataBlock("child"))
			require.Equal(t, 1, got.FindDataBlockIndexReverse("child"))
		})
	}
}

func TestBinary_ReencodeIsStable(t *testing.T) {
	first := encodeBinary(t, smallTree(t))
	second := encodeBinary(t, decodeBinary(t, first))
	require.Equal(t, first, second)
}

func TestBinary_ChecksumMismatch(t *testing.T) {
	data := encodeBinary(t, smallTree(t), WithChecksum(true))
	data[len(data)/2] ^= 0xff

	dec, err := NewBinaryDecoder()
	require.NoError(t, err)
	_, err = dec.Decode(data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestBinary_Truncated(t *testing.T) {
	data := encodeBinary(t, smallTree(t))
	dec, err := NewBinaryDecoder()
	require.NoError(t, err)

	for n := range len(data) {
		_, err := dec.Decode(data[:n])
		require.ErrorIs(t, err, errs.ErrTruncated, "prefix of %d bytes", n)
	}
}

func TestBinary_InvalidInput(t *testing.T) {
	valid := encodeBinary(t, smallTree(t))
	dec, err := NewBinaryDecoder()
	require.NoError(t, err)

	badMagic := bytes.Clone(valid)
	badMagic[0] = 0

	trailing := append(bytes.Clone(valid), 0)

	badType := bytes.Clone(valid)
	badType[bytes.Index(badType, []byte{0x01, 0x00, 0x00, 0x01})+3] = 0xee

	unknownName := bytes.Clone(valid)
	unknownName[bytes.Index(unknownName, []byte{0x01, 0x00, 0x00, 0x01})] = 0x09

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", badMagic, errs.ErrInvalidFormat},
		{"trailing bytes", trailing, errs.ErrInvalidFormat},
		{"unknown param type", badType, errs.ErrInvalidParamType},
		{"unknown name id", unknownName, errs.ErrInvalidStringID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dec.Decode(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBinary_IDCounterAboveCount(t *testing.T) {
	// string count at offset 8, id counter at offset 12
	const counterOffset = 12

	t.Run("raised counter round trips", func(t *testing.T) {
		src := smallTree(t)
		src.Shared().SetStringsIndexCounter(10)
		_, err := src.SetS32("z", 7)
		require.NoError(t, err)
		require.Equal(t, SharedStringID(11), src.Shared().StringID("z"))

		back := decodeBinary(t, encodeBinary(t, src))
		require.True(t, back.Equal(src))
		require.Equal(t, SharedStringID(11), back.Shared().StringID("z"))
		require.Equal(t, uint32(11), back.Shared().StringsIndexCounter())
	})

	t.Run("loaded counter keeps growing", func(t *testing.T) {
		data := encodeBinary(t, smallTree(t))
		data[counterOffset] = 7

		loaded := decodeBinary(t, data)
		require.Equal(t, uint32(7), loaded.Shared().StringsIndexCounter())
		_, err := loaded.SetS32("w", 6)
		require.NoError(t, err)
		require.Equal(t, SharedStringID(8), loaded.Shared().StringID("w"))

		back := decodeBinary(t, encodeBinary(t, loaded))
		require.True(t, back.Equal(loaded))
		require.Equal(t, SharedStringID(8), back.Shared().StringID("w"))
	})

	dec, err := NewBinaryDecoder()
	require.NoError(t, err)

	t.Run("id above counter", func(t *testing.T) {
		data := encodeBinary(t, smallTree(t))
		data[counterOffset] = 3 // "y" has id 4

		_, err := dec.Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidStringID)
	})

	t.Run("counter out of range", func(t *testing.T) {
		data := encodeBinary(t, smallTree(t))
		copy(data[counterOffset:], []byte{0xff, 0xff, 0xff, 0xff})

		_, err := dec.Decode(data)
		require.ErrorIs(t, err, errs.ErrInvalidStringID)
	})
}

func TestBinary_CorruptionNeverPanics(t *testing.T) {
	valid := encodeBinary(t, buildSample(t))
	dec, err := NewBinaryDecoder()
	require.NoError(t, err)

	for i := range valid {
		for _, mask := range []byte{0x01, 0x80, 0xff} {
			data := bytes.Clone(valid)
			data[i] ^= mask
			require.NotPanics(t, func() {
				_, _ = dec.Decode(data)
			}, "byte %d mask %#x", i, mask)
		}
	}
}

func TestBinary_Comments(t *testing.T) {
	src := New()
	_, err := src.AddComment(format.ParamCommentCpp, " header")
	require.NoError(t, err)
	_, err = src.SetS32("x", 1)
	require.NoError(t, err)
	_, err = src.AddCommentBlock(format.ParamCommentC, " block note ")
	require.NoError(t, err)
	child, err := src.AddNewDataBlock("child")
	require.NoError(t, err)
	_, err = child.AddComment(format.ParamCommentCppTrailing, "inner")
	require.NoError(t, err)

	data := encodeBinary(t, src)

	kept := decodeBinary(t, data)
	require.True(t, kept.Equal(src))
	require.True(t, kept.HasComments())

	stripped := decodeBinary(t, data, WithoutComments())
	require.False(t, stripped.HasComments())
	require.Equal(t, 1, stripped.ParamsCount())
	require.Equal(t, int32(1), stripped.GetS32("x", 0))
	require.Equal(t, 1, stripped.DataBlocksCount())
	require.Equal(t, 0, stripped.GetDataBlock("child").ParamsCount())
}

func TestBinary_DecodeIntoChild(t *testing.T) {
	data := encodeBinary(t, smallTree(t))

	dst := New()
	_, err := dst.SetString("other", "kept")
	require.NoError(t, err)
	slot, err := dst.AddNewDataBlock("slot")
	require.NoError(t, err)
	_, err = slot.SetS32("stale", 1)
	require.NoError(t, err)

	dec, err := NewBinaryDecoder()
	require.NoError(t, err)
	require.NoError(t, dec.DecodeInto(slot, data))

	require.Equal(t, "slot", slot.Name())
	require.False(t, slot.IsParamExists("stale"))
	require.Equal(t, int32(5), slot.GetS32("x", 0))
	require.Equal(t, float32(1.5), slot.GetDataBlock("child").GetF32("y", 0))
	require.Equal(t, "kept", dst.GetString("other", ""))

	// a failed decode leaves the target empty
	require.Error(t, dec.DecodeInto(slot, data[:10]))
	require.True(t, slot.IsEmpty())
	require.Equal(t, "slot", slot.Name())
}

func TestBinary_EncodeSubtree(t *testing.T) {
	root := smallTree(t)
	data := encodeBinary(t, root.GetDataBlock("child"))

	got := decodeBinary(t, data)
	require.Equal(t, float32(1.5), got.GetF32("y", 0))
	require.Equal(t, 0, got.DataBlocksCount())
}

func TestBinary_EncoderOptions(t *testing.T) {
	_, err := NewBinaryEncoder(WithCompression(format.CompressionType(9)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = NewBinaryDecoder(WithMaxDepth(0))
	require.Error(t, err)
}

func TestBinary_MaxDepth(t *testing.T) {
	root := New()
	b := root
	for range 10 {
		var err error
		b, err = b.AddNewDataBlock("n")
		require.NoError(t, err)
	}
	data := encodeBinary(t, root)

	dec, err := NewBinaryDecoder(WithMaxDepth(5))
	require.NoError(t, err)
	_, err = dec.Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)

	decodeBinary(t, data, WithMaxDepth(10))
}

func TestBinary_HeaderFlags(t *testing.T) {
	data := encodeBinary(t, New(), WithChecksum(true), WithCompression(format.CompressionS2))
	flags := format.BinaryFlag(le.Uint32(data[4:]))
	require.True(t, flags.HasChecksum())
	require.Equal(t, format.CompressionS2, flags.Compression())
}
