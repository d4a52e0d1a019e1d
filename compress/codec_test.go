package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

func sampleBody() []byte {
	var b bytes.Buffer
	for i := range 200 {
		b.WriteString("material{shader:String=standard;roughness:F32=0.5;}")
		b.WriteByte(byte(i))
	}

	return b.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	inputs := map[string][]byte{
		"body":   sampleBody(),
		"single": {0x42},
		"empty":  {},
	}

	for _, ct := range types {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for name, data := range inputs {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, len(data), len(restored))
				if len(data) > 0 {
					require.Equal(t, data, restored)
				}
			})
		}
	}
}

func TestCodecs_Compress(t *testing.T) {
	body := sampleBody()

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		stats, err := Measure(ct, body)
		require.NoError(t, err)
		require.Equal(t, len(body), stats.OriginalSize)
		require.Less(t, stats.CompressedSize, stats.OriginalSize, ct.String())
		require.Less(t, stats.Ratio(), 1.0)
		require.Greater(t, stats.SpaceSavings(), 0.0)
	}
}

func TestCodecs_CorruptInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestLZ4_DecompressSized(t *testing.T) {
	body := sampleBody()
	codec := NewLZ4Compressor()

	packed, err := codec.Compress(body)
	require.NoError(t, err)

	restored, err := codec.DecompressSized(packed, len(body))
	require.NoError(t, err)
	require.Equal(t, body, restored)

	// An undersized hint still succeeds by growing the buffer.
	restored, err = codec.DecompressSized(packed, 8)
	require.NoError(t, err)
	require.Equal(t, body, restored)
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x9))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = Measure(format.CompressionType(0), nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestStats_Empty(t *testing.T) {
	var s Stats
	require.Zero(t, s.Ratio())
	require.Zero(t, s.SpaceSavings())
}
