package compress

import (
	"fmt"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

// Compressor compresses a serialized DataBlock body.
//
// The returned slice is owned by the caller. Implementations must not modify data.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a body produced by the matching Compressor.
//
// Corrupted or foreign input yields an error, never a panic.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for a compression type.
//
// Returns errs.ErrUnsupportedCompression for unknown types.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedCompression, uint8(compressionType))
}

// Stats describes the effect of compressing one body.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int
	CompressedSize int
}

// Ratio returns the compressed size divided by the original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1.0 - s.Ratio()) * 100.0
}

// Measure compresses data with the codec of compressionType and reports the sizes.
func Measure(compressionType format.CompressionType, data []byte) (Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return Stats{}, err
	}

	packed, err := codec.Compress(data)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Algorithm:      compressionType,
		OriginalSize:   len(data),
		CompressedSize: len(packed),
	}, nil
}

// maxDecompressedSize bounds the memory a single body may expand to.
const maxDecompressedSize = 256 << 20
