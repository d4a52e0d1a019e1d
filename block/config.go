package block

import (
	"fmt"

	"github.com/go-kit/log"

	"github.com/arloliu/datablock/compress"
	"github.com/arloliu/datablock/format"
	"github.com/arloliu/datablock/internal/options"
)

// DefaultMaxDepth is the default nesting limit enforced by the decoders.
const DefaultMaxDepth = 4096

// BinaryEncoderConfig holds the settings of a BinaryEncoder.
type BinaryEncoderConfig struct {
	flags  format.BinaryFlag
	logger log.Logger
}

// BinaryEncoderOption configures a BinaryEncoder.
type BinaryEncoderOption = options.Option[*BinaryEncoderConfig]

func newBinaryEncoderConfig() *BinaryEncoderConfig {
	return &BinaryEncoderConfig{logger: log.NewNopLogger()}
}

// WithChecksum appends a CRC32 footer covering every preceding byte.
func WithChecksum(enabled bool) BinaryEncoderOption {
	return options.NoError(func(c *BinaryEncoderConfig) {
		c.flags = c.flags.WithChecksum(enabled)
	})
}

// WithCompression compresses the body (string table and tree) with the given
// algorithm. format.CompressionNone stores the body as is.
// Available compression types: format.CompressionZstd, format.CompressionS2,
// format.CompressionLZ4, format.CompressionNone.
func WithCompression(comp format.CompressionType) BinaryEncoderOption {
	return options.New(func(c *BinaryEncoderConfig) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return fmt.Errorf("invalid body compression: %w", err)
		}
		c.flags = c.flags.WithCompression(comp)

		return nil
	})
}

// WithBinaryEncoderLogger sets the logger used to report encoding failures.
func WithBinaryEncoderLogger(logger log.Logger) BinaryEncoderOption {
	return options.NoError(func(c *BinaryEncoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// TextEncoderConfig holds the settings of a TextEncoder.
type TextEncoderConfig struct {
	flags  format.TextFlag
	indent string
	logger log.Logger
}

// TextEncoderOption configures a TextEncoder.
type TextEncoderOption = options.Option[*TextEncoderConfig]

func newTextEncoderConfig() *TextEncoderConfig {
	return &TextEncoderConfig{indent: "  ", logger: log.NewNopLogger()}
}

// WithCompact writes blocks holding a single param and no children on one
// line and omits blank separator lines.
func WithCompact(enabled bool) TextEncoderOption {
	return options.NoError(func(c *TextEncoderConfig) {
		if enabled {
			c.flags |= format.TextFlagCompact
		} else {
			c.flags &^= format.TextFlagCompact
		}
	})
}

// WithIndent sets the string written once per nesting level. The default is
// two spaces.
func WithIndent(indent string) TextEncoderOption {
	return options.New(func(c *TextEncoderConfig) error {
		for _, r := range indent {
			if r != ' ' && r != '\t' {
				return fmt.Errorf("invalid indent %q: only spaces and tabs are allowed", indent)
			}
		}
		c.indent = indent

		return nil
	})
}

// WithTextEncoderLogger sets the logger used to report encoding failures.
func WithTextEncoderLogger(logger log.Logger) TextEncoderOption {
	return options.NoError(func(c *TextEncoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// DecoderConfig holds the settings shared by the binary decoder and the text
// parser.
type DecoderConfig struct {
	logger       log.Logger
	source       string
	skipComments bool
	maxDepth     int
}

// DecoderOption configures a BinaryDecoder or a TextDecoder.
type DecoderOption = options.Option[*DecoderConfig]

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{logger: log.NewNopLogger(), maxDepth: DefaultMaxDepth}
}

// WithLogger sets the logger that receives load diagnostics.
func WithLogger(logger log.Logger) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithSource names the input in diagnostics and syntax errors, typically a
// file path.
func WithSource(source string) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.source = source
	})
}

// WithoutComments drops comment entries while decoding.
func WithoutComments() DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.skipComments = true
	})
}

// WithMaxDepth sets the deepest block nesting accepted by the decoder.
func WithMaxDepth(depth int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if depth < 1 {
			return fmt.Errorf("invalid max depth %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}
