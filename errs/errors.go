// Package errs defines the sentinel errors returned by the datablock packages.
//
// Errors are wrapped with additional context using fmt.Errorf("%w: ...") and
// should be matched with errors.Is.
package errs

import "errors"

// Binary format errors.
var (
	// ErrInvalidFormat indicates a bad magic number or a malformed binary header.
	ErrInvalidFormat = errors.New("invalid datablock format")
	// ErrTruncated indicates that the input ended before a declared length was satisfied.
	ErrTruncated = errors.New("datablock data truncated")
	// ErrChecksumMismatch indicates a CRC32 footer that does not match the content.
	ErrChecksumMismatch = errors.New("datablock checksum mismatch")
	// ErrUnsupportedCompression indicates an unknown compression type in the header flags.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
	// ErrInvalidStringID indicates a reference to a string id missing from the string table.
	ErrInvalidStringID = errors.New("invalid shared string id")
)

// Text format errors.
var (
	// ErrSyntax indicates malformed text input.
	ErrSyntax = errors.New("datablock syntax error")
)

// Tree and param errors.
var (
	// ErrTypeMismatch indicates that a param already exists under the name with a different type.
	ErrTypeMismatch = errors.New("param type mismatch")
	// ErrInvalidParamType indicates an unknown or unexpected param type tag.
	ErrInvalidParamType = errors.New("invalid param type")
	// ErrInvalidParamIndex indicates a param index outside of the block's param range.
	ErrInvalidParamIndex = errors.New("invalid param index")
	// ErrInvalidBlockIndex indicates a child index outside of the block's child range.
	ErrInvalidBlockIndex = errors.New("invalid data block index")
	// ErrStaleBlock indicates an operation on a data block that was removed from its tree.
	ErrStaleBlock = errors.New("stale data block handle")
	// ErrTooManyParams indicates that a block reached the maximum params count.
	ErrTooManyParams = errors.New("too many params in data block")
	// ErrTooManyBlocks indicates that a block reached the maximum child count.
	ErrTooManyBlocks = errors.New("too many child data blocks")
	// ErrTooManyStrings indicates that the shared string table ran out of name ids.
	ErrTooManyStrings = errors.New("too many shared strings")
	// ErrStringTooLong indicates a name longer than the binary format can store.
	ErrStringTooLong = errors.New("string too long")
)
