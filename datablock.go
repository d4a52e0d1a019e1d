// Package datablock provides a hierarchical, typed key-value container with a
// compact binary format and a human-editable text format.
//
// A DataBlock is a named node holding ordered, typed params (integers, floats,
// bools, small vectors and matrices, strings) and ordered child blocks. Names
// may repeat and all names of a tree are interned once in a shared string
// table.
//
// # Core Features
//
//   - Typed params stored in a compact fixed-record layout
//   - Binary format with optional CRC32 footer and body compression (Zstd, S2, LZ4)
//   - Text format that keeps comments and writes back what it parsed
//   - Atomic file saves and format detection on load
//   - BLAKE3 fingerprints of a tree's content
//
// # Basic Usage
//
// Building and saving a tree:
//
//	root := datablock.New()
//	root.SetS32("x", 5)
//	root.SetString("name", "hi")
//	child, _ := root.AddDataBlock("child")
//	child.SetF32("y", 1.5)
//
//	data, _ := datablock.EncodeBinary(root, block.WithChecksum(true))
//	text, _ := datablock.EncodeText(root)
//
// Loading either format:
//
//	root, err := datablock.LoadFile("settings.blk")
//	speed := root.GetDataBlock("child").GetF32("y", 0)
//
// # Package Structure
//
// This package provides top-level wrappers around the block package for the
// most common use cases. For fine-grained control use the block package
// directly.
package datablock

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/arloliu/datablock/block"
)

// New creates an empty, unnamed topmost block.
func New() *block.DataBlock {
	return block.New()
}

// NewNamed creates an empty topmost block named name.
func NewNamed(name string) *block.DataBlock {
	return block.NewNamed(name)
}

// Load decodes data in either format, detected by the binary magic number.
//
// Example:
//
//	root, err := datablock.Load(data, block.WithoutComments())
func Load(data []byte, opts ...block.DecoderOption) (*block.DataBlock, error) {
	return block.Load(data, opts...)
}

// LoadFile loads the file at path in either format.
func LoadFile(path string, opts ...block.DecoderOption) (*block.DataBlock, error) {
	return block.LoadFile(path, opts...)
}

// EncodeBinary returns the binary form of b.
func EncodeBinary(b *block.DataBlock, opts ...block.BinaryEncoderOption) ([]byte, error) {
	enc, err := block.NewBinaryEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(b)
}

// EncodeText returns the text form of b.
func EncodeText(b *block.DataBlock, opts ...block.TextEncoderOption) ([]byte, error) {
	enc, err := block.NewTextEncoder(opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(b)
}

// Digest is the BLAKE3-256 fingerprint of a tree.
type Digest [32]byte

// String returns the digest in lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Fingerprint returns a digest of the content of b: its params, its children
// and their names, comments included. Neither the name of b nor the history
// of its string table affects the result, so equal trees have equal
// fingerprints.
func Fingerprint(b *block.DataBlock) (Digest, error) {
	// copying into a fresh tree interns names in traversal order
	canonical := block.New()
	if err := canonical.CopyFrom(b); err != nil {
		return Digest{}, err
	}

	data, err := EncodeBinary(canonical)
	if err != nil {
		return Digest{}, err
	}

	return blake3.Sum256(data), nil
}
