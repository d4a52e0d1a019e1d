package format

// BinaryFlag is the flags word written after the magic number of a binary DataBlock.
//
// Bit 0 enables the trailing CRC32 footer. Bits 4-7 hold the CompressionType
// of the body; 0 means the body is stored uncompressed without a size prefix.
// The remaining bits are reserved and must be zero.
type BinaryFlag uint32

const (
	BinaryFlagChecksum    BinaryFlag = 0x0001     // CRC32 footer present.
	BinaryCompressionMask BinaryFlag = 0x00F0     // Codec id in bits 4-7.
	BinaryReservedMask    BinaryFlag = 0xFFFFFF0E // Bits that must be zero.

	binaryCompressionShift = 4
)

// HasChecksum reports whether the CRC32 footer is present.
func (f BinaryFlag) HasChecksum() bool {
	return f&BinaryFlagChecksum != 0
}

// WithChecksum returns f with the checksum bit set or cleared.
func (f BinaryFlag) WithChecksum(enabled bool) BinaryFlag {
	if enabled {
		return f | BinaryFlagChecksum
	}

	return f &^ BinaryFlagChecksum
}

// Compression returns the body compression type, or 0 when the body is stored as is.
func (f BinaryFlag) Compression() CompressionType {
	return CompressionType((f & BinaryCompressionMask) >> binaryCompressionShift)
}

// WithCompression returns f with the body compression set. CompressionNone clears it.
func (f BinaryFlag) WithCompression(c CompressionType) BinaryFlag {
	f &^= BinaryCompressionMask
	if c == CompressionNone {
		return f
	}

	return f | (BinaryFlag(c)<<binaryCompressionShift)&BinaryCompressionMask
}

// TextFlag controls text serialization.
type TextFlag uint32

const (
	TextFlagCompact TextFlag = 0x0001 // Collapse single-param blocks onto one line.
)

// IsCompact reports whether compact mode is enabled.
func (f TextFlag) IsCompact() bool {
	return f&TextFlagCompact != 0
}
