package section

const (
	// Magic is the FNV-1 hash of "MZDATA", the first word of every binary DataBlock.
	Magic uint32 = 0x14d38d64

	HeaderSize           = 8 // magic + flags
	CompressedHeaderSize = 8 // raw size + packed size
	ChecksumSize         = 4 // CRC32 footer
)
