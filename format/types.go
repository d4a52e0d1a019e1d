package format

import "strings"

type (
	// ParamType is the 8-bit type tag stored in every param record.
	ParamType uint8
	// CompressionType selects the codec applied to a binary body.
	CompressionType uint8
)

// Param type tags. The values are part of the binary format.
const (
	ParamNone   ParamType = iota // ParamNone marks an unset or unknown type.
	ParamS32                     // ParamS32 is a signed 32-bit integer, stored in place.
	ParamS64                     // ParamS64 is a signed 64-bit integer.
	ParamU32                     // ParamU32 is an unsigned 32-bit integer, stored in place.
	ParamU64                     // ParamU64 is an unsigned 64-bit integer.
	ParamF32                     // ParamF32 is a 32-bit float, stored in place.
	ParamF64                     // ParamF64 is a 64-bit float.
	ParamBool                    // ParamBool is a one byte boolean, stored in place.
	ParamVec2S                   // ParamVec2S is a vector of two S32.
	ParamVec3S                   // ParamVec3S is a vector of three S32.
	ParamVec4S                   // ParamVec4S is a vector of four S32.
	ParamVec2U                   // ParamVec2U is a vector of two U32.
	ParamVec3U                   // ParamVec3U is a vector of three U32.
	ParamVec4U                   // ParamVec4U is a vector of four U32.
	ParamVec2F                   // ParamVec2F is a vector of two F32.
	ParamVec3F                   // ParamVec3F is a vector of three F32.
	ParamVec4F                   // ParamVec4F is a vector of four F32.
	ParamVec2B                   // ParamVec2B is a vector of two Bool, stored in place.
	ParamVec3B                   // ParamVec3B is a vector of three Bool, stored in place.
	ParamVec4B                   // ParamVec4B is a vector of four Bool, stored in place.
	ParamMat3F                   // ParamMat3F is a 3x3 F32 matrix.
	ParamMat4F                   // ParamMat4F is a 4x4 F32 matrix.
	ParamString                  // ParamString is a length-prefixed byte string.

	// Comment entries. They carry a string payload and name id 0.
	ParamCommentCpp         // ParamCommentCpp is a // comment on its own line.
	ParamCommentC           // ParamCommentC is a /* */ comment on its own line.
	ParamCommentCppTrailing // ParamCommentCppTrailing is a // comment after a value.
	ParamCommentCTrailing   // ParamCommentCTrailing is a /* */ comment after a value.

	paramTypeCount
)

// Compression codec ids, stored in bits 4-7 of the header flags.
const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

type paramTypeInfo struct {
	name string
	size int
}

var paramTypeInfos = [paramTypeCount]paramTypeInfo{
	ParamNone:               {"None", 0},
	ParamS32:                {"S32", 4},
	ParamS64:                {"S64", 8},
	ParamU32:                {"U32", 4},
	ParamU64:                {"U64", 8},
	ParamF32:                {"F32", 4},
	ParamF64:                {"F64", 8},
	ParamBool:               {"Bool", 1},
	ParamVec2S:              {"Vec2S", 8},
	ParamVec3S:              {"Vec3S", 12},
	ParamVec4S:              {"Vec4S", 16},
	ParamVec2U:              {"Vec2U", 8},
	ParamVec3U:              {"Vec3U", 12},
	ParamVec4U:              {"Vec4U", 16},
	ParamVec2F:              {"Vec2F", 8},
	ParamVec3F:              {"Vec3F", 12},
	ParamVec4F:              {"Vec4F", 16},
	ParamVec2B:              {"Vec2B", 2},
	ParamVec3B:              {"Vec3B", 3},
	ParamVec4B:              {"Vec4B", 4},
	ParamMat3F:              {"Mat3F", 36},
	ParamMat4F:              {"Mat4F", 64},
	ParamString:             {"String", -1},
	ParamCommentCpp:         {"CommentCpp", -1},
	ParamCommentC:           {"CommentC", -1},
	ParamCommentCppTrailing: {"CommentCppTrailing", -1},
	ParamCommentCTrailing:   {"CommentCTrailing", -1},
}

// Alternative spellings accepted by ParseParamType.
var paramTypeAliases = map[string]ParamType{
	"Vec2S32":  ParamVec2S,
	"Vec3S32":  ParamVec3S,
	"Vec4S32":  ParamVec4S,
	"Vec2U32":  ParamVec2U,
	"Vec3U32":  ParamVec3U,
	"Vec4U32":  ParamVec4U,
	"Vec2F32":  ParamVec2F,
	"Vec3F32":  ParamVec3F,
	"Vec4F32":  ParamVec4F,
	"Vec2Bool": ParamVec2B,
	"Vec3Bool": ParamVec3B,
	"Vec4Bool": ParamVec4B,
	"Mat3F32":  ParamMat3F,
	"Mat4F32":  ParamMat4F,
	"Bool8":    ParamBool,
}

// String returns the canonical text name of the type.
func (t ParamType) String() string {
	if t >= paramTypeCount {
		return "Unknown"
	}

	return paramTypeInfos[t].name
}

// IsValid reports whether t is a known, non-None type.
func (t ParamType) IsValid() bool {
	return t > ParamNone && t < paramTypeCount
}

// IsComment reports whether t is one of the comment entry types.
func (t ParamType) IsComment() bool {
	return t >= ParamCommentCpp && t <= ParamCommentCTrailing
}

// IsTrailingComment reports whether t is a comment written on the same line as the previous entry.
func (t ParamType) IsTrailingComment() bool {
	return t == ParamCommentCppTrailing || t == ParamCommentCTrailing
}

// HasStringPayload reports whether values of t are length-prefixed strings.
func (t ParamType) HasStringPayload() bool {
	return t == ParamString || t.IsComment()
}

// Size returns the fixed value width in bytes, or -1 for string payloads.
func (t ParamType) Size() int {
	if t >= paramTypeCount {
		return 0
	}

	return paramTypeInfos[t].size
}

// IsInPlace reports whether the value is stored directly in the 4-byte slot of
// the param record instead of the complex region.
func (t ParamType) IsInPlace() bool {
	size := t.Size()
	return size > 0 && size <= 4
}

// ParseParamType resolves a text type name. Matching is exact for canonical
// names and aliases, then case-insensitive.
func ParseParamType(name string) (ParamType, bool) {
	for t := ParamS32; t <= ParamString; t++ {
		if paramTypeInfos[t].name == name {
			return t, true
		}
	}
	if t, ok := paramTypeAliases[name]; ok {
		return t, true
	}
	for t := ParamS32; t <= ParamString; t++ {
		if strings.EqualFold(paramTypeInfos[t].name, name) {
			return t, true
		}
	}
	for alias, t := range paramTypeAliases {
		if strings.EqualFold(alias, name) {
			return t, true
		}
	}

	return ParamNone, false
}

// String returns the codec name, or "Unknown".
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType resolves a case-insensitive codec name.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
