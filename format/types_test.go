package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParamType_Names(t *testing.T) {
	for typ := ParamS32; typ <= ParamString; typ++ {
		parsed, ok := ParseParamType(typ.String())
		require.True(t, ok, typ.String())
		require.Equal(t, typ, parsed)
	}

	require.Equal(t, "Unknown", ParamType(200).String())
}

func TestParseParamType_Aliases(t *testing.T) {
	tests := []struct {
		name     string
		expected ParamType
	}{
		{"Vec2S32", ParamVec2S},
		{"Vec4F32", ParamVec4F},
		{"Mat3F32", ParamMat3F},
		{"mat4f", ParamMat4F},
		{"string", ParamString},
		{"vec3bool", ParamVec3B},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, ok := ParseParamType(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.expected, typ)
		})
	}

	_, ok := ParseParamType("Vec5F")
	require.False(t, ok)
	_, ok = ParseParamType("CommentCpp")
	require.False(t, ok, "comment types are not addressable from text")
}

func TestParamType_Storage(t *testing.T) {
	inPlace := []ParamType{ParamS32, ParamU32, ParamF32, ParamBool, ParamVec2B, ParamVec3B, ParamVec4B}
	for _, typ := range inPlace {
		require.True(t, typ.IsInPlace(), typ.String())
	}

	complexTypes := []ParamType{ParamS64, ParamU64, ParamF64, ParamVec2S, ParamVec3F, ParamMat3F, ParamMat4F, ParamString}
	for _, typ := range complexTypes {
		require.False(t, typ.IsInPlace(), typ.String())
	}

	require.Equal(t, 36, ParamMat3F.Size())
	require.Equal(t, -1, ParamString.Size())
	require.True(t, ParamCommentC.HasStringPayload())
	require.True(t, ParamCommentCTrailing.IsTrailingComment())
	require.False(t, ParamCommentCpp.IsTrailingComment())
	require.False(t, ParamNone.IsValid())
	require.True(t, ParamCommentCTrailing.IsValid())
}

func TestBinaryFlag(t *testing.T) {
	var f BinaryFlag
	require.False(t, f.HasChecksum())
	require.Equal(t, CompressionType(0), f.Compression())

	f = f.WithChecksum(true).WithCompression(CompressionZstd)
	require.True(t, f.HasChecksum())
	require.Equal(t, CompressionZstd, f.Compression())
	require.Equal(t, BinaryFlag(0x21), f)

	f = f.WithCompression(CompressionNone).WithChecksum(false)
	require.Equal(t, BinaryFlag(0), f)
}

func TestParseCompressionType(t *testing.T) {
	c, ok := ParseCompressionType("ZSTD")
	require.True(t, ok)
	require.Equal(t, CompressionZstd, c)

	_, ok = ParseCompressionType("brotli")
	require.False(t, ok)
}
