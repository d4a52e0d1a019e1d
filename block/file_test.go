package block

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

func TestFile_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	src := buildSample(t)

	binPath := filepath.Join(dir, "sample.bin")
	require.NoError(t, SaveBinaryFile(src, binPath, WithChecksum(true), WithCompression(format.CompressionZstd)))

	textPath := filepath.Join(dir, "sample.blk")
	require.NoError(t, SaveTextFile(src, textPath))

	info, err := os.Stat(textPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())

	fromBinary, err := LoadBinaryFile(binPath)
	require.NoError(t, err)
	require.True(t, fromBinary.Equal(src))

	fromText, err := LoadTextFile(textPath)
	require.NoError(t, err)
	require.True(t, fromText.Equal(src))

	for _, path := range []string{binPath, textPath} {
		got, err := LoadFile(path)
		require.NoError(t, err)
		require.True(t, got.Equal(src), path)
	}
}

func TestFile_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.blk")

	first := New()
	_, err := first.SetS32("v", 1)
	require.NoError(t, err)
	require.NoError(t, SaveTextFile(first, path))

	second := New()
	_, err = second.SetS32("v", 2)
	require.NoError(t, err)
	require.NoError(t, SaveTextFile(second, path, WithCompact(true)))

	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, int32(2), got.GetS32("v", 0))
}

func TestFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.blk"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.blk")
	require.NoError(t, os.WriteFile(bad, []byte("a {\n  x:S32=oops\n}\n"), 0o600))

	_, err = LoadTextFile(bad)
	require.ErrorIs(t, err, errs.ErrSyntax)
	require.Contains(t, err.Error(), bad+":2:")

	_, err = LoadBinaryFile(bad)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestLoad_Sniffing(t *testing.T) {
	src := smallTree(t)

	enc, err := NewBinaryEncoder()
	require.NoError(t, err)
	data, err := enc.Encode(src)
	require.NoError(t, err)

	got, err := Load(data)
	require.NoError(t, err)
	require.True(t, got.Equal(src))

	got, err = Load([]byte("x:S32=5\nname:String=hi\nchild{y:F32=1.5}"))
	require.NoError(t, err)
	require.True(t, got.Equal(src))

	got, err = Load(nil)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}
