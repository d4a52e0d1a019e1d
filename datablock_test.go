package datablock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/datablock/block"
	"github.com/arloliu/datablock/format"
)

func sampleTree(t *testing.T) *block.DataBlock {
	t.Helper()

	root := New()
	_, err := root.SetS32("x", 5)
	require.NoError(t, err)
	_, err = root.SetString("name", "hi")
	require.NoError(t, err)
	child, err := root.AddDataBlock("child")
	require.NoError(t, err)
	_, err = child.SetF32("y", 1.5)
	require.NoError(t, err)

	return root
}

func TestEncodeAndLoad(t *testing.T) {
	root := sampleTree(t)

	data, err := EncodeBinary(root, block.WithChecksum(true), block.WithCompression(format.CompressionLZ4))
	require.NoError(t, err)
	fromBinary, err := Load(data)
	require.NoError(t, err)
	require.True(t, fromBinary.Equal(root))

	text, err := EncodeText(root, block.WithCompact(true))
	require.NoError(t, err)
	fromText, err := Load(text)
	require.NoError(t, err)
	require.True(t, fromText.Equal(root))

	path := filepath.Join(t.TempDir(), "sample.blk")
	require.NoError(t, block.SaveTextFile(root, path))
	fromFile, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, fromFile.Equal(root))
}

func TestFingerprint(t *testing.T) {
	a := sampleTree(t)

	// same content, different name table history and root name
	b := NewNamed("other")
	_, err := b.SetS32("unused", 1)
	require.NoError(t, err)
	require.True(t, b.RemoveParam("unused"))
	_, err = b.SetS32("x", 5)
	require.NoError(t, err)
	_, err = b.SetString("name", "a longer value first")
	require.NoError(t, err)
	_, err = b.SetString("name", "hi")
	require.NoError(t, err)
	child, err := b.AddDataBlock("child")
	require.NoError(t, err)
	_, err = child.SetF32("y", 1.5)
	require.NoError(t, err)

	da, err := Fingerprint(a)
	require.NoError(t, err)
	db, err := Fingerprint(b)
	require.NoError(t, err)
	require.Equal(t, da, db)
	require.Len(t, da.String(), 64)

	_, err = child.SetF32("y", 2)
	require.NoError(t, err)
	db, err = Fingerprint(b)
	require.NoError(t, err)
	require.NotEqual(t, da, db)

	// a subtree fingerprints like a tree holding the same content
	sub := New()
	_, err = sub.SetF32("y", 2)
	require.NoError(t, err)
	dc, err := Fingerprint(child)
	require.NoError(t, err)
	ds, err := Fingerprint(sub)
	require.NoError(t, err)
	require.Equal(t, ds, dc)
}

func TestFingerprint_StaleBlock(t *testing.T) {
	root := sampleTree(t)
	child := root.GetDataBlock("child")
	require.True(t, root.RemoveDataBlock("child"))

	_, err := Fingerprint(child)
	require.Error(t, err)
}
