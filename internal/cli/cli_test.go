package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/datablock/block"
	"github.com/arloliu/datablock/bytebuf"
	"github.com/arloliu/datablock/section"
)

const sampleText = `// settings
x:S32=5
name:String=hi

child
{
  y:F32=1.5
}
`

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), args, &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func writeSample(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(sampleText), 0o600))

	return path
}

func TestConvert_TextToBinaryAndBack(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir, "sample.blk")

	stdout, _, err := run(t, "convert", in, "--to", "binary", "--checksum", "--compression", "zstd")
	require.NoError(t, err)
	require.Contains(t, stdout, "sample.bin")

	binPath := filepath.Join(dir, "sample.bin")
	data, err := os.ReadFile(binPath)
	require.NoError(t, err)
	require.True(t, section.IsBinary(data))

	back := filepath.Join(dir, "back.blk")
	_, _, err = run(t, "convert", binPath, back)
	require.NoError(t, err)

	text, err := os.ReadFile(back)
	require.NoError(t, err)
	require.Equal(t, sampleText, string(text))
}

func TestConvert_InvalidFlags(t *testing.T) {
	in := writeSample(t, t.TempDir(), "sample.blk")

	_, _, err := run(t, "convert", in, "--to", "yaml")
	require.Error(t, err)

	_, _, err = run(t, "convert", in, "--to", "binary", "--compression", "brotli")
	require.Error(t, err)

	_, _, err = run(t, "--log-level", "loud", "convert", in)
	require.Error(t, err)
}

func TestConvert_Recursive(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "a.blk")
	writeSample(t, dir, "nested/b.blk")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o600))

	_, _, err := run(t, "convert", dir, "--recursive", "--to", "binary", "--compression", "s2")
	require.NoError(t, err)

	for _, name := range []string{"a.bin", "nested/b.bin"} {
		b, err := block.LoadBinaryFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.Equal(t, int32(5), b.GetS32("x", 0))
	}
	require.NoFileExists(t, filepath.Join(dir, "notes.bin"))
}

func TestConvert_RecursiveReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir, "good.blk")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.blk"), []byte("x:S32="), 0o600))

	_, stderr, err := run(t, "convert", dir, "--recursive", "--to", "binary")
	require.Error(t, err)
	require.Contains(t, stderr, "bad.blk")
	require.FileExists(t, filepath.Join(dir, "good.bin"))
}

func TestDump(t *testing.T) {
	in := writeSample(t, t.TempDir(), "sample.blk")

	stdout, _, err := run(t, "dump", in)
	require.NoError(t, err)
	require.Equal(t, sampleText, stdout)

	stdout, _, err = run(t, "dump", in, "--compact", "--strip-comments")
	require.NoError(t, err)
	require.Equal(t, "x:S32=5\nname:String=hi\nchild{y:F32=1.5;}\n", stdout)

	stdout, _, err = run(t, "dump", in, "--base64")
	require.NoError(t, err)
	data, err := bytebuf.DecodeBase64(strings.TrimSpace(stdout))
	require.NoError(t, err)
	b, err := block.Load(data)
	require.NoError(t, err)
	require.Equal(t, float32(1.5), b.GetDataBlock("child").GetF32("y", 0))
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeSample(t, dir, "good.blk")
	bad := filepath.Join(dir, "bad.blk")
	require.NoError(t, os.WriteFile(bad, []byte("a {"), 0o600))

	stdout, _, err := run(t, "check", good)
	require.NoError(t, err)
	require.Contains(t, stdout, "good.blk: OK text")
	require.Contains(t, stdout, "3 params, 1 blocks, 1 comments, depth 1")

	stdout, _, err = run(t, "check", good, bad)
	require.Error(t, err)
	require.Contains(t, stdout, "bad.blk: FAIL")
}

func TestDigest(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir, "sample.blk")
	_, _, err := run(t, "convert", in, "--to", "binary", "--compression", "lz4")
	require.NoError(t, err)

	stdout, _, err := run(t, "digest", in, filepath.Join(dir, "sample.bin"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	textDigest, _, _ := strings.Cut(lines[0], " ")
	binDigest, _, _ := strings.Cut(lines[1], " ")
	require.Len(t, textDigest, 64)
	require.Equal(t, textDigest, binDigest)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)

	require.NoError(t, level.Info(logger).Log("msg", "hidden"))
	require.Empty(t, buf.String())
	require.NoError(t, level.Warn(logger).Log("msg", "shown"))
	require.Contains(t, buf.String(), "level=warn")
	require.Contains(t, buf.String(), "msg=shown")

	_, err = newLogger(&buf, "verbose")
	require.Error(t, err)
}
