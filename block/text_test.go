package block

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

func encodeText(t *testing.T, b *DataBlock, opts ...TextEncoderOption) string {
	t.Helper()

	enc, err := NewTextEncoder(opts...)
	require.NoError(t, err)
	text, err := enc.EncodeString(b)
	require.NoError(t, err)

	return text
}

func decodeText(t *testing.T, text string, opts ...DecoderOption) *DataBlock {
	t.Helper()

	dec, err := NewTextDecoder(opts...)
	require.NoError(t, err)
	b, err := dec.DecodeString(text)
	require.NoError(t, err)

	return b
}

func decodeTextErr(t *testing.T, text string) error {
	t.Helper()

	dec, err := NewTextDecoder(WithSource("test.blk"))
	require.NoError(t, err)
	_, err = dec.DecodeString(text)
	require.Error(t, err)

	return err
}

func TestText_Encode(t *testing.T) {
	root := smallTree(t)
	_, err := root.AddNewDataBlock("empty")
	require.NoError(t, err)

	want := "x:S32=5\n" +
		"name:String=hi\n" +
		"\n" +
		"child\n" +
		"{\n" +
		"  y:F32=1.5\n" +
		"}\n" +
		"\n" +
		"empty{}\n"
	require.Equal(t, want, encodeText(t, root))

	compact := "x:S32=5\n" +
		"name:String=hi\n" +
		"child{y:F32=1.5;}\n" +
		"empty{}\n"
	require.Equal(t, compact, encodeText(t, root, WithCompact(true)))
}

func TestText_Indent(t *testing.T) {
	root := New()
	child, err := root.AddNewDataBlock("a")
	require.NoError(t, err)
	_, err = child.SetBool("on", true)
	require.NoError(t, err)

	require.Equal(t, "a\n{\n\ton:Bool=true\n}\n", encodeText(t, root, WithIndent("\t")))

	_, err = NewTextEncoder(WithIndent("--"))
	require.Error(t, err)
}

func TestText_RoundTrip(t *testing.T) {
	src := New()
	fillAllTypes(t, src)
	child, err := src.AddNewDataBlock("child")
	require.NoError(t, err)
	fillAllTypes(t, child)
	_, err = child.AddNewDataBlock("empty")
	require.NoError(t, err)
	single, err := src.AddNewDataBlock("single")
	require.NoError(t, err)
	_, err = single.SetString("only", "one")
	require.NoError(t, err)

	for _, compact := range []bool{false, true} {
		text := encodeText(t, src, WithCompact(compact))
		got := decodeText(t, text)

		require.True(t, got.Equal(src), "compact=%v:\n%s", compact, text)
		requireAllTypes(t, got.GetDataBlock("child"))
		require.Equal(t, text, encodeText(t, got, WithCompact(compact)))
	}
}

func TestText_Strings(t *testing.T) {
	values := []string{
		"simple",
		"with space",
		"",
		" padded ",
		`say "hi"`,
		`it's`,
		`both ' and "`,
		"tab\there",
		"tilde~inside",
		"semi;colon",
		"brace}",
		"// not a comment",
		"line1\nline2",
		"crlf\r\nline",
		"\nleading newline",
		"unicode ✓",
	}

	for _, v := range values {
		b := New()
		_, err := b.SetString("s", v)
		require.NoError(t, err)
		_, err = b.SetString("odd name", v)
		require.NoError(t, err)

		text := encodeText(t, b)
		got := decodeText(t, text)
		require.Equal(t, v, got.GetString("s", "?"), "text:\n%s", text)
		require.Equal(t, v, got.GetString("odd name", "?"), "text:\n%s", text)
	}
}

func TestText_DuplicateNames(t *testing.T) {
	b := decodeText(t, "a:S32=1; a:S32=2")

	require.Equal(t, 2, b.ParamsCount())
	require.Equal(t, int32(1), b.GetS32("a", 0))
	v, err := GetAt[int32](b, b.FindParamIndexReverse("a"))
	require.NoError(t, err)
	require.Equal(t, int32(2), v)
}

func TestText_Syntax(t *testing.T) {
	input := "\xef\xbb\xbf" + `
	// header
	flag:bool=Yes
	vec:Vec3Bool=on, off, 1
	m:mat3f=[[1, 0, 0] [0, 1, 0] [0, 0, 1]];
	quoted:String='a "b"' ; n:u64=18446744073709551615
	"block name" { inner:S32=-3 }
	nested { a { b { deep:F64=2.5e-3 } } }
	/* nested /* block */ comment */
	`
	b := decodeText(t, input)

	require.True(t, b.GetBool("flag", false))
	require.Equal(t, Vec3B{true, false, true}, b.GetVec3B("vec", Vec3B{}))
	require.Equal(t, Identity3(), b.GetMat3F("m", Mat3F{}))
	require.Equal(t, `a "b"`, b.GetString("quoted", ""))
	require.Equal(t, uint64(18446744073709551615), b.GetU64("n", 0))
	require.Equal(t, int32(-3), b.GetDataBlock("block name").GetS32("inner", 0))
	require.Equal(t, 2.5e-3, b.GetDataBlock("nested").GetDataBlock("a").GetDataBlock("b").GetF64("deep", 0))

	text, ok := b.CommentAt(0)
	require.True(t, ok)
	require.Equal(t, " header", text)

	last := b.GetDataBlockAt(b.DataBlocksCount() - 1)
	typ, text, ok := last.Comment()
	require.True(t, ok)
	require.Equal(t, format.ParamCommentC, typ)
	require.Equal(t, " nested /* block */ comment ", text)
}

func TestText_Comments(t *testing.T) {
	input := "// header comment\n" +
		"x:S32=5 // trailing x\n" +
		"y:S32=6 /* trailing y */\n" +
		"\n" +
		"/* before child */\n" +
		"child\n" +
		"{\n" +
		"  // inside\n" +
		"  z:F32=1\n" +
		"} // after child\n" +
		"// at the end\n"

	b := decodeText(t, input)

	require.Equal(t, 5, b.ParamsCount())
	require.Equal(t, format.ParamCommentCpp, b.ParamType(0))
	require.Equal(t, format.ParamCommentCppTrailing, b.ParamType(2))
	require.Equal(t, format.ParamCommentCTrailing, b.ParamType(4))
	require.Equal(t, 4, b.DataBlocksCount())
	require.Equal(t, 1, b.FindDataBlockIndex("child"))

	want := "// header comment\n" +
		"x:S32=5 // trailing x\n" +
		"y:S32=6 /* trailing y */\n" +
		"\n" +
		"/* before child */\n" +
		"child\n" +
		"{\n" +
		"  // inside\n" +
		"  z:F32=1\n" +
		"} // after child\n" +
		"\n" +
		"// at the end\n"
	require.Equal(t, want, encodeText(t, b))

	stripped := decodeText(t, input, WithoutComments())
	require.False(t, stripped.HasComments())
	require.Equal(t, 2, stripped.ParamsCount())
	require.Equal(t, 1, stripped.DataBlocksCount())
}

func TestText_LineCommentWithLineBreak(t *testing.T) {
	b := New()
	_, err := b.AddComment(format.ParamCommentCpp, "two\nlines")
	require.NoError(t, err)

	text := encodeText(t, b)
	require.Equal(t, "/*two\nlines*/\n", text)

	// with nothing following it the comment is kept among the blocks
	got := decodeText(t, text)
	typ, comment, ok := got.GetDataBlockAt(0).Comment()
	require.True(t, ok)
	require.Equal(t, format.ParamCommentC, typ)
	require.Equal(t, "two\nlines", comment)
}

func TestText_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
		cause  error
	}{
		{"bad value", "x:S32=1\nchild\n{\n  y:F32=abc\n}", 4, 9, nil},
		{"type mismatch", "a:S32=1\na:F32=2", 2, 3, errs.ErrTypeMismatch},
		{"unknown type", "x:Foo=1", 1, 3, errs.ErrInvalidParamType},
		{"missing brace", "a {\n  x:S32=1\n", 3, 1, nil},
		{"stray brace", "x:S32=1\n}", 2, 1, nil},
		{"missing separator", "name value", 1, 6, nil},
		{"line break in string", "s:String=\"abc\n", 1, 14, nil},
		{"unterminated string", "s:String=\"abc", 1, 10, nil},
		{"unterminated comment", "x:S32=1\n/* open", 2, 1, nil},
		{"out of range", "x:S32=3000000000", 1, 7, nil},
		{"empty value", "s:String=\nx:S32=1", 1, 10, nil},
		{"empty value before separator", "a{s:String=;}", 1, 12, nil},
		{"empty value before comment", "s:String= // none", 1, 11, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeTextErr(t, tt.input)
			require.ErrorIs(t, err, errs.ErrSyntax)
			if tt.cause != nil {
				require.ErrorIs(t, err, tt.cause)
			}

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			require.Equal(t, "test.blk", se.Source)
			require.Equal(t, tt.line, se.Line)
			require.Equal(t, tt.column, se.Column)
			require.Contains(t, err.Error(), "test.blk:")
		})
	}
}

func TestText_FailedDecodeLeavesTargetEmpty(t *testing.T) {
	root := New()
	slot, err := root.AddNewDataBlock("slot")
	require.NoError(t, err)
	_, err = slot.SetS32("old", 1)
	require.NoError(t, err)

	dec, err := NewTextDecoder()
	require.NoError(t, err)
	require.Error(t, dec.DecodeInto(slot, []byte("x:S32=1\ny:")))
	require.True(t, slot.IsEmpty())
	require.Equal(t, "slot", slot.Name())

	require.NoError(t, dec.DecodeInto(slot, []byte("x:S32=2")))
	require.Equal(t, int32(2), slot.GetS32("x", 0))
}

func TestText_MaxDepth(t *testing.T) {
	dec, err := NewTextDecoder(WithMaxDepth(2))
	require.NoError(t, err)

	_, err = dec.DecodeString("a{b{}}")
	require.NoError(t, err)
	_, err = dec.DecodeString("a{b{c{}}}")
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestText_BinaryAgreement(t *testing.T) {
	src := buildSample(t)
	fromText := decodeText(t, encodeText(t, src))
	fromBinary := decodeBinary(t, encodeBinary(t, src))

	require.True(t, fromText.Equal(fromBinary))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "yes", "On", "1"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		require.True(t, v, s)
	}
	for _, s := range []string{"false", "No", "off", "0"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		require.False(t, v, s)
	}
	_, err := ParseBool("maybe")
	require.Error(t, err)
}
