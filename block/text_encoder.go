package block

import (
	"io"
	"strings"

	"github.com/go-kit/log/level"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
	"github.com/arloliu/datablock/internal/options"
	"github.com/arloliu/datablock/internal/pool"
)

// TextEncoder writes DataBlock trees in the text format.
//
// Params come first, one per line as name:Type=value, followed by the child
// blocks:
//
//	speed:F32=1.5
//	title:String="Hello, world"
//
//	child
//	{
//	  y:F32=2
//	}
//	empty{}
//
// Comment entries are written back where the parser found them.
type TextEncoder struct {
	cfg *TextEncoderConfig
}

// NewTextEncoder creates a text encoder.
func NewTextEncoder(opts ...TextEncoderOption) (*TextEncoder, error) {
	cfg := newTextEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &TextEncoder{cfg: cfg}, nil
}

// Encode returns the text form of the params and children of b.
func (e *TextEncoder) Encode(b *DataBlock) ([]byte, error) {
	if !b.IsValid() {
		level.Error(e.cfg.logger).Log("msg", "failed to encode text datablock", "err", errs.ErrStaleBlock)
		return nil, errs.ErrStaleBlock
	}

	buf := pool.GetTextBuffer()
	defer pool.PutTextBuffer(buf)

	w := textWriter{
		dst:     buf.B,
		compact: e.cfg.flags.IsCompact(),
		indent:  e.cfg.indent,
	}
	w.writeBody(b, 0)
	buf.B = w.dst

	return append([]byte(nil), buf.Bytes()...), nil
}

// EncodeString is Encode returning a string.
func (e *TextEncoder) EncodeString(b *DataBlock) (string, error) {
	data, err := e.Encode(b)
	return string(data), err
}

// WriteTo encodes b and writes the result to w.
func (e *TextEncoder) WriteTo(w io.Writer, b *DataBlock) (int64, error) {
	data, err := e.Encode(b)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)

	return int64(n), err
}

type textWriter struct {
	dst     []byte
	compact bool
	indent  string
}

func (w *textWriter) writeIndent(level int) {
	if w.compact {
		return
	}
	for range level {
		w.dst = append(w.dst, w.indent...)
	}
}

func (w *textWriter) newline() {
	w.dst = append(w.dst, '\n')
}

// isSingleLine reports whether b is written as name{param;} in compact mode.
func (w *textWriter) isSingleLine(b *DataBlock) bool {
	return w.compact && b.ParamsCount() == 1 && b.DataBlocksCount() == 0 && !b.ParamType(0).IsComment()
}

func (w *textWriter) writeBody(b *DataBlock, level int) {
	nd := b.node()
	count := nd.paramsCount()

	for i := 0; i < count; i++ {
		typ := nd.paramType(i)
		w.writeIndent(level)
		if typ.IsComment() {
			w.writeComment(typ, string(nd.payload(i)))
			w.newline()

			continue
		}

		w.writeParam(b, i)
		i = w.writeTrailingParams(nd, i+1) - 1
		w.newline()
	}

	separate := !w.compact && count > 0
	for i := 0; i < len(nd.children); i++ {
		child := b.GetDataBlockAt(i)
		if separate {
			w.newline()
		}

		if typ, text, ok := child.Comment(); ok {
			w.writeIndent(level)
			w.writeComment(typ, text)
			w.newline()
			separate = false

			continue
		}

		w.writeIndent(level)
		w.dst = appendString(w.dst, child.Name())
		switch {
		case child.IsEmpty():
			w.dst = append(w.dst, "{}"...)
		case w.isSingleLine(child):
			w.dst = append(w.dst, '{')
			w.writeParam(child, 0)
			w.dst = append(w.dst, ";}"...)
		default:
			w.newline()
			w.writeIndent(level)
			w.dst = append(w.dst, '{')
			w.newline()
			w.writeBody(child, level+1)
			w.writeIndent(level)
			w.dst = append(w.dst, '}')
		}
		i = w.writeTrailingBlocks(b, i+1) - 1
		w.newline()
		separate = !w.compact
	}
}

func (w *textWriter) writeParam(b *DataBlock, i int) {
	nd := b.node()
	typ := nd.paramType(i)

	w.dst = appendString(w.dst, b.shared.String(nd.paramNameID(i)))
	w.dst = append(w.dst, ':')
	w.dst = append(w.dst, typ.String()...)
	w.dst = append(w.dst, '=')
	if typ == format.ParamString {
		if s := nd.payload(i); len(s) == 0 {
			w.dst = append(w.dst, `""`...)
		} else {
			w.dst = appendString(w.dst, string(s))
		}

		return
	}
	w.dst = appendTextValue(w.dst, typ, nd.payload(i))
}

// writeTrailingParams writes the trailing comment params starting at i on the
// current line and returns the index of the first param left unwritten.
func (w *textWriter) writeTrailingParams(nd *node, i int) int {
	for ; i < nd.paramsCount(); i++ {
		typ := nd.paramType(i)
		if !typ.IsTrailingComment() {
			break
		}
		w.dst = append(w.dst, ' ')
		if w.writeComment(typ, string(nd.payload(i))) {
			return i + 1
		}
	}

	return i
}

// writeTrailingBlocks is writeTrailingParams for trailing comment nodes.
func (w *textWriter) writeTrailingBlocks(b *DataBlock, i int) int {
	for ; i < b.DataBlocksCount(); i++ {
		typ, text, ok := b.GetDataBlockAt(i).Comment()
		if !ok || !typ.IsTrailingComment() {
			break
		}
		w.dst = append(w.dst, ' ')
		if w.writeComment(typ, text) {
			return i + 1
		}
	}

	return i
}

// writeComment writes one comment and reports whether it ran to the end of
// the line. Line comments whose text holds a line break are written in block
// form.
func (w *textWriter) writeComment(typ format.ParamType, text string) bool {
	lineComment := typ == format.ParamCommentCpp || typ == format.ParamCommentCppTrailing
	if lineComment && !strings.ContainsAny(text, "\r\n") {
		w.dst = append(w.dst, "//"...)
		w.dst = append(w.dst, text...)

		return true
	}

	w.dst = append(w.dst, "/*"...)
	w.dst = append(w.dst, text...)
	w.dst = append(w.dst, "*/"...)

	return false
}
