package block

import (
	"bytes"
	"fmt"

	"github.com/go-kit/log/level"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
	"github.com/arloliu/datablock/internal/options"
)

// TextDecoder parses the format written by TextEncoder.
//
// Statements are either params (name:Type=value) or blocks (name{...}),
// optionally terminated by ';'. Comments are kept as comment entries: a
// comment on the same line as the previous statement trails it, any other
// comment leads the next statement. The parser does not recover from errors;
// on failure the target block is left empty.
type TextDecoder struct {
	cfg *DecoderConfig
}

// NewTextDecoder creates a text decoder.
func NewTextDecoder(opts ...DecoderOption) (*TextDecoder, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &TextDecoder{cfg: cfg}, nil
}

// Decode parses data into a new topmost block.
func (d *TextDecoder) Decode(data []byte) (*DataBlock, error) {
	b := New()
	if err := d.DecodeInto(b, data); err != nil {
		return nil, err
	}

	return b, nil
}

// DecodeString parses s into a new topmost block.
func (d *TextDecoder) DecodeString(s string) (*DataBlock, error) {
	return d.Decode([]byte(s))
}

// DecodeInto replaces the content of dst with the parsed tree. The name of
// dst is kept unless dst is topmost, whose string table is reset.
func (d *TextDecoder) DecodeInto(dst *DataBlock, data []byte) error {
	if !dst.IsValid() {
		return errs.ErrStaleBlock
	}
	clearTarget := dst.ClearData
	if dst.IsTopmost() {
		clearTarget = dst.Clear
	}
	clearTarget()

	p := &textParser{
		src:  bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")),
		line: 1,
		cfg:  d.cfg,
	}
	if err := p.parseBody(dst, 0, false); err != nil {
		clearTarget()
		level.Error(d.cfg.logger).Log("msg", "failed to parse text datablock", "source", d.cfg.source, "err", err)

		return err
	}

	return nil
}

type entryKind uint8

const (
	entryNone entryKind = iota
	entryParam
	entryBlock
)

type pendingComment struct {
	typ  format.ParamType
	text string
}

type textParser struct {
	src       []byte
	pos       int
	line      int
	lineStart int
	cfg       *DecoderConfig

	// sawNewline is set by a line break since the last statement ended.
	sawNewline bool
	pending    []pendingComment
}

func (p *textParser) errorf(cause error, msg string, args ...any) error {
	return &SyntaxError{
		Source: p.cfg.source,
		Line:   p.line,
		Column: p.pos - p.lineStart + 1,
		Msg:    fmt.Sprintf(msg, args...),
		Err:    cause,
	}
}

func (p *textParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *textParser) peek(offset int) byte {
	if p.pos+offset >= len(p.src) {
		return 0
	}

	return p.src[p.pos+offset]
}

func (p *textParser) newLine() {
	p.line++
	p.lineStart = p.pos
	p.sawNewline = true
}

// parseBody parses statements into b until EOF, or until the closing brace
// when closing is set.
func (p *textParser) parseBody(b *DataBlock, depth int, closing bool) error {
	last := entryNone
	for {
		if err := p.skipWhite(b, &last); err != nil {
			return err
		}
		if p.eof() {
			if closing {
				return p.errorf(nil, "unexpected end of input, missing '}'")
			}

			return p.flushPendingBlocks(b)
		}

		switch p.src[p.pos] {
		case '}':
			if !closing {
				return p.errorf(nil, "unexpected '}'")
			}
			p.pos++

			return p.flushPendingBlocks(b)
		case ';':
			p.pos++
			continue
		}

		name, err := p.parseName()
		if err != nil {
			return err
		}
		if err := p.skipWhite(b, nil); err != nil {
			return err
		}

		switch p.peek(0) {
		case ':':
			p.pos++
			if err := p.parseParam(b, name); err != nil {
				return err
			}
			last = entryParam
		case '{':
			p.pos++
			if depth+1 > p.cfg.maxDepth {
				return p.errorf(errs.ErrInvalidFormat, "blocks nested deeper than %d", p.cfg.maxDepth)
			}
			if err := p.flushPendingBlocks(b); err != nil {
				return err
			}
			child, err := b.AddNewDataBlock(name)
			if err != nil {
				return p.errorf(err, "cannot add block %q", name)
			}
			p.sawNewline = false
			if err := p.parseBody(child, depth+1, true); err != nil {
				return err
			}
			last = entryBlock
		default:
			return p.errorf(nil, "expected ':' or '{' after %q", name)
		}
		p.sawNewline = false
	}
}

func (p *textParser) parseName() (string, error) {
	switch c := p.src[p.pos]; {
	case c == '"' || c == '\'':
		return p.parseQuoted()
	case isSimpleChar(c):
		start := p.pos
		for !p.eof() && isSimpleChar(p.src[p.pos]) {
			p.pos++
		}

		return string(p.src[start:p.pos]), nil
	default:
		return "", p.errorf(nil, "unexpected character %q", c)
	}
}

func (p *textParser) parseParam(b *DataBlock, name string) error {
	if err := p.skipWhite(b, nil); err != nil {
		return err
	}
	start := p.pos
	for !p.eof() && isTypeNameChar(p.src[p.pos]) {
		p.pos++
	}
	typeName := string(p.src[start:p.pos])
	typ, ok := format.ParseParamType(typeName)
	if !ok {
		p.pos = start
		return p.errorf(errs.ErrInvalidParamType, "unknown param type %q", typeName)
	}

	if err := p.skipWhite(b, nil); err != nil {
		return err
	}
	if p.peek(0) != '=' {
		return p.errorf(nil, "expected '=' after %s:%s", name, typeName)
	}
	p.pos++
	p.skipSpaces()

	valueStart := p.pos
	var text string
	var err error
	if c := p.peek(0); c == '"' || c == '\'' {
		text, err = p.parseQuoted()
	} else {
		text = p.parseUnquoted()
		if text == "" {
			return p.errorf(nil, "expected value for %q", name)
		}
	}
	if err != nil {
		return err
	}

	payload, err := parseTextValue(typ, text)
	if err != nil {
		p.pos = valueStart
		return p.errorf(err, "invalid %s value for %q", typ, name)
	}

	if err := p.flushPendingParams(b); err != nil {
		return err
	}
	if i := b.FindParamIndex(name); i >= 0 && b.ParamType(i) != typ {
		p.pos = start
		return p.errorf(errs.ErrTypeMismatch, "param %q is already %s, not %s", name, b.ParamType(i), typ)
	}
	id, err := b.internName(name)
	if err != nil {
		return p.errorf(err, "cannot add param %q", name)
	}
	if _, err := b.addParam(id, typ, payload); err != nil {
		return p.errorf(err, "cannot add param %q", name)
	}

	p.skipSpaces()
	if p.peek(0) == ';' {
		p.pos++
	}

	return nil
}

func isTypeNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}

func (p *textParser) skipSpaces() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// parseUnquoted reads a value up to the end of the line, ';', '}' or a
// comment, without its surrounding blanks.
func (p *textParser) parseUnquoted() string {
	start := p.pos
loop:
	for !p.eof() {
		switch p.src[p.pos] {
		case '\r', '\n', ';', '}':
			break loop
		case '/':
			if next := p.peek(1); next == '/' || next == '*' {
				break loop
			}
		}
		p.pos++
	}

	return string(bytes.TrimRight(p.src[start:p.pos], " \t"))
}

// parseQuoted reads a single or triple quoted string and resolves its
// escapes. A triple quoted string drops one leading and one trailing line
// break.
func (p *textParser) parseQuoted() (string, error) {
	q := p.src[p.pos]
	triple := p.peek(1) == q && p.peek(2) == q
	startLine, startCol := p.line, p.pos-p.lineStart+1
	if triple {
		p.pos += 3
	} else {
		p.pos++
	}

	var out []byte
	for {
		if p.eof() {
			return "", &SyntaxError{Source: p.cfg.source, Line: startLine, Column: startCol, Msg: "unterminated string"}
		}

		c := p.src[p.pos]
		switch {
		case c == q:
			if !triple {
				p.pos++
				return string(out), nil
			}
			if p.peek(1) == q && p.peek(2) == q {
				p.pos += 3
				return trimTripleQuoted(out), nil
			}
			out = append(out, c)
			p.pos++
		case c == '~' && p.pos+1 < len(p.src):
			out = append(out, unescape(p.src[p.pos+1]))
			p.pos += 2
		case c == '\r' || c == '\n':
			if !triple {
				return "", p.errorf(nil, "line break in quoted string")
			}
			out = append(out, c)
			p.pos++
			if c == '\r' && p.peek(0) == '\n' {
				out = append(out, '\n')
				p.pos++
			}
			p.newLine()
		default:
			out = append(out, c)
			p.pos++
		}
	}
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return c
	}
}

func trimTripleQuoted(s []byte) string {
	crlf := false
	switch {
	case bytes.HasPrefix(s, []byte("\r\n")):
		s = s[2:]
		crlf = true
	case len(s) > 0 && (s[0] == '\n' || s[0] == '\r'):
		s = s[1:]
	}
	switch {
	case crlf && bytes.HasSuffix(s, []byte("\r\n")):
		s = s[:len(s)-2]
	case bytes.HasSuffix(s, []byte("\n")):
		s = s[:len(s)-1]
	}

	return string(s)
}

// skipWhite skips blanks, line breaks and comments. With last set, a comment
// on the line of the previous statement is attached to it as a trailing
// comment; all other comments are queued to lead the next statement.
func (p *textParser) skipWhite(b *DataBlock, last *entryKind) error {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ' ' || c == '\t':
			p.pos++
		case c == '\r':
			p.pos++
			if p.peek(0) == '\n' {
				p.pos++
			}
			p.newLine()
		case c == '\n':
			p.pos++
			p.newLine()
		case c == '/' && p.peek(1) == '/':
			start := p.pos + 2
			p.pos = start
			for !p.eof() && p.src[p.pos] != '\r' && p.src[p.pos] != '\n' {
				p.pos++
			}
			if err := p.addComment(b, last, format.ParamCommentCpp, string(p.src[start:p.pos])); err != nil {
				return err
			}
		case c == '/' && p.peek(1) == '*':
			text, err := p.parseBlockComment()
			if err != nil {
				return err
			}
			if err := p.addComment(b, last, format.ParamCommentC, text); err != nil {
				return err
			}
		default:
			return nil
		}
	}

	return nil
}

// parseBlockComment reads a /* */ comment, which may nest.
func (p *textParser) parseBlockComment() (string, error) {
	startLine, startCol := p.line, p.pos-p.lineStart+1
	p.pos += 2
	start := p.pos
	// a line break inside the comment does not end the previous statement
	sawNewline := p.sawNewline

	for depth := 1; ; {
		if p.eof() {
			return "", &SyntaxError{Source: p.cfg.source, Line: startLine, Column: startCol, Msg: "unterminated comment"}
		}
		switch c := p.src[p.pos]; {
		case c == '/' && p.peek(1) == '*':
			depth++
			p.pos += 2
		case c == '*' && p.peek(1) == '/':
			depth--
			p.pos += 2
			if depth == 0 {
				p.sawNewline = sawNewline
				return string(p.src[start : p.pos-2]), nil
			}
		case c == '\r':
			p.pos++
			if p.peek(0) == '\n' {
				p.pos++
			}
			p.newLine()
		case c == '\n':
			p.pos++
			p.newLine()
		default:
			p.pos++
		}
	}
}

func (p *textParser) addComment(b *DataBlock, last *entryKind, typ format.ParamType, text string) error {
	if p.cfg.skipComments {
		return nil
	}
	if last == nil || *last == entryNone || p.sawNewline {
		p.pending = append(p.pending, pendingComment{typ: typ, text: text})
		return nil
	}

	var err error
	if *last == entryParam {
		_, err = b.AddComment(trailingComment(typ), text)
	} else {
		_, err = b.AddCommentBlock(trailingComment(typ), text)
	}
	if err != nil {
		return p.errorf(err, "cannot add comment")
	}

	return nil
}

func trailingComment(typ format.ParamType) format.ParamType {
	if typ == format.ParamCommentC {
		return format.ParamCommentCTrailing
	}

	return format.ParamCommentCppTrailing
}

func (p *textParser) flushPendingParams(b *DataBlock) error {
	for _, c := range p.pending {
		if _, err := b.AddComment(c.typ, c.text); err != nil {
			return p.errorf(err, "cannot add comment")
		}
	}
	p.pending = p.pending[:0]

	return nil
}

func (p *textParser) flushPendingBlocks(b *DataBlock) error {
	for _, c := range p.pending {
		if _, err := b.AddCommentBlock(c.typ, c.text); err != nil {
			return p.errorf(err, "cannot add comment")
		}
	}
	p.pending = p.pending[:0]

	return nil
}
