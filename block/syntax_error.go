package block

import (
	"strconv"
	"strings"

	"github.com/arloliu/datablock/errs"
)

// SyntaxError describes malformed text input. It matches errs.ErrSyntax and,
// when set, Err.
type SyntaxError struct {
	Source string // input name given with WithSource, may be empty
	Line   int    // 1-based
	Column int    // 1-based, in bytes
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	var sb strings.Builder
	if e.Source != "" {
		sb.WriteString(e.Source)
		sb.WriteByte(':')
	}
	sb.WriteString(strconv.Itoa(e.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(e.Column))
	sb.WriteString(": ")
	sb.WriteString(e.Msg)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}

	return sb.String()
}

// Unwrap returns errs.ErrSyntax and the underlying cause.
func (e *SyntaxError) Unwrap() []error {
	if e.Err == nil {
		return []error{errs.ErrSyntax}
	}

	return []error{errs.ErrSyntax, e.Err}
}
