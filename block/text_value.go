package block

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

// appendTextValue appends the text form of a non-string payload of typ.
func appendTextValue(dst []byte, typ format.ParamType, payload []byte) []byte {
	switch typ { //nolint: exhaustive
	case format.ParamS32:
		return strconv.AppendInt(dst, int64(decodeValue[int32](payload)), 10)
	case format.ParamS64:
		return strconv.AppendInt(dst, decodeValue[int64](payload), 10)
	case format.ParamU32:
		return strconv.AppendUint(dst, uint64(decodeValue[uint32](payload)), 10)
	case format.ParamU64:
		return strconv.AppendUint(dst, decodeValue[uint64](payload), 10)
	case format.ParamF32:
		return appendF32(dst, decodeValue[float32](payload))
	case format.ParamF64:
		return strconv.AppendFloat(dst, decodeValue[float64](payload), 'g', -1, 64)
	case format.ParamBool:
		return strconv.AppendBool(dst, payload[0] != 0)
	case format.ParamVec2S, format.ParamVec3S, format.ParamVec4S:
		return appendList(dst, componentCount(typ), func(dst []byte, i int) []byte {
			return strconv.AppendInt(dst, int64(int32(le.Uint32(payload[i*4:]))), 10) //nolint: gosec
		})
	case format.ParamVec2U, format.ParamVec3U, format.ParamVec4U:
		return appendList(dst, componentCount(typ), func(dst []byte, i int) []byte {
			return strconv.AppendUint(dst, uint64(le.Uint32(payload[i*4:])), 10)
		})
	case format.ParamVec2F, format.ParamVec3F, format.ParamVec4F:
		return appendList(dst, componentCount(typ), func(dst []byte, i int) []byte {
			return appendF32(dst, math.Float32frombits(le.Uint32(payload[i*4:])))
		})
	case format.ParamVec2B, format.ParamVec3B, format.ParamVec4B:
		return appendList(dst, componentCount(typ), func(dst []byte, i int) []byte {
			return strconv.AppendBool(dst, payload[i] != 0)
		})
	case format.ParamMat3F, format.ParamMat4F:
		rows := 3
		if typ == format.ParamMat4F {
			rows = 4
		}
		dst = append(dst, '[')
		for r := range rows {
			if r > 0 {
				dst = append(dst, ' ')
			}
			dst = append(dst, '[')
			dst = appendList(dst, rows, func(dst []byte, c int) []byte {
				return appendF32(dst, math.Float32frombits(le.Uint32(payload[(r*rows+c)*4:])))
			})
			dst = append(dst, ']')
		}

		return append(dst, ']')
	default:
		return dst
	}
}

func appendF32(dst []byte, v float32) []byte {
	return strconv.AppendFloat(dst, float64(v), 'g', -1, 32)
}

func appendList(dst []byte, n int, item func([]byte, int) []byte) []byte {
	for i := range n {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = item(dst, i)
	}

	return dst
}

// componentCount returns the number of components of a vector or matrix type.
func componentCount(typ format.ParamType) int {
	switch typ { //nolint: exhaustive
	case format.ParamVec2S, format.ParamVec2U, format.ParamVec2F, format.ParamVec2B:
		return 2
	case format.ParamVec3S, format.ParamVec3U, format.ParamVec3F, format.ParamVec3B:
		return 3
	case format.ParamVec4S, format.ParamVec4U, format.ParamVec4F, format.ParamVec4B:
		return 4
	case format.ParamMat3F:
		return 9
	case format.ParamMat4F:
		return 16
	default:
		return 1
	}
}

// parseTextValue converts the text form of a value of typ into its payload.
// Strings are returned as is.
func parseTextValue(typ format.ParamType, text string) ([]byte, error) {
	switch typ { //nolint: exhaustive
	case format.ParamString:
		return []byte(text), nil
	case format.ParamS32:
		v, err := strconv.ParseInt(text, 10, 32)
		return appendValue(nil, int32(v)), err
	case format.ParamS64:
		v, err := strconv.ParseInt(text, 10, 64)
		return appendValue(nil, v), err
	case format.ParamU32:
		v, err := strconv.ParseUint(text, 10, 32)
		return appendValue(nil, uint32(v)), err
	case format.ParamU64:
		v, err := strconv.ParseUint(text, 10, 64)
		return appendValue(nil, v), err
	case format.ParamF32:
		v, err := strconv.ParseFloat(text, 32)
		return appendValue(nil, float32(v)), err
	case format.ParamF64:
		v, err := strconv.ParseFloat(text, 64)
		return appendValue(nil, v), err
	case format.ParamBool:
		v, err := ParseBool(text)
		return appendValue(nil, v), err
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '[' || r == ']'
	})
	if want := componentCount(typ); len(fields) != want {
		return nil, fmt.Errorf("%s needs %d components, have %d", typ, want, len(fields))
	}

	out := make([]byte, 0, 64)
	for _, field := range fields {
		var err error
		switch typ { //nolint: exhaustive
		case format.ParamVec2S, format.ParamVec3S, format.ParamVec4S:
			var v int64
			v, err = strconv.ParseInt(field, 10, 32)
			out = appendValue(out, int32(v))
		case format.ParamVec2U, format.ParamVec3U, format.ParamVec4U:
			var v uint64
			v, err = strconv.ParseUint(field, 10, 32)
			out = appendValue(out, uint32(v))
		case format.ParamVec2F, format.ParamVec3F, format.ParamVec4F, format.ParamMat3F, format.ParamMat4F:
			var v float64
			v, err = strconv.ParseFloat(field, 32)
			out = appendValue(out, float32(v))
		case format.ParamVec2B, format.ParamVec3B, format.ParamVec4B:
			var v bool
			v, err = ParseBool(field)
			out = appendValue(out, v)
		default:
			return nil, fmt.Errorf("%w: %s", errs.ErrInvalidParamType, typ)
		}
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// ParseBool accepts true/false, yes/no, on/off and 1/0 in any letter case.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool %q", text)
	}
}

// isSimpleChar reports whether c may appear in an unquoted name or value.
func isSimpleChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c == '_' || c == '-' || c == '.' || c == '~'
}

func isSimpleString(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if !isSimpleChar(s[i]) {
			return false
		}
	}

	return true
}

// appendString appends s unquoted when it is simple, else quoted.
func appendString(dst []byte, s string) []byte {
	if isSimpleString(s) {
		return append(dst, s...)
	}

	return appendQuoted(dst, s)
}

// appendQuoted appends s in the quote style that needs the fewest escapes.
// Values with line breaks use a triple quote whose first and last line
// breaks are not part of the value.
func appendQuoted(dst []byte, s string) []byte {
	hasLineBreak := strings.ContainsAny(s, "\r\n")
	hasQuote := strings.IndexByte(s, '"') >= 0
	hasTick := strings.IndexByte(s, '\'') >= 0

	quote := byte('"')
	triple := hasLineBreak
	if hasQuote && !hasTick {
		quote = '\''
	}

	if triple {
		dst = append(dst, quote, quote, quote, '\n')
	} else {
		dst = append(dst, quote)
	}

	for i := range len(s) {
		c := s[i]
		switch {
		case c == '~':
			dst = append(dst, '~', '~')
		case c == quote && (!triple || (i+1 < len(s) && s[i+1] == quote)):
			dst = append(dst, '~', c)
		case c == '\r' && !triple:
			dst = append(dst, '~', 'r')
		case c == '\n' && !triple:
			dst = append(dst, '~', 'n')
		case c == '\t':
			dst = append(dst, '~', 't')
		default:
			dst = append(dst, c)
		}
	}

	if triple {
		return append(dst, '\n', quote, quote, quote)
	}

	return append(dst, quote)
}
