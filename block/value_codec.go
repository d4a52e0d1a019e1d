package block

import (
	"math"

	"github.com/arloliu/datablock/endian"
)

var le = endian.Default()

func appendS32s(dst []byte, vs []int32) []byte {
	for _, v := range vs {
		dst = le.AppendUint32(dst, uint32(v)) //nolint: gosec
	}

	return dst
}

func appendU32s(dst []byte, vs []uint32) []byte {
	for _, v := range vs {
		dst = le.AppendUint32(dst, v)
	}

	return dst
}

func appendF32s(dst []byte, vs []float32) []byte {
	for _, v := range vs {
		dst = le.AppendUint32(dst, math.Float32bits(v))
	}

	return dst
}

func appendBools(dst []byte, vs []bool) []byte {
	for _, v := range vs {
		dst = append(dst, boolByte(v))
	}

	return dst
}

func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}

// appendValue appends the little-endian encoding of v. Strings are appended
// as raw bytes without their length prefix.
func appendValue[T Value](dst []byte, v T) []byte {
	switch x := any(v).(type) {
	case int32:
		return le.AppendUint32(dst, uint32(x)) //nolint: gosec
	case int64:
		return le.AppendUint64(dst, uint64(x)) //nolint: gosec
	case uint32:
		return le.AppendUint32(dst, x)
	case uint64:
		return le.AppendUint64(dst, x)
	case float32:
		return le.AppendUint32(dst, math.Float32bits(x))
	case float64:
		return le.AppendUint64(dst, math.Float64bits(x))
	case bool:
		return append(dst, boolByte(x))
	case Vec2S:
		return appendS32s(dst, x[:])
	case Vec3S:
		return appendS32s(dst, x[:])
	case Vec4S:
		return appendS32s(dst, x[:])
	case Vec2U:
		return appendU32s(dst, x[:])
	case Vec3U:
		return appendU32s(dst, x[:])
	case Vec4U:
		return appendU32s(dst, x[:])
	case Vec2F:
		return appendF32s(dst, x[:])
	case Vec3F:
		return appendF32s(dst, x[:])
	case Vec4F:
		return appendF32s(dst, x[:])
	case Vec2B:
		return appendBools(dst, x[:])
	case Vec3B:
		return appendBools(dst, x[:])
	case Vec4B:
		return appendBools(dst, x[:])
	case Mat3F:
		return appendF32s(dst, x[:])
	case Mat4F:
		return appendF32s(dst, x[:])
	case string:
		return append(dst, x...)
	default:
		return dst
	}
}

func readS32s(dst []int32, src []byte) {
	for i := range dst {
		dst[i] = int32(le.Uint32(src[i*4:])) //nolint: gosec
	}
}

func readU32s(dst []uint32, src []byte) {
	for i := range dst {
		dst[i] = le.Uint32(src[i*4:])
	}
}

func readF32s(dst []float32, src []byte) {
	for i := range dst {
		dst[i] = math.Float32frombits(le.Uint32(src[i*4:]))
	}
}

func readBools(dst []bool, src []byte) {
	for i := range dst {
		dst[i] = src[i] != 0
	}
}

// decodeValue decodes a value of type T from src. src must hold at least the
// fixed size of T; for strings it holds exactly the string bytes.
func decodeValue[T Value](src []byte) T {
	var out T
	switch p := any(&out).(type) {
	case *int32:
		*p = int32(le.Uint32(src)) //nolint: gosec
	case *int64:
		*p = int64(le.Uint64(src)) //nolint: gosec
	case *uint32:
		*p = le.Uint32(src)
	case *uint64:
		*p = le.Uint64(src)
	case *float32:
		*p = math.Float32frombits(le.Uint32(src))
	case *float64:
		*p = math.Float64frombits(le.Uint64(src))
	case *bool:
		*p = src[0] != 0
	case *Vec2S:
		readS32s(p[:], src)
	case *Vec3S:
		readS32s(p[:], src)
	case *Vec4S:
		readS32s(p[:], src)
	case *Vec2U:
		readU32s(p[:], src)
	case *Vec3U:
		readU32s(p[:], src)
	case *Vec4U:
		readU32s(p[:], src)
	case *Vec2F:
		readF32s(p[:], src)
	case *Vec3F:
		readF32s(p[:], src)
	case *Vec4F:
		readF32s(p[:], src)
	case *Vec2B:
		readBools(p[:], src)
	case *Vec3B:
		readBools(p[:], src)
	case *Vec4B:
		readBools(p[:], src)
	case *Mat3F:
		readF32s(p[:], src)
	case *Mat4F:
		readF32s(p[:], src)
	case *string:
		*p = string(src)
	}

	return out
}
