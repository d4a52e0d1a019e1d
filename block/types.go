package block

import (
	"math"

	"github.com/arloliu/datablock/format"
)

// SharedStringID identifies an interned name within one tree. Ids are dense
// and start at 1; 0 is reserved as invalid.
type SharedStringID = uint32

const (
	// MaxParams is the maximum number of params in one block.
	MaxParams = math.MaxUint16
	// MaxDataBlocks is the maximum number of child blocks in one block.
	MaxDataBlocks = math.MaxUint16
	// MaxSharedStringID is the largest name id a param record can hold.
	MaxSharedStringID = 1<<24 - 1
	// MaxNameLength is the longest name the binary string table can hold.
	MaxNameLength = math.MaxUint16

	paramRecordSize = 8
	nameIDMask      = 0x00FFFFFF
	typeShift       = 24

	flagComment = uint32(1) << 30
	flagTopmost = uint32(1) << 31
)

// Vector and matrix param values. Components are stored back to back,
// matrices row by row.
type (
	Vec2S [2]int32
	Vec3S [3]int32
	Vec4S [4]int32
	Vec2U [2]uint32
	Vec3U [3]uint32
	Vec4U [4]uint32
	Vec2F [2]float32
	Vec3F [3]float32
	Vec4F [4]float32
	Vec2B [2]bool
	Vec3B [3]bool
	Vec4B [4]bool
	Mat3F [9]float32
	Mat4F [16]float32
)

// Value is the set of Go types that can be stored as a param.
type Value interface {
	int32 | int64 | uint32 | uint64 | float32 | float64 | bool |
		Vec2S | Vec3S | Vec4S | Vec2U | Vec3U | Vec4U |
		Vec2F | Vec3F | Vec4F | Vec2B | Vec3B | Vec4B |
		Mat3F | Mat4F | string
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3F {
	return Mat3F{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4F {
	return Mat4F{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

// ParamTypeOf returns the param type tag used to store values of type T.
func ParamTypeOf[T Value]() format.ParamType {
	var zero T
	switch any(zero).(type) {
	case int32:
		return format.ParamS32
	case int64:
		return format.ParamS64
	case uint32:
		return format.ParamU32
	case uint64:
		return format.ParamU64
	case float32:
		return format.ParamF32
	case float64:
		return format.ParamF64
	case bool:
		return format.ParamBool
	case Vec2S:
		return format.ParamVec2S
	case Vec3S:
		return format.ParamVec3S
	case Vec4S:
		return format.ParamVec4S
	case Vec2U:
		return format.ParamVec2U
	case Vec3U:
		return format.ParamVec3U
	case Vec4U:
		return format.ParamVec4U
	case Vec2F:
		return format.ParamVec2F
	case Vec3F:
		return format.ParamVec3F
	case Vec4F:
		return format.ParamVec4F
	case Vec2B:
		return format.ParamVec2B
	case Vec3B:
		return format.ParamVec3B
	case Vec4B:
		return format.ParamVec4B
	case Mat3F:
		return format.ParamMat3F
	case Mat4F:
		return format.ParamMat4F
	case string:
		return format.ParamString
	default:
		return format.ParamNone
	}
}
