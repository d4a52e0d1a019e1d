package block

import (
	"fmt"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

// ValueParamName is the param name used by SetValue and GetValue.
const ValueParamName = "value"

// FindParamIndex returns the index of the first param named name, or -1.
func (b *DataBlock) FindParamIndex(name string) int {
	if b.node() == nil {
		return -1
	}

	return b.FindParamIndexByNameID(b.shared.StringID(name), -1)
}

// FindParamIndexReverse returns the index of the last param named name, or -1.
func (b *DataBlock) FindParamIndexReverse(name string) int {
	if b.node() == nil {
		return -1
	}

	return b.FindParamIndexReverseByNameID(b.shared.StringID(name), b.ParamsCount())
}

// FindParamIndexByNameID scans forward from startAfter+1 and returns the index
// of the first param with the name id, or -1. Comment entries never match.
func (b *DataBlock) FindParamIndexByNameID(id SharedStringID, startAfter int) int {
	nd := b.node()
	if nd == nil || id == 0 {
		return -1
	}
	for i := max(startAfter+1, 0); i < nd.paramsCount(); i++ {
		if nd.paramNameID(i) == id {
			return i
		}
	}

	return -1
}

// FindParamIndexReverseByNameID scans backward from startBefore-1 and returns
// the index of the last param with the name id, or -1.
func (b *DataBlock) FindParamIndexReverseByNameID(id SharedStringID, startBefore int) int {
	nd := b.node()
	if nd == nil || id == 0 {
		return -1
	}
	for i := min(startBefore, nd.paramsCount()) - 1; i >= 0; i-- {
		if nd.paramNameID(i) == id {
			return i
		}
	}

	return -1
}

// IsParamExists reports whether a param named name exists.
func (b *DataBlock) IsParamExists(name string) bool {
	return b.FindParamIndex(name) >= 0
}

// RemoveParamAt erases param i. Later params shift down by one.
func (b *DataBlock) RemoveParamAt(i int) bool {
	nd := b.node()
	if nd == nil || i < 0 || i >= nd.paramsCount() {
		return false
	}
	nd.removeParam(i)

	return true
}

// RemoveParam erases every param named name and reports whether any was
// removed. The remaining params keep their relative order.
func (b *DataBlock) RemoveParam(name string) bool {
	if b.node() == nil {
		return false
	}
	id := b.shared.StringID(name)
	if id == 0 {
		return false
	}

	removed := false
	for i := b.FindParamIndexReverseByNameID(id, b.ParamsCount()); i >= 0; i = b.FindParamIndexReverseByNameID(id, i) {
		removed = b.RemoveParamAt(i) || removed
	}

	return removed
}

func (b *DataBlock) addParam(nameID SharedStringID, typ format.ParamType, data []byte) (int, error) {
	nd, err := b.liveNode()
	if err != nil {
		return -1, err
	}
	if nd.paramsCount() >= MaxParams {
		return -1, errs.ErrTooManyParams
	}

	return nd.appendParam(nameID, typ, data), nil
}

// =============================================================================
// Generic typed access
// =============================================================================

// Get returns the value of the first param named name, or def when the block
// has no such param or the param holds another type.
func Get[T Value](b *DataBlock, name string, def T) T {
	if b.node() == nil {
		return def
	}

	return GetByNameID(b, b.shared.StringID(name), def)
}

// GetByNameID is Get addressed by name id.
func GetByNameID[T Value](b *DataBlock, id SharedStringID, def T) T {
	i := b.FindParamIndexByNameID(id, -1)
	if i < 0 {
		return def
	}
	v, err := GetAt[T](b, i)
	if err != nil {
		return def
	}

	return v
}

// GetAt returns the value of param i.
func GetAt[T Value](b *DataBlock, i int) (T, error) {
	var zero T
	nd, err := b.liveNode()
	if err != nil {
		return zero, err
	}
	if i < 0 || i >= nd.paramsCount() {
		return zero, fmt.Errorf("%w: %d", errs.ErrInvalidParamIndex, i)
	}
	if typ := nd.paramType(i); typ != ParamTypeOf[T]() {
		return zero, fmt.Errorf("%w: param %d is %s, not %s", errs.ErrTypeMismatch, i, typ, ParamTypeOf[T]())
	}

	return decodeValue[T](nd.payload(i)), nil
}

// Add appends a new param named name. Existing params with the same name are
// kept; lookups by name keep returning the first one.
func Add[T Value](b *DataBlock, name string, v T) (int, error) {
	if _, err := b.liveNode(); err != nil {
		return -1, err
	}
	id, err := b.internName(name)
	if err != nil {
		return -1, err
	}

	return AddByNameID(b, id, v)
}

// AddByNameID is Add addressed by an interned name id.
func AddByNameID[T Value](b *DataBlock, id SharedStringID, v T) (int, error) {
	if b.node() != nil && !b.shared.HasStringID(id) {
		return -1, fmt.Errorf("%w: %d", errs.ErrInvalidStringID, id)
	}

	return b.addParam(id, ParamTypeOf[T](), appendValue(nil, v))
}

// Set overwrites the first param named name, or appends it when missing.
// It fails with errs.ErrTypeMismatch when the existing param holds another
// type, leaving it untouched.
func Set[T Value](b *DataBlock, name string, v T) (int, error) {
	if _, err := b.liveNode(); err != nil {
		return -1, err
	}
	if id := b.shared.StringID(name); id != 0 {
		return SetByNameID(b, id, v)
	}

	return Add(b, name, v)
}

// SetByNameID is Set addressed by an interned name id.
func SetByNameID[T Value](b *DataBlock, id SharedStringID, v T) (int, error) {
	i := b.FindParamIndexByNameID(id, -1)
	if i < 0 {
		return AddByNameID(b, id, v)
	}
	if err := SetAt(b, i, v); err != nil {
		return -1, err
	}

	return i, nil
}

// SetAt overwrites the value of param i, which must hold type T.
func SetAt[T Value](b *DataBlock, i int, v T) error {
	nd, err := b.liveNode()
	if err != nil {
		return err
	}
	if i < 0 || i >= nd.paramsCount() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidParamIndex, i)
	}
	typ := ParamTypeOf[T]()
	if cur := nd.paramType(i); cur != typ {
		return fmt.Errorf("%w: param %q is %s, not %s", errs.ErrTypeMismatch, b.ParamName(i), cur, typ)
	}
	nd.overwriteParam(i, typ, appendValue(nil, v))

	return nil
}

// SetValue stores v as the single "value" param of b. Reflection-style
// drivers use it to persist a scalar as its own block.
func SetValue[T Value](b *DataBlock, v T) error {
	_, err := Set(b, ValueParamName, v)
	return err
}

// GetValue returns the "value" param of b, or def.
func GetValue[T Value](b *DataBlock, def T) T {
	return Get(b, ValueParamName, def)
}
