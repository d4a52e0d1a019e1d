package block

import (
	"slices"

	"github.com/arloliu/datablock/format"
)

// node is one slot of the tree arena.
//
// params holds the fixed 8-byte param records:
//
//	[nameId:24 | type:8][value:u32]
//
// value is the payload itself for types of at most 4 bytes, otherwise an
// offset into complex. String payloads are stored in complex as
// [len:u32][bytes]. Offsets into complex never change when records are added
// or removed; removing a record or growing a string leaves dead bytes behind
// until compact is called.
type node struct {
	idx    uint32
	gen    uint32
	live   bool
	handle *DataBlock

	nameIDAndFlags uint32
	params         []byte
	complex        []byte
	children       []uint32
}

func (n *node) reset() {
	n.nameIDAndFlags = 0
	n.params = nil
	n.complex = nil
	n.children = nil
}

func (n *node) nameID() SharedStringID {
	return n.nameIDAndFlags & nameIDMask
}

func (n *node) isTopmost() bool {
	return n.nameIDAndFlags&flagTopmost != 0
}

func (n *node) isComment() bool {
	return n.nameIDAndFlags&flagComment != 0
}

func (n *node) paramsCount() int {
	return len(n.params) / paramRecordSize
}

func (n *node) record(i int) (SharedStringID, format.ParamType, uint32) {
	rec := n.params[i*paramRecordSize:]
	head := le.Uint32(rec)

	return head & nameIDMask, format.ParamType(head >> typeShift), le.Uint32(rec[4:])
}

func (n *node) paramNameID(i int) SharedStringID {
	return le.Uint32(n.params[i*paramRecordSize:]) & nameIDMask
}

func (n *node) paramType(i int) format.ParamType {
	return format.ParamType(n.params[i*paramRecordSize+3])
}

func (n *node) putRecord(i int, nameID SharedStringID, typ format.ParamType, value uint32) {
	rec := n.params[i*paramRecordSize:]
	le.PutUint32(rec, nameID&nameIDMask|uint32(typ)<<typeShift)
	le.PutUint32(rec[4:], value)
}

// payload returns the stored bytes of param i: the fixed-size value, or the
// string bytes without their length prefix.
func (n *node) payload(i int) []byte {
	_, typ, value := n.record(i)
	if typ.IsInPlace() {
		start := i*paramRecordSize + 4
		return n.params[start : start+typ.Size()]
	}
	if typ.HasStringPayload() {
		size := le.Uint32(n.complex[value:])
		start := value + 4

		return n.complex[start : start+size]
	}

	return n.complex[value : int(value)+typ.Size()]
}

// storedSize returns the number of Region B bytes used by param i.
func (n *node) storedSize(i int) int {
	_, typ, value := n.record(i)
	switch {
	case typ.IsInPlace():
		return 0
	case typ.HasStringPayload():
		return 4 + int(le.Uint32(n.complex[value:]))
	default:
		return typ.Size()
	}
}

// storePayload encodes data for typ and returns the value word of the record,
// appending to complex when the payload does not fit in place.
func (n *node) storePayload(typ format.ParamType, data []byte) uint32 {
	if typ.IsInPlace() {
		var slot [4]byte
		copy(slot[:], data)

		return le.Uint32(slot[:])
	}

	offset := uint32(len(n.complex)) //nolint: gosec
	if typ.HasStringPayload() {
		n.complex = le.AppendUint32(n.complex, uint32(len(data))) //nolint: gosec
	}
	n.complex = append(n.complex, data...)

	return offset
}

// appendParam adds a record at the end of the params region.
func (n *node) appendParam(nameID SharedStringID, typ format.ParamType, data []byte) int {
	value := n.storePayload(typ, data)
	i := n.paramsCount()
	n.params = append(n.params, make([]byte, paramRecordSize)...)
	n.putRecord(i, nameID, typ, value)

	return i
}

// overwriteParam replaces the payload of param i, whose type must equal typ.
// Fixed-size payloads and strings that do not grow are rewritten in place;
// longer strings are appended and the old bytes become dead space.
func (n *node) overwriteParam(i int, typ format.ParamType, data []byte) {
	nameID, _, value := n.record(i)
	switch {
	case typ.IsInPlace():
		n.putRecord(i, nameID, typ, n.storePayload(typ, data))
	case typ.HasStringPayload():
		if oldLen := le.Uint32(n.complex[value:]); len(data) <= int(oldLen) {
			le.PutUint32(n.complex[value:], uint32(len(data))) //nolint: gosec
			copy(n.complex[value+4:], data)

			return
		}
		n.putRecord(i, nameID, typ, n.storePayload(typ, data))
	default:
		copy(n.complex[value:], data)
	}
}

// removeParam erases record i, shifting later records down.
func (n *node) removeParam(i int) {
	start := i * paramRecordSize
	n.params = slices.Delete(n.params, start, start+paramRecordSize)
}

// deadBytes returns the size of Region B bytes no record refers to.
func (n *node) deadBytes() int {
	used := 0
	for i := range n.paramsCount() {
		used += n.storedSize(i)
	}

	return len(n.complex) - used
}

// compact rewrites Region B without dead bytes, keeping record order and values.
func (n *node) compact() {
	if n.deadBytes() == 0 {
		return
	}

	packed := make([]byte, 0, len(n.complex))
	for i := range n.paramsCount() {
		nameID, typ, _ := n.record(i)
		if typ.IsInPlace() {
			continue
		}
		offset := uint32(len(packed)) //nolint: gosec
		if typ.HasStringPayload() {
			data := n.payload(i)
			packed = le.AppendUint32(packed, uint32(len(data))) //nolint: gosec
			packed = append(packed, data...)
		} else {
			packed = append(packed, n.payload(i)...)
		}
		n.putRecord(i, nameID, typ, offset)
	}
	n.complex = packed
}
