package block

import (
	"fmt"
	"iter"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

// DataBlock is a handle to one node of a DataBlock tree.
//
// A node holds an ordered list of typed params and an ordered list of child
// blocks; both keep insertion order and allow duplicate names. Handles are
// unique per node, so two lookups of the same node return the same pointer.
// Once a node is removed from its tree its handle becomes stale: reads return
// zero values and mutations fail with errs.ErrStaleBlock.
type DataBlock struct {
	shared *Shared
	idx    uint32
	gen    uint32
}

// New creates an empty topmost block owning a fresh Shared.
func New() *DataBlock {
	s := newShared()
	return s.allocNode(flagTopmost).handle
}

// NewNamed creates an empty topmost block with the given name.
func NewNamed(name string) *DataBlock {
	b := New()
	nd := b.node()
	nd.nameIDAndFlags |= b.shared.AddString(name)

	return b
}

func (b *DataBlock) node() *node {
	if b == nil || b.shared == nil || int(b.idx) >= len(b.shared.nodes) {
		return nil
	}
	nd := b.shared.nodes[b.idx]
	if !nd.live || nd.gen != b.gen {
		return nil
	}

	return nd
}

func (b *DataBlock) liveNode() (*node, error) {
	nd := b.node()
	if nd == nil {
		return nil, errs.ErrStaleBlock
	}

	return nd, nil
}

// Shared returns the shared state of the tree the block belongs to.
func (b *DataBlock) Shared() *Shared {
	if b == nil {
		return nil
	}

	return b.shared
}

// IsValid reports whether the handle still refers to a live node.
func (b *DataBlock) IsValid() bool {
	return b.node() != nil
}

// IsTopmost reports whether the block is the root of its tree.
func (b *DataBlock) IsTopmost() bool {
	nd := b.node()
	return nd != nil && nd.isTopmost()
}

// IsComment reports whether the block is a comment entry in its parent's
// child list.
func (b *DataBlock) IsComment() bool {
	nd := b.node()
	return nd != nil && nd.isComment()
}

// NameID returns the interned id of the block name.
func (b *DataBlock) NameID() SharedStringID {
	nd := b.node()
	if nd == nil {
		return 0
	}

	return nd.nameID()
}

// Name returns the block name.
func (b *DataBlock) Name() string {
	nd := b.node()
	if nd == nil {
		return ""
	}

	return b.shared.String(nd.nameID())
}

// SetName renames the block.
func (b *DataBlock) SetName(name string) error {
	nd, err := b.liveNode()
	if err != nil {
		return err
	}
	id, err := b.internName(name)
	if err != nil {
		return err
	}
	nd.nameIDAndFlags = nd.nameIDAndFlags&^nameIDMask | id

	return nil
}

func (b *DataBlock) internName(name string) (SharedStringID, error) {
	if len(name) > MaxNameLength {
		return 0, fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, len(name))
	}
	id := b.shared.AddString(name)
	if id == 0 {
		return 0, errs.ErrTooManyStrings
	}

	return id, nil
}

// IsEmpty reports whether the block has neither params nor children.
func (b *DataBlock) IsEmpty() bool {
	nd := b.node()
	return nd == nil || (len(nd.params) == 0 && len(nd.children) == 0)
}

// ParamsCount returns the number of params, comment entries included.
func (b *DataBlock) ParamsCount() int {
	nd := b.node()
	if nd == nil {
		return 0
	}

	return nd.paramsCount()
}

// DataBlocksCount returns the number of children, comment entries included.
func (b *DataBlock) DataBlocksCount() int {
	nd := b.node()
	if nd == nil {
		return 0
	}

	return len(nd.children)
}

// ComplexParamsUsedSize returns the size of the variable-length payload
// region, dead bytes included.
func (b *DataBlock) ComplexParamsUsedSize() int {
	nd := b.node()
	if nd == nil {
		return 0
	}

	return len(nd.complex)
}

// DeadBytes returns the payload bytes no param refers to any more.
func (b *DataBlock) DeadBytes() int {
	nd := b.node()
	if nd == nil {
		return 0
	}

	return nd.deadBytes()
}

// Compact reclaims dead payload bytes of this block and its descendants.
// Param values and order are unchanged.
func (b *DataBlock) Compact() {
	nd := b.node()
	if nd == nil {
		return
	}
	nd.compact()
	for _, child := range nd.children {
		b.shared.nodes[child].handle.Compact()
	}
}

// =============================================================================
// Child blocks
// =============================================================================

// GetDataBlockAt returns the child at index i, or nil when out of range.
func (b *DataBlock) GetDataBlockAt(i int) *DataBlock {
	nd := b.node()
	if nd == nil || i < 0 || i >= len(nd.children) {
		return nil
	}

	return b.shared.nodes[nd.children[i]].handle
}

// GetDataBlock returns the first child named name, or nil.
func (b *DataBlock) GetDataBlock(name string) *DataBlock {
	return b.GetDataBlockAt(b.FindDataBlockIndex(name))
}

// GetDataBlockByNameID returns the first child with the name id, or nil.
func (b *DataBlock) GetDataBlockByNameID(id SharedStringID) *DataBlock {
	return b.GetDataBlockAt(b.FindDataBlockIndexByNameID(id, -1))
}

// IsDataBlockExists reports whether a child named name exists.
func (b *DataBlock) IsDataBlockExists(name string) bool {
	return b.FindDataBlockIndex(name) >= 0
}

// FindDataBlockIndex returns the index of the first child named name, or -1.
func (b *DataBlock) FindDataBlockIndex(name string) int {
	if b.node() == nil {
		return -1
	}
	id := b.shared.StringID(name)
	if id == 0 {
		return -1
	}

	return b.FindDataBlockIndexByNameID(id, -1)
}

// FindDataBlockIndexReverse returns the index of the last child named name, or -1.
func (b *DataBlock) FindDataBlockIndexReverse(name string) int {
	if b.node() == nil {
		return -1
	}
	id := b.shared.StringID(name)
	if id == 0 {
		return -1
	}

	return b.FindDataBlockIndexReverseByNameID(id, b.DataBlocksCount())
}

// FindDataBlockIndexByNameID scans forward from startAfter+1 and returns the
// index of the first non-comment child with the name id, or -1.
func (b *DataBlock) FindDataBlockIndexByNameID(id SharedStringID, startAfter int) int {
	nd := b.node()
	if nd == nil || id == 0 {
		return -1
	}
	for i := max(startAfter+1, 0); i < len(nd.children); i++ {
		child := b.shared.nodes[nd.children[i]]
		if !child.isComment() && child.nameID() == id {
			return i
		}
	}

	return -1
}

// FindDataBlockIndexReverseByNameID scans backward from startBefore-1 and
// returns the index of the last non-comment child with the name id, or -1.
func (b *DataBlock) FindDataBlockIndexReverseByNameID(id SharedStringID, startBefore int) int {
	nd := b.node()
	if nd == nil || id == 0 {
		return -1
	}
	for i := min(startBefore, len(nd.children)) - 1; i >= 0; i-- {
		child := b.shared.nodes[nd.children[i]]
		if !child.isComment() && child.nameID() == id {
			return i
		}
	}

	return -1
}

// AddDataBlock returns the first child named name, creating it when missing.
func (b *DataBlock) AddDataBlock(name string) (*DataBlock, error) {
	if child := b.GetDataBlock(name); child != nil {
		return child, nil
	}

	return b.AddNewDataBlock(name)
}

// AddNewDataBlock always appends a new child named name.
func (b *DataBlock) AddNewDataBlock(name string) (*DataBlock, error) {
	if _, err := b.liveNode(); err != nil {
		return nil, err
	}
	id, err := b.internName(name)
	if err != nil {
		return nil, err
	}

	return b.addChild(id)
}

func (b *DataBlock) addChild(nameIDAndFlags uint32) (*DataBlock, error) {
	nd, err := b.liveNode()
	if err != nil {
		return nil, err
	}
	if len(nd.children) >= MaxDataBlocks {
		return nil, errs.ErrTooManyBlocks
	}

	child := b.shared.allocNode(nameIDAndFlags &^ flagTopmost)
	nd.children = append(nd.children, child.idx)

	return child.handle, nil
}

// AddNewDataBlockCopy appends a deep copy of src as a new child. An empty
// name keeps the name of src. src may belong to another tree.
func (b *DataBlock) AddNewDataBlockCopy(src *DataBlock, name string) (*DataBlock, error) {
	if !src.IsValid() {
		return nil, errs.ErrStaleBlock
	}
	if name == "" {
		name = src.Name()
	}
	if src.shared == b.shared {
		src = src.Duplicate()
	}

	child, err := b.AddNewDataBlock(name)
	if err != nil {
		return nil, err
	}
	if err := child.copyContent(src); err != nil {
		b.RemoveDataBlockAt(b.DataBlocksCount() - 1)
		return nil, err
	}

	return child, nil
}

// RemoveDataBlockAt destroys the child at index i and its subtree.
func (b *DataBlock) RemoveDataBlockAt(i int) bool {
	nd := b.node()
	if nd == nil || i < 0 || i >= len(nd.children) {
		return false
	}

	idx := nd.children[i]
	nd.children = append(nd.children[:i], nd.children[i+1:]...)
	b.shared.freeNode(idx)

	return true
}

// RemoveDataBlock destroys every child named name. It reports whether any
// child was removed.
func (b *DataBlock) RemoveDataBlock(name string) bool {
	if b.node() == nil {
		return false
	}
	id := b.shared.StringID(name)
	if id == 0 {
		return false
	}

	removed := false
	for i := b.FindDataBlockIndexReverseByNameID(id, b.DataBlocksCount()); i >= 0; i = b.FindDataBlockIndexReverseByNameID(id, i) {
		removed = b.RemoveDataBlockAt(i) || removed
	}

	return removed
}

// DataBlocks iterates the children in order, comment entries included.
func (b *DataBlock) DataBlocks() iter.Seq[*DataBlock] {
	return func(yield func(*DataBlock) bool) {
		for i := range b.DataBlocksCount() {
			child := b.GetDataBlockAt(i)
			if child == nil || !yield(child) {
				return
			}
		}
	}
}

// =============================================================================
// Clearing and copying
// =============================================================================

// ClearParams removes every param and its payload, leaving children intact.
func (b *DataBlock) ClearParams() {
	nd := b.node()
	if nd == nil {
		return
	}
	nd.params = nd.params[:0]
	nd.complex = nd.complex[:0]
}

// ClearData destroys every child and removes every param.
func (b *DataBlock) ClearData() {
	nd := b.node()
	if nd == nil {
		return
	}
	for _, child := range nd.children {
		b.shared.freeNode(child)
	}
	nd.children = nd.children[:0]
	b.ClearParams()
}

// Clear empties the block. On the topmost block it also resets the name
// table, which drops the block's own name.
func (b *DataBlock) Clear() {
	nd := b.node()
	if nd == nil {
		return
	}
	b.ClearData()
	if nd.isTopmost() {
		b.shared.clearStrings()
		nd.nameIDAndFlags &^= nameIDMask
	}
}

// CopyFrom replaces the params and children of b with a deep copy of those of
// src. The name of b is unchanged. src may belong to another tree.
func (b *DataBlock) CopyFrom(src *DataBlock) error {
	if _, err := b.liveNode(); err != nil {
		return err
	}
	if !src.IsValid() {
		return errs.ErrStaleBlock
	}
	if src == b {
		return nil
	}
	if src.shared == b.shared {
		src = src.Duplicate()
	}
	b.ClearData()

	return b.copyContent(src)
}

// CopyParamsFrom replaces the params of b with a copy of the params of src.
func (b *DataBlock) CopyParamsFrom(src *DataBlock) error {
	if _, err := b.liveNode(); err != nil {
		return err
	}
	if !src.IsValid() {
		return errs.ErrStaleBlock
	}
	if src == b {
		return nil
	}
	b.ClearParams()

	return b.AppendParamsFrom(src)
}

// AppendParamsFrom appends a copy of every param of src after the params of b.
func (b *DataBlock) AppendParamsFrom(src *DataBlock) error {
	nd, err := b.liveNode()
	if err != nil {
		return err
	}
	srcNode, err := src.liveNode()
	if err != nil {
		return err
	}

	count := srcNode.paramsCount()
	if nd.paramsCount()+count > MaxParams {
		return errs.ErrTooManyParams
	}
	for i := range count {
		nameID, typ, _ := srcNode.record(i)
		if nameID, err = b.translateNameID(src.shared, nameID); err != nil {
			return err
		}
		nd.appendParam(nameID, typ, srcNode.payload(i))
	}

	return nil
}

// Duplicate returns a deep copy of b as the topmost block of a new tree.
func (b *DataBlock) Duplicate() *DataBlock {
	if !b.IsValid() {
		return nil
	}

	dup := NewNamed(b.Name())
	if err := dup.copyContent(b); err != nil {
		return nil
	}

	return dup
}

// translateNameID maps a name id of the src table to the id of the same name
// in the table of b, interning it when missing.
func (b *DataBlock) translateNameID(src *Shared, id SharedStringID) (SharedStringID, error) {
	if id == 0 || src == b.shared {
		return id, nil
	}

	key, ok := src.HashedString(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidStringID, id)
	}
	newID := b.shared.addKey(key)
	if newID == 0 {
		return 0, errs.ErrTooManyStrings
	}

	return newID, nil
}

// copyContent appends the params and children of src to b. src must not be
// b or one of its descendants.
func (b *DataBlock) copyContent(src *DataBlock) error {
	if err := b.AppendParamsFrom(src); err != nil {
		return err
	}

	srcNode := src.node()
	for _, childIdx := range srcNode.children {
		srcChild := src.shared.nodes[childIdx]
		nameID, err := b.translateNameID(src.shared, srcChild.nameID())
		if err != nil {
			return err
		}
		child, err := b.addChild(nameID | srcChild.nameIDAndFlags&flagComment)
		if err != nil {
			return err
		}
		if err := child.copyContent(srcChild.handle); err != nil {
			return err
		}
	}

	return nil
}

// Equal reports whether both blocks hold the same params and children in the
// same order, child names included. The names of b and other themselves are
// not compared, and the trees may use different name tables.
func (b *DataBlock) Equal(other *DataBlock) bool {
	nd, on := b.node(), other.node()
	if nd == nil || on == nil {
		return nd == on
	}
	if nd.paramsCount() != on.paramsCount() || len(nd.children) != len(on.children) {
		return false
	}

	for i := range nd.paramsCount() {
		id, typ, _ := nd.record(i)
		oid, otyp, _ := on.record(i)
		if typ != otyp || b.shared.String(id) != other.shared.String(oid) {
			return false
		}
		if string(nd.payload(i)) != string(on.payload(i)) {
			return false
		}
	}

	for i := range nd.children {
		child, otherChild := b.GetDataBlockAt(i), other.GetDataBlockAt(i)
		if child.IsComment() != otherChild.IsComment() || child.Name() != otherChild.Name() {
			return false
		}
		if !child.Equal(otherChild) {
			return false
		}
	}

	return true
}

// ParamType returns the type of param i, or format.ParamNone when out of range.
func (b *DataBlock) ParamType(i int) format.ParamType {
	nd := b.node()
	if nd == nil || i < 0 || i >= nd.paramsCount() {
		return format.ParamNone
	}

	return nd.paramType(i)
}

// ParamNameID returns the name id of param i, or 0 when out of range.
func (b *DataBlock) ParamNameID(i int) SharedStringID {
	nd := b.node()
	if nd == nil || i < 0 || i >= nd.paramsCount() {
		return 0
	}

	return nd.paramNameID(i)
}

// ParamName returns the name of param i.
func (b *DataBlock) ParamName(i int) string {
	return b.shared.String(b.ParamNameID(i))
}
