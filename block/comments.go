package block

import (
	"fmt"

	"github.com/arloliu/datablock/errs"
	"github.com/arloliu/datablock/format"
)

// Comments are kept as ordinary entries so that text round trips reproduce
// them in place. A comment among params is a param with a comment type and
// name id 0. A comment among child blocks is a comment node: a child flagged
// as comment that holds exactly one comment param. Name lookups skip both.

// AddComment appends a comment param of kind typ.
func (b *DataBlock) AddComment(typ format.ParamType, text string) (int, error) {
	if !typ.IsComment() {
		return -1, fmt.Errorf("%w: %s is not a comment type", errs.ErrInvalidParamType, typ)
	}

	return b.addParam(0, typ, []byte(text))
}

// AddCommentBlock appends a comment node of kind typ to the child list.
func (b *DataBlock) AddCommentBlock(typ format.ParamType, text string) (*DataBlock, error) {
	if !typ.IsComment() {
		return nil, fmt.Errorf("%w: %s is not a comment type", errs.ErrInvalidParamType, typ)
	}

	child, err := b.addChild(flagComment)
	if err != nil {
		return nil, err
	}
	if _, err := child.addParam(0, typ, []byte(text)); err != nil {
		b.RemoveDataBlockAt(b.DataBlocksCount() - 1)
		return nil, err
	}

	return child, nil
}

// CommentAt returns the text of param i when it is a comment.
func (b *DataBlock) CommentAt(i int) (string, bool) {
	if !b.ParamType(i).IsComment() {
		return "", false
	}

	return string(b.node().payload(i)), true
}

// Comment returns the kind and text of a comment node.
func (b *DataBlock) Comment() (format.ParamType, string, bool) {
	if !b.IsComment() {
		return format.ParamNone, "", false
	}
	text, ok := b.CommentAt(0)
	if !ok {
		return format.ParamNone, "", false
	}

	return b.ParamType(0), text, true
}

// StripComments removes every comment param and comment node from b and its
// descendants.
func (b *DataBlock) StripComments() {
	nd := b.node()
	if nd == nil {
		return
	}
	for i := nd.paramsCount() - 1; i >= 0; i-- {
		if nd.paramType(i).IsComment() {
			nd.removeParam(i)
		}
	}
	for i := len(nd.children) - 1; i >= 0; i-- {
		child := b.GetDataBlockAt(i)
		if child.IsComment() {
			b.RemoveDataBlockAt(i)
			continue
		}
		child.StripComments()
	}
}

// HasComments reports whether b or a descendant holds a comment entry.
func (b *DataBlock) HasComments() bool {
	nd := b.node()
	if nd == nil {
		return false
	}
	for i := range nd.paramsCount() {
		if nd.paramType(i).IsComment() {
			return true
		}
	}
	for child := range b.DataBlocks() {
		if child.IsComment() || child.HasComments() {
			return true
		}
	}

	return false
}
