package fmttoken

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndentIncrement(t *testing.T) {
	assert.Equal(t, 4, CODE.IndentIncrement(4))
	assert.Equal(t, 4, STRING_LITERAL.IndentIncrement(4))
	assert.Equal(t, 1, KDOC.IndentIncrement(4))
	assert.Equal(t, 1, LONG_COMMENT_CONTINUATION.IndentIncrement(4))
}

func TestIsComment(t *testing.T) {
	for _, s := range []State{LINE_COMMENT, BLOCK_COMMENT, KDOC, LONG_COMMENT_CONTINUATION} {
		assert.True(t, s.IsComment(), "state %d", s)
	}
	for _, s := range []State{CODE, STRING_LITERAL, MULTILINE_STRING, PACKAGE_IMPORT} {
		assert.False(t, s.IsComment())
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Leaf", Leaf.String())
	assert.Equal(t, "Begin", Begin.String())
	assert.Equal(t, "Unknown", Kind(255).String())
}

func TestIsForcedIsSynchronizedIsBreak(t *testing.T) {
	assert.True(t, NewForcedBreak(1).IsForced())
	assert.True(t, NewClosingForcedBreak().IsForced())
	assert.False(t, NewForcedBreak(1).IsSynchronized())

	assert.True(t, NewSynchronizedBreak(1).IsSynchronized())
	assert.True(t, NewClosingSynchronizedBreak(1).IsSynchronized())
	assert.False(t, NewSynchronizedBreak(1).IsForced())

	assert.True(t, NewWhitespace(" ").IsBreak())
	assert.True(t, NewForcedBreak(1).IsBreak())
	assert.True(t, NewSynchronizedBreak(1).IsBreak())
	assert.False(t, NewLeaf("x").IsBreak())
	assert.False(t, NewBegin(CODE).IsBreak())
}

func TestConstructors(t *testing.T) {
	l := NewLeaf("hi")
	assert.Equal(t, Leaf, l.Kind)
	assert.Equal(t, "hi", l.Text)

	b := NewBegin(KDOC)
	assert.Equal(t, Begin, b.Kind)
	assert.Equal(t, KDOC, b.State)

	fb := NewForcedBreak(2)
	assert.Equal(t, 2, fb.Count)

	sb := NewSynchronizedBreak(3)
	assert.Equal(t, 3, sb.WSWidth)
}
