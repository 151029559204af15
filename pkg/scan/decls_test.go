package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktfmt/internal/lang/ast"
	"ktfmt/pkg/fmttoken"
)

func TestScanParamListEmitsSynchronizedBreaksAndClosingBreakBeforeParen(t *testing.T) {
	r := New()
	params := []*ast.Field{
		{Name: &ast.Name{Value: "x"}, Type: &ast.Name{Value: "Int"}},
		{Name: &ast.Name{Value: "y"}, Type: &ast.Name{Value: "String"}},
	}
	out := scanParamList(r, params)

	require.True(t, len(out) > 0)
	assert.Equal(t, fmttoken.Leaf, out[0].Kind)
	assert.Equal(t, "(", out[0].Text)
	require.Equal(t, fmttoken.Begin, out[1].Kind)
	require.Equal(t, fmttoken.SynchronizedBreak, out[2].Kind)
	assert.Equal(t, 0, out[2].WSWidth)

	last := out[len(out)-1]
	assert.Equal(t, fmttoken.Leaf, last.Kind)
	assert.Equal(t, ")", last.Text)

	closing := out[len(out)-3]
	require.Equal(t, fmttoken.ClosingSynchronizedBreak, closing.Kind, "a ClosingSynchronizedBreak must precede the closing paren's End/leaf")
	assert.Equal(t, fmttoken.End, out[len(out)-2].Kind)
}

func TestScanParamListEmptyHasNoBlock(t *testing.T) {
	r := New()
	out := scanParamList(r, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "(", out[0].Text)
	assert.Equal(t, ")", out[1].Text)
}
