package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktfmt/internal/lang/ast"
	"ktfmt/internal/lang/token"
	"ktfmt/pkg/fmttoken"
)

func TestScanSelectorExprEmitsBreakBeforeDot(t *testing.T) {
	r := New()
	sel := &ast.SelectorExpr{X: &ast.Name{Value: "a"}, Sel: &ast.Name{Value: "b"}}
	out := scanSelectorExpr(r, sel)

	require.Len(t, out, 6)
	require.Equal(t, fmttoken.Begin, out[0].Kind)
	assert.True(t, out[0].Continuation, "selector chains wrap at the continuation indent, not State's own increment")
	assert.Equal(t, "a", out[1].Text)
	require.Equal(t, fmttoken.SynchronizedBreak, out[2].Kind, "a break candidate must precede the dot so long chains can wrap")
	assert.Equal(t, ".", out[3].Text)
	assert.Equal(t, "b", out[4].Text)
	assert.Equal(t, fmttoken.End, out[5].Kind)
}

func TestScanSelectorExprOptionalUsesQuestionDot(t *testing.T) {
	r := New()
	sel := &ast.SelectorExpr{X: &ast.Name{Value: "a"}, Sel: &ast.Name{Value: "b"}, Optional: true}
	out := scanSelectorExpr(r, sel)
	// Begin, X, break, "?.", Sel, End
	assert.Equal(t, "?.", out[3].Text)
}

func TestScanStringPartsEmitsBreakCandidatesAtWordAndInterpolationBoundaries(t *testing.T) {
	parts := []ast.StringPart{
		{Literal: "hello world"},
		{Interp: "name"},
		{Literal: "!"},
	}
	out := scanStringParts(parts)

	require.True(t, len(out) > 0)
	require.Equal(t, fmttoken.Begin, out[0].Kind)
	assert.Equal(t, fmttoken.STRING_LITERAL, out[0].State)
	assert.Equal(t, `"`, out[1].Text)
	assert.Equal(t, "hello", out[2].Text)
	require.Equal(t, fmttoken.Whitespace, out[3].Kind)
	assert.Equal(t, " ", out[3].Text)
	assert.Equal(t, "world", out[4].Text)
	require.Equal(t, fmttoken.Whitespace, out[5].Kind)
	assert.Equal(t, "", out[5].Text, "the literal/interpolation boundary is a zero-width candidate break")
	assert.Equal(t, "${name}", out[6].Text)
	require.Equal(t, fmttoken.Whitespace, out[7].Kind)
	assert.Equal(t, "!", out[8].Text)
	assert.Equal(t, `"`, out[9].Text)
	assert.Equal(t, fmttoken.End, out[10].Kind)
}

func TestScanBasicLitMultilineStringWrapsVerbatim(t *testing.T) {
	r := New()
	lit := &ast.BasicLit{Value: `"""line one\nline two"""`, Kind_: token.MultilineStringLit}
	out := scanBasicLit(r, lit)

	require.Len(t, out, 3)
	require.Equal(t, fmttoken.Begin, out[0].Kind)
	assert.Equal(t, fmttoken.MULTILINE_STRING, out[0].State)
	assert.Equal(t, lit.Value, out[1].Text)
	assert.Equal(t, fmttoken.End, out[2].Kind)
}
