package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktfmt/internal/lang/ast"
	"ktfmt/pkg/fmttoken"
)

func TestScanIfStmtWrapsConditionWithClosingBreakBeforeParen(t *testing.T) {
	r := New()
	stmt := &ast.IfStmt{
		Cond:  &ast.Name{Value: "cond"},
		Block: &ast.BlockStmt{},
	}
	out := scanIfStmt(r, stmt)

	require.True(t, len(out) >= 8)
	assert.Equal(t, "if", out[0].Text)
	assert.Equal(t, fmttoken.Whitespace, out[1].Kind)
	assert.Equal(t, "(", out[2].Text)
	require.Equal(t, fmttoken.Begin, out[3].Kind)
	assert.Equal(t, "cond", out[4].Text)
	require.Equal(t, fmttoken.ClosingSynchronizedBreak, out[5].Kind, "the condition's closing paren must be preceded by a ClosingSynchronizedBreak")
	assert.Equal(t, fmttoken.End, out[6].Kind)
	assert.Equal(t, ")", out[7].Text)
}

func TestScanIfStmtWithElseAppendsElseArm(t *testing.T) {
	r := New()
	stmt := &ast.IfStmt{
		Cond:  &ast.Name{Value: "cond"},
		Block: &ast.BlockStmt{},
		Else:  &ast.BlockStmt{},
	}
	out := scanIfStmt(r, stmt)
	last := out[len(out)-1]
	assert.Equal(t, "}", last.Text)
	// "else" keyword appears somewhere after the if-block's closing brace.
	var sawElse bool
	for _, tok := range out {
		if tok.Kind == fmttoken.Leaf && tok.Text == "else" {
			sawElse = true
		}
	}
	assert.True(t, sawElse)
}
