package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktfmt/internal/lang/ast"
)

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.NotNil(t, f)
	return f
}

func TestParsePackageAndImports(t *testing.T) {
	f := mustParse(t, `package a.b.c;
import "x";
import "y";
fun main() {}
`)
	require.NotNil(t, f.Package)
	assert.Equal(t, "a.b.c", f.Package.Path)
	require.Len(t, f.DeclList, 3)
	imp, ok := f.DeclList[0].(*ast.ImportDecl)
	require.True(t, ok)
	assert.Equal(t, `"x"`, imp.Path.Value)
}

func TestParseFuncDeclWithParamsAndReturn(t *testing.T) {
	f := mustParse(t, `fun add(a int, b int): int {
  return a + b;
}
`)
	require.Len(t, f.DeclList, 1)
	fn, ok := f.DeclList[0].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Value)
	require.Len(t, fn.Param, 2)
	assert.Equal(t, "a", fn.Param[0].Name.Value)
	require.NotNil(t, fn.Return)
	require.Len(t, fn.Body.StmtList, 1)
}

func TestParseKDocAttachesToFollowingDecl(t *testing.T) {
	f := mustParse(t, "/** Adds two numbers. */\nfun add(a int, b int): int { return a + b; }\n")
	fn := f.DeclList[0].(*ast.FuncDecl)
	require.NotNil(t, fn.Doc)
	assert.Contains(t, fn.Doc.Raw, "Adds two numbers")
}

func TestParseIfElseChain(t *testing.T) {
	f := mustParse(t, `fun f() {
  if (a) {
    b();
  } else if (c) {
    d();
  } else {
    e();
  }
}
`)
	fn := f.DeclList[0].(*ast.FuncDecl)
	ifStmt := fn.Body.StmtList[0].(*ast.IfStmt)
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	require.True(t, ok)
	_, ok = elseIf.Else.(*ast.BlockStmt)
	assert.True(t, ok)
}

func TestParseForLoopShorthand(t *testing.T) {
	f := mustParse(t, `fun f() {
  for running {
    step();
  }
}
`)
	fn := f.DeclList[0].(*ast.FuncDecl)
	forStmt := fn.Body.StmtList[0].(*ast.ForStmt)
	assert.Nil(t, forStmt.Init)
	require.NotNil(t, forStmt.Cond)
	name, ok := forStmt.Cond.(*ast.Name)
	require.True(t, ok)
	assert.Equal(t, "running", name.Value)
}

func TestParseCallWithTrailingLambda(t *testing.T) {
	f := mustParse(t, `fun f() {
  list.forEach(x) {
    use(x);
  }
}
`)
	fn := f.DeclList[0].(*ast.FuncDecl)
	exprStmt := fn.Body.StmtList[0].(*ast.ExprStmt)
	call, ok := exprStmt.X.(*ast.CallExpr)
	require.True(t, ok)
	require.NotNil(t, call.TrailingBlock)
	require.Len(t, call.ArgList, 1)
}

func TestParseStringInterpolationParts(t *testing.T) {
	f := mustParse(t, `fun f() {
  val s = "hi ${name}!";
}
`)
	fn := f.DeclList[0].(*ast.FuncDecl)
	declStmt := fn.Body.StmtList[0].(*ast.DeclStmt)
	v := declStmt.DeclList[0].(*ast.VarDecl)
	lit := v.Values.(*ast.BasicLit)
	require.Len(t, lit.Parts, 3)
	assert.Equal(t, "name", lit.Parts[1].Interp)
}

func TestParseOperatorPrecedence(t *testing.T) {
	f := mustParse(t, `fun f() {
  val x = a + b * c;
}
`)
	fn := f.DeclList[0].(*ast.FuncDecl)
	declStmt := fn.Body.StmtList[0].(*ast.DeclStmt)
	v := declStmt.DeclList[0].(*ast.VarDecl)
	top := v.Values.(*ast.Operation)
	// `+` binds loosest, so the top node is the addition and its right
	// operand is the nested `b * c` multiplication.
	require.NotNil(t, top)
	_, ok := top.Y.(*ast.Operation)
	assert.True(t, ok)
}

func TestParseBadTopLevelTokenRecorded(t *testing.T) {
	_, err := Parse(strings.NewReader("}}} garbage"))
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
}
