package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktfmt/internal/lang/ast"
)

func name(v string) *ast.Name { return ast.NewName(ast.Pos{Line: 1}, v) }

func block() *ast.BlockStmt { return &ast.BlockStmt{} }

func TestMatchNodeOfType(t *testing.T) {
	p := NodeOfType("n", ast.NameKind)
	steps, ok := Match(p, []ast.Node{name("x")})
	require.True(t, ok)
	require.Len(t, steps, 1)
	assert.Equal(t, "n", steps[0].Label)
}

func TestMatchNodeOfTypeRejectsWrongKind(t *testing.T) {
	p := NodeOfType("n", ast.NameKind)
	_, ok := Match(p, []ast.Node{block()})
	assert.False(t, ok)
}

func TestMatchZeroOrMoreStopsAtTrailingBlock(t *testing.T) {
	// Mirrors scanCallExpr's callPattern: args must not swallow a trailing
	// lambda block.
	fn := NodeOfType("func", ast.NameKind)
	args := ZeroOrMore(NodeNotOfType("arg", ast.BlockStmtKind))
	trailing := ZeroOrOne(NodeOfType("trailing", ast.BlockStmtKind))
	p := AndThen(fn, AndThen(args, AndThen(trailing, End())))

	steps, ok := Match(p, []ast.Node{name("f"), name("a"), name("b"), block()})
	require.True(t, ok)

	var labels []string
	for _, s := range steps {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"func", "arg", "arg", "trailing"}, labels)
}

func TestMatchGreedyAnyNodeWouldSwallowTrailingBlock(t *testing.T) {
	// Documents why NodeNotOfType exists: an unrestricted AnyNode repetition
	// consumes the trailing block as just another argument, and the overall
	// match still succeeds but with "trailing" never bound.
	fn := NodeOfType("func", ast.NameKind)
	args := ZeroOrMore(AnyNode("arg"))
	trailing := ZeroOrOne(NodeOfType("trailing", ast.BlockStmtKind))
	p := AndThen(fn, AndThen(args, AndThen(trailing, End())))

	steps, ok := Match(p, []ast.Node{name("f"), block()})
	require.True(t, ok)
	for _, s := range steps {
		assert.NotEqual(t, "trailing", s.Label)
	}
}

func TestMatchEitherTriesFirstAlternativeFirst(t *testing.T) {
	p := Either(NodeOfType("name", ast.NameKind), NodeOfType("blk", ast.BlockStmtKind))
	steps, ok := Match(p, []ast.Node{name("x")})
	require.True(t, ok)
	require.Len(t, steps, 1)
	assert.Equal(t, "name", steps[0].Label)

	steps, ok = Match(p, []ast.Node{block()})
	require.True(t, ok)
	require.Len(t, steps, 1)
	assert.Equal(t, "blk", steps[0].Label)
}

func TestMatchOneOrMoreRequiresAtLeastOne(t *testing.T) {
	p := AndThen(OneOrMore(NodeOfType("n", ast.NameKind)), End())
	_, ok := Match(p, nil)
	assert.False(t, ok)

	steps, ok := Match(p, []ast.Node{name("a"), name("b"), name("c")})
	require.True(t, ok)
	assert.Len(t, steps, 3)
}

func TestMatchPossibleWhitespaceRecordsGap(t *testing.T) {
	a := name("a")
	b := name("b")
	b.SetPos(ast.Pos{Line: 4})
	p := AndThen(NodeOfType("a", ast.NameKind),
		AndThen(PossibleWhitespace("gap"),
			AndThen(NodeOfType("b", ast.NameKind), End())))

	steps, ok := Match(p, []ast.Node{a, b})
	require.True(t, ok)
	require.Len(t, steps, 3)
	assert.Equal(t, "gap", steps[1].Label)
	assert.Equal(t, 2, steps[1].Gap) // lines 1 and 4: two fully blank lines between
}

func TestMatchEndRejectsLeftoverChildren(t *testing.T) {
	p := AndThen(NodeOfType("n", ast.NameKind), End())
	_, ok := Match(p, []ast.Node{name("a"), name("b")})
	assert.False(t, ok)
}
