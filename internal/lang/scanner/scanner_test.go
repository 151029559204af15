package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktfmt/internal/lang/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var s Scanner
	var errs []string
	s.Init(strings.NewReader(src), func(line, col uint, msg string) {
		errs = append(errs, msg)
	})
	s.Next()
	var toks []token.Token
	for s.Token() != token.EOF {
		toks = append(toks, s.Token())
		s.Next()
	}
	require.Empty(t, errs, "unexpected scan errors: %v", errs)
	return toks
}

func TestScannerKeywordsAndIdent(t *testing.T) {
	toks := scanAll(t, "fun main() { return 1 }")
	assert.Equal(t, []token.Token{
		token.Fun, token.Name, token.Lparen, token.Rparen, token.Lbrace,
		token.Return, token.Literal, token.Rbrace, token.Semi,
	}, toks)
}

func TestScannerAutoSemicolonAfterReturn(t *testing.T) {
	toks := scanAll(t, "fun f() {\n  return\n}")
	// The bare "return" on its own line gets an implicit semicolon before
	// the closing brace, the same as after a Name or a literal.
	assert.Contains(t, toks, token.Semi)
}

func TestScannerStringInterpolation(t *testing.T) {
	var s Scanner
	s.Init(strings.NewReader(`"hi ${name}!"`), func(uint, uint, string) {})
	s.Next()
	require.Equal(t, token.Literal, s.Token())
	assert.Equal(t, `"hi ${name}!"`, s.Literal())
	assert.False(t, s.Bad())
}

func TestScannerTripleQuotedString(t *testing.T) {
	var s Scanner
	s.Init(strings.NewReader(`"""line one
line two"""`), func(uint, uint, string) {})
	s.Next()
	require.Equal(t, token.Literal, s.Token())
	assert.Equal(t, token.MultilineStringLit, s.Kind())
}

func TestScannerKDocPending(t *testing.T) {
	var s Scanner
	s.Init(strings.NewReader("/** does a thing */\nfun f() {}"), func(uint, uint, string) {})
	s.Next()
	require.Equal(t, token.Fun, s.Token())
	assert.Contains(t, s.PendingKDoc(), "does a thing")
}

func TestScannerOperators(t *testing.T) {
	var s Scanner
	s.Init(strings.NewReader("a == b && c != d"), func(uint, uint, string) {})
	var ops []token.Operator
	for s.Next(); s.Token() != token.EOF; s.Next() {
		if s.Token() == token.Op {
			ops = append(ops, s.Op())
		}
	}
	assert.Equal(t, []token.Operator{token.Eql, token.AndAnd, token.Neq}, ops)
}
