package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ktfmt/pkg/fmttoken"
)

func TestPrintPacksWhitespaceThatFits(t *testing.T) {
	p := New(20, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewLeaf("foo"),
		{Kind: fmttoken.Whitespace, Text: " ", Length: 4},
		fmttoken.NewLeaf("bar"),
	})
	assert.Equal(t, "foo bar", out)
}

func TestPrintBreaksWhitespaceThatDoesNotFit(t *testing.T) {
	p := New(5, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewLeaf("abcde"),
		{Kind: fmttoken.Whitespace, Text: " ", Length: 3},
		fmttoken.NewLeaf("xy"),
	})
	assert.Equal(t, "abcde\nxy", out)
}

func TestPrintSynchronizedBreakTakesNewlineWhenBlockDoesNotFit(t *testing.T) {
	p := New(10, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewLeaf("fn("),
		{Kind: fmttoken.Begin, State: fmttoken.CODE, Length: 20},
		fmttoken.NewLeaf("a"),
		fmttoken.NewSynchronizedBreak(1),
		fmttoken.NewLeaf("b"),
		fmttoken.NewEnd(),
	})
	assert.Equal(t, "fn(a\n  b", out)
}

func TestPrintSynchronizedBreakStaysFlatWhenBlockFits(t *testing.T) {
	p := New(80, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewLeaf("fn("),
		{Kind: fmttoken.Begin, State: fmttoken.CODE, Length: 4},
		fmttoken.NewLeaf("a"),
		fmttoken.NewSynchronizedBreak(1),
		fmttoken.NewLeaf("b"),
		fmttoken.NewEnd(),
	})
	assert.Equal(t, "fn(a b", out)
}

func TestPrintNeverBreaksInsidePackageImport(t *testing.T) {
	p := New(80, 2, 4)
	out := p.Print([]fmttoken.Token{
		{Kind: fmttoken.Begin, State: fmttoken.PACKAGE_IMPORT, Length: 10000},
		fmttoken.NewLeaf("import a"),
		{Kind: fmttoken.Whitespace, Text: " ", Length: 10000},
		fmttoken.NewLeaf("import b"),
		fmttoken.NewEnd(),
	})
	assert.Equal(t, "import a import b", out)
}

func TestPrintRendersKDocBlock(t *testing.T) {
	p := New(40, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewBegin(fmttoken.KDOC),
		fmttoken.NewKDocContent("/** Hi there. */"),
		fmttoken.NewEnd(),
	})
	assert.Equal(t, "/**\n * Hi there.\n */", out)
}

func TestPrintResetsStateBetweenCalls(t *testing.T) {
	p := New(80, 2, 4)
	_ = p.Print([]fmttoken.Token{fmttoken.NewLeaf("first"), fmttoken.NewForcedBreak(1)})
	out := p.Print([]fmttoken.Token{fmttoken.NewLeaf("second")})
	assert.Equal(t, "second", out)
}

func TestPrintClosingSynchronizedBreakDeIndentsBeforeClosingDelimiter(t *testing.T) {
	p := New(10, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewLeaf("fn("),
		{Kind: fmttoken.Begin, State: fmttoken.CODE, Length: 20},
		fmttoken.NewLeaf("a"),
		fmttoken.NewSynchronizedBreak(1),
		fmttoken.NewLeaf("b"),
		fmttoken.NewClosingSynchronizedBreak(0),
		fmttoken.NewEnd(),
		fmttoken.NewLeaf(")"),
	})
	// "b" sits at the block's one-step-deeper indent; the closing paren lands
	// back at column 0, the indent the block was opened at.
	assert.Equal(t, "fn(a\n  b\n)", out)
}

func TestPrintClosingForcedBreakDeIndentsBeforeClosingDelimiter(t *testing.T) {
	p := New(10, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewLeaf("if ("),
		{Kind: fmttoken.Begin, State: fmttoken.CODE, Length: 20},
		fmttoken.NewLeaf("cond"),
		fmttoken.NewClosingForcedBreak(),
		fmttoken.NewEnd(),
		fmttoken.NewLeaf(")"),
	})
	assert.Equal(t, "if (cond\n)", out)
}

func TestPrintBreaksLongStringLiteralAtWordBoundary(t *testing.T) {
	p := New(10, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewContinuationBegin(fmttoken.STRING_LITERAL),
		fmttoken.NewLeaf(`"`),
		fmttoken.NewLeaf("abcde"),
		{Kind: fmttoken.Whitespace, Text: " ", Length: 10},
		fmttoken.NewLeaf("fghij"),
		fmttoken.NewLeaf(`"`),
		fmttoken.NewEnd(),
	})
	assert.Equal(t, "\"abcde\" +\n\"fghij\"", out)
}

func TestPrintStripsTrailingSpaceBeforeForcedBreak(t *testing.T) {
	p := New(80, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewLeaf("foo"),
		{Kind: fmttoken.Whitespace, Text: "  ", Length: 2},
		fmttoken.NewForcedBreak(1),
		fmttoken.NewLeaf("bar"),
	})
	assert.Equal(t, "foo\nbar", out)
}

func TestPrintKeepsTrailingSpaceInsideMultilineString(t *testing.T) {
	p := New(80, 2, 4)
	out := p.Print([]fmttoken.Token{
		fmttoken.NewBegin(fmttoken.MULTILINE_STRING),
		fmttoken.NewLeaf("abc"),
		{Kind: fmttoken.Whitespace, Text: "  ", Length: 2},
		fmttoken.NewForcedBreak(1),
		fmttoken.NewLeaf("def"),
		fmttoken.NewEnd(),
	})
	assert.Equal(t, "abc  \ndef", out)
}
