// Package printer implements the Printer of spec.md §4.3: the final pass
// that walks a preprocessed fmttoken.Token stream and renders it to text,
// tracking the current column and indent stack and deciding, at each
// candidate break, whether the line so far has room for what follows.
//
// Grounded on the teacher's printer.go column/pending-whitespace bookkeeping,
// generalized from "emit
// directly from an AST" to "render a pre-resolved token stream."
package printer

import (
	"strings"

	"ktfmt/internal/width"
	"ktfmt/pkg/fmttoken"
	"ktfmt/pkg/kdoc"
)

// Printer renders one preprocessed token stream at a time. A single value
// can be reused across calls to Print; all mutable state is reset at the
// start of each call (spec.md §8's reset-between-calls property).
type Printer struct {
	MaxLineLength      int
	StandardIndent     int
	ContinuationIndent int

	sb            strings.Builder
	column        int
	indent        int
	blocks        []frame
	pendingSpaces int // spaces written but not yet flushed, so a trailing run can be dropped at a break
}

type frame struct {
	state        fmttoken.State
	indentBefore int
	broken       bool // this block doesn't fit flat; its SynchronizedBreaks all take newlines
	neverBreak   bool // PACKAGE_IMPORT / comment states: breaks inside never fire regardless of width
}

// New constructs a Printer with the given layout parameters (spec.md §6.1's
// Formatter construction arguments).
func New(maxLineLength, standardIndent, continuationIndent int) *Printer {
	return &Printer{
		MaxLineLength:      maxLineLength,
		StandardIndent:     standardIndent,
		ContinuationIndent: continuationIndent,
	}
}

// Print renders tokens (already run through pkg/preprocess) to final text.
func (p *Printer) Print(tokens []fmttoken.Token) string {
	p.sb.Reset()
	p.column = 0
	p.indent = 0
	p.blocks = p.blocks[:0]
	p.pendingSpaces = 0

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		if t.Kind == fmttoken.Begin && t.State == fmttoken.KDOC {
			consumed := p.renderKDoc(tokens[i:])
			i += consumed - 1
			continue
		}

		switch t.Kind {
		case fmttoken.Leaf:
			p.write(t.Text)

		case fmttoken.KDocContent:
			p.write(t.Text) // only reached if malformed input skips the Begin(KDOC) wrapper

		case fmttoken.Begin:
			p.pushBlock(t)

		case fmttoken.End:
			p.popBlock()

		case fmttoken.Whitespace:
			p.renderWhitespace(t)

		case fmttoken.ForcedBreak:
			p.newline(t.Count)

		case fmttoken.ClosingForcedBreak:
			p.newlineAt(1, p.closingIndent())

		case fmttoken.SynchronizedBreak, fmttoken.ClosingSynchronizedBreak:
			p.renderSynchronizedBreak(t)

		case fmttoken.Marker, fmttoken.BlockFromMarker, fmttoken.BlockFromLastForcedBreak:
			// Fully resolved by pkg/preprocess; any survivor here is inert.
		}
	}
	return p.sb.String()
}

// write appends s, but a run of plain spaces is held back rather than
// written immediately: if a break follows (the common case for a candidate
// break that isn't taken inline) those spaces are trailing and get dropped,
// per spec.md §4.3 "trailing spaces on output lines are stripped, except
// inside MULTILINE_STRING".
func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if isAllSpaces(s) {
		p.pendingSpaces += len(s)
		p.column += width.String(s)
		return
	}
	p.flushPendingSpaces()
	p.sb.WriteString(s)
	p.column += width.String(s)
}

func isAllSpaces(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			return false
		}
	}
	return true
}

func (p *Printer) flushPendingSpaces() {
	if p.pendingSpaces == 0 {
		return
	}
	p.sb.WriteString(strings.Repeat(" ", p.pendingSpaces))
	p.pendingSpaces = 0
}

func (p *Printer) newline(count int) {
	p.newlineAt(count, p.indent)
}

// newlineAt emits count newlines and indent spaces, positioning at column
// indent. Any pending trailing spaces are dropped rather than flushed unless
// the break occurs inside a MULTILINE_STRING, whose literal content must be
// preserved exactly as written.
func (p *Printer) newlineAt(count, indent int) {
	if p.inMultilineString() {
		p.flushPendingSpaces()
	} else {
		p.pendingSpaces = 0
	}
	for i := 0; i < count; i++ {
		p.sb.WriteByte('\n')
	}
	p.sb.WriteString(strings.Repeat(" ", indent))
	p.column = indent
}

func (p *Printer) inMultilineString() bool {
	for i := len(p.blocks) - 1; i >= 0; i-- {
		if p.blocks[i].state == fmttoken.MULTILINE_STRING {
			return true
		}
	}
	return false
}

// closingIndent returns the indent a ClosingForcedBreak/ClosingSynchronizedBreak
// de-indents to: the enclosing block's indent from before it was pushed, so
// a closing delimiter lands back at the statement's own indent rather than
// the one-step-deeper indent its contents used (spec.md §4.3).
func (p *Printer) closingIndent() int {
	if len(p.blocks) == 0 {
		return p.indent
	}
	return p.blocks[len(p.blocks)-1].indentBefore
}

func (p *Printer) currentState() fmttoken.State {
	if len(p.blocks) == 0 {
		return fmttoken.CODE
	}
	return p.blocks[len(p.blocks)-1].state
}

func (p *Printer) inNeverBreak() bool {
	for i := len(p.blocks) - 1; i >= 0; i-- {
		if p.blocks[i].neverBreak {
			return true
		}
	}
	return false
}

func (p *Printer) topBroken() bool {
	if len(p.blocks) == 0 {
		return false
	}
	return p.blocks[len(p.blocks)-1].broken
}

func (p *Printer) pushBlock(t fmttoken.Token) {
	neverBreak := t.State == fmttoken.PACKAGE_IMPORT || t.State == fmttoken.LINE_COMMENT || t.State == fmttoken.BLOCK_COMMENT
	broken := !neverBreak && p.column+t.Length > p.MaxLineLength

	f := frame{
		state:        t.State,
		indentBefore: p.indent,
		broken:       broken,
		neverBreak:   neverBreak,
	}
	p.blocks = append(p.blocks, f)
	if broken {
		if t.Continuation {
			p.indent += p.ContinuationIndent
		} else {
			p.indent += t.State.IndentIncrement(p.StandardIndent)
		}
	}
}

func (p *Printer) popBlock() {
	if len(p.blocks) == 0 {
		return
	}
	f := p.blocks[len(p.blocks)-1]
	p.blocks = p.blocks[:len(p.blocks)-1]
	p.indent = f.indentBefore
}

// renderWhitespace implements Oppen "inconsistent" (fill) breaking: this
// candidate break fires only if what immediately follows it won't fit on
// the current line; otherwise it's packed as a single literal space (or
// nothing, for a sticky zero-width candidate).
func (p *Printer) renderWhitespace(t fmttoken.Token) {
	if p.inNeverBreak() {
		p.write(t.Text)
		return
	}
	if p.column+t.Length > p.MaxLineLength {
		if p.currentState() == fmttoken.STRING_LITERAL {
			p.breakStringLiteral()
			return
		}
		p.newline(1)
		return
	}
	p.write(t.Text)
}

// breakStringLiteral implements the STRING_LITERAL state-specific rendering
// of spec.md §4.3: close the literal, concatenate, break, and reopen at the
// continuation indent the enclosing Begin(STRING_LITERAL) pushed.
func (p *Printer) breakStringLiteral() {
	p.write(`"`)
	p.write(" +")
	p.newline(1)
	p.write(`"`)
}

// renderSynchronizedBreak implements Oppen "consistent" breaking: every
// SynchronizedBreak in a block follows the same decision the block made as
// a whole at Begin time (spec.md §4.3's per-block "broken?" flag).
func (p *Printer) renderSynchronizedBreak(t fmttoken.Token) {
	if p.inNeverBreak() {
		if t.WSWidth > 0 {
			p.write(" ")
		}
		return
	}
	if p.topBroken() {
		if t.Kind == fmttoken.ClosingSynchronizedBreak {
			p.newlineAt(1, p.closingIndent())
		} else {
			p.newline(1)
		}
		return
	}
	if t.WSWidth > 0 {
		p.write(" ")
	}
}

// renderKDoc consumes a Begin(KDOC), KDocContent, End run (the shape
// pkg/scan's scanKDoc always produces) and renders the whole comment at
// once via pkg/kdoc, since reflowing needs the full raw text up front, not
// a token at a time. Returns the number of input tokens consumed.
func (p *Printer) renderKDoc(tokens []fmttoken.Token) int {
	if len(tokens) < 3 || tokens[1].Kind != fmttoken.KDocContent || tokens[2].Kind != fmttoken.End {
		// Malformed; just render whatever text tokens are here verbatim.
		p.write(tokens[0].Text)
		return 1
	}
	raw := tokens[1].Text
	wrapWidth := p.MaxLineLength - p.indent - len(" * ")
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	lines := kdoc.Format(raw, wrapWidth)

	p.write("/**")
	for _, l := range lines {
		p.newline(1)
		if l == "" {
			p.write(" *")
		} else {
			p.write(" * " + l)
		}
	}
	p.newline(1)
	p.write(" */")
	return 3
}
