// Package preprocess implements the single-pass rewrite machine of
// spec.md §4.2 (the TokenPreprocessor): it consumes the raw token stream a
// pkg/scan Scanner produced and resolves everything the pkg/printer Printer
// must not have to reason about itself — deferred block ends, whitespace
// deduplication and lookahead widths, Begin/End length computation,
// synchronized-break promotion, and marker resolution.
//
// Grounded on the pending-whitespace flush idiom in the teacher's
// go/printer-style printer (buffer now, decide its final shape once you see
// what follows), generalized here into a full stack machine because our
// Begin/End nesting also has to resolve lengths bottom-up.
package preprocess

import (
	"ktfmt/internal/width"
	"ktfmt/pkg/fmttoken"
)

// block is one level of Begin/End nesting being accumulated.
type block struct {
	state   fmttoken.State
	tokens  []fmttoken.Token
	markers []int // indices into tokens, pushed by Marker, popped by BlockFrom*
	lastFB  int   // index (in tokens) of the most recent top-level forced break, or -1
}

func newBlock(state fmttoken.State) *block {
	return &block{state: state, lastFB: -1}
}

// append adds t to the block, applying rule 5 as it does: a SynchronizedBreak
// or ClosingSynchronizedBreak whose immediately preceding token in this block
// is already a forced-break variant carries no information (the forced break
// already guarantees the newline) and is dropped rather than appended.
func (b *block) append(t fmttoken.Token) {
	if t.IsSynchronized() && len(b.tokens) > 0 && b.tokens[len(b.tokens)-1].IsForced() {
		return
	}
	if t.IsForced() {
		b.lastFB = len(b.tokens)
	}
	b.tokens = append(b.tokens, t)
}

// insert splices t into the block at position at, used to place a just-
// resolved Whitespace/ForcedBreak back where it occurred in the source
// rather than after the lookahead leaves rule 9 already appended past it.
func (b *block) insert(at int, t fmttoken.Token) {
	if at > len(b.tokens) {
		at = len(b.tokens)
	}
	b.tokens = append(b.tokens, fmttoken.Token{})
	copy(b.tokens[at+1:], b.tokens[at:])
	b.tokens[at] = t
	if t.IsForced() {
		b.lastFB = at
	}
}

// textLength computes the "flat" width of a block's contents: the width it
// would occupy if nothing inside ever broke. Whitespace tokens contribute
// their resolved single-space-or-nothing content width (not their lookahead
// length, which measures something else entirely); nested Begins contribute
// their own already-resolved Length.
func textLength(tokens []fmttoken.Token) int {
	total := 0
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case fmttoken.Leaf, fmttoken.KDocContent:
			total += displayWidth(t.Text)
		case fmttoken.Whitespace:
			if t.Text != "" {
				total++
			}
		case fmttoken.Begin:
			// A nested block's own Length already accounts for everything
			// between it and its matching End; skip that span here instead
			// of re-summing its contents as if they belonged to this block.
			total += t.Length
			i += skipBlock(tokens[i+1:])
		}
	}
	return total
}

// skipBlock returns how many tokens of rest (everything after a Begin) belong
// to that Begin's matching End, accounting for further nesting inside it.
func skipBlock(rest []fmttoken.Token) int {
	depth := 1
	for i, t := range rest {
		switch t.Kind {
		case fmttoken.Begin:
			depth++
		case fmttoken.End:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(rest)
}

func displayWidth(s string) int { return width.String(s) }

// Preprocessor runs the rewrite pass of spec.md §4.2 over one token stream.
// Not safe for reuse across calls beyond Run, mirroring spec.md §8's
// "reset-between-calls" property — construct a fresh Preprocessor per Run.
type Preprocessor struct {
	stack []*block

	pendingEndCount int

	wsActive   bool
	wsContent  string
	wsWidth    int // accumulated width of the non-breaking run following the pending whitespace
	wsInsertAt int // index in the current top block's tokens where the pending whitespace belongs
}

// Run preprocesses in and returns the rewritten, flat token stream: balanced
// Begin/End with Length filled in, no residual Marker/BlockFromMarker/
// BlockFromLastForcedBreak tokens, and every Whitespace resolved to its final
// length.
func Run(in []fmttoken.Token) []fmttoken.Token {
	p := &Preprocessor{stack: []*block{newBlock(fmttoken.CODE)}}
	for _, t := range in {
		p.process(t)
	}
	p.flushWhitespace(nil)
	p.flushPendingEnds()
	root := p.stack[0]
	return root.tokens
}

func (p *Preprocessor) top() *block { return p.stack[len(p.stack)-1] }

func (p *Preprocessor) process(t fmttoken.Token) {
	switch t.Kind {
	case fmttoken.Leaf, fmttoken.KDocContent:
		// Rule 1: leaves arriving while an End is pending are absorbed into
		// the not-yet-popped block, sinking the pop past trailing suffix.
		if p.wsActive {
			p.wsWidth += leafWidth(t)
		}
		p.top().append(t)
		return

	case fmttoken.End:
		p.pendingEndCount++
		return

	case fmttoken.Whitespace:
		// Rule 2: a Whitespace arriving while another is still pending, with
		// nothing appended in between, collapses into it.
		if p.wsActive && p.pendingEndCount == 0 && len(p.top().tokens) == p.wsInsertAt {
			p.beginWhitespace(t.Text)
			return
		}
	}

	// Every other kind is a real boundary: flush whatever's pending first.
	p.flushWhitespace(&t)
	p.flushPendingEnds()

	switch t.Kind {
	case fmttoken.Whitespace:
		p.beginWhitespace(t.Text)

	case fmttoken.Begin:
		p.stack = append(p.stack, newBlock(t.State))

	case fmttoken.ForcedBreak, fmttoken.ClosingForcedBreak,
		fmttoken.SynchronizedBreak, fmttoken.ClosingSynchronizedBreak:
		p.top().append(t)

	case fmttoken.Marker:
		b := p.top()
		b.markers = append(b.markers, len(b.tokens))

	case fmttoken.BlockFromMarker:
		p.wrapFromMarker()

	case fmttoken.BlockFromLastForcedBreak:
		p.wrapFromLastForcedBreak()
	}
}

func leafWidth(t fmttoken.Token) int {
	if t.Kind == fmttoken.Leaf || t.Kind == fmttoken.KDocContent {
		return displayWidth(t.Text)
	}
	return 0
}

// beginWhitespace implements rule 2 (dedup) and starts a pending element
// whose length (rule 9) accrues as subsequent leaves are seen.
func (p *Preprocessor) beginWhitespace(content string) {
	if p.wsActive {
		// Two consecutive Whitespace tokens collapse to one; the later one
		// wins only if it carries content, otherwise the earlier (possibly
		// non-empty) one is kept.
		if content != "" {
			p.wsContent = content
		}
		return
	}
	p.wsActive = true
	p.wsContent = content
	p.wsWidth = 0
	p.wsInsertAt = len(p.top().tokens)
}

// flushWhitespace finalizes any pending Whitespace element. next is the
// token that triggered the flush (nil at end of input), used by rule 8
// (whitespace-before-comment).
func (p *Preprocessor) flushWhitespace(next *fmttoken.Token) {
	if !p.wsActive {
		return
	}
	p.wsActive = false

	// Rule 8: a pending whitespace containing newlines, immediately
	// followed by a Begin opening a comment-bearing state, becomes a
	// ForcedBreak instead of an ordinary Whitespace so the printer never
	// tries to pack the preceding code and the comment onto one line.
	newlines := countNewlines(p.wsContent)
	if newlines > 0 && next != nil && next.Kind == fmttoken.Begin && next.State.IsComment() {
		count := newlines
		if count > 2 {
			count = 2
		}
		p.top().insert(p.wsInsertAt, fmttoken.NewForcedBreak(count))
		return
	}

	length := p.wsWidth
	if p.wsContent != "" {
		length++
	}
	p.top().insert(p.wsInsertAt, fmttoken.Token{Kind: fmttoken.Whitespace, Text: p.wsContent, Length: length})
}

func countNewlines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

// flushPendingEnds performs the deferred pops of rule 3: each pop computes
// the popped block's flat length, then rule 4 promotes every depth-0
// SynchronizedBreak still standing to a ForcedBreak if the block already
// contains an unconditional newline (rule 5's drop already ran inline as
// each break was appended, in block.append). Whether a break point starts
// life as a plain Whitespace (packed independently, Oppen "inconsistent"
// style) or a SynchronizedBreak (all-or-nothing with its siblings, Oppen
// "consistent" style) is decided up front by the scanner that builds the
// block; rule 4 is the one place that can still turn a SynchronizedBreak
// into something stronger after the fact.
func (p *Preprocessor) flushPendingEnds() {
	for ; p.pendingEndCount > 0; p.pendingEndCount-- {
		if len(p.stack) == 1 {
			// Unbalanced input (more End than Begin); nothing to pop.
			continue
		}
		popped := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		length := textLength(popped.tokens)
		tokens := promoteSyncBreaks(popped.tokens)

		parent := p.top()
		parent.append(fmttoken.NewBegin(popped.state))
		parent.tokens = append(parent.tokens, tokens...)
		parent.append(fmttoken.NewEnd())
		// The just-emitted Begin's Length is set by overwriting the token we
		// just appended, since NewBegin doesn't take a length argument.
		beginIdx := len(parent.tokens) - len(tokens) - 2
		parent.tokens[beginIdx].Length = length
	}
}

// promoteSyncBreaks implements rule 4: if tokens (one block's own contents,
// not descending into nested Begin/End) already contains a ForcedBreak,
// ClosingForcedBreak, or a KDocContent spanning multiple lines, the block is
// known to span several output lines regardless of what the printer later
// decides — so every depth-0 SynchronizedBreak in it must fire too, not just
// "if a sibling fires". Nested blocks are left untouched; their own pop will
// run this same check against their own contents.
func promoteSyncBreaks(tokens []fmttoken.Token) []fmttoken.Token {
	trigger := false
	for i := 0; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case fmttoken.ForcedBreak, fmttoken.ClosingForcedBreak:
			trigger = true
		case fmttoken.KDocContent:
			if countNewlines(tokens[i].Text) > 0 {
				trigger = true
			}
		case fmttoken.Begin:
			i += skipBlock(tokens[i+1:])
		}
	}
	if !trigger {
		return tokens
	}
	out := make([]fmttoken.Token, len(tokens))
	copy(out, tokens)
	for i := 0; i < len(out); i++ {
		switch out[i].Kind {
		case fmttoken.SynchronizedBreak:
			out[i] = fmttoken.NewForcedBreak(1)
		case fmttoken.ClosingSynchronizedBreak:
			out[i] = fmttoken.NewClosingForcedBreak()
		case fmttoken.Begin:
			i += skipBlock(out[i+1:])
		}
	}
	return out
}

// wrapFromMarker implements rule 7's BlockFromMarkerToken case: the tokens
// emitted since the nearest Marker in the current block are cut out and
// re-wrapped in a synthetic CODE block, so the printer can treat that
// suffix as a single synchronized-break unit (spec.md's example: wrapping a
// trailing `else` clause so it breaks consistently with the `if`).
func (p *Preprocessor) wrapFromMarker() {
	b := p.top()
	if len(b.markers) == 0 {
		return // no marker recorded in this block; nothing to do
	}
	idx := b.markers[len(b.markers)-1]
	b.markers = b.markers[:len(b.markers)-1]
	p.wrapSuffix(b, idx)
}

// wrapFromLastForcedBreak implements rule 7's BlockFromLastForcedBreakToken
// case: wraps the suffix since the most recent top-level forced break in
// this block (or the whole block, if none occurred yet — see DESIGN.md's
// resolution of the open question on nested-marker interaction).
func (p *Preprocessor) wrapFromLastForcedBreak() {
	b := p.top()
	idx := b.lastFB
	if idx < 0 {
		idx = 0
	} else {
		idx++ // wrap strictly after the forced break itself
	}
	p.wrapSuffix(b, idx)
}

func (p *Preprocessor) wrapSuffix(b *block, idx int) {
	if idx > len(b.tokens) {
		idx = len(b.tokens)
	}
	suffix := append([]fmttoken.Token(nil), b.tokens[idx:]...)
	b.tokens = b.tokens[:idx]

	length := textLength(suffix)
	begin := fmttoken.NewBegin(fmttoken.CODE)
	begin.Length = length
	b.tokens = append(b.tokens, begin)
	b.tokens = append(b.tokens, suffix...)
	b.tokens = append(b.tokens, fmttoken.NewEnd())
}
