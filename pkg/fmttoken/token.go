// Package fmttoken defines the formatting token IR described in spec.md §3.2:
// the richer intermediate representation scanners emit, the preprocessor
// rewrites in place, and the printer consumes and discards. Tokens are
// modeled as one tagged sum type (Design Notes §9: "tagged variants vs class
// hierarchies ... inheritance is unnecessary"), mirroring the Go standard
// compiler's own preference for a single struct with a discriminant over a
// class hierarchy.
package fmttoken

// Kind discriminates the token variants of spec.md §3.2.
type Kind uint8

const (
	Leaf Kind = iota
	Whitespace
	Begin
	End
	ForcedBreak
	ClosingForcedBreak
	SynchronizedBreak
	ClosingSynchronizedBreak
	Marker
	BlockFromMarker
	BlockFromLastForcedBreak
	KDocContent
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "Leaf"
	case Whitespace:
		return "Whitespace"
	case Begin:
		return "Begin"
	case End:
		return "End"
	case ForcedBreak:
		return "ForcedBreak"
	case ClosingForcedBreak:
		return "ClosingForcedBreak"
	case SynchronizedBreak:
		return "SynchronizedBreak"
	case ClosingSynchronizedBreak:
		return "ClosingSynchronizedBreak"
	case Marker:
		return "Marker"
	case BlockFromMarker:
		return "BlockFromMarker"
	case BlockFromLastForcedBreak:
		return "BlockFromLastForcedBreak"
	case KDocContent:
		return "KDocContent"
	}
	return "Unknown"
}

// State is the closed set of block formatting states carried by Begin,
// spec.md §3.2.
type State uint8

const (
	CODE State = iota
	STRING_LITERAL
	MULTILINE_STRING
	LINE_COMMENT
	BLOCK_COMMENT
	KDOC
	PACKAGE_IMPORT
	LONG_COMMENT_CONTINUATION
)

// IndentIncrement is the per-state indent step applied when a break is taken
// inside a block opened with this state, spec.md §4.3's "mapping State →
// indentIncrement".
func (s State) IndentIncrement(standardIndent int) int {
	switch s {
	case KDOC, LONG_COMMENT_CONTINUATION:
		return 1 // continuation lines align under " * "/"// ", not a full indent step
	default:
		return standardIndent
	}
}

// IsComment reports whether s is one of the comment-bearing states; used by
// preprocessor rule 8 (whitespace-before-comment).
func (s State) IsComment() bool {
	switch s {
	case LINE_COMMENT, BLOCK_COMMENT, KDOC, LONG_COMMENT_CONTINUATION:
		return true
	}
	return false
}

// Token is the single tagged representation of every §3.2 variant. Only the
// fields relevant to Kind are meaningful; zero values are unused-field safe.
type Token struct {
	Kind Kind

	Text    string // Leaf text; Whitespace content; KDocContent text
	Length  int    // Whitespace.length; Begin.length (filled by the preprocessor)
	State   State  // Begin.state
	Count   int    // ForcedBreak.count: 1 or 2
	WSWidth int    // ClosingSynchronizedBreak/SynchronizedBreak.whitespaceLength

	// Continuation marks a Begin whose indent increment, when broken, is the
	// printer's continuation indent rather than State's own standard
	// increment (spec.md §4.3, selector-chain wrapping and string-literal
	// reopening).
	Continuation bool
}

func NewLeaf(text string) Token { return Token{Kind: Leaf, Text: text} }

// NewWhitespace constructs a candidate break with the given literal content
// (used verbatim if unbroken). Length is resolved later by the preprocessor.
func NewWhitespace(content string) Token { return Token{Kind: Whitespace, Text: content} }

func NewBegin(state State) Token { return Token{Kind: Begin, State: state} }

// NewContinuationBegin constructs a Begin block that, once its flat width
// forces a break, indents by the printer's continuation indent (typically
// 2x standard) instead of State's own IndentIncrement.
func NewContinuationBegin(state State) Token {
	return Token{Kind: Begin, State: state, Continuation: true}
}

func NewEnd() Token { return Token{Kind: End} }

func NewForcedBreak(count int) Token { return Token{Kind: ForcedBreak, Count: count} }

func NewClosingForcedBreak() Token { return Token{Kind: ClosingForcedBreak} }

func NewSynchronizedBreak(wsWidth int) Token {
	return Token{Kind: SynchronizedBreak, WSWidth: wsWidth}
}

func NewClosingSynchronizedBreak(wsWidth int) Token {
	return Token{Kind: ClosingSynchronizedBreak, WSWidth: wsWidth}
}

func NewMarker() Token { return Token{Kind: Marker} }

func NewBlockFromMarker() Token { return Token{Kind: BlockFromMarker} }

func NewBlockFromLastForcedBreak() Token { return Token{Kind: BlockFromLastForcedBreak} }

func NewKDocContent(text string) Token { return Token{Kind: KDocContent, Text: text} }

// IsForced reports whether k is one of the two unconditional-newline variants.
func (t Token) IsForced() bool {
	return t.Kind == ForcedBreak || t.Kind == ClosingForcedBreak
}

// IsSynchronized reports whether k is one of the two consistent-break
// variants (spec.md glossary: "Oppen consistent").
func (t Token) IsSynchronized() bool {
	return t.Kind == SynchronizedBreak || t.Kind == ClosingSynchronizedBreak
}

// IsBreak reports whether t is any candidate or unconditional break point.
func (t Token) IsBreak() bool {
	return t.Kind == Whitespace || t.IsForced() || t.IsSynchronized()
}
