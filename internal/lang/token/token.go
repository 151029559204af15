// Package token defines the lexical token kinds, operators, and literal kinds
// of the subject language: the curly-brace, statically typed language that
// ktfmt formats. The tree built from these tokens (internal/lang/ast) is the
// concrete realization of the TreeProvider collaborator named in spec.md §1.
package token

type Token uint8

type token = Token

const (
	_   token = iota
	EOF       // end of input

	// names and literals
	Name    // identifier
	Literal // number, string, rune literal

	// operators and operations
	Op       // binary/unary operator, see Operator
	AssignOp // op=
	IncOp    // ++ or --
	Assign   // =
	Define   // :=
	Star     // *

	// delimiters
	Lparen    // (
	Lbrack    // [
	Lbrace    // {
	Rparen    // )
	Rbrack    // ]
	Rbrace    // }
	Comma     // ,
	Semi      // ;
	Colon     // :
	Dot       // .
	QuestDot  // ?.
	DotDotDot // ...
	Arrow     // ->

	// keywords
	keyword_beg
	Break    // break
	Class    // class
	Const    // const
	Continue // continue
	Else     // else
	For      // for
	Fun      // fun
	If       // if
	Import   // import
	Oper     // oper
	Package  // package
	Return   // return
	Type     // type
	Val      // val
	Var      // var
	While    // while
	keyword_end

	tokenCount
)

func (t token) IsKeyword() bool { return t > keyword_beg && t < keyword_end }

// Make sure we have at most 64 tokens so we can use them in a set.
const _ uint64 = 1 << (tokenCount - 1)

// Contains reports whether tok is in tokset.
func Contains(tokset uint64, tok token) bool {
	return tokset&(1<<tok) != 0
}

var tokenString = map[Token]string{
	EOF: "EOF",

	Name:    "name",
	Literal: "literal",

	Op:       "op",
	AssignOp: "op=",
	IncOp:    "opop",
	Assign:   "=",
	Define:   ":=",
	Star:     "*",

	Lparen:    "(",
	Lbrack:    "[",
	Lbrace:    "{",
	Rparen:    ")",
	Rbrack:    "]",
	Rbrace:    "}",
	Comma:     ",",
	Semi:      ";",
	Colon:     ":",
	Dot:       ".",
	QuestDot:  "?.",
	DotDotDot: "...",
	Arrow:     "->",

	Break:    "break",
	Class:    "class",
	Const:    "const",
	Continue: "continue",
	Else:     "else",
	For:      "for",
	Fun:      "fun",
	If:       "if",
	Import:   "import",
	Oper:     "oper",
	Package:  "package",
	Return:   "return",
	Type:     "type",
	Val:      "val",
	Var:      "var",
	While:    "while",
}

func (t Token) String() string { return tokenString[t] }

// KeywordOrName reports the keyword Token matching lit, or Name if lit is not
// a keyword.
func KeywordOrName(lit string) Token {
	for tok, k := range tokenString {
		if tok.IsKeyword() && k == lit {
			return tok
		}
	}
	return Name
}

type LitKind uint8

const (
	IntLit LitKind = iota
	FloatLit
	ImagLit
	RuneLit
	StringLit
	MultilineStringLit
)
