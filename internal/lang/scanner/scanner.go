// Package scanner implements a lexer for the subject language: the
// curly-brace, statically typed language ktfmt formats. It is one half of
// the TreeProvider collaborator named in spec.md §1 (external to the
// formatter's core, but shipped so the pipeline runs end to end).
package scanner

import (
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"ktfmt/internal/lang/token"
)

type Scanner struct {
	source
	nlsemi bool // if set, '\n' or EOF translates to ';'

	line, col uint
	blank     bool // line is blank up to col
	token     token.Token
	lit       string
	bad       bool
	kind      token.LitKind
	op        token.Operator
	isKDoc      bool // valid when a block comment was just skipped
	pendingKDoc string
}

func (s *Scanner) Token() token.Token  { return s.token }
func (s *Scanner) Literal() string    { return s.lit }
func (s *Scanner) Bad() bool          { return s.bad }
func (s *Scanner) Kind() token.LitKind { return s.kind }
func (s *Scanner) Op() token.Operator { return s.op }
func (s *Scanner) Line() uint         { return s.line }
func (s *Scanner) Col() uint          { return s.col }
func (s *Scanner) IsKDoc() bool       { return s.isKDoc }
func (s *Scanner) PendingKDoc() string { return s.pendingKDoc }

func (s *Scanner) Init(src io.Reader, errh func(line, col uint, msg string)) {
	s.source.init(src, errh)
	s.nlsemi = false
}

func (s *Scanner) errorf(format string, args ...interface{}) {
	s.error(fmt.Sprintf(format, args...))
}

func (s *Scanner) setLit(kind token.LitKind, ok bool) {
	s.nlsemi = true
	s.token = token.Literal
	s.lit = string(s.Segment())
	s.bad = !ok
	s.kind = kind
}

// Next advances the scanner to the next token, skipping comments. A `/**`
// doc comment immediately preceding the returned token is retained verbatim
// and retrievable via PendingKDoc until the following call to Next.
func (s *Scanner) Next() {
	nlsemi := s.nlsemi
	s.nlsemi = false
	s.isKDoc = false
	s.pendingKDoc = ""

redo:
	s.stop()
	startLine, startCol := s.pos()
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' && !nlsemi || s.ch == '\r' {
		s.nextch()
	}

	s.line, s.col = s.pos()
	s.blank = s.line > startLine || startCol == 0
	s.start()

	if isLetter(s.ch) || s.ch >= utf8.RuneSelf && s.atIdentChar(true) {
		s.nextch()
		s.ident()
		return
	}

	switch s.ch {
	case -1:
		if nlsemi {
			s.lit = "EOF"
			s.token = token.Semi
			break
		}
		s.token = token.EOF

	case '\n':
		s.nextch()
		s.lit = "newline"
		s.token = token.Semi

	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.number()

	case '"':
		s.nextch()
		if s.ch == '"' {
			s.nextch()
			if s.ch == '"' {
				s.nextch()
				s.tripleQuotedString()
				break
			}
			// empty "" string literal
			s.setLit(token.StringLit, true)
			break
		}
		s.stdString()

	case '`':
		s.rawString()

	case '\'':
		s.rune()

	case '(':
		s.nextch()
		s.token = token.Lparen
	case '[':
		s.nextch()
		s.token = token.Lbrack
	case '{':
		s.nextch()
		s.token = token.Lbrace
	case ',':
		s.nextch()
		s.token = token.Comma
	case ';':
		s.nextch()
		s.lit = "semicolon"
		s.token = token.Semi
	case ')':
		s.nextch()
		s.nlsemi = true
		s.token = token.Rparen
	case ']':
		s.nextch()
		s.nlsemi = true
		s.token = token.Rbrack
	case '}':
		s.nextch()
		s.nlsemi = true
		s.token = token.Rbrace

	case ':':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.token = token.Define
			break
		}
		s.token = token.Colon

	case '?':
		s.nextch()
		if s.ch == '.' {
			s.nextch()
			s.token = token.QuestDot
			break
		}
		if s.ch == ':' {
			s.nextch()
			s.op = token.Elvis
			s.token = token.Op
			break
		}
		s.errorf("unexpected character %#U", '?')

	case '.':
		s.nextch()
		if isDecimal(s.ch) {
			s.number()
			break
		}
		if s.ch == '.' {
			s.nextch()
			if s.ch == '.' {
				s.nextch()
				s.token = token.DotDotDot
				break
			}
			s.token = token.Dot
			break
		}
		s.token = token.Dot

	case '+':
		s.nextch()
		if s.ch == '+' {
			s.nextch()
			s.nlsemi = true
			s.token = token.IncOp
			break
		}
		s.op = token.Add
		s.assignOp()

	case '-':
		s.nextch()
		if s.ch == '-' {
			s.nextch()
			s.nlsemi = true
			s.token = token.IncOp
			break
		}
		if s.ch == '>' {
			s.nextch()
			s.token = token.Arrow
			break
		}
		s.op = token.Sub
		s.assignOp()

	case '*':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.op = token.Mul
			s.token = token.AssignOp
			break
		}
		s.op = token.Mul
		s.token = token.Op

	case '/':
		s.nextch()
		if s.ch == '/' {
			s.nextch()
			s.lineComment()
			goto redo
		}
		if s.ch == '*' {
			s.nextch()
			wasNL := s.blockComment()
			if s.isKDoc {
				s.pendingKDoc = string(s.Segment())
			}
			if wasNL && nlsemi {
				s.lit = "newline"
				s.token = token.Semi
				break
			}
			goto redo
		}
		s.op = token.Div
		s.assignOp()

	case '%':
		s.nextch()
		s.op = token.Rem
		s.assignOp()

	case '<':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.op = token.Leq
		} else {
			s.op = token.Lss
		}
		s.token = token.Op

	case '>':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.op = token.Geq
		} else {
			s.op = token.Gtr
		}
		s.token = token.Op

	case '=':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.op = token.Eql
			s.token = token.Op
			break
		}
		s.token = token.Assign

	case '!':
		s.nextch()
		if s.ch == '=' {
			s.nextch()
			s.op = token.Neq
		} else {
			s.op = token.Not
		}
		s.token = token.Op

	case '&':
		s.nextch()
		if s.ch != '&' {
			s.errorf("unexpected character %#U", '&')
			goto redo
		}
		s.nextch()
		s.op = token.AndAnd
		s.token = token.Op

	case '|':
		s.nextch()
		if s.ch != '|' {
			s.errorf("unexpected character %#U", '|')
			goto redo
		}
		s.nextch()
		s.op = token.OrOr
		s.token = token.Op

	default:
		s.errorf("invalid character %#U", s.ch)
		s.nextch()
		goto redo
	}
}

func (s *Scanner) assignOp() {
	if s.ch == '=' {
		s.nextch()
		s.token = token.AssignOp
		return
	}
	s.token = token.Op
}

func (s *Scanner) ident() {
	for isLetter(s.ch) || isDecimal(s.ch) {
		s.nextch()
	}
	if s.ch >= utf8.RuneSelf {
		for s.atIdentChar(false) {
			s.nextch()
		}
	}
	lit := string(s.Segment())
	s.token = token.KeywordOrName(lit)
	s.nlsemi = s.token == token.Name ||
		s.token == token.Break || s.token == token.Continue || s.token == token.Return
	s.lit = lit
}

func (s *Scanner) atIdentChar(first bool) bool {
	switch {
	case unicode.IsLetter(s.ch) || s.ch == '_':
	case unicode.IsDigit(s.ch):
		if first {
			s.errorf("identifier cannot begin with digit %#U", s.ch)
		}
	case s.ch >= utf8.RuneSelf:
		s.errorf("invalid character %#U in identifier", s.ch)
	default:
		return false
	}
	return true
}

func lower(ch rune) rune     { return ('a' - 'A') | ch }
func isLetter(ch rune) bool  { return 'a' <= lower(ch) && lower(ch) <= 'z' || ch == '_' }
func isDecimal(ch rune) bool { return '0' <= ch && ch <= '9' }

func (s *Scanner) number() {
	kind := token.IntLit
	for isDecimal(s.ch) {
		s.nextch()
	}
	if s.ch == '.' {
		kind = token.FloatLit
		s.nextch()
		for isDecimal(s.ch) {
			s.nextch()
		}
	}
	if s.ch == 'e' || s.ch == 'E' {
		kind = token.FloatLit
		s.nextch()
		if s.ch == '+' || s.ch == '-' {
			s.nextch()
		}
		for isDecimal(s.ch) {
			s.nextch()
		}
	}
	s.nlsemi = true
	s.setLit(kind, true)
}

func (s *Scanner) rune() {
	s.nextch()
	ok := true
	if s.ch == '\'' {
		s.errorf("empty rune literal or unescaped '")
		ok = false
	}
	n := 0
	for ; ; n++ {
		if s.ch == '\'' {
			break
		}
		if s.ch == '\\' {
			s.escape('\'')
			continue
		}
		if s.ch < 0 {
			s.errorf("rune literal not terminated")
			ok = false
			break
		}
		s.nextch()
	}
	s.nextch()
	s.setLit(token.RuneLit, ok && n == 1)
}

// stdString scans a double-quoted string literal, including `${...}`
// interpolation spans. The raw segment text (quotes included) is kept as the
// token literal; pkg/scan splits it into literal/interpolation runs when
// emitting tokens, per spec.md §4.3's STRING_LITERAL break rule.
func (s *Scanner) stdString() {
	ok := true
	for s.ch != '"' {
		if s.ch == '\\' {
			s.escape('"')
			continue
		}
		if s.ch == '$' {
			s.nextch()
			if s.ch == '{' {
				s.nextch()
				depth := 1
				for depth > 0 {
					switch s.ch {
					case '{':
						depth++
					case '}':
						depth--
					case -1, '\n':
						s.errorf("string interpolation not terminated")
						ok = false
						depth = 0
						continue
					}
					s.nextch()
				}
			}
			continue
		}
		if s.ch == '\n' || s.ch < 0 {
			s.errorf("string literal not terminated")
			ok = false
			break
		}
		s.nextch()
	}
	s.nextch()
	s.setLit(token.StringLit, ok)
}

// rawString scans a `backtick` raw string: no escapes, no interpolation.
func (s *Scanner) rawString() {
	ok := true
	s.nextch()
	for s.ch != '`' {
		if s.ch < 0 {
			s.errorf("raw string literal not terminated")
			ok = false
			break
		}
		s.nextch()
	}
	s.nextch()
	s.setLit(token.StringLit, ok)
}

// tripleQuotedString scans a """multiline""" string once the first three
// quotes have been consumed by the caller.
func (s *Scanner) tripleQuotedString() {
	ok := true
	for {
		if s.ch == '"' {
			s.nextch()
			if s.ch == '"' {
				s.nextch()
				if s.ch == '"' {
					s.nextch()
					break
				}
			}
			continue
		}
		if s.ch < 0 {
			s.errorf("multiline string literal not terminated")
			ok = false
			break
		}
		s.nextch()
	}
	s.setLit(token.MultilineStringLit, ok)
}

func (s *Scanner) escape(quote rune) bool {
	s.nextch()
	switch s.ch {
	case quote, 'a', 'b', 'f', 'n', 'r', 't', 'v', '\\':
		s.nextch()
		return true
	default:
		s.errorf("unknown escape sequence")
		s.nextch()
		return false
	}
}

func (s *Scanner) skipLine() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}

func (s *Scanner) lineComment() { s.skipLine() }

// blockComment consumes a /* ... */ or /** ... */ comment (already past the
// opening /*). It records whether the comment text contained a newline (so
// the caller can translate it to an implicit semicolon) and whether it was a
// KDoc-style /** comment.
func (s *Scanner) blockComment() (sawNewline bool) {
	s.isKDoc = s.ch == '*'
	for {
		if s.ch == '\n' {
			sawNewline = true
		}
		if s.ch == '*' {
			s.nextch()
			if s.ch == '/' {
				s.nextch()
				return
			}
			continue
		}
		if s.ch < 0 {
			s.errorf("comment not terminated")
			return
		}
		s.nextch()
	}
}
