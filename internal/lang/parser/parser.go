// Package parser implements a recursive-descent parser for the subject
// language, completing the TreeProvider collaborator named in spec.md §1
// (external to the formatter's core) alongside internal/lang/scanner.
package parser

import (
	"fmt"
	"io"
	"strings"

	"ktfmt/internal/lang/ast"
	"ktfmt/internal/lang/scanner"
	"ktfmt/internal/lang/token"
)

// Error is a parse failure with a 1-based source line, matching the
// ParseError kind in spec.md §7.
type Error struct {
	Line uint
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

type parser struct {
	scanner.Scanner
	first *Error // first error encountered; parsing continues on a best-effort basis
}

// Parse reads a full source file and returns its syntax tree. On a lexical or
// syntax error it returns the first *Error encountered; the returned tree (if
// any) should be discarded, matching §7's "skip file" policy for ParseError.
func Parse(src io.Reader) (*ast.File, error) {
	var p parser
	p.Init(src, func(line, col uint, msg string) {
		if p.first == nil {
			p.first = &Error{Line: line, Msg: msg}
		}
	})
	p.Next()

	f := p.parseFile()
	if p.first != nil {
		return nil, p.first
	}
	return f, nil
}

func (p *parser) errorf(format string, args ...interface{}) {
	if p.first == nil {
		p.first = &Error{Line: p.Line(), Msg: fmt.Sprintf(format, args...)}
	}
}

func (p *parser) pos() ast.Pos { return ast.Pos{Line: p.Line(), Col: p.Col()} }

func (p *parser) got(tok token.Token) bool {
	if p.Token() == tok {
		p.Next()
		return true
	}
	return false
}

func (p *parser) want(tok token.Token) {
	if !p.got(tok) {
		p.errorf("expected %s, got %s %q", tok, p.Token(), p.Literal())
	}
}

// takeDoc consumes and returns any pending KDoc comment attached to the
// token about to be parsed.
func (p *parser) takeDoc() *ast.KDoc {
	raw := p.PendingKDoc()
	if raw == "" {
		return nil
	}
	return &ast.KDoc{Raw: raw}
}

func (p *parser) parseFile() *ast.File {
	f := &ast.File{}
	f.SetPos(p.pos())

	if p.Token() == token.Package {
		p.Next()
		f.Package = p.parsePackagePath()
		p.want(token.Semi)
	}

	for p.Token() != token.EOF && p.first == nil {
		if p.got(token.Semi) {
			continue // implicit semicolon after a closing brace
		}
		f.DeclList = append(f.DeclList, p.parseDecl())
	}
	return f
}

func (p *parser) parsePackagePath() *ast.PackageDecl {
	pos := p.pos()
	var sb strings.Builder
	sb.WriteString(p.Literal())
	p.want(token.Name)
	for p.Token() == token.Dot {
		p.Next()
		sb.WriteByte('.')
		sb.WriteString(p.Literal())
		p.want(token.Name)
	}
	d := &ast.PackageDecl{Path: sb.String()}
	d.SetPos(pos)
	return d
}

func (p *parser) parseDecl() ast.Decl {
	doc := p.takeDoc()
	switch p.Token() {
	case token.Import:
		return p.parseImportDecl()
	case token.Type:
		return p.parseTypeDecl(doc)
	case token.Var, token.Val:
		d := p.parseVarDecl(doc)
		p.want(token.Semi)
		return d
	case token.Fun:
		return p.parseFuncDecl(doc)
	case token.Oper:
		return p.parseOperDecl(doc)
	default:
		p.errorf("unexpected %s %q at top level", p.Token(), p.Literal())
		p.Next()
		bad := &ast.BadDecl{Reason: "unexpected top-level token"}
		bad.SetPos(p.pos())
		return bad
	}
}

func (p *parser) parseImportDecl() *ast.ImportDecl {
	pos := p.pos()
	p.Next() // import
	lit := p.parseBasicLit()
	p.want(token.Semi)
	d := &ast.ImportDecl{Path: lit}
	d.SetPos(pos)
	return d
}

func (p *parser) parseTypeDecl(doc *ast.KDoc) *ast.TypeDecl {
	pos := p.pos()
	p.Next() // type
	name := p.parseName()
	alias := p.got(token.Assign)
	typ := p.parseType()
	p.want(token.Semi)
	d := &ast.TypeDecl{Name: name, Alias: alias, Type: typ, Doc: doc}
	d.SetPos(pos)
	return d
}

func (p *parser) parseVarDecl(doc *ast.KDoc) *ast.VarDecl {
	pos := p.pos()
	isConst := p.Token() == token.Val
	p.Next() // var | val
	name := p.parseName()
	var typ ast.Expr
	if p.Token() != token.Assign && p.Token() != token.Semi {
		typ = p.parseType()
	}
	var values ast.Expr
	if p.got(token.Assign) {
		values = p.parseExpr()
	}
	d := &ast.VarDecl{Const: isConst, NameList: name, Type: typ, Values: values, Doc: doc}
	d.SetPos(pos)
	return d
}

func (p *parser) parseFuncDecl(doc *ast.KDoc) *ast.FuncDecl {
	pos := p.pos()
	p.Next() // fun
	name := p.parseName()
	params := p.parseParamList()
	var ret ast.Expr
	p.got(token.Colon)
	if p.Token() != token.Lbrace && p.Token() != token.Semi {
		ret = p.parseType()
	}
	var body *ast.BlockStmt
	if p.Token() == token.Lbrace {
		body = p.parseBlock()
	} else {
		p.want(token.Semi)
	}
	d := &ast.FuncDecl{Name: name, Param: params, Return: ret, Body: body, Doc: doc}
	d.SetPos(pos)
	return d
}

func (p *parser) parseOperDecl(doc *ast.KDoc) *ast.OperDecl {
	pos := p.pos()
	p.Next() // oper
	op := p.Op()
	p.want(token.Op)
	p.want(token.Lparen)
	l := p.parseField()
	p.want(token.Comma)
	r := p.parseField()
	p.want(token.Rparen)
	ret := p.parseType()
	body := p.parseBlock()
	d := &ast.OperDecl{TypeL: l, TypeR: r, Op: op, Return: ret, Body: body, Doc: doc}
	d.SetPos(pos)
	return d
}

func (p *parser) parseParamList() []*ast.Field {
	p.want(token.Lparen)
	var fields []*ast.Field
	for p.Token() != token.Rparen && p.Token() != token.EOF {
		fields = append(fields, p.parseField())
		if !p.got(token.Comma) {
			break
		}
	}
	p.want(token.Rparen)
	return fields
}

func (p *parser) parseField() *ast.Field {
	pos := p.pos()
	name := p.parseName()
	typ := p.parseType()
	f := &ast.Field{Name: name, Type: typ}
	f.SetPos(pos)
	return f
}

func (p *parser) parseName() *ast.Name {
	pos := p.pos()
	lit := p.Literal()
	p.want(token.Name)
	return ast.NewName(pos, lit)
}

// parseType parses a type expression: a name, a dotted selector chain, or a
// `[]Elem` slice type.
func (p *parser) parseType() ast.Expr {
	if p.Token() == token.Lbrack {
		pos := p.pos()
		p.Next()
		p.want(token.Rbrack)
		t := &ast.SliceType{Elem: p.parseType()}
		t.SetPos(pos)
		return t
	}
	var x ast.Expr = p.parseName()
	for p.Token() == token.Dot {
		pos := p.pos()
		p.Next()
		sel := p.parseName()
		s := &ast.SelectorExpr{X: x, Sel: sel}
		s.SetPos(pos)
		x = s
	}
	return x
}

func (p *parser) parseBlock() *ast.BlockStmt {
	pos := p.pos()
	p.want(token.Lbrace)
	b := &ast.BlockStmt{}
	b.SetPos(pos)
	for p.Token() != token.Rbrace && p.Token() != token.EOF && p.first == nil {
		b.StmtList = append(b.StmtList, p.parseStmt())
	}
	p.want(token.Rbrace)
	return b
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.Token() {
	case token.Var, token.Val:
		d := p.parseVarDecl(p.takeDoc())
		p.want(token.Semi)
		s := &ast.DeclStmt{DeclList: []ast.Decl{d}}
		s.SetPos(d.GetPos())
		return s
	case token.If:
		return p.parseIf()
	case token.For:
		return p.parseFor()
	case token.While:
		return p.parseWhile()
	case token.Return:
		pos := p.pos()
		p.Next()
		var result ast.Expr
		if p.Token() != token.Semi {
			result = p.parseExpr()
		}
		p.want(token.Semi)
		s := &ast.ReturnStmt{Result: result}
		s.SetPos(pos)
		return s
	case token.Break:
		pos := p.pos()
		p.Next()
		p.want(token.Semi)
		s := &ast.BreakStmt{}
		s.SetPos(pos)
		return s
	case token.Continue:
		pos := p.pos()
		p.Next()
		p.want(token.Semi)
		s := &ast.ContinueStmt{}
		s.SetPos(pos)
		return s
	case token.Lbrace:
		return p.parseBlock()
	case token.Semi:
		pos := p.pos()
		p.Next()
		s := &ast.EmptyStmt{}
		s.SetPos(pos)
		return s
	default:
		s := p.parseSimpleStmt()
		p.want(token.Semi)
		return s
	}
}

func (p *parser) parseIf() *ast.IfStmt {
	pos := p.pos()
	p.Next() // if
	cond := p.parseExpr()
	block := p.parseBlock()
	s := &ast.IfStmt{Cond: cond, Block: block}
	s.SetPos(pos)
	if p.got(token.Else) {
		if p.Token() == token.If {
			s.Else = p.parseIf()
		} else {
			s.Else = p.parseBlock()
		}
	}
	return s
}

func (p *parser) parseWhile() *ast.WhileStmt {
	pos := p.pos()
	p.Next() // while
	cond := p.parseExpr()
	body := p.parseBlock()
	s := &ast.WhileStmt{Cond: cond, Body: body}
	s.SetPos(pos)
	return s
}

func (p *parser) parseFor() *ast.ForStmt {
	pos := p.pos()
	p.Next() // for
	s := &ast.ForStmt{}
	s.SetPos(pos)
	if p.Token() == token.Lbrace {
		s.Body = p.parseBlock()
		return s
	}
	if p.Token() != token.Semi {
		s.Init = p.parseSimpleStmt()
	}
	if p.got(token.Semi) {
		if p.Token() != token.Semi {
			s.Cond = p.parseExpr()
		}
		p.want(token.Semi)
		if p.Token() != token.Lbrace {
			s.Post = p.parseSimpleStmt()
		}
	} else if st, ok := s.Init.(*ast.ExprStmt); ok {
		// `for cond { ... }` shorthand: the parsed "init" was really the condition.
		s.Init = nil
		s.Cond = st.X
	}
	s.Body = p.parseBlock()
	return s
}

// parseSimpleStmt parses an expression statement, assignment, define, or
// increment/decrement — the forms legal in a for-clause or as a bare
// statement.
func (p *parser) parseSimpleStmt() ast.SimpleStmt {
	pos := p.pos()
	x := p.parseExpr()
	switch p.Token() {
	case token.Define:
		p.Next()
		rhs := p.parseExpr()
		s := &ast.DefineStmt{Lhs: x, Rhs: rhs}
		s.SetPos(pos)
		return s
	case token.Assign:
		p.Next()
		rhs := p.parseExpr()
		s := &ast.AssignStmt{Lhs: x, Rhs: rhs}
		s.SetPos(pos)
		return s
	case token.AssignOp:
		op := p.Op()
		p.Next()
		rhs := p.parseExpr()
		s := &ast.AssignStmt{Lhs: x, Op: op, Rhs: rhs}
		s.SetPos(pos)
		return s
	case token.IncOp:
		dec := p.Literal() == "--"
		p.Next()
		s := &ast.IncDecStmt{X: x, Tok: token.IncOp, Dec: dec}
		s.SetPos(pos)
		return s
	default:
		s := &ast.ExprStmt{X: x}
		s.SetPos(pos)
		return s
	}
}

// ---- expressions, by precedence climbing ----

func (p *parser) parseExpr() ast.Expr { return p.parseBinary(1) }

func (p *parser) parseBinary(minPrec int) ast.Expr {
	x := p.parseUnary()
	for p.Token() == token.Op {
		op := p.Op()
		prec := op.Precedence()
		if prec == 0 || prec < minPrec {
			break
		}
		pos := p.pos()
		p.Next()
		y := p.parseBinary(prec + 1)
		bin := &ast.Operation{Op: op, X: x, Y: y}
		bin.SetPos(pos)
		x = bin
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	if p.Token() == token.Op && (p.Op() == token.Not || p.Op() == token.Sub) {
		pos := p.pos()
		op := p.Op()
		p.Next()
		x := p.parseUnary()
		u := &ast.Operation{Op: op, X: x}
		u.SetPos(pos)
		return u
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePostfix(x ast.Expr) ast.Expr {
	for {
		switch p.Token() {
		case token.Dot, token.QuestDot:
			optional := p.Token() == token.QuestDot
			pos := p.pos()
			p.Next()
			sel := p.parseName()
			s := &ast.SelectorExpr{X: x, Sel: sel, Optional: optional}
			s.SetPos(pos)
			x = s
		case token.Lbrack:
			pos := p.pos()
			p.Next()
			idx := p.parseExpr()
			p.want(token.Rbrack)
			e := &ast.IndexExpr{X: x, Index: idx}
			e.SetPos(pos)
			x = e
		case token.Lparen:
			pos := p.pos()
			args := p.parseArgList()
			call := &ast.CallExpr{Func: x, ArgList: args}
			call.SetPos(pos)
			if p.Token() == token.Lbrace {
				call.TrailingBlock = p.parseBlock()
			}
			x = call
		default:
			return x
		}
	}
}

func (p *parser) parseArgList() []ast.Expr {
	p.want(token.Lparen)
	var args []ast.Expr
	for p.Token() != token.Rparen && p.Token() != token.EOF {
		args = append(args, p.parseExpr())
		if !p.got(token.Comma) {
			break
		}
	}
	p.want(token.Rparen)
	return args
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.pos()
	switch p.Token() {
	case token.Name:
		return p.parseName()
	case token.Literal:
		return p.parseBasicLit()
	case token.Lparen:
		p.Next()
		x := p.parseExpr()
		p.want(token.Rparen)
		e := &ast.ParenExpr{X: x}
		e.SetPos(pos)
		return e
	case token.Lbrack:
		p.Next()
		p.want(token.Rbrack)
		elemType := p.parseType()
		var elems []ast.Expr
		if p.got(token.Lbrace) {
			for p.Token() != token.Rbrace && p.Token() != token.EOF {
				elems = append(elems, p.parseExpr())
				if !p.got(token.Comma) {
					break
				}
			}
			p.want(token.Rbrace)
		}
		e := &ast.SliceLit{ElemType: elemType, Elems: elems}
		e.SetPos(pos)
		return e
	default:
		p.errorf("unexpected %s %q in expression", p.Token(), p.Literal())
		p.Next()
		e := &ast.BadExpr{Reason: "unexpected token in expression"}
		e.SetPos(pos)
		return e
	}
}

func (p *parser) parseBasicLit() *ast.BasicLit {
	pos := p.pos()
	lit := &ast.BasicLit{Value: p.Literal(), Kind_: p.Kind(), Bad: p.Bad()}
	lit.SetPos(pos)
	if lit.Kind_ == token.StringLit || lit.Kind_ == token.MultilineStringLit {
		delim := `"`
		if lit.Kind_ == token.MultilineStringLit {
			delim = `"""`
		}
		lit.Parts = splitInterpolation(strings.TrimSuffix(strings.TrimPrefix(lit.Value, delim), delim))
	}
	p.want(token.Literal)
	return lit
}

// splitInterpolation splits the text between a string literal's quotes
// into literal and `${...}` interpolation runs.
func splitInterpolation(raw string) []ast.StringPart {
	var parts []ast.StringPart
	i := 0
	for i < len(raw) {
		j := strings.Index(raw[i:], "${")
		if j < 0 {
			parts = append(parts, ast.StringPart{Literal: raw[i:]})
			break
		}
		j += i
		if j > i {
			parts = append(parts, ast.StringPart{Literal: raw[i:j]})
		}
		depth := 1
		k := j + 2
		for k < len(raw) && depth > 0 {
			switch raw[k] {
			case '{':
				depth++
			case '}':
				depth--
			}
			k++
		}
		inner := raw[j+2 : k-1]
		parts = append(parts, ast.StringPart{Interp: inner})
		i = k
	}
	if len(parts) <= 1 {
		return nil // no interpolation: caller renders Value as one Leaf
	}
	return parts
}
