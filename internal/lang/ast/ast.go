package ast

import "ktfmt/internal/lang/token"

// Group marks a parenthesized declaration group, e.g.
//
//	import (
//	    "a"
//	    "b"
//	)
type Group struct{ _ int } // non-empty so distinct groups compare unequal

// File is the root of a parsed source file.
type File struct {
	Package  *PackageDecl
	DeclList []Decl
	node
}

func (n *File) Kind() NodeKind { return FileKind }
func (n *File) Children() []Node {
	return nonNil(append([]Node{n.Package}, declsToNodes(n.DeclList)...)...)
}

// PackageDecl is the file's leading `package a.b.c` clause.
type PackageDecl struct {
	Path string // dotted path, e.g. "a.b.c"
	node
}

func (n *PackageDecl) Kind() NodeKind   { return PackageDeclKind }
func (n *PackageDecl) Text() string     { return n.Path }
func (n *PackageDecl) Children() []Node { return nil }

// ImportDecl is a single `import "path"` or grouped import.
type ImportDecl struct {
	Group *Group
	Path  *BasicLit
	decl
}

func (n *ImportDecl) Kind() NodeKind   { return ImportDeclKind }
func (n *ImportDecl) Children() []Node { return nonNil(n.Path) }

// OperDecl declares an operator overload, e.g. `oper + (l L, r R) R { ... }`.
type OperDecl struct {
	Group        *Group
	TypeL, TypeR *Field
	Op           token.Operator
	Return       Expr
	Body         *BlockStmt
	Doc          *KDoc
	decl
}

func (n *OperDecl) Kind() NodeKind { return OperDeclKind }
func (n *OperDecl) Children() []Node {
	return nonNil(n.Doc, n.TypeL, n.TypeR, n.Return, n.Body)
}

// TypeDecl declares a named type, possibly an alias.
type TypeDecl struct {
	Group *Group
	Name  *Name
	Alias bool
	Type  Expr
	Doc   *KDoc
	decl
}

func (n *TypeDecl) Kind() NodeKind      { return TypeDeclKind }
func (n *TypeDecl) Children() []Node    { return nonNil(n.Doc, n.Name, n.Type) }

// VarDecl declares a var or val binding.
type VarDecl struct {
	Group    *Group
	Const    bool // val, rather than var
	NameList *Name
	Type     Expr // nil means inferred
	Values   Expr // nil means no initializer
	Doc      *KDoc
	decl
}

func (n *VarDecl) Kind() NodeKind   { return VarDeclKind }
func (n *VarDecl) Children() []Node { return nonNil(n.Doc, n.NameList, n.Type, n.Values) }

// FuncDecl declares a function.
type FuncDecl struct {
	Group  *Group
	Param  []*Field
	Name   *Name
	Return Expr // nil means no declared return type
	Body   *BlockStmt
	Doc    *KDoc
	decl
}

func (n *FuncDecl) Kind() NodeKind { return FuncDeclKind }
func (n *FuncDecl) Children() []Node {
	out := nonNil(n.Doc, n.Name)
	out = append(out, fieldsToNodes(n.Param)...)
	return append(out, nonNil(n.Return, n.Body)...)
}

// Field is a (name, type) pair: a function parameter, or a binary operator's
// typed operand.
type Field struct {
	Name *Name // nil for an anonymous/embedded element
	Type Expr
	expr
}

func (n *Field) Kind() NodeKind   { return FieldKind }
func (n *Field) Children() []Node { return nonNil(n.Name, n.Type) }

// KDoc is a `/** ... */` documentation comment attached to the declaration
// that immediately follows it. Its raw text (markers included) flows into
// pkg/kdoc for reflow.
type KDoc struct {
	Raw string
	node
}

func (n *KDoc) Kind() NodeKind   { return KDocKind }
func (n *KDoc) Text() string     { return n.Raw }
func (n *KDoc) Children() []Node { return nil }

// BadDecl is a placeholder for a top-level declaration that failed to parse.
type BadDecl struct {
	Reason string
	decl
}

func (n *BadDecl) Kind() NodeKind   { return BadExprKind }
func (n *BadDecl) Text() string     { return n.Reason }
func (n *BadDecl) Children() []Node { return nil }

// ---- statements ----

type ExprStmt struct {
	X Expr
	simpleStmt
}

func (n *ExprStmt) Kind() NodeKind   { return ExprStmtKind }
func (n *ExprStmt) Children() []Node { return nonNil(n.X) }

type EmptyStmt struct{ simpleStmt }

func (n *EmptyStmt) Kind() NodeKind   { return EmptyStmtKind }
func (n *EmptyStmt) Children() []Node { return nil }

type IncDecStmt struct {
	X   Expr
	Tok token.Token // IncOp
	Dec bool        // true for --, false for ++
	simpleStmt
}

func (n *IncDecStmt) Kind() NodeKind   { return IncDecStmtKind }
func (n *IncDecStmt) Children() []Node { return nonNil(n.X) }

type ContinueStmt struct{ simpleStmt }

func (n *ContinueStmt) Kind() NodeKind   { return ContinueStmtKind }
func (n *ContinueStmt) Children() []Node { return nil }

type BreakStmt struct{ simpleStmt }

func (n *BreakStmt) Kind() NodeKind   { return BreakStmtKind }
func (n *BreakStmt) Children() []Node { return nil }

type ReturnStmt struct {
	Result Expr
	stmt
}

func (n *ReturnStmt) Kind() NodeKind   { return ReturnStmtKind }
func (n *ReturnStmt) Children() []Node { return nonNil(n.Result) }

type DeclStmt struct {
	DeclList []Decl
	stmt
}

func (n *DeclStmt) Kind() NodeKind   { return DeclStmtKind }
func (n *DeclStmt) Children() []Node { return declsToNodes(n.DeclList) }

type DefineStmt struct {
	Lhs Expr
	Rhs Expr
	simpleStmt
}

func (n *DefineStmt) Kind() NodeKind   { return DefineStmtKind }
func (n *DefineStmt) Children() []Node { return nonNil(n.Lhs, n.Rhs) }

type AssignStmt struct {
	Lhs Expr
	Op  token.Operator // NoneOp means plain `=`
	Rhs Expr
	simpleStmt
}

func (n *AssignStmt) Kind() NodeKind   { return AssignStmtKind }
func (n *AssignStmt) Children() []Node { return nonNil(n.Lhs, n.Rhs) }

type IfStmt struct {
	Cond  Expr
	Block *BlockStmt
	Else  Stmt // *IfStmt or *BlockStmt, or nil
	stmt
}

func (n *IfStmt) Kind() NodeKind   { return IfStmtKind }
func (n *IfStmt) Children() []Node { return nonNil(n.Cond, n.Block, n.Else) }

type ForStmt struct {
	Init SimpleStmt
	Cond Expr
	Post SimpleStmt
	Body *BlockStmt
	stmt
}

func (n *ForStmt) Kind() NodeKind   { return ForStmtKind }
func (n *ForStmt) Children() []Node { return nonNil(n.Init, n.Cond, n.Post, n.Body) }

type WhileStmt struct {
	Cond Expr
	Body *BlockStmt
	stmt
}

func (n *WhileStmt) Kind() NodeKind   { return WhileStmtKind }
func (n *WhileStmt) Children() []Node { return nonNil(n.Cond, n.Body) }

type BlockStmt struct {
	StmtList []Stmt
	stmt
}

func (n *BlockStmt) Kind() NodeKind   { return BlockStmtKind }
func (n *BlockStmt) Children() []Node { return stmtsToNodes(n.StmtList) }

// ---- expressions ----

// BadExpr is a placeholder for an expression that failed to parse.
type BadExpr struct {
	Reason string
	expr
}

func (n *BadExpr) Kind() NodeKind   { return BadExprKind }
func (n *BadExpr) Text() string     { return n.Reason }
func (n *BadExpr) Children() []Node { return nil }

type Name struct {
	Value string
	expr
}

func (n *Name) Kind() NodeKind   { return NameKind }
func (n *Name) Text() string     { return n.Value }
func (n *Name) Children() []Node { return nil }

func NewName(pos Pos, value string) *Name {
	n := &Name{Value: value}
	n.SetPos(pos)
	return n
}

// BasicLit is a number, rune, or string literal. For StringLit/
// MultilineStringLit, Value is the raw source text (quotes included, unescaped);
// Parts holds the text between the quotes split into literal/interpolation
// runs.
type BasicLit struct {
	Value string
	Kind_ token.LitKind
	Bad   bool
	Parts []StringPart
	expr
}

func (n *BasicLit) Kind() NodeKind { return BasicLitKind }
func (n *BasicLit) Text() string   { return n.Value }
func (n *BasicLit) Children() []Node {
	out := make([]Node, len(n.Parts))
	for i := range n.Parts {
		out[i] = &n.Parts[i]
	}
	return out
}

// LitKind returns the literal's lexical kind.
func (n *BasicLit) LitKind() token.LitKind { return n.Kind_ }

// StringPart is one run of a string literal: either literal text or a
// `${expr}` interpolation (Interp is the raw, unparsed interior text — the
// formatter treats it as opaque but unbreakable, per spec.md §4.3).
type StringPart struct {
	Literal string // set when this run is plain text
	Interp  string // set when this run is a `${...}` interpolation (inner text only)
	node
}

func (n *StringPart) Kind() NodeKind {
	if n.Interp != "" {
		return InterpExprKind
	}
	return StringPartKind
}
func (n *StringPart) Text() string {
	if n.Interp != "" {
		return n.Interp
	}
	return n.Literal
}
func (n *StringPart) Children() []Node { return nil }

type SliceLit struct {
	ElemType Expr
	Elems    []Expr
	expr
}

func (n *SliceLit) Kind() NodeKind   { return SliceLitKind }
func (n *SliceLit) Children() []Node { return nonNil(append([]Node{n.ElemType}, exprsToNodes(n.Elems)...)...) }

// Operation is a unary (Y == nil) or binary expression.
type Operation struct {
	Op   token.Operator
	X, Y Expr
	expr
}

func (n *Operation) Kind() NodeKind   { return OperationKind }
func (n *Operation) Children() []Node { return nonNil(n.X, n.Y) }

type ParenExpr struct {
	X Expr
	expr
}

func (n *ParenExpr) Kind() NodeKind   { return ParenExprKind }
func (n *ParenExpr) Children() []Node { return nonNil(n.X) }

type SliceType struct {
	Elem Expr
	expr
}

func (n *SliceType) Kind() NodeKind   { return SliceTypeKind }
func (n *SliceType) Children() []Node { return nonNil(n.Elem) }

// SelectorExpr is `X.Sel` or, when Optional is set, `X?.Sel`.
type SelectorExpr struct {
	X        Expr
	Sel      *Name
	Optional bool
	expr
}

func (n *SelectorExpr) Kind() NodeKind   { return SelectorExprKind }
func (n *SelectorExpr) Children() []Node { return nonNil(n.X, n.Sel) }

type IndexExpr struct {
	X     Expr
	Index Expr
	expr
}

func (n *IndexExpr) Kind() NodeKind   { return IndexExprKind }
func (n *IndexExpr) Children() []Node { return nonNil(n.X, n.Index) }

// CallExpr is `Func(ArgList...)`, optionally followed by a trailing lambda
// block `{ ... }` (TrailingBlock), e.g. `list.forEach(x) { use(x) }`.
type CallExpr struct {
	Func          Expr
	ArgList       []Expr
	TrailingBlock *BlockStmt
	expr
}

func (n *CallExpr) Kind() NodeKind { return CallExprKind }
func (n *CallExpr) Children() []Node {
	out := nonNil(n.Func)
	out = append(out, exprsToNodes(n.ArgList)...)
	return append(out, nonNil(n.TrailingBlock)...)
}
