package scan

import (
	"strings"

	"ktfmt/internal/lang/ast"
	"ktfmt/internal/lang/token"
	"ktfmt/pkg/fmttoken"
	"ktfmt/pkg/match"
)

func scanBadExpr(r *Registry, n ast.Node) []fmttoken.Token {
	return []fmttoken.Token{leaf(n.Text())}
}

func scanName(r *Registry, n ast.Node) []fmttoken.Token {
	return []fmttoken.Token{leaf(n.Text())}
}

func scanBasicLit(r *Registry, n ast.Node) []fmttoken.Token {
	lit := n.(*ast.BasicLit)
	if lit.Kind_ == token.MultilineStringLit {
		// Rendered verbatim (source formatting inside """..."""  is
		// preserved), but still wrapped so the printer knows not to strip
		// trailing spaces off its embedded lines (spec.md §4.3).
		return []fmttoken.Token{
			fmttoken.NewBegin(fmttoken.MULTILINE_STRING),
			leaf(lit.Value),
			fmttoken.NewEnd(),
		}
	}
	if len(lit.Parts) == 0 {
		return []fmttoken.Token{leaf(lit.Value)}
	}
	return scanStringParts(lit.Parts)
}

// scanStringParts renders a `${...}`-interpolated string literal as a
// STRING_LITERAL block so pkg/printer can wrap it with `"..." + "..."` if a
// line break becomes unavoidable (spec.md §4.3 E7). Legal break points are
// word boundaries inside a literal run and the boundary between a literal
// run and an interpolation; nothing inside `${...}` is ever split.
func scanStringParts(parts []ast.StringPart) []fmttoken.Token {
	out := []fmttoken.Token{fmttoken.NewContinuationBegin(fmttoken.STRING_LITERAL), leaf(`"`)}
	for i, p := range parts {
		if i > 0 {
			out = append(out, fmttoken.NewWhitespace(""))
		}
		if p.Interp != "" {
			out = append(out, leaf("${"+p.Interp+"}"))
			continue
		}
		words := strings.Split(p.Literal, " ")
		for j, w := range words {
			if j > 0 {
				out = append(out, fmttoken.NewWhitespace(" "))
			}
			out = append(out, leaf(w))
		}
	}
	out = append(out, leaf(`"`))
	out = append(out, fmttoken.NewEnd())
	return out
}

func scanSliceLit(r *Registry, n ast.Node) []fmttoken.Token {
	s := n.(*ast.SliceLit)
	out := []fmttoken.Token{leaf("[")}
	if s.ElemType != nil {
		out = append(out, r.Scan(s.ElemType)...)
		out = append(out, leaf(":"), space())
	}
	if len(s.Elems) > 0 {
		out = append(out, nbsp())
		for i, e := range s.Elems {
			if i > 0 {
				out = append(out, leaf(","), fmttoken.NewSynchronizedBreak(1))
			}
			out = append(out, r.Scan(e)...)
		}
		out = append(out, nbsp())
	}
	out = append(out, leaf("]"))
	return out
}

func scanOperation(r *Registry, n ast.Node) []fmttoken.Token {
	op := n.(*ast.Operation)
	if op.X != nil && op.Y != nil {
		var out []fmttoken.Token
		out = append(out, r.Scan(op.X)...)
		out = append(out, space(), leaf(op.Op.String()), fmttoken.NewWhitespace(" "))
		out = append(out, r.Scan(op.Y)...)
		return out
	}
	// Unary: only X (or only Y for a prefix-reversed form) is set.
	operand := op.X
	if operand == nil {
		operand = op.Y
	}
	return append([]fmttoken.Token{leaf(op.Op.String())}, r.Scan(operand)...)
}

func scanParenExpr(r *Registry, n ast.Node) []fmttoken.Token {
	p := n.(*ast.ParenExpr)
	out := []fmttoken.Token{leaf("(")}
	out = append(out, r.Scan(p.X)...)
	out = append(out, leaf(")"))
	return out
}

func scanSliceType(r *Registry, n ast.Node) []fmttoken.Token {
	t := n.(*ast.SliceType)
	return append([]fmttoken.Token{leaf("[")}, append(r.Scan(t.Elem), leaf("]"))...)
}

// scanSelectorExpr wraps `x.sel` in its own continuation block with a break
// candidate before the dot, so a chain like `a.b().c().d()` that overflows
// breaks before each `.`/`?.` and indents one continuation step rather than
// running past the line limit (spec.md §4.3 E4). Because this block closes
// (End) before the next SelectorExpr up the chain opens its own, the
// continuation indent doesn't compound across the chain's links.
func scanSelectorExpr(r *Registry, n ast.Node) []fmttoken.Token {
	s := n.(*ast.SelectorExpr)
	out := []fmttoken.Token{fmttoken.NewContinuationBegin(fmttoken.CODE)}
	out = append(out, r.Scan(s.X)...)
	out = append(out, fmttoken.NewSynchronizedBreak(0))
	if s.Optional {
		out = append(out, leaf("?."))
	} else {
		out = append(out, leaf("."))
	}
	out = append(out, r.Scan(s.Sel)...)
	out = append(out, fmttoken.NewEnd())
	return out
}

func scanIndexExpr(r *Registry, n ast.Node) []fmttoken.Token {
	ix := n.(*ast.IndexExpr)
	out := r.Scan(ix.X)
	out = append(out, leaf("["))
	out = append(out, r.Scan(ix.Index)...)
	out = append(out, leaf("]"))
	return out
}

// callPattern separates a CallExpr's flattened Children() (Func, then each
// ArgList element, then an optional TrailingBlock) back into its parts via
// pkg/match: the boundary between "last argument" and "trailing lambda" is
// only recoverable from node kind, which is exactly the ambiguity
// NodePatternMatcher exists to resolve against a black-box child sequence.
func callPattern() match.Pattern {
	fn := match.NodeOfType("func",
		ast.NameKind, ast.SelectorExprKind, ast.IndexExprKind, ast.CallExprKind, ast.ParenExprKind)
	args := match.ZeroOrMore(match.NodeNotOfType("arg", ast.BlockStmtKind))
	trailing := match.ZeroOrOne(match.NodeOfType("trailing", ast.BlockStmtKind))
	return match.AndThen(fn, match.AndThen(args, match.AndThen(trailing, match.End())))
}

func scanCallExpr(r *Registry, n ast.Node) []fmttoken.Token {
	c := n.(*ast.CallExpr)
	steps, ok := matchChildren(n, callPattern())
	var fn ast.Node
	var args []ast.Node
	var trailing ast.Node
	if ok {
		fn = stepNode(steps, "func")
		args = stepNodes(steps, "arg")
		trailing = stepNode(steps, "trailing")
	} else {
		// Fall back to the typed fields directly; this only happens if a
		// future AST addition makes the call shape not fit callPattern.
		fn = c.Func
		for _, a := range c.ArgList {
			args = append(args, a)
		}
		if c.TrailingBlock != nil {
			trailing = c.TrailingBlock
		}
	}

	var out []fmttoken.Token
	out = append(out, r.Scan(fn)...)
	out = append(out, leaf("("))
	begin := fmttoken.NewBegin(fmttoken.CODE)
	out = append(out, begin)
	for i, a := range args {
		if i > 0 {
			out = append(out, leaf(","), fmttoken.NewSynchronizedBreak(1))
		}
		out = append(out, r.Scan(a)...)
	}
	out = append(out, fmttoken.NewEnd())
	out = append(out, leaf(")"))
	if trailing != nil {
		out = append(out, space())
		out = append(out, r.Scan(trailing)...)
	}
	return out
}
