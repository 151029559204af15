package scan

import (
	"ktfmt/internal/lang/ast"
	"ktfmt/internal/lang/token"
	"ktfmt/pkg/fmttoken"
)

func scanFile(r *Registry, n ast.Node) []fmttoken.Token {
	f := n.(*ast.File)
	var out []fmttoken.Token
	if f.Package != nil {
		out = append(out, r.Scan(f.Package)...)
		out = append(out, fmttoken.NewForcedBreak(1))
	}

	imports, rest := splitLeadingImports(f.DeclList)
	if len(imports) > 0 {
		begin := fmttoken.NewBegin(fmttoken.PACKAGE_IMPORT)
		out = append(out, begin)
		for i, d := range imports {
			if i > 0 {
				out = append(out, fmttoken.NewForcedBreak(1))
			}
			out = append(out, r.Scan(d)...)
		}
		out = append(out, fmttoken.NewEnd())
		if len(rest) > 0 {
			out = append(out, fmttoken.NewForcedBreak(2))
		}
	}

	for i, d := range rest {
		if i > 0 {
			out = append(out, fmttoken.NewForcedBreak(2))
		}
		out = append(out, r.Scan(d)...)
	}
	out = append(out, fmttoken.NewForcedBreak(1))
	return out
}

func splitLeadingImports(decls []ast.Decl) (imports []ast.Decl, rest []ast.Decl) {
	i := 0
	for ; i < len(decls); i++ {
		if _, ok := decls[i].(*ast.ImportDecl); !ok {
			break
		}
		imports = append(imports, decls[i])
	}
	rest = decls[i:]
	return
}

func scanPackageDecl(r *Registry, n ast.Node) []fmttoken.Token {
	p := n.(*ast.PackageDecl)
	return []fmttoken.Token{kw(token.Package), space(), leaf(p.Path)}
}

func scanImportDecl(r *Registry, n ast.Node) []fmttoken.Token {
	d := n.(*ast.ImportDecl)
	out := []fmttoken.Token{kw(token.Import), space()}
	if d.Path != nil {
		out = append(out, r.Scan(d.Path)...)
	}
	return out
}

func scanKDoc(r *Registry, n ast.Node) []fmttoken.Token {
	d := n.(*ast.KDoc)
	return []fmttoken.Token{
		fmttoken.NewBegin(fmttoken.KDOC),
		fmttoken.NewKDocContent(d.Raw),
		fmttoken.NewEnd(),
		fmttoken.NewForcedBreak(1),
	}
}

func scanField(r *Registry, n ast.Node) []fmttoken.Token {
	f := n.(*ast.Field)
	var out []fmttoken.Token
	if f.Name != nil {
		out = append(out, r.Scan(f.Name)...)
		if f.Type != nil {
			out = append(out, leaf(":"), space())
		}
	}
	if f.Type != nil {
		out = append(out, r.Scan(f.Type)...)
	}
	return out
}

func withDoc(r *Registry, doc *ast.KDoc, body []fmttoken.Token) []fmttoken.Token {
	if doc == nil {
		return body
	}
	return append(r.Scan(doc), body...)
}

func scanTypeDecl(r *Registry, n ast.Node) []fmttoken.Token {
	d := n.(*ast.TypeDecl)
	var out []fmttoken.Token
	out = append(out, kw(token.Type), space())
	out = append(out, r.Scan(d.Name)...)
	if d.Alias {
		out = append(out, space(), leaf("="), space())
	} else {
		out = append(out, space())
	}
	out = append(out, r.Scan(d.Type)...)
	return withDoc(r, d.Doc, out)
}

func scanVarDecl(r *Registry, n ast.Node) []fmttoken.Token {
	d := n.(*ast.VarDecl)
	var out []fmttoken.Token
	begin := fmttoken.NewBegin(fmttoken.CODE)
	out = append(out, begin)
	if d.Const {
		out = append(out, kw(token.Val))
	} else {
		out = append(out, kw(token.Var))
	}
	out = append(out, space())
	out = append(out, r.Scan(d.NameList)...)
	if d.Type != nil {
		out = append(out, leaf(":"), space())
		out = append(out, r.Scan(d.Type)...)
	}
	if d.Values != nil {
		out = append(out, space(), leaf("="), space())
		out = append(out, r.Scan(d.Values)...)
	}
	out = append(out, fmttoken.NewEnd())
	return withDoc(r, d.Doc, out)
}

// scanParamList emits a parenthesized, comma-separated parameter list whose
// breaks are all synchronized in one block: if the list doesn't fit flat,
// every parameter lands on its own standard-indented line and the closing
// paren de-indents back to the declaration's own indent (spec.md §4.3 E2).
func scanParamList(r *Registry, params []*ast.Field) []fmttoken.Token {
	out := []fmttoken.Token{leaf("(")}
	if len(params) > 0 {
		out = append(out, fmttoken.NewBegin(fmttoken.CODE))
		out = append(out, fmttoken.NewSynchronizedBreak(0))
		for i, p := range params {
			if i > 0 {
				out = append(out, leaf(","), fmttoken.NewSynchronizedBreak(1))
			}
			out = append(out, r.Scan(p)...)
		}
		out = append(out, fmttoken.NewClosingSynchronizedBreak(0))
		out = append(out, fmttoken.NewEnd())
	}
	out = append(out, leaf(")"))
	return out
}

func scanFuncDecl(r *Registry, n ast.Node) []fmttoken.Token {
	d := n.(*ast.FuncDecl)
	var out []fmttoken.Token
	out = append(out, fmttoken.NewBegin(fmttoken.CODE))
	out = append(out, kw(token.Fun), space())
	out = append(out, r.Scan(d.Name)...)
	begin := fmttoken.NewBegin(fmttoken.CODE)
	out = append(out, begin)
	out = append(out, scanParamList(r, d.Param)...)
	if d.Return != nil {
		out = append(out, leaf(":"), space())
		out = append(out, r.Scan(d.Return)...)
	}
	out = append(out, fmttoken.NewEnd())
	if d.Body != nil {
		out = append(out, space())
		out = append(out, r.Scan(d.Body)...)
	}
	out = append(out, fmttoken.NewEnd())
	return withDoc(r, d.Doc, out)
}

func scanOperDecl(r *Registry, n ast.Node) []fmttoken.Token {
	d := n.(*ast.OperDecl)
	var out []fmttoken.Token
	out = append(out, fmttoken.NewBegin(fmttoken.CODE))
	out = append(out, kw(token.Oper), space(), leaf(d.Op.String()), space())
	out = append(out, scanParamList(r, []*ast.Field{d.TypeL, d.TypeR})...)
	if d.Return != nil {
		out = append(out, leaf(":"), space())
		out = append(out, r.Scan(d.Return)...)
	}
	if d.Body != nil {
		out = append(out, space())
		out = append(out, r.Scan(d.Body)...)
	}
	out = append(out, fmttoken.NewEnd())
	return withDoc(r, d.Doc, out)
}
