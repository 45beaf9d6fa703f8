package expect

import (
	"go/ast"
	"go/parser"
	"go/token"
)

var binaryOps = map[string]string{
	"Eq": opEq,
	"Ne": opNe,
	"Gt": opGt,
	"Ge": opGe,
	"Lt": opLt,
	"Le": opLe,
}

var chainOps = map[string]string{
	"Eq": opEq,
	"Lt": opLt,
	"Le": opLe,
}

// render rewrites the source of a builder expression into the operator form it stands for:
// Eq(a, b).Eq(c) becomes "a == b == c", Match(v, m) becomes "v >>= m" and Cond(x) becomes "x".
// Anything else is returned unchanged.
func render(expr string) string {
	fset := token.NewFileSet()
	e, err := parser.ParseExprFrom(fset, "", expr, 0)
	if err != nil {
		return expr
	}
	r := renderer{fset: fset, src: expr}
	if s, ok := r.node(e); ok {
		return s
	}
	return expr
}

type renderer struct {
	fset *token.FileSet
	src  string
}

func (r renderer) text(n ast.Node) string {
	return r.src[r.fset.Position(n.Pos()).Offset:r.fset.Position(n.End()).Offset]
}

func (r renderer) node(e ast.Expr) (string, bool) {
	call, ok := ast.Unparen(e).(*ast.CallExpr)
	if !ok {
		return "", false
	}
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return r.builder(fun.Name, call.Args)
	case *ast.IndexExpr:
		return r.generic(fun.X, call.Args)
	case *ast.IndexListExpr:
		return r.generic(fun.X, call.Args)
	case *ast.SelectorExpr:
		if _, isPackage := fun.X.(*ast.Ident); isPackage {
			return r.builder(fun.Sel.Name, call.Args)
		}
		chain, ok := r.node(fun.X)
		if !ok {
			return "", false
		}
		if op, ok := chainOps[fun.Sel.Name]; ok && len(call.Args) == 1 {
			return chain + " " + op + " " + r.text(call.Args[0]), true
		}
	}
	return "", false
}

// generic handles explicitly instantiated builders such as expect.Eq[int](a, b).
func (r renderer) generic(fun ast.Expr, args []ast.Expr) (string, bool) {
	switch f := fun.(type) {
	case *ast.Ident:
		return r.builder(f.Name, args)
	case *ast.SelectorExpr:
		return r.builder(f.Sel.Name, args)
	}
	return "", false
}

func (r renderer) builder(name string, args []ast.Expr) (string, bool) {
	if op, ok := binaryOps[name]; ok && len(args) == 2 {
		return r.text(args[0]) + " " + op + " " + r.text(args[1]), true
	}
	switch {
	case name == "Match" && len(args) == 2:
		return r.text(args[0]) + " " + matchMarker + " " + r.text(args[1]), true
	case name == "Cond" && len(args) == 1:
		return r.text(args[0]), true
	}
	return "", false
}
