// Package source recovers the verbatim text of call arguments from the Go source file of a
// calling frame.
package source

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/tools/go/ast/inspector"
)

// Call describes one call site.
type Call struct {
	File string
	Line int
	// Func is the unqualified name of the called function.
	Func string
	// Args holds the source text of each argument, or is nil when the text could not be
	// recovered.
	Args []string
}

var (
	ErrNoCallerInfo  = errors.New("no caller information available")
	ErrAmbiguousCall = errors.New("several calls on one line")
)

type parsedFile struct {
	fset    *token.FileSet
	src     []byte
	inspect *inspector.Inspector
}

var (
	cacheLock sync.Mutex
	cache     = map[string]*parsedFile{}
)

// Caller describes the call made to the function that invokes Caller, skip frames above it.
// With skip 0, if expect.True calls Caller, the result is the call site of expect.True.
//
// File and Line are always set when the runtime knows them; a failure to read or parse the
// file leaves Args nil and is returned as the error.
func Caller(skip int) (Call, error) {
	pcs := make([]uintptr, 2)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	callee, more := frames.Next()
	if !more {
		return Call{}, ErrNoCallerInfo
	}
	site, _ := frames.Next()
	if site.File == "" {
		return Call{}, ErrNoCallerInfo
	}
	call := Call{File: site.File, Line: site.Line, Func: shortName(callee.Function)}
	args, err := ArgsAt(call.File, call.Line, call.Func)
	if err != nil {
		return call, err
	}
	call.Args = args
	return call, nil
}

// shortName turns "example.com/pkg.(*T).Method[...]" into "Method".
func shortName(name string) string {
	name = strings.ReplaceAll(name, "[...]", "")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// ArgsAt finds the innermost call to a function named funcName spanning line in file and
// returns the text of its arguments. Frames carry no column, so separate calls on the same
// line cannot be told apart; that case is reported as ErrAmbiguousCall rather than guessed.
func ArgsAt(file string, line int, funcName string) ([]string, error) {
	pf, err := load(file)
	if err != nil {
		return nil, err
	}

	var candidates []*ast.CallExpr
	pf.inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if calledName(call.Fun) != funcName {
			return
		}
		start, end := pf.fset.Position(call.Pos()), pf.fset.Position(call.End())
		if line < start.Line || line > end.Line {
			return
		}
		candidates = append(candidates, call)
	})
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no call to %s found at %s:%d", funcName, file, line)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if contains(best, c) {
			best = c
		}
	}
	for _, c := range candidates {
		if c != best && !contains(c, best) {
			return nil, fmt.Errorf("%w: %s at %s:%d", ErrAmbiguousCall, funcName, file, line)
		}
	}

	args := make([]string, len(best.Args))
	for i, arg := range best.Args {
		args[i] = string(pf.src[pf.fset.Position(arg.Pos()).Offset:pf.fset.Position(arg.End()).Offset])
	}
	return args, nil
}

// contains reports whether inner lies within the source range of outer.
func contains(outer, inner ast.Node) bool {
	return outer.Pos() <= inner.Pos() && inner.End() <= outer.End()
}

func calledName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calledName(f.X)
	case *ast.IndexListExpr:
		return calledName(f.X)
	case *ast.ParenExpr:
		return calledName(f.X)
	}
	return ""
}

func load(file string) (*parsedFile, error) {
	cacheLock.Lock()
	defer cacheLock.Unlock()
	if pf, ok := cache[file]; ok {
		return pf, nil
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading source of %s: %w", file, err)
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, src, 0)
	if err != nil {
		return nil, fmt.Errorf("parsing source of %s: %w", file, err)
	}
	pf := &parsedFile{fset: fset, src: src, inspect: inspector.New([]*ast.File{f})}
	cache[file] = pf
	return pf, nil
}
