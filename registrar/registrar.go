// Package registrar declares tests and expands each declaration into the test instances its
// parameters call for.
//
// A declaration names a suite, a test and a body, plus an optional parameter specification:
//
//	var arith = registrar.NewSuite[calculator]("arith")
//
//	var _ = arith.Test("adds", func(t *framework.Context, p registrar.Parameter) {
//		n := registrar.As[int](p)
//		expect.Check(t, expect.Eq(arith.State().Add(n, n), 2*n))
//	}, []int{1, 2, 3})
//
// registers arith/adds/0/1, arith/adds/1/2 and arith/adds/2/3. With no parameters a single
// instance named after the test is registered; with one non-sequence value, a single instance
// named test/value; with two or more values, one instance per value named
// test/index/type/value.
package registrar

import (
	"fmt"
	"runtime"

	"github.com/maud-build/maudtest/framework"
	"github.com/maud-build/maudtest/suitestate"
)

// Location identifies a test declaration.
type Location struct {
	File  string
	Line  int
	Suite string
	Test  string
}

// Body is the code of a test, run once per instance with that instance's parameter.
type Body func(t *framework.Context, p Parameter)

// held keeps the parameters of every registered instance for the life of the process.
var held [][]Parameter

// Register resolves args into parameters and registers one test per parameter with registry.
// It returns the tests registered before any error; an error from producing the parameters
// is returned before anything is registered.
func Register(registry *framework.Registry, hooks framework.SuiteHooks, loc Location, body Body, args ...any) ([]*framework.TestInfo, error) {
	set, err := resolve(args)
	if err != nil {
		return nil, err
	}
	params, err := set.parameters()
	if err != nil {
		return nil, fmt.Errorf("producing parameters of %s/%s: %w", loc.Suite, loc.Test, err)
	}
	held = append(held, params)

	var infos []*framework.TestInfo
	for i := range params {
		p := &params[i]
		info := framework.TestInfo{
			Suite:      loc.Suite,
			Name:       instanceName(loc.Test, *p),
			TypeParam:  p.TypeName,
			ValueParam: p.Printed,
			File:       loc.File,
			Line:       loc.Line,
		}
		registered, err := registry.RegisterTest(info, hooks, func() framework.TestCase {
			return framework.TestFunc(func(t *framework.Context) { body(t, *p) })
		})
		if err != nil {
			return infos, err
		}
		infos = append(infos, registered)
	}
	return infos, nil
}

// Suite groups tests that share one state block of type S. The state is constructed before
// the first test of the suite runs and destroyed after the last; use suitestate.NoState for
// suites without state.
type Suite[S any] struct {
	name     string
	registry *framework.Registry
	slot     suitestate.Slot[S]
}

// NewSuite declares a suite in framework.Default.
func NewSuite[S any](name string) *Suite[S] {
	return NewSuiteIn[S](framework.Default, name)
}

func NewSuiteIn[S any](registry *framework.Registry, name string) *Suite[S] {
	return &Suite[S]{name: name, registry: registry}
}

func (s *Suite[S]) Name() string {
	return s.name
}

// State returns the suite's live state, constructing it if no test of the suite is running.
func (s *Suite[S]) State() *S {
	return s.slot.Acquire()
}

// Generation counts how many times the suite's state has been constructed.
func (s *Suite[S]) Generation() int {
	return s.slot.Generation()
}

func (s *Suite[S]) SetUpSuite() {
	s.slot.Acquire()
}

func (s *Suite[S]) TearDownSuite() {
	s.slot.Release()
}

// Register declares a test at the caller's location.
func (s *Suite[S]) Register(name string, body Body, args ...any) ([]*framework.TestInfo, error) {
	return s.register(2, name, body, args)
}

// Test is Register for use in package-level declarations: it panics if registration fails.
func (s *Suite[S]) Test(name string, body Body, args ...any) []*framework.TestInfo {
	infos, err := s.register(2, name, body, args)
	if err != nil {
		panic(err)
	}
	return infos
}

func (s *Suite[S]) register(skip int, name string, body Body, args []any) ([]*framework.TestInfo, error) {
	loc := Location{Suite: s.name, Test: name}
	if _, file, line, ok := runtime.Caller(skip); ok {
		loc.File, loc.Line = file, line
	}
	return Register(s.registry, s, loc, body, args...)
}

// Each declares a test run once per value, with the value passed to body as a T.
func Each[S, T any](s *Suite[S], name string, body func(t *framework.Context, v T), values ...T) []*framework.TestInfo {
	infos, err := s.register(2, name, func(t *framework.Context, p Parameter) {
		body(t, As[T](p))
	}, []any{Values(values...)})
	if err != nil {
		panic(err)
	}
	return infos
}
