package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	ErrEmptyName     = errors.New("suite and test names must not be empty")
	ErrDuplicateTest = errors.New("test is already registered")
)

// TestInfo describes one registered test.
type TestInfo struct {
	Suite string
	Name  string
	// TypeParam and ValueParam describe the parameter the test is bound to, if any.
	TypeParam  string
	ValueParam string
	File       string
	Line       int
}

func (i TestInfo) ID() TestID {
	return TestID{Path: []string{i.Suite, i.Name}}
}

// TestCase is one execution of a registered test.
type TestCase interface {
	Run(c *Context)
}

// TestFunc adapts a plain function to TestCase.
type TestFunc func(c *Context)

func (f TestFunc) Run(c *Context) { f(c) }

// SuiteHooks run around the tests of a suite: SetUpSuite strictly before the first selected
// test, TearDownSuite after the last.
type SuiteHooks interface {
	SetUpSuite()
	TearDownSuite()
}

type registeredTest struct {
	info    *TestInfo
	factory func() TestCase
}

type registeredSuite struct {
	name  string
	hooks SuiteHooks
	tests []registeredTest
	names map[string]struct{}
}

// Registry holds tests in registration order, grouped by suite in order of each suite's
// first registration. It is not safe for concurrent use; registration is expected to happen
// during package initialization.
type Registry struct {
	suites []*registeredSuite
	index  map[string]*registeredSuite
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]*registeredSuite)}
}

// Default is the registry used by the package-level functions.
var Default = NewRegistry()

func RegisterTest(info TestInfo, hooks SuiteHooks, factory func() TestCase) (*TestInfo, error) {
	return Default.RegisterTest(info, hooks, factory)
}

func RunAll(filter Filter, testLogger TestLogger) Results {
	return Default.RunAll(filter, testLogger)
}

// RegisterTest adds a test. The hooks given with the first test of a suite apply to the whole
// suite; hooks may be nil. factory is called once per execution of the test.
func (r *Registry) RegisterTest(info TestInfo, hooks SuiteHooks, factory func() TestCase) (*TestInfo, error) {
	if info.Suite == "" || info.Name == "" {
		return nil, fmt.Errorf("registering %q: %w", info.ID(), ErrEmptyName)
	}
	if factory == nil {
		return nil, fmt.Errorf("registering %s: no test factory", info.ID())
	}
	if r.index == nil {
		r.index = make(map[string]*registeredSuite)
	}
	s := r.index[info.Suite]
	if s == nil {
		s = &registeredSuite{name: info.Suite, hooks: hooks, names: make(map[string]struct{})}
		r.index[info.Suite] = s
		r.suites = append(r.suites, s)
	}
	if _, dup := s.names[info.Name]; dup {
		return nil, fmt.Errorf("registering %s: %w", info.ID(), ErrDuplicateTest)
	}
	s.names[info.Name] = struct{}{}
	stored := info
	s.tests = append(s.tests, registeredTest{info: &stored, factory: factory})
	return &stored, nil
}

// Tests lists every registered test in run order.
func (r *Registry) Tests() []*TestInfo {
	var ret []*TestInfo
	for _, s := range r.suites {
		for _, t := range s.tests {
			ret = append(ret, t.info)
		}
	}
	return ret
}

// RunAll runs every test selected by filter, one at a time, and returns the results. A
// panic in a suite hook is recorded as a failure of the suite; if SetUpSuite fails the
// suite's tests are recorded as failed without being run.
func (r *Registry) RunAll(filter Filter, testLogger TestLogger) Results {
	env := newEnvironment(filter, testLogger)
	for _, s := range r.suites {
		env.runSuite(s)
	}
	return env.results
}

func (env *environment) runSuite(s *registeredSuite) {
	var selected []registeredTest
	for _, t := range s.tests {
		id := t.info.ID()
		if env.filter != nil && !env.filter(id) {
			env.testLogger.TestStarted(id)
			env.testLogger.TestSkipped(id, "excluded by filter parameters")
			continue
		}
		selected = append(selected, t)
	}
	if len(selected) == 0 {
		return
	}

	suiteID := TestID{Path: []string{s.name}}
	if err := callHook(s.hooks, "SetUpSuite", SuiteHooks.SetUpSuite); err != nil {
		env.suiteFailed(suiteID, err)
		for _, t := range selected {
			env.notRun(t.info.ID(), fmt.Errorf("suite set-up failed: %w", err))
		}
		return
	}
	for _, t := range selected {
		env.runTest(t)
	}
	if err := callHook(s.hooks, "TearDownSuite", SuiteHooks.TearDownSuite); err != nil {
		env.suiteFailed(suiteID, err)
	}
}

func (env *environment) runTest(t registeredTest) {
	env.start(t.info.ID(), t.info, func(c *Context) {
		t.factory().Run(c)
	})
}

func (env *environment) suiteFailed(id TestID, err error) {
	env.testLogger.TestError(id, err)
	result := TestResult{TestID: id, Errors: []error{err}}
	env.results.Failures = append(env.results.Failures, result)
}

func (env *environment) notRun(id TestID, err error) {
	env.testLogger.TestStarted(id)
	env.testLogger.TestError(id, err)
	env.testLogger.TestFinished(id, true, nil)
	result := TestResult{TestID: id, Errors: []error{err}}
	env.results.Tests = append(env.results.Tests, result)
	env.results.Failures = append(env.results.Failures, result)
}

func callHook(hooks SuiteHooks, name string, hook func(SuiteHooks)) (err error) {
	if hooks == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected panic in %s: %+v\n%s", name, r, string(debug.Stack()))
		}
	}()
	hook(hooks)
	return nil
}
