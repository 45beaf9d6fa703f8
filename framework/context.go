package framework

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

func newEnvironment(filter Filter, testLogger TestLogger) *environment {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	return &environment{filter: filter, testLogger: testLogger}
}

// Context is used similarly to *testing.T by test bodies. It implements assert.TestingT and
// require.TestingT, so standard assertions can be used against it.
type Context struct {
	env         *environment
	id          TestID
	info        *TestInfo
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes action as an anonymous root test and returns the results of it and of any
// subtests it starts.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	env := newEnvironment(filter, testLogger)
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			if c.skipped {
				c.record()
				return
			}
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		c.record()
	}()

	action(c)
}

func (c *Context) record() {
	result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped}
	c.env.results.Tests = append(c.env.results.Tests, result)
	if c.failed && !c.skipped {
		c.env.results.Failures = append(c.env.results.Failures, result)
	}
}

// start runs action as the test id, honoring the filter and reporting progress to the
// test logger. It returns nil if the filter excluded the test.
func (env *environment) start(id TestID, info *TestInfo, action func(*Context)) *Context {
	env.testLogger.TestStarted(id)
	if env.filter != nil && !env.filter(id) {
		env.testLogger.TestSkipped(id, "excluded by filter parameters")
		return nil
	}
	c := &Context{id: id, info: info, env: env}
	c.run(action)
	if c.skipped {
		env.testLogger.TestSkipped(id, c.skipReason)
	} else {
		env.testLogger.TestFinished(id, c.failed, c.debugLogger.Output())
	}
	return c
}

func (c *Context) ID() TestID {
	return c.id
}

// Info returns the registration of the running test, or nil for ad hoc contexts created by
// Run.
func (c *Context) Info() *TestInfo {
	return c.info
}

func (c *Context) Name() string {
	return c.id.String()
}

// Run starts a subtest. Its ID is this context's ID plus name.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}
	c.env.start(id, c.info, action)
}

func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Errorf(format string, args ...interface{}) {
	c.fail(fmt.Errorf(format, args...))
}

// ReportFailureAt records a non-fatal failure attributed to a source location and lets the
// test continue.
func (c *Context) ReportFailureAt(file string, line int, message string) {
	c.fail(fmt.Errorf("%s:%d:\n%s", filepath.Base(file), line, message))
}

func (c *Context) fail(err error) {
	c.failed = true
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// Helper exists for helpers that mark themselves the way they would with *testing.T.
func (c *Context) Helper() {}

func (c *Context) FailNow() {
	panic(c)
}

func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

var (
	testifyLabel        = regexp.MustCompile(`^(\S[^:\t]*):[ ]*\t(.*)$`)
	testifyContinuation = regexp.MustCompile(`^[ \t]*\t(.*)$`)
)

// reformatError tidies the output of testify assertions, which starts with a blank line and
// labels each section with a heading padded to a common tab stop. Continuation lines of a
// section are indented under its heading.
func reformatError(err error) error {
	msg := err.Error()
	if !strings.HasPrefix(msg, "\n\t") {
		return err
	}
	lines := strings.Split(strings.Trim(msg, "\n"), "\n")
	for i, line := range lines {
		line = strings.TrimPrefix(line, "\t")
		if m := testifyLabel.FindStringSubmatch(line); m != nil {
			line = m[1] + ": " + m[2]
		} else if m := testifyContinuation.FindStringSubmatch(line); m != nil {
			line = "  " + m[1]
		}
		lines[i] = line
	}
	return errors.New(strings.Join(lines, "\n"))
}
