package framework

import (
	"strings"
	"testing"
)

// RunGoTest runs the tests of the Default registry under Go's test runner.
func RunGoTest(t *testing.T) {
	t.Helper()
	Default.RunGoTest(t)
}

// RunGoTest runs every registered test as a subtest of t: one t.Run per suite and a nested
// one per test, so "go test -run" selects tests by suite and name. A suite is set up when the
// first of its selected tests starts, so a suite with no selected test is never set up.
// Failures are forwarded to the *testing.T of the test that produced them.
func (r *Registry) RunGoTest(t *testing.T) {
	t.Helper()
	for _, s := range r.suites {
		t.Run(s.name, func(t *testing.T) {
			runSuiteUnderGoTest(t, s, t.Run)
		})
	}
}

// runSuiteUnderGoTest runs the tests of s through run, which has the signature of t.Run;
// a tear-down failure is reported to t.
func runSuiteUnderGoTest(t *testing.T, s *registeredSuite, run func(name string, f func(t *testing.T)) bool) {
	setUp := false
	var setUpErr error
	defer func() {
		if setUp && setUpErr == nil {
			if err := callHook(s.hooks, "TearDownSuite", SuiteHooks.TearDownSuite); err != nil {
				t.Error(err)
			}
		}
	}()
	for _, test := range s.tests {
		run(test.info.Name, func(t *testing.T) {
			if !setUp {
				setUp = true
				setUpErr = callHook(s.hooks, "SetUpSuite", SuiteHooks.SetUpSuite)
			}
			if setUpErr != nil {
				t.Fatalf("suite set-up failed: %v", setUpErr)
			}
			runUnderGoTest(t, test)
		})
	}
}

func runUnderGoTest(t *testing.T, test registeredTest) {
	env := newEnvironment(nil, goTestLogger{t})
	c := env.start(test.info.ID(), test.info, func(c *Context) {
		test.factory().Run(c)
	})
	if c.skipped {
		t.Skip(c.skipReason)
	}
}

// goTestLogger forwards the events of one test to its *testing.T. Subtests started with
// Context.Run are reported under the same *testing.T, prefixed with their ID.
type goTestLogger struct {
	t *testing.T
}

func (g goTestLogger) TestStarted(TestID) {}

func (g goTestLogger) TestError(id TestID, err error) {
	g.t.Helper()
	g.t.Errorf("[%s]\n%s", id, err)
}

func (g goTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed && len(debugOutput) > 0 {
		var b strings.Builder
		debugOutput.Dump(&b, "DEBUG ")
		g.t.Logf("[%s] debug output:\n%s", id, b.String())
	}
}

func (g goTestLogger) TestSkipped(id TestID, reason string) {
	if reason != "" {
		g.t.Logf("[%s] skipped: %s", id, reason)
	}
}
