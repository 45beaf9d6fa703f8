package framework

import (
	"fmt"
	"strings"
)

// recordingLogger keeps every TestLogger event as a line of text.
type recordingLogger struct {
	events []string
}

func (r *recordingLogger) TestStarted(id TestID) {
	r.events = append(r.events, "start "+id.String())
}

func (r *recordingLogger) TestError(id TestID, err error) {
	first, _, _ := strings.Cut(err.Error(), "\n")
	r.events = append(r.events, fmt.Sprintf("error %s: %s", id, first))
}

func (r *recordingLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	if failed {
		r.events = append(r.events, "failed "+id.String())
	} else {
		r.events = append(r.events, "passed "+id.String())
	}
}

func (r *recordingLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, fmt.Sprintf("skipped %s (%s)", id, reason))
}

// hookLog records suite hooks into a shared trace.
type hookLog struct {
	trace        *[]string
	failSetUp    bool
	failTearDown bool
}

func (h *hookLog) SetUpSuite() {
	*h.trace = append(*h.trace, "setup")
	if h.failSetUp {
		panic("cannot set up")
	}
}

func (h *hookLog) TearDownSuite() {
	*h.trace = append(*h.trace, "teardown")
	if h.failTearDown {
		panic("cannot tear down")
	}
}

func traceTest(trace *[]string, name string) func() TestCase {
	return func() TestCase {
		return TestFunc(func(c *Context) {
			*trace = append(*trace, name)
		})
	}
}

func resultIDs(rs []TestResult) []string {
	var ids []string
	for _, r := range rs {
		ids = append(ids, r.TestID.String())
	}
	return ids
}

// fullErrorLogger keeps the complete text of every error passed to TestError.
type fullErrorLogger struct {
	nullTestLogger
	errors []string
}

func (f *fullErrorLogger) TestError(_ TestID, err error) {
	f.errors = append(f.errors, err.Error())
}
