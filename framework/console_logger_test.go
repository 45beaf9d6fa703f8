package framework

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsoleTestLogger(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var b strings.Builder
	logger := &ConsoleTestLogger{Out: &b, DebugOutputOnFailure: true, Program: "maudtest"}
	testID := id("arith", "add/0/int")
	debug := CapturedOutput{{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Message: "state=1"}}

	logger.TestStarted(testID)
	logger.TestError(testID, errors.New("Expected: a == b\n  Actual: 1 vs 2"))
	logger.TestFinished(testID, true, debug)
	logger.TestSkipped(id("arith", "later"), "")
	logger.TestSkipped(id("arith", "never"), "excluded")
	logger.TestFinished(id("arith", "fine"), false, debug)

	assert.Equal(t, "[arith/add/0/int]\n"+
		"  Expected: a == b\n"+
		"    Actual: 1 vs 2\n"+
		"  FAILED: arith/add/0/int\n"+
		"  rerun with: maudtest run --run '^arith/add/0/int$'\n"+
		"    DEBUG [2024-01-02 03:04:05.000] state=1\n"+
		"  SKIPPED: arith/later\n"+
		"  SKIPPED: arith/never (excluded)\n",
		b.String())
}

func TestRerunCommandQuotesMetacharacters(t *testing.T) {
	assert.Equal(t, `'./maud test' run --run '^s/a\.b$'`, RerunCommand("./maud test", id("s", "a.b")))
}

func TestPrintResults(t *testing.T) {
	var b strings.Builder
	PrintResults(&b, Results{Tests: []TestResult{{TestID: id("s", "a")}}})
	assert.Equal(t, "Passed: 1, failed: 0, skipped: 0\nAll tests passed\n", b.String())

	b.Reset()
	failure := TestResult{TestID: id("s", "b"), Errors: []error{errors.New("x.go:3:\nExpected: ok")}}
	PrintResults(&b, Results{
		Tests:    []TestResult{{TestID: id("s", "a")}, failure, {TestID: id("s", "c"), Skipped: true}},
		Failures: []TestResult{failure},
	})
	assert.Equal(t, "Passed: 1, failed: 1, skipped: 1\nFailed tests:\n  [s/b]: x.go:3:\n", b.String())
}
