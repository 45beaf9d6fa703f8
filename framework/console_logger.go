package framework

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
)

var (
	failedLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	skippedLabel = color.New(color.FgYellow).SprintFunc()
)

// TestLogger receives progress events from a test run. TestFinished is not called for a test
// that was skipped.
type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (nullTestLogger) TestStarted(TestID)                        {}
func (nullTestLogger) TestError(TestID, error)                   {}
func (nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (nullTestLogger) TestSkipped(TestID, string)                {}

// ConsoleTestLogger prints test progress as plain text.
type ConsoleTestLogger struct {
	// Out defaults to os.Stdout.
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
	// Program, if set, is used to print a command that reruns a failed test.
	Program string
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Fprintf(c.out(), "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.out(), "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		fmt.Fprintf(c.out(), "  %s: %s\n", failedLabel("FAILED"), id)
		if c.Program != "" {
			fmt.Fprintf(c.out(), "  rerun with: %s\n", RerunCommand(c.Program, id))
		}
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.out(), "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.out(), "  %s: %s\n", skippedLabel("SKIPPED"), id)
	} else {
		fmt.Fprintf(c.out(), "  %s: %s (%s)\n", skippedLabel("SKIPPED"), id, reason)
	}
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// RerunCommand returns a shell command line that runs only the test id.
func RerunCommand(program string, id TestID) string {
	var b commandBuilder
	b.add(program, "run", "--run", "^"+regexp.QuoteMeta(id.String())+"$")
	return b.String()
}
