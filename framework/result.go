package framework

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns how many recorded tests passed, failed and were skipped. Suite-level
// failures count as failed.
func (r Results) Counts() (passed, failed, skipped int) {
	failedIDs := make(map[string]bool, len(r.Failures))
	for _, f := range r.Failures {
		failedIDs[f.TestID.String()] = true
	}
	for _, t := range r.Tests {
		switch {
		case t.Skipped:
			skipped++
		case !failedIDs[t.TestID.String()]:
			passed++
		}
	}
	return passed, len(r.Failures), skipped
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

// PrintResults writes a summary of the run to w, listing each failed test with its first
// error.
func PrintResults(w io.Writer, results Results) {
	passed, failed, skipped := results.Counts()
	fmt.Fprintf(w, "Passed: %d, failed: %d, skipped: %d\n", passed, failed, skipped)
	if results.OK() {
		fmt.Fprintln(w, "All tests passed")
		return
	}
	fmt.Fprintln(w, "Failed tests:")
	for _, f := range results.Failures {
		if len(f.Errors) == 0 {
			fmt.Fprintf(w, "  %s\n", f.TestID)
			continue
		}
		first, _, _ := strings.Cut(f.Errors[0].Error(), "\n")
		fmt.Fprintf(w, "  %s\n", TestFailure{ID: f.TestID, Err: errors.New(first)})
	}
}
