package expect

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/maud-build/maudtest/internal/source"
)

// UnknownSource stands in for the condition text when it cannot be read from the caller's file.
const UnknownSource = "<unknown>"

// Reporter is implemented by test contexts that record a failure at an explicit source location.
type Reporter interface {
	ReportFailureAt(file string, line int, message string)
}

type tHelper interface {
	Helper()
}

// Expectation holds the failure message of one evaluated condition. It is satisfied when the
// message is empty.
type Expectation struct {
	File    string
	Line    int
	Failure string

	reported bool
}

// Evaluate explains e against source and records the location the check was made at.
func Evaluate(file string, line int, source string, e Evaluation) *Expectation {
	return &Expectation{File: file, Line: line, Failure: e.Explain(source)}
}

// OK reports whether the condition held.
func (x *Expectation) OK() bool {
	return x.Failure == ""
}

// Or lets onFail append context to a failure message. It is not called when the condition
// held, and it cannot change the outcome.
func (x *Expectation) Or(onFail func(w io.Writer)) *Expectation {
	if x.OK() || onFail == nil {
		return x
	}
	var b strings.Builder
	b.WriteString(x.Failure)
	onFail(&b)
	x.Failure = b.String()
	return x
}

// Report delivers a failure to t as a non-fatal error. A given Expectation is reported at most
// once; the return value is OK().
func (x *Expectation) Report(t assert.TestingT) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if x.OK() {
		return true
	}
	if x.reported {
		return false
	}
	x.reported = true
	if r, ok := t.(Reporter); ok {
		r.ReportFailureAt(x.File, x.Line, x.Failure)
	} else {
		t.Errorf("%s:%d:\n%s", filepath.Base(x.File), x.Line, x.Failure)
	}
	return false
}

// Note returns an Or callback that appends a formatted line to the failure message.
func Note(format string, args ...any) func(w io.Writer) {
	return func(w io.Writer) {
		io.WriteString(w, "\n")
		fmt.Fprintf(w, format, args...)
	}
}

// That checks e, using source as the text of the condition in the failure message.
func That(t assert.TestingT, source string, e Evaluation, onFail ...func(w io.Writer)) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	_, file, line, _ := runtime.Caller(1)
	return report(t, Evaluate(file, line, source, e), onFail)
}

// True checks the truthiness of cond. The condition text is read from the calling source file.
func True(t assert.TestingT, cond any, onFail ...func(w io.Writer)) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	call, _ := source.Caller(0)
	return report(t, Evaluate(call.File, call.Line, argText(call, 1, false), Cond(cond)), onFail)
}

// Check checks e. The condition text is read from the calling source file, with builder calls
// rewritten into operator form.
func Check(t assert.TestingT, e Evaluation, onFail ...func(w io.Writer)) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	call, _ := source.Caller(0)
	return report(t, Evaluate(call.File, call.Line, argText(call, 1, true), e), onFail)
}

func argText(call source.Call, i int, rendered bool) string {
	if i >= len(call.Args) {
		return UnknownSource
	}
	if rendered {
		return render(call.Args[i])
	}
	return call.Args[i]
}

func report(t assert.TestingT, x *Expectation, onFail []func(w io.Writer)) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	for _, f := range onFail {
		x.Or(f)
	}
	return x.Report(t)
}
