package expect

import (
	"reflect"
	"strings"

	"github.com/maud-build/maudtest/printer"
)

// Evaluation is the outcome of one checked condition. Explain returns an empty string when the
// condition held, and otherwise the failure message for a condition written as source.
type Evaluation interface {
	Explain(source string) string
}

// Condition checks the truthiness of a single value.
type Condition[T any] struct {
	value T
	ok    bool
}

// Cond captures v. A bool is truthy when true; any other value is truthy when it is not the
// zero value of its type (so nil pointers, empty strings and 0 are falsy).
func Cond[T any](v T) Condition[T] {
	return Condition[T]{value: v, ok: truthy(v)}
}

func truthy(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	rv := reflect.ValueOf(v)
	return rv.IsValid() && !rv.IsZero()
}

// Explain reports the expected polarity: a source starting with "not " or "!" was expected to
// be false, and the marker is dropped from the message.
func (c Condition[T]) Explain(source string) string {
	if c.ok {
		return ""
	}
	negated := false
	switch {
	case strings.HasPrefix(source, "not "):
		source, negated = source[len("not "):], true
	case strings.HasPrefix(source, "!"):
		source, negated = source[len("!"):], true
	}

	var b strings.Builder
	b.WriteString("Expected: ")
	b.WriteString(source)
	if _, isBool := any(c.value).(bool); !isBool {
		b.WriteString(" (")
		b.WriteString(printer.Print(c.value))
		b.WriteString(")")
	}
	b.WriteString("\n    to be ")
	if negated {
		b.WriteString("false")
	} else {
		b.WriteString("true")
	}
	return b.String()
}
