package expect

import (
	"strings"

	"github.com/maud-build/maudtest/matcher"
	"github.com/maud-build/maudtest/printer"
)

// matchMarker separates the checked value from the matcher in source text, as in
// "name >>= HasSubstr(\"x\")".
const matchMarker = ">>="

// MatchCondition is a value checked against a matcher.
type MatchCondition[T any] struct {
	value T
	m     matcher.Matcher[T]
	ok    bool
	why   string
}

// Match runs m against v. Whatever m writes while matching is kept for the failure message.
func Match[T any](v T, m matcher.Matcher[T]) MatchCondition[T] {
	var why strings.Builder
	ok := m.MatchAndExplain(v, &why)
	return MatchCondition[T]{value: v, m: m, ok: ok, why: why.String()}
}

// Explain names the part of the source before the match marker, then the matcher's own
// description, then the value that was checked.
func (c MatchCondition[T]) Explain(source string) string {
	if c.ok {
		return ""
	}
	subject := strings.TrimSpace(source)
	if i := strings.Index(subject, matchMarker); i >= 0 {
		subject = strings.TrimSpace(subject[:i])
	}

	var b strings.Builder
	b.WriteString("  Expected: ")
	b.WriteString(subject)
	b.WriteString(" ")
	c.m.DescribeTo(&b)
	b.WriteString("\n  Argument was: ")
	b.WriteString(printer.Print(c.value))
	if c.why != "" {
		b.WriteString(", ")
		b.WriteString(c.why)
	}
	return b.String()
}
