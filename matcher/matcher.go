// Package matcher defines the contract a predicate must satisfy to be used in match-based
// expectations, along with an adapter for ad hoc matchers and a handful of common predicates.
package matcher

import (
	"io"
	"strings"
)

// Matcher is a predicate over values of type T that can describe itself.
//
// MatchAndExplain reports whether v matches. It may write to why an explanation of the
// outcome; writing nothing is fine when the description already says everything.
type Matcher[T any] interface {
	MatchAndExplain(v T, why io.Writer) bool
	DescribeTo(w io.Writer)
	DescribeNegationTo(w io.Writer)
}

// Func lifts three plain functions into a Matcher.
//
//	notEmpty := matcher.Func[string]{
//		Match:            func(s string, _ io.Writer) bool { return s != "" },
//		Describe:         func(w io.Writer) { io.WriteString(w, "is not empty") },
//		DescribeNegation: func(w io.Writer) { io.WriteString(w, "is empty") },
//	}
type Func[T any] struct {
	Match            func(v T, why io.Writer) bool
	Describe         func(w io.Writer)
	DescribeNegation func(w io.Writer)
}

func (f Func[T]) MatchAndExplain(v T, why io.Writer) bool { return f.Match(v, why) }

func (f Func[T]) DescribeTo(w io.Writer) { f.Describe(w) }

// DescribeNegationTo falls back to "not (<description>)" when no negation was given.
func (f Func[T]) DescribeNegationTo(w io.Writer) {
	if f.DescribeNegation != nil {
		f.DescribeNegation(w)
		return
	}
	io.WriteString(w, "not (")
	f.Describe(w)
	io.WriteString(w, ")")
}

// Describe returns the description of m.
func Describe[T any](m Matcher[T]) string {
	var b strings.Builder
	m.DescribeTo(&b)
	return b.String()
}

// DescribeNegation returns the negated description of m.
func DescribeNegation[T any](m Matcher[T]) string {
	var b strings.Builder
	m.DescribeNegationTo(&b)
	return b.String()
}

// Explain runs m against v and returns the outcome with whatever explanation m wrote.
func Explain[T any](m Matcher[T], v T) (bool, string) {
	var b strings.Builder
	ok := m.MatchAndExplain(v, &b)
	return ok, b.String()
}
