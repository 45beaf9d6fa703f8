package matcher

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/maud-build/maudtest/printer"
)

// Eq matches values equal to want according to cmp.Equal. On a mismatch the explanation is
// the cmp.Diff between want and the value (-want +got).
func Eq[T any](want T, opts ...cmp.Option) Matcher[T] {
	return Func[T]{
		Match: func(v T, why io.Writer) bool {
			if cmp.Equal(want, v, opts...) {
				return true
			}
			if diff := cmp.Diff(want, v, opts...); diff != "" {
				fmt.Fprintf(why, "which differs (-want +got):\n%s", diff)
			}
			return false
		},
		Describe: func(w io.Writer) {
			fmt.Fprintf(w, "is equal to %s", printer.Print(want))
		},
		DescribeNegation: func(w io.Writer) {
			fmt.Fprintf(w, "isn't equal to %s", printer.Print(want))
		},
	}
}

func stringMatcher(verb, negated, operand string, match func(s string) bool) Matcher[string] {
	return Func[string]{
		Match: func(s string, _ io.Writer) bool { return match(s) },
		Describe: func(w io.Writer) {
			fmt.Fprintf(w, "%s %s", verb, printer.Print(operand))
		},
		DescribeNegation: func(w io.Writer) {
			fmt.Fprintf(w, "%s %s", negated, printer.Print(operand))
		},
	}
}

// HasSubstr matches strings containing sub.
func HasSubstr(sub string) Matcher[string] {
	return stringMatcher("has substring", "has no substring", sub,
		func(s string) bool { return strings.Contains(s, sub) })
}

// StartsWith matches strings beginning with prefix.
func StartsWith(prefix string) Matcher[string] {
	return stringMatcher("starts with", "doesn't start with", prefix,
		func(s string) bool { return strings.HasPrefix(s, prefix) })
}

// EndsWith matches strings ending with suffix.
func EndsWith(suffix string) Matcher[string] {
	return stringMatcher("ends with", "doesn't end with", suffix,
		func(s string) bool { return strings.HasSuffix(s, suffix) })
}

// Contains matches slices having at least one element equal to elem.
func Contains[T comparable](elem T) Matcher[[]T] {
	return Func[[]T]{
		Match: func(vs []T, why io.Writer) bool {
			for _, v := range vs {
				if v == elem {
					return true
				}
			}
			if len(vs) == 0 {
				io.WriteString(why, "which is empty")
			}
			return false
		},
		Describe: func(w io.Writer) {
			fmt.Fprintf(w, "contains at least one element that is equal to %s", printer.Print(elem))
		},
		DescribeNegation: func(w io.Writer) {
			fmt.Fprintf(w, "doesn't contain any element that is equal to %s", printer.Print(elem))
		},
	}
}

// FloatNear matches numbers within maxAbsError of want. NaN never matches.
func FloatNear(want, maxAbsError float64) Matcher[float64] {
	return Func[float64]{
		Match: func(v float64, why io.Writer) bool {
			diff := math.Abs(v - want)
			if diff <= maxAbsError {
				return true
			}
			if !math.IsNaN(diff) {
				fmt.Fprintf(why, "which is %v from %v", diff, want)
			}
			return false
		},
		Describe: func(w io.Writer) {
			fmt.Fprintf(w, "is approximately %v (absolute error <= %v)", want, maxAbsError)
		},
		DescribeNegation: func(w io.Writer) {
			fmt.Fprintf(w, "isn't approximately %v (absolute error > %v)", want, maxAbsError)
		},
	}
}

// Not inverts m.
func Not[T any](m Matcher[T]) Matcher[T] {
	return Func[T]{
		Match: func(v T, why io.Writer) bool {
			return !m.MatchAndExplain(v, why)
		},
		Describe:         m.DescribeNegationTo,
		DescribeNegation: m.DescribeTo,
	}
}

// AllOf matches when every one of ms matches. The explanation comes from the first matcher
// that failed.
func AllOf[T any](ms ...Matcher[T]) Matcher[T] {
	return Func[T]{
		Match: func(v T, why io.Writer) bool {
			for _, m := range ms {
				if !m.MatchAndExplain(v, why) {
					return false
				}
			}
			return true
		},
		Describe: func(w io.Writer) {
			joinDescriptions(w, ms, " and ", describe[T])
		},
		DescribeNegation: func(w io.Writer) {
			joinDescriptions(w, ms, " or ", describeNegation[T])
		},
	}
}

// AnyOf matches when at least one of ms matches.
func AnyOf[T any](ms ...Matcher[T]) Matcher[T] {
	return Func[T]{
		Match: func(v T, why io.Writer) bool {
			for _, m := range ms {
				if m.MatchAndExplain(v, io.Discard) {
					return true
				}
			}
			return false
		},
		Describe: func(w io.Writer) {
			joinDescriptions(w, ms, " or ", describe[T])
		},
		DescribeNegation: func(w io.Writer) {
			joinDescriptions(w, ms, " and ", describeNegation[T])
		},
	}
}

func joinDescriptions[T any](w io.Writer, ms []Matcher[T], sep string, describe func(Matcher[T], io.Writer)) {
	for i, m := range ms {
		if i > 0 {
			io.WriteString(w, sep)
		}
		io.WriteString(w, "(")
		describe(m, w)
		io.WriteString(w, ")")
	}
}

func describe[T any](m Matcher[T], w io.Writer) { m.DescribeTo(w) }

func describeNegation[T any](m Matcher[T], w io.Writer) { m.DescribeNegationTo(w) }
