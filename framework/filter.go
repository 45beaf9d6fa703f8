package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*RegexList)(nil)
	_ pflag.Value = (*GlobList)(nil)
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

// RegexList is a repeatable command line flag holding regular expressions.
type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r *RegexList) Type() string { return "regex" }

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// GlobList is a repeatable command line flag holding doublestar patterns matched against
// slash-separated test IDs, such as "arith/**" or "*/add*".
type GlobList struct {
	patterns []string
}

func (g GlobList) String() string {
	var ss []string
	for _, p := range g.patterns {
		ss = append(ss, `"`+p+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (g *GlobList) Set(value string) error {
	if !doublestar.ValidatePattern(value) {
		return fmt.Errorf("invalid glob: %q", value)
	}
	g.patterns = append(g.patterns, value)
	return nil
}

func (g *GlobList) Type() string { return "glob" }

func (g GlobList) IsDefined() bool {
	return len(g.patterns) != 0
}

func (g GlobList) AnyMatch(s string) bool {
	for _, p := range g.patterns {
		if ok, _ := doublestar.Match(p, s); ok {
			return true
		}
	}
	return false
}

// Filters combines regex and glob selection. A test runs if it passes the regex filters, and
// matches one of Globs when any are given, and matches none of SkipGlobs.
type Filters struct {
	Regex     RegexFilters
	Globs     GlobList
	SkipGlobs GlobList
}

func (f Filters) AsFilter(id TestID) bool {
	if !f.Regex.AsFilter(id) {
		return false
	}
	name := id.String()
	return (!f.Globs.IsDefined() || f.Globs.AnyMatch(name)) && !f.SkipGlobs.AnyMatch(name)
}

func (f Filters) IsDefined() bool {
	return f.Regex.MustMatch.IsDefined() || f.Regex.MustNotMatch.IsDefined() ||
		f.Globs.IsDefined() || f.SkipGlobs.IsDefined()
}

// PrintFilterDescription explains to w which tests the filters will leave out.
func PrintFilterDescription(w io.Writer, filters Filters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(w, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.Regex.MustMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any not matching %s\n", filters.Regex.MustMatch)
	}
	if filters.Regex.MustNotMatch.IsDefined() {
		fmt.Fprintf(w, "  skip any matching %s\n", filters.Regex.MustNotMatch)
	}
	if filters.Globs.IsDefined() {
		fmt.Fprintf(w, "  skip any not matching %s\n", filters.Globs)
	}
	if filters.SkipGlobs.IsDefined() {
		fmt.Fprintf(w, "  skip any matching %s\n", filters.SkipGlobs)
	}
	fmt.Fprintln(w)
}
