package framework

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(path ...string) TestID { return TestID{Path: path} }

func TestRegexFilters(t *testing.T) {
	var f RegexFilters
	require.NoError(t, f.MustMatch.Set("^arith/"))
	require.NoError(t, f.MustNotMatch.Set("slow"))

	assert.True(t, f.AsFilter(id("arith", "add")))
	assert.False(t, f.AsFilter(id("arith", "slow_add")))
	assert.False(t, f.AsFilter(id("params", "single")))
	assert.Equal(t, `"^arith/"`, f.MustMatch.String())

	assert.Error(t, f.MustMatch.Set("(unclosed"))
}

func TestGlobFilters(t *testing.T) {
	var f Filters
	require.NoError(t, f.Globs.Set("params/**"))
	require.NoError(t, f.SkipGlobs.Set("*/*/1/*"))

	assert.True(t, f.AsFilter(id("params", "values/0/1")))
	assert.False(t, f.AsFilter(id("params", "values/1/2")))
	assert.False(t, f.AsFilter(id("arith", "add")))
	assert.Error(t, f.Globs.Set("[unclosed"))
	assert.Equal(t, "glob", f.Globs.Type())
	assert.Equal(t, "regex", f.Regex.MustMatch.Type())
}

func TestPrintFilterDescription(t *testing.T) {
	var b strings.Builder
	PrintFilterDescription(&b, Filters{})
	assert.Empty(t, b.String())

	var f Filters
	require.NoError(t, f.Regex.MustNotMatch.Set("slow"))
	require.NoError(t, f.Globs.Set("arith/**"))
	PrintFilterDescription(&b, f)
	assert.Equal(t, "Some tests will be skipped based on the filter criteria for this test run:\n"+
		"  skip any matching \"slow\"\n"+
		"  skip any not matching \"arith/**\"\n\n", b.String())
}
