package expect

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/maud-build/maudtest/matcher"
)

func TestDiagnosticsGolden(t *testing.T) {
	messages := []string{
		Eq(2+2, 5).Explain("2 + 2 == 5"),
		Eq(12345, 5).Explain("x == 5"),
		Lt(1, 3).Lt(2).Explain("1 < 3 < 2"),
		Cond(false).Explain("not done"),
		Cond(0).Explain("count"),
		Match("alice", matcher.HasSubstr("bob")).Explain(`name >>= HasSubstr("bob")`),
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "diagnostics", []byte(strings.Join(messages, "\n\n")+"\n"))
}
