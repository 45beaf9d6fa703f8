// Package expect evaluates conditions inside tests and, when they fail, derives a readable
// explanation from the source text of the condition.
//
// Each check is built from an evaluated value plus the literal text the author wrote:
//
//	expect.That(t, "2 + 2 == 5", expect.Eq(2+2, 5))
//
// fails with
//
//	Expected: 2 + 2 == 5
//	  Actual:     4 vs 5
//
// The outcome of a check is decided once, when the builder (Cond, Eq, Lt, Match, ...) is
// called. Printing of operands happens only on the failure path.
//
// True and Check read the source text from the calling file instead of taking it as an
// argument; builder calls are shown in operator form, so expect.Check(t, expect.Lt(a, b).Lt(c))
// is reported as "a < b < c".
//
// Failures are non-fatal. A test target implementing ReportFailureAt receives the location of
// the check explicitly; any other assert.TestingT gets an Errorf call.
package expect
