// Package framework is a small host test runner that can be used outside of "go test".
//
// The general model is:
//
// 1. Tests are registered with a Registry, usually during package initialization. Each test
// belongs to a suite and is described by a TestInfo; the suite's hooks run around its tests.
//
// 2. RunAll executes the selected tests one at a time. There is a notion of a test context
// which is similar to Go's *testing.T, allowing pieces of test logic to be associated with a
// test identifier and to accumulate success/failure results.
//
// 3. Progress is reported through a TestLogger, and the outcome is returned as Results.
//
// RunGoTest runs the same registry under Go's own test runner instead.
package framework
