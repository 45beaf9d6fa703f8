package registrar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maud-build/maudtest/framework"
	"github.com/maud-build/maudtest/suitestate"
)

type lifecycle struct {
	trace *[]string
}

var lifecycleTrace []string

func (l *lifecycle) SetUp() {
	l.trace = &lifecycleTrace
	*l.trace = append(*l.trace, "construct")
}

func (l *lifecycle) TearDown() {
	*l.trace = append(*l.trace, "destroy")
}

func TestSuiteStateLifecycle(t *testing.T) {
	lifecycleTrace = nil
	r := framework.NewRegistry()
	s := NewSuiteIn[lifecycle](r, "stateful")
	var states []*lifecycle
	body := func(name string) Body {
		return func(*framework.Context, Parameter) {
			states = append(states, s.State())
			lifecycleTrace = append(lifecycleTrace, name)
		}
	}
	_, err := s.Register("a", body("a"))
	require.NoError(t, err)
	_, err = s.Register("b", body("b"), []int{1, 2})
	require.NoError(t, err)

	results := r.RunAll(nil, nil)

	require.True(t, results.OK())
	assert.Equal(t, []string{"construct", "a", "b", "b", "destroy"}, lifecycleTrace)
	require.Len(t, states, 3)
	assert.Same(t, states[0], states[2])
	assert.Equal(t, 1, s.Generation())

	r.RunAll(nil, nil)
	assert.Equal(t, 2, s.Generation())
}

func TestSuiteTestRecordsCallerLocation(t *testing.T) {
	r := framework.NewRegistry()
	s := NewSuiteIn[suitestate.NoState](r, "loc")
	infos := s.Test("here", func(*framework.Context, Parameter) {})
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0].File, "suite_test.go")
	assert.NotZero(t, infos[0].Line)
	assert.Equal(t, "loc", s.Name())
}

func TestSuiteTestPanicsOnRegistrationError(t *testing.T) {
	r := framework.NewRegistry()
	s := NewSuiteIn[suitestate.NoState](r, "dup")
	s.Test("t", func(*framework.Context, Parameter) {})
	assert.Panics(t, func() { s.Test("t", func(*framework.Context, Parameter) {}) })
}

func TestEach(t *testing.T) {
	r := framework.NewRegistry()
	s := NewSuiteIn[suitestate.NoState](r, "each")
	var got []string
	infos := Each(s, "word", func(_ *framework.Context, w string) {
		got = append(got, w)
	}, "x", "y")

	assert.Equal(t, []string{`word/0/"x"`, `word/1/"y"`}, names(infos))
	r.RunAll(nil, nil)
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestTypeMismatchFailsTheTest(t *testing.T) {
	r := framework.NewRegistry()
	s := NewSuiteIn[suitestate.NoState](r, "mismatch")
	s.Test("t", func(_ *framework.Context, p Parameter) { _ = As[string](p) }, 1)

	results := r.RunAll(nil, nil)
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic")
}
