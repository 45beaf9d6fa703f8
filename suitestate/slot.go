// Package suitestate holds the state block shared by the tests of one suite.
//
// A Slot is allocated once and reused for every run of its suite. The state is constructed
// when the suite starts and reset to the empty state when it ends, so tests of one run share
// a single instance at a stable address.
package suitestate

// SetUp is implemented by state types that need initialization beyond their zero value.
type SetUp interface {
	SetUp()
}

// TearDown is implemented by state types that hold resources to release when the suite ends.
type TearDown interface {
	TearDown()
}

// NoState is the state type of suites that do not declare one.
type NoState struct{}

// Slot stores zero or one live instance of S.
type Slot[S any] struct {
	state      S
	live       bool
	generation int
}

// Acquire returns the live state, constructing it first if the slot is empty. Construction
// zeroes the storage and calls SetUp when *S implements it. A panic from SetUp leaves the slot
// empty and propagates to the caller.
func (s *Slot[S]) Acquire() *S {
	if s.live {
		return &s.state
	}
	var zero S
	s.state = zero
	if h, ok := any(&s.state).(SetUp); ok {
		h.SetUp()
	}
	s.live = true
	s.generation++
	return &s.state
}

// Release destroys the live state: TearDown is called when *S implements it and the storage is
// reset to the zero value. Releasing an empty slot does nothing. The slot is empty afterward
// even if TearDown panics.
func (s *Slot[S]) Release() {
	if !s.live {
		return
	}
	defer func() {
		var zero S
		s.state = zero
		s.live = false
	}()
	if h, ok := any(&s.state).(TearDown); ok {
		h.TearDown()
	}
}

// Live reports whether the slot holds a constructed state.
func (s *Slot[S]) Live() bool {
	return s.live
}

// Generation counts how many times the state has been constructed.
func (s *Slot[S]) Generation() int {
	return s.generation
}
