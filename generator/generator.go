// Package generator provides a lazy, single-pass producer of values.
//
// A Generator runs a producer function as a suspended computation: nothing happens until the
// first call to Next, and each subsequent Next resumes the producer until it yields the next
// value, returns, or fails. A failure is reported by the Next call that resumed the producer
// into it, so a value yielded before the failure is always observed first.
//
// Generators are not safe for concurrent use; the consumer that owns one drives it.
package generator

import (
	"errors"
	"fmt"
	"iter"
	"runtime/debug"
)

// ErrExhausted is returned by Next once the generator has already reported its end, a
// failure, or was closed.
var ErrExhausted = errors.New("generator iterated past its end")

// PanicError is the failure reported when the producer panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("generator producer panicked: %v", e.Value)
}

// Unwrap returns the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Generator produces a finite sequence of values of type T.
type Generator[T any] struct {
	seq     iter.Seq[step[T]]
	next    func() (step[T], bool)
	stop    func()
	value   T
	pending bool
	done    bool
	err     error
}

type step[T any] struct {
	value T
	err   error
}

type stopSignal struct{}

// New returns a generator driven by produce. The producer calls yield once per value; it is
// suspended inside yield until the consumer asks for another value. An error returned by the
// producer, or a panic inside it, ends the sequence with a failure.
//
// If the consumer closes the generator early, the pending yield call unwinds the producer
// with a panic that the generator recovers, so deferred calls in the producer still run.
func New[T any](produce func(yield func(T)) error) *Generator[T] {
	g := &Generator[T]{}
	g.seq = func(yield func(step[T]) bool) {
		stopped := false
		err := run(produce, func(v T) {
			if !yield(step[T]{value: v}) {
				stopped = true
				panic(stopSignal{})
			}
		})
		if err != nil && !stopped {
			yield(step[T]{err: err})
		}
	}
	return g
}

func run[T any](produce func(yield func(T)) error, yield func(T)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(stopSignal); ok {
				err = nil
				return
			}
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return produce(yield)
}

// FromSlice returns a generator yielding the elements of vs in order.
func FromSlice[T any](vs []T) *Generator[T] {
	return New(func(yield func(T)) error {
		for _, v := range vs {
			yield(v)
		}
		return nil
	})
}

// Range returns a generator yielding start, start+1, ..., end-1.
func Range(start, end int) *Generator[int] {
	return New(func(yield func(int)) error {
		for i := start; i < end; i++ {
			yield(i)
		}
		return nil
	})
}

// Next resumes the producer. It returns true when a new value is pending, false with a nil
// error at the end of the sequence, or false with the producer's failure.
func (g *Generator[T]) Next() (bool, error) {
	if g.done {
		return false, ErrExhausted
	}
	if g.next == nil {
		g.next, g.stop = iter.Pull(g.seq)
	}
	var zero T
	g.value, g.pending = zero, false
	s, ok := g.next()
	if !ok {
		g.finish()
		return false, nil
	}
	if s.err != nil {
		g.err = s.err
		g.finish()
		return false, s.err
	}
	g.value, g.pending = s.value, true
	return true, nil
}

// Value moves the pending value out of the generator. It never resumes the producer; without
// a pending value it returns the zero value.
func (g *Generator[T]) Value() T {
	v := g.value
	var zero T
	g.value, g.pending = zero, false
	return v
}

// Pending reports whether a value is waiting to be read by Value.
func (g *Generator[T]) Pending() bool {
	return g.pending
}

// Err returns the failure reported by the producer, if any.
func (g *Generator[T]) Err() error {
	return g.err
}

// Close abandons the rest of the sequence and releases the producer. It is safe to call on a
// generator that has already finished.
func (g *Generator[T]) Close() {
	if g.done {
		return
	}
	var zero T
	g.value, g.pending = zero, false
	g.finish()
}

func (g *Generator[T]) finish() {
	g.done = true
	if g.stop != nil {
		g.stop()
	}
}

// Drain consumes the remaining values into a slice. On failure it returns the values
// produced so far along with the error.
func (g *Generator[T]) Drain() ([]T, error) {
	var out []T
	for {
		ok, err := g.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, g.Value())
	}
}

// Seq adapts the generator for use with range. Iteration ends early on failure; check Err
// afterward.
func (g *Generator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			ok, err := g.Next()
			if err != nil || !ok {
				return
			}
			if !yield(g.Value()) {
				g.Close()
				return
			}
		}
	}
}

// Source is implemented by every *Generator, whatever its element type, for consumers
// that handle values dynamically.
type Source interface {
	DrainAny() ([]any, error)
}

// DrainAny is Drain with the values boxed.
func (g *Generator[T]) DrainAny() ([]any, error) {
	vs, err := g.Drain()
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out, err
}
