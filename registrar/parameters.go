package registrar

import (
	"errors"
	"fmt"
	"iter"
	"reflect"

	"github.com/maud-build/maudtest/generator"
	"github.com/maud-build/maudtest/printer"
)

// ErrNotSequence is returned when a parameter function's result cannot be iterated.
var ErrNotSequence = errors.New("parameter function did not return a sequence")

type shape int

const (
	shapeNone shape = iota
	shapeSingle
	shapeSequence
	shapeTuple
)

// ParameterSet describes the parameters a test is instantiated with.
type ParameterSet struct {
	shape   shape
	values  []any
	produce func() ([]any, error)
}

// None yields one instance without a parameter.
func None() ParameterSet {
	return ParameterSet{shape: shapeNone}
}

// Single yields one instance bound to v.
func Single(v any) ParameterSet {
	return ParameterSet{shape: shapeSingle, values: []any{v}}
}

// Values yields one numbered instance per value.
func Values[T any](vs ...T) ParameterSet {
	return ParameterSet{shape: shapeSequence, values: boxed(vs)}
}

// FromSeq yields one numbered instance per value of seq. seq is consumed once, at
// registration.
func FromSeq[T any](seq iter.Seq[T]) ParameterSet {
	return ParameterSet{shape: shapeSequence, produce: func() ([]any, error) {
		var out []any
		for v := range seq {
			out = append(out, v)
		}
		return out, nil
	}}
}

// FromGenerator yields one numbered instance per value produced by g. A failure of the
// producer fails the registration.
func FromGenerator(g generator.Source) ParameterSet {
	return ParameterSet{shape: shapeSequence, produce: g.DrainAny}
}

// Lazy is FromGenerator for a generator that is only created at registration.
func Lazy[T any](newGenerator func() *generator.Generator[T]) ParameterSet {
	return ParameterSet{shape: shapeSequence, produce: func() ([]any, error) {
		return newGenerator().DrainAny()
	}}
}

// Tuple yields one numbered instance per value, each tagged with the value's type name.
func Tuple(vs ...any) ParameterSet {
	return ParameterSet{shape: shapeTuple, values: vs}
}

func boxed[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

// Parameter is the value one test instance is bound to.
type Parameter struct {
	// Index is the position of the value in its set, or -1 for unnumbered instances.
	Index    int
	TypeName string
	Printed  string
	Value    any
	// Present is false for instances registered without a parameter.
	Present bool
}

// As returns the parameter's value as a T. It panics if the value has another type, which
// the runner reports as a failure of the test.
func As[T any](p Parameter) T {
	if p.Value == nil {
		var zero T
		return zero
	}
	return p.Value.(T)
}

func (p Parameter) String() string {
	if !p.Present {
		return "<none>"
	}
	return p.Printed
}

// resolve turns the arguments given at registration into a ParameterSet.
func resolve(args []any) (ParameterSet, error) {
	switch len(args) {
	case 0:
		return None(), nil
	case 1:
		return resolveOne(args[0])
	default:
		return Tuple(args...), nil
	}
}

func resolveOne(arg any) (ParameterSet, error) {
	if set, ok := arg.(ParameterSet); ok {
		return set, nil
	}
	if rv := reflect.ValueOf(arg); isParameterFunc(rv) {
		return ParameterSet{shape: shapeSequence, produce: func() ([]any, error) {
			out := rv.Call(nil)
			if len(out) == 2 && !out[1].IsNil() {
				return nil, out[1].Interface().(error)
			}
			set, ok := sequenceOf(out[0].Interface())
			if !ok {
				return nil, fmt.Errorf("%w: got %s", ErrNotSequence, printer.TypeName(out[0].Interface()))
			}
			return set.materialize()
		}}, nil
	}
	if set, ok := sequenceOf(arg); ok {
		return set, nil
	}
	return Single(arg), nil
}

var errorType = reflect.TypeFor[error]()

// isParameterFunc reports whether rv is a function taking no arguments and returning a
// sequence, optionally with an error.
func isParameterFunc(rv reflect.Value) bool {
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return false
	}
	t := rv.Type()
	if t.NumIn() != 0 {
		return false
	}
	return t.NumOut() == 1 || (t.NumOut() == 2 && t.Out(1) == errorType)
}

// sequenceOf recognizes the iterable kinds of values: slices and arrays, iter.Seq functions
// and generators. Strings, byte slices and maps are not sequences.
func sequenceOf(v any) (ParameterSet, bool) {
	switch v := v.(type) {
	case nil, string, []byte:
		return ParameterSet{}, false
	case generator.Source:
		return FromGenerator(v), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return ParameterSet{shape: shapeSequence, values: out}, true
	case reflect.Func:
		if isSeq(rv.Type()) && !rv.IsNil() {
			return ParameterSet{shape: shapeSequence, produce: func() ([]any, error) {
				return collectSeq(rv), nil
			}}, true
		}
	}
	return ParameterSet{}, false
}

// isSeq matches func(yield func(T) bool), the shape of iter.Seq[T].
func isSeq(t reflect.Type) bool {
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func && yield.NumIn() == 1 &&
		yield.NumOut() == 1 && yield.Out(0).Kind() == reflect.Bool
}

func collectSeq(seq reflect.Value) []any {
	var out []any
	yield := reflect.MakeFunc(seq.Type().In(0), func(args []reflect.Value) []reflect.Value {
		out = append(out, args[0].Interface())
		return []reflect.Value{reflect.ValueOf(true)}
	})
	seq.Call([]reflect.Value{yield})
	return out
}

func (s ParameterSet) materialize() ([]any, error) {
	if s.produce != nil {
		return s.produce()
	}
	return s.values, nil
}

// parameters binds each value of the set to its Parameter.
func (s ParameterSet) parameters() ([]Parameter, error) {
	if s.shape == shapeNone {
		return []Parameter{{Index: -1}}, nil
	}
	values, err := s.materialize()
	if err != nil {
		return nil, err
	}
	ps := make([]Parameter, len(values))
	for i, v := range values {
		p := Parameter{Index: i, Printed: printer.Print(v), Value: v, Present: true}
		switch s.shape {
		case shapeSingle:
			p.Index = -1
		case shapeTuple:
			p.TypeName = printer.TypeName(v)
		}
		ps[i] = p
	}
	return ps, nil
}

// instanceName follows test[/index][/type][/printed].
func instanceName(test string, p Parameter) string {
	name := test
	if p.Index >= 0 {
		name += fmt.Sprintf("/%d", p.Index)
	}
	if p.TypeName != "" {
		name += "/" + p.TypeName
	}
	if p.Present {
		name += "/" + p.Printed
	}
	return name
}
