package expect

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/maud-build/maudtest/printer"
)

const (
	opEq = "=="
	opNe = "!="
	opGt = ">"
	opGe = ">="
	opLt = "<"
	opLe = "<="
)

// Comparison is a binary comparison that cannot be extended into a chain.
type Comparison[T any] struct {
	lhs, rhs T
	op       string
	ok       bool
	fault    error
}

func (c Comparison[T]) Explain(source string) string {
	if c.ok {
		return ""
	}
	return withFault(explainBinary(source, c.op, printer.Print(c.lhs), printer.Print(c.rhs)), c.fault)
}

// Ne checks lhs != rhs. Interface operands holding values that cannot be compared make the
// check fail instead of panicking.
func Ne[T comparable](lhs, rhs T) Comparison[T] {
	eq, err := equal(lhs, rhs)
	return Comparison[T]{lhs: lhs, rhs: rhs, op: opNe, ok: err == nil && !eq, fault: err}
}

// Gt checks lhs > rhs.
func Gt[T cmp.Ordered](lhs, rhs T) Comparison[T] {
	return Comparison[T]{lhs: lhs, rhs: rhs, op: opGt, ok: lhs > rhs}
}

// Ge checks lhs >= rhs.
func Ge[T cmp.Ordered](lhs, rhs T) Comparison[T] {
	return Comparison[T]{lhs: lhs, rhs: rhs, op: opGe, ok: lhs >= rhs}
}

// Equality checks that two or more operands are all equal. Each operand is compared only with
// the one before it.
type Equality[T comparable] struct {
	operands []T
	ok       bool
	fault    error
}

// Eq checks lhs == rhs. The result can be extended with further operands. Interface operands
// holding values that cannot be compared, such as slices, make the check fail instead of
// panicking.
func Eq[T comparable](lhs, rhs T) Equality[T] {
	ok, err := equal(lhs, rhs)
	return Equality[T]{operands: []T{lhs, rhs}, ok: ok, fault: err}
}

// Eq adds another operand to the chain; it is compared only if the chain still holds.
func (e Equality[T]) Eq(next T) Equality[T] {
	ok, fault := false, e.fault
	if e.ok {
		ok, fault = equal(e.operands[len(e.operands)-1], next)
	}
	return Equality[T]{operands: append(slices.Clip(e.operands), next), ok: ok, fault: fault}
}

func (e Equality[T]) Explain(source string) string {
	if e.ok {
		return ""
	}
	if len(e.operands) == 2 {
		return withFault(explainBinary(source, opEq, printer.Print(e.operands[0]), printer.Print(e.operands[1])), e.fault)
	}
	return withFault(explainChain(source, e.operands), e.fault)
}

// equal is a == b with the run-time panic for uncomparable dynamic types turned into an
// error.
func equal[T comparable](a, b T) (eq bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			eq, err = false, fmt.Errorf("%v", r)
		}
	}()
	return a == b, nil
}

func withFault(message string, fault error) string {
	if fault == nil {
		return message
	}
	return message + "\n    which cannot be compared: " + fault.Error()
}

// Ascending checks a monotonic ordering chain such as a < b <= c.
type Ascending[T cmp.Ordered] struct {
	operands []T
	op       string
	ok       bool
}

// Lt checks lhs < rhs. The result can be extended with Lt and Le.
func Lt[T cmp.Ordered](lhs, rhs T) Ascending[T] {
	return Ascending[T]{operands: []T{lhs, rhs}, op: opLt, ok: lhs < rhs}
}

// Le checks lhs <= rhs. The result can be extended with Lt and Le.
func Le[T cmp.Ordered](lhs, rhs T) Ascending[T] {
	return Ascending[T]{operands: []T{lhs, rhs}, op: opLe, ok: lhs <= rhs}
}

// Lt adds an operand that must be strictly greater than the current last one.
func (a Ascending[T]) Lt(next T) Ascending[T] {
	return a.extend(next, func(tail T) bool { return tail < next })
}

// Le adds an operand that must not be less than the current last one.
func (a Ascending[T]) Le(next T) Ascending[T] {
	return a.extend(next, func(tail T) bool { return tail <= next })
}

func (a Ascending[T]) extend(next T, holds func(tail T) bool) Ascending[T] {
	ok := a.ok && holds(a.operands[len(a.operands)-1])
	return Ascending[T]{operands: append(slices.Clip(a.operands), next), op: a.op, ok: ok}
}

func (a Ascending[T]) Explain(source string) string {
	if a.ok {
		return ""
	}
	if len(a.operands) == 2 {
		return explainBinary(source, a.op, printer.Print(a.operands[0]), printer.Print(a.operands[1]))
	}
	return explainChain(source, a.operands)
}

// explainBinary lines up the " vs " separator of the second line under the operator in the
// source text. Whichever line would start too far left is padded:
//
//	Expected: 2 + 2 == 5           Expected:     x == 5
//	  Actual:     4 vs 5             Actual: 12345 vs 5
//
// The operator is located by plain substring search, so an earlier occurrence of the same
// symbols in the left operand shifts the alignment.
func explainBinary(source, op, lhs, rhs string) string {
	offset := 0
	if i := strings.Index(source, op); i >= 0 && source != UnknownSource {
		offset = i - len(lhs) - 1
	}

	var b strings.Builder
	b.WriteString("Expected: ")
	if offset < 0 {
		b.WriteString(strings.Repeat(" ", -offset))
	}
	b.WriteString(source)
	b.WriteString("\n  Actual: ")
	if offset > 0 {
		b.WriteString(strings.Repeat(" ", offset))
	}
	b.WriteString(lhs)
	b.WriteString(" vs ")
	b.WriteString(rhs)
	return b.String()
}

func explainChain[T any](source string, operands []T) string {
	printed := make([]string, len(operands))
	for i, v := range operands {
		printed[i] = printer.Print(v)
	}
	return "Expected: " + source + "\n  Actual: " + strings.Join(printed, " vs ")
}
