package main

import (
	"strings"

	"github.com/maud-build/maudtest/expect"
	"github.com/maud-build/maudtest/framework"
	"github.com/maud-build/maudtest/generator"
	"github.com/maud-build/maudtest/matcher"
	"github.com/maud-build/maudtest/registrar"
	"github.com/maud-build/maudtest/suitestate"
)

// calculator is the shared state of the arith suite. It counts the operations performed by
// all tests of one run.
type calculator struct {
	ops int
}

func (c *calculator) SetUp() {
	c.ops = 0
}

func (c *calculator) Add(a, b int) int {
	c.ops++
	return a + b
}

func (c *calculator) Mul(a, b int) int {
	c.ops++
	return a * b
}

var arith = registrar.NewSuite[calculator]("arith")

var _ = arith.Test("add_identity", func(t *framework.Context, p registrar.Parameter) {
	n := registrar.As[int](p)
	expect.Check(t, expect.Eq(arith.State().Add(n, 0), n))
}, []int{0, 1, -7, 1 << 20})

var _ = registrar.Each(arith, "mul_ordering", func(t *framework.Context, n int) {
	calc := arith.State()
	expect.Check(t, expect.Le(n, calc.Mul(n, 2)).Lt(calc.Mul(n, 3)+1))
}, 1, 2, 3)

var _ = arith.Test("ops_are_shared", func(t *framework.Context, _ registrar.Parameter) {
	t.Debug("operations so far: %d", arith.State().ops)
	expect.True(t, arith.State().ops > 0)
})

var shapes = registrar.NewSuite[suitestate.NoState]("params")

var _ = shapes.Test("none", func(t *framework.Context, p registrar.Parameter) {
	expect.True(t, !p.Present)
})

var _ = shapes.Test("single", func(t *framework.Context, p registrar.Parameter) {
	expect.Check(t, expect.Match(registrar.As[string](p), matcher.HasSubstr("maud")))
}, "hello maud")

var _ = shapes.Test("tuple", func(t *framework.Context, p registrar.Parameter) {
	expect.Check(t, expect.Ne(p.TypeName, ""))
	expect.Check(t, expect.Eq(p.Value == nil, false))
}, 42, "forty-two", 42.0)

var _ = shapes.Test("squares", func(t *framework.Context, p registrar.Parameter) {
	n := registrar.As[int](p)
	expect.Check(t, expect.Ge(n*n, n))
}, generator.New(func(yield func(int)) error {
	for i := 1; i <= 4; i++ {
		yield(i * i)
	}
	return nil
}))

var _ = shapes.Test("words", func(t *framework.Context, p registrar.Parameter) {
	w := registrar.As[string](p)
	expect.Check(t, expect.Eq(strings.ToLower(w), w), expect.Note("word %q", w))
}, registrar.Lazy(func() *generator.Generator[string] {
	return generator.FromSlice(strings.Fields("lazy sequences feed registration"))
}))
