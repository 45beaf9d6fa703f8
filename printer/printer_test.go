package printer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type celsius float64

func (c celsius) String() string { return "warm" }

type point struct{ X, Y int }

func TestPrintScalars(t *testing.T) {
	assert.Equal(t, "nil", Print(nil))
	assert.Equal(t, "1", Print(1))
	assert.Equal(t, "-7", Print(int64(-7)))
	assert.Equal(t, "2.5", Print(2.5))
	assert.Equal(t, "true", Print(true))
	assert.Equal(t, `"abc"`, Print("abc"))
	assert.Equal(t, `""`, Print(""))
	assert.Equal(t, `"a\nb"`, Print("a\nb"))
	assert.Equal(t, `"xyz"`, Print([]byte("xyz")))
}

func TestPrintUsesMethods(t *testing.T) {
	assert.Equal(t, "warm", Print(celsius(30)))
	assert.Equal(t, "boom", Print(errors.New("boom")))
}

func TestPrintNilReferences(t *testing.T) {
	var p *point
	var s []int
	var m map[string]int
	assert.Equal(t, "nil", Print(p))
	assert.Equal(t, "nil", Print(s))
	assert.Equal(t, "nil", Print(m))
	assert.Equal(t, "nil", Print([]byte(nil)))
}

func TestPrintComposite(t *testing.T) {
	assert.Contains(t, Print(point{1, 2}), "1")
	assert.Contains(t, Print(point{1, 2}), "2")
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "int", TypeName(1))
	assert.Equal(t, "string", TypeName("x"))
	assert.Equal(t, "[]byte", TypeName([]byte("x")))
	assert.Equal(t, "printer.point", TypeName(point{}))
	assert.Equal(t, "*printer.point", TypeName(&point{}))
	assert.Equal(t, "<nil>", TypeName(nil))
	assert.Equal(t, "[]any", TypeName([]any{}))
	assert.Equal(t, "any", TypeNameOf[any]())
	assert.Equal(t, "error", TypeNameOf[error]())
}
