// Package printer turns arbitrary values into the debug text used in test names and failure
// messages.
package printer

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

var composite = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Print returns the debug representation of v.
//
// Strings are quoted so that an empty or whitespace-only value is still visible; errors and
// fmt.Stringer implementations use their own methods.
func Print(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case []byte:
		if x == nil {
			return "nil"
		}
		return strconv.Quote(string(x))
	case bool:
		return strconv.FormatBool(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return "nil"
		}
	}
	switch x := v.(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return fmt.Sprint(x)
	}
	return composite.Sprintf("%v", v)
}

// TypeName returns the name of v's dynamic type. A few spellings that differ from how the
// type is usually written are replaced, so names derived from them stay readable.
func TypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return typeName(reflect.TypeOf(v))
}

// TypeNameOf is TypeName for a static type parameter, which also works for interface types.
func TypeNameOf[T any]() string {
	return typeName(reflect.TypeOf((*T)(nil)).Elem())
}

var wellKnown = map[string]string{
	"[]uint8":        "[]byte",
	"interface {}":   "any",
	"[]interface {}": "[]any",
}

func typeName(t reflect.Type) string {
	s := t.String()
	if name, ok := wellKnown[s]; ok {
		return name
	}
	return s
}
