package interpreter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Gejsi/qalo/pkg/runtime"
)

type builtinFn func(i *Interpreter, args []runtime.Value) (runtime.Value, error)

// builtins is the fixed table of native operations. Names in this table take
// precedence over user bindings at call position.
var builtins = map[string]builtinFn{
	"len":     builtinLen,
	"append":  builtinAppend,
	"rest":    builtinRest,
	"print":   builtinPrint,
	"println": builtinPrintln,
}

func builtinLen(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len: wrong number of arguments: expected 1, got %d", len(args))
	}
	switch v := args[0].(type) {
	case runtime.StringValue:
		return runtime.IntegerValue{Val: int32(utf8.RuneCountInString(v.Val))}, nil
	case *runtime.ArrayValue:
		return runtime.IntegerValue{Val: int32(len(v.Elements))}, nil
	default:
		return nil, fmt.Errorf("len is not defined on %s", args[0].Kind())
	}
}

// builtinAppend returns a fresh array; the input array is never mutated.
func builtinAppend(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("append: wrong number of arguments: expected at least 1, got 0")
	}
	arr, ok := args[0].(*runtime.ArrayValue)
	if !ok {
		return nil, fmt.Errorf("append is not defined on %s", args[0].Kind())
	}
	elements := make([]runtime.Value, 0, len(arr.Elements)+len(args)-1)
	elements = append(elements, arr.Elements...)
	elements = append(elements, args[1:]...)
	return &runtime.ArrayValue{Elements: elements}, nil
}

// builtinRest returns a fresh array of everything after the first element.
// The rest of an empty array is an empty array.
func builtinRest(_ *Interpreter, args []runtime.Value) (runtime.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("rest: wrong number of arguments: expected 1, got %d", len(args))
	}
	arr, ok := args[0].(*runtime.ArrayValue)
	if !ok {
		return nil, fmt.Errorf("rest is not defined on %s", args[0].Kind())
	}
	if len(arr.Elements) == 0 {
		return &runtime.ArrayValue{Elements: []runtime.Value{}}, nil
	}
	elements := make([]runtime.Value, len(arr.Elements)-1)
	copy(elements, arr.Elements[1:])
	return &runtime.ArrayValue{Elements: elements}, nil
}

func builtinPrint(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprint(i.out, renderArguments(args))
	return runtime.NullValue{}, nil
}

func builtinPrintln(i *Interpreter, args []runtime.Value) (runtime.Value, error) {
	fmt.Fprintln(i.out, renderArguments(args))
	return runtime.NullValue{}, nil
}

func renderArguments(args []runtime.Value) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, Render(arg))
	}
	return strings.Join(parts, " ")
}
