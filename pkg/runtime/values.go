package runtime

import (
	"fmt"

	"github.com/Gejsi/qalo/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindBool
	KindString
	KindNull
	KindArray
	KindHash
	KindFunction
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindHash:
		return "hash"
	case KindFunction:
		return "function"
	case KindBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int32
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// HashValue maps string keys to values. Insertion order is not preserved.
type HashValue struct {
	Pairs map[string]Value
}

func (v *HashValue) Kind() Kind { return KindHash }

//-----------------------------------------------------------------------------
// Functions & builtins
//-----------------------------------------------------------------------------

// FunctionValue is a closure: a function literal paired with the environment
// it was created in. Closure is a shared reference, never a copy, so sibling
// closures and the defining scope observe the same live bindings.
type FunctionValue struct {
	Parameters []string
	Body       *ast.BlockStatement
	Closure    *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// BuiltinValue is the identity of a native operation. Dispatch happens in
// the interpreter's builtin table, keyed by Name.
type BuiltinValue struct {
	Name string
}

func (v BuiltinValue) Kind() Kind { return KindBuiltin }
