// Package interpreter walks Qalo ASTs and produces runtime values.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/Gejsi/qalo/pkg/ast"
	"github.com/Gejsi/qalo/pkg/runtime"
)

// maxCallDepth bounds user-level recursion so runaway programs fail with a
// reportable error instead of exhausting the host stack.
const maxCallDepth = 5000

// Interpreter drives evaluation of Qalo AST nodes.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
	depth  int
}

// New returns an interpreter with an empty global environment. Built-in
// print output goes to os.Stdout unless redirected with SetOutput.
func New() *Interpreter {
	return &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    os.Stdout,
	}
}

// SetOutput redirects the output stream used by print and println.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// EvaluateProgram executes a program's statements in order against the
// global environment and returns the last evaluated value. A return at the
// top level is an error: there is no function boundary to absorb it.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	var last runtime.Value = runtime.NullValue{}
	for _, stmt := range program.Statements {
		val, err := i.evaluateStatement(stmt, i.global)
		if err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil, fmt.Errorf("return outside function")
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return i.evaluateExpression(n.Expression, env)
	case *ast.LetStatement:
		return i.evaluateLetStatement(n, env)
	case *ast.AssignStatement:
		return i.evaluateAssignStatement(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.BlockStatement:
		return i.evaluateBlock(n, env)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// evaluateBlock runs the block's statements in a fresh child scope. The
// block's value is the value of its final expression statement; a block that
// is empty or ends in any other statement kind evaluates to null.
func (i *Interpreter) evaluateBlock(block *ast.BlockStatement, env *runtime.Environment) (runtime.Value, error) {
	scope := env.Extend()
	var result runtime.Value = runtime.NullValue{}
	for _, stmt := range block.Statements {
		val, err := i.evaluateStatement(stmt, scope)
		if err != nil {
			return nil, err
		}
		if _, ok := stmt.(*ast.ExpressionStatement); ok {
			result = val
		} else {
			result = runtime.NullValue{}
		}
	}
	return result, nil
}

// evaluateLetStatement introduces or shadows a binding in the current
// frame, never mutating an outer one.
func (i *Interpreter) evaluateLetStatement(stmt *ast.LetStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	env.Define(stmt.Name, val)
	return runtime.NullValue{}, nil
}

// evaluateAssignStatement rebinds the nearest enclosing frame that already
// defines the name; assigning a name no frame defines is an error.
func (i *Interpreter) evaluateAssignStatement(stmt *ast.AssignStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(stmt.Name, val); err != nil {
		return nil, err
	}
	return runtime.NullValue{}, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluateExpression(stmt.Value, env)
	if err != nil {
		return nil, err
	}
	return nil, returnSignal{value: val}
}

// returnSignal propagates a return value outward through statement
// evaluation as an error variant. Every evaluation step re-propagates it
// untouched; invokeFunction absorbs it at the call boundary.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
