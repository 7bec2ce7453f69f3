package interpreter

import (
	"fmt"

	"github.com/Gejsi/qalo/pkg/ast"
	"github.com/Gejsi/qalo/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: n.Value}, nil
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.Identifier:
		return i.evaluateIdentifier(n, env)
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n, env)
	case *ast.HashLiteral:
		return i.evaluateHashLiteral(n, env)
	case *ast.FunctionLiteral:
		// The closure captures the current environment by reference, so
		// later rebinds in the defining scope stay observable.
		return &runtime.FunctionValue{Parameters: n.Parameters, Body: n.Body, Closure: env}, nil
	case *ast.PrefixExpression:
		return i.evaluatePrefixExpression(n, env)
	case *ast.InfixExpression:
		return i.evaluateInfixExpression(n, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.CallExpression:
		return i.evaluateCallExpression(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

// evaluateIdentifier resolves through the scope chain first and falls back
// to the builtin table, so builtins remain reachable as plain values.
func (i *Interpreter) evaluateIdentifier(node *ast.Identifier, env *runtime.Environment) (runtime.Value, error) {
	if val, err := env.Get(node.Name); err == nil {
		return val, nil
	}
	if _, ok := builtins[node.Name]; ok {
		return runtime.BuiltinValue{Name: node.Name}, nil
	}
	return nil, fmt.Errorf("undefined variable %q", node.Name)
}

func (i *Interpreter) evaluateArrayLiteral(node *ast.ArrayLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements := make([]runtime.Value, 0, len(node.Elements))
	for _, el := range node.Elements {
		val, err := i.evaluateExpression(el, env)
		if err != nil {
			return nil, err
		}
		elements = append(elements, val)
	}
	return &runtime.ArrayValue{Elements: elements}, nil
}

func (i *Interpreter) evaluateHashLiteral(node *ast.HashLiteral, env *runtime.Environment) (runtime.Value, error) {
	pairs := make(map[string]runtime.Value, len(node.Pairs))
	for _, pair := range node.Pairs {
		key, err := i.evaluateExpression(pair.Key, env)
		if err != nil {
			return nil, err
		}
		str, ok := key.(runtime.StringValue)
		if !ok {
			return nil, fmt.Errorf("hash keys must be strings, got %s", key.Kind())
		}
		val, err := i.evaluateExpression(pair.Value, env)
		if err != nil {
			return nil, err
		}
		pairs[str.Val] = val
	}
	return &runtime.HashValue{Pairs: pairs}, nil
}

func (i *Interpreter) evaluatePrefixExpression(node *ast.PrefixExpression, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluateExpression(node.Operand, env)
	if err != nil {
		return nil, err
	}

	switch node.Operator {
	case "!":
		switch v := operand.(type) {
		case runtime.BoolValue:
			return runtime.BoolValue{Val: !v.Val}, nil
		case runtime.IntegerValue:
			// !n is a zero test.
			return runtime.BoolValue{Val: v.Val == 0}, nil
		default:
			return nil, fmt.Errorf("operator ! is not defined on %s", operand.Kind())
		}
	case "-":
		v, ok := operand.(runtime.IntegerValue)
		if !ok {
			return nil, fmt.Errorf("operator - is not defined on %s", operand.Kind())
		}
		return runtime.IntegerValue{Val: -v.Val}, nil
	default:
		return nil, fmt.Errorf("unknown prefix operator %q", node.Operator)
	}
}

func (i *Interpreter) evaluateInfixExpression(node *ast.InfixExpression, env *runtime.Environment) (runtime.Value, error) {
	// && and || short-circuit: the right operand is only evaluated when the
	// left one does not decide the result.
	if node.Operator == "&&" || node.Operator == "||" {
		return i.evaluateLogicalExpression(node, env)
	}

	left, err := i.evaluateExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(node.Right, env)
	if err != nil {
		return nil, err
	}

	switch l := left.(type) {
	case runtime.IntegerValue:
		if r, ok := right.(runtime.IntegerValue); ok {
			return integerInfix(node.Operator, l.Val, r.Val)
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return stringInfix(node.Operator, l.Val, r.Val)
		}
	case runtime.BoolValue:
		if r, ok := right.(runtime.BoolValue); ok {
			return boolInfix(node.Operator, l.Val, r.Val)
		}
	}
	return nil, fmt.Errorf("operator %s is not defined on %s and %s", node.Operator, left.Kind(), right.Kind())
}

func (i *Interpreter) evaluateLogicalExpression(node *ast.InfixExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	l, ok := left.(runtime.BoolValue)
	if !ok {
		return nil, fmt.Errorf("operator %s is not defined on %s", node.Operator, left.Kind())
	}
	if node.Operator == "&&" && !l.Val {
		return runtime.BoolValue{Val: false}, nil
	}
	if node.Operator == "||" && l.Val {
		return runtime.BoolValue{Val: true}, nil
	}

	right, err := i.evaluateExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	r, ok := right.(runtime.BoolValue)
	if !ok {
		return nil, fmt.Errorf("operator %s is not defined on %s", node.Operator, right.Kind())
	}
	return runtime.BoolValue{Val: r.Val}, nil
}

func integerInfix(operator string, left, right int32) (runtime.Value, error) {
	switch operator {
	case "+":
		return runtime.IntegerValue{Val: left + right}, nil
	case "-":
		return runtime.IntegerValue{Val: left - right}, nil
	case "*":
		return runtime.IntegerValue{Val: left * right}, nil
	case "/":
		if right == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return runtime.IntegerValue{Val: left / right}, nil
	case "%":
		if right == 0 {
			return nil, fmt.Errorf("modulus by zero")
		}
		return runtime.IntegerValue{Val: left % right}, nil
	case "<":
		return runtime.BoolValue{Val: left < right}, nil
	case ">":
		return runtime.BoolValue{Val: left > right}, nil
	case "<=":
		return runtime.BoolValue{Val: left <= right}, nil
	case ">=":
		return runtime.BoolValue{Val: left >= right}, nil
	case "==":
		return runtime.BoolValue{Val: left == right}, nil
	case "!=":
		return runtime.BoolValue{Val: left != right}, nil
	default:
		return nil, fmt.Errorf("operator %s is not defined on integers", operator)
	}
}

func stringInfix(operator string, left, right string) (runtime.Value, error) {
	switch operator {
	case "+":
		return runtime.StringValue{Val: left + right}, nil
	case "==":
		return runtime.BoolValue{Val: left == right}, nil
	case "!=":
		return runtime.BoolValue{Val: left != right}, nil
	default:
		return nil, fmt.Errorf("operator %s is not defined on strings", operator)
	}
}

func boolInfix(operator string, left, right bool) (runtime.Value, error) {
	switch operator {
	case "==":
		return runtime.BoolValue{Val: left == right}, nil
	case "!=":
		return runtime.BoolValue{Val: left != right}, nil
	default:
		return nil, fmt.Errorf("operator %s is not defined on booleans", operator)
	}
}

// evaluateIfExpression requires a boolean condition; each branch runs in a
// child scope so its bindings do not leak outward.
func (i *Interpreter) evaluateIfExpression(node *ast.IfExpression, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpression(node.Condition, env)
	if err != nil {
		return nil, err
	}
	c, ok := cond.(runtime.BoolValue)
	if !ok {
		return nil, fmt.Errorf("if condition must be a boolean, got %s", cond.Kind())
	}
	if c.Val {
		return i.evaluateBlock(node.Consequence, env)
	}
	if node.Alternative != nil {
		return i.evaluateBlock(node.Alternative, env)
	}
	return runtime.NullValue{}, nil
}

// evaluateCallExpression resolves the call target. Builtins take precedence
// over user bindings of the same name at call position.
func (i *Interpreter) evaluateCallExpression(node *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	if ident, ok := node.Target.(*ast.Identifier); ok {
		if fn, found := builtins[ident.Name]; found {
			args, err := i.evaluateArguments(node.Arguments, env)
			if err != nil {
				return nil, err
			}
			return fn(i, args)
		}
	}

	target, err := i.evaluateExpression(node.Target, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateArguments(node.Arguments, env)
	if err != nil {
		return nil, err
	}

	switch fn := target.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case runtime.BuiltinValue:
		impl, ok := builtins[fn.Name]
		if !ok {
			return nil, fmt.Errorf("unknown builtin %q", fn.Name)
		}
		return impl(i, args)
	default:
		return nil, fmt.Errorf("%s is not callable", target.Kind())
	}
}

func (i *Interpreter) evaluateArguments(arguments []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	args := make([]runtime.Value, 0, len(arguments))
	for _, arg := range arguments {
		val, err := i.evaluateExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	return args, nil
}

// invokeFunction binds arguments positionally in a child of the captured
// environment, runs the body, and absorbs a propagating return signal.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	if len(args) != len(fn.Parameters) {
		return nil, fmt.Errorf("wrong number of arguments: expected %d, got %d", len(fn.Parameters), len(args))
	}
	if i.depth >= maxCallDepth {
		return nil, fmt.Errorf("stack exhausted: call depth exceeded %d", maxCallDepth)
	}

	callEnv := fn.Closure.Extend()
	for idx, name := range fn.Parameters {
		callEnv.Define(name, args[idx])
	}

	i.depth++
	result, err := i.evaluateBlock(fn.Body, callEnv)
	i.depth--

	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return result, nil
}

func (i *Interpreter) evaluateIndexExpression(node *ast.IndexExpression, env *runtime.Environment) (runtime.Value, error) {
	collection, err := i.evaluateExpression(node.Collection, env)
	if err != nil {
		return nil, err
	}
	index, err := i.evaluateExpression(node.Index, env)
	if err != nil {
		return nil, err
	}

	switch c := collection.(type) {
	case *runtime.ArrayValue:
		idx, ok := index.(runtime.IntegerValue)
		if !ok {
			return nil, fmt.Errorf("array index must be an integer, got %s", index.Kind())
		}
		if idx.Val < 0 || int(idx.Val) >= len(c.Elements) {
			return runtime.NullValue{}, nil
		}
		return c.Elements[idx.Val], nil
	case *runtime.HashValue:
		key, ok := index.(runtime.StringValue)
		if !ok {
			return nil, fmt.Errorf("hash keys must be strings, got %s", index.Kind())
		}
		if val, found := c.Pairs[key.Val]; found {
			return val, nil
		}
		return runtime.NullValue{}, nil
	default:
		return nil, fmt.Errorf("%s is not indexable", collection.Kind())
	}
}
