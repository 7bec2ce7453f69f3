package parser

import (
	"strings"
	"testing"

	"github.com/Gejsi/qalo/pkg/ast"
	"github.com/Gejsi/qalo/pkg/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(input)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

func TestLetStatements(t *testing.T) {
	program := parseProgram(t, `
		let five = 5;
		let taken = false;
		let temp = taken;
		let seven = five + 2 * 1;
	`)

	names := []string{"five", "taken", "temp", "seven"}
	if len(program.Statements) != len(names) {
		t.Fatalf("expected %d statements, got %d", len(names), len(program.Statements))
	}
	for i, name := range names {
		stmt, ok := program.Statements[i].(*ast.LetStatement)
		if !ok {
			t.Fatalf("statement %d: expected let statement, got %s", i, program.Statements[i].NodeType())
		}
		if stmt.Name != name {
			t.Fatalf("statement %d: expected name %q, got %q", i, name, stmt.Name)
		}
	}
}

func TestReturnStatement(t *testing.T) {
	program := parseProgram(t, "return 1 + 2;")
	stmt, ok := program.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected return statement, got %s", program.Statements[0].NodeType())
	}
	if stmt.Value.String() != "(1 + 2)" {
		t.Fatalf("unexpected return value: %s", stmt.Value.String())
	}
}

func TestAssignStatement(t *testing.T) {
	program := parseProgram(t, "foo = foo + 1;")
	stmt, ok := program.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("expected assign statement, got %s", program.Statements[0].NodeType())
	}
	if stmt.Name != "foo" {
		t.Fatalf("expected target foo, got %q", stmt.Name)
	}
	if stmt.Value.String() != "(foo + 1)" {
		t.Fatalf("unexpected value: %s", stmt.Value.String())
	}
}

func TestBlockStatement(t *testing.T) {
	program := parseProgram(t, "{ let a = 2; a + 1 }")
	block, ok := program.Statements[0].(*ast.BlockStatement)
	if !ok {
		t.Fatalf("expected block statement, got %s", program.Statements[0].NodeType())
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected 2 statements in block, got %d", len(block.Statements))
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 > 4 != 3 < 4", "((5 > 4) != (3 < 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"true", "true"},
		{"false", "false"},
		{"3 > 5 == false", "((3 > 5) == false)"},
		{"3 < 5 == true", "((3 < 5) == true)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"1 + 1 * 2 % (3 / 4)", "(1 + ((1 * 2) % (3 / 4)))"},
		{"a == b && c == d", "((a == b) && (c == d))"},
		{"a && b || c && d", "((a && b) || (c && d))"},
		{"!a && b", "((!a) && b)"},
		{"1 < 2 == true && 2 >= 1", "(((1 < 2) == true) && (2 >= 1))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"a * [1, 2, 3, 4][b * c] * d", "((a * ([1, 2, 3, 4][(b * c)])) * d)"},
		{"add(a * b[2], b[1], 2 * [1, 2][1])", "add((a * (b[2])), (b[1]), (2 * ([1, 2][1])))"},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		if got := program.String(); got != tt.expected {
			t.Fatalf("%q: expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestIfExpression(t *testing.T) {
	program := parseProgram(t, "if x < y { x } else { y }")
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("expected expression statement, got %s", program.Statements[0].NodeType())
	}
	ifExpr, ok := stmt.Expression.(*ast.IfExpression)
	if !ok {
		t.Fatalf("expected if expression, got %s", stmt.Expression.NodeType())
	}
	if ifExpr.Condition.String() != "(x < y)" {
		t.Fatalf("unexpected condition: %s", ifExpr.Condition.String())
	}
	if ifExpr.Alternative == nil {
		t.Fatalf("expected an else block")
	}
}

func TestIfWithoutElse(t *testing.T) {
	program := parseProgram(t, "if x { 1 }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	ifExpr := stmt.Expression.(*ast.IfExpression)
	if ifExpr.Alternative != nil {
		t.Fatalf("expected no else block")
	}
}

func TestElseIfIsRejected(t *testing.T) {
	_, err := Parse("if a { 1 } else if b { 2 }")
	if err == nil {
		t.Fatalf("expected a parse error for else-if chaining")
	}
	if !strings.Contains(err.Error(), "else") {
		t.Fatalf("error should mention else, got: %v", err)
	}
}

func TestFunctionLiteral(t *testing.T) {
	program := parseProgram(t, "fn(x, y) { x + y; }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	fn, ok := stmt.Expression.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected function literal, got %s", stmt.Expression.NodeType())
	}
	if len(fn.Parameters) != 2 || fn.Parameters[0] != "x" || fn.Parameters[1] != "y" {
		t.Fatalf("unexpected parameters: %v", fn.Parameters)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
}

func TestFunctionLiteralWithoutParameters(t *testing.T) {
	program := parseProgram(t, "fn() { 1 }")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	fn := stmt.Expression.(*ast.FunctionLiteral)
	if len(fn.Parameters) != 0 {
		t.Fatalf("unexpected parameters: %v", fn.Parameters)
	}
}

func TestArrayLiteral(t *testing.T) {
	program := parseProgram(t, "[1, 2 * 2, \"three\"]")
	stmt := program.Statements[0].(*ast.ExpressionStatement)
	arr, ok := stmt.Expression.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected array literal, got %s", stmt.Expression.NodeType())
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	if arr.String() != `[1, (2 * 2), "three"]` {
		t.Fatalf("unexpected rendering: %s", arr.String())
	}
}

func TestHashLiteral(t *testing.T) {
	program := parseProgram(t, `let h = {"one": 1, "two": 1 + 1};`)
	stmt := program.Statements[0].(*ast.LetStatement)
	hash, ok := stmt.Value.(*ast.HashLiteral)
	if !ok {
		t.Fatalf("expected hash literal, got %s", stmt.Value.NodeType())
	}
	if len(hash.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(hash.Pairs))
	}
	if hash.String() != `{"one": 1, "two": (1 + 1)}` {
		t.Fatalf("unexpected rendering: %s", hash.String())
	}
}

func TestEmptyHashLiteral(t *testing.T) {
	program := parseProgram(t, `let h = {};`)
	stmt := program.Statements[0].(*ast.LetStatement)
	hash, ok := stmt.Value.(*ast.HashLiteral)
	if !ok {
		t.Fatalf("expected hash literal, got %s", stmt.Value.NodeType())
	}
	if len(hash.Pairs) != 0 {
		t.Fatalf("expected no pairs, got %d", len(hash.Pairs))
	}
}

func TestOptionalSemicolonBeforeBraceAndEOF(t *testing.T) {
	for _, input := range []string{"1 + 2", "{ 1 + 2 }", "fn(x) { x }"} {
		if _, err := Parse(input); err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
	}
}

func TestMandatorySemicolonBetweenExpressions(t *testing.T) {
	if _, err := Parse("1 + 2 3 + 4;"); err == nil {
		t.Fatalf("expected a parse error for a missing semicolon")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string
	}{
		{"let = 5;", "expected \"identifier\""},
		{"let x 5;", "expected \"=\""},
		{"let x = 5", "expected \";\""},
		{"(1 + 2", "expected \")\""},
		{"[1, 2;", "expected \",\""},
		{"{ let a = 1;", "unclosed block"},
		{"+ 5;", "no expression can start with"},
		{"if { 1 }", "expected \":\""},
		{"99999999999;", "malformed integer literal"},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input)
		if err == nil {
			t.Fatalf("%q: expected a parse error", tt.input)
		}
		if !strings.Contains(err.Error(), tt.wantMsg) {
			t.Fatalf("%q: expected message containing %q, got %q", tt.input, tt.wantMsg, err.Error())
		}
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("let x = ;")
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if perr.Line != 1 || perr.Col != 9 {
		t.Fatalf("expected position 1:9, got %d:%d", perr.Line, perr.Col)
	}
}

func TestLexErrorsSurfaceThroughParser(t *testing.T) {
	_, err := Parse("let a = 1 ? 2;")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if _, ok := err.(*lexer.Error); !ok {
		t.Fatalf("expected *lexer.Error, got %T (%v)", err, err)
	}
}
