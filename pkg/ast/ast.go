package ast

import (
	"strconv"
	"strings"
)

type NodeType string

const (
	NodeProgram             NodeType = "Program"
	NodeLetStatement        NodeType = "LetStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
	NodeAssignStatement     NodeType = "AssignStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeIdentifier          NodeType = "Identifier"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeBooleanLiteral      NodeType = "BooleanLiteral"
	NodeArrayLiteral        NodeType = "ArrayLiteral"
	NodeHashLiteral         NodeType = "HashLiteral"
	NodeFunctionLiteral     NodeType = "FunctionLiteral"
	NodePrefixExpression    NodeType = "PrefixExpression"
	NodeInfixExpression     NodeType = "InfixExpression"
	NodeIfExpression        NodeType = "IfExpression"
	NodeCallExpression      NodeType = "CallExpression"
	NodeIndexExpression     NodeType = "IndexExpression"
)

// Node is the shared behaviour of every AST node. String renders the node
// back to source form; compound expressions render fully parenthesized.
type Node interface {
	NodeType() NodeType
	String() string
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

// Program

// Program is an ordered sequence of top-level statements.
type Program struct {
	nodeImpl

	Statements []Statement `json:"statements"`
}

func NewProgram(statements []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Statements: statements}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, stmt := range p.Statements {
		b.WriteString(stmt.String())
	}
	return b.String()
}

// Statements

type LetStatement struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewLetStatement(name string, value Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, Value: value}
}

func (s *LetStatement) String() string {
	return "let " + s.Name + " = " + s.Value.String() + ";"
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Value: value}
}

func (s *ReturnStatement) String() string {
	return "return " + s.Value.String() + ";"
}

type AssignStatement struct {
	nodeImpl
	statementMarker

	Name  string     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssignStatement(name string, value Expression) *AssignStatement {
	return &AssignStatement{nodeImpl: newNodeImpl(NodeAssignStatement), Name: name, Value: value}
}

func (s *AssignStatement) String() string {
	return s.Name + " = " + s.Value.String() + ";"
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expression Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expression}
}

func (s *ExpressionStatement) String() string {
	return s.Expression.String()
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlockStatement(statements []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: statements}
}

func (s *BlockStatement) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, stmt := range s.Statements {
		b.WriteString(stmt.String())
	}
	b.WriteString("}")
	return b.String()
}

// Expressions

type Identifier struct {
	nodeImpl
	expressionMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

func (e *Identifier) String() string { return e.Name }

type IntegerLiteral struct {
	nodeImpl
	expressionMarker

	Value int32 `json:"value"`
}

func NewIntegerLiteral(value int32) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

func (e *IntegerLiteral) String() string {
	return strconv.FormatInt(int64(e.Value), 10)
}

type StringLiteral struct {
	nodeImpl
	expressionMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

func (e *StringLiteral) String() string { return `"` + e.Value + `"` }

type BooleanLiteral struct {
	nodeImpl
	expressionMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

func (e *BooleanLiteral) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: elements}
}

func (e *ArrayLiteral) String() string {
	parts := make([]string, 0, len(e.Elements))
	for _, el := range e.Elements {
		parts = append(parts, el.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// HashPair is one ordered key/value entry of a hash literal.
type HashPair struct {
	Key   Expression `json:"key"`
	Value Expression `json:"value"`
}

type HashLiteral struct {
	nodeImpl
	expressionMarker

	Pairs []HashPair `json:"pairs"`
}

func NewHashLiteral(pairs []HashPair) *HashLiteral {
	return &HashLiteral{nodeImpl: newNodeImpl(NodeHashLiteral), Pairs: pairs}
}

func (e *HashLiteral) String() string {
	parts := make([]string, 0, len(e.Pairs))
	for _, pair := range e.Pairs {
		parts = append(parts, pair.Key.String()+": "+pair.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type FunctionLiteral struct {
	nodeImpl
	expressionMarker

	Parameters []string        `json:"parameters"`
	Body       *BlockStatement `json:"body"`
}

func NewFunctionLiteral(parameters []string, body *BlockStatement) *FunctionLiteral {
	return &FunctionLiteral{nodeImpl: newNodeImpl(NodeFunctionLiteral), Parameters: parameters, Body: body}
}

func (e *FunctionLiteral) String() string {
	return "fn(" + strings.Join(e.Parameters, ", ") + ") " + e.Body.String()
}

type PrefixExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Operand  Expression `json:"operand"`
}

func NewPrefixExpression(operator string, operand Expression) *PrefixExpression {
	return &PrefixExpression{nodeImpl: newNodeImpl(NodePrefixExpression), Operator: operator, Operand: operand}
}

func (e *PrefixExpression) String() string {
	return "(" + e.Operator + e.Operand.String() + ")"
}

type InfixExpression struct {
	nodeImpl
	expressionMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewInfixExpression(operator string, left, right Expression) *InfixExpression {
	return &InfixExpression{nodeImpl: newNodeImpl(NodeInfixExpression), Operator: operator, Left: left, Right: right}
}

func (e *InfixExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

type IfExpression struct {
	nodeImpl
	expressionMarker

	Condition   Expression      `json:"condition"`
	Consequence *BlockStatement `json:"consequence"`
	Alternative *BlockStatement `json:"alternative,omitempty"`
}

func NewIfExpression(condition Expression, consequence, alternative *BlockStatement) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Consequence: consequence, Alternative: alternative}
}

func (e *IfExpression) String() string {
	out := "if " + e.Condition.String() + " " + e.Consequence.String()
	if e.Alternative != nil {
		out += " else " + e.Alternative.String()
	}
	return out
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Target    Expression   `json:"target"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(target Expression, arguments []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Target: target, Arguments: arguments}
}

func (e *CallExpression) String() string {
	parts := make([]string, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		parts = append(parts, arg.String())
	}
	return e.Target.String() + "(" + strings.Join(parts, ", ") + ")"
}

type IndexExpression struct {
	nodeImpl
	expressionMarker

	Collection Expression `json:"collection"`
	Index      Expression `json:"index"`
}

func NewIndexExpression(collection, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Collection: collection, Index: index}
}

func (e *IndexExpression) String() string {
	return "(" + e.Collection.String() + "[" + e.Index.String() + "])"
}
