// Package parser builds Qalo ASTs from the lexer's token stream.
//
// Statements are parsed by recursive descent, dispatching on the leading
// token. Expressions use precedence climbing: token types that can begin an
// expression register a prefix rule, operator tokens register an infix rule
// plus a binding power, and the core loop folds infix operators while the
// upcoming operator binds tighter than the current minimum.
package parser

import (
	"fmt"
	"strconv"

	"github.com/Gejsi/qalo/pkg/ast"
	"github.com/Gejsi/qalo/pkg/lexer"
)

// Error is a parse error with the position of the offending token.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// precedence is the binding power of an operator token.
type precedence int

const (
	lowest precedence = iota
	logicalOr
	logicalAnd
	equality
	relational
	additive
	multiplicative
	unary
	postfix // call and index
)

var precedences = map[lexer.TokenType]precedence{
	lexer.Or:               logicalOr,
	lexer.And:              logicalAnd,
	lexer.Equal:            equality,
	lexer.NotEqual:         equality,
	lexer.LessThan:         relational,
	lexer.GreaterThan:      relational,
	lexer.LessThanEqual:    relational,
	lexer.GreaterThanEqual: relational,
	lexer.Plus:             additive,
	lexer.Minus:            additive,
	lexer.Asterisk:         multiplicative,
	lexer.Slash:            multiplicative,
	lexer.Percent:          multiplicative,
	lexer.LeftParen:        postfix,
	lexer.LeftBracket:      postfix,
}

type (
	prefixParseFn func() (ast.Expression, error)
	infixParseFn  func(ast.Expression) (ast.Expression, error)
)

// Parser consumes tokens one ahead: curr is the token under examination and
// next the lookahead.
type Parser struct {
	lexer *lexer.Lexer
	curr  lexer.Token
	next  lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser primed with the first two tokens of input. A lex
// error surfaces immediately as the returned error.
func New(l *lexer.Lexer) (*Parser, error) {
	p := &Parser{lexer: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.Identifier:  p.parseIdentifier,
		lexer.Integer:     p.parseIntegerLiteral,
		lexer.String:      p.parseStringLiteral,
		lexer.True:        p.parseBooleanLiteral,
		lexer.False:       p.parseBooleanLiteral,
		lexer.Bang:        p.parsePrefixExpression,
		lexer.Minus:       p.parsePrefixExpression,
		lexer.LeftParen:   p.parseGroupedExpression,
		lexer.LeftBracket: p.parseArrayLiteral,
		lexer.LeftBrace:   p.parseHashLiteral,
		lexer.If:          p.parseIfExpression,
		lexer.Function:    p.parseFunctionLiteral,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.Plus:             p.parseInfixExpression,
		lexer.Minus:            p.parseInfixExpression,
		lexer.Asterisk:         p.parseInfixExpression,
		lexer.Slash:            p.parseInfixExpression,
		lexer.Percent:          p.parseInfixExpression,
		lexer.Equal:            p.parseInfixExpression,
		lexer.NotEqual:         p.parseInfixExpression,
		lexer.LessThan:         p.parseInfixExpression,
		lexer.GreaterThan:      p.parseInfixExpression,
		lexer.LessThanEqual:    p.parseInfixExpression,
		lexer.GreaterThanEqual: p.parseInfixExpression,
		lexer.And:              p.parseInfixExpression,
		lexer.Or:               p.parseInfixExpression,
		lexer.LeftParen:        p.parseCallExpression,
		lexer.LeftBracket:      p.parseIndexExpression,
	}

	// Prime curr and next.
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse is a convenience wrapping lexing and parsing of a whole source text.
func Parse(input string) (*ast.Program, error) {
	p, err := New(lexer.New(input))
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.curr = p.next
	p.next = tok
	return nil
}

// expect advances onto the lookahead when it has the wanted type and fails
// otherwise.
func (p *Parser) expect(kind lexer.TokenType) error {
	if p.next.Type != kind {
		return p.errorAt(p.next, fmt.Sprintf("expected %q, found %s", kind.String(), describeToken(p.next)))
	}
	return p.advance()
}

func (p *Parser) errorAt(tok lexer.Token, msg string) error {
	return &Error{Line: tok.Line, Col: tok.Col, Msg: msg}
}

func describeToken(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	statements := make([]ast.Statement, 0)
	for p.curr.Type != lexer.EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return ast.NewProgram(statements), nil
}

// parseStatement leaves curr on the final token of the statement.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curr.Type {
	case lexer.Let:
		return p.parseLetStatement()
	case lexer.Return:
		return p.parseReturnStatement()
	case lexer.LeftBrace:
		return p.parseBlockStatement()
	case lexer.Identifier:
		if p.next.Type == lexer.Assign {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseLetStatement() (ast.Statement, error) {
	if err := p.expect(lexer.Identifier); err != nil {
		return nil, err
	}
	name := p.curr.Literal
	if err := p.expect(lexer.Assign); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return ast.NewLetStatement(name, value), nil
}

func (p *Parser) parseReturnStatement() (ast.Statement, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(value), nil
}

func (p *Parser) parseAssignStatement() (ast.Statement, error) {
	name := p.curr.Literal
	if err := p.expect(lexer.Assign); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return nil, err
	}
	return ast.NewAssignStatement(name, value), nil
}

// parseBlockStatement parses "{ statements }" with curr on the opening
// brace, leaving curr on the closing one.
func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	open := p.curr
	if err := p.advance(); err != nil {
		return nil, err
	}
	statements := make([]ast.Statement, 0)
	for p.curr.Type != lexer.RightBrace {
		if p.curr.Type == lexer.EOF {
			return nil, p.errorAt(open, "unclosed block: expected \"}\"")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return ast.NewBlockStatement(statements), nil
}

// parseExpressionStatement enforces the terminating semicolon, which is
// optional only immediately before "}" or end of input.
func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	switch p.next.Type {
	case lexer.Semicolon:
		if err := p.advance(); err != nil {
			return nil, err
		}
	case lexer.RightBrace, lexer.EOF:
		// Trailing semicolon may be omitted here.
	default:
		return nil, p.errorAt(p.next, fmt.Sprintf("expected \";\", found %s", describeToken(p.next)))
	}
	return ast.NewExpressionStatement(expr), nil
}

// parseExpression is the precedence-climbing core. Rules leave curr on the
// last token of the expression they produced.
func (p *Parser) parseExpression(min precedence) (ast.Expression, error) {
	prefix := p.prefixParseFns[p.curr.Type]
	if prefix == nil {
		return nil, p.errorAt(p.curr, fmt.Sprintf("no expression can start with %s", describeToken(p.curr)))
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for p.next.Type != lexer.Semicolon && min < precedences[p.next.Type] {
		infix := p.infixParseFns[p.next.Type]
		if infix == nil {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseIdentifier() (ast.Expression, error) {
	return ast.NewIdentifier(p.curr.Literal), nil
}

func (p *Parser) parseIntegerLiteral() (ast.Expression, error) {
	value, err := strconv.ParseInt(p.curr.Literal, 10, 32)
	if err != nil {
		return nil, p.errorAt(p.curr, fmt.Sprintf("malformed integer literal %q", p.curr.Literal))
	}
	return ast.NewIntegerLiteral(int32(value)), nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	return ast.NewStringLiteral(p.curr.Literal), nil
}

func (p *Parser) parseBooleanLiteral() (ast.Expression, error) {
	return ast.NewBooleanLiteral(p.curr.Type == lexer.True), nil
}

func (p *Parser) parsePrefixExpression() (ast.Expression, error) {
	operator := p.curr.Literal
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(unary)
	if err != nil {
		return nil, err
	}
	return ast.NewPrefixExpression(operator, operand), nil
}

func (p *Parser) parseInfixExpression(left ast.Expression) (ast.Expression, error) {
	operator := p.curr.Literal
	prec := precedences[p.curr.Type]
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return ast.NewInfixExpression(operator, left, right), nil
}

func (p *Parser) parseGroupedExpression() (ast.Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RightParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	elements, err := p.parseExpressionList(lexer.RightBracket)
	if err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(elements), nil
}

func (p *Parser) parseHashLiteral() (ast.Expression, error) {
	pairs := make([]ast.HashPair, 0)
	for p.next.Type != lexer.RightBrace {
		if err := p.advance(); err != nil {
			return nil, err
		}
		key, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		value, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.HashPair{Key: key, Value: value})
		if p.next.Type != lexer.RightBrace {
			if err := p.expect(lexer.Comma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(lexer.RightBrace); err != nil {
		return nil, err
	}
	return ast.NewHashLiteral(pairs), nil
}

// parseIfExpression parses "if COND { ... }" with one optional "else"
// block. "else if" has no grammar rule and is rejected outright.
func (p *Parser) parseIfExpression() (ast.Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	consequence, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	var alternative *ast.BlockStatement
	if p.next.Type == lexer.Else {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.next.Type != lexer.LeftBrace {
			return nil, p.errorAt(p.next, fmt.Sprintf("expected \"{\" after \"else\", found %s", describeToken(p.next)))
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		alternative, err = p.parseBlockStatement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfExpression(condition, consequence, alternative), nil
}

func (p *Parser) parseFunctionLiteral() (ast.Expression, error) {
	if err := p.expect(lexer.LeftParen); err != nil {
		return nil, err
	}

	parameters := make([]string, 0)
	for p.next.Type != lexer.RightParen {
		if err := p.expect(lexer.Identifier); err != nil {
			return nil, err
		}
		parameters = append(parameters, p.curr.Literal)
		if p.next.Type != lexer.RightParen {
			if err := p.expect(lexer.Comma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil { // consume ")"
		return nil, err
	}

	if err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionLiteral(parameters, body), nil
}

func (p *Parser) parseCallExpression(target ast.Expression) (ast.Expression, error) {
	arguments, err := p.parseExpressionList(lexer.RightParen)
	if err != nil {
		return nil, err
	}
	return ast.NewCallExpression(target, arguments), nil
}

func (p *Parser) parseIndexExpression(collection ast.Expression) (ast.Expression, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	index, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RightBracket); err != nil {
		return nil, err
	}
	return ast.NewIndexExpression(collection, index), nil
}

// parseExpressionList parses a comma-separated list with curr on the opening
// delimiter, leaving curr on the closing one.
func (p *Parser) parseExpressionList(closing lexer.TokenType) ([]ast.Expression, error) {
	list := make([]ast.Expression, 0)
	for p.next.Type != closing {
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if p.next.Type != closing {
			if err := p.expect(lexer.Comma); err != nil {
				return nil, err
			}
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return list, nil
}
