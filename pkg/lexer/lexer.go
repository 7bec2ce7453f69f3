// Package lexer turns Qalo source text into a stream of tokens.
//
// The scanner is single-pass: each call to Next produces one token and
// advances. Whitespace is insignificant and discarded; there is no comment
// syntax, so '/' always lexes as the division operator.
package lexer

import "fmt"

// Error is a lexical error carrying the offending character and its position.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer scans Qalo source text character by character.
type Lexer struct {
	input string
	curr  int  // offset of ch
	next  int  // offset after ch
	ch    byte // character under examination, 0 at EOF
	line  int
	col   int
}

// New returns a lexer positioned at the first character of input.
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, col: 0}
	l.read()
	return l
}

// read advances to the next character, maintaining line/column counters.
func (l *Lexer) read() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.next >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.next]
	}
	l.curr = l.next
	l.next++
	l.col++
}

func (l *Lexer) peek() byte {
	if l.next >= len(l.input) {
		return 0
	}
	return l.input[l.next]
}

// Next returns the next token, or a lex error on an unrecognized character.
// After the end of input it keeps returning EOF tokens.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	line, col := l.line, l.col

	var tok Token
	switch l.ch {
	case '=':
		if l.peek() == '=' {
			l.read()
			tok = Token{Type: Equal, Literal: "=="}
		} else {
			tok = Token{Type: Assign, Literal: "="}
		}
	case '+':
		tok = Token{Type: Plus, Literal: "+"}
	case '-':
		tok = Token{Type: Minus, Literal: "-"}
	case '*':
		tok = Token{Type: Asterisk, Literal: "*"}
	case '/':
		tok = Token{Type: Slash, Literal: "/"}
	case '%':
		tok = Token{Type: Percent, Literal: "%"}
	case '!':
		if l.peek() == '=' {
			l.read()
			tok = Token{Type: NotEqual, Literal: "!="}
		} else {
			tok = Token{Type: Bang, Literal: "!"}
		}
	case '<':
		if l.peek() == '=' {
			l.read()
			tok = Token{Type: LessThanEqual, Literal: "<="}
		} else {
			tok = Token{Type: LessThan, Literal: "<"}
		}
	case '>':
		if l.peek() == '=' {
			l.read()
			tok = Token{Type: GreaterThanEqual, Literal: ">="}
		} else {
			tok = Token{Type: GreaterThan, Literal: ">"}
		}
	case '&':
		if l.peek() == '&' {
			l.read()
			tok = Token{Type: And, Literal: "&&"}
		} else {
			return Token{}, &Error{Line: line, Col: col, Msg: "unrecognized character '&'"}
		}
	case '|':
		if l.peek() == '|' {
			l.read()
			tok = Token{Type: Or, Literal: "||"}
		} else {
			return Token{}, &Error{Line: line, Col: col, Msg: "unrecognized character '|'"}
		}
	case ',':
		tok = Token{Type: Comma, Literal: ","}
	case ';':
		tok = Token{Type: Semicolon, Literal: ";"}
	case ':':
		tok = Token{Type: Colon, Literal: ":"}
	case '(':
		tok = Token{Type: LeftParen, Literal: "("}
	case ')':
		tok = Token{Type: RightParen, Literal: ")"}
	case '{':
		tok = Token{Type: LeftBrace, Literal: "{"}
	case '}':
		tok = Token{Type: RightBrace, Literal: "}"}
	case '[':
		tok = Token{Type: LeftBracket, Literal: "["}
	case ']':
		tok = Token{Type: RightBracket, Literal: "]"}
	case '"':
		literal, err := l.readString()
		if err != nil {
			return Token{}, err
		}
		tok = Token{Type: String, Literal: literal}
	case 0:
		tok = Token{Type: EOF, Literal: ""}
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return Token{Type: LookupIdentifier(literal), Literal: literal, Line: line, Col: col}, nil
		}
		if isDigit(l.ch) {
			literal := l.readNumber()
			return Token{Type: Integer, Literal: literal, Line: line, Col: col}, nil
		}
		return Token{}, &Error{Line: line, Col: col, Msg: fmt.Sprintf("unrecognized character %q", l.ch)}
	}

	l.read()
	tok.Line, tok.Col = line, col
	return tok, nil
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.read()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.curr
	for isLetter(l.ch) || isDigit(l.ch) {
		l.read()
	}
	return l.input[start:l.curr]
}

func (l *Lexer) readNumber() string {
	start := l.curr
	for isDigit(l.ch) {
		l.read()
	}
	return l.input[start:l.curr]
}

// readString scans a double-quoted string. There is no escape processing: a
// '"' always terminates the literal.
func (l *Lexer) readString() (string, error) {
	line, col := l.line, l.col
	l.read() // opening quote
	start := l.curr
	for l.ch != '"' {
		if l.ch == 0 {
			return "", &Error{Line: line, Col: col, Msg: "unterminated string literal"}
		}
		l.read()
	}
	return l.input[start:l.curr], nil
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
