package lexer

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	Illegal

	// Identifiers & literals
	Identifier
	Integer
	String

	// Operators
	Assign
	Plus
	Minus
	Asterisk
	Slash
	Percent
	Bang
	Equal
	NotEqual
	LessThan
	GreaterThan
	LessThanEqual
	GreaterThanEqual
	And
	Or

	// Punctuation
	Comma
	Semicolon
	Colon
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket

	// Keywords
	Let
	Return
	Function
	If
	Else
	True
	False
)

func (t TokenType) String() string {
	switch t {
	case EOF:
		return "eof"
	case Illegal:
		return "illegal"
	case Identifier:
		return "identifier"
	case Integer:
		return "integer"
	case String:
		return "string"
	case Assign:
		return "="
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Asterisk:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case Bang:
		return "!"
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanEqual:
		return "<="
	case GreaterThanEqual:
		return ">="
	case And:
		return "&&"
	case Or:
		return "||"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Colon:
		return ":"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case LeftBracket:
		return "["
	case RightBracket:
		return "]"
	case Let:
		return "let"
	case Return:
		return "return"
	case Function:
		return "fn"
	case If:
		return "if"
	case Else:
		return "else"
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Token is a lexical token with its literal text and source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int // 1-based
	Col     int // 1-based
}

var keywords = map[string]TokenType{
	"let":    Let,
	"return": Return,
	"fn":     Function,
	"if":     If,
	"else":   Else,
	"true":   True,
	"false":  False,
}

// LookupIdentifier resolves an identifier run to a keyword token type when it
// matches one, and Identifier otherwise.
func LookupIdentifier(literal string) TokenType {
	if kind, ok := keywords[literal]; ok {
		return kind
	}
	return Identifier
}
