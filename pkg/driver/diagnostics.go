package driver

import (
	"fmt"
	"strings"

	"github.com/Gejsi/qalo/pkg/lexer"
	"github.com/Gejsi/qalo/pkg/parser"
)

// wrapWithSnippet augments a positioned lex or parse error with a
// caret-annotated excerpt of the source. Other errors pass through
// unchanged.
func wrapWithSnippet(err error, source string) error {
	switch e := err.(type) {
	case *lexer.Error:
		return fmt.Errorf("%s", snippet(source, e.Line, e.Col, e.Msg))
	case *parser.Error:
		return fmt.Errorf("%s", snippet(source, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// snippet renders the failing line with up to one line of context on each
// side and a caret under the 1-based column. Out-of-range coordinates are
// clamped so rendering never fails.
func snippet(source string, line, col int, msg string) string {
	lines := strings.Split(source, "\n")
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d: %s\n", line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "\n%4d | %s", line+1, lines[line])
	}
	return b.String()
}
