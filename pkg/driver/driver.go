// Package driver executes Qalo source files through the full pipeline and
// reports failures tagged with the phase that produced them.
package driver

import (
	"fmt"
	"io"
	"os"

	"github.com/Gejsi/qalo/pkg/interpreter"
	"github.com/Gejsi/qalo/pkg/lexer"
	"github.com/Gejsi/qalo/pkg/parser"
)

// Phase names the pipeline stage an error came from.
type Phase string

const (
	PhaseLex   Phase = "lex"
	PhaseParse Phase = "parse"
	PhaseEval  Phase = "eval"
)

// PhaseError ties a failure to the file and pipeline phase it occurred in.
type PhaseError struct {
	File  string
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.File, e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// Runner executes source files in order. Each file gets a fresh interpreter
// and global environment; no state crosses file boundaries.
type Runner struct {
	// Out receives built-in print output. Defaults to os.Stdout.
	Out io.Writer
	// ErrOut receives rendered diagnostics. Defaults to os.Stderr.
	ErrOut io.Writer
	// ContinueOnError keeps executing the remaining files after a failure
	// instead of stopping at the first one.
	ContinueOnError bool
}

func NewRunner() *Runner {
	return &Runner{Out: os.Stdout, ErrOut: os.Stderr}
}

// Run executes the given files strictly in order. Every failure is rendered
// to ErrOut; the returned error is non-nil when any file failed.
func (r *Runner) Run(paths []string) error {
	failed := 0
	for _, path := range paths {
		if err := r.RunFile(path); err != nil {
			failed++
			fmt.Fprintln(r.errOut(), renderDiagnostic(err))
			if !r.ContinueOnError {
				return err
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

// RunFile reads and executes a single source file.
func (r *Runner) RunFile(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return r.RunSource(path, string(source))
}

// RunSource executes source text through lex, parse, and eval, classifying
// any failure by phase. No evaluation happens unless parsing succeeded.
func (r *Runner) RunSource(name, source string) error {
	program, err := parser.Parse(source)
	if err != nil {
		switch err.(type) {
		case *lexer.Error:
			return &PhaseError{File: name, Phase: PhaseLex, Err: wrapWithSnippet(err, source)}
		default:
			return &PhaseError{File: name, Phase: PhaseParse, Err: wrapWithSnippet(err, source)}
		}
	}

	interp := interpreter.New()
	interp.SetOutput(r.out())
	if _, err := interp.EvaluateProgram(program); err != nil {
		return &PhaseError{File: name, Phase: PhaseEval, Err: err}
	}
	return nil
}

func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

func (r *Runner) errOut() io.Writer {
	if r.ErrOut != nil {
		return r.ErrOut
	}
	return os.Stderr
}

func renderDiagnostic(err error) string {
	if perr, ok := err.(*PhaseError); ok {
		return perr.Error()
	}
	return err.Error()
}
