package robolang

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kolkov/robolang/internal/interp"
	"github.com/kolkov/robolang/internal/parser"
)

// ErrDivisionByZero is the cause of a RuntimeError raised by div(x, 0).
var ErrDivisionByZero = interp.ErrDivisionByZero

// SyntaxError represents a grammar violation in program source.
type SyntaxError struct {
	Line    int      // 1-based line number
	Column  int      // 1-based column number
	Message string   // Error description
	Context []string // Offending token and up to four following tokens
}

func (e *SyntaxError) Error() string {
	ctx := "end of input"
	if len(e.Context) > 0 {
		ctx = "... " + strings.Join(e.Context, " ") + " ..."
	}
	return fmt.Sprintf("syntax error at %d:%d: %s @ %s", e.Line, e.Column, e.Message, ctx)
}

// RuntimeError represents a fault that ended a run.
type RuntimeError struct {
	Line    int    // 1-based line of the failing node, 0 if unknown
	Column  int    // 1-based column of the failing node, 0 if unknown
	Message string // Error description
	Err     error  // Underlying cause
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// Unwrap returns the cause, such as ErrDivisionByZero or an error
// returned by the Robot.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// convertSyntaxError converts a parser error to the public type.
func convertSyntaxError(err error) error {
	var se *parser.SyntaxError
	if errors.As(err, &se) {
		return &SyntaxError{
			Line:    se.Pos.Line,
			Column:  se.Pos.Column,
			Message: se.Message,
			Context: se.Context,
		}
	}
	return &SyntaxError{Message: err.Error()}
}

// convertRuntimeError converts an interpreter error to the public type.
func convertRuntimeError(err error) error {
	re := &RuntimeError{Message: err.Error(), Err: err}
	var f *interp.Fault
	if errors.As(err, &f) {
		re.Line = f.Pos.Line
		re.Column = f.Pos.Column
		re.Err = f.Err
	}
	return re
}
