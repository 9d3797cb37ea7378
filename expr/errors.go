package expr

import (
	"errors"
	"fmt"
)

var (
	// ErrEvaluation is matched by every *EvalError.
	ErrEvaluation = errors.New("evaluation error")

	ErrSyntax         = errors.New("syntax error")
	ErrType           = errors.New("unsupported operand types")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUndefined      = errors.New("undefined name")
	ErrOverflow       = errors.New("numeric overflow")
)

// EvalError reports a failure while lexing, parsing or evaluating a formula.
// Expr is the offending sub-expression and Pos its offset in the formula.
type EvalError struct {
	Expr string
	Pos  int
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation error in %q at position %d: %v", e.Expr, e.Pos, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

func (e *EvalError) Is(target error) bool { return target == ErrEvaluation }

// errorf wraps a sentinel with a formatted detail.
func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
