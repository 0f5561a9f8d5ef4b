package interp

import (
	"errors"
	"fmt"

	"github.com/kolkov/robolang/internal/token"
)

// ErrDivisionByZero is the cause of a fault raised by div(x, 0).
var ErrDivisionByZero = errors.New("division by zero")

// Fault is a runtime error that ends a program run. Err is either an
// interpreter error such as ErrDivisionByZero or the error returned by
// a Robot call.
type Fault struct {
	Pos token.Position // Position of the node that failed
	Err error
}

func (f *Fault) Error() string {
	if f.Pos.IsValid() {
		return fmt.Sprintf("%s: %v", f.Pos, f.Err)
	}
	return f.Err.Error()
}

// Unwrap returns the underlying cause.
func (f *Fault) Unwrap() error {
	return f.Err
}

func fault(pos token.Position, err error) error {
	return &Fault{Pos: pos, Err: err}
}
