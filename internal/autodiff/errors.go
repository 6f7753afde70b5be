package autodiff

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/autodiff/ops"
)

// InvalidValueError is returned by New when the value is not an integer or
// floating-point number.
type InvalidValueError struct {
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("numeric data is expected (int, float), got %T", e.Value)
}

// Arithmetic errors, matched with errors.Is.
var (
	ErrDivisionByZero = ops.ErrDivisionByZero
	ErrDomain         = ops.ErrDomain
	ErrOverflow       = ops.ErrOverflow
)
