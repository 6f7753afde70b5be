package ops

import (
	"errors"
	"fmt"
	"math"
)

// Arithmetic errors raised by forward and backward computations.
// They mirror the failures of native arithmetic that IEEE-754 would
// otherwise turn silently into Inf or NaN.
var (
	// ErrDivisionByZero is returned for a/0 and for 0 raised to a negative power.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain is returned when an input lies outside the mathematical domain
	// of the function, e.g. a negative base with a non-integer exponent.
	ErrDomain = errors.New("math domain error")

	// ErrOverflow is returned when finite inputs produce an infinite result.
	ErrOverflow = errors.New("numerical result out of range")
)

// opError wraps err with the operation name so callers can still match the
// sentinel with errors.Is.
func opError(op Operation, err error) error {
	return fmt.Errorf("%s: %w", op.Name(), err)
}

// divide computes a / b, failing on a zero divisor.
func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// power computes a^b with the failure modes of native float exponentiation:
//   - 0 raised to a negative power is a division by zero
//   - a negative base with a non-integer exponent is a domain error
//   - finite operands with an infinite result overflow
func power(a, b float64) (float64, error) {
	if a == 0 && b < 0 {
		return 0, ErrDivisionByZero
	}
	if a < 0 && !math.IsInf(a, 0) && !math.IsInf(b, 0) && b != math.Trunc(b) {
		return 0, ErrDomain
	}
	r := math.Pow(a, b)
	if math.IsInf(r, 0) && !math.IsInf(a, 0) && !math.IsInf(b, 0) {
		return 0, ErrOverflow
	}
	return r, nil
}

// trig applies f to a, rejecting infinite inputs.
func trig(f func(float64) float64, a float64) (float64, error) {
	if math.IsInf(a, 0) {
		return 0, ErrDomain
	}
	return f(a), nil
}
