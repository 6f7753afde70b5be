// Package ops defines the operation table for scalar automatic differentiation.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: the value of the operation for the given inputs
//   - Backward pass: the gradients for the inputs given the output gradient
//
// Supported operations:
//   - AddOp: addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - SubOp: subtraction (d(a-b)/da = 1, d(a-b)/db = -1)
//   - MulOp: multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - DivOp: division (d(a/b)/da = 1/b, d(a/b)/db = -a/b²)
//   - PowOp: power (d(a^b)/da = b*a^(b-1), d(a^b)/db = a^b*ln(a) for a > 0, NaN otherwise)
//   - SinOp: sine (d(sin(a))/da = cos(a))
//   - CosOp: cosine (d(cos(a))/da = -sin(a))
//
// Operations are stateless. The inputs are passed in on every call, so a
// single value of each operation is shared by every node that uses it.
package ops

import "fmt"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Name returns the short name of the operation ("add", "pow", ...).
	Name() string

	// Arity returns the number of inputs the operation takes (1 or 2).
	Arity() int

	// Forward computes the operation's value for the given inputs.
	// Returns an arithmetic error (ErrDivisionByZero, ErrDomain, ErrOverflow)
	// when the inputs are outside the operation's domain.
	Forward(inputs []float64) (float64, error)

	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input, each one the
	// local partial derivative multiplied by outputGrad.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(inputs []float64, outputGrad float64) ([]float64, error)
}

// Table lists every supported operation by name.
var Table = map[string]Operation{
	Add.Name(): Add,
	Sub.Name(): Sub,
	Mul.Name(): Mul,
	Div.Name(): Div,
	Pow.Name(): Pow,
	Sin.Name(): Sin,
	Cos.Name(): Cos,
}

// Lookup returns the operation registered under name.
func Lookup(name string) (Operation, bool) {
	op, ok := Table[name]
	return op, ok
}

// checkArity verifies that inputs matches the operation's arity.
func checkArity(op Operation, inputs []float64) error {
	if len(inputs) != op.Arity() {
		return fmt.Errorf("%s: expected %d inputs, got %d", op.Name(), op.Arity(), len(inputs))
	}
	return nil
}
