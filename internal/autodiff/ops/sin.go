package ops

import "math"

// SinOp represents the sine operation: y = sin(x).
//
// Backward pass:
//   - d(sin(x))/dx = cos(x)
//   - grad_input = grad_output * cos(input)
type SinOp struct{}

// Sin is the shared SinOp value.
var Sin = SinOp{}

// Name returns "sin".
func (SinOp) Name() string { return "sin" }

// Arity returns 1.
func (SinOp) Arity() int { return 1 }

// Forward computes sin(x). Infinite inputs are a domain error.
func (op SinOp) Forward(inputs []float64) (float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return 0, err
	}
	r, err := trig(math.Sin, inputs[0])
	if err != nil {
		return 0, opError(op, err)
	}
	return r, nil
}

// Backward computes input gradient for sin.
//
// Since d(sin(x))/dx = cos(x):
// grad_input = grad_output * cos(input).
func (op SinOp) Backward(inputs []float64, outputGrad float64) ([]float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return nil, err
	}
	c, err := trig(math.Cos, inputs[0])
	if err != nil {
		return nil, opError(op, err)
	}
	return []float64{c * outputGrad}, nil
}
