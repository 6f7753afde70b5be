package ops

import "math"

// CosOp represents the cosine operation: y = cos(x).
//
// Backward pass:
//   - d(cos(x))/dx = -sin(x)
//   - grad_input = -grad_output * sin(input)
type CosOp struct{}

// Cos is the shared CosOp value.
var Cos = CosOp{}

// Name returns "cos".
func (CosOp) Name() string { return "cos" }

// Arity returns 1.
func (CosOp) Arity() int { return 1 }

// Forward computes cos(x). Infinite inputs are a domain error.
func (op CosOp) Forward(inputs []float64) (float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return 0, err
	}
	r, err := trig(math.Cos, inputs[0])
	if err != nil {
		return 0, opError(op, err)
	}
	return r, nil
}

// Backward computes input gradient for cos.
func (op CosOp) Backward(inputs []float64, outputGrad float64) ([]float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return nil, err
	}
	s, err := trig(math.Sin, inputs[0])
	if err != nil {
		return nil, opError(op, err)
	}
	return []float64{-s * outputGrad}, nil
}
