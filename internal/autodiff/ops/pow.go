package ops

import "math"

// PowOp represents the power operation: output = a^b.
//
// Backward pass:
//   - d(a^b)/da = b * a^(b-1)
//   - d(a^b)/db = a^b * ln(a) when a > 0
//
// ln(a) is undefined for a <= 0, so the exponent gradient is NaN there
// instead of an error. The NaN then propagates through accumulation.
// The base gradient is always computed and fails like the forward pass
// would, e.g. 0^(b-1) with b < 1 is a division by zero.
type PowOp struct{}

// Pow is the shared PowOp value.
var Pow = PowOp{}

// Name returns "pow".
func (PowOp) Name() string { return "pow" }

// Arity returns 2.
func (PowOp) Arity() int { return 2 }

// Forward computes a^b.
func (op PowOp) Forward(inputs []float64) (float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return 0, err
	}
	r, err := power(inputs[0], inputs[1])
	if err != nil {
		return 0, opError(op, err)
	}
	return r, nil
}

// Backward computes input gradients for power.
func (op PowOp) Backward(inputs []float64, outputGrad float64) ([]float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]

	p, err := power(a, b-1)
	if err != nil {
		return nil, opError(op, err)
	}
	gradA := b * p

	gradB := math.NaN()
	if a > 0 {
		ab, err := power(a, b)
		if err != nil {
			return nil, opError(op, err)
		}
		gradB = ab * math.Log(a)
	}

	return []float64{gradA * outputGrad, gradB * outputGrad}, nil
}
