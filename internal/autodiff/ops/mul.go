package ops

// MulOp represents the multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Mul is the shared MulOp value.
var Mul = MulOp{}

// Name returns "mul".
func (MulOp) Name() string { return "mul" }

// Arity returns 2.
func (MulOp) Arity() int { return 2 }

// Forward computes a * b.
func (op MulOp) Forward(inputs []float64) (float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return 0, err
	}
	return inputs[0] * inputs[1], nil
}

// Backward computes input gradients for multiplication.
func (op MulOp) Backward(inputs []float64, outputGrad float64) ([]float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]
	return []float64{b * outputGrad, a * outputGrad}, nil
}
