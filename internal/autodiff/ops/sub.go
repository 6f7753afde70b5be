package ops

// SubOp represents the subtraction operation: output = a - b.
//
// Backward pass:
//   - d(a-b)/da = 1, so grad_a = outputGrad
//   - d(a-b)/db = -1, so grad_b = -outputGrad
type SubOp struct{}

// Sub is the shared SubOp value.
var Sub = SubOp{}

// Name returns "sub".
func (SubOp) Name() string { return "sub" }

// Arity returns 2.
func (SubOp) Arity() int { return 2 }

// Forward computes a - b.
func (op SubOp) Forward(inputs []float64) (float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return 0, err
	}
	return inputs[0] - inputs[1], nil
}

// Backward computes input gradients for subtraction.
func (op SubOp) Backward(inputs []float64, outputGrad float64) ([]float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return nil, err
	}
	return []float64{outputGrad, -1 * outputGrad}, nil
}
