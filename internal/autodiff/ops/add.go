package ops

// AddOp represents the addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
type AddOp struct{}

// Add is the shared AddOp value.
var Add = AddOp{}

// Name returns "add".
func (AddOp) Name() string { return "add" }

// Arity returns 2.
func (AddOp) Arity() int { return 2 }

// Forward computes a + b.
func (op AddOp) Forward(inputs []float64) (float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return 0, err
	}
	return inputs[0] + inputs[1], nil
}

// Backward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func (op AddOp) Backward(inputs []float64, outputGrad float64) ([]float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return nil, err
	}
	return []float64{outputGrad, outputGrad}, nil
}
