package ops

// DivOp represents the division operation: output = a / b.
//
// Backward pass:
//   - d(a/b)/da = 1/b, so grad_a = outputGrad / b
//   - d(a/b)/db = -a/b², so grad_b = -outputGrad * a / b²
type DivOp struct{}

// Div is the shared DivOp value.
var Div = DivOp{}

// Name returns "div".
func (DivOp) Name() string { return "div" }

// Arity returns 2.
func (DivOp) Arity() int { return 2 }

// Forward computes a / b. Returns ErrDivisionByZero when b is zero.
func (op DivOp) Forward(inputs []float64) (float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return 0, err
	}
	r, err := divide(inputs[0], inputs[1])
	if err != nil {
		return 0, opError(op, err)
	}
	return r, nil
}

// Backward computes input gradients for division.
func (op DivOp) Backward(inputs []float64, outputGrad float64) ([]float64, error) {
	if err := checkArity(op, inputs); err != nil {
		return nil, err
	}
	a, b := inputs[0], inputs[1]

	gradA, err := divide(1, b)
	if err != nil {
		return nil, opError(op, err)
	}
	gradB, err := divide(-a, b*b)
	if err != nil {
		return nil, opError(op, err)
	}
	return []float64{gradA * outputGrad, gradB * outputGrad}, nil
}
