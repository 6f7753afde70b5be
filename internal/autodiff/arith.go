package autodiff

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/autodiff/ops"
)

// Add returns n + other.
//
// Add, Sub and Mul cannot fail on valid nodes and return the result
// directly; they panic when other is nil. Methods that can fail return an
// error instead.
func (n *Node) Add(other *Node) *Node {
	return mustApply(ops.Add, n, other)
}

// AddConst returns n + c. Addition is symmetric, so this also covers c + n.
func (n *Node) AddConst(c float64) *Node {
	return n.Add(Const(c))
}

// Sub returns n - other.
func (n *Node) Sub(other *Node) *Node {
	return mustApply(ops.Sub, n, other)
}

// SubConst returns n - c.
func (n *Node) SubConst(c float64) *Node {
	return n.Sub(Const(c))
}

// RSub returns c - n, computed as -n + c.
func (n *Node) RSub(c float64) *Node {
	return n.Neg().AddConst(c)
}

// Mul returns n * other.
func (n *Node) Mul(other *Node) *Node {
	return mustApply(ops.Mul, n, other)
}

// MulConst returns n * c. Multiplication is symmetric, so this also covers c * n.
func (n *Node) MulConst(c float64) *Node {
	return n.Mul(Const(c))
}

// Neg returns -n, computed as n * -1.
func (n *Node) Neg() *Node {
	return n.MulConst(-1)
}

// Div returns n / other. Fails with ErrDivisionByZero when other is zero.
func (n *Node) Div(other *Node) (*Node, error) {
	return apply(ops.Div, n, other)
}

// DivConst returns n / c.
func (n *Node) DivConst(c float64) (*Node, error) {
	return n.Div(Const(c))
}

// RDiv returns c / n, computed as n^-1 * c.
// Fails with ErrDivisionByZero when n is zero.
func (n *Node) RDiv(c float64) (*Node, error) {
	inv, err := n.PowConst(-1)
	if err != nil {
		return nil, err
	}
	return inv.MulConst(c), nil
}

// Pow returns n raised to the power other.
// Fails with ErrDivisionByZero, ErrDomain or ErrOverflow like native
// exponentiation does.
func (n *Node) Pow(other *Node) (*Node, error) {
	return apply(ops.Pow, n, other)
}

// PowConst returns n^c.
func (n *Node) PowConst(c float64) (*Node, error) {
	return n.Pow(Const(c))
}

// RPow returns c^n.
func (n *Node) RPow(c float64) (*Node, error) {
	return Const(c).Pow(n)
}

// Sin returns sin(n). Fails with ErrDomain for infinite values.
func (n *Node) Sin() (*Node, error) {
	return apply(ops.Sin, n)
}

// Cos returns cos(n). Fails with ErrDomain for infinite values.
func (n *Node) Cos() (*Node, error) {
	return apply(ops.Cos, n)
}

// Apply builds the result of op on operands, which must match its arity
// and be non-nil.
func Apply(op ops.Operation, operands ...*Node) (*Node, error) {
	return apply(op, operands...)
}

// apply runs the forward pass of op and links the result to its operands.
// The result requires gradients when any operand does; only then is the
// operation attached for the backward pass.
func apply(op ops.Operation, operands ...*Node) (*Node, error) {
	if len(operands) != op.Arity() {
		return nil, fmt.Errorf("%s: expected %d operands, got %d", op.Name(), op.Arity(), len(operands))
	}

	values := make([]float64, len(operands))
	requiresGrad := false
	for i, o := range operands {
		if o == nil {
			return nil, fmt.Errorf("%s: operand %d is nil", op.Name(), i)
		}
		values[i] = o.value
		requiresGrad = requiresGrad || o.requiresGrad
	}

	v, err := op.Forward(values)
	if err != nil {
		return nil, err
	}

	out := &Node{
		value:        v,
		requiresGrad: requiresGrad,
		left:         operands[0],
	}
	if len(operands) == 2 {
		out.right = operands[1]
	}
	if requiresGrad {
		out.op = op
	}
	return out, nil
}

// mustApply is apply for operations whose forward pass cannot fail. It
// panics on a nil operand or an arity mismatch, both programming errors.
func mustApply(op ops.Operation, operands ...*Node) *Node {
	out, err := apply(op, operands...)
	if err != nil {
		panic(fmt.Sprintf("autodiff: %v", err))
	}
	return out
}
