// Package autodiff implements reverse-mode automatic differentiation over
// scalar values.
//
// Architecture:
//   - Node: a vertex of the computation graph holding a forward value, an
//     optional gradient and, for results of operations, its operands
//   - ops.Operation: the local derivative rule attached to each result node
//   - tape: the topological schedule used by the backward pass
//
// Forward values are computed eagerly while the expression is built; nothing
// is differentiated until Backward is called on the output.
//
// Usage:
//
//	x := autodiff.Var(2)
//	y := autodiff.Var(3)
//	f := x.Mul(y).Add(x.Mul(x)) // f = x*y + x²
//
//	if err := f.Backward(); err != nil {
//		return err
//	}
//	gx, _ := x.Grad() // df/dx = y + 2x = 7
//
// Nodes are not safe for concurrent use: Backward mutates the gradients of
// every differentiable node reachable from the output.
package autodiff

import (
	"fmt"
	"strconv"

	"github.com/born-ml/scalargrad/internal/autodiff/ops"
)

// Node is a vertex of the computation graph.
//
// A leaf is built directly from a number and has no operation and no
// operands. A result node references the node(s) it was computed from; a
// node may be an operand of any number of results.
type Node struct {
	value        float64
	requiresGrad bool
	grad         float64 // meaningful only when requiresGrad is set

	op    ops.Operation // nil for leaves and constant-only results
	left  *Node
	right *Node // nil for unary results
}

// New creates a leaf node from any Go integer or floating-point value.
// Any other value fails with *InvalidValueError.
func New(value any, requiresGrad bool) (*Node, error) {
	v, err := toFloat(value)
	if err != nil {
		return nil, err
	}
	return &Node{value: v, requiresGrad: requiresGrad}, nil
}

// Var creates a leaf node that requires gradients.
func Var(value float64) *Node {
	return &Node{value: value, requiresGrad: true}
}

// Const creates a leaf node that does not require gradients.
// Raw numbers used as operands are promoted with Const.
func Const(value float64) *Node {
	return &Node{value: value}
}

// Value returns the forward value.
func (n *Node) Value() float64 {
	return n.value
}

// RequiresGrad reports whether the node accumulates gradients.
func (n *Node) RequiresGrad() bool {
	return n.requiresGrad
}

// Grad returns the accumulated gradient. ok is false when the node does
// not require gradients, in which case no gradient exists.
func (n *Node) Grad() (grad float64, ok bool) {
	if !n.requiresGrad {
		return 0, false
	}
	return n.grad, true
}

// GradOr returns the accumulated gradient, or def when there is none.
func (n *Node) GradOr(def float64) float64 {
	if g, ok := n.Grad(); ok {
		return g
	}
	return def
}

// IsLeaf reports whether the node was built directly from a number.
func (n *Node) IsLeaf() bool {
	return n.left == nil
}

// Op returns the name of the operation that backpropagates through this
// node, or "" when there is none.
func (n *Node) Op() string {
	if n.op == nil {
		return ""
	}
	return n.op.Name()
}

// Operands returns the nodes this node was computed from.
func (n *Node) Operands() []*Node {
	return n.inputs()
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return fmt.Sprintf("Value(%s, requires_grad=%t)",
		strconv.FormatFloat(n.value, 'g', -1, 64), n.requiresGrad)
}

// inputs returns the operands in order: [left] or [left, right].
func (n *Node) inputs() []*Node {
	switch {
	case n.left == nil:
		return nil
	case n.right == nil:
		return []*Node{n.left}
	default:
		return []*Node{n.left, n.right}
	}
}

// differentiable reports whether the node propagates gradients to its
// operands during a backward pass.
func (n *Node) differentiable() bool {
	return n.requiresGrad && n.op != nil
}

// toFloat converts the numeric kinds accepted by New.
func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		return 0, &InvalidValueError{Value: value}
	}
}
