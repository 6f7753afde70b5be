// Package expr compiles textual arithmetic expressions onto the autodiff
// graph.
//
// Expressions use HCL expression syntax: number literals, variable names,
// the operators + - * / and unary -, parentheses, and calls to the
// operations of the table, e.g.
//
//	x*y + pow(x, 2) - 1/y
//	sin(x) * cos(y)
//
// Variables are looked up in an Env; every reference to the same name
// resolves to the same node, so gradients accumulate on it.
package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Errors returned by Compile, wrapped with the source range.
var (
	ErrUnknownVariable = errors.New("unknown variable")
	ErrUnknownFunction = errors.New("unknown function")
	ErrUnsupported     = errors.New("unsupported expression")
)

// Env binds variable names to nodes.
type Env map[string]*autodiff.Node

// Compile parses src and builds its graph over the nodes in env.
// Forward values are computed while compiling, so arithmetic errors such
// as autodiff.ErrDivisionByZero are returned from here.
func Compile(src string, env Env) (*autodiff.Node, error) {
	e, diags := hclsyntax.ParseExpression([]byte(src), "expression", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse expression: %w", diags)
	}

	c := compiler{env: env}
	o, err := c.compile(e)
	if err != nil {
		return nil, err
	}
	return o.asNode(), nil
}

// operand is a compiled subexpression. Number literals stay unpromoted so
// that literal-first forms (2 - x, 1 / y) map onto the reversed operations.
type operand struct {
	node  *autodiff.Node
	value float64
}

func literal(v float64) operand {
	return operand{value: v}
}

func (o operand) isLiteral() bool {
	return o.node == nil
}

func (o operand) asNode() *autodiff.Node {
	if o.isLiteral() {
		return autodiff.Const(o.value)
	}
	return o.node
}

type compiler struct {
	env Env
}

func (c *compiler) compile(e hclsyntax.Expression) (operand, error) {
	for {
		if p, ok := e.(*hclsyntax.ParenthesesExpr); ok {
			e = p.Expression
			continue
		}
		if unwrapped, ok := hcl.UnwrapExpression(e).(hclsyntax.Expression); ok && unwrapped != e {
			e = unwrapped
			continue
		}
		break
	}

	switch e := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		return c.literal(e)
	case *hclsyntax.ScopeTraversalExpr:
		return c.variable(e)
	case *hclsyntax.UnaryOpExpr:
		return c.unary(e)
	case *hclsyntax.BinaryOpExpr:
		return c.binary(e)
	case *hclsyntax.FunctionCallExpr:
		return c.call(e)
	default:
		return operand{}, fmt.Errorf("%s: %w", e.Range(), ErrUnsupported)
	}
}

func (c *compiler) literal(e *hclsyntax.LiteralValueExpr) (operand, error) {
	if e.Val.IsNull() || !e.Val.IsKnown() || !e.Val.Type().Equals(cty.Number) {
		return operand{}, fmt.Errorf("%s: %w: %s literal", e.Range(), ErrUnsupported, e.Val.Type().FriendlyName())
	}
	v, _ := e.Val.AsBigFloat().Float64()
	if math.IsInf(v, 0) {
		return operand{}, fmt.Errorf("%s: number literal out of range", e.Range())
	}
	return literal(v), nil
}

func (c *compiler) variable(e *hclsyntax.ScopeTraversalExpr) (operand, error) {
	if len(e.Traversal) != 1 {
		return operand{}, fmt.Errorf("%s: %w: attribute or index access", e.Range(), ErrUnsupported)
	}
	name := e.Traversal.RootName()
	n, ok := c.env[name]
	if !ok {
		return operand{}, fmt.Errorf("%s: %w %q", e.Range(), ErrUnknownVariable, name)
	}
	return operand{node: n}, nil
}

func (c *compiler) unary(e *hclsyntax.UnaryOpExpr) (operand, error) {
	if e.Op != hclsyntax.OpNegate {
		return operand{}, fmt.Errorf("%s: %w: logical operator", e.Range(), ErrUnsupported)
	}
	v, err := c.compile(e.Val)
	if err != nil {
		return operand{}, err
	}
	if v.isLiteral() {
		return literal(-v.value), nil
	}
	return operand{node: v.node.Neg()}, nil
}

func (c *compiler) binary(e *hclsyntax.BinaryOpExpr) (operand, error) {
	lhs, err := c.compile(e.LHS)
	if err != nil {
		return operand{}, err
	}
	rhs, err := c.compile(e.RHS)
	if err != nil {
		return operand{}, err
	}

	var n *autodiff.Node
	switch e.Op {
	case hclsyntax.OpAdd:
		n, err = add(lhs, rhs)
	case hclsyntax.OpSubtract:
		n, err = sub(lhs, rhs)
	case hclsyntax.OpMultiply:
		n, err = mul(lhs, rhs)
	case hclsyntax.OpDivide:
		n, err = div(lhs, rhs)
	default:
		return operand{}, fmt.Errorf("%s: %w: operator", e.Range(), ErrUnsupported)
	}
	if err != nil {
		return operand{}, fmt.Errorf("%s: %w", e.Range(), err)
	}
	return operand{node: n}, nil
}

func (c *compiler) call(e *hclsyntax.FunctionCallExpr) (operand, error) {
	op, ok := ops.Lookup(e.Name)
	if !ok {
		return operand{}, fmt.Errorf("%s: %w %q", e.Range(), ErrUnknownFunction, e.Name)
	}
	if e.ExpandFinal {
		return operand{}, fmt.Errorf("%s: %w: argument expansion", e.Range(), ErrUnsupported)
	}
	if len(e.Args) != op.Arity() {
		return operand{}, fmt.Errorf("%s: %s expects %d arguments, got %d", e.Range(), e.Name, op.Arity(), len(e.Args))
	}

	args := make([]*autodiff.Node, len(e.Args))
	for i, a := range e.Args {
		o, err := c.compile(a)
		if err != nil {
			return operand{}, err
		}
		args[i] = o.asNode()
	}

	n, err := autodiff.Apply(op, args...)
	if err != nil {
		return operand{}, fmt.Errorf("%s: %w", e.Range(), err)
	}
	return operand{node: n}, nil
}

func add(a, b operand) (*autodiff.Node, error) {
	switch {
	case a.isLiteral() && !b.isLiteral():
		return b.node.AddConst(a.value), nil
	case b.isLiteral():
		return a.asNode().AddConst(b.value), nil
	default:
		return a.node.Add(b.node), nil
	}
}

func sub(a, b operand) (*autodiff.Node, error) {
	switch {
	case a.isLiteral() && !b.isLiteral():
		return b.node.RSub(a.value), nil
	case b.isLiteral():
		return a.asNode().SubConst(b.value), nil
	default:
		return a.node.Sub(b.node), nil
	}
}

func mul(a, b operand) (*autodiff.Node, error) {
	switch {
	case a.isLiteral() && !b.isLiteral():
		return b.node.MulConst(a.value), nil
	case b.isLiteral():
		return a.asNode().MulConst(b.value), nil
	default:
		return a.node.Mul(b.node), nil
	}
}

func div(a, b operand) (*autodiff.Node, error) {
	switch {
	case a.isLiteral() && !b.isLiteral():
		return b.node.RDiv(a.value)
	case b.isLiteral():
		return a.asNode().DivConst(b.value)
	default:
		return a.node.Div(b.node)
	}
}
