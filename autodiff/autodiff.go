// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// scalar values.
//
// Arithmetic on nodes computes forward values eagerly and records the
// computation graph. Backward on an output then fills in the gradient of
// every differentiable node it depends on.
//
// Example:
//
//	import "github.com/born-ml/scalargrad/autodiff"
//
//	func main() {
//	    x := autodiff.Var(2)
//	    y := autodiff.Var(3)
//
//	    x2, _ := x.PowConst(2)
//	    inv, _ := y.RDiv(1)
//	    f := x.Mul(y).Add(x2).Sub(inv) // f = x*y + x² - 1/y
//
//	    if err := f.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(x.Grad()) // 7 true
//	    fmt.Println(y.Grad()) // 2.111... true
//	}
package autodiff

import (
	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/autodiff/ops"
)

// Node is a vertex of the computation graph.
type Node = autodiff.Node

// Operation is a differentiable operation with its local derivative rule.
type Operation = ops.Operation

// BackwardOption configures a backward pass.
type BackwardOption = autodiff.BackwardOption

// InvalidValueError is returned by New for non-numeric values.
type InvalidValueError = autodiff.InvalidValueError

// Arithmetic errors, matched with errors.Is.
var (
	ErrDivisionByZero = autodiff.ErrDivisionByZero
	ErrDomain         = autodiff.ErrDomain
	ErrOverflow       = autodiff.ErrOverflow
)

// New creates a leaf node from any integer or floating-point value.
//
// Example:
//
//	x, err := autodiff.New(3, true)
func New(value any, requiresGrad bool) (*Node, error) {
	return autodiff.New(value, requiresGrad)
}

// Var creates a leaf node that requires gradients.
func Var(value float64) *Node {
	return autodiff.Var(value)
}

// Const creates a leaf node that does not require gradients.
func Const(value float64) *Node {
	return autodiff.Const(value)
}

// Apply builds the result of op on operands.
func Apply(op Operation, operands ...*Node) (*Node, error) {
	return autodiff.Apply(op, operands...)
}

// LookupOperation returns the operation registered under name
// ("add", "sub", "mul", "div", "pow", "sin", "cos").
func LookupOperation(name string) (Operation, bool) {
	return ops.Lookup(name)
}

// WithLogger enables debug logging of the backward schedule.
var WithLogger = autodiff.WithLogger
