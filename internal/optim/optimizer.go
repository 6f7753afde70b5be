// Package optim implements gradient-based minimization of scalar
// expressions.
//
// This package provides:
//   - Optimizer interface: Base interface for all optimizers
//   - SGD: Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation
//   - Minimize: the loop that evaluates an objective, runs the backward
//     pass and applies an optimizer step
//
// Graph nodes are immutable, so parameters live outside the graph as plain
// values. Every step builds a fresh graph from new leaves, which also means
// gradients never have to be reset between steps.
//
// Example usage:
//
//	// f(x, y) = (x - 3)² + (y + 1)²
//	objective := func(p []*autodiff.Node) (*autodiff.Node, error) {
//	    a, err := p[0].SubConst(3).PowConst(2)
//	    if err != nil {
//	        return nil, err
//	    }
//	    b, err := p[1].AddConst(1).PowConst(2)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return a.Add(b), nil
//	}
//
//	sol, err := optim.Minimize(objective, []float64{0, 0},
//	    optim.NewAdam(optim.AdamConfig{LR: 0.1}),
//	    optim.MinimizeConfig{Steps: 500})
package optim

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"go.uber.org/zap"
)

// Optimizer is the base interface for all optimization algorithms.
//
// Optimizers update parameters based on computed gradients to minimize the
// objective.
//
// All optimizers must implement:
//   - Step: Apply gradient updates to parameters
//   - GetLR: Get current learning rate (for monitoring/scheduling)
type Optimizer interface {
	// Step applies gradient updates to params in place.
	// grads[i] is the gradient of the objective with respect to params[i].
	Step(params, grads []float64)

	// GetLR returns the current learning rate.
	GetLR() float64
}

// Objective builds the graph of the function to minimize over the given
// parameter leaves and returns its output.
type Objective func(params []*autodiff.Node) (*autodiff.Node, error)

// MinimizeConfig holds configuration for Minimize.
//
// Zero fields take their defaults, so Steps: 0 runs 100 steps rather than
// evaluating only. Negative Steps are rejected with ErrInvalidSteps.
type MinimizeConfig struct {
	Steps     int         // Maximum number of optimizer steps (default: 100)
	Tolerance float64     // Stop once every |gradient| is below this (default: 0, never)
	Logger    *zap.Logger // Debug logging of every step (default: no-op)
}

// Solution is the result of Minimize.
type Solution struct {
	Params []float64 // Parameters after the last step
	Value  float64   // Objective value at Params
	Steps  int       // Optimizer steps taken
}

var (
	// ErrNonFinite is returned when the objective or a gradient stops being a
	// finite number.
	ErrNonFinite = errors.New("objective is not finite")

	// ErrInvalidSteps is returned for a negative step count.
	ErrInvalidSteps = errors.New("steps must not be negative")
)

// Minimize runs opt on objective starting from init.
//
// Each iteration:
//  1. Create one leaf per parameter
//  2. Build the objective graph and run the backward pass
//  3. Stop if every gradient is within tolerance
//  4. Apply an optimizer step
//
// The returned solution holds the objective value at the final parameters.
func Minimize(objective Objective, init []float64, opt Optimizer, config MinimizeConfig) (*Solution, error) {
	if config.Steps < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSteps, config.Steps)
	}
	if config.Steps == 0 {
		config.Steps = 100
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	params := append([]float64(nil), init...)
	grads := make([]float64, len(params))

	for step := 0; ; step++ {
		value, err := evaluate(objective, params, grads)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}
		logger.Debug("minimize step",
			zap.Int("step", step),
			zap.Float64("value", value),
			zap.Float64s("params", params),
			zap.Float64s("grads", grads))

		if step >= config.Steps || converged(grads, config.Tolerance) {
			return &Solution{Params: params, Value: value, Steps: step}, nil
		}
		opt.Step(params, grads)
	}
}

// evaluate computes the objective at params and stores its gradient in grads.
func evaluate(objective Objective, params, grads []float64) (float64, error) {
	leaves := make([]*autodiff.Node, len(params))
	for i, p := range params {
		leaves[i] = autodiff.Var(p)
	}

	out, err := objective(leaves)
	if err != nil {
		return 0, err
	}
	if err := out.Backward(); err != nil {
		return 0, err
	}

	if math.IsNaN(out.Value()) || math.IsInf(out.Value(), 0) {
		return 0, ErrNonFinite
	}
	for i, leaf := range leaves {
		grads[i] = leaf.GradOr(0)
		if math.IsNaN(grads[i]) || math.IsInf(grads[i], 0) {
			return 0, fmt.Errorf("gradient %d: %w", i, ErrNonFinite)
		}
	}
	return out.Value(), nil
}

// converged reports whether every gradient is within tol.
func converged(grads []float64, tol float64) bool {
	if tol <= 0 {
		return false
	}
	for _, g := range grads {
		if math.Abs(g) >= tol {
			return false
		}
	}
	return true
}
