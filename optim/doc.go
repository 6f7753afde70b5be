// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides gradient-based minimization of scalar functions
// built from autodiff nodes.
//
// # Overview
//
// This package contains:
//   - SGD: Gradient Descent with momentum
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Optimizer interface for custom optimizers
//   - Minimize: the evaluate, backward, step loop
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/scalargrad/autodiff"
//	    "github.com/born-ml/scalargrad/optim"
//	)
//
//	func main() {
//	    // f(x) = (x - 3)²
//	    objective := func(p []*autodiff.Node) (*autodiff.Node, error) {
//	        return p[0].SubConst(3).PowConst(2)
//	    }
//
//	    sol, err := optim.Minimize(objective, []float64{0},
//	        optim.NewSGD(optim.SGDConfig{LR: 0.1}),
//	        optim.MinimizeConfig{Steps: 200, Tolerance: 1e-9})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(sol.Params[0]) // ≈ 3
//	}
//
// # Optimizers
//
// SGD:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
//
// Adam:
//
//	optimizer := optim.NewAdam(optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	    Eps:   1e-8,
//	})
//
// Each step evaluates the objective on fresh leaves, so gradients from
// earlier steps never leak into later ones.
package optim
