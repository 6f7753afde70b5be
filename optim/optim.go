// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/scalargrad/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// SGD represents the SGD optimizer with optional momentum.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer.
func NewAdam(config AdamConfig) *Adam {
	return optim.NewAdam(config)
}

// Objective builds the function to minimize over parameter leaves.
type Objective = optim.Objective

// MinimizeConfig contains configuration for Minimize.
type MinimizeConfig = optim.MinimizeConfig

// Solution is the result of Minimize.
type Solution = optim.Solution

// Errors returned by Minimize.
var (
	ErrNonFinite    = optim.ErrNonFinite
	ErrInvalidSteps = optim.ErrInvalidSteps
)

// Minimize runs opt on objective starting from init.
func Minimize(objective Objective, init []float64, opt Optimizer, config MinimizeConfig) (*Solution, error) {
	return optim.Minimize(objective, init, opt, config)
}

