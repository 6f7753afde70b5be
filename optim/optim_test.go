// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim_test

import (
	"testing"

	"github.com/born-ml/scalargrad/autodiff"
	"github.com/born-ml/scalargrad/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimize(t *testing.T) {
	objective := func(p []*autodiff.Node) (*autodiff.Node, error) {
		return p[0].SubConst(3).PowConst(2)
	}

	sol, err := optim.Minimize(objective, []float64{0},
		optim.NewSGD(optim.SGDConfig{LR: 0.1}),
		optim.MinimizeConfig{Steps: 200, Tolerance: 1e-9})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, sol.Params[0], 1e-8)
	assert.Less(t, sol.Steps, 200)
}

func TestOptimizerInterface(t *testing.T) {
	var _ optim.Optimizer = optim.NewSGD(optim.SGDConfig{})
	var _ optim.Optimizer = optim.NewAdam(optim.AdamConfig{})
}
