package optim_test

import (
	"testing"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/optim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// quadratic is f(x, y) = (x - 3)² + (y + 1)², minimized at (3, -1).
func quadratic(p []*autodiff.Node) (*autodiff.Node, error) {
	a, err := p[0].SubConst(3).PowConst(2)
	if err != nil {
		return nil, err
	}
	b, err := p[1].AddConst(1).PowConst(2)
	if err != nil {
		return nil, err
	}
	return a.Add(b), nil
}

// TestSGD_SimpleUpdate tests SGD without momentum.
func TestSGD_SimpleUpdate(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1})

	params := []float64{2.0}
	optimizer.Step(params, []float64{1.0})

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0
	assert.InDelta(t, 1.9, params[0], 1e-12)
}

// TestSGD_WithMomentum tests SGD with momentum.
func TestSGD_WithMomentum(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.1, Momentum: 0.9})

	params := []float64{1.0}

	// velocity = 1, x = 1 - 0.1*1
	optimizer.Step(params, []float64{1.0})
	assert.InDelta(t, 0.9, params[0], 1e-12)

	// velocity = 0.9*1 + 1 = 1.9, x = 0.9 - 0.1*1.9
	optimizer.Step(params, []float64{1.0})
	assert.InDelta(t, 0.71, params[0], 1e-12)
}

func TestSGD_Defaults(t *testing.T) {
	optimizer := optim.NewSGD(optim.SGDConfig{})
	assert.Equal(t, 0.01, optimizer.GetLR())

	optimizer.SetLR(0.5)
	assert.Equal(t, 0.5, optimizer.GetLR())
}

// TestAdam_FirstStep checks that the bias-corrected first step moves each
// parameter by about lr against the sign of its gradient.
func TestAdam_FirstStep(t *testing.T) {
	optimizer := optim.NewAdam(optim.AdamConfig{LR: 0.1})

	params := []float64{1.0, 1.0}
	optimizer.Step(params, []float64{2.0, -0.5})

	assert.InDelta(t, 0.9, params[0], 1e-6)
	assert.InDelta(t, 1.1, params[1], 1e-6)
	assert.Equal(t, 1, optimizer.GetTimestep())
}

func TestAdam_Defaults(t *testing.T) {
	optimizer := optim.NewAdam(optim.AdamConfig{})
	assert.Equal(t, 0.001, optimizer.GetLR())
	assert.Equal(t, 0, optimizer.GetTimestep())

	optimizer.SetLR(0.01)
	assert.Equal(t, 0.01, optimizer.GetLR())
}

func TestMinimize_SGD(t *testing.T) {
	sol, err := optim.Minimize(quadratic, []float64{0, 0},
		optim.NewSGD(optim.SGDConfig{LR: 0.1}),
		optim.MinimizeConfig{Steps: 200})
	require.NoError(t, err)

	assert.Equal(t, 200, sol.Steps)
	assert.InDelta(t, 3.0, sol.Params[0], 1e-9)
	assert.InDelta(t, -1.0, sol.Params[1], 1e-9)
	assert.InDelta(t, 0.0, sol.Value, 1e-12)
}

func TestMinimize_Momentum(t *testing.T) {
	sol, err := optim.Minimize(quadratic, []float64{0, 0},
		optim.NewSGD(optim.SGDConfig{LR: 0.05, Momentum: 0.5}),
		optim.MinimizeConfig{Steps: 300})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, sol.Params[0], 1e-6)
	assert.InDelta(t, -1.0, sol.Params[1], 1e-6)
}

func TestMinimize_Adam(t *testing.T) {
	sol, err := optim.Minimize(quadratic, []float64{0, 0},
		optim.NewAdam(optim.AdamConfig{LR: 0.1}),
		optim.MinimizeConfig{Steps: 1000})
	require.NoError(t, err)

	// Starting value is 10.
	assert.Less(t, sol.Value, 0.05)
	assert.InDelta(t, 3.0, sol.Params[0], 0.2)
	assert.InDelta(t, -1.0, sol.Params[1], 0.2)
}

func TestMinimize_Tolerance(t *testing.T) {
	sol, err := optim.Minimize(quadratic, []float64{0, 0},
		optim.NewSGD(optim.SGDConfig{LR: 0.1}),
		optim.MinimizeConfig{Steps: 10000, Tolerance: 1e-6})
	require.NoError(t, err)

	assert.Less(t, sol.Steps, 10000)
	assert.InDelta(t, 3.0, sol.Params[0], 1e-6)
}

// TestMinimize_DefaultSteps uses f(x) = x, whose gradient is always 1.
func TestMinimize_DefaultSteps(t *testing.T) {
	identity := func(p []*autodiff.Node) (*autodiff.Node, error) {
		return p[0], nil
	}

	sol, err := optim.Minimize(identity, []float64{0},
		optim.NewSGD(optim.SGDConfig{}),
		optim.MinimizeConfig{})
	require.NoError(t, err)

	assert.Equal(t, 100, sol.Steps)
	assert.InDelta(t, -1.0, sol.Params[0], 1e-9)
}

func TestMinimize_DoesNotModifyInit(t *testing.T) {
	init := []float64{0, 0}
	_, err := optim.Minimize(quadratic, init,
		optim.NewSGD(optim.SGDConfig{LR: 0.1}),
		optim.MinimizeConfig{Steps: 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, init)
}

func TestMinimize_Errors(t *testing.T) {
	t.Run("objective error", func(t *testing.T) {
		divide := func(p []*autodiff.Node) (*autodiff.Node, error) {
			return p[0].DivConst(0)
		}
		_, err := optim.Minimize(divide, []float64{1},
			optim.NewSGD(optim.SGDConfig{}), optim.MinimizeConfig{})
		assert.ErrorIs(t, err, autodiff.ErrDivisionByZero)
		assert.ErrorContains(t, err, "step 0")
	})

	t.Run("nan gradient", func(t *testing.T) {
		// d/dy x^y is NaN for a negative base.
		power := func(p []*autodiff.Node) (*autodiff.Node, error) {
			return p[0].Pow(p[1])
		}
		_, err := optim.Minimize(power, []float64{-2, 2},
			optim.NewSGD(optim.SGDConfig{}), optim.MinimizeConfig{})
		assert.ErrorIs(t, err, optim.ErrNonFinite)
		assert.ErrorContains(t, err, "gradient 1")
	})
}

func TestMinimize_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := optim.Minimize(quadratic, []float64{0, 0},
		optim.NewSGD(optim.SGDConfig{LR: 0.1}),
		optim.MinimizeConfig{Steps: 3, Logger: zap.New(core)})
	require.NoError(t, err)

	entries := logs.FilterMessage("minimize step").All()
	require.Len(t, entries, 4)
	assert.Equal(t, int64(3), entries[3].ContextMap()["step"])
	assert.Equal(t, 10.0, entries[0].ContextMap()["value"])
}

func TestMinimize_NegativeSteps(t *testing.T) {
	square := func(p []*autodiff.Node) (*autodiff.Node, error) {
		return p[0].Mul(p[0]), nil
	}

	_, err := optim.Minimize(square, []float64{1},
		optim.NewSGD(optim.SGDConfig{LR: 1e-12}),
		optim.MinimizeConfig{Steps: -1})
	assert.ErrorIs(t, err, optim.ErrInvalidSteps)
}

// TestAdam_ZeroFieldsTakeDefaults checks that an empty config steps exactly
// like one spelling out the defaults.
func TestAdam_ZeroFieldsTakeDefaults(t *testing.T) {
	implicit := optim.NewAdam(optim.AdamConfig{})
	explicit := optim.NewAdam(optim.AdamConfig{LR: 0.001, Betas: [2]float64{0.9, 0.999}, Eps: 1e-8})

	a, b := []float64{1, -2}, []float64{1, -2}
	for i := 0; i < 3; i++ {
		implicit.Step(a, []float64{0.5, -3})
		explicit.Step(b, []float64{0.5, -3})
	}
	assert.Equal(t, b, a)
}
