package expr

import (
	"errors"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/born-ml/scalargrad/internal/optim"
	"go.uber.org/zap"
)

// ErrNoParameters is returned by Minimize when no variable requires
// gradients.
var ErrNoParameters = errors.New("no variable requires gradients")

// Param is the final value of one minimized variable.
type Param struct {
	Name  string
	Value float64
}

// Solution is the outcome of minimizing a program.
type Solution struct {
	Value  float64
	Params []Param // in declaration order
	Steps  int
}

// Minimize treats every variable that requires gradients as a parameter
// and runs opt on the expression starting from the declared values. Other
// variables stay constant.
func (p *Program) Minimize(opt optim.Optimizer, config optim.MinimizeConfig) (*Solution, error) {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	env, err := p.Env()
	if err != nil {
		return nil, err
	}

	var (
		names []string
		init  []float64
	)
	for _, v := range p.Variables {
		if n := env[v.Name]; n.RequiresGrad() {
			names = append(names, v.Name)
			init = append(init, n.Value())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoParameters
	}

	objective := func(params []*autodiff.Node) (*autodiff.Node, error) {
		for i, name := range names {
			env[name] = params[i]
		}
		return Compile(p.Expression, env)
	}

	config.Logger.Debug("minimize",
		zap.String("expression", p.Expression),
		zap.Strings("params", names),
		zap.Float64("lr", opt.GetLR()))

	sol, err := optim.Minimize(objective, init, opt, config)
	if err != nil {
		return nil, err
	}

	res := &Solution{Value: sol.Value, Steps: sol.Steps}
	for i, name := range names {
		res.Params = append(res.Params, Param{Name: name, Value: sol.Params[i]})
	}
	return res, nil
}
