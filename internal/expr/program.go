package expr

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Program is an expression together with the variables it is evaluated
// at, as read from YAML:
//
//	expression: x*y + pow(x, 2) - 1/y
//	variables:
//	  - name: x
//	    value: 2
//	  - name: y
//	    value: 3
//	    requires_grad: false
type Program struct {
	Expression string     `yaml:"expression"`
	Variables  []Variable `yaml:"variables"`
}

// Variable is a named leaf. RequiresGrad defaults to true.
type Variable struct {
	Name         string `yaml:"name"`
	Value        any    `yaml:"value"`
	RequiresGrad *bool  `yaml:"requires_grad,omitempty"`
}

// Gradient is the derivative of the output with respect to one variable.
type Gradient struct {
	Name  string
	Value float64
}

// Result is the outcome of evaluating a program.
type Result struct {
	Value     float64
	Gradients []Gradient // sorted by name; variables without gradients are omitted
}

// LoadProgram reads a YAML program from path.
func LoadProgram(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	return ParseProgram(data)
}

// ParseProgram parses a YAML program.
func ParseProgram(data []byte) (*Program, error) {
	var p Program
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse program: %w", err)
	}
	if p.Expression == "" {
		return nil, errors.New("parse program: missing expression")
	}
	return &p, nil
}

// Env creates one leaf per variable. Values that are not numbers fail with
// *autodiff.InvalidValueError.
func (p *Program) Env() (Env, error) {
	env := make(Env, len(p.Variables))
	for _, v := range p.Variables {
		if v.Name == "" {
			return nil, errors.New("variable without name")
		}
		if _, dup := env[v.Name]; dup {
			return nil, fmt.Errorf("variable %q declared twice", v.Name)
		}

		requiresGrad := true
		if v.RequiresGrad != nil {
			requiresGrad = *v.RequiresGrad
		}
		n, err := autodiff.New(v.Value, requiresGrad)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		env[v.Name] = n
	}
	return env, nil
}

// Evaluate compiles the expression, runs the backward pass and collects
// the gradient of every variable.
func (p *Program) Evaluate(logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	env, err := p.Env()
	if err != nil {
		return nil, err
	}

	out, err := Compile(p.Expression, env)
	if err != nil {
		return nil, err
	}
	logger.Debug("expression compiled",
		zap.String("expression", p.Expression),
		zap.Float64("value", out.Value()),
		zap.Int("variables", len(env)))

	if err := out.Backward(autodiff.WithLogger(logger)); err != nil {
		return nil, err
	}

	res := &Result{Value: out.Value()}
	for name, n := range env {
		if g, ok := n.Grad(); ok {
			res.Gradients = append(res.Gradients, Gradient{Name: name, Value: g})
		}
	}
	sort.Slice(res.Gradients, func(i, j int) bool {
		return res.Gradients[i].Name < res.Gradients[j].Name
	})
	return res, nil
}
