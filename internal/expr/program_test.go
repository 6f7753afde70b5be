package expr

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/born-ml/scalargrad/internal/autodiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const chainRuleProgram = `
expression: x*y + pow(x, 2) - 1/y
variables:
  - name: y
    value: 3
  - name: x
    value: 2
  - name: c
    value: 1.5
    requires_grad: false
`

func TestParseProgram(t *testing.T) {
	p, err := ParseProgram([]byte(chainRuleProgram))
	require.NoError(t, err)

	assert.Equal(t, "x*y + pow(x, 2) - 1/y", p.Expression)
	require.Len(t, p.Variables, 3)
	assert.Equal(t, "y", p.Variables[0].Name)
	assert.Nil(t, p.Variables[0].RequiresGrad)
	require.NotNil(t, p.Variables[2].RequiresGrad)
	assert.False(t, *p.Variables[2].RequiresGrad)
}

func TestParseProgram_Invalid(t *testing.T) {
	_, err := ParseProgram([]byte("variables: []"))
	assert.ErrorContains(t, err, "missing expression")

	_, err = ParseProgram([]byte("expression: [unterminated"))
	assert.Error(t, err)
}

func TestProgram_Evaluate(t *testing.T) {
	p, err := ParseProgram([]byte(chainRuleProgram))
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)
	res, err := p.Evaluate(zap.New(core))
	require.NoError(t, err)

	assert.InDelta(t, 6+4-1.0/3, res.Value, 1e-12)
	require.Len(t, res.Gradients, 2, "constant c has no gradient")
	assert.Equal(t, "x", res.Gradients[0].Name)
	assert.Equal(t, 7.0, res.Gradients[0].Value)
	assert.Equal(t, "y", res.Gradients[1].Name)
	assert.InDelta(t, 2+1.0/9, res.Gradients[1].Value, 1e-12)

	assert.Equal(t, 1, logs.FilterMessage("expression compiled").Len())
	assert.NotZero(t, logs.FilterMessage("backward: fired").Len())
}

func TestProgram_EvaluateNilLogger(t *testing.T) {
	p := &Program{
		Expression: "x * 10 + y",
		Variables: []Variable{
			{Name: "x", Value: 10},
			{Name: "y", Value: 3, RequiresGrad: new(bool)},
		},
	}

	res, err := p.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, 103.0, res.Value)
	assert.Equal(t, []Gradient{{Name: "x", Value: 10}}, res.Gradients)
}

func TestProgram_InvalidValue(t *testing.T) {
	p, err := ParseProgram([]byte(`
expression: x + 1
variables:
  - name: x
    value: a
`))
	require.NoError(t, err)

	_, err = p.Evaluate(nil)
	var invalid *autodiff.InvalidValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "a", invalid.Value)
	assert.Contains(t, err.Error(), `variable "x"`)
}

func TestProgram_EnvErrors(t *testing.T) {
	p := &Program{Expression: "x", Variables: []Variable{{Name: "x", Value: 1}, {Name: "x", Value: 2}}}
	_, err := p.Env()
	assert.ErrorContains(t, err, "declared twice")

	p = &Program{Expression: "x", Variables: []Variable{{Value: 1}}}
	_, err = p.Env()
	assert.ErrorContains(t, err, "without name")
}

func TestProgram_BackwardError(t *testing.T) {
	p := &Program{
		Expression: "pow(x, 0.5)",
		Variables:  []Variable{{Name: "x", Value: 0}},
	}

	_, err := p.Evaluate(nil)
	assert.ErrorIs(t, err, autodiff.ErrDivisionByZero)
}

func TestLoadProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainRuleProgram), 0o600))

	p, err := LoadProgram(path)
	require.NoError(t, err)
	assert.Len(t, p.Variables, 3)

	_, err = LoadProgram(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read program")
}
