package optim

import "math"

// Adam scales each parameter's step by running estimates of the mean (m)
// and uncentred variance (v) of its gradient (Kingma & Ba, 2014):
//
//	m ← β1·m + (1−β1)·g
//	v ← β2·v + (1−β2)·g²
//	p ← p − lr · m̂ / (√v̂ + ε),  m̂ = m/(1−β1ᵗ), v̂ = v/(1−β2ᵗ)
//
// The bias correction makes the first steps about lr long regardless of
// the gradient scale.
type Adam struct {
	cfg  AdamConfig
	t    int
	m, v []float64
}

// AdamConfig configures NewAdam. Zero fields take their defaults, so a
// decay rate of exactly 0 cannot be requested; use a tiny positive value
// such as 1e-12 instead.
type AdamConfig struct {
	LR    float64    // step size, 0.001 when zero
	Betas [2]float64 // β1, β2 decay rates, 0.9 and 0.999 when zero
	Eps   float64    // ε added to √v̂, 1e-8 when zero
}

// NewAdam returns an Adam optimizer.
func NewAdam(cfg AdamConfig) *Adam {
	defaults := [...]struct {
		field *float64
		value float64
	}{
		{&cfg.LR, 0.001},
		{&cfg.Betas[0], 0.9},
		{&cfg.Betas[1], 0.999},
		{&cfg.Eps, 1e-8},
	}
	for _, d := range defaults {
		if *d.field == 0 {
			*d.field = d.value
		}
	}
	return &Adam{cfg: cfg}
}

// Step updates the moment estimates and moves every parameter. The
// estimates restart when the number of parameters changes.
func (a *Adam) Step(params, grads []float64) {
	if len(a.m) != len(params) {
		a.m = make([]float64, len(params))
		a.v = make([]float64, len(params))
		a.t = 0
	}
	a.t++

	b1, b2 := a.cfg.Betas[0], a.cfg.Betas[1]
	c1 := 1 - math.Pow(b1, float64(a.t))
	c2 := 1 - math.Pow(b2, float64(a.t))

	for i, g := range grads {
		a.m[i] = b1*a.m[i] + (1-b1)*g
		a.v[i] = b2*a.v[i] + (1-b2)*g*g
		params[i] -= a.cfg.LR * (a.m[i] / c1) / (math.Sqrt(a.v[i]/c2) + a.cfg.Eps)
	}
}

// GetLR returns the step size.
func (a *Adam) GetLR() float64 { return a.cfg.LR }

// SetLR changes the step size for subsequent steps.
func (a *Adam) SetLR(lr float64) { a.cfg.LR = lr }

// GetTimestep returns the number of steps taken.
func (a *Adam) GetTimestep() int { return a.t }
