package optim

// SGD is plain gradient descent, optionally with heavy-ball momentum.
//
//	p ← p − lr·g                   (Momentum == 0)
//	v ← μ·v + g;  p ← p − lr·v     (Momentum == μ)
//
// The velocity is sized on the first step; changing the number of
// parameters afterwards restarts it from zero.
type SGD struct {
	cfg      SGDConfig
	velocity []float64
}

// SGDConfig configures NewSGD. A zero LR takes the default; a zero
// Momentum means no momentum.
type SGDConfig struct {
	LR       float64 // step size, 0.01 when zero
	Momentum float64 // μ in [0, 1), 0 disables momentum
}

// NewSGD returns an SGD optimizer.
func NewSGD(cfg SGDConfig) *SGD {
	if cfg.LR == 0 {
		cfg.LR = 0.01
	}
	return &SGD{cfg: cfg}
}

// Step moves every parameter against its gradient.
func (s *SGD) Step(params, grads []float64) {
	if s.cfg.Momentum == 0 {
		for i, g := range grads {
			params[i] -= s.cfg.LR * g
		}
		return
	}

	if len(s.velocity) != len(params) {
		s.velocity = make([]float64, len(params))
	}
	for i, g := range grads {
		s.velocity[i] = s.cfg.Momentum*s.velocity[i] + g
		params[i] -= s.cfg.LR * s.velocity[i]
	}
}

// GetLR returns the step size.
func (s *SGD) GetLR() float64 { return s.cfg.LR }

// SetLR changes the step size for subsequent steps.
func (s *SGD) SetLR(lr float64) { s.cfg.LR = lr }
