package autodiff

import (
	"fmt"

	"go.uber.org/zap"
)

// BackwardOption configures a backward pass.
type BackwardOption func(*backwardConfig)

type backwardConfig struct {
	logger *zap.Logger
}

// WithLogger logs the schedule and every fired node at debug level.
func WithLogger(logger *zap.Logger) BackwardOption {
	return func(c *backwardConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Backward computes the gradient of n with respect to every differentiable
// node it depends on.
//
// Algorithm:
//  1. Seed the gradient of n with 1
//  2. Count, for every reachable differentiable node, its parents
//  3. Fire nodes in reverse topological order: each one adds
//     local partial × own gradient into its operands' gradients
//
// Gradients are accumulated, never reset: call ZeroGrad (or ZeroGradGraph)
// between passes that share nodes. Backward on a node that does not require
// gradients does nothing.
//
// A native arithmetic error raised by a local derivative rule aborts the
// pass; gradients already accumulated are left as they are.
func (n *Node) Backward(opts ...BackwardOption) error {
	cfg := backwardConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !n.requiresGrad {
		cfg.logger.Debug("backward: root does not require grad", zap.Stringer("root", n))
		return nil
	}

	n.grad = 1

	t := record(n)
	cfg.logger.Debug("backward: schedule recorded", zap.Int("nodes", t.Len()))

	err := t.replay(func(fired *Node) {
		cfg.logger.Debug("backward: fired",
			zap.String("op", fired.Op()),
			zap.Float64("value", fired.value),
			zap.Float64("grad", fired.grad))
	})
	if err != nil {
		return fmt.Errorf("backward: %w", err)
	}
	return nil
}

// propagate applies the local derivative rule of n: every operand that
// requires gradients receives local partial × n.grad.
func (n *Node) propagate() error {
	inputs := n.inputs()
	values := make([]float64, len(inputs))
	for i, in := range inputs {
		values[i] = in.value
	}

	grads, err := n.op.Backward(values, n.grad)
	if err != nil {
		return err
	}

	for i, in := range inputs {
		if in.requiresGrad {
			in.grad += grads[i]
		}
	}
	return nil
}

// ZeroGrad resets the gradient to 0. It is a no-op for nodes that do not
// require gradients and does not touch operands.
func (n *Node) ZeroGrad() {
	if !n.requiresGrad {
		return
	}
	n.grad = 0
}

// ZeroGradGraph resets the gradient of n and of every node n depends on.
func (n *Node) ZeroGradGraph() {
	if !n.requiresGrad {
		return
	}

	seen := map[*Node]struct{}{n: {}}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.ZeroGrad()

		for _, in := range cur.inputs() {
			if _, ok := seen[in]; ok || !in.requiresGrad {
				continue
			}
			seen[in] = struct{}{}
			stack = append(stack, in)
		}
	}
}
