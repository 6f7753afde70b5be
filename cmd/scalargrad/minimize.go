package main

import (
	"fmt"

	"github.com/born-ml/scalargrad/internal/optim"
	"github.com/spf13/cobra"
)

var (
	minOptimizer string
	minLR        float64
	minMomentum  float64
	minSteps     int
	minTolerance float64
)

// minimizeCmd runs gradient descent on an expression
var minimizeCmd = &cobra.Command{
	Use:   "minimize",
	Short: "Minimize an expression over its gradient variables",
	Long: `Minimize treats every --var (or every file variable that requires
gradients) as a parameter and runs the chosen optimizer from the given
starting values. --const variables stay fixed.`,
	Example: `  scalargrad minimize --expr "pow(x - 3, 2) + pow(y + 1, 2)" --var x=0 --var y=0 --lr 0.1
  scalargrad minimize --file program.yaml --optimizer adam --steps 1000`,
	Args: cobra.NoArgs,
	RunE: runMinimize,
}

func init() {
	// Program flags are shared with grad.
	minimizeCmd.Flags().StringVarP(&gradExpr, "expr", "e", "", "Expression to minimize")
	minimizeCmd.Flags().StringVarP(&gradFile, "file", "f", "", "YAML program with expression and variables")
	minimizeCmd.Flags().StringArrayVar(&gradVars, "var", nil, "Parameter with its starting value, as name=value (repeatable)")
	minimizeCmd.Flags().StringArrayVar(&gradConsts, "const", nil, "Fixed variable, as name=value (repeatable)")

	minimizeCmd.Flags().StringVar(&minOptimizer, "optimizer", "sgd", "Optimizer (sgd, adam)")
	minimizeCmd.Flags().Float64Var(&minLR, "lr", 0, "Learning rate (default: 0.01 for sgd, 0.001 for adam)")
	minimizeCmd.Flags().Float64Var(&minMomentum, "momentum", 0, "SGD momentum factor")
	minimizeCmd.Flags().IntVar(&minSteps, "steps", 100, "Maximum number of optimizer steps (0 uses the default of 100)")
	minimizeCmd.Flags().Float64Var(&minTolerance, "tolerance", 0, "Stop once every |gradient| is below this")
}

func runMinimize(cmd *cobra.Command, args []string) error {
	if minSteps < 0 {
		return fmt.Errorf("--steps must not be negative, got %d", minSteps)
	}

	opt, err := newOptimizer()
	if err != nil {
		return err
	}

	program, err := gradProgram()
	if err != nil {
		return err
	}

	sol, err := program.Minimize(opt, optim.MinimizeConfig{
		Steps:     minSteps,
		Tolerance: minTolerance,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "value = %s\n", formatFloat(sol.Value))
	for _, p := range sol.Params {
		fmt.Fprintf(out, "%s = %s\n", p.Name, formatFloat(p.Value))
	}
	fmt.Fprintf(out, "steps = %d\n", sol.Steps)
	return nil
}

func newOptimizer() (optim.Optimizer, error) {
	switch minOptimizer {
	case "sgd":
		return optim.NewSGD(optim.SGDConfig{LR: minLR, Momentum: minMomentum}), nil
	case "adam":
		return optim.NewAdam(optim.AdamConfig{LR: minLR}), nil
	default:
		return nil, fmt.Errorf("unknown optimizer %q (want sgd or adam)", minOptimizer)
	}
}
