package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/scalargrad/internal/expr"
	"github.com/spf13/cobra"
)

var (
	gradExpr   string
	gradFile   string
	gradVars   []string
	gradConsts []string
)

// gradCmd evaluates an expression and prints its gradients
var gradCmd = &cobra.Command{
	Use:   "grad",
	Short: "Evaluate an expression and print its gradients",
	Example: `  scalargrad grad --expr "x*y + pow(x, 2) - 1/y" --var x=2 --var y=3
  scalargrad grad --file program.yaml`,
	Args: cobra.NoArgs,
	RunE: runGrad,
}

func init() {
	gradCmd.Flags().StringVarP(&gradExpr, "expr", "e", "", "Expression to differentiate")
	gradCmd.Flags().StringVarP(&gradFile, "file", "f", "", "YAML program with expression and variables")
	gradCmd.Flags().StringArrayVar(&gradVars, "var", nil, "Variable that requires gradients, as name=value (repeatable)")
	gradCmd.Flags().StringArrayVar(&gradConsts, "const", nil, "Variable without gradients, as name=value (repeatable)")
}

func runGrad(cmd *cobra.Command, args []string) error {
	program, err := gradProgram()
	if err != nil {
		return err
	}

	res, err := program.Evaluate(logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "value = %s\n", formatFloat(res.Value))
	for _, g := range res.Gradients {
		fmt.Fprintf(out, "d/d%s = %s\n", g.Name, formatFloat(g.Value))
	}
	return nil
}

// gradProgram builds the program from either --file or --expr and the
// variable flags.
func gradProgram() (*expr.Program, error) {
	if gradFile != "" && gradExpr != "" {
		return nil, errors.New("--file and --expr are mutually exclusive")
	}

	var program *expr.Program
	if gradFile != "" {
		var err error
		if program, err = expr.LoadProgram(gradFile); err != nil {
			return nil, err
		}
	} else {
		if gradExpr == "" {
			return nil, errors.New("an expression is required (--expr or --file)")
		}
		program = &expr.Program{Expression: gradExpr}
	}

	for _, binding := range gradVars {
		v, err := parseBinding(binding, true)
		if err != nil {
			return nil, err
		}
		program.Variables = append(program.Variables, v)
	}
	for _, binding := range gradConsts {
		v, err := parseBinding(binding, false)
		if err != nil {
			return nil, err
		}
		program.Variables = append(program.Variables, v)
	}
	return program, nil
}

// parseBinding parses name=value. A value that is not a number is kept as
// a string so that leaf construction reports it.
func parseBinding(binding string, requiresGrad bool) (expr.Variable, error) {
	name, raw, ok := strings.Cut(binding, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return expr.Variable{}, fmt.Errorf("invalid binding %q, expected name=value", binding)
	}

	var value any = strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		value = f
	}
	return expr.Variable{Name: name, Value: value, RequiresGrad: &requiresGrad}, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
