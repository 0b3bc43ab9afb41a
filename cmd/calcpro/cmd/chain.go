package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calcpro"
)

// step is one parsed OP:V[,V...] argument.
type step struct {
	op     calcpro.Operator
	values []float64
}

func parseStep(arg string) (step, error) {
	name, list, ok := strings.Cut(arg, ":")
	if !ok {
		return step{}, fmt.Errorf("step %q: expected OP:V[,V...]", arg)
	}
	op, err := calcpro.ParseOperator(name)
	if err != nil {
		return step{}, fmt.Errorf("step %q: %w", arg, err)
	}
	s := step{op: op}
	if list == "" {
		return s, nil
	}
	s.values, err = parseOperands(strings.Split(list, ","))
	if err != nil {
		return step{}, fmt.Errorf("step %q: %w", arg, err)
	}
	return s, nil
}

func newChainCmd(opts *options) *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "chain [--precision N] OP:V[,V...]...",
		Short: "Run a sequence of operations on a running value",
		Long: `chain feeds every step into one accumulator. The first step starts from
its own operands; later steps fold into the running value.`,
		Example: `  calcpro chain --precision 6 div:10000,0.00011
  calcpro chain sub:5,2 mul:4 add:0.1,0.2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := make([]step, 0, len(args))
			total := 0
			for _, arg := range args {
				s, err := parseStep(arg)
				if err != nil {
					return err
				}
				steps = append(steps, s)
				total += len(s.values)
			}
			if limit := opts.cfg.Calculator.MaxOperands; total > limit {
				return fmt.Errorf("%d values exceed the limit of %d", total, limit)
			}

			if !cmd.Flags().Changed("precision") {
				precision = opts.cfg.Calculator.DefaultPrecision
			}

			acc := calcpro.New(calcpro.WithPrecision(precision))
			for i, s := range steps {
				if err := acc.Apply(s.op, s.values...).Err(); err != nil {
					return fmt.Errorf("step %d: %w", i, err)
				}
				running, _ := acc.Value()
				opts.log.Debug("chain step completed",
					zap.Int("step", i),
					zap.String("operation", s.op.Name()),
					zap.Float64s("values", s.values),
					zap.Float64("result", running),
				)
			}

			result, err := acc.Value()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatResult(result))
			return nil
		},
	}

	cmd.Flags().IntVarP(&precision, "precision", "p", -1, "round the result to N decimal places (negative: no rounding)")

	return cmd
}
