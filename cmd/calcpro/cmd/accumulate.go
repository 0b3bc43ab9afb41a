package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calcpro"
)

func newAccumulateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "accumulate OP V...",
		Aliases: []string{"fold"},
		Short:   "Fold values left to right through one operator",
		Example: `  calcpro accumulate add 0.1 0.2 0.3
  calcpro accumulate / 100 4 5`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := calcpro.ParseOperator(args[0])
			if err != nil {
				return err
			}
			values, err := parseOperands(args[1:])
			if err != nil {
				return err
			}
			if limit := opts.cfg.Calculator.MaxOperands; len(values) > limit {
				return fmt.Errorf("%d values exceed the limit of %d", len(values), limit)
			}

			result, err := calcpro.Accumulate(op, values...)
			if err != nil {
				return err
			}

			opts.log.Debug("accumulation completed",
				zap.String("operation", op.Name()),
				zap.Int("operands", len(values)),
				zap.Float64("result", result),
			)
			fmt.Fprintln(cmd.OutOrStdout(), formatResult(result))
			return nil
		},
	}
}
