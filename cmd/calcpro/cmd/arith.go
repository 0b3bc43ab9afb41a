package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calcpro"
)

// newBinaryCmd builds one of add, sub, mul and div.
func newBinaryCmd(opts *options, name string, aliases []string, short string) *cobra.Command {
	return &cobra.Command{
		Use:     name + " A B",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := calcpro.ParseOperator(name)
			if err != nil {
				return err
			}
			values, err := parseOperands(args)
			if err != nil {
				return err
			}

			result, err := calcpro.Apply(op, values[0], values[1])
			if err != nil {
				return err
			}

			opts.log.Debug("operation completed",
				zap.String("operation", op.Name()),
				zap.Float64("a", values[0]),
				zap.Float64("b", values[1]),
				zap.Float64("result", result),
			)
			fmt.Fprintln(cmd.OutOrStdout(), formatResult(result))
			return nil
		},
	}
}
