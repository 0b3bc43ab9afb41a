package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"calcpro"
)

func newDigitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digits X",
		Short: "Show the integer and decimal digit counts of a number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseOperand(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "integer=%d decimal=%d\n", calcpro.IntegerDigits(x), calcpro.DecimalDigits(x))
			return nil
		},
	}
}
