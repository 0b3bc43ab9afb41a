// Package cmd implements the calcpro command line.
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"calcpro/internal/config"
)

// options carries global flags and what PersistentPreRunE builds from them.
type options struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *zap.Logger
}

// Execute runs the calcpro root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "calcpro",
		Short: "Decimal-exact arithmetic on the command line",
		Long: `calcpro adds, subtracts, multiplies and divides decimal numbers without
binary floating-point artifacts: "calcpro add 0.1 0.2" prints 0.3.

Negative operands must follow "--", for example: calcpro sub -- -5 2`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.log.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default $"+config.PathEnv+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log each operation to stderr")

	root.AddCommand(
		newBinaryCmd(opts, "add", []string{"plus"}, "Add two numbers"),
		newBinaryCmd(opts, "sub", []string{"subtract", "minus"}, "Subtract B from A"),
		newBinaryCmd(opts, "mul", []string{"multiply", "times"}, "Multiply two numbers"),
		newBinaryCmd(opts, "div", []string{"divide"}, "Divide A by B"),
		newAccumulateCmd(opts),
		newChainCmd(opts),
		newDigitsCmd(),
		newVersionCmd(),
	)

	return root
}

func (o *options) init() error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if o.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		o.log = logger
	}
	return nil
}

func parseOperand(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func parseOperands(args []string) ([]float64, error) {
	values := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := parseOperand(arg)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func formatResult(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
