package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/bitvector/shared"
)

func newChoiceCmd(a *app) *cobra.Command {
	var (
		weights []float64
		x       float64
	)

	choiceCmd := &cobra.Command{
		Use:   "choice ELEMENT...",
		Short: "Pick one of the elements at random, proportionally to --weights",
		Long: `choice picks one of the elements with probability proportional to its weight.
If all weights are zero, the element is picked uniformly. --x fixes the uniform
draw in [0, 1] used for the pick.`,
		Example: `  bitvec choice --weights 1,2 --x 0.99 a b   # b`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []shared.ChoiceOption{shared.WithRand(a.rand())}
			if cmd.Flags().Changed("x") {
				opts = append(opts, shared.WithDraw(x))
			}

			e, err := shared.WeightedChoice(args, weights, opts...)
			if err != nil {
				return err
			}
			a.logger.Debug("element chosen", zap.String("element", e), zap.Float64s("weights", weights))
			fmt.Fprintln(cmd.OutOrStdout(), e)
			return nil
		},
	}

	choiceCmd.Flags().Float64SliceVar(&weights, "weights", nil, "comma separated weights, one per element")
	choiceCmd.Flags().Float64Var(&x, "x", 0, "uniform draw in [0, 1]")
	return choiceCmd
}

func newPow2Cmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pow2 N...",
		Short: "Report whether each integer is a power of two",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				n, err := strconv.ParseInt(arg, 0, 64)
				if err != nil {
					return fmt.Errorf("invalid integer %q: %w", arg, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d %t\n", n, shared.IsPowerOfTwo(n))
			}
			a.logger.Debug("checked integers", zap.Int("count", len(args)))
			return nil
		},
	}
}
