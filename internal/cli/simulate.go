package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"chosenoffset.com/pong/internal/game"
)

func newSimulateCmd() *cobra.Command {
	var ticks int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the physics without a window and print the score",
		Long: `simulate steps a game with nobody at the paddles for the given number of
ticks (60 per simulated second) and prints the resulting score.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks < 0 {
				return errors.New("ticks must not be negative")
			}

			g := game.New(nil, nil)
			for i := 0; i < ticks; i++ {
				if err := g.Update(); err != nil {
					return err
				}
			}

			left, right := g.Scores()
			fmt.Fprintf(cmd.OutOrStdout(), "%d-%d after %d ticks (%.1fs)\n",
				left, right, ticks, float64(ticks)*game.DeltaTime)
			return nil
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 60*game.TPS, "Number of ticks to simulate")

	return cmd
}
