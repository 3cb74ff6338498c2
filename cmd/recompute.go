package main

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var recomputeGame string

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Score a game and persist the current ranking",
	Long:  "Runs the scoring engine once and upserts every participant's current score, position and change since the baseline. Baseline fields are left untouched.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx, nil)
		if err != nil {
			return err
		}
		defer env.Close()

		sum, err := env.Service.Recompute(ctx, recomputeGame)
		if err != nil {
			return eris.Wrap(err, "recompute")
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d participants ranked, %d rows written in %s\n",
			sum.GameID, sum.Participants, sum.Written, sum.FinishedAt.Sub(sum.StartedAt).Round(time.Millisecond))
		return nil
	},
}

func init() {
	recomputeCmd.Flags().StringVar(&recomputeGame, "game", "", "game id (required)")
	_ = recomputeCmd.MarkFlagRequired("game")
	rootCmd.AddCommand(recomputeCmd)
}
