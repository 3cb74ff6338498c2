package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	baselineGame    string
	baselineRefresh bool
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Capture the stored ranking as the new baseline",
	Long:  "Copies every participant's current score and position into the baseline fields and zeroes the changes. With --refresh the ranking is recomputed first.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		env, err := initService(ctx, nil)
		if err != nil {
			return err
		}
		defer env.Close()

		sum, err := env.Service.SetBaseline(ctx, baselineGame, baselineRefresh)
		if err != nil {
			return eris.Wrap(err, "set baseline")
		}
		if sum.Participants == 0 {
			zap.L().Warn("no stored ranking to capture, run 'recompute' or pass --refresh",
				zap.String("game", baselineGame))
			return nil
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: baseline captured for %d participants\n",
			sum.GameID, sum.Written)
		return nil
	},
}

func init() {
	baselineCmd.Flags().StringVar(&baselineGame, "game", "", "game id (required)")
	baselineCmd.Flags().BoolVar(&baselineRefresh, "refresh", false, "recompute the ranking before capturing it")
	_ = baselineCmd.MarkFlagRequired("game")
	rootCmd.AddCommand(baselineCmd)
}
