package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/pool-cli/internal/export"
)

var (
	breakdownGame        string
	breakdownParticipant string
	breakdownFormat      string
)

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show one participant's per-question scores",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if breakdownFormat != "table" && breakdownFormat != "json" {
			return eris.Errorf("--format must be table or json (got %q)", breakdownFormat)
		}

		env, err := initService(ctx, nil)
		if err != nil {
			return err
		}
		defer env.Close()

		card, ok, err := env.Service.Breakdown(ctx, breakdownGame, breakdownParticipant)
		if err != nil {
			return eris.Wrap(err, "breakdown")
		}
		if !ok {
			return eris.Errorf("participant %q has no predictions in game %s", breakdownParticipant, breakdownGame)
		}

		if breakdownFormat == "json" {
			return export.WriteCardJSON(cmd.OutOrStdout(), card)
		}
		return export.WriteBreakdown(cmd.OutOrStdout(), card)
	},
}

func init() {
	breakdownCmd.Flags().StringVar(&breakdownGame, "game", "", "game id (required)")
	breakdownCmd.Flags().StringVar(&breakdownParticipant, "participant", "", "participant display name (required)")
	breakdownCmd.Flags().StringVar(&breakdownFormat, "format", "table", "output format: table or json")
	_ = breakdownCmd.MarkFlagRequired("game")
	_ = breakdownCmd.MarkFlagRequired("participant")
	rootCmd.AddCommand(breakdownCmd)
}
