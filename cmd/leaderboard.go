package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/pool-cli/internal/export"
)

var (
	boardGame   string
	boardFormat string
	boardOut    string
	boardChart  string
	boardTop    int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the live leaderboard of a game",
	Long:  "Scores the game from the stored questions and predictions and prints the ranking with changes since the last baseline. Nothing is written to the store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		format, err := export.ParseFormat(boardFormat)
		if err != nil {
			return err
		}
		if format == export.FormatXLSX && boardOut == "" {
			return eris.New("--out is required for xlsx output")
		}

		env, err := initService(ctx, nil)
		if err != nil {
			return err
		}
		defer env.Close()

		board, err := env.Service.Live(ctx, boardGame)
		if err != nil {
			return eris.Wrap(err, "leaderboard")
		}

		if err := writeOutput(cmd.OutOrStdout(), boardOut, func(w io.Writer) error {
			return export.Leaderboard(w, format, board)
		}); err != nil {
			return err
		}

		if boardChart != "" {
			err := writeOutput(nil, boardChart, func(w io.Writer) error {
				return export.WriteChart(w, board.Entries, export.ChartOptions{Title: boardGame, Top: boardTop})
			})
			if err != nil {
				return err
			}
			zap.L().Info("chart written", zap.String("path", boardChart))
		}
		return nil
	},
}

// writeOutput runs fn against path, or against stdout when path is empty.
func writeOutput(stdout io.Writer, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	if err := fn(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "close %s", path)
}

func init() {
	leaderboardCmd.Flags().StringVar(&boardGame, "game", "", "game id (required)")
	leaderboardCmd.Flags().StringVar(&boardFormat, "format", "table", "output format: table, csv, json or xlsx")
	leaderboardCmd.Flags().StringVar(&boardOut, "out", "", "write to this file instead of stdout")
	leaderboardCmd.Flags().StringVar(&boardChart, "chart", "", "also write a PNG bar chart to this file")
	leaderboardCmd.Flags().IntVar(&boardTop, "top", 20, "participants drawn in the chart")
	_ = leaderboardCmd.MarkFlagRequired("game")
	rootCmd.AddCommand(leaderboardCmd)
}
