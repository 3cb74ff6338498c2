package main

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/pool-cli/internal/fetcher"
	"github.com/sells-group/pool-cli/internal/importer"
	"github.com/sells-group/pool-cli/internal/resilience"
)

var (
	importGame      string
	importFile      string
	importBatchSize int
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import questions or predictions from CSV or XLSX",
	Long:  "Reads a CSV or XLSX sheet by header name. Questions are upserted by id; predictions are appended.",
}

var importQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Upsert questions (and actual results) from a sheet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runImport(cmd, "questions", (*importer.Importer).ImportQuestions)
	},
}

var importPredictionsCmd = &cobra.Command{
	Use:   "predictions",
	Short: "Append participant predictions from a sheet",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runImport(cmd, "predictions", (*importer.Importer).ImportPredictions)
	},
}

type importFunc func(*importer.Importer, context.Context, string, *fetcher.Sheet) (importer.Summary, error)

func runImport(cmd *cobra.Command, kind string, fn importFunc) error {
	ctx := cmd.Context()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	sheet, err := fetcher.Open(ctx, importFile)
	if err != nil {
		return err
	}

	im := importer.New(st,
		importer.WithRetry(resilience.FromConfig(cfg.Retry)),
		importer.WithBatchSize(importBatchSize),
	)
	sum, err := fn(im, ctx, importGame, sheet)
	if err != nil {
		return eris.Wrapf(err, "import %s", kind)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: read %d, written %d, skipped %d\n",
		kind, sum.Read, sum.Written, sum.Skipped)
	return nil
}

func init() {
	importCmd.PersistentFlags().StringVar(&importGame, "game", "", "game id (required)")
	importCmd.PersistentFlags().StringVar(&importFile, "file", "", "path to a .csv, .tsv or .xlsx file (required)")
	importCmd.PersistentFlags().IntVar(&importBatchSize, "batch-size", 500, "rows per store write")
	_ = importCmd.MarkPersistentFlagRequired("game")
	_ = importCmd.MarkPersistentFlagRequired("file")

	importCmd.AddCommand(importQuestionsCmd, importPredictionsCmd)
	rootCmd.AddCommand(importCmd)
}
