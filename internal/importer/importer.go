// Package importer loads questions and prediction rows from CSV or XLSX
// sheets into the store.
package importer

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pool-cli/internal/fetcher"
	"github.com/sells-group/pool-cli/internal/model"
	"github.com/sells-group/pool-cli/internal/resilience"
	"github.com/sells-group/pool-cli/internal/store"
)

const defaultBatchSize = 500

// Summary reports what one import did.
type Summary struct {
	Read    int `json:"read"`
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}

// Importer writes parsed sheet rows to a QuestionStore in batches.
type Importer struct {
	store     store.QuestionStore
	retry     resilience.RetryConfig
	batchSize int
	now       func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithRetry sets the retry policy for batch writes.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(im *Importer) { im.retry = cfg }
}

// WithBatchSize sets how many rows are written per store call.
func WithBatchSize(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.batchSize = n
		}
	}
}

// WithClock overrides the time used for predictions without a created_date.
func WithClock(now func() time.Time) Option {
	return func(im *Importer) { im.now = now }
}

// New creates an Importer.
func New(st store.QuestionStore, opts ...Option) *Importer {
	im := &Importer{
		store:     st,
		retry:     resilience.DefaultRetryConfig(),
		batchSize: defaultBatchSize,
		now:       time.Now,
	}
	for _, o := range opts {
		o(im)
	}
	return im
}

// ImportQuestions upserts every question row of sheet into gameID.
func (im *Importer) ImportQuestions(ctx context.Context, gameID string, sheet *fetcher.Sheet) (Summary, error) {
	cols, err := indexHeader(sheet.Header, "table_id", "question_id")
	if err != nil {
		return Summary{}, err
	}
	return importRows(ctx, im, gameID, "questions", sheet,
		func(row []string) (model.Question, error) { return ParseQuestion(cols, row, gameID) },
		im.store.UpsertQuestions,
	)
}

// ImportPredictions appends every prediction row of sheet to gameID. Rows
// without created_date are stamped with the import time plus one microsecond
// per row, so later rows of the file win ties.
func (im *Importer) ImportPredictions(ctx context.Context, gameID string, sheet *fetcher.Sheet) (Summary, error) {
	// prediction exports often name the question reference "question_id"
	cols, err := indexHeaderWith(sheet.Header, map[string]string{"question_ref": "question_id"},
		"participant_name", "question_ref")
	if err != nil {
		return Summary{}, err
	}
	now := im.now()
	seq := 0
	return importRows(ctx, im, gameID, "predictions", sheet,
		func(row []string) (model.Prediction, error) {
			// postgres keeps microseconds
			at := now.Add(time.Duration(seq) * time.Microsecond)
			seq++
			return ParsePrediction(cols, row, gameID, at)
		},
		im.store.InsertPredictions,
	)
}

func importRows[T any](
	ctx context.Context,
	im *Importer,
	gameID, kind string,
	sheet *fetcher.Sheet,
	parse func([]string) (T, error),
	write func(context.Context, []T) (int64, error),
) (Summary, error) {
	log := zap.L().With(zap.String("game_id", gameID), zap.String("kind", kind))
	var sum Summary
	batch := make([]T, 0, im.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := resilience.DoVal(ctx, withLogger(im.retry, gameID, "import_"+kind), func(ctx context.Context) (int64, error) {
			return write(ctx, batch)
		})
		if err != nil {
			return eris.Wrapf(err, "importer: write %s batch", kind)
		}
		sum.Written += int(n)
		batch = batch[:0]
		return nil
	}

	for row := range sheet.Rows {
		sum.Read++
		rec, err := parse(row)
		if err != nil {
			sum.Skipped++
			log.Debug("skipping row", zap.Int("row", sum.Read), zap.Error(err))
			continue
		}
		batch = append(batch, rec)
		if len(batch) >= im.batchSize {
			if err := flush(); err != nil {
				drain(sheet)
				return sum, err
			}
		}
	}
	for err := range sheet.Errs {
		if err != nil {
			return sum, eris.Wrapf(err, "importer: read %s", kind)
		}
	}
	if err := flush(); err != nil {
		return sum, err
	}

	log.Info("import complete",
		zap.Int("read", sum.Read),
		zap.Int("written", sum.Written),
		zap.Int("skipped", sum.Skipped),
	)
	return sum, nil
}

func withLogger(cfg resilience.RetryConfig, gameID, op string) resilience.RetryConfig {
	if cfg.OnRetry == nil {
		cfg.OnRetry = resilience.RetryLogger(gameID, op)
	}
	return cfg
}

// drain lets the reader goroutine finish after an early return.
func drain(sheet *fetcher.Sheet) {
	go func() {
		for range sheet.Rows { //nolint:revive
		}
		for range sheet.Errs { //nolint:revive
		}
	}()
}
