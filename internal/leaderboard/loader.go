package leaderboard

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/metrics"
	"github.com/sells-group/pool-cli/internal/model"
	"github.com/sells-group/pool-cli/internal/resilience"
	"github.com/sells-group/pool-cli/internal/store"
)

// Loader reads a game's full question and prediction sets page by page.
type Loader struct {
	store    store.QuestionStore
	pageSize int
	retry    resilience.RetryConfig
	metrics  *metrics.Metrics
}

// NewLoader creates a Loader. A non-positive pageSize uses store.DefaultPageSize.
func NewLoader(st store.QuestionStore, pageSize int, retry resilience.RetryConfig, m *metrics.Metrics) *Loader {
	if pageSize <= 0 {
		pageSize = store.DefaultPageSize
	}
	return &Loader{store: st, pageSize: pageSize, retry: retry, metrics: m}
}

// Load returns every question and every prediction row of gameID. Nothing is
// returned unless both sets were read completely.
func (l *Loader) Load(ctx context.Context, gameID string) ([]model.Question, []model.Prediction, error) {
	questions, err := loadAll(ctx, l, gameID, "questions", l.store.ListQuestions)
	if err != nil {
		return nil, nil, err
	}
	predictions, err := loadAll(ctx, l, gameID, "predictions", l.store.ListPredictions)
	if err != nil {
		return nil, nil, err
	}
	return questions, predictions, nil
}

func loadAll[T any](
	ctx context.Context,
	l *Loader,
	gameID, kind string,
	list func(context.Context, string, store.Page) ([]T, error),
) ([]T, error) {
	retry := l.retry
	if retry.OnRetry == nil {
		retry.OnRetry = resilience.RetryLogger(gameID, "list_"+kind)
	}

	var all []T
	for offset := 0; ; offset += l.pageSize {
		page := store.Page{Limit: l.pageSize, Offset: offset}
		rows, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]T, error) {
			return list(ctx, gameID, page)
		})
		if err != nil {
			return nil, eris.Wrapf(err, "leaderboard: load %s page at offset %d", kind, offset)
		}
		l.metrics.Page(gameID, kind)
		all = append(all, rows...)
		if len(rows) < l.pageSize {
			return all, nil
		}
	}
}
