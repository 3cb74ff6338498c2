// Package store persists questions, prediction rows and ranking rows for
// prediction pools. Two backends exist: postgres (pgx) and sqlite.
package store

import (
	"context"

	"github.com/sells-group/pool-cli/internal/model"
)

// DefaultPageSize is the page size used when a Page carries no limit.
const DefaultPageSize = 5000

// Page selects a window of a listing.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (p Page) limit() int {
	if p.Limit <= 0 {
		return DefaultPageSize
	}
	return p.Limit
}

// QuestionStore reads and writes questions and prediction history.
type QuestionStore interface {
	// ListQuestions pages through a game's questions in a stable order.
	ListQuestions(ctx context.Context, gameID string, page Page) ([]model.Question, error)
	// ListPredictions pages through a game's prediction rows in a stable order.
	ListPredictions(ctx context.Context, gameID string, page Page) ([]model.Prediction, error)
	// UpsertQuestions inserts questions or replaces them by id.
	UpsertQuestions(ctx context.Context, questions []model.Question) (int64, error)
	// InsertPredictions appends prediction rows. Rows are never updated.
	InsertPredictions(ctx context.Context, predictions []model.Prediction) (int64, error)
}

// RankingStore reads and writes the persisted leaderboard.
type RankingStore interface {
	ListRankings(ctx context.Context, gameID string) ([]model.RankingEntry, error)
	// GetRanking returns nil, nil when the participant has no row.
	GetRanking(ctx context.Context, gameID string, participant model.ParticipantID) (*model.RankingEntry, error)
	// UpsertCurrentRanking writes the name, current score and position and the
	// deltas. Baseline columns are only written when the row is created.
	UpsertCurrentRanking(ctx context.Context, entry model.RankingEntry) error
	// SetBaseline overwrites the baseline columns of an existing row and
	// resets its deltas.
	SetBaseline(ctx context.Context, entry model.RankingEntry) error
}

// Store is the full persistence contract.
type Store interface {
	QuestionStore
	RankingStore

	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
