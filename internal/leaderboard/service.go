// Package leaderboard runs the scoring engine against stored games: it loads
// questions and predictions page by page, serves live boards and persists
// rankings and baselines.
package leaderboard

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/pool-cli/internal/config"
	"github.com/sells-group/pool-cli/internal/metrics"
	"github.com/sells-group/pool-cli/internal/model"
	"github.com/sells-group/pool-cli/internal/resilience"
	"github.com/sells-group/pool-cli/internal/scoring"
	"github.com/sells-group/pool-cli/internal/store"
)

const (
	kindCurrent  = "current"
	kindBaseline = "baseline"
)

// Options tunes paging, write pacing and retries.
type Options struct {
	PageSize   int
	BatchSize  int
	BatchDelay time.Duration
	Retry      resilience.RetryConfig
	Metrics    *metrics.Metrics
	Now        func() time.Time
}

// OptionsFromConfig maps the fetch, writeback and retry sections.
func OptionsFromConfig(cfg *config.Config, m *metrics.Metrics) Options {
	return Options{
		PageSize:   cfg.Fetch.PageSize,
		BatchSize:  cfg.Writeback.BatchSize,
		BatchDelay: time.Duration(cfg.Writeback.BatchDelayMs) * time.Millisecond,
		Retry:      resilience.FromConfig(cfg.Retry),
		Metrics:    m,
	}
}

// Board is a computed leaderboard with per-participant breakdowns.
type Board struct {
	GameID     string                                `json:"game_id"`
	Entries    []model.RankingEntry                  `json:"entries"`
	Cards      map[model.ParticipantID]scoring.Card `json:"-"`
	ComputedAt time.Time                             `json:"computed_at"`
}

// Card looks up a participant by display name or id.
func (b *Board) Card(participant string) (scoring.Card, bool) {
	c, ok := b.Cards[model.NewParticipantID(participant)]
	return c, ok
}

// WriteSummary reports one persisting action.
type WriteSummary struct {
	GameID       string    `json:"game_id"`
	Participants int       `json:"participants"`
	Written      int       `json:"written"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Service ties the engine to a store.
type Service struct {
	store  store.Store
	engine *scoring.Engine
	loader *Loader
	writer *pacedWriter
	retry  resilience.RetryConfig
	m      *metrics.Metrics
	now    func() time.Time
}

// NewService creates a Service.
func NewService(st store.Store, engine *scoring.Engine, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:  st,
		engine: engine,
		loader: NewLoader(st, opts.PageSize, opts.Retry, opts.Metrics),
		writer: &pacedWriter{
			batchSize: opts.BatchSize,
			delay:     opts.BatchDelay,
			retry:     opts.Retry,
			metrics:   opts.Metrics,
		},
		retry: opts.Retry,
		m:     opts.Metrics,
		now:   opts.Now,
	}
}

// compute loads the game, scores it and ranks the participants. Entries
// carry no baseline fields.
func (s *Service) compute(ctx context.Context, gameID string) (*scoring.Result, []model.RankingEntry, error) {
	start := time.Now()

	questions, predictions, err := s.loader.Load(ctx, gameID)
	if err != nil {
		s.m.ObserveRun(gameID, time.Since(start), 0, err)
		return nil, nil, err
	}

	res, err := s.engine.Score(questions, predictions)
	if err != nil {
		s.m.ObserveRun(gameID, time.Since(start), 0, err)
		return nil, nil, eris.Wrapf(err, "leaderboard: score game %s", gameID)
	}

	entries := scoring.Rank(res.Standings(), s.engine.TieBreak())
	for i := range entries {
		entries[i].GameID = gameID
	}
	s.m.ObserveRun(gameID, time.Since(start), len(entries), nil)

	zap.L().Debug("scored game",
		zap.String("game_id", gameID),
		zap.Int("questions", len(questions)),
		zap.Int("predictions", len(predictions)),
		zap.Int("participants", len(entries)),
		zap.Duration("took", time.Since(start)),
	)
	return res, entries, nil
}

func (s *Service) listRankings(ctx context.Context, gameID string) ([]model.RankingEntry, error) {
	retry := s.retry
	retry.OnRetry = resilience.RetryLogger(gameID, "list_rankings")
	rows, err := resilience.DoVal(ctx, retry, func(ctx context.Context) ([]model.RankingEntry, error) {
		return s.store.ListRankings(ctx, gameID)
	})
	return rows, eris.Wrapf(err, "leaderboard: list rankings for %s", gameID)
}

// Live computes the current board and diffs it against the stored baselines.
// It writes nothing.
func (s *Service) Live(ctx context.Context, gameID string) (*Board, error) {
	res, entries, err := s.compute(ctx, gameID)
	if err != nil {
		return nil, err
	}
	stored, err := s.listRankings(ctx, gameID)
	if err != nil {
		return nil, err
	}

	board := &Board{
		GameID:     gameID,
		Entries:    scoring.Diff(entries, stored),
		Cards:      make(map[model.ParticipantID]scoring.Card, len(entries)),
		ComputedAt: s.now(),
	}
	for _, e := range entries {
		if c, ok := res.Card(e.ParticipantID); ok {
			board.Cards[e.ParticipantID] = c
		}
	}
	return board, nil
}

// Breakdown returns one participant's scored items from a live board.
func (s *Service) Breakdown(ctx context.Context, gameID, participant string) (scoring.Card, bool, error) {
	board, err := s.Live(ctx, gameID)
	if err != nil {
		return scoring.Card{}, false, err
	}
	c, ok := board.Card(participant)
	return c, ok, nil
}

// Recompute scores the game once and persists every participant's current
// score, position and deltas. Baseline columns are left alone. A scoring
// configuration error aborts before the first write.
func (s *Service) Recompute(ctx context.Context, gameID string) (*WriteSummary, error) {
	sum := &WriteSummary{GameID: gameID, StartedAt: s.now()}

	_, entries, err := s.compute(ctx, gameID)
	if err != nil {
		return nil, err
	}
	sum.Participants = len(entries)

	stamp := s.now()
	sum.Written, err = s.writer.write(ctx, gameID, kindCurrent, entries, func(ctx context.Context, e model.RankingEntry) error {
		existing, err := s.store.GetRanking(ctx, gameID, e.ParticipantID)
		if err != nil {
			return err
		}
		var baseline []model.RankingEntry
		if existing != nil {
			baseline = append(baseline, *existing)
		}
		row := scoring.Diff([]model.RankingEntry{e}, baseline)[0]
		row.UpdatedAt = stamp
		return s.store.UpsertCurrentRanking(ctx, row)
	})
	sum.FinishedAt = s.now()
	if err != nil {
		return sum, err
	}

	zap.L().Info("rankings recomputed",
		zap.String("game_id", gameID),
		zap.Int("participants", sum.Participants),
		zap.Int("written", sum.Written),
	)
	return sum, nil
}

// SetBaseline snapshots the stored current rankings as the new baseline.
// With refresh it recomputes first. The full ranking is read before any
// baseline write starts. A recompute racing with this call may land on
// either side of the snapshot.
func (s *Service) SetBaseline(ctx context.Context, gameID string, refresh bool) (*WriteSummary, error) {
	if refresh {
		if _, err := s.Recompute(ctx, gameID); err != nil {
			return nil, err
		}
	}

	sum := &WriteSummary{GameID: gameID, StartedAt: s.now()}
	current, err := s.listRankings(ctx, gameID)
	if err != nil {
		return nil, err
	}
	sum.Participants = len(current)

	snapshot := scoring.CaptureBaseline(current, s.now().UTC())
	sum.Written, err = s.writer.write(ctx, gameID, kindBaseline, snapshot, s.store.SetBaseline)
	sum.FinishedAt = s.now()
	if err != nil {
		return sum, err
	}

	zap.L().Info("baseline set",
		zap.String("game_id", gameID),
		zap.Int("participants", sum.Participants),
	)
	return sum, nil
}
