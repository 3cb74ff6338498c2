package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/db"
	"github.com/sells-group/pool-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS questions (
	id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	game_id         TEXT NOT NULL,
	table_id        TEXT NOT NULL,
	question_id     TEXT NOT NULL,
	stage_order     INTEGER NOT NULL DEFAULT 0,
	question_text   TEXT NOT NULL DEFAULT '',
	home_team       TEXT NOT NULL DEFAULT '',
	away_team       TEXT NOT NULL DEFAULT '',
	validation_list TEXT NOT NULL DEFAULT '',
	possible_points INTEGER NOT NULL DEFAULT 0,
	actual_result   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS predictions (
	id               TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	game_id          TEXT NOT NULL,
	participant_name TEXT NOT NULL,
	question_ref     TEXT NOT NULL,
	text_prediction  TEXT NOT NULL DEFAULT '',
	created_date     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS rankings (
	game_id           TEXT NOT NULL,
	participant_id    TEXT NOT NULL,
	participant_name  TEXT NOT NULL DEFAULT '',
	current_score     INTEGER NOT NULL DEFAULT 0,
	current_position  INTEGER NOT NULL DEFAULT 0,
	baseline_score    INTEGER NOT NULL DEFAULT 0,
	baseline_position INTEGER NOT NULL DEFAULT 0,
	score_change      INTEGER NOT NULL DEFAULT 0,
	position_change   INTEGER NOT NULL DEFAULT 0,
	last_baseline_set TIMESTAMPTZ,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (game_id, participant_id)
);

CREATE INDEX IF NOT EXISTS idx_questions_game ON questions(game_id, stage_order);
CREATE INDEX IF NOT EXISTS idx_predictions_game ON predictions(game_id, created_date);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) ListQuestions(ctx context.Context, gameID string, page Page) ([]model.Question, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE game_id = $1
		 ORDER BY stage_order, table_id, question_id, id LIMIT $2 OFFSET $3`,
		gameID, page.limit(), page.Offset,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list questions for %s", gameID)
	}
	defer rows.Close()

	var out []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan question")
		}
		out = append(out, q)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list questions iterate")
}

func (s *PostgresStore) ListPredictions(ctx context.Context, gameID string, page Page) ([]model.Prediction, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+predictionColumns+` FROM predictions WHERE game_id = $1
		 ORDER BY created_date, id LIMIT $2 OFFSET $3`,
		gameID, page.limit(), page.Offset,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list predictions for %s", gameID)
	}
	defer rows.Close()

	var out []model.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan prediction")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list predictions iterate")
}

func (s *PostgresStore) UpsertQuestions(ctx context.Context, questions []model.Question) (int64, error) {
	rows := make([][]any, len(questions))
	for i, q := range questions {
		rows[i] = questionRow(q)
	}
	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "questions",
		Columns:      columnList(questionColumns),
		ConflictKeys: []string{"id"},
	}, rows)
	return n, eris.Wrap(err, "postgres: upsert questions")
}

func (s *PostgresStore) InsertPredictions(ctx context.Context, predictions []model.Prediction) (int64, error) {
	rows := make([][]any, len(predictions))
	for i, p := range predictions {
		rows[i] = predictionRow(p)
	}
	n, err := db.CopyFrom(ctx, s.pool, "predictions", columnList(predictionColumns), rows)
	return n, eris.Wrap(err, "postgres: insert predictions")
}

func (s *PostgresStore) ListRankings(ctx context.Context, gameID string) ([]model.RankingEntry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+rankingColumns+` FROM rankings WHERE game_id = $1
		 ORDER BY current_position, participant_id`,
		gameID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list rankings for %s", gameID)
	}
	defer rows.Close()

	var out []model.RankingEntry
	for rows.Next() {
		e, err := scanRanking(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan ranking")
		}
		out = append(out, *e)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list rankings iterate")
}

func (s *PostgresStore) GetRanking(ctx context.Context, gameID string, participant model.ParticipantID) (*model.RankingEntry, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+rankingColumns+` FROM rankings WHERE game_id = $1 AND participant_id = $2`,
		gameID, string(participant),
	)
	e, err := scanRanking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get ranking %s/%s", gameID, participant)
	}
	return e, nil
}

func (s *PostgresStore) UpsertCurrentRanking(ctx context.Context, e model.RankingEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO rankings (`+rankingColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (game_id, participant_id) DO UPDATE SET
			participant_name = EXCLUDED.participant_name,
			current_score = EXCLUDED.current_score,
			current_position = EXCLUDED.current_position,
			score_change = EXCLUDED.score_change,
			position_change = EXCLUDED.position_change,
			updated_at = EXCLUDED.updated_at`,
		rankingRow(e)...,
	)
	return eris.Wrapf(err, "postgres: upsert ranking %s/%s", e.GameID, e.ParticipantID)
}

func (s *PostgresStore) SetBaseline(ctx context.Context, e model.RankingEntry) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE rankings SET baseline_score = $1, baseline_position = $2,
			score_change = 0, position_change = 0, last_baseline_set = $3
		 WHERE game_id = $4 AND participant_id = $5`,
		e.BaselineScore, e.BaselinePosition, nullTime(e.LastBaselineSet), e.GameID, string(e.ParticipantID),
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: set baseline %s/%s", e.GameID, e.ParticipantID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("ranking not found: %s/%s", e.GameID, e.ParticipantID)
	}
	return nil
}
