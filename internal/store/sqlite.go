package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/pool-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS questions (
	id              TEXT PRIMARY KEY,
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
	id               TEXT PRIMARY KEY,
	game_id          TEXT NOT NULL,
	participant_name TEXT NOT NULL,
	question_ref     TEXT NOT NULL,
	text_prediction  TEXT NOT NULL DEFAULT '',
	created_date     DATETIME NOT NULL
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
	last_baseline_set DATETIME,
	updated_at        DATETIME NOT NULL,
	PRIMARY KEY (game_id, participant_id)
);

CREATE INDEX IF NOT EXISTS idx_questions_game ON questions(game_id, stage_order);
CREATE INDEX IF NOT EXISTS idx_predictions_game ON predictions(game_id, created_date);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListQuestions(ctx context.Context, gameID string, page Page) ([]model.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE game_id = ?
		 ORDER BY stage_order, table_id, question_id, id LIMIT ? OFFSET ?`,
		gameID, page.limit(), page.Offset,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list questions for %s", gameID)
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan question")
		}
		out = append(out, q)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list questions iterate")
}

func (s *SQLiteStore) ListPredictions(ctx context.Context, gameID string, page Page) ([]model.Prediction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+predictionColumns+` FROM predictions WHERE game_id = ?
		 ORDER BY created_date, id LIMIT ? OFFSET ?`,
		gameID, page.limit(), page.Offset,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list predictions for %s", gameID)
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan prediction")
		}
		out = append(out, p)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list predictions iterate")
}

func (s *SQLiteStore) UpsertQuestions(ctx context.Context, questions []model.Question) (int64, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin upsert questions")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO questions (`+questionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			game_id = excluded.game_id,
			table_id = excluded.table_id,
			question_id = excluded.question_id,
			stage_order = excluded.stage_order,
			question_text = excluded.question_text,
			home_team = excluded.home_team,
			away_team = excluded.away_team,
			validation_list = excluded.validation_list,
			possible_points = excluded.possible_points,
			actual_result = excluded.actual_result`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare upsert question")
	}
	defer stmt.Close() //nolint:errcheck

	for _, q := range questions {
		if _, err := stmt.ExecContext(ctx, questionRow(q)...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert question %s", q.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit upsert questions")
	}
	return int64(len(questions)), nil
}

func (s *SQLiteStore) InsertPredictions(ctx context.Context, predictions []model.Prediction) (int64, error) {
	if len(predictions) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin insert predictions")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO predictions (`+predictionColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert prediction")
	}
	defer stmt.Close() //nolint:errcheck

	for _, p := range predictions {
		if _, err := stmt.ExecContext(ctx, predictionRow(p)...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert prediction %s", p.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit insert predictions")
	}
	return int64(len(predictions)), nil
}

func (s *SQLiteStore) ListRankings(ctx context.Context, gameID string) ([]model.RankingEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+rankingColumns+` FROM rankings WHERE game_id = ?
		 ORDER BY current_position, participant_id`,
		gameID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list rankings for %s", gameID)
	}
	defer rows.Close() //nolint:errcheck

	var out []model.RankingEntry
	for rows.Next() {
		e, err := scanRanking(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan ranking")
		}
		out = append(out, *e)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list rankings iterate")
}

func (s *SQLiteStore) GetRanking(ctx context.Context, gameID string, participant model.ParticipantID) (*model.RankingEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+rankingColumns+` FROM rankings WHERE game_id = ? AND participant_id = ?`,
		gameID, string(participant),
	)
	e, err := scanRanking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get ranking %s/%s", gameID, participant)
	}
	return e, nil
}

func (s *SQLiteStore) UpsertCurrentRanking(ctx context.Context, e model.RankingEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rankings (`+rankingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(game_id, participant_id) DO UPDATE SET
			participant_name = excluded.participant_name,
			current_score = excluded.current_score,
			current_position = excluded.current_position,
			score_change = excluded.score_change,
			position_change = excluded.position_change,
			updated_at = excluded.updated_at`,
		rankingRow(e)...,
	)
	return eris.Wrapf(err, "sqlite: upsert ranking %s/%s", e.GameID, e.ParticipantID)
}

func (s *SQLiteStore) SetBaseline(ctx context.Context, e model.RankingEntry) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE rankings SET baseline_score = ?, baseline_position = ?,
			score_change = 0, position_change = 0, last_baseline_set = ?
		 WHERE game_id = ? AND participant_id = ?`,
		e.BaselineScore, e.BaselinePosition, nullTime(e.LastBaselineSet), e.GameID, string(e.ParticipantID),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set baseline %s/%s", e.GameID, e.ParticipantID)
	}
	return checkRowsAffected(res, "ranking", e.GameID+"/"+string(e.ParticipantID))
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
