package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/sells-group/pool-cli/internal/model"
)

// Column lists shared by both backends. Scan order matches.
const (
	questionColumns   = `id, game_id, table_id, question_id, stage_order, question_text, home_team, away_team, validation_list, possible_points, actual_result`
	predictionColumns = `id, game_id, participant_name, question_ref, text_prediction, created_date`
	rankingColumns    = `game_id, participant_id, participant_name, current_score, current_position, baseline_score, baseline_position, score_change, position_change, last_baseline_set, updated_at`
)

type scannable interface {
	Scan(dest ...any) error
}

func questionRow(q model.Question) []any {
	return []any{
		q.ID, q.GameID, q.TableID, q.QuestionID, q.StageOrder, q.QuestionText,
		q.HomeTeam, q.AwayTeam, q.ValidationList, q.PossiblePoints, q.ActualResult,
	}
}

func scanQuestion(row scannable) (model.Question, error) {
	var q model.Question
	err := row.Scan(&q.ID, &q.GameID, &q.TableID, &q.QuestionID, &q.StageOrder, &q.QuestionText,
		&q.HomeTeam, &q.AwayTeam, &q.ValidationList, &q.PossiblePoints, &q.ActualResult)
	return q, err
}

func predictionRow(p model.Prediction) []any {
	return []any{p.ID, p.GameID, p.ParticipantName, p.QuestionID, p.TextPrediction, p.CreatedDate.UTC()}
}

func scanPrediction(row scannable) (model.Prediction, error) {
	var p model.Prediction
	err := row.Scan(&p.ID, &p.GameID, &p.ParticipantName, &p.QuestionID, &p.TextPrediction, &p.CreatedDate)
	return p, err
}

func rankingRow(e model.RankingEntry) []any {
	updated := e.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return []any{
		e.GameID, string(e.ParticipantID), e.ParticipantName,
		e.CurrentScore, e.CurrentPosition, e.BaselineScore, e.BaselinePosition,
		e.ScoreChange, e.PositionChange, nullTime(e.LastBaselineSet), updated.UTC(),
	}
}

func scanRanking(row scannable) (*model.RankingEntry, error) {
	var e model.RankingEntry
	var pid string
	var baselineSet sql.NullTime
	err := row.Scan(&e.GameID, &pid, &e.ParticipantName,
		&e.CurrentScore, &e.CurrentPosition, &e.BaselineScore, &e.BaselinePosition,
		&e.ScoreChange, &e.PositionChange, &baselineSet, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.ParticipantID = model.ParticipantID(pid)
	if baselineSet.Valid {
		t := baselineSet.Time
		e.LastBaselineSet = &t
	}
	return &e, nil
}

// columnList splits one of the column constants for COPY and upsert helpers.
func columnList(cols string) []string {
	parts := strings.Split(cols, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
