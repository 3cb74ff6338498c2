package model

import "time"

// ScoredItem is one (participant, question) row of a score breakdown.
type ScoredItem struct {
	QuestionRef string `json:"question_ref"` // Question.ID
	TableID     string `json:"table_id"`
	QuestionID  string `json:"question_id"`
	Prediction  string `json:"prediction,omitempty"`
	Actual      string `json:"actual,omitempty"`
	Score       int    `json:"score"`
	MaxScore    int    `json:"max_score"`
	IsBonus     bool   `json:"is_bonus"`
}

// RankingEntry is the per-participant leaderboard row. Baseline fields only
// change through an explicit baseline capture.
type RankingEntry struct {
	GameID           string        `json:"game_id,omitempty"`
	ParticipantID    ParticipantID `json:"participant_id"`
	ParticipantName  string        `json:"participant_name"`
	CurrentScore     int           `json:"current_score"`
	CurrentPosition  int           `json:"current_position"`
	BaselineScore    int           `json:"baseline_score"`
	BaselinePosition int           `json:"baseline_position"`
	ScoreChange      int           `json:"score_change"`
	PositionChange   int           `json:"position_change"`
	LastBaselineSet  *time.Time    `json:"last_baseline_set,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at,omitempty"`
}

// HasBaseline reports whether a baseline was ever captured for the entry.
func (e RankingEntry) HasBaseline() bool {
	return e.LastBaselineSet != nil
}
