// Package model defines the records exchanged between the store, the scoring
// engine and the leaderboard surfaces.
package model

import "strings"

// Question is one scoring unit inside a table (round, group stage, bonus table).
type Question struct {
	ID             string `json:"id"`
	GameID         string `json:"game_id"`
	TableID        string `json:"table_id"`
	QuestionID     string `json:"question_id"` // ordinal within the table, may carry a suffix like "3.1"
	StageOrder     int    `json:"stage_order"`
	QuestionText   string `json:"question_text"`
	HomeTeam       string `json:"home_team,omitempty"`
	AwayTeam       string `json:"away_team,omitempty"`
	ValidationList string `json:"validation_list,omitempty"`
	PossiblePoints int    `json:"possible_points"`
	ActualResult   string `json:"actual_result,omitempty"`
}

// HasTeams reports whether both sides of a match are set explicitly.
func (q Question) HasTeams() bool {
	return strings.TrimSpace(q.HomeTeam) != "" && strings.TrimSpace(q.AwayTeam) != ""
}
