package scoring

import (
	"github.com/sells-group/pool-cli/internal/model"
)

// Card is one participant's total and per-question breakdown.
type Card struct {
	Participant model.ParticipantID `json:"participant_id"`
	Name        string              `json:"participant_name"`
	Total       int                 `json:"total"`
	MaxTotal    int                 `json:"max_total"`
	Items       []model.ScoredItem  `json:"items"`
}

// Aggregate sums a breakdown. The total is the exact sum of item scores.
func Aggregate(participant model.ParticipantID, name string, items []model.ScoredItem) Card {
	c := Card{Participant: participant, Name: name, Items: items}
	for _, it := range items {
		c.Total += it.Score
		c.MaxTotal += it.MaxScore
	}
	return c
}
