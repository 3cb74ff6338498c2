package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ParticipantID identifies a participant inside the engine. It is derived from
// the free-text display name once, at the system boundary.
type ParticipantID string

// NewParticipantID normalizes a display name into a ParticipantID: NFKC, case
// folded, inner whitespace collapsed. Names that normalize to nothing yield "".
func NewParticipantID(name string) ParticipantID {
	n := norm.NFKC.String(name)
	n = strings.Join(strings.Fields(n), " ")
	if n == "" {
		return ""
	}
	return ParticipantID(cases.Fold().String(n))
}

// Prediction is one participant's guess for one question at one point in
// time. Revisions are new rows; rows are never updated.
type Prediction struct {
	ID              string    `json:"id"`
	GameID          string    `json:"game_id"`
	ParticipantName string    `json:"participant_name"`
	QuestionID      string    `json:"question_id"` // references Question.ID
	TextPrediction  string    `json:"text_prediction"`
	CreatedDate     time.Time `json:"created_date"`
}

// Participant returns the normalized identity of the prediction's author.
func (p Prediction) Participant() ParticipantID {
	return NewParticipantID(p.ParticipantName)
}
