package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewParticipantID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want ParticipantID
	}{
		{"plain", "Dana", "dana"},
		{"outer and inner whitespace", "  Dana   Levi ", "dana levi"},
		{"empty", "", ""},
		{"only spaces", "   \t ", ""},
		{"fullwidth folds to ascii", "ＤＡＮＡ", "dana"},
		{"non-latin kept", "דנה", "דנה"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewParticipantID(tt.in))
		})
	}
}

func TestPredictionParticipant(t *testing.T) {
	t.Parallel()
	a := Prediction{ParticipantName: "Dana Levi"}
	b := Prediction{ParticipantName: "dana  levi"}
	assert.Equal(t, a.Participant(), b.Participant())
}

func TestQuestionHasTeams(t *testing.T) {
	t.Parallel()
	assert.True(t, Question{HomeTeam: "A", AwayTeam: "B"}.HasTeams())
	assert.False(t, Question{HomeTeam: "A"}.HasTeams())
	assert.False(t, Question{HomeTeam: " ", AwayTeam: "B"}.HasTeams())
}

func TestRankingEntryHasBaseline(t *testing.T) {
	t.Parallel()
	assert.False(t, RankingEntry{}.HasBaseline())
	now := time.Now()
	assert.True(t, RankingEntry{LastBaselineSet: &now}.HasBaseline())
}
