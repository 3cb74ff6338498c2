package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/sells-group/pool-cli/internal/model"
)

func positions(entries []model.RankingEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.CurrentPosition
	}
	return out
}

func ids(entries []model.RankingEntry) []model.ParticipantID {
	out := make([]model.ParticipantID, len(entries))
	for i, e := range entries {
		out[i] = e.ParticipantID
	}
	return out
}

func TestRankCompetitionRanking(t *testing.T) {
	t.Parallel()

	got := Rank([]Standing{
		{Participant: "d", Score: 30},
		{Participant: "a", Score: 50},
		{Participant: "c", Score: 40},
		{Participant: "b", Score: 50},
	}, TieBreakName)

	if diff := cmp.Diff([]int{1, 1, 3, 4}, positions(got)); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.ParticipantID{"a", "b", "c", "d"}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{50, 50, 40, 30}, []int{got[0].CurrentScore, got[1].CurrentScore, got[2].CurrentScore, got[3].CurrentScore})
}

func TestRankTieGroupSkipsAhead(t *testing.T) {
	t.Parallel()

	got := Rank([]Standing{
		{Participant: "a", Score: 9},
		{Participant: "b", Score: 7},
		{Participant: "c", Score: 7},
		{Participant: "d", Score: 7},
		{Participant: "e", Score: 2},
		{Participant: "f", Score: 2},
		{Participant: "g", Score: 0},
	}, TieBreakName)

	assert.Equal(t, []int{1, 2, 2, 2, 5, 5, 7}, positions(got))
}

func TestRankInputTieBreakIsStable(t *testing.T) {
	t.Parallel()

	got := Rank([]Standing{
		{Participant: "zed", Score: 10},
		{Participant: "amy", Score: 10},
		{Participant: "bob", Score: 20},
		{Participant: "kim", Score: 10},
	}, TieBreakInput)

	assert.Equal(t, []model.ParticipantID{"bob", "zed", "amy", "kim"}, ids(got))
	assert.Equal(t, []int{1, 2, 2, 2}, positions(got))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	in := []Standing{{Participant: "b", Score: 1}, {Participant: "a", Score: 2}}
	Rank(in, TieBreakName)
	assert.Equal(t, model.ParticipantID("b"), in[0].Participant)
}

func TestRankEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Rank(nil, TieBreakName))
}

func TestRankCarriesNames(t *testing.T) {
	t.Parallel()
	got := Rank([]Standing{{Participant: "dana", Name: "Dana", Score: 3}}, TieBreakName)
	assert.Equal(t, "Dana", got[0].ParticipantName)
	assert.False(t, got[0].HasBaseline())
}
