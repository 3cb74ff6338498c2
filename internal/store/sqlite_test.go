package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/pool-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

var base = time.Date(2026, 6, 11, 18, 0, 0, 0, time.UTC)

// --- Questions ---

func TestSQLite_Questions_UpsertAndList(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	qs := []model.Question{
		{ID: "q2", GameID: "wc", TableID: "2", QuestionID: "2", StageOrder: 1, HomeTeam: "Italy", AwayTeam: "Japan"},
		{ID: "q1", GameID: "wc", TableID: "2", QuestionID: "1", StageOrder: 1, HomeTeam: "Spain", AwayTeam: "France", ActualResult: "TBD"},
		{ID: "meta", GameID: "wc", TableID: "T1", QuestionID: "1", StageOrder: 0, QuestionText: "Name"},
		{ID: "other", GameID: "euro", TableID: "2", QuestionID: "1"},
	}
	n, err := st.UpsertQuestions(ctx, qs)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	got, err := st.ListQuestions(ctx, "wc", Page{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"meta", "q1", "q2"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, qs[1], got[1])

	// result entry replaces the row in place
	decided := qs[1]
	decided.ActualResult = "2-1"
	_, err = st.UpsertQuestions(ctx, []model.Question{decided})
	require.NoError(t, err)

	got, err = st.ListQuestions(ctx, "wc", Page{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "2-1", got[1].ActualResult)
}

func TestSQLite_Questions_Paging(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	var qs []model.Question
	for i := 0; i < 7; i++ {
		qs = append(qs, model.Question{ID: fmt.Sprintf("q%d", i), GameID: "wc", TableID: "2", QuestionID: fmt.Sprint(i)})
	}
	_, err := st.UpsertQuestions(ctx, qs)
	require.NoError(t, err)

	var all []model.Question
	for offset := 0; ; offset += 3 {
		page, err := st.ListQuestions(ctx, "wc", Page{Limit: 3, Offset: offset})
		require.NoError(t, err)
		all = append(all, page...)
		if len(page) < 3 {
			break
		}
	}
	assert.Len(t, all, 7)
}

// --- Predictions ---

func TestSQLite_Predictions_AppendOnly(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	ps := []model.Prediction{
		{ID: "p2", GameID: "wc", ParticipantName: "Dana", QuestionID: "q1", TextPrediction: "2-1", CreatedDate: base.Add(time.Hour)},
		{ID: "p1", GameID: "wc", ParticipantName: "Dana", QuestionID: "q1", TextPrediction: "0-0", CreatedDate: base},
		{ID: "p3", GameID: "euro", ParticipantName: "Noa", QuestionID: "q9", TextPrediction: "1-1", CreatedDate: base},
	}
	n, err := st.InsertPredictions(ctx, ps)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	got, err := st.ListPredictions(ctx, "wc", Page{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
	assert.True(t, got[1].CreatedDate.Equal(base.Add(time.Hour)))
	assert.Equal(t, "2-1", got[1].TextPrediction)

	// same id again is rejected, rows are never rewritten
	_, err = st.InsertPredictions(ctx, ps[:1])
	assert.Error(t, err)
}

// --- Rankings ---

func TestSQLite_Ranking_GetMissing(t *testing.T) {
	st := newTestSQLiteStore(t)

	got, err := st.GetRanking(context.Background(), "wc", "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_Ranking_UpsertKeepsBaseline(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	entry := model.RankingEntry{GameID: "wc", ParticipantID: "dana", ParticipantName: "Dana", CurrentScore: 40, CurrentPosition: 3, UpdatedAt: base}
	require.NoError(t, st.UpsertCurrentRanking(ctx, entry))

	entry.BaselineScore = entry.CurrentScore
	entry.BaselinePosition = entry.CurrentPosition
	at := base.Add(time.Hour)
	entry.LastBaselineSet = &at
	require.NoError(t, st.SetBaseline(ctx, entry))

	// a later recompute must not touch baseline columns
	require.NoError(t, st.UpsertCurrentRanking(ctx, model.RankingEntry{
		GameID: "wc", ParticipantID: "dana", ParticipantName: "Dana L",
		CurrentScore: 55, CurrentPosition: 1, ScoreChange: 15, PositionChange: 2,
		BaselineScore: 999, UpdatedAt: base.Add(2 * time.Hour),
	}))

	got, err := st.GetRanking(ctx, "wc", "dana")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dana L", got.ParticipantName)
	assert.Equal(t, 55, got.CurrentScore)
	assert.Equal(t, 1, got.CurrentPosition)
	assert.Equal(t, 40, got.BaselineScore)
	assert.Equal(t, 3, got.BaselinePosition)
	assert.Equal(t, 15, got.ScoreChange)
	assert.Equal(t, 2, got.PositionChange)
	require.NotNil(t, got.LastBaselineSet)
	assert.True(t, got.LastBaselineSet.Equal(at))
}

func TestSQLite_Ranking_SetBaselineResetsDeltas(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.UpsertCurrentRanking(ctx, model.RankingEntry{
		GameID: "wc", ParticipantID: "noa", CurrentScore: 20, CurrentPosition: 2, ScoreChange: 5, PositionChange: -1,
	}))
	at := base
	require.NoError(t, st.SetBaseline(ctx, model.RankingEntry{
		GameID: "wc", ParticipantID: "noa", BaselineScore: 20, BaselinePosition: 2, LastBaselineSet: &at,
	}))

	got, err := st.GetRanking(ctx, "wc", "noa")
	require.NoError(t, err)
	assert.Zero(t, got.ScoreChange)
	assert.Zero(t, got.PositionChange)
	assert.True(t, got.HasBaseline())
}

func TestSQLite_Ranking_SetBaselineMissingRow(t *testing.T) {
	st := newTestSQLiteStore(t)
	at := base
	err := st.SetBaseline(context.Background(), model.RankingEntry{GameID: "wc", ParticipantID: "ghost", LastBaselineSet: &at})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ranking not found")
}

func TestSQLite_Ranking_List(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for _, e := range []model.RankingEntry{
		{GameID: "wc", ParticipantID: "omer", CurrentScore: 10, CurrentPosition: 3},
		{GameID: "wc", ParticipantID: "noa", CurrentScore: 50, CurrentPosition: 1},
		{GameID: "wc", ParticipantID: "dana", CurrentScore: 50, CurrentPosition: 1},
		{GameID: "euro", ParticipantID: "dana", CurrentScore: 1, CurrentPosition: 1},
	} {
		require.NoError(t, st.UpsertCurrentRanking(ctx, e))
	}

	got, err := st.ListRankings(ctx, "wc")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, model.ParticipantID("dana"), got[0].ParticipantID)
	assert.Equal(t, model.ParticipantID("noa"), got[1].ParticipantID)
	assert.Equal(t, model.ParticipantID("omer"), got[2].ParticipantID)
	assert.False(t, got[0].HasBaseline())
}

func TestSQLite_PingAndEmptyWrites(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.Ping(ctx))
	n, err := st.UpsertQuestions(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = st.InsertPredictions(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPageLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, Page{}.limit())
	assert.Equal(t, 10, Page{Limit: 10}.limit())
}
