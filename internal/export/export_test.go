package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/pool-cli/internal/leaderboard"
	"github.com/sells-group/pool-cli/internal/model"
	"github.com/sells-group/pool-cli/internal/scoring"
)

func testBoard() *leaderboard.Board {
	dana := scoring.Aggregate("dana", "Dana", []model.ScoredItem{
		{TableID: "T2", QuestionID: "M1", Prediction: "2-1", Actual: "2-1", Score: 10, MaxScore: 10},
		{TableID: "T2", QuestionID: "M2", Prediction: "1-1", MaxScore: 10},
		{TableID: "T7", QuestionID: "B1", Prediction: "Zahavi", Actual: "Zahavi", Score: 60, MaxScore: 60, IsBonus: true},
	})
	noa := scoring.Aggregate("noa", "Noa", []model.ScoredItem{
		{TableID: "T2", QuestionID: "M1", Prediction: "3-1", Actual: "2-1", Score: 5, MaxScore: 10},
	})
	return &leaderboard.Board{
		GameID: "wc2026",
		Entries: []model.RankingEntry{
			{ParticipantID: "dana", ParticipantName: "Dana", CurrentScore: 70, CurrentPosition: 1, BaselineScore: 60, BaselinePosition: 2, ScoreChange: 10, PositionChange: 1},
			{ParticipantID: "noa", ParticipantName: "Noa", CurrentScore: 5, CurrentPosition: 2, BaselineScore: 5, BaselinePosition: 1, PositionChange: -1},
		},
		Cards:      map[model.ParticipantID]scoring.Card{"dana": dana, "noa": noa},
		ComputedAt: time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":      FormatTable,
		"table": FormatTable,
		" CSV ": FormatCSV,
		"json":  FormatJSON,
		"xlsx":  FormatXLSX,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "yaml"`)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Leaderboard(&buf, FormatTable, testBoard()))

	out := buf.String()
	assert.Contains(t, out, "POS")
	assert.Contains(t, out, "PARTICIPANT")
	assert.Regexp(t, `(?m)^1\s+Dana\s+70\s+\+10\s+\+1$`, out)
	assert.Regexp(t, `(?m)^2\s+Noa\s+5\s+0\s+-1$`, out)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Leaderboard(&buf, FormatCSV, testBoard()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, leaderboardColumns, records[0])
	assert.Equal(t, []string{"1", "dana", "Dana", "70", "2", "60", "10", "1"}, records[1])
	assert.Equal(t, []string{"2", "noa", "Noa", "5", "1", "5", "0", "-1"}, records[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Leaderboard(&buf, FormatJSON, testBoard()))

	var got struct {
		GameID  string               `json:"game_id"`
		Entries []model.RankingEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "wc2026", got.GameID)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, model.ParticipantID("dana"), got.Entries[0].ParticipantID)
	assert.Equal(t, 10, got.Entries[0].ScoreChange)
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Leaderboard(&buf, FormatXLSX, testBoard()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	assert.Equal(t, []string{leaderboardSheet, breakdownSheet}, f.GetSheetList())

	rows, err := f.GetRows(leaderboardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, leaderboardColumns, rows[0])
	assert.Equal(t, []string{"1", "dana", "Dana", "70", "2", "60", "10", "1"}, rows[1])

	rows, err = f.GetRows(breakdownSheet)
	require.NoError(t, err)
	// header + three items for Dana + one for Noa, in ranking order
	require.Len(t, rows, 5)
	assert.Equal(t, breakdownColumns, rows[0])
	assert.Equal(t, "Dana", rows[1][0])
	assert.Equal(t, []string{"Dana", "T7", "B1", "Zahavi", "Zahavi", "60", "60", "TRUE"}, rows[3])
	assert.Equal(t, "Noa", rows[4][0])
}

func TestWriteBreakdown(t *testing.T) {
	b := testBoard()
	c, ok := b.Card("DANA")
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, WriteBreakdown(&buf, c))

	out := buf.String()
	assert.Contains(t, out, "Dana: 70 of 80")
	assert.Regexp(t, `(?m)^T2\s+M2\s+1-1\s+-\s+0\s+10$`, out)
	assert.Regexp(t, `(?m)TOTAL\s+70\s+80$`, out)
}

func TestWriteCardJSON(t *testing.T) {
	c, _ := testBoard().Card("noa")

	var buf bytes.Buffer
	require.NoError(t, WriteCardJSON(&buf, c))

	var got scoring.Card
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, c, got)
}

func TestWriteChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, testBoard().Entries, ChartOptions{Title: "wc2026"}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestWriteChart_AllZero(t *testing.T) {
	entries := []model.RankingEntry{
		{ParticipantID: "a", ParticipantName: "A", CurrentPosition: 1},
		{ParticipantID: "b", ParticipantName: "B", CurrentPosition: 1},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, entries, ChartOptions{Top: 1, Width: 300, Height: 200}))
	assert.NotZero(t, buf.Len())
}

func TestWriteChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteChart(&buf, nil, ChartOptions{}), ErrNoEntries)
}
