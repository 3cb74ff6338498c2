package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/model"
)

// leaderboardColumns is the column order shared by CSV and XLSX output.
var leaderboardColumns = []string{
	"position",
	"participant_id",
	"participant_name",
	"score",
	"baseline_position",
	"baseline_score",
	"score_change",
	"position_change",
}

// WriteCSV writes the ranking with a header row.
func WriteCSV(out io.Writer, entries []model.RankingEntry) error {
	w := csv.NewWriter(out)

	if err := w.Write(leaderboardColumns); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, e := range entries {
		row := []string{
			strconv.Itoa(e.CurrentPosition),
			string(e.ParticipantID),
			e.ParticipantName,
			strconv.Itoa(e.CurrentScore),
			strconv.Itoa(e.BaselinePosition),
			strconv.Itoa(e.BaselineScore),
			strconv.Itoa(e.ScoreChange),
			strconv.Itoa(e.PositionChange),
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}

	w.Flush()
	return eris.Wrap(w.Error(), "export: flush csv")
}
