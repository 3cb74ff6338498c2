package scoring

import (
	"time"

	"github.com/sells-group/pool-cli/internal/model"
)

// Diff fills baseline fields and deltas of current from the baseline rows.
// A participant without a captured baseline gets zero deltas. Inputs are not
// modified.
func Diff(current, baseline []model.RankingEntry) []model.RankingEntry {
	base := make(map[model.ParticipantID]model.RankingEntry, len(baseline))
	for _, b := range baseline {
		base[b.ParticipantID] = b
	}

	out := make([]model.RankingEntry, len(current))
	for i, c := range current {
		c.BaselineScore, c.BaselinePosition = 0, 0
		c.ScoreChange, c.PositionChange = 0, 0
		c.LastBaselineSet = nil

		if b, ok := base[c.ParticipantID]; ok && b.HasBaseline() {
			c.BaselineScore = b.BaselineScore
			c.BaselinePosition = b.BaselinePosition
			c.LastBaselineSet = b.LastBaselineSet
			c.ScoreChange = c.CurrentScore - b.BaselineScore
			c.PositionChange = b.BaselinePosition - c.CurrentPosition
		}
		out[i] = c
	}
	return out
}

// CaptureBaseline copies current score and position into the baseline fields
// of every entry and stamps the capture time. Deltas reset to zero.
func CaptureBaseline(current []model.RankingEntry, at time.Time) []model.RankingEntry {
	out := make([]model.RankingEntry, len(current))
	for i, c := range current {
		stamp := at
		c.BaselineScore = c.CurrentScore
		c.BaselinePosition = c.CurrentPosition
		c.ScoreChange, c.PositionChange = 0, 0
		c.LastBaselineSet = &stamp
		out[i] = c
	}
	return out
}
