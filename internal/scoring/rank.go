package scoring

import (
	"cmp"
	"slices"

	"github.com/sells-group/pool-cli/internal/model"
)

// Standing is the ranker input for one participant.
type Standing struct {
	Participant model.ParticipantID
	Name        string
	Score       int
}

// Rank orders standings by score descending and assigns competition ranking:
// equal scores share a position and the next distinct score takes its
// 1-based index in the sorted order (50, 50, 40 -> 1, 1, 3).
//
// The sort is stable. With TieBreakName, ties are ordered by participant id;
// with TieBreakInput they keep their input order.
func Rank(standings []Standing, tb TieBreak) []model.RankingEntry {
	sorted := slices.Clone(standings)
	slices.SortStableFunc(sorted, func(a, b Standing) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if tb == TieBreakInput {
			return 0
		}
		return cmp.Compare(a.Participant, b.Participant)
	})

	entries := make([]model.RankingEntry, len(sorted))
	for i, s := range sorted {
		pos := i + 1
		if i > 0 && s.Score == sorted[i-1].Score {
			pos = entries[i-1].CurrentPosition
		}
		entries[i] = model.RankingEntry{
			ParticipantID:   s.Participant,
			ParticipantName: s.Name,
			CurrentScore:    s.Score,
			CurrentPosition: pos,
		}
	}
	return entries
}
