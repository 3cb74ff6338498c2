package scoring

import (
	"strings"

	"github.com/sells-group/pool-cli/internal/model"
)

// Resolved is the effective prediction set of one participant.
type Resolved struct {
	Participant model.ParticipantID
	Name        string                      // display name from the most recent row
	Effective   map[string]model.Prediction // keyed by Question.ID
	latest      model.Prediction
}

// Resolve collapses prediction histories into one effective prediction per
// participant and question: the row with the latest CreatedDate wins, and on
// equal timestamps the first row seen is kept. Rows without a participant name
// are dropped, as are rows for which include returns false.
//
// The returned slice is in first-seen participant order.
func Resolve(predictions []model.Prediction, include func(questionRef string) bool) []*Resolved {
	byID := make(map[model.ParticipantID]*Resolved)
	var order []*Resolved

	for _, p := range predictions {
		pid := p.Participant()
		if pid == "" {
			continue
		}
		if include != nil && !include(p.QuestionID) {
			continue
		}

		r, ok := byID[pid]
		if !ok {
			r = &Resolved{
				Participant: pid,
				Effective:   make(map[string]model.Prediction),
				latest:      p,
			}
			byID[pid] = r
			order = append(order, r)
		}

		if cur, ok := r.Effective[p.QuestionID]; !ok || p.CreatedDate.After(cur.CreatedDate) {
			r.Effective[p.QuestionID] = p
		}
		if p.CreatedDate.After(r.latest.CreatedDate) {
			r.latest = p
		}
	}

	for _, r := range order {
		r.Name = strings.Join(strings.Fields(r.latest.ParticipantName), " ")
	}
	return order
}
