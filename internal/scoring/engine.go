package scoring

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/sells-group/pool-cli/internal/config"
	"github.com/sells-group/pool-cli/internal/model"
)

// Engine scores predictions against questions with one rules table.
type Engine struct {
	rules ruleSet
}

// NewEngine validates the rules table and returns an Engine.
func NewEngine(rules config.ScoringConfig) (*Engine, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return &Engine{rules: compileRules(rules)}, nil
}

// TieBreak returns the tie ordering configured for this engine.
func (e *Engine) TieBreak() TieBreak {
	return e.rules.tieBreak
}

// Result is the outcome of one scoring run.
type Result struct {
	Totals    map[model.ParticipantID]int
	Breakdown map[model.ParticipantID][]model.ScoredItem
	Names     map[model.ParticipantID]string
	Order     []model.ParticipantID // first-seen order
}

// Standings returns the ranker input in first-seen order.
func (r *Result) Standings() []Standing {
	out := make([]Standing, 0, len(r.Order))
	for _, id := range r.Order {
		out = append(out, Standing{Participant: id, Name: r.Names[id], Score: r.Totals[id]})
	}
	return out
}

// Card returns the aggregated breakdown of one participant.
func (r *Result) Card(id model.ParticipantID) (Card, bool) {
	items, ok := r.Breakdown[id]
	if !ok {
		return Card{}, false
	}
	return Aggregate(id, r.Names[id], items), true
}

type scoredQuestion struct {
	q model.Question
	c Classification
}

// Score resolves every participant's effective predictions and scores them
// against every in-scope question. Questions a participant never answered
// score as non-matches. Only participants with at least one effective
// prediction on an in-scope question appear in the result.
//
// The only error is a configuration error (ErrMissingBonusReward); malformed
// results and predictions score zero.
func (e *Engine) Score(questions []model.Question, predictions []model.Prediction) (*Result, error) {
	var scope []scoredQuestion
	inScope := make(map[string]bool, len(questions))
	for _, q := range questions {
		c, err := e.Classify(q)
		if err != nil {
			return nil, err
		}
		// a repeated id is the same question fetched twice; keep the first
		if c.Kind == KindExcluded || inScope[q.ID] {
			continue
		}
		inScope[q.ID] = true
		scope = append(scope, scoredQuestion{q: q, c: c})
	}
	slices.SortStableFunc(scope, func(a, b scoredQuestion) int {
		if c := cmp.Compare(a.q.StageOrder, b.q.StageOrder); c != 0 {
			return c
		}
		if c := compareOrdinal(a.q.TableID, b.q.TableID); c != 0 {
			return c
		}
		return compareOrdinal(a.q.QuestionID, b.q.QuestionID)
	})

	decidedByTable := make(map[string][]scoredQuestion)
	for _, sq := range scope {
		if sq.c.Kind == KindBonus && e.rules.isDecided(sq.q.ActualResult) {
			key := tableKey(sq.q.TableID)
			decidedByTable[key] = append(decidedByTable[key], sq)
		}
	}

	siblings := func(sq scoredQuestion) []string {
		if sq.c.Kind != KindBonus {
			return nil
		}
		var out []string
		for _, other := range decidedByTable[tableKey(sq.q.TableID)] {
			if other.q.ID != sq.q.ID {
				out = append(out, other.q.ActualResult)
			}
		}
		return out
	}

	resolved := Resolve(predictions, func(ref string) bool { return inScope[ref] })

	res := &Result{
		Totals:    make(map[model.ParticipantID]int, len(resolved)),
		Breakdown: make(map[model.ParticipantID][]model.ScoredItem, len(resolved)),
		Names:     make(map[model.ParticipantID]string, len(resolved)),
		Order:     make([]model.ParticipantID, 0, len(resolved)),
	}
	for _, r := range resolved {
		items := make([]model.ScoredItem, 0, len(scope))
		for _, sq := range scope {
			predicted := r.Effective[sq.q.ID].TextPrediction
			v := e.judge(sq.c, sq.q.PossiblePoints, sq.q.ActualResult, predicted, siblings(sq))
			items = append(items, model.ScoredItem{
				QuestionRef: sq.q.ID,
				TableID:     sq.q.TableID,
				QuestionID:  sq.q.QuestionID,
				Prediction:  predicted,
				Actual:      sq.q.ActualResult,
				Score:       v.Score,
				MaxScore:    v.MaxScore,
				IsBonus:     sq.c.Kind == KindBonus,
			})
		}
		card := Aggregate(r.Participant, r.Name, items)
		res.Totals[r.Participant] = card.Total
		res.Breakdown[r.Participant] = items
		res.Names[r.Participant] = r.Name
		res.Order = append(res.Order, r.Participant)
	}
	return res, nil
}

// compareOrdinal orders dotted ordinals numerically where both parts are
// numbers ("2" < "10", "3" < "3.1") and lexically otherwise.
func compareOrdinal(a, b string) int {
	ap, bp := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(ap) && i < len(bp); i++ {
		an, aerr := strconv.Atoi(ap[i])
		bn, berr := strconv.Atoi(bp[i])
		var c int
		if aerr == nil && berr == nil {
			c = cmp.Compare(an, bn)
		} else {
			c = cmp.Compare(ap[i], bp[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ap), len(bp))
}
