package scoring

import (
	"strings"

	"golang.org/x/text/cases"
)

// Verdict is the score of one question for one effective prediction.
type Verdict struct {
	Score    int
	MaxScore int
}

// MaxScore is the full-credit value of a classified question.
func (c Classification) MaxScore(possiblePoints int) int {
	switch c.Kind {
	case KindScore:
		return c.Scale.Exact
	case KindBonus:
		return c.Reward.Full + c.Reward.Partial
	case KindText:
		return possiblePoints
	default:
		return 0
	}
}

// ScoreMatch applies the score ladder to an actual and a predicted result.
// Unparseable input on either side is a non-match.
func ScoreMatch(scale Scale, actual, predicted string) int {
	a, ok := ParseScore(actual)
	if !ok {
		return 0
	}
	p, ok := ParseScore(predicted)
	if !ok {
		return 0
	}
	switch {
	case a == p:
		return scale.Exact
	case a.Outcome() != p.Outcome():
		return 0
	case a.Difference() == p.Difference():
		return scale.Difference
	default:
		return scale.Outcome
	}
}

// sameAnswer compares two text answers. Leading and trailing whitespace is
// ignored on both sides, since sheet cells often carry a stray space. Beyond
// that the match is exact (case sensitive, inner spacing kept) unless the
// rules enable case folding. An empty answer never matches.
func (e *Engine) sameAnswer(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if e.rules.foldText {
		fold := cases.Fold() // a Caser is stateful, so one per call
		return fold.String(a) == fold.String(b)
	}
	return a == b
}

// judge scores one question. siblings holds the decided actual results of the
// other questions in the same table and is only consulted for bonus tables.
// An empty predicted string stands for a missing prediction.
func (e *Engine) judge(c Classification, possiblePoints int, actual, predicted string, siblings []string) Verdict {
	v := Verdict{MaxScore: c.MaxScore(possiblePoints)}
	if c.Kind == KindExcluded || !e.rules.isDecided(actual) {
		return v
	}

	switch c.Kind {
	case KindScore:
		v.Score = ScoreMatch(c.Scale, actual, predicted)
	case KindText:
		if e.sameAnswer(predicted, actual) {
			v.Score = possiblePoints
		}
	case KindBonus:
		if e.sameAnswer(predicted, actual) {
			v.Score = c.Reward.Full + c.Reward.Partial
			break
		}
		if c.Reward.Partial == 0 {
			break
		}
		for _, s := range siblings {
			if e.sameAnswer(predicted, s) {
				v.Score = c.Reward.Partial
				break
			}
		}
	}
	return v
}
