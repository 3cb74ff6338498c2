package scoring

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/config"
	"github.com/sells-group/pool-cli/internal/model"
)

// Kind is the rule set a question is scored with.
type Kind int

const (
	KindExcluded Kind = iota // entrant metadata, never scored
	KindScore                // "<home>-<away>" match score
	KindText                 // exact-match text or selection
	KindBonus                // placement table with reward tiers
)

func (k Kind) String() string {
	switch k {
	case KindExcluded:
		return "excluded"
	case KindScore:
		return "score"
	case KindText:
		return "text"
	case KindBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// Classification is the outcome of classifying one question.
type Classification struct {
	Kind     Kind
	Scale    Scale              // KindScore only
	Regional bool               // KindScore only
	Reward   config.BonusReward // KindBonus only
	Home     string
	Away     string
}

// Classify decides which rule set applies to q. Metadata exclusion wins over
// everything, and the bonus family wins over score detection.
func (e *Engine) Classify(q model.Question) (Classification, error) {
	rs := e.rules
	key := tableKey(q.TableID)

	if rs.isMetadata(q.TableID) {
		return Classification{Kind: KindExcluded}, nil
	}

	if matchesAny(rs.bonus, key) {
		reward, ok := rs.rewards[key]
		if !ok {
			return Classification{}, eris.Wrapf(ErrMissingBonusReward, "table %s", q.TableID)
		}
		return Classification{Kind: KindBonus, Reward: reward}, nil
	}

	home, away := strings.TrimSpace(q.HomeTeam), strings.TrimSpace(q.AwayTeam)
	if home == "" || away == "" {
		home, away = splitTeams(q.QuestionText)
	}
	if home == "" || away == "" {
		return Classification{Kind: KindText}, nil
	}

	c := Classification{Kind: KindScore, Scale: StandardScale, Home: home, Away: away}
	if matchesAny(rs.regional, key) {
		c.Scale = RegionalScale
		c.Regional = true
	}
	return c, nil
}

// splitTeams derives match sides from " <A> vs <B> " or " <A> - <B> " text.
func splitTeams(text string) (string, string) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", ""
	}
	if i := strings.Index(strings.ToLower(t), " vs "); i >= 0 {
		return sides(t[:i], t[i+len(" vs "):])
	}
	if a, b, ok := strings.Cut(t, " - "); ok {
		return sides(a, b)
	}
	return "", ""
}

func sides(a, b string) (string, string) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return "", ""
	}
	return a, b
}
