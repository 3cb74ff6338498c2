// Package scoring turns questions and prediction histories into per-question
// scores, participant totals, a competition ranking and baseline deltas.
//
// Everything here is a pure function of its inputs. Persistence, paging and
// pacing live in the leaderboard package.
package scoring

import (
	"fmt"
	"path"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/config"
)

// ErrMissingBonusReward is returned when a table belongs to the bonus family
// but the rules table declares no reward for it.
var ErrMissingBonusReward = eris.New("scoring: bonus table has no declared reward")

// TieBreak selects the display order of participants sharing a score.
// Positions are shared either way.
type TieBreak string

const (
	TieBreakName  TieBreak = "name"  // participant id ascending
	TieBreakInput TieBreak = "input" // first-seen order
)

// Scale is a point ladder for score questions.
type Scale struct {
	Exact      int // exact score
	Difference int // right outcome and goal difference
	Outcome    int // right outcome only
}

var (
	StandardScale = Scale{Exact: 10, Difference: 7, Outcome: 5}
	RegionalScale = Scale{Exact: 6, Difference: 4, Outcome: 2}
)

// DefaultRules returns the rules table used when no configuration is given.
func DefaultRules() config.ScoringConfig {
	return config.ScoringConfig{
		MetadataTable:  "T1",
		RegionalTables: []string{"R*"},
		BonusTables:    []string{"B*"},
		BonusRewards: map[string]config.BonusReward{
			"B1": {Full: 20, Partial: 40},
			"B2": {Full: 30, Partial: 50},
			"B3": {Full: 20, Partial: 0},
		},
		UndecidedMarkers: []string{"TBD", "PENDING", "?", "-"},
		TieBreak:         string(TieBreakName),
	}
}

// ValidateRules checks that a rules table is internally consistent. A bonus
// family without a reward for some concrete table is not detectable here; the
// engine reports it when it meets such a table.
func ValidateRules(c config.ScoringConfig) error {
	var errs []string

	for _, p := range append(append([]string{}, c.RegionalTables...), c.BonusTables...) {
		if _, err := path.Match(p, ""); err != nil {
			errs = append(errs, fmt.Sprintf("bad table pattern %q", p))
		}
	}
	for id, r := range c.BonusRewards {
		if r.Full < 0 || r.Partial < 0 {
			errs = append(errs, fmt.Sprintf("bonus_rewards.%s must be >= 0", id))
		}
		if r.Full == 0 && r.Partial == 0 {
			errs = append(errs, fmt.Sprintf("bonus_rewards.%s pays nothing", id))
		}
	}
	switch TieBreak(c.TieBreak) {
	case "", TieBreakName, TieBreakInput:
	default:
		errs = append(errs, fmt.Sprintf("tie_break must be name or input (got %q)", c.TieBreak))
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: rules validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ruleSet is the lookup form of config.ScoringConfig. Table ids and patterns
// are lowercased: viper lowercases map keys, yaml does not.
type ruleSet struct {
	metadata  string
	regional  []string
	bonus     []string
	rewards   map[string]config.BonusReward
	undecided map[string]bool
	tieBreak  TieBreak
	foldText  bool
}

func compileRules(c config.ScoringConfig) ruleSet {
	rs := ruleSet{
		metadata:  strings.ToLower(strings.TrimSpace(c.MetadataTable)),
		rewards:   make(map[string]config.BonusReward, len(c.BonusRewards)),
		undecided: make(map[string]bool, len(c.UndecidedMarkers)),
		tieBreak:  TieBreak(c.TieBreak),
		foldText:  c.FoldText,
	}
	if rs.tieBreak == "" {
		rs.tieBreak = TieBreakName
	}
	for _, p := range c.RegionalTables {
		rs.regional = append(rs.regional, strings.ToLower(p))
	}
	for _, p := range c.BonusTables {
		rs.bonus = append(rs.bonus, strings.ToLower(p))
	}
	for id, r := range c.BonusRewards {
		rs.rewards[strings.ToLower(id)] = r
	}
	for _, m := range c.UndecidedMarkers {
		rs.undecided[strings.ToUpper(strings.TrimSpace(m))] = true
	}
	return rs
}

func tableKey(tableID string) string {
	return strings.ToLower(strings.TrimSpace(tableID))
}

func matchesAny(patterns []string, key string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, key); ok {
			return true
		}
	}
	return false
}

func (rs ruleSet) isMetadata(tableID string) bool {
	return rs.metadata != "" && tableKey(tableID) == rs.metadata
}

func (rs ruleSet) isDecided(actual string) bool {
	a := strings.TrimSpace(actual)
	return a != "" && !rs.undecided[strings.ToUpper(a)]
}
