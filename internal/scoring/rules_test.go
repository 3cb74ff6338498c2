package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/pool-cli/internal/config"
)

func TestValidateRulesDefaults(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateRules(DefaultRules()))
}

func TestValidateRulesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.ScoringConfig)
		want   string
	}{
		{"bad pattern", func(c *config.ScoringConfig) { c.BonusTables = []string{"["} }, "bad table pattern"},
		{"negative reward", func(c *config.ScoringConfig) {
			c.BonusRewards = map[string]config.BonusReward{"B1": {Full: -1}}
		}, "bonus_rewards.B1 must be >= 0"},
		{"empty reward", func(c *config.ScoringConfig) {
			c.BonusRewards = map[string]config.BonusReward{"B1": {}}
		}, "bonus_rewards.B1 pays nothing"},
		{"unknown tie break", func(c *config.ScoringConfig) { c.TieBreak = "random" }, "tie_break must be name or input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rules := DefaultRules()
			tt.mutate(&rules)
			err := ValidateRules(rules)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			_, err = NewEngine(rules)
			assert.Error(t, err)
		})
	}
}

func TestEngineTieBreakDefaultsToName(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t, func(c *config.ScoringConfig) { c.TieBreak = "" })
	assert.Equal(t, TieBreakName, e.TieBreak())
}

func TestCompareOrdinal(t *testing.T) {
	t.Parallel()
	assert.Negative(t, compareOrdinal("2", "10"))
	assert.Negative(t, compareOrdinal("3", "3.1"))
	assert.Negative(t, compareOrdinal("3.1", "3.2"))
	assert.Negative(t, compareOrdinal("3.2", "4"))
	assert.Zero(t, compareOrdinal("T2", "T2"))
	assert.Positive(t, compareOrdinal("b", "a"))
}
