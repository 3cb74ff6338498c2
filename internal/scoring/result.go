package scoring

import (
	"strconv"
	"strings"
)

// Goals is a parsed "<home>-<away>" score.
type Goals struct {
	Home int
	Away int
}

// ParseScore parses "<int>-<int>" with optional spaces around either side.
// Negative or non-numeric sides are rejected.
func ParseScore(s string) (Goals, bool) {
	home, away, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Goals{}, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(home))
	if err != nil || h < 0 {
		return Goals{}, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(away))
	if err != nil || a < 0 {
		return Goals{}, false
	}
	return Goals{Home: h, Away: a}, true
}

// Outcome is the match result from the home side's view.
type Outcome int

const (
	WinHome Outcome = iota + 1
	Draw
	WinAway
)

// Outcome returns the match outcome of g.
func (g Goals) Outcome() Outcome {
	switch {
	case g.Home > g.Away:
		return WinHome
	case g.Home < g.Away:
		return WinAway
	default:
		return Draw
	}
}

// Difference is home goals minus away goals.
func (g Goals) Difference() int {
	return g.Home - g.Away
}
