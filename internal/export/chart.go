package export

import (
	"errors"
	"io"

	"github.com/rotisserie/eris"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sells-group/pool-cli/internal/model"
)

// ErrNoEntries is returned when there is nothing to chart.
var ErrNoEntries = errors.New("export: no leaderboard entries")

// ChartOptions sizes the bar chart.
type ChartOptions struct {
	Title  string
	Top    int // bars drawn, from the top of the ranking; 0 means 20
	Width  int
	Height int
}

var (
	barColor    = drawing.ColorFromHex("2E7D32")
	leaderColor = drawing.ColorFromHex("F9A825")
	textColor   = drawing.ColorFromHex("212121")
)

// WriteChart renders the top of the ranking as a PNG bar chart of scores.
// Leaders (position 1) are highlighted.
func WriteChart(out io.Writer, entries []model.RankingEntry, opts ChartOptions) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}
	if opts.Top <= 0 {
		opts.Top = 20
	}
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 512
	}

	entries = entries[:min(opts.Top, len(entries))]
	bars := make([]chart.Value, len(entries))
	maxScore := 1.0
	for i, e := range entries {
		fill := barColor
		if e.CurrentPosition == 1 {
			fill = leaderColor
		}
		bars[i] = chart.Value{
			Label: e.ParticipantName,
			Value: float64(e.CurrentScore),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
		maxScore = max(maxScore, float64(e.CurrentScore))
	}

	graph := chart.BarChart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		XAxis: chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor},
			// A fixed range keeps single-bar and all-zero boards renderable.
			Range: &chart.ContinuousRange{Min: 0, Max: maxScore},
		},
		Bars: bars,
	}

	return eris.Wrap(graph.Render(chart.PNG, out), "export: render chart")
}
