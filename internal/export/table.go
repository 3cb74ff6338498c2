package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/model"
	"github.com/sells-group/pool-cli/internal/scoring"
)

// WriteTable writes the ranking as an aligned text table.
func WriteTable(out io.Writer, entries []model.RankingEntry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "POS\tPARTICIPANT\tSCORE\tCHANGE\tMOVE")
	_, _ = fmt.Fprintln(w, "---\t-----------\t-----\t------\t----")

	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n",
			e.CurrentPosition,
			e.ParticipantName,
			e.CurrentScore,
			signed(e.ScoreChange),
			signed(e.PositionChange),
		)
	}
	return eris.Wrap(w.Flush(), "export: flush table")
}

// WriteBreakdown writes one participant's per-question scores and total.
func WriteBreakdown(out io.Writer, c scoring.Card) error {
	_, _ = fmt.Fprintf(out, "%s: %d of %d\n\n", c.Name, c.Total, c.MaxTotal)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TABLE\tQUESTION\tPREDICTION\tACTUAL\tSCORE\tMAX")
	_, _ = fmt.Fprintln(w, "-----\t--------\t----------\t------\t-----\t---")

	for _, it := range c.Items {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			it.TableID,
			it.QuestionID,
			orDash(it.Prediction),
			orDash(it.Actual),
			it.Score,
			it.MaxScore,
		)
	}
	_, _ = fmt.Fprintf(w, "\t\t\tTOTAL\t%d\t%d\n", c.Total, c.MaxTotal)
	return eris.Wrap(w.Flush(), "export: flush breakdown")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
