// Package export renders leaderboards and score breakdowns as text tables,
// CSV, JSON, XLSX workbooks and PNG bar charts.
package export

import (
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/pool-cli/internal/leaderboard"
)

// Format names an output encoding for a leaderboard.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a --format value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", eris.Errorf("export: unknown format %q (want table, csv, json or xlsx)", s)
	}
}

// Leaderboard writes the board to w in the given format.
func Leaderboard(w io.Writer, f Format, b *leaderboard.Board) error {
	switch f {
	case FormatTable, "":
		return WriteTable(w, b.Entries)
	case FormatCSV:
		return WriteCSV(w, b.Entries)
	case FormatJSON:
		return WriteJSON(w, b)
	case FormatXLSX:
		return WriteWorkbook(w, b)
	default:
		return eris.Errorf("export: unknown format %q", f)
	}
}

// signed renders a change with an explicit sign; zero stays "0".
func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
