package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"

	"github.com/sells-group/pool-cli/internal/leaderboard"
)

const (
	leaderboardSheet = "Leaderboard"
	breakdownSheet   = "Breakdown"
)

var breakdownColumns = []string{
	"participant_name",
	"table_id",
	"question_id",
	"prediction",
	"actual",
	"score",
	"max_score",
	"bonus",
}

// WriteWorkbook writes an XLSX workbook with a ranking sheet and a
// breakdown sheet listing every scored item per participant.
func WriteWorkbook(out io.Writer, b *leaderboard.Board) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName(f.GetSheetName(0), leaderboardSheet); err != nil {
		return eris.Wrap(err, "export: name leaderboard sheet")
	}
	if _, err := f.NewSheet(breakdownSheet); err != nil {
		return eris.Wrap(err, "export: add breakdown sheet")
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return eris.Wrap(err, "export: header style")
	}

	rows := make([][]any, 0, len(b.Entries))
	for _, e := range b.Entries {
		rows = append(rows, []any{
			e.CurrentPosition,
			string(e.ParticipantID),
			e.ParticipantName,
			e.CurrentScore,
			e.BaselinePosition,
			e.BaselineScore,
			e.ScoreChange,
			e.PositionChange,
		})
	}
	if err := writeSheet(f, leaderboardSheet, leaderboardColumns, rows, header); err != nil {
		return err
	}

	rows = rows[:0]
	for _, e := range b.Entries {
		c, ok := b.Cards[e.ParticipantID]
		if !ok {
			continue
		}
		for _, it := range c.Items {
			rows = append(rows, []any{
				c.Name,
				it.TableID,
				it.QuestionID,
				it.Prediction,
				it.Actual,
				it.Score,
				it.MaxScore,
				it.IsBonus,
			})
		}
	}
	if err := writeSheet(f, breakdownSheet, breakdownColumns, rows, header); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	return eris.Wrap(f.Write(out), "export: write workbook")
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows [][]any, headerStyle int) error {
	head := make([]any, len(columns))
	for i, c := range columns {
		head[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return eris.Wrapf(err, "export: write %s header", sheet)
	}

	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return eris.Wrap(err, "export: header range")
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return eris.Wrapf(err, "export: style %s header", sheet)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return eris.Wrap(err, "export: row cell")
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return eris.Wrapf(err, "export: write %s row %d", sheet, i+2)
		}
	}

	return eris.Wrapf(f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}), "export: freeze %s header", sheet)
}
