package fetcher

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				row.AddCell().SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "pool.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestStreamXLSX_HeaderAndRows(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"Predictions": {
			{"participant_name", " question_ref ", "text_prediction"},
			{"Dana", "q1", "2-1"},
			{"", "", ""},
			{"Noa", "q1", " 1-1 "},
		},
	})

	s, err := StreamXLSX(context.Background(), path, XLSXOptions{SheetName: "Predictions"})
	require.NoError(t, err)
	assert.Equal(t, []string{"participant_name", "question_ref", "text_prediction"}, s.Header)

	rows, err := s.Collect()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Dana", "q1", "2-1"}, {"Noa", "q1", "1-1"}}, rows)
}

func TestStreamXLSX_SheetErrors(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"a"}}})

	_, err := StreamXLSX(context.Background(), path, XLSXOptions{SheetName: "Nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sheet "Nope" not found`)

	_, err = StreamXLSX(context.Background(), path, XLSXOptions{SheetIndex: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = StreamXLSX(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"), XLSXOptions{})
	require.Error(t, err)
}

func TestOpen_XLSXFile(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{"Sheet1": {{"id"}, {"q1"}, {"q2"}}})

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	rows, err := s.Collect()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
