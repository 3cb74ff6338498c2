package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamCSV_HeaderAndRows(t *testing.T) {
	input := "\ufeffparticipant_name , question_ref,text_prediction\nDana, q1 ,2-1\n\n , ,\nNoa,q1,\"1-1\"\n"
	s, err := StreamCSV(context.Background(), strings.NewReader(input), CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"participant_name", "question_ref", "text_prediction"}, s.Header)

	rows, err := s.Collect()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Dana", "q1", "2-1"}, rows[0])
	assert.Equal(t, []string{"Noa", "q1", "1-1"}, rows[1])
}

func TestStreamCSV_Delimiter(t *testing.T) {
	s, err := StreamCSV(context.Background(), strings.NewReader("a;b\n1;2\n"), CSVOptions{Delimiter: ';'})
	require.NoError(t, err)
	rows, err := s.Collect()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}}, rows)
}

func TestStreamCSV_Empty(t *testing.T) {
	_, err := StreamCSV(context.Background(), strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty file")
}

func TestStreamCSV_MalformedRow(t *testing.T) {
	s, err := StreamCSV(context.Background(), strings.NewReader("a,b\n\"unterminated,2\n"), CSVOptions{})
	require.NoError(t, err)
	_, err = s.Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv: read row")
}

func TestStreamCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := StreamCSV(ctx, strings.NewReader("a\n1\n2\n"), CSVOptions{})
	require.NoError(t, err)
	_, err = s.Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context cancelled")
}

func TestOpen_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,answer\nDana,Spain\n"), 0o644))

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	rows, err := s.Collect()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Dana", "Spain"}}, rows)
}

func TestOpen_TSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.tsv")
	require.NoError(t, os.WriteFile(path, []byte("id\ttable_id\nq1\t2\n"), 0o644))

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "table_id"}, s.Header)
	rows, err := s.Collect()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"q1", "2"}}, rows)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), "pool.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = Open(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
