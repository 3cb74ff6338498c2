// Package fetcher reads tabular pool sheets (CSV exports and XLSX workbooks)
// as a header row plus a stream of data rows.
package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Sheet is an open tabular source. Rows and Errs are closed once the source
// is exhausted, fails or ctx is cancelled.
type Sheet struct {
	Header []string
	Rows   <-chan []string
	Errs   <-chan error
}

// Open opens a CSV or XLSX file, chosen by extension, and starts streaming
// its data rows.
func Open(ctx context.Context, path string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "fetcher: open %s", path)
		}
		opts := CSVOptions{LazyQuotes: true, Closer: f}
		if strings.EqualFold(filepath.Ext(path), ".tsv") {
			opts.Delimiter = '\t'
		}
		s, err := StreamCSV(ctx, f, opts)
		if err != nil {
			f.Close() //nolint:errcheck
			return nil, err
		}
		return s, nil
	case ".xlsx":
		return StreamXLSX(ctx, path, XLSXOptions{})
	default:
		return nil, eris.Errorf("fetcher: unsupported file type %q", filepath.Ext(path))
	}
}

// Collect drains a sheet into memory.
func (s *Sheet) Collect() ([][]string, error) {
	var rows [][]string
	for row := range s.Rows {
		rows = append(rows, row)
	}
	for err := range s.Errs {
		if err != nil {
			return rows, err
		}
	}
	return rows, nil
}

// blank reports whether every cell of a row is empty after trimming.
func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
