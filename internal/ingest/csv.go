// Package ingest is the specification ingestion pipeline: it turns
// heterogeneous phone-spec records (admin CSV uploads, the external
// specs API) into canonical catalog documents, one record at a time,
// without letting a bad record abort the batch.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotCSV rejects a bulk-import request before any record is touched.
var ErrNotCSV = fmt.Errorf("file must have a .csv extension")

// CheckCSVExtension gates bulk-import uploads on the file name.
func CheckCSVExtension(filename string) error {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return ErrNotCSV
	}
	return nil
}

// RowReader yields CSV rows as header-keyed maps, lazily and in file
// order. Values are whitespace-trimmed; a value that is empty after
// trimming is dropped from the map so absence checks stay uniform
// downstream.
type RowReader struct {
	r      *csv.Reader
	header []string
	line   int // data line number, header excluded
}

func NewRowReader(r io.Reader) (*RowReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	raw, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make([]string, len(raw))
	for i, name := range raw {
		header[i] = strings.TrimSpace(strings.ToLower(name))
	}

	return &RowReader{r: cr, header: header}, nil
}

// Next returns the next row and its 1-based data row number, or io.EOF
// when the file is exhausted. A malformed line is returned as an error
// with the row number so the orchestrator can record it and move on.
func (rr *RowReader) Next() (map[string]string, int, error) {
	for {
		raw, err := rr.r.Read()
		if err == io.EOF {
			return nil, rr.line, io.EOF
		}
		rr.line++
		if err != nil {
			return nil, rr.line, fmt.Errorf("row %d: %w", rr.line, err)
		}
		if len(raw) == 0 {
			continue
		}

		row := make(map[string]string, len(rr.header))
		for i, name := range rr.header {
			if name == "" || i >= len(raw) {
				continue
			}
			v := strings.TrimSpace(raw[i])
			if v == "" {
				continue
			}
			row[name] = v
		}
		return row, rr.line, nil
	}
}
