// Package store persists Tripdeck state as delimited text files under a
// single data directory. Each store owns one file plus, where the original
// data demanded it, a single-generation backup slot.
package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// readTable reads a CSV file and normalizes every row to the canonical
// column order: recognized header columns are reordered by name, missing
// columns are filled with empty strings, and unknown columns are dropped.
func readTable(path string, columns []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	raw, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	// Map each canonical column to its position in the file header.
	header := raw[0]
	pos := make([]int, len(columns))
	for i, col := range columns {
		pos[i] = -1
		for j, name := range header {
			if strings.TrimSpace(name) == col {
				pos[i] = j
				break
			}
		}
	}

	rows := make([][]string, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		row := make([]string, len(columns))
		for i, j := range pos {
			if j >= 0 && j < len(rec) {
				row[i] = rec[j]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeTable(w io.Writer, columns []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeTableFile writes a table straight to path, truncating any previous
// contents. Callers that need crash-safety wrap this with a temp file.
func writeTableFile(path string, columns []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", path, err)
	}
	if err := writeTable(f, columns, rows); err != nil {
		f.Close()
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("store: close %s: %w", path, err)
	}
	return nil
}

// copyFile copies src over dst, used for backup slots that must retain the
// previous generation without disturbing the primary file.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
