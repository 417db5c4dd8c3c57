package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/minsukim/tripdeck/internal/models"
)

const (
	scheduleFile       = "schedule.csv"
	scheduleBackupFile = "schedule.backup.csv"
)

// Schedule persists the itinerary sequence as a CSV file with a
// single-generation backup slot.
//
// Save moves the current file aside before writing the new one, so a crash
// mid-write can leave the primary empty with the previous version only in
// the backup slot. The candidates store is stricter; the two disciplines
// are intentionally kept distinct.
type Schedule struct {
	path   string
	backup string
}

// NewSchedule creates a schedule store rooted at the data directory.
func NewSchedule(dataDir string) *Schedule {
	return &Schedule{
		path:   filepath.Join(dataDir, scheduleFile),
		backup: filepath.Join(dataDir, scheduleBackupFile),
	}
}

// Path returns the primary file path.
func (s *Schedule) Path() string { return s.path }

// EnsureInitialized creates the schedule file with one seed record if it
// does not exist yet. Idempotent; never overwrites an existing file.
func (s *Schedule) EnsureInitialized() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("store: mkdir schedule dir: %w", err)
	}
	return writeTableFile(s.path, models.RecordColumns, [][]string{models.SeedRecord.Row()})
}

// Load reads the full itinerary sequence. Missing columns are repaired
// with empty strings and columns are reordered to the canonical schema.
// An unreadable file degrades to an empty sequence so the UI can still
// render an empty state.
func (s *Schedule) Load() []models.Record {
	if err := s.EnsureInitialized(); err != nil {
		slog.Warn("schedule init failed", slog.String("error", err.Error()))
		return nil
	}
	rows, err := readTable(s.path, models.RecordColumns)
	if err != nil {
		slog.Warn("schedule unreadable", slog.String("path", s.path), slog.String("error", err.Error()))
		return nil
	}
	records := make([]models.Record, len(rows))
	for i, row := range rows {
		records[i] = models.RecordFromRow(row)
	}
	return records
}

// Save replaces the full sequence on disk. The previous generation moves
// to the backup slot first, overwriting whatever was there.
func (s *Schedule) Save(records []models.Record) error {
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, s.backup); err != nil {
			return fmt.Errorf("store: backup schedule: %w", err)
		}
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Row()
	}
	return writeTableFile(s.path, models.RecordColumns, rows)
}
