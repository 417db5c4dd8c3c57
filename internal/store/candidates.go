package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/minsukim/tripdeck/internal/models"
)

const (
	candidatesFile       = "candidates.csv"
	candidatesBackupFile = "candidates.backup.csv"
)

// Candidates persists the "maybe we should go here" place list.
//
// Unlike the schedule store, saves here go through a temp file and an
// atomic rename, and the previous generation is copied (not moved) to the
// backup slot before every write. Load falls back to the backup when the
// primary is corrupt.
type Candidates struct {
	path   string
	backup string
}

// NewCandidates creates a candidates store rooted at the data directory.
func NewCandidates(dataDir string) *Candidates {
	return &Candidates{
		path:   filepath.Join(dataDir, candidatesFile),
		backup: filepath.Join(dataDir, candidatesBackupFile),
	}
}

// Path returns the primary file path.
func (c *Candidates) Path() string { return c.path }

// EnsureInitialized creates an empty candidates file (header only) if it
// does not exist yet.
func (c *Candidates) EnsureInitialized() error {
	if _, err := os.Stat(c.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("store: mkdir candidates dir: %w", err)
	}
	return writeTableFile(c.path, models.CandidateColumns, nil)
}

// Load reads all candidate places. A corrupt primary file is restored
// from the backup slot; if both are unreadable the result is empty.
func (c *Candidates) Load() []models.Candidate {
	if err := c.EnsureInitialized(); err != nil {
		slog.Warn("candidates init failed", slog.String("error", err.Error()))
		return nil
	}
	rows, err := readTable(c.path, models.CandidateColumns)
	if err == nil {
		return candidatesFromRows(rows)
	}
	slog.Warn("candidates unreadable, trying backup", slog.String("error", err.Error()))

	rows, err = readTable(c.backup, models.CandidateColumns)
	if err != nil {
		return nil
	}
	// Restore the primary from the recovered backup.
	if err := writeTableFile(c.path, models.CandidateColumns, rows); err != nil {
		slog.Warn("candidates restore failed", slog.String("error", err.Error()))
	}
	return candidatesFromRows(rows)
}

// Save writes the full candidate list: copy the current generation to the
// backup slot, write a temp file, then atomically replace the primary.
func (c *Candidates) Save(candidates []models.Candidate) error {
	if _, err := os.Stat(c.path); err == nil {
		if err := copyFile(c.path, c.backup); err != nil {
			return fmt.Errorf("store: backup candidates: %w", err)
		}
	}
	rows := make([][]string, len(candidates))
	for i, cand := range candidates {
		rows[i] = cand.Row()
	}
	tmp := c.path + ".tmp"
	if err := writeTableFile(tmp, models.CandidateColumns, rows); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("store: replace candidates: %w", err)
	}
	return nil
}

func candidatesFromRows(rows [][]string) []models.Candidate {
	out := make([]models.Candidate, len(rows))
	for i, row := range rows {
		out[i] = models.CandidateFromRow(row)
	}
	return out
}
