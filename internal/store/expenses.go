package store

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/minsukim/tripdeck/internal/models"
)

const expensesFile = "expenses.csv"

// Expenses persists spending entries. This store carries no backup slot;
// reads of a missing or unreadable file yield an empty list.
type Expenses struct {
	path string
}

// NewExpenses creates an expenses store rooted at the data directory.
func NewExpenses(dataDir string) *Expenses {
	return &Expenses{path: filepath.Join(dataDir, expensesFile)}
}

// Path returns the file path.
func (e *Expenses) Path() string { return e.path }

// Load reads all expense rows.
func (e *Expenses) Load() []models.Expense {
	if _, err := os.Stat(e.path); err != nil {
		return nil
	}
	rows, err := readTable(e.path, models.ExpenseColumns)
	if err != nil {
		slog.Warn("expenses unreadable", slog.String("error", err.Error()))
		return nil
	}
	out := make([]models.Expense, len(rows))
	for i, row := range rows {
		out[i] = models.ExpenseFromRow(row)
	}
	return out
}

// Save writes the full expense list, replacing previous contents.
func (e *Expenses) Save(expenses []models.Expense) error {
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return err
	}
	rows := make([][]string, len(expenses))
	for i, exp := range expenses {
		rows[i] = exp.Row()
	}
	return writeTableFile(e.path, models.ExpenseColumns, rows)
}
