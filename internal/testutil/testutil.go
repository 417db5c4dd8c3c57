// Package testutil provides shared test helpers for setting up file
// stores and planner services over temporary data directories.
package testutil

import (
	"testing"

	"github.com/minsukim/tripdeck/internal/planner"
	"github.com/minsukim/tripdeck/internal/store"
)

// TripYear anchors month/day labels in tests.
const TripYear = 2026

// NewStores creates schedule, candidate, and expense stores over a
// temporary data directory that is cleaned up automatically.
func NewStores(t *testing.T) (string, *store.Schedule, *store.Candidates, *store.Expenses) {
	t.Helper()
	dir := t.TempDir()
	return dir, store.NewSchedule(dir), store.NewCandidates(dir), store.NewExpenses(dir)
}

// NewPlanner creates a planner service over a temporary data directory.
func NewPlanner(t *testing.T) (*planner.Service, string) {
	t.Helper()
	dir, schedule, candidates, expenses := NewStores(t)
	return planner.NewService(schedule, candidates, expenses, TripYear, ""), dir
}
