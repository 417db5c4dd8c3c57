package planner

import (
	"errors"
	"testing"

	"github.com/minsukim/tripdeck/internal/apperr"
	"github.com/minsukim/tripdeck/internal/itinerary"
	"github.com/minsukim/tripdeck/internal/models"
	"github.com/minsukim/tripdeck/internal/store"
)

func testService(t *testing.T) *Service {
	t.Helper()
	dir := t.TempDir()
	return NewService(store.NewSchedule(dir), store.NewCandidates(dir), store.NewExpenses(dir), 2026, "")
}

func TestViewDerivesAndSorts(t *testing.T) {
	svc := testService(t)
	err := svc.SaveSchedule([]models.Record{
		{DateLabel: "3/5", TimeLabel: "10:00", Content: "second day"},
		{DateLabel: "3/4", TimeLabel: "09:20", Content: "first day", Place: "Fukuoka Airport"},
	})
	if err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}

	v := svc.View(itinerary.Filter{})
	if len(v.Entries) != 2 {
		t.Fatalf("entries = %d", len(v.Entries))
	}
	if v.Entries[0].Content != "first day" {
		t.Errorf("sort order broken: %q first", v.Entries[0].Content)
	}
	if len(v.Groups) != 2 || v.Groups[0].Date != "3/4" {
		t.Errorf("groups = %+v", v.Groups)
	}
	if len(v.DateLabels) != 2 {
		t.Errorf("date labels = %v", v.DateLabels)
	}
}

func TestViewFilterKeepsAllDateLabels(t *testing.T) {
	svc := testService(t)
	_ = svc.SaveSchedule([]models.Record{
		{DateLabel: "3/4", Content: "a"},
		{DateLabel: "3/5", Content: "b"},
	})
	v := svc.View(itinerary.Filter{Dates: []string{"3/4"}})
	if len(v.Entries) != 1 {
		t.Fatalf("filtered entries = %d", len(v.Entries))
	}
	// The label list stays unfiltered so the UI can render every option.
	if len(v.DateLabels) != 2 {
		t.Errorf("date labels = %v", v.DateLabels)
	}
}

func TestPlacesDistinctResolved(t *testing.T) {
	svc := testService(t)
	_ = svc.SaveSchedule([]models.Record{
		{Content: "lunch", Place: "Ichiran Hakata"},
		{Content: "more ramen", Place: "Ichiran Hakata"},
		{Content: "짐 정리", Place: ""},
		{Content: "walk", Place: "Ohori Park"},
	})
	places := svc.Places()
	if len(places) != 3 {
		t.Fatalf("places = %+v", places)
	}
	if places[0].Query != "Ichiran Hakata" || places[0].SearchURL == "" {
		t.Errorf("first place = %+v", places[0])
	}
}

func TestCandidateAddAndPositionalDelete(t *testing.T) {
	svc := testService(t)
	if err := svc.AddCandidate(models.Candidate{Place: "Daiso"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddCandidate(models.Candidate{Place: "Yodobashi"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteCandidate(0); err != nil {
		t.Fatalf("DeleteCandidate: %v", err)
	}
	left := svc.Candidates()
	if len(left) != 1 || left[0].Place != "Yodobashi" {
		t.Errorf("remaining = %+v", left)
	}
	if err := svc.DeleteCandidate(5); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("out of range delete = %v, want ErrNotFound", err)
	}
}

func TestExpenseSummary(t *testing.T) {
	svc := testService(t)
	_ = svc.SaveExpenses([]models.Expense{
		{Item: "Ramen", Amount: "2400"},
		{Item: "tbd", Amount: "?"},
	})
	s := svc.ExpenseSummary()
	if s.Count != 2 || s.Total != "2400" {
		t.Errorf("summary = %+v", s)
	}
}
