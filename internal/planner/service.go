// Package planner coordinates the stores and the itinerary derivation for
// the API and MCP surfaces.
package planner

import (
	"sort"
	"strings"

	"github.com/minsukim/tripdeck/internal/apperr"
	"github.com/minsukim/tripdeck/internal/expense"
	"github.com/minsukim/tripdeck/internal/itinerary"
	"github.com/minsukim/tripdeck/internal/models"
	"github.com/minsukim/tripdeck/internal/store"
)

// Service is stateless beyond its stores: every read re-derives the view
// from the current file contents, and every save replaces a file in full
// (last writer wins).
type Service struct {
	schedule   *store.Schedule
	candidates *store.Candidates
	expenses   *store.Expenses
	tripYear   int
	mapsKey    string
}

// NewService wires a planner service over the given stores.
func NewService(schedule *store.Schedule, candidates *store.Candidates, expenses *store.Expenses, tripYear int, mapsKey string) *Service {
	return &Service{
		schedule:   schedule,
		candidates: candidates,
		expenses:   expenses,
		tripYear:   tripYear,
		mapsKey:    mapsKey,
	}
}

// View is the derived schedule projection served to the presentation layer.
type View struct {
	Entries    []itinerary.Entry    `json:"entries"`
	Groups     []itinerary.DayGroup `json:"groups"`
	DateLabels []string             `json:"date_labels"`
}

// Records returns the raw stored itinerary sequence.
func (s *Service) Records() []models.Record {
	return s.schedule.Load()
}

// SaveSchedule replaces the stored itinerary in full.
func (s *Service) SaveSchedule(records []models.Record) error {
	return s.schedule.Save(records)
}

// View derives, sorts, and filters the schedule projection. Date labels
// always reflect the unfiltered schedule so the filter UI can offer every
// option.
func (s *Service) View(f itinerary.Filter) View {
	entries := itinerary.BuildView(s.schedule.Load(), s.tripYear)
	labels := itinerary.DateLabels(entries)
	filtered := f.Apply(entries)
	return View{
		Entries:    filtered,
		Groups:     itinerary.GroupByDate(filtered),
		DateLabels: labels,
	}
}

// Place is a distinct schedule location with its map links.
type Place struct {
	Query     string `json:"query"`
	SearchURL string `json:"search_url"`
	EmbedURL  string `json:"embed_url,omitempty"`
}

// Places returns the distinct resolved map queries across the schedule,
// sorted, each with a search link and (when a maps key is configured) an
// embeddable map URL.
func (s *Service) Places() []Place {
	seen := make(map[string]bool)
	var queries []string
	for _, r := range s.schedule.Load() {
		q := itinerary.ResolveMapQuery(r.Content, r.Place, r.MapQuery)
		if strings.TrimSpace(q) == "" || seen[q] {
			continue
		}
		seen[q] = true
		queries = append(queries, q)
	}
	sort.Strings(queries)

	places := make([]Place, len(queries))
	for i, q := range queries {
		places[i] = Place{
			Query:     q,
			SearchURL: itinerary.SearchURL(q),
			EmbedURL:  itinerary.EmbedURL(s.mapsKey, q),
		}
	}
	return places
}

// Candidates returns the saved candidate places.
func (s *Service) Candidates() []models.Candidate {
	return s.candidates.Load()
}

// AddCandidate appends a place to the candidate list and saves it.
func (s *Service) AddCandidate(c models.Candidate) error {
	list := append(s.candidates.Load(), c)
	return s.candidates.Save(list)
}

// DeleteCandidate removes the candidate at the given position. Positions
// are the only identity candidates have.
func (s *Service) DeleteCandidate(index int) error {
	list := s.candidates.Load()
	if index < 0 || index >= len(list) {
		return apperr.ErrNotFound
	}
	list = append(list[:index], list[index+1:]...)
	return s.candidates.Save(list)
}

// Expenses returns the stored expense rows.
func (s *Service) Expenses() []models.Expense {
	return s.expenses.Load()
}

// SaveExpenses replaces the stored expense list in full.
func (s *Service) SaveExpenses(list []models.Expense) error {
	return s.expenses.Save(list)
}

// ExpenseSummary aggregates the stored expenses.
func (s *Service) ExpenseSummary() expense.Summary {
	return expense.Summarize(s.expenses.Load())
}
