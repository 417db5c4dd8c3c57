// Package models defines the domain types for Tripdeck.
package models

// Record is one itinerary entry. Every field is a free-text string; an
// absent value is the empty string, never a nil-like marker. Records have
// no identity beyond their position in the stored sequence.
type Record struct {
	DateLabel string `json:"date"`
	TimeLabel string `json:"time"`
	Category  string `json:"category"`
	Content   string `json:"content"`
	Place     string `json:"place"`
	MapQuery  string `json:"map_query"`
	Transport string `json:"transport"`
}

// RecordColumns is the canonical column order of the schedule file.
// The on-disk header uses these names.
var RecordColumns = []string{"date", "time", "category", "content", "place", "map_query", "transport"}

// Row serializes the record in canonical column order.
func (r Record) Row() []string {
	return []string{r.DateLabel, r.TimeLabel, r.Category, r.Content, r.Place, r.MapQuery, r.Transport}
}

// RecordFromRow builds a Record from a row already normalized to the
// canonical column order. Short rows are padded with empty strings.
func RecordFromRow(row []string) Record {
	cells := make([]string, len(RecordColumns))
	copy(cells, row)
	return Record{
		DateLabel: cells[0],
		TimeLabel: cells[1],
		Category:  cells[2],
		Content:   cells[3],
		Place:     cells[4],
		MapQuery:  cells[5],
		Transport: cells[6],
	}
}

// SeedRecord is written when the schedule file is created for the first time.
var SeedRecord = Record{
	DateLabel: "3/4 (Wed)",
	TimeLabel: "09:20",
	Category:  "Arrival",
	Content:   "Arrive at Fukuoka Airport",
}

// Candidate is a saved "maybe we should go here" place.
type Candidate struct {
	Place   string `json:"place"`
	MapLink string `json:"map_link"`
}

// CandidateColumns is the canonical column order of the candidates file.
var CandidateColumns = []string{"place", "map_link"}

// Row serializes the candidate in canonical column order.
func (c Candidate) Row() []string {
	return []string{c.Place, c.MapLink}
}

// CandidateFromRow builds a Candidate from a normalized row.
func CandidateFromRow(row []string) Candidate {
	cells := make([]string, len(CandidateColumns))
	copy(cells, row)
	return Candidate{Place: cells[0], MapLink: cells[1]}
}

// Expense is one spending entry. Amount stays a string at this layer;
// the expense package interprets it numerically.
type Expense struct {
	Date   string `json:"date"`
	Item   string `json:"item"`
	Amount string `json:"amount"`
	Payer  string `json:"payer"`
	Memo   string `json:"memo"`
}

// ExpenseColumns is the canonical column order of the expenses file.
var ExpenseColumns = []string{"date", "item", "amount", "payer", "memo"}

// Row serializes the expense in canonical column order.
func (e Expense) Row() []string {
	return []string{e.Date, e.Item, e.Amount, e.Payer, e.Memo}
}

// ExpenseFromRow builds an Expense from a normalized row.
func ExpenseFromRow(row []string) Expense {
	cells := make([]string, len(ExpenseColumns))
	copy(cells, row)
	return Expense{Date: cells[0], Item: cells[1], Amount: cells[2], Payer: cells[3], Memo: cells[4]}
}
