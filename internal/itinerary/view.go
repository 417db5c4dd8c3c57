package itinerary

import (
	"sort"
	"strings"
	"time"

	"github.com/minsukim/tripdeck/internal/models"
)

// Entry is the derived projection of one stored record. It is recomputed
// from the store on every read and never persisted.
type Entry struct {
	models.Record

	Bucket        Bucket `json:"bucket"`
	ResolvedQuery string `json:"resolved_query"`
	MapLink       string `json:"map_link"`

	// ParsedDate and ParsedTime carry the extracted calendar date
	// (ISO form) and clock time; the empty string marks an
	// unparseable label.
	ParsedDate string `json:"parsed_date"`
	ParsedTime string `json:"parsed_time"`

	date     time.Time
	hasDate  bool
	clock    Clock
	hasClock bool
}

// Day returns the parsed calendar date and whether one was found.
func (e Entry) Day() (time.Time, bool) { return e.date, e.hasDate }

// ClockTime returns the parsed time of day and whether one was found.
func (e Entry) ClockTime() (Clock, bool) { return e.clock, e.hasClock }

// BuildView derives and sorts entries for every record. Sorting is
// ascending by parsed date then parsed time; records with unparseable
// dates sort after all dated records, and within a date, records with
// unparseable times sort after all timed records. The sort is stable.
func BuildView(records []models.Record, tripYear int) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		e := Entry{Record: r}
		e.date, e.hasDate = ParseDate(r.DateLabel, tripYear)
		e.clock, e.hasClock = ParseTime(r.TimeLabel)
		if e.hasDate {
			e.ParsedDate = e.date.Format("2006-01-02")
		}
		if e.hasClock {
			e.ParsedTime = e.clock.String()
		}
		e.Bucket = BucketOf(e.clock, e.hasClock)
		e.ResolvedQuery = ResolveMapQuery(r.Content, r.Place, r.MapQuery)
		e.MapLink = SearchURL(e.ResolvedQuery)
		entries[i] = e
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.hasDate != b.hasDate {
			return a.hasDate
		}
		if a.hasDate && !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		if a.hasClock != b.hasClock {
			return a.hasClock
		}
		return a.hasClock && a.clock < b.clock
	})
	return entries
}

// Filter narrows a derived view. An empty date selection passes all dates;
// the keyword matches case-insensitively against content, place, category,
// and the map-query override. Both conditions compose with AND.
type Filter struct {
	Dates   []string
	Keyword string
}

// Apply returns the entries passing the filter, preserving order.
func (f Filter) Apply(entries []Entry) []Entry {
	dates := make(map[string]bool, len(f.Dates))
	for _, d := range f.Dates {
		dates[d] = true
	}
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if len(dates) > 0 && !dates[e.DateLabel] {
			continue
		}
		if keyword != "" && !matchesKeyword(e.Record, keyword) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesKeyword(r models.Record, keyword string) bool {
	for _, field := range []string{r.Content, r.Place, r.Category, r.MapQuery} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// DayGroup is one date's worth of entries for card-style display.
type DayGroup struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// GroupByDate splits sorted entries into per-date groups, preserving both
// group order and entry order within each group.
func GroupByDate(entries []Entry) []DayGroup {
	var groups []DayGroup
	for _, e := range entries {
		if n := len(groups); n > 0 && groups[n-1].Date == e.DateLabel {
			groups[n-1].Entries = append(groups[n-1].Entries, e)
			continue
		}
		groups = append(groups, DayGroup{Date: e.DateLabel, Entries: []Entry{e}})
	}
	return groups
}

// DateLabels returns the distinct date labels present, in sorted view
// order, for building a date filter.
func DateLabels(entries []Entry) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, e := range entries {
		if e.DateLabel == "" || seen[e.DateLabel] {
			continue
		}
		seen[e.DateLabel] = true
		labels = append(labels, e.DateLabel)
	}
	return labels
}
