// Package itinerary derives the sortable, filterable schedule view from
// stored records: date/time extraction, time-of-day bucketing, and the
// map-query heuristic.
package itinerary

import (
	"fmt"
	"regexp"
	"time"
)

var (
	dateRe = regexp.MustCompile(`(\d{1,2})\s*/\s*(\d{1,2})`)
	timeRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// Clock is a time of day in minutes from midnight.
type Clock int

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ParseDate extracts the first M/D pattern from free text (spaces around
// the slash allowed) and combines it with the trip year. ok is false when
// no pattern is found or the month/day is not a valid calendar date.
func ParseDate(text string, year int) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month := atoi2(m[1])
	day := atoi2(m[2])
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values; reject anything that moved.
	if int(d.Month()) != month || d.Day() != day || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

// ParseTime extracts the first H:MM pattern from free text. ok is false
// when no pattern is found or the hour/minute is out of range.
func ParseTime(text string) (Clock, bool) {
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	hour := atoi2(m[1])
	minute := atoi2(m[2])
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return Clock(hour*60 + minute), true
}

// Bucket is a coarse time-of-day classification.
type Bucket string

const (
	BucketMorning   Bucket = "morning"
	BucketAfternoon Bucket = "afternoon"
	BucketEvening   Bucket = "evening"
	BucketUnknown   Bucket = "unknown"
)

// BucketOf classifies a parsed clock value. Boundaries are half-open,
// inclusive on the lower bound: [00:00,12:00) morning, [12:00,18:00)
// afternoon, [18:00,24:00) evening.
func BucketOf(c Clock, ok bool) Bucket {
	switch {
	case !ok:
		return BucketUnknown
	case c < 12*60:
		return BucketMorning
	case c < 18*60:
		return BucketAfternoon
	default:
		return BucketEvening
	}
}

// atoi2 converts a 1-2 digit numeric string already matched by a regexp.
func atoi2(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
