package itinerary

import (
	"net/url"
	"regexp"
	"strings"
)

// noteKeywords are logistics terms that mark free text as an annotation
// rather than a place name. Matching is a plain substring check on the
// space-stripped input, so a compound place name embedding one of these
// terms is also treated as a note.
var noteKeywords = []string{
	"체험", "식사", "이동", "탑승", "복귀", "휴식", "구경", "관람", "산책", "쇼핑",
	"대기", "정리", "짐", "이용", "체크인", "체크아웃", "자유", "환승", "셔틀",
	"시간", "구매",
}

var (
	parenRe = regexp.MustCompile(`\(([^()]*)\)`)
	multiWS = regexp.MustCompile(`\s{2,}`)
)

// looksLikeNote reports whether text reads as a logistical note.
func looksLikeNote(text string) bool {
	compact := strings.ReplaceAll(text, " ", "")
	for _, kw := range noteKeywords {
		if strings.Contains(compact, kw) {
			return true
		}
	}
	return false
}

// stripNoteParens removes top-level parenthetical groups whose inner text
// is a note, then collapses runs of whitespace and trims stray spaces and
// hyphens.
func stripNoteParens(text string) string {
	if text == "" {
		return ""
	}
	cleaned := parenRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := m[1 : len(m)-1]
		if looksLikeNote(inner) {
			return ""
		}
		return m
	})
	cleaned = multiWS.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(strings.Trim(cleaned, " -"))
}

// ResolveMapQuery picks the best map search string for a record.
// The explicit override always wins. Otherwise the note-stripped place is
// preferred, then the note-stripped content; when both read as notes,
// whichever is non-empty is still returned (place first) so the result is
// never silently empty while any text exists.
func ResolveMapQuery(content, place, override string) string {
	if q := strings.TrimSpace(override); q != "" {
		return q
	}
	placeClean := stripNoteParens(place)
	contentClean := stripNoteParens(content)
	if placeClean != "" && !looksLikeNote(placeClean) {
		return placeClean
	}
	if contentClean != "" && !looksLikeNote(contentClean) {
		return contentClean
	}
	if placeClean != "" {
		return placeClean
	}
	return contentClean
}

// SearchURL builds a Google Maps search link for a resolved query, or ""
// when the query is empty.
func SearchURL(query string) string {
	if query == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

// EmbedURL builds an embeddable map view URL. It requires an API key;
// without one the inline map is unavailable and "" is returned.
func EmbedURL(apiKey, query string) string {
	if apiKey == "" || query == "" {
		return ""
	}
	return "https://www.google.com/maps/embed/v1/place?key=" + url.QueryEscape(apiKey) +
		"&q=" + url.QueryEscape(query)
}
