package api

import (
	"github.com/minsukim/tripdeck/internal/models"
)

// ScheduleResponse wraps the raw stored itinerary.
type ScheduleResponse struct {
	Records []models.Record `json:"records"`
}

// SaveScheduleRequest is the request body for replacing the itinerary.
type SaveScheduleRequest struct {
	Records []models.Record `json:"records"`
}

// CandidatesResponse wraps the candidate place list.
type CandidatesResponse struct {
	Candidates []models.Candidate `json:"candidates"`
}

// AddCandidateRequest is the request body for saving a candidate place.
type AddCandidateRequest struct {
	Place   string `json:"place"`
	MapLink string `json:"map_link"`
}

// ExpensesResponse wraps the stored expense list.
type ExpensesResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

// SaveExpensesRequest is the request body for replacing the expense list.
type SaveExpensesRequest struct {
	Expenses []models.Expense `json:"expenses"`
}

// ConvertResponse carries both sides of a fixed-rate currency conversion.
type ConvertResponse struct {
	JPY string `json:"jpy"`
	KRW string `json:"krw"`
}

// TranslateRequest is the request body for a translation.
// Auto marks translations fired automatically (not by an explicit button
// press); those are subject to the cooldown gate.
type TranslateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
	Auto   bool   `json:"auto,omitempty"`
}

// TranslateResponse carries a finished translation.
type TranslateResponse struct {
	Translation string `json:"translation"`
}

// TranscriptResponse carries a finished audio transcription.
type TranscriptResponse struct {
	Text string `json:"text"`
}

// SpeakRequest is the request body for speech synthesis.
type SpeakRequest struct {
	Text string `json:"text"`
}

// OCRResponse carries text extracted from an image and its translation
// into the home language.
type OCRResponse struct {
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// PhotosResponse lists stored photo filenames with their serving URLs.
type PhotosResponse struct {
	Photos []PhotoItem `json:"photos"`
}

// PhotoItem is one gallery photo.
type PhotoItem struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PhotoUploadResponse is returned after a successful photo upload.
type PhotoUploadResponse struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}
