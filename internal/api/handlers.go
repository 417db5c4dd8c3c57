package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/minsukim/tripdeck/internal/apperr"
	"github.com/minsukim/tripdeck/internal/gallery"
	"github.com/minsukim/tripdeck/internal/interpreter"
	"github.com/minsukim/tripdeck/internal/itinerary"
	"github.com/minsukim/tripdeck/internal/models"
	"github.com/minsukim/tripdeck/internal/planner"
	"github.com/minsukim/tripdeck/internal/sse"
	"github.com/minsukim/tripdeck/internal/weather"
)

// Handler holds API route handlers.
type Handler struct {
	svc      *planner.Service
	interp   *interpreter.Client
	cooldown *interpreter.Cooldown
	forecast *weather.Client
	photos   *gallery.Store
	broker   *sse.Broker
}

// NewHandler creates a new Handler. broker may be nil in tests.
func NewHandler(svc *planner.Service, interp *interpreter.Client, cooldown *interpreter.Cooldown,
	forecast *weather.Client, photos *gallery.Store, broker *sse.Broker) *Handler {
	return &Handler{
		svc:      svc,
		interp:   interp,
		cooldown: cooldown,
		forecast: forecast,
		photos:   photos,
		broker:   broker,
	}
}

// GetSchedule handles GET /api/schedule.
func (h *Handler) GetSchedule(w http.ResponseWriter, _ *http.Request) {
	records := h.svc.Records()
	if records == nil {
		records = []models.Record{}
	}
	writeJSON(w, http.StatusOK, ScheduleResponse{Records: records})
}

// SaveSchedule handles PUT /api/schedule. The stored sequence is replaced
// in full; the last writer wins.
func (h *Handler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req SaveScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.SaveSchedule(req.Records); err != nil {
		slog.Error("save schedule failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ScheduleResponse{Records: req.Records})
}

// GetView handles GET /api/schedule/view with optional repeated "dates"
// parameters and a "keyword" parameter.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := h.svc.View(itinerary.Filter{
		Dates:   q["dates"],
		Keyword: q.Get("keyword"),
	})
	writeJSON(w, http.StatusOK, view)
}

// GetPlaces handles GET /api/places.
func (h *Handler) GetPlaces(w http.ResponseWriter, _ *http.Request) {
	places := h.svc.Places()
	if places == nil {
		places = []planner.Place{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"places": places})
}

// ListCandidates handles GET /api/candidates.
func (h *Handler) ListCandidates(w http.ResponseWriter, _ *http.Request) {
	candidates := h.svc.Candidates()
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	writeJSON(w, http.StatusOK, CandidatesResponse{Candidates: candidates})
}

// AddCandidate handles POST /api/candidates.
func (h *Handler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req AddCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Place == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("place is required"))
		return
	}
	if err := h.svc.AddCandidate(models.Candidate{Place: req.Place, MapLink: req.MapLink}); err != nil {
		slog.Error("add candidate failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, CandidatesResponse{Candidates: h.svc.Candidates()})
}

// DeleteCandidate handles DELETE /api/candidates/{index}. Candidates have
// no identity beyond their position.
func (h *Handler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be a number"))
		return
	}
	if err := h.svc.DeleteCandidate(index); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("delete candidate failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, CandidatesResponse{Candidates: h.svc.Candidates()})
}
