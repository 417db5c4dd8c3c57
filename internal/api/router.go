package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// events, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, events http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Itinerary.
	r.Get("/schedule", h.GetSchedule)
	r.Put("/schedule", h.SaveSchedule)
	r.Get("/schedule/view", h.GetView)
	r.Get("/places", h.GetPlaces)

	// Candidate places.
	r.Get("/candidates", h.ListCandidates)
	r.Post("/candidates", h.AddCandidate)
	r.Delete("/candidates/{index}", h.DeleteCandidate)

	// Expenses.
	r.Get("/expenses", h.GetExpenses)
	r.Put("/expenses", h.SaveExpenses)
	r.Get("/expenses/summary", h.GetExpenseSummary)
	r.Get("/expenses/convert", h.Convert)

	// Interpreter.
	r.Post("/translate", h.Translate)
	r.Post("/transcribe", h.Transcribe)
	r.Post("/speak", h.Speak)
	r.Post("/ocr", h.OCR)

	// Weather.
	r.Get("/weather", h.GetWeather)

	// Photo gallery.
	r.Get("/photos", h.ListPhotos)
	r.Post("/photos", h.UploadPhoto)

	// SSE endpoint (protected by same auth middleware).
	if events != nil {
		r.Get("/events", events.ServeHTTP)
	}

	return r
}
