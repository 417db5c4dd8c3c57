package api

import (
	"log/slog"
	"net/http"
)

// GetWeather handles GET /api/weather: the 7-day forecast for the trip
// destination.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	days, err := h.forecast.Forecast(r.Context())
	if err != nil {
		slog.Error("weather fetch failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("weather service unavailable"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}
