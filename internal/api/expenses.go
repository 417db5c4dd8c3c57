package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/minsukim/tripdeck/internal/expense"
	"github.com/minsukim/tripdeck/internal/models"
)

// GetExpenses handles GET /api/expenses.
func (h *Handler) GetExpenses(w http.ResponseWriter, _ *http.Request) {
	list := h.svc.Expenses()
	if list == nil {
		list = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, ExpensesResponse{Expenses: list})
}

// SaveExpenses handles PUT /api/expenses. The stored list is replaced in
// full.
func (h *Handler) SaveExpenses(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req SaveExpensesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.SaveExpenses(req.Expenses); err != nil {
		slog.Error("save expenses failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ExpensesResponse{Expenses: req.Expenses})
}

// GetExpenseSummary handles GET /api/expenses/summary.
func (h *Handler) GetExpenseSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ExpenseSummary())
}

// Convert handles GET /api/expenses/convert with exactly one of the
// "jpy" or "krw" query parameters.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jpyParam, krwParam := q.Get("jpy"), q.Get("krw")
	switch {
	case jpyParam != "" && krwParam == "":
		jpy, err := decimal.NewFromString(jpyParam)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("jpy must be a number"))
			return
		}
		writeJSON(w, http.StatusOK, ConvertResponse{
			JPY: jpy.String(),
			KRW: expense.JPYToKRW(jpy).String(),
		})
	case krwParam != "" && jpyParam == "":
		krw, err := decimal.NewFromString(krwParam)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("krw must be a number"))
			return
		}
		writeJSON(w, http.StatusOK, ConvertResponse{
			JPY: expense.KRWToJPY(krw).String(),
			KRW: krw.String(),
		})
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("provide exactly one of jpy or krw"))
	}
}
