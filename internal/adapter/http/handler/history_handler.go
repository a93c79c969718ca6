package handler

import (
	"context"
	"net/http"

	"github.com/iho/networth/internal/domain"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	InvestedCapital(ctx context.Context) ([]domain.CapitalPoint, error)
	ValueHistory(ctx context.Context) ([]domain.ValuePoint, error)
}

// HistoryHandler handles historical series requests.
type HistoryHandler struct {
	historyUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyUC HistoryService) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// Values returns the market value history. ?limit=N keeps the last N days.
func (h *HistoryHandler) Values(w http.ResponseWriter, r *http.Request) {
	points, err := h.historyUC.ValueHistory(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load value history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lastN(points, parseIntQuery(r, "limit", 0)))
}

// Invested returns the invested capital series.
func (h *HistoryHandler) Invested(w http.ResponseWriter, r *http.Request) {
	series, err := h.historyUC.InvestedCapital(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute invested capital", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, lastN(series, parseIntQuery(r, "limit", 0)))
}

// lastN returns the last n elements, all of them when n <= 0.
func lastN[T any](s []T, n int) []T {
	if s == nil {
		return []T{}
	}
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
