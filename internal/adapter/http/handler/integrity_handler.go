package handler

import (
	"context"
	"net/http"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/usecase"
)

// IntegrityService defines the behavior needed by IntegrityHandler.
type IntegrityService interface {
	Check(ctx context.Context) (*usecase.IntegrityReport, error)
}

// IntegrityHandler handles ledger integrity requests.
type IntegrityHandler struct {
	integrityUC IntegrityService
}

// NewIntegrityHandler creates a new IntegrityHandler.
func NewIntegrityHandler(integrityUC IntegrityService) *IntegrityHandler {
	return &IntegrityHandler{integrityUC: integrityUC}
}

// Check runs the integrity check.
func (h *IntegrityHandler) Check(w http.ResponseWriter, r *http.Request) {
	report, err := h.integrityUC.Check(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.IntegrityFromDomain(report))
}
