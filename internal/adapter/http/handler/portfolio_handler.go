package handler

import (
	"context"
	"net/http"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// PortfolioService defines the behavior needed by PortfolioHandler.
type PortfolioService interface {
	Portfolio(ctx context.Context) (*usecase.Portfolio, error)
	Summary(ctx context.Context) (*domain.Summary, error)
}

// PortfolioHandler handles portfolio requests.
type PortfolioHandler struct {
	portfolioUC PortfolioService
	cashFlowUC  CashFlowService
}

// NewPortfolioHandler creates a new PortfolioHandler. The cash-flow service
// fills in runway and savings rate.
func NewPortfolioHandler(portfolioUC PortfolioService, cashFlowUC CashFlowService) *PortfolioHandler {
	return &PortfolioHandler{portfolioUC: portfolioUC, cashFlowUC: cashFlowUC}
}

// Get returns the valued portfolio.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioUC.Summary(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to value portfolio", err.Error())
		return
	}

	if _, err := h.cashFlowUC.Flow(r.Context(), summary); err != nil {
		writeError(w, mapDomainError(err), "failed to compute cash flow", err.Error())
		return
	}

	p, err := h.portfolioUC.Portfolio(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load portfolio", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PortfolioFromDomain(summary, p))
}

// Holdings returns the reconstructed holdings.
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolioUC.Portfolio(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load holdings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HoldingsFromDomain(p.Holdings))
}
