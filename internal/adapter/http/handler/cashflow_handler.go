package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// CashFlowService defines the behavior needed by CashFlowHandler.
type CashFlowService interface {
	Flow(ctx context.Context, summary *domain.Summary) (*usecase.FlowReport, error)
	ExpenseBreakdown(ctx context.Context) ([]domain.CategoryAmount, error)
	UpcomingExpenses(ctx context.Context) ([]domain.CashRecord, error)
	Records(ctx context.Context) (income, expenses []domain.CashRecord, err error)
}

// CashFlowHandler handles income, expense and forecast requests.
type CashFlowHandler struct {
	cashFlowUC  CashFlowService
	portfolioUC PortfolioService
}

// NewCashFlowHandler creates a new CashFlowHandler.
func NewCashFlowHandler(cashFlowUC CashFlowService, portfolioUC PortfolioService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowUC: cashFlowUC, portfolioUC: portfolioUC}
}

// flow computes the cash-flow report. Without an asset catalog the forecast
// still runs from zero portfolio values.
func (h *CashFlowHandler) flow(ctx context.Context) (*usecase.FlowReport, error) {
	summary, err := h.portfolioUC.Summary(ctx)
	if err != nil && !errors.Is(err, domain.ErrAssetCatalogMissing) {
		return nil, err
	}
	return h.cashFlowUC.Flow(ctx, summary)
}

// Flow returns the monthly income and expense series with the forecast.
func (h *CashFlowHandler) Flow(w http.ResponseWriter, r *http.Request) {
	report, err := h.flow(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute cash flow", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FlowFromDomain(report))
}

// Forecast returns only the forecast.
func (h *CashFlowHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	report, err := h.flow(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute forecast", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report.Forecast)
}

// Breakdown returns average monthly expenses per category.
func (h *CashFlowHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.cashFlowUC.ExpenseBreakdown(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute expense breakdown", err.Error())
		return
	}
	if breakdown == nil {
		breakdown = []domain.CategoryAmount{}
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// Upcoming returns expenses dated after today.
func (h *CashFlowHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	upcoming, err := h.cashFlowUC.UpcomingExpenses(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load upcoming expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashRecordsFromDomain(upcoming))
}

// Income returns every income record.
func (h *CashFlowHandler) Income(w http.ResponseWriter, r *http.Request) {
	income, _, err := h.cashFlowUC.Records(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load income", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashRecordsFromDomain(income))
}

// Expenses returns every expense record, recurring instances included.
func (h *CashFlowHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	_, expenses, err := h.cashFlowUC.Records(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashRecordsFromDomain(expenses))
}
