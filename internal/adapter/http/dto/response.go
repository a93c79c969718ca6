package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RowErrorResponse is a ledger row that could not be read.
type RowErrorResponse struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	AssetID string `json:"asset_id,omitempty"`
	Error   string `json:"error"`
}

// RowErrorsFromDomain converts rejected rows to responses.
func RowErrorsFromDomain(errs []domain.RowError) []RowErrorResponse {
	result := make([]RowErrorResponse, len(errs))
	for i, e := range errs {
		result[i] = RowErrorResponse{File: e.File, Line: e.Line, AssetID: e.AssetID, Error: e.Err.Error()}
	}
	return result
}

// PortfolioResponse is the valued portfolio.
type PortfolioResponse struct {
	*domain.Summary

	Failed   []string           `json:"failed"`
	Rejected []RowErrorResponse `json:"rejected"`
}

// PortfolioFromDomain combines a summary with the rebuild diagnostics.
func PortfolioFromDomain(s *domain.Summary, p *usecase.Portfolio) *PortfolioResponse {
	return &PortfolioResponse{
		Summary:  s,
		Failed:   nonNil(p.Failed),
		Rejected: RowErrorsFromDomain(p.Rejected),
	}
}

// HoldingResponse represents a reconstructed holding.
type HoldingResponse struct {
	AssetID string          `json:"asset_id"`
	Units   decimal.Decimal `json:"units"`
	AvgCost decimal.Decimal `json:"avg_cost"`
	Cost    decimal.Decimal `json:"cost"`
}

// HoldingsFromDomain converts holdings to responses ordered by asset id.
func HoldingsFromDomain(hs domain.Holdings) []HoldingResponse {
	sorted := hs.Sorted()
	result := make([]HoldingResponse, len(sorted))
	for i, h := range sorted {
		result[i] = HoldingResponse{AssetID: h.AssetID, Units: h.Units, AvgCost: h.AvgCost, Cost: h.Cost()}
	}
	return result
}

// FlowResponse is the monthly cash-flow chart data plus the forecast.
type FlowResponse struct {
	Income   []domain.MonthlyTotal `json:"income"`
	Expenses []domain.MonthlyTotal `json:"expenses"`
	Forecast domain.ForecastResult `json:"forecast"`
}

// FlowFromDomain converts a flow report to a response.
func FlowFromDomain(f *usecase.FlowReport) *FlowResponse {
	return &FlowResponse{
		Income:   nonNil(f.Income),
		Expenses: nonNil(f.Expenses),
		Forecast: f.Forecast,
	}
}

// CashRecordResponse represents an income or expense record.
type CashRecordResponse struct {
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Concept       string          `json:"concept"`
	Amount        decimal.Decimal `json:"amount"`
	Extraordinary bool            `json:"extraordinary"`
	Recurring     bool            `json:"recurring"`
}

// CashRecordsFromDomain converts records to responses.
func CashRecordsFromDomain(records []domain.CashRecord) []CashRecordResponse {
	result := make([]CashRecordResponse, len(records))
	for i, r := range records {
		result[i] = CashRecordResponse{
			Date:          r.Date.Format(time.DateOnly),
			Category:      r.Category,
			Concept:       r.Concept,
			Amount:        r.Amount,
			Extraordinary: r.Extraordinary,
			Recurring:     r.Recurring,
		}
	}
	return result
}

// FailureResponse is an asset whose price could not be fetched.
type FailureResponse struct {
	AssetID string `json:"asset_id"`
	Source  string `json:"source"`
	Error   string `json:"error"`
}

// RefreshResponse summarizes a price refresh run.
type RefreshResponse struct {
	RunID   string               `json:"run_id"`
	Message string               `json:"message"`
	Fetched int                  `json:"fetched"`
	Prices  domain.PriceSnapshot `json:"prices"`
	Failed  []FailureResponse    `json:"failed"`
}

// RefreshFromDomain converts a refresh result to a response.
func RefreshFromDomain(r *usecase.RefreshResult) *RefreshResponse {
	failed := make([]FailureResponse, len(r.Failed))
	for i, f := range r.Failed {
		failed[i] = FailureResponse{AssetID: f.AssetID, Source: f.Source, Error: f.Err.Error()}
	}
	return &RefreshResponse{
		RunID:   r.RunID,
		Message: r.Message,
		Fetched: r.Fetched,
		Prices:  r.Prices,
		Failed:  failed,
	}
}

// IntegrityResponse is the outcome of a ledger integrity check.
type IntegrityResponse struct {
	OK                    bool           `json:"ok"`
	Assets                int            `json:"assets"`
	Balances              int            `json:"balances"`
	Transactions          int            `json:"transactions"`
	UnknownInTransactions []string       `json:"unknown_in_transactions"`
	UnknownInBalances     []string       `json:"unknown_in_balances"`
	Warnings              []string       `json:"warnings"`
	Rejected              map[string]int `json:"rejected"`
	CheckedAt             time.Time      `json:"checked_at"`
}

// IntegrityFromDomain converts an integrity report to a response.
func IntegrityFromDomain(r *usecase.IntegrityReport) *IntegrityResponse {
	warnings := make([]string, len(r.Warnings))
	for i, w := range r.Warnings {
		warnings[i] = w.Error()
	}
	rejected := r.Rejected
	if rejected == nil {
		rejected = map[string]int{}
	}
	return &IntegrityResponse{
		OK:                    r.OK(),
		Assets:                r.Assets,
		Balances:              r.Balances,
		Transactions:          r.Transactions,
		UnknownInTransactions: nonNil(r.UnknownInTransactions),
		UnknownInBalances:     nonNil(r.UnknownInBalances),
		Warnings:              warnings,
		Rejected:              rejected,
		CheckedAt:             r.CheckedAt,
	}
}

// nonNil keeps empty lists as [] rather than null in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
