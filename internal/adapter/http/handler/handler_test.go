package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/report"
	"github.com/iho/networth/internal/usecase"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return resp
}

func TestPortfolioHandlerGet(t *testing.T) {
	var flowSummary *domain.Summary
	portfolio := &stubPortfolioService{
		SummaryFn: func(ctx context.Context) (*domain.Summary, error) {
			return &domain.Summary{NetWorth: decimal.NewFromInt(2160)}, nil
		},
		PortfolioFn: func(ctx context.Context) (*usecase.Portfolio, error) {
			return &usecase.Portfolio{Failed: []string{"B"}}, nil
		},
	}
	flow := &stubCashFlowService{
		FlowFn: func(ctx context.Context, summary *domain.Summary) (*usecase.FlowReport, error) {
			flowSummary = summary
			summary.RunwayMonths = decimal.NewFromInt(4)
			return &usecase.FlowReport{}, nil
		},
	}
	h := NewPortfolioHandler(portfolio, flow)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/portfolio", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if flowSummary == nil {
		t.Fatalf("expected the summary to be passed to the cash-flow service")
	}
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["net_worth"] != "2160" || resp["runway_months"] != "4" {
		t.Fatalf("unexpected body: %v", resp)
	}
	if failed, _ := resp["failed"].([]any); len(failed) != 1 {
		t.Fatalf("expected one failed asset, got %v", resp["failed"])
	}
}

func TestPortfolioHandlerMissingCatalog(t *testing.T) {
	portfolio := &stubPortfolioService{
		SummaryFn: func(ctx context.Context) (*domain.Summary, error) {
			return nil, fmt.Errorf("loading assets: %w", domain.ErrAssetCatalogMissing)
		},
	}
	h := NewPortfolioHandler(portfolio, &stubCashFlowService{})

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/portfolio", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "failed to value portfolio" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestPortfolioHandlerHoldings(t *testing.T) {
	portfolio := &stubPortfolioService{
		PortfolioFn: func(ctx context.Context) (*usecase.Portfolio, error) {
			return &usecase.Portfolio{Holdings: domain.Holdings{
				"A": {AssetID: "A", Units: decimal.NewFromInt(15), AvgCost: decimal.NewFromInt(50)},
			}}, nil
		},
	}
	h := NewPortfolioHandler(portfolio, &stubCashFlowService{})

	rec := httptest.NewRecorder()
	h.Holdings(rec, httptest.NewRequest(http.MethodGet, "/api/v1/portfolio/holdings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []dto.HoldingResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].AssetID != "A" {
		t.Fatalf("unexpected holdings: %+v", resp)
	}
}

func TestCashFlowHandlerFlowWithoutCatalog(t *testing.T) {
	portfolio := &stubPortfolioService{
		SummaryFn: func(ctx context.Context) (*domain.Summary, error) {
			return nil, domain.ErrAssetCatalogMissing
		},
	}
	called := false
	flow := &stubCashFlowService{
		FlowFn: func(ctx context.Context, summary *domain.Summary) (*usecase.FlowReport, error) {
			called = true
			if summary != nil {
				t.Fatalf("expected nil summary without a catalog")
			}
			return &usecase.FlowReport{
				Forecast: domain.ForecastResult{RunwayMonths: domain.RunwaySentinel},
			}, nil
		},
	}
	h := NewCashFlowHandler(flow, portfolio)

	rec := httptest.NewRecorder()
	h.Flow(rec, httptest.NewRequest(http.MethodGet, "/api/v1/flow", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Fatalf("expected cash-flow service to be called")
	}
	if !strings.Contains(rec.Body.String(), `"income":[]`) {
		t.Fatalf("expected empty income series, got %s", rec.Body.String())
	}
}

func TestCashFlowHandlerForecastPropagatesErrors(t *testing.T) {
	portfolio := &stubPortfolioService{
		SummaryFn: func(ctx context.Context) (*domain.Summary, error) {
			return nil, errors.New("disk failure")
		},
	}
	h := NewCashFlowHandler(&stubCashFlowService{}, portfolio)

	rec := httptest.NewRecorder()
	h.Forecast(rec, httptest.NewRequest(http.MethodGet, "/api/v1/forecast", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCashFlowHandlerBreakdownEmpty(t *testing.T) {
	flow := &stubCashFlowService{
		BreakdownFn: func(ctx context.Context) ([]domain.CategoryAmount, error) { return nil, nil },
	}
	h := NewCashFlowHandler(flow, &stubPortfolioService{})

	rec := httptest.NewRecorder()
	h.Breakdown(rec, httptest.NewRequest(http.MethodGet, "/api/v1/expenses/breakdown", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestCashFlowHandlerUpcoming(t *testing.T) {
	flow := &stubCashFlowService{
		UpcomingFn: func(ctx context.Context) ([]domain.CashRecord, error) {
			return []domain.CashRecord{{
				Date: time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), Category: "car", Concept: "repair",
				Amount: decimal.NewFromInt(1200), Extraordinary: true,
			}}, nil
		},
	}
	h := NewCashFlowHandler(flow, &stubPortfolioService{})

	rec := httptest.NewRecorder()
	h.Upcoming(rec, httptest.NewRequest(http.MethodGet, "/api/v1/expenses/upcoming", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []dto.CashRecordResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Concept != "repair" {
		t.Fatalf("unexpected upcoming expenses: %+v", resp)
	}
}

func TestCashFlowHandlerLedger(t *testing.T) {
	flow := &stubCashFlowService{
		RecordsFn: func(ctx context.Context) ([]domain.CashRecord, []domain.CashRecord, error) {
			income := []domain.CashRecord{{
				Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Category: "salary", Amount: decimal.NewFromInt(3000),
			}}
			expenses := []domain.CashRecord{
				{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Category: "rent", Amount: decimal.NewFromInt(1000), Recurring: true},
				{Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Category: "groceries", Amount: decimal.NewFromInt(400)},
			}
			return income, expenses, nil
		},
	}
	h := NewCashFlowHandler(flow, &stubPortfolioService{})

	rec := httptest.NewRecorder()
	h.Income(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/income", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var income []dto.CashRecordResponse
	if err := json.NewDecoder(rec.Body).Decode(&income); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(income) != 1 || income[0].Category != "salary" {
		t.Fatalf("unexpected income: %+v", income)
	}

	rec = httptest.NewRecorder()
	h.Expenses(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/expenses", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var expenses []dto.CashRecordResponse
	if err := json.NewDecoder(rec.Body).Decode(&expenses); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(expenses) != 2 || !expenses[0].Recurring || expenses[0].Date != "2024-06-01" {
		t.Fatalf("unexpected expenses: %+v", expenses)
	}
}

func TestCashFlowHandlerLedgerError(t *testing.T) {
	flow := &stubCashFlowService{
		RecordsFn: func(ctx context.Context) ([]domain.CashRecord, []domain.CashRecord, error) {
			return nil, nil, errors.New("disk gone")
		},
	}
	h := NewCashFlowHandler(flow, &stubPortfolioService{})

	rec := httptest.NewRecorder()
	h.Expenses(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/expenses", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHistoryHandlerLimit(t *testing.T) {
	history := &stubHistoryService{
		ValuesFn: func(ctx context.Context) ([]domain.ValuePoint, error) {
			points := make([]domain.ValuePoint, 5)
			for i := range points {
				points[i].Value = decimal.NewFromInt(int64(i))
			}
			return points, nil
		},
	}
	h := NewHistoryHandler(history)

	rec := httptest.NewRecorder()
	h.Values(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []domain.ValuePoint
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 || !resp[1].Value.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("expected the last 2 points, got %+v", resp)
	}
}

func TestHistoryHandlerInvestedEmpty(t *testing.T) {
	history := &stubHistoryService{
		InvestedFn: func(ctx context.Context) ([]domain.CapitalPoint, error) { return nil, nil },
	}
	h := NewHistoryHandler(history)

	rec := httptest.NewRecorder()
	h.Invested(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invested?limit=abc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestMarketHandlerRefreshPartialFailure(t *testing.T) {
	market := &stubMarketService{
		RefreshFn: func(ctx context.Context) (*usecase.RefreshResult, error) {
			return &usecase.RefreshResult{
				RunID:   "01J0RUN",
				Fetched: 1,
				Failed: []usecase.FetchFailure{{
					AssetID: "B", Source: usecase.DefaultSourceName, Err: domain.ErrUpstreamUnavailable,
				}},
			}, nil
		},
	}
	h := NewMarketHandler(market, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/prices/refresh", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp dto.RefreshResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RunID != "01J0RUN" || len(resp.Failed) != 1 || resp.Failed[0].AssetID != "B" {
		t.Fatalf("unexpected refresh response: %+v", resp)
	}
}

func TestMarketHandlerRefreshError(t *testing.T) {
	market := &stubMarketService{
		RefreshFn: func(ctx context.Context) (*usecase.RefreshResult, error) {
			return nil, domain.ErrAssetCatalogMissing
		},
	}
	h := NewMarketHandler(market, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/prices/refresh", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestMarketHandlerPrices(t *testing.T) {
	market := &stubMarketService{
		PricesFn: func(ctx context.Context) domain.PriceSnapshot {
			return domain.PriceSnapshot{"A": decimal.NewFromInt(70)}
		},
	}
	h := NewMarketHandler(market, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Prices(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"A":"70"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestIntegrityHandlerCheck(t *testing.T) {
	integrity := &stubIntegrityService{
		CheckFn: func(ctx context.Context) (*usecase.IntegrityReport, error) {
			return &usecase.IntegrityReport{UnknownInTransactions: []string{"GHOST"}}, nil
		},
	}
	h := NewIntegrityHandler(integrity)

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/api/v1/integrity", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GHOST") {
		t.Fatalf("expected unknown asset in body, got %s", rec.Body.String())
	}
}

func TestReportHandlerFormats(t *testing.T) {
	reports := &stubReportService{
		CollectFn: func(ctx context.Context) (*report.Data, error) {
			return &report.Data{
				GeneratedAt: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
				Currency:    "EUR",
				Summary:     &domain.Summary{NetWorth: decimal.NewFromInt(2160)},
			}, nil
		},
	}
	h := NewReportHandler(reports)

	rec := httptest.NewRecorder()
	h.HTML(rec, httptest.NewRequest(http.MethodGet, "/report", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected html, got %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "<table>") {
		t.Fatalf("expected rendered table, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.HTML(rec, httptest.NewRequest(http.MethodGet, "/report?format=md", nil))
	if !strings.HasPrefix(rec.Body.String(), "# Net worth report") {
		t.Fatalf("expected markdown, got %s", rec.Body.String())
	}
}

func TestHealthHandlerReadiness(t *testing.T) {
	h := NewHealthHandler(stubChecker{name: "ledger"}, stubChecker{name: "redis", err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "redis unhealthy" {
		t.Fatalf("unexpected error body: %+v", resp)
	}

	h = NewHealthHandler(stubChecker{name: "ledger"})
	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", domain.ErrAssetCatalogMissing), http.StatusServiceUnavailable},
		{domain.ErrUpstreamUnavailable, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mapDomainError(tt.err); got != tt.want {
			t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
