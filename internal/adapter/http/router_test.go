package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/adapter/http/handler"
	"github.com/iho/networth/internal/adapter/http/middleware"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

type fakeMarket struct {
	refreshes int
}

func (f *fakeMarket) Prices(ctx context.Context) domain.PriceSnapshot {
	return domain.PriceSnapshot{}
}

func (f *fakeMarket) Refresh(ctx context.Context) (*usecase.RefreshResult, error) {
	f.refreshes++
	return &usecase.RefreshResult{RunID: "run"}, nil
}

func newTestRouter(market *fakeMarket) http.Handler {
	return NewRouter(RouterConfig{
		PortfolioHandler: handler.NewPortfolioHandler(nil, nil),
		CashFlowHandler:  handler.NewCashFlowHandler(nil, nil),
		HistoryHandler:   handler.NewHistoryHandler(nil),
		MarketHandler:    handler.NewMarketHandler(market, zerolog.Nop()),
		IntegrityHandler: handler.NewIntegrityHandler(nil),
		ReportHandler:    handler.NewReportHandler(nil),
		HealthHandler:    handler.NewHealthHandler(),
		MetricsHandler:   promhttp.Handler(),
		RateLimiter:      middleware.NewRateLimiter(1, 1),
		Logger:           zerolog.Nop(),
	})
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(&fakeMarket{})

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouterRequestID(t *testing.T) {
	router := newTestRouter(&fakeMarket{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterPrices(t *testing.T) {
	router := newTestRouter(&fakeMarket{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "{}" {
		t.Fatalf("expected empty snapshot, got %s", rec.Body.String())
	}
}

func TestRouterRefreshIsRateLimited(t *testing.T) {
	market := &fakeMarket{}
	router := newTestRouter(market)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/prices/refresh", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("expected first refresh to pass, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second refresh to be throttled, got %d", code)
	}
	if market.refreshes != 1 {
		t.Fatalf("expected 1 refresh, got %d", market.refreshes)
	}
}

func TestRouterRefreshRequiresPost(t *testing.T) {
	router := newTestRouter(&fakeMarket{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/prices/refresh", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(&fakeMarket{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(&fakeMarket{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
