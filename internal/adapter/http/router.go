package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/adapter/http/handler"
	"github.com/iho/networth/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PortfolioHandler *handler.PortfolioHandler
	CashFlowHandler  *handler.CashFlowHandler
	HistoryHandler   *handler.HistoryHandler
	MarketHandler    *handler.MarketHandler
	IntegrityHandler *handler.IntegrityHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	MetricsHandler   http.Handler
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics)

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Get("/report", cfg.ReportHandler.HTML)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/portfolio", cfg.PortfolioHandler.Get)
		r.Get("/portfolio/holdings", cfg.PortfolioHandler.Holdings)

		r.Get("/flow", cfg.CashFlowHandler.Flow)
		r.Get("/forecast", cfg.CashFlowHandler.Forecast)
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/breakdown", cfg.CashFlowHandler.Breakdown)
			r.Get("/upcoming", cfg.CashFlowHandler.Upcoming)
		})
		r.Route("/ledger", func(r chi.Router) {
			r.Get("/income", cfg.CashFlowHandler.Income)
			r.Get("/expenses", cfg.CashFlowHandler.Expenses)
		})

		r.Get("/history", cfg.HistoryHandler.Values)
		r.Get("/invested", cfg.HistoryHandler.Invested)

		r.Get("/integrity", cfg.IntegrityHandler.Check)

		r.Route("/prices", func(r chi.Router) {
			r.Get("/", cfg.MarketHandler.Prices)
			refresh := http.HandlerFunc(cfg.MarketHandler.Refresh)
			if cfg.RateLimiter != nil {
				r.Method(http.MethodPost, "/refresh", cfg.RateLimiter.Limit(refresh))
			} else {
				r.Method(http.MethodPost, "/refresh", refresh)
			}
		})
	})

	return r
}
