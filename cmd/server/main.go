package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/networth/internal/adapter/http"
	"github.com/iho/networth/internal/adapter/http/handler"
	"github.com/iho/networth/internal/adapter/http/middleware"
	"github.com/iho/networth/internal/adapter/pricesource"
	"github.com/iho/networth/internal/adapter/repository/csvfile"
	redisRepo "github.com/iho/networth/internal/adapter/repository/redis"
	"github.com/iho/networth/internal/infrastructure/config"
	"github.com/iho/networth/internal/infrastructure/logger"
	"github.com/iho/networth/internal/infrastructure/metrics"
	"github.com/iho/networth/internal/infrastructure/redis"
	"github.com/iho/networth/internal/infrastructure/scheduler"
	"github.com/iho/networth/internal/report"
	"github.com/iho/networth/internal/usecase"
)

const limiterIdle = 10 * time.Minute

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, lg zerolog.Logger) error {
	store, err := csvfile.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}
	lg.Info().Str("dir", store.Dir()).Msg("opened ledger")

	checkers := []handler.Checker{store}
	snapshots, redisClient, err := newSnapshotStore(ctx, cfg, store.Dir())
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checkers = append(checkers, redis.NewChecker(redisClient))
		lg.Info().Msg("connected to redis")
	}

	m := metrics.New()
	clock := usecase.SystemClock{}

	// Initialize use cases
	portfolioUC := usecase.NewPortfolioUseCase(store, snapshots, m, lg)
	cashFlowUC := usecase.NewCashFlowUseCase(store, clock, m, lg)
	historyUC := usecase.NewHistoryUseCase(store, portfolioUC, clock, m, lg)
	integrityUC := usecase.NewIntegrityUseCase(store, clock, m, lg)
	marketUC := usecase.NewMarketUseCase(store, snapshots, newPriceSources(cfg, lg), usecase.MarketConfig{
		DefaultSource: cfg.PriceDefaultSource,
		ThrottleMin:   cfg.PriceThrottleMin,
		ThrottleMax:   cfg.PriceThrottleMax,
	}, clock, csvfile.NewULIDGenerator(), m, lg)

	if ir, err := integrityUC.Check(ctx); err != nil {
		lg.Warn().Err(err).Msg("ledger integrity check failed")
	} else if !ir.OK() {
		lg.Warn().Int("warnings", len(ir.Warnings)).Interface("rejected", ir.Rejected).Msg("ledger has integrity warnings")
	}

	// Scheduled refresh
	if cfg.RefreshCron != "" {
		sched := scheduler.New(ctx, lg)
		err := sched.Add("price-refresh", cfg.RefreshCron, func(ctx context.Context) error {
			_, err := marketUC.Refresh(ctx)
			return err
		})
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		lg.Info().Str("spec", cfg.RefreshCron).Msg("scheduled price refresh")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go cleanupLimiters(ctx, limiter)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PortfolioHandler: handler.NewPortfolioHandler(portfolioUC, cashFlowUC),
		CashFlowHandler:  handler.NewCashFlowHandler(cashFlowUC, portfolioUC),
		HistoryHandler:   handler.NewHistoryHandler(historyUC),
		MarketHandler:    handler.NewMarketHandler(marketUC, lg),
		IntegrityHandler: handler.NewIntegrityHandler(integrityUC),
		ReportHandler:    handler.NewReportHandler(report.NewCollector(portfolioUC, cashFlowUC, clock, cfg.Currency)),
		HealthHandler:    handler.NewHealthHandler(checkers...),
		MetricsHandler:   promhttp.Handler(),
		RateLimiter:      limiter,
		Logger:           lg,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	lg.Info().Msg("server stopped")
	return nil
}

// newSnapshotStore picks the price snapshot backend. The redis client is
// returned so the caller can close it and probe it for readiness.
func newSnapshotStore(ctx context.Context, cfg *config.Config, dir string) (usecase.PriceSnapshotStore, *goredis.Client, error) {
	if cfg.PriceCache != config.PriceCacheRedis {
		return csvfile.NewSnapshotStore(dir), nil, nil
	}
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return redisRepo.NewSnapshotStore(client, cfg.PriceTTL), client, nil
}

func newPriceSources(cfg *config.Config, lg zerolog.Logger) []usecase.PriceSource {
	client := pricesource.NewClient(nil, pricesource.ClientConfig{
		Timeout:    cfg.PriceTimeout,
		UserAgent:  cfg.PriceUserAgent,
		MaxRetries: cfg.PriceMaxRetries,
	}, lg)
	return []usecase.PriceSource{
		pricesource.NewQueFondos(client, cfg.QueFondosURL),
		pricesource.NewYahoo(client, cfg.YahooURL),
	}
}

func cleanupLimiters(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.CleanupLimiters(limiterIdle)
		}
	}
}
