package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/domain"
)

var errNoLookupCode = errors.New("asset has no lookup code")

// MarketConfig configures price refreshes.
type MarketConfig struct {
	DefaultSource string
	ThrottleMin   time.Duration
	ThrottleMax   time.Duration
}

// FetchFailure is an asset whose price could not be fetched.
type FetchFailure struct {
	AssetID string
	Source  string
	Err     error
}

// RefreshResult summarizes one refresh run.
type RefreshResult struct {
	RunID   string
	Prices  domain.PriceSnapshot
	Failed  []FetchFailure
	Fetched int
	Message string
}

// SourceCheck is the outcome of probing one asset's price source.
type SourceCheck struct {
	AssetID    string
	Name       string
	Source     string
	LookupCode string
	Price      decimal.Decimal
	Err        error
}

// OK reports whether the source returned a price.
func (c SourceCheck) OK() bool { return c.Err == nil }

// MarketUseCase refreshes and serves market prices.
type MarketUseCase struct {
	store     LedgerStore
	snapshots PriceSnapshotStore
	sources   map[string]PriceSource
	cfg       MarketConfig
	clock     Clock
	idGen     IDGenerator
	load      loader

	// serializes refreshes triggered by HTTP and the scheduler
	mu sync.Mutex
}

// NewMarketUseCase creates a new MarketUseCase. Sources are registered by
// their Name.
func NewMarketUseCase(
	store LedgerStore,
	snapshots PriceSnapshotStore,
	sources []PriceSource,
	cfg MarketConfig,
	clock Clock,
	idGen IDGenerator,
	recorder Recorder,
	logger zerolog.Logger,
) *MarketUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = DefaultSourceName
	}
	if cfg.ThrottleMax < cfg.ThrottleMin {
		cfg.ThrottleMax = cfg.ThrottleMin
	}

	byName := make(map[string]PriceSource, len(sources))
	for _, s := range sources {
		byName[s.Name()] = s
	}

	return &MarketUseCase{
		store:     store,
		snapshots: snapshots,
		sources:   byName,
		cfg:       cfg,
		clock:     clock,
		idGen:     idGen,
		load:      loader{logger: logger, recorder: recorder},
	}
}

// Prices returns the latest snapshot, empty when none was saved yet.
func (uc *MarketUseCase) Prices(ctx context.Context) domain.PriceSnapshot {
	return uc.load.snapshot(ctx, uc.snapshots)
}

// Refresh fetches a price for every catalog asset, saves the snapshot and
// replaces today's rows in the price history. Assets whose fetch failed are
// priced at zero and listed in the result.
func (uc *MarketUseCase) Refresh(ctx context.Context) (*RefreshResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	began := time.Now()
	result := &RefreshResult{
		RunID:  uc.idGen.Generate(),
		Prices: domain.PriceSnapshot{},
	}
	logger := uc.load.logger.With().Str("run_id", result.RunID).Logger()

	catalog, err := uc.load.catalog(ctx, uc.store)
	if err != nil {
		return nil, err
	}

	for _, asset := range catalog.All() {
		if asset.IsCashLike() {
			result.Prices[asset.ID] = decimal.NewFromInt(1)
			uc.load.recorder.PriceFetched(FetchStatusCash, FetchStatusCash)
			continue
		}

		source, name := uc.sourceFor(asset)
		price, err := uc.fetch(ctx, source, name, asset)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			logger.Warn().Str("asset_id", asset.ID).Str("source", name).Err(err).Msg("price fetch failed")
			uc.load.recorder.PriceFetched(name, FetchStatusFailed)
			result.Failed = append(result.Failed, FetchFailure{AssetID: asset.ID, Source: name, Err: err})
			result.Prices[asset.ID] = decimal.Zero
		} else {
			uc.load.recorder.PriceFetched(name, FetchStatusOK)
			result.Prices[asset.ID] = price
			result.Fetched++
		}

		if err := uc.throttle(ctx, source, asset); err != nil {
			return nil, err
		}
	}

	if err := uc.snapshots.Save(ctx, result.Prices); err != nil {
		return nil, fmt.Errorf("failed to save price snapshot: %w", err)
	}
	today := uc.clock.Now()
	if err := uc.store.PriceHistory().ReplaceDay(ctx, today, result.Prices.PointsForDay(today)); err != nil {
		return nil, fmt.Errorf("failed to save price history: %w", err)
	}

	elapsed := time.Since(began)
	uc.load.recorder.RefreshCompleted(elapsed)
	result.Message = fmt.Sprintf("updated %d prices, %d failed", len(result.Prices), len(result.Failed))
	logger.Info().
		Int("prices", len(result.Prices)).
		Int("fetched", result.Fetched).
		Int("failed", len(result.Failed)).
		Dur("elapsed", elapsed).
		Msg("market data refreshed")

	return result, nil
}

// CheckSources probes the price source of every non-cash asset without
// saving anything.
func (uc *MarketUseCase) CheckSources(ctx context.Context) ([]SourceCheck, error) {
	catalog, err := uc.load.catalog(ctx, uc.store)
	if err != nil {
		return nil, err
	}

	var checks []SourceCheck
	for _, asset := range catalog.All() {
		if asset.IsCashLike() {
			continue
		}
		source, name := uc.sourceFor(asset)
		price, err := uc.fetch(ctx, source, name, asset)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		checks = append(checks, SourceCheck{
			AssetID:    asset.ID,
			Name:       asset.Name,
			Source:     name,
			LookupCode: asset.LookupCode,
			Price:      price,
			Err:        err,
		})
		if err := uc.throttle(ctx, source, asset); err != nil {
			return nil, err
		}
	}
	return checks, nil
}

// sourceFor resolves the source named by the asset, falling back to the
// default source. The returned source is nil when neither is registered.
func (uc *MarketUseCase) sourceFor(asset domain.Asset) (PriceSource, string) {
	name := asset.Source
	if _, ok := uc.sources[name]; !ok {
		name = uc.cfg.DefaultSource
	}
	return uc.sources[name], name
}

// fetch wraps every failure, "no price" included, in ErrUpstreamUnavailable.
func (uc *MarketUseCase) fetch(ctx context.Context, source PriceSource, name string, asset domain.Asset) (decimal.Decimal, error) {
	if source == nil {
		return decimal.Zero, fmt.Errorf("%w: source %q is not registered", domain.ErrUpstreamUnavailable, name)
	}
	if asset.LookupCode == "" {
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, errNoLookupCode)
	}

	price, ok, err := source.FetchPrice(ctx, asset.LookupCode)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %s: %w", domain.ErrUpstreamUnavailable, name, asset.LookupCode, err)
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s has no price for %s", domain.ErrUpstreamUnavailable, name, asset.LookupCode)
	}
	return price, nil
}

// throttle sleeps a random duration in [ThrottleMin, ThrottleMax] after a
// network fetch.
func (uc *MarketUseCase) throttle(ctx context.Context, source PriceSource, asset domain.Asset) error {
	if source == nil || asset.LookupCode == "" {
		return nil
	}
	d := uc.cfg.ThrottleMin
	if spread := uc.cfg.ThrottleMax - uc.cfg.ThrottleMin; spread > 0 {
		d += time.Duration(rand.Int63n(int64(spread) + 1))
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
