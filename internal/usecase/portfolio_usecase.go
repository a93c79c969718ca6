package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/domain"
)

// Portfolio is the rebuilt holdings view.
type Portfolio struct {
	Holdings    domain.Holdings
	Failed      []string // assets left out because a balance or transaction row was rejected
	Rejected    []domain.RowError
	Fingerprint string
}

// PortfolioUseCase rebuilds holdings from the ledger and values them.
type PortfolioUseCase struct {
	store  LedgerStore
	prices PriceSnapshotStore
	load   loader

	mu   sync.Mutex
	view *Portfolio
}

// NewPortfolioUseCase creates a new PortfolioUseCase.
func NewPortfolioUseCase(store LedgerStore, prices PriceSnapshotStore, recorder Recorder, logger zerolog.Logger) *PortfolioUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &PortfolioUseCase{
		store:  store,
		prices: prices,
		load:   loader{logger: logger, recorder: recorder},
	}
}

// Portfolio returns the cached view, rebuilding it when the ledger changed.
func (uc *PortfolioUseCase) Portfolio(ctx context.Context) (*Portfolio, error) {
	fingerprint, err := uc.store.Fingerprint(ctx)
	if err != nil {
		uc.load.logger.Warn().Err(err).Msg("ledger fingerprint unavailable, rebuilding")
		return uc.Rebuild(ctx)
	}

	uc.mu.Lock()
	view := uc.view
	uc.mu.Unlock()
	if view != nil && view.Fingerprint == fingerprint {
		return copyPortfolio(view), nil
	}
	return uc.Rebuild(ctx)
}

// Holdings returns a copy of the current holdings.
func (uc *PortfolioUseCase) Holdings(ctx context.Context) (domain.Holdings, error) {
	p, err := uc.Portfolio(ctx)
	if err != nil {
		return nil, err
	}
	return p.Holdings, nil
}

// Rebuild replays the transaction log, writes the holdings cache and
// refreshes the in-memory view.
func (uc *PortfolioUseCase) Rebuild(ctx context.Context) (*Portfolio, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	fingerprint, err := uc.store.Fingerprint(ctx)
	if err != nil {
		fingerprint = ""
	}

	balances, balanceErrs, err := loadTable(ctx, uc.load, "initial_balance", uc.store.InitialBalances())
	if err != nil {
		return nil, err
	}
	txs, txErrs, err := loadTable(ctx, uc.load, "transactions", uc.store.Transactions())
	if err != nil {
		return nil, err
	}

	holdings := domain.Reconstruct(balances, txs)

	rejected := append(append([]domain.RowError(nil), balanceErrs...), txErrs...)
	failed := failedAssets(rejected)
	for _, id := range failed {
		delete(holdings, id)
	}

	if err := uc.store.Holdings().Replace(ctx, holdings.Sorted()); err != nil {
		return nil, fmt.Errorf("failed to write holdings: %w", err)
	}

	view := &Portfolio{
		Holdings:    holdings,
		Failed:      failed,
		Rejected:    rejected,
		Fingerprint: fingerprint,
	}
	if fingerprint != "" {
		uc.view = view
	}
	uc.load.recorder.HoldingsRebuilt()
	uc.load.logger.Info().
		Int("holdings", len(holdings)).
		Int("transactions", len(txs)).
		Int("rejected", len(view.Rejected)).
		Msg("holdings rebuilt")

	return copyPortfolio(view), nil
}

// Record appends a transaction for a catalogued asset and rebuilds the
// holdings.
func (uc *PortfolioUseCase) Record(ctx context.Context, tx domain.Transaction) (*Portfolio, error) {
	kind, err := domain.ParseTransactionKind(string(tx.Kind))
	if err != nil {
		return nil, err
	}
	tx.Kind = kind
	if err := domain.ValidateTransaction(tx); err != nil {
		return nil, err
	}
	catalog, err := uc.load.catalog(ctx, uc.store)
	if err != nil {
		return nil, err
	}
	if !catalog.Exists(tx.AssetID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrIntegrityViolation, tx.AssetID)
	}

	tx.Date = domain.Day(tx.Date)
	if err := uc.store.Transactions().Append(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}
	uc.load.logger.Info().
		Str("asset_id", tx.AssetID).
		Str("kind", string(tx.Kind)).
		Str("units", tx.Units.String()).
		Msg("transaction recorded")

	return uc.Rebuild(ctx)
}

// Summary values the holdings at the latest known prices. Runway and
// savings rate stay zero; CashFlowUseCase.Flow fills them in.
func (uc *PortfolioUseCase) Summary(ctx context.Context) (*domain.Summary, error) {
	holdings, err := uc.Holdings(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := uc.load.catalog(ctx, uc.store)
	if err != nil {
		return nil, err
	}

	summary := domain.Value(holdings, catalog, uc.load.snapshot(ctx, uc.prices))
	uc.load.recorder.NetWorth(summary.NetWorth.InexactFloat64())
	return summary, nil
}

func failedAssets(rejected []domain.RowError) []string {
	seen := make(map[string]bool)
	var out []string
	for _, rowErr := range rejected {
		if rowErr.AssetID == "" || seen[rowErr.AssetID] {
			continue
		}
		seen[rowErr.AssetID] = true
		out = append(out, rowErr.AssetID)
	}
	sort.Strings(out)
	return out
}

func copyPortfolio(p *Portfolio) *Portfolio {
	return &Portfolio{
		Holdings:    p.Holdings.Clone(),
		Failed:      append([]string(nil), p.Failed...),
		Rejected:    append([]domain.RowError(nil), p.Rejected...),
		Fingerprint: p.Fingerprint,
	}
}
