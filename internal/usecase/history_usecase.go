package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/domain"
)

// HoldingsReader provides the current holdings.
type HoldingsReader interface {
	Holdings(ctx context.Context) (domain.Holdings, error)
}

// HistoryUseCase values the portfolio over time.
type HistoryUseCase struct {
	store    LedgerStore
	holdings HoldingsReader
	clock    Clock
	load     loader
}

// NewHistoryUseCase creates a new HistoryUseCase.
func NewHistoryUseCase(store LedgerStore, holdings HoldingsReader, clock Clock, recorder Recorder, logger zerolog.Logger) *HistoryUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &HistoryUseCase{
		store:    store,
		holdings: holdings,
		clock:    clock,
		load:     loader{logger: logger, recorder: recorder},
	}
}

// InvestedCapital returns the running invested capital. Rejected
// transaction rows are left out of the replay.
func (uc *HistoryUseCase) InvestedCapital(ctx context.Context) ([]domain.CapitalPoint, error) {
	balances, _, err := loadTable(ctx, uc.load, "initial_balance", uc.store.InitialBalances())
	if err != nil {
		return nil, err
	}
	txs, _, err := loadTable(ctx, uc.load, "transactions", uc.store.Transactions())
	if err != nil {
		return nil, err
	}
	return domain.InvestedCapital(balances, txs, uc.clock.Now()), nil
}

// ValueHistory values today's holdings at every date of the price history
// and splits each value into invested capital and profit. It returns nil
// when no prices were ever recorded.
func (uc *HistoryUseCase) ValueHistory(ctx context.Context) ([]domain.ValuePoint, error) {
	history, err := uc.store.PriceHistory().LoadAll(ctx)
	if errors.Is(err, domain.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	if len(history) == 0 {
		return nil, nil
	}

	holdings, err := uc.holdings.Holdings(ctx)
	if err != nil {
		return nil, err
	}
	capital, err := uc.InvestedCapital(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ValueHistory(history, holdings, capital), nil
}
