package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/domain"
)

// loader reads ledger tables, treating absent files as empty and reporting
// rejected rows.
type loader struct {
	logger   zerolog.Logger
	recorder Recorder
}

func loadTable[T any](ctx context.Context, l loader, name string, table Table[T]) ([]T, []domain.RowError, error) {
	rows, rejected, err := table.LoadAll(ctx)
	if errors.Is(err, domain.ErrMissingFile) {
		l.logger.Debug().Str("table", name).Msg("ledger file missing, using empty dataset")
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	for _, rowErr := range rejected {
		l.logger.Warn().
			Str("file", rowErr.File).
			Int("line", rowErr.Line).
			Str("asset_id", rowErr.AssetID).
			Err(rowErr.Err).
			Msg("rejected ledger row")
	}
	if len(rejected) > 0 {
		l.recorder.RowsRejected(name, len(rejected))
	}
	return rows, rejected, nil
}

// loadOptionalTable is loadTable for tables whose header may be unreadable.
// A header that does not parse is logged and counted as one rejected row,
// and the table reads as empty.
func loadOptionalTable[T any](ctx context.Context, l loader, name string, table Table[T]) ([]T, []domain.RowError, error) {
	rows, rejected, err := loadTable(ctx, l, name, table)
	if errors.Is(err, domain.ErrParse) {
		l.logger.Warn().Str("table", name).Err(err).Msg("ledger file unreadable, using empty dataset")
		l.recorder.RowsRejected(name, 1)
		return nil, nil, nil
	}
	return rows, rejected, err
}

func (l loader) catalog(ctx context.Context, store LedgerStore) (*domain.AssetCatalog, error) {
	assets, _, err := store.Assets().LoadAll(ctx)
	if errors.Is(err, domain.ErrMissingFile) {
		return nil, fmt.Errorf("%w: %w", domain.ErrAssetCatalogMissing, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load assets: %w", err)
	}
	return domain.NewAssetCatalog(assets), nil
}

func (l loader) snapshot(ctx context.Context, prices PriceSnapshotStore) domain.PriceSnapshot {
	snapshot, err := prices.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrMissingFile) {
			l.logger.Warn().Err(err).Msg("price snapshot unreadable, using empty prices")
		}
		return domain.PriceSnapshot{}
	}
	if snapshot == nil {
		return domain.PriceSnapshot{}
	}
	return snapshot
}
