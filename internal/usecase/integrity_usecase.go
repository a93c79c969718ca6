package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/domain"
)

// IntegrityUseCase checks the ledger files against the asset catalog.
type IntegrityUseCase struct {
	store LedgerStore
	clock Clock
	load  loader
}

// NewIntegrityUseCase creates a new IntegrityUseCase.
func NewIntegrityUseCase(store LedgerStore, clock Clock, recorder Recorder, logger zerolog.Logger) *IntegrityUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &IntegrityUseCase{
		store: store,
		clock: clock,
		load:  loader{logger: logger, recorder: recorder},
	}
}

// IntegrityReport is the outcome of an integrity check. Nothing in it blocks
// the engine; unknown assets are still reconstructed, just without a name.
type IntegrityReport struct {
	Assets       int
	Balances     int
	Transactions int

	UnknownInTransactions []string
	UnknownInBalances     []string
	// Warnings covers unknown references and suspicious but loadable rows.
	Warnings []error
	// Rejected counts unparseable rows per file.
	Rejected map[string]int

	CheckedAt time.Time
}

// OK reports whether the check found nothing to complain about.
func (r *IntegrityReport) OK() bool {
	return len(r.Warnings) == 0 && len(r.Rejected) == 0
}

// Check runs the integrity check. The only hard failure is a missing asset
// catalog.
func (uc *IntegrityUseCase) Check(ctx context.Context) (*IntegrityReport, error) {
	catalog, err := uc.load.catalog(ctx, uc.store)
	if err != nil {
		return nil, err
	}

	report := &IntegrityReport{
		Assets:    len(catalog.All()),
		Rejected:  make(map[string]int),
		CheckedAt: uc.clock.Now(),
	}

	for _, err := range domain.ValidateCatalog(catalog.All()) {
		report.Warnings = append(report.Warnings, fmt.Errorf("assets: %w", err))
	}

	balances, rejected, err := loadTable(ctx, uc.load, "initial_balance", uc.store.InitialBalances())
	if err != nil {
		return nil, err
	}
	report.Balances = len(balances)
	countRejected(report, rejected)

	txs, rejected, err := loadTable(ctx, uc.load, "transactions", uc.store.Transactions())
	if err != nil {
		return nil, err
	}
	report.Transactions = len(txs)
	countRejected(report, rejected)

	templates, rejected, err := loadTable(ctx, uc.load, "recurring_expenses", uc.store.RecurringExpenses())
	if err != nil {
		return nil, err
	}
	countRejected(report, rejected)

	for _, table := range []struct {
		name  string
		table Table[domain.CashRecord]
	}{
		{"income", uc.store.Incomes()},
		{"expenses", uc.store.Expenses()},
	} {
		_, rejected, err := loadTable(ctx, uc.load, table.name, table.table)
		if err != nil {
			return nil, err
		}
		countRejected(report, rejected)
	}

	txIDs := make([]string, len(txs))
	for i, tx := range txs {
		txIDs[i] = tx.AssetID
		if err := domain.ValidateTransaction(tx); err != nil {
			report.Warnings = append(report.Warnings, fmt.Errorf("transactions %s %s: %w", tx.Date.Format(time.DateOnly), tx.AssetID, err))
		}
	}
	balanceIDs := make([]string, len(balances))
	for i, b := range balances {
		balanceIDs[i] = b.AssetID
	}
	for _, tpl := range templates {
		if err := domain.ValidateRecurringExpense(tpl); err != nil {
			report.Warnings = append(report.Warnings, fmt.Errorf("recurring_expenses %q: %w", tpl.Concept, err))
		}
	}

	report.UnknownInTransactions = unknownIDs(catalog, txIDs)
	for _, id := range report.UnknownInTransactions {
		report.Warnings = append(report.Warnings, fmt.Errorf("%w: transactions reference %q", domain.ErrIntegrityViolation, id))
	}
	report.UnknownInBalances = unknownIDs(catalog, balanceIDs)
	for _, id := range report.UnknownInBalances {
		report.Warnings = append(report.Warnings, fmt.Errorf("%w: initial balance references %q", domain.ErrIntegrityViolation, id))
	}

	uc.load.logger.Info().
		Int("assets", report.Assets).
		Int("transactions", report.Transactions).
		Int("warnings", len(report.Warnings)).
		Msg("integrity check completed")

	return report, nil
}

func countRejected(report *IntegrityReport, rejected []domain.RowError) {
	for _, rowErr := range rejected {
		report.Rejected[rowErr.File]++
	}
}

func unknownIDs(catalog *domain.AssetCatalog, ids []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range ids {
		if seen[id] || catalog.Exists(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
