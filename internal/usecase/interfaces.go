package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/domain"
)

// Table defines data access for one ledger file.
// LoadAll returns the decoded rows plus the rows it had to reject; a missing
// file yields an error wrapping domain.ErrMissingFile.
type Table[T any] interface {
	LoadAll(ctx context.Context) ([]T, []domain.RowError, error)
	Append(ctx context.Context, rows ...T) error
	Replace(ctx context.Context, rows []T) error
}

// PriceHistoryRepository defines data access for the price history.
type PriceHistoryRepository interface {
	LoadAll(ctx context.Context) ([]domain.PricePoint, error)
	// ReplaceDay drops every row dated day and appends points.
	ReplaceDay(ctx context.Context, day time.Time, points []domain.PricePoint) error
}

// LedgerStore groups the tables of a ledger directory.
type LedgerStore interface {
	Assets() Table[domain.Asset]
	InitialBalances() Table[domain.InitialBalance]
	Transactions() Table[domain.Transaction]
	Incomes() Table[domain.CashRecord]
	Expenses() Table[domain.CashRecord]
	RecurringExpenses() Table[domain.RecurringExpense]
	Holdings() Table[domain.Holding]
	PriceHistory() PriceHistoryRepository

	// Fingerprint changes whenever the inputs of the holdings rebuild change.
	Fingerprint(ctx context.Context) (string, error)
}

// PriceSnapshotStore persists the latest price per asset.
type PriceSnapshotStore interface {
	Load(ctx context.Context) (domain.PriceSnapshot, error)
	Save(ctx context.Context, snapshot domain.PriceSnapshot) error
}

// PriceSource fetches the current price of an instrument.
// ok is false when the source has no price for lookupCode.
type PriceSource interface {
	FetchPrice(ctx context.Context, lookupCode string) (price decimal.Decimal, ok bool, err error)
	Name() string
}

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Recorder receives operational measurements.
type Recorder interface {
	PriceFetched(source, status string)
	RefreshCompleted(d time.Duration)
	HoldingsRebuilt()
	RowsRejected(file string, n int)
	NetWorth(v float64)
}

// SystemClock is the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// NopRecorder discards measurements.
type NopRecorder struct{}

func (NopRecorder) PriceFetched(string, string)   {}
func (NopRecorder) RefreshCompleted(time.Duration) {}
func (NopRecorder) HoldingsRebuilt()               {}
func (NopRecorder) RowsRejected(string, int)       {}
func (NopRecorder) NetWorth(float64)               {}
