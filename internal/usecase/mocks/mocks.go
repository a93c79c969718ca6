package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// MemoryTable is an in-memory implementation of usecase.Table.
type MemoryTable[T any] struct {
	mu       sync.RWMutex
	rows     []T
	rejected []domain.RowError
	missing  bool

	LoadAllFunc func(ctx context.Context) ([]T, []domain.RowError, error)
	ReplaceFunc func(ctx context.Context, rows []T) error
}

// NewMemoryTable creates a table holding rows.
func NewMemoryTable[T any](rows ...T) *MemoryTable[T] {
	return &MemoryTable[T]{rows: rows}
}

// MissingTable creates a table that behaves like an absent file.
func MissingTable[T any]() *MemoryTable[T] {
	return &MemoryTable[T]{missing: true}
}

// Reject adds rows that LoadAll reports as rejected.
func (m *MemoryTable[T]) Reject(errs ...domain.RowError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, errs...)
}

// Rows returns a copy of the stored rows.
func (m *MemoryTable[T]) Rows() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]T(nil), m.rows...)
}

func (m *MemoryTable[T]) LoadAll(ctx context.Context) ([]T, []domain.RowError, error) {
	if m.LoadAllFunc != nil {
		return m.LoadAllFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.missing {
		return nil, nil, fmt.Errorf("memory table: %w", domain.ErrMissingFile)
	}
	return append([]T(nil), m.rows...), append([]domain.RowError(nil), m.rejected...), nil
}

func (m *MemoryTable[T]) Append(ctx context.Context, rows ...T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing = false
	m.rows = append(m.rows, rows...)
	return nil
}

func (m *MemoryTable[T]) Replace(ctx context.Context, rows []T) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, rows)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing = false
	m.rows = append([]T(nil), rows...)
	m.rejected = nil
	return nil
}

func (m *MemoryTable[T]) snapshot() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("%v|%v|%v", m.missing, m.rows, m.rejected)
}

// MemoryPriceHistory is an in-memory implementation of usecase.PriceHistoryRepository.
type MemoryPriceHistory struct {
	mu     sync.RWMutex
	points []domain.PricePoint

	ReplaceDayFunc func(ctx context.Context, day time.Time, points []domain.PricePoint) error
}

func (m *MemoryPriceHistory) LoadAll(ctx context.Context) ([]domain.PricePoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.PricePoint(nil), m.points...), nil
}

func (m *MemoryPriceHistory) ReplaceDay(ctx context.Context, day time.Time, points []domain.PricePoint) error {
	if m.ReplaceDayFunc != nil {
		return m.ReplaceDayFunc(ctx, day, points)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = domain.ReplaceDay(m.points, day, points)
	return nil
}

// MemoryStore is an in-memory implementation of usecase.LedgerStore.
// Every table starts empty; tests swap in the ones they need.
type MemoryStore struct {
	AssetTable       *MemoryTable[domain.Asset]
	BalanceTable     *MemoryTable[domain.InitialBalance]
	TransactionTable *MemoryTable[domain.Transaction]
	IncomeTable      *MemoryTable[domain.CashRecord]
	ExpenseTable     *MemoryTable[domain.CashRecord]
	RecurringTable   *MemoryTable[domain.RecurringExpense]
	HoldingTable     *MemoryTable[domain.Holding]
	History          *MemoryPriceHistory
	FingerprintFunc  func(ctx context.Context) (string, error)
}

// NewMemoryStore creates a store with empty tables.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		AssetTable:       NewMemoryTable[domain.Asset](),
		BalanceTable:     NewMemoryTable[domain.InitialBalance](),
		TransactionTable: NewMemoryTable[domain.Transaction](),
		IncomeTable:      NewMemoryTable[domain.CashRecord](),
		ExpenseTable:     NewMemoryTable[domain.CashRecord](),
		RecurringTable:   NewMemoryTable[domain.RecurringExpense](),
		HoldingTable:     NewMemoryTable[domain.Holding](),
		History:          &MemoryPriceHistory{},
	}
}

func (s *MemoryStore) Assets() usecase.Table[domain.Asset]                   { return s.AssetTable }
func (s *MemoryStore) InitialBalances() usecase.Table[domain.InitialBalance] { return s.BalanceTable }
func (s *MemoryStore) Transactions() usecase.Table[domain.Transaction]       { return s.TransactionTable }
func (s *MemoryStore) Incomes() usecase.Table[domain.CashRecord]             { return s.IncomeTable }
func (s *MemoryStore) Expenses() usecase.Table[domain.CashRecord]            { return s.ExpenseTable }
func (s *MemoryStore) RecurringExpenses() usecase.Table[domain.RecurringExpense] {
	return s.RecurringTable
}
func (s *MemoryStore) Holdings() usecase.Table[domain.Holding]       { return s.HoldingTable }
func (s *MemoryStore) PriceHistory() usecase.PriceHistoryRepository { return s.History }

func (s *MemoryStore) Fingerprint(ctx context.Context) (string, error) {
	if s.FingerprintFunc != nil {
		return s.FingerprintFunc(ctx)
	}
	return s.BalanceTable.snapshot() + "#" + s.TransactionTable.snapshot(), nil
}

// FixedClock is a usecase.Clock stuck at one instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// SequentialIDGenerator returns run-1, run-2, ...
type SequentialIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("run-%d", g.n)
}
