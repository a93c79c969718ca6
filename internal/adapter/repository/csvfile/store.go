package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// Store implements usecase.LedgerStore on a directory of CSV files.
// A single lock serializes writers across every file of the directory.
type Store struct {
	dir string
	mu  sync.RWMutex

	assets       *Table[domain.Asset]
	balances     *Table[domain.InitialBalance]
	transactions *Table[domain.Transaction]
	incomes      *Table[domain.CashRecord]
	expenses     *Table[domain.CashRecord]
	recurring    *Table[domain.RecurringExpense]
	holdings     *Table[domain.Holding]
	history      *PriceHistory
}

// NewStore opens the ledger in dir, creating the directory when needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{dir: dir}
	s.assets = newTable(s, assetCodec)
	s.balances = newTable(s, balanceCodec)
	s.transactions = newTable(s, transactionCodec)
	s.incomes = newTable(s, cashRecordCodec(IncomeFile))
	s.expenses = newTable(s, cashRecordCodec(ExpensesFile))
	s.recurring = newTable(s, recurringCodec)
	s.holdings = newTable(s, holdingCodec)
	s.history = &PriceHistory{table: newTable(s, historyCodec)}
	return s, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) Assets() usecase.Table[domain.Asset]                   { return s.assets }
func (s *Store) InitialBalances() usecase.Table[domain.InitialBalance] { return s.balances }
func (s *Store) Transactions() usecase.Table[domain.Transaction]       { return s.transactions }
func (s *Store) Incomes() usecase.Table[domain.CashRecord]             { return s.incomes }
func (s *Store) Expenses() usecase.Table[domain.CashRecord]            { return s.expenses }
func (s *Store) RecurringExpenses() usecase.Table[domain.RecurringExpense] {
	return s.recurring
}
func (s *Store) Holdings() usecase.Table[domain.Holding]      { return s.holdings }
func (s *Store) PriceHistory() usecase.PriceHistoryRepository { return s.history }

// Fingerprint hashes the contents of the initial balance and transaction
// files. A missing file hashes differently from an empty one.
func (s *Store) Fingerprint(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	h := xxhash.New()
	for _, name := range []string{InitialBalanceFile, TransactionsFile} {
		_, _ = h.WriteString(name)
		f, err := openIfExists(filepath.Join(s.dir, name))
		if err != nil {
			return "", err
		}
		if f == nil {
			_, _ = h.WriteString("\x00missing")
			continue
		}
		_, err = io.Copy(h, f)
		_ = f.Close()
		if err != nil {
			return "", fmt.Errorf("hashing %s: %w", name, err)
		}
		_, _ = h.WriteString("\x00")
	}
	return strconv.FormatUint(h.Sum64(), 16), nil
}

// Name identifies the store in readiness checks.
func (s *Store) Name() string { return "ledger" }

// Check reports whether the data directory is still reachable.
func (s *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

// openIfExists returns a nil file and no error when path does not exist.
func openIfExists(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	return f, nil
}
