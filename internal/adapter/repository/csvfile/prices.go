package csvfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/iho/networth/internal/domain"
)

// SnapshotStore implements usecase.PriceSnapshotStore on a JSON file mapping
// asset id to price.
type SnapshotStore struct {
	path string
	mu   sync.RWMutex
}

// NewSnapshotStore stores the snapshot as latest_prices.json inside dir.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{path: filepath.Join(dir, LatestPricesFile)}
}

// Load reads the snapshot. A missing file yields domain.ErrMissingFile.
func (s *SnapshotStore) Load(ctx context.Context) (domain.PriceSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", LatestPricesFile, domain.ErrMissingFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", LatestPricesFile, err)
	}

	snapshot := domain.PriceSnapshot{}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", LatestPricesFile, domain.ErrParse, err)
	}
	return snapshot, nil
}

// Save replaces the snapshot atomically. Prices are written as JSON numbers.
func (s *SnapshotStore) Save(ctx context.Context, snapshot domain.PriceSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	numbers := make(map[string]json.Number, len(snapshot))
	for id, price := range snapshot {
		numbers[id] = json.Number(price.String())
	}
	data, err := json.MarshalIndent(numbers, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding prices: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeAtomic(s.path, func(f *os.File) error {
		_, err := f.Write(data)
		return err
	})
}
