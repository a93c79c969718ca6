package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iho/networth/internal/domain"
)

// Table implements usecase.Table for one CSV file of the data directory.
type Table[T any] struct {
	store *Store
	codec codec[T]
}

func newTable[T any](s *Store, c codec[T]) *Table[T] {
	return &Table[T]{store: s, codec: c}
}

func (t *Table[T]) path() string {
	return filepath.Join(t.store.dir, t.codec.file)
}

// LoadAll reads every row of the file.
func (t *Table[T]) LoadAll(ctx context.Context) ([]T, []domain.RowError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	f, err := os.Open(t.path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%s: %w", t.codec.file, domain.ErrMissingFile)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", t.codec.file, err)
	}
	defer f.Close()

	return t.codec.read(f)
}

// Append adds rows to the end of the file, creating it with a header when
// it does not exist. Existing rows, including rejected ones, are untouched.
func (t *Table[T]) Append(ctx context.Context, rows ...T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	withHeader := false
	info, err := os.Stat(t.path())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		withHeader = true
	case err != nil:
		return fmt.Errorf("stat %s: %w", t.codec.file, err)
	case info.Size() == 0:
		withHeader = true
	}

	f, err := os.OpenFile(t.path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", t.codec.file, err)
	}
	if err := t.codec.write(f, rows, withHeader); err != nil {
		_ = f.Close()
		return fmt.Errorf("appending to %s: %w", t.codec.file, err)
	}
	return f.Close()
}

// Replace rewrites the whole file atomically.
func (t *Table[T]) Replace(ctx context.Context, rows []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	return t.replaceLocked(rows)
}

func (t *Table[T]) replaceLocked(rows []T) error {
	return writeAtomic(t.path(), func(f *os.File) error {
		return t.codec.write(f, rows, true)
	})
}

// writeAtomic writes path through a temporary file in the same directory
// and renames it into place.
func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming %s: %w", filepath.Base(path), err)
	}
	return nil
}
