package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/iho/networth/internal/domain"
)

// PriceHistory implements usecase.PriceHistoryRepository on price_history.csv.
type PriceHistory struct {
	table *Table[domain.PricePoint]
}

// LoadAll returns the readable history rows. Malformed rows are skipped and
// a missing file yields an error wrapping domain.ErrMissingFile.
func (h *PriceHistory) LoadAll(ctx context.Context) ([]domain.PricePoint, error) {
	points, _, err := h.table.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return points, nil
}

// ReplaceDay drops every row dated day and appends points. Other rows are
// written back as they were, including rows that do not decode. A file with
// a foreign header is left untouched and an error is returned.
func (h *PriceHistory) ReplaceDay(ctx context.Context, day time.Time, points []domain.PricePoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h.table.store.mu.Lock()
	defer h.table.store.mu.Unlock()

	kept, err := h.keptRowsLocked(domain.Day(day))
	if err != nil {
		return err
	}

	c := h.table.codec
	return writeAtomic(h.table.path(), func(f *os.File) error {
		cw := csv.NewWriter(f)
		if err := cw.Write(c.header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := cw.WriteAll(kept); err != nil {
			return err
		}
		for _, p := range points {
			if err := cw.Write(c.marshal(p)); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// keptRowsLocked returns the raw history rows whose date is not day.
func (h *PriceHistory) keptRowsLocked(day time.Time) ([][]string, error) {
	f, err := openIfExists(h.table.path())
	if err != nil || f == nil {
		return nil, err
	}
	defer f.Close()

	c := h.table.codec
	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", c.file, err)
	}
	if err := c.checkHeader(header); err != nil {
		return nil, fmt.Errorf("refusing to rewrite price history: %w", err)
	}

	var kept [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.file, err)
		}
		if date, err := parseDate(strings.TrimSpace(field(rec, historyColDate))); err == nil && date.Equal(day) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, nil
}
