package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/domain"
)

const dateFormat = time.DateOnly

var dateLayouts = []string{time.DateOnly, time.DateTime, time.RFC3339, "2006/01/02"}

// codec maps one ledger file to rows of T. Columns are positional; trailing
// optional columns may be absent from both the header and the rows.
type codec[T any] struct {
	file      string
	header    []string
	minFields int
	assetCol  int // column holding the asset id, -1 when there is none
	marshal   func(T) []string
	unmarshal func([]string) (T, error)
}

// read decodes every row it can. Undecodable rows are returned as RowErrors
// and do not stop the read; a bad header fails the whole file.
func (c codec[T]) read(r io.Reader) ([]T, []domain.RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading header: %w", c.file, err)
	}
	if err := c.checkHeader(header); err != nil {
		return nil, nil, err
	}

	var (
		rows     []T
		rejected []domain.RowError
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rejected = append(rejected, domain.RowError{File: c.file, Line: parseErr.Line, Err: err})
				continue
			}
			return nil, nil, fmt.Errorf("%s: %w", c.file, err)
		}

		line, _ := cr.FieldPos(0)
		row, err := c.decode(rec)
		if err != nil {
			rejected = append(rejected, domain.RowError{File: c.file, Line: line, AssetID: c.assetID(rec), Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rejected, nil
}

func (c codec[T]) decode(rec []string) (T, error) {
	var zero T
	if len(rec) < c.minFields {
		return zero, fmt.Errorf("expected at least %d fields, got %d", c.minFields, len(rec))
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	return c.unmarshal(rec)
}

func (c codec[T]) assetID(rec []string) string {
	if c.assetCol < 0 || c.assetCol >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[c.assetCol])
}

func (c codec[T]) checkHeader(header []string) error {
	if len(header) < c.minFields {
		return fmt.Errorf("%s: %w: header has %d columns, want %s", c.file, domain.ErrParse, len(header), strings.Join(c.header, ","))
	}
	for i, name := range header {
		if i >= len(c.header) {
			break
		}
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")), c.header[i]) {
			return fmt.Errorf("%s: %w: column %d is %q, want %q", c.file, domain.ErrParse, i+1, name, c.header[i])
		}
	}
	return nil
}

// write encodes rows, preceded by the header when withHeader is set.
func (c codec[T]) write(w io.Writer, rows []T, withHeader bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if withHeader {
		if err := cw.Write(c.header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, row := range rows {
		if err := cw.Write(c.marshal(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func field(rec []string, col int) string {
	if col >= len(rec) {
		return ""
	}
	return rec[col]
}

// parseDecimal reads a numeric cell; an empty cell is zero.
func parseDecimal(name, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", name, s, err)
	}
	return d, nil
}

func formatDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.String()
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q: want YYYY-MM-DD", s)
}
