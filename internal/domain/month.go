package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the string form of a Month.
const MonthFormat = "2006-01"

// Month is a calendar month with no day component.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns the first day of the month at UTC midnight.
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Day returns the given day of the month, clamped to [1, Days()].
func (m Month) Day(day int) time.Time {
	day = max(1, min(day, m.Days()))
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC)
}

// Next returns the following month.
func (m Month) Next() Month { return MonthOf(m.First().AddDate(0, 1, 0)) }

// Before reports whether m is strictly before x.
func (m Month) Before(x Month) bool {
	return m.Year < x.Year || (m.Year == x.Year && m.Month < x.Month)
}

// After reports whether m is strictly after x.
func (m Month) After(x Month) bool { return x.Before(m) }

func (m Month) String() string { return m.First().Format(MonthFormat) }

// MarshalJSON encodes the month as "YYYY-MM".
func (m Month) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

// UnmarshalJSON decodes "YYYY-MM".
func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return fmt.Errorf("invalid month %q: %w", s, err)
	}
	*m = MonthOf(t)
	return nil
}

// MonthsBetween returns every month from first to last inclusive. It returns
// nil when last is before first.
func MonthsBetween(first, last Month) []Month {
	var out []Month
	for m := first; !m.After(last); m = m.Next() {
		out = append(out, m)
	}
	return out
}

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
