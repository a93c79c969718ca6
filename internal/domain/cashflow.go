package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CashRecord is an income or expense row.
type CashRecord struct {
	Date          time.Time
	Category      string
	Concept       string
	Amount        decimal.Decimal
	Extraordinary bool
	Recurring     bool // synthetic record expanded from a template, never persisted
}

// RecurringExpense is a monthly expense template.
type RecurringExpense struct {
	Day      int
	Category string
	Concept  string
	Amount   decimal.Decimal
}

// SplitExtraordinary partitions records into ordinary and extraordinary ones.
func SplitExtraordinary(records []CashRecord) (ordinary, extraordinary []CashRecord) {
	for _, r := range records {
		if r.Extraordinary {
			extraordinary = append(extraordinary, r)
		} else {
			ordinary = append(ordinary, r)
		}
	}
	return ordinary, extraordinary
}

// FilterRecords returns the records for which keep returns true.
func FilterRecords(records []CashRecord, keep func(CashRecord) bool) []CashRecord {
	var out []CashRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// EarliestDate returns the earliest record date across all sets.
func EarliestDate(sets ...[]CashRecord) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, records := range sets {
		for _, r := range records {
			if !found || r.Date.Before(earliest) {
				earliest = r.Date
				found = true
			}
		}
	}
	return earliest, found
}

// CategoryAmount is an amount aggregated by category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryMonthlyAverages sums records per category and divides each sum by
// the number of distinct months that have records, rounded to cents. The
// result is ordered by amount, largest first.
func CategoryMonthlyAverages(records []CashRecord) []CategoryAmount {
	if len(records) == 0 {
		return nil
	}

	months := make(map[Month]struct{})
	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, r := range records {
		months[MonthOf(r.Date)] = struct{}{}
		if _, ok := sums[r.Category]; !ok {
			order = append(order, r.Category)
		}
		sums[r.Category] = sums[r.Category].Add(r.Amount)
	}

	n := decimal.NewFromInt(int64(max(1, len(months))))
	out := make([]CategoryAmount, len(order))
	for i, category := range order {
		out[i] = CategoryAmount{Category: category, Amount: sums[category].Div(n).Round(2)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	return out
}

// SortRecords returns a copy of records stably sorted by date.
func SortRecords(records []CashRecord) []CashRecord {
	sorted := make([]CashRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}
