package domain

import "github.com/shopspring/decimal"

// MonthlyTotal is one bucket of a monthly series.
type MonthlyTotal struct {
	Month Month           `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// AggregateMonthly sums amounts per calendar month. The result covers every
// month between the first and last record, with zero for months that have
// no records.
func AggregateMonthly(records []CashRecord) []MonthlyTotal {
	if len(records) == 0 {
		return nil
	}

	sums := make(map[Month]decimal.Decimal)
	first, last := MonthOf(records[0].Date), MonthOf(records[0].Date)
	for _, r := range records {
		m := MonthOf(r.Date)
		sums[m] = sums[m].Add(r.Amount)
		if m.Before(first) {
			first = m
		}
		if m.After(last) {
			last = m
		}
	}

	months := MonthsBetween(first, last)
	out := make([]MonthlyTotal, len(months))
	for i, m := range months {
		out[i] = MonthlyTotal{Month: m, Total: sums[m]}
	}
	return out
}

// Tail returns the last n buckets, or all of them when there are fewer.
func Tail(series []MonthlyTotal, n int) []MonthlyTotal {
	if len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

// SumTotals adds the totals of series.
func SumTotals(series []MonthlyTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range series {
		sum = sum.Add(b.Total)
	}
	return sum
}

// MeanTotals averages the totals of series, 0 when empty.
func MeanTotals(series []MonthlyTotal) decimal.Decimal {
	if len(series) == 0 {
		return decimal.Zero
	}
	return SumTotals(series).Div(decimal.NewFromInt(int64(len(series))))
}
