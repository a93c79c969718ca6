package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CapitalPoint is the cumulative invested capital after the events of a day.
type CapitalPoint struct {
	Date    time.Time       `json:"date"`
	Capital decimal.Decimal `json:"capital"`
}

// InvestedCapital replays the transaction log and returns the running amount
// of money put into the portfolio, one point per transaction date.
//
// SELL subtracts the whole sale amount rather than the cost basis of the
// units sold, so realized gains reduce the figure. VALUE_ADJUST is ignored,
// cash balances included: a cash adjustment is not classified as a capital
// movement. Both are known approximations of "net invested capital".
//
// Without transactions the series is a single point at now.
func InvestedCapital(balances []InitialBalance, txs []Transaction, now time.Time) []CapitalPoint {
	capital := decimal.Zero
	for _, b := range balances {
		capital = capital.Add(b.Cost())
	}
	if len(txs) == 0 {
		return []CapitalPoint{{Date: Day(now), Capital: capital}}
	}

	var out []CapitalPoint
	for _, tx := range SortTransactions(txs) {
		switch tx.Kind {
		case KindBuy:
			capital = capital.Add(tx.CashAmount)
		case KindSell:
			capital = capital.Sub(tx.CashAmount)
		}

		day := Day(tx.Date)
		if n := len(out); n > 0 && out[n-1].Date.Equal(day) {
			out[n-1].Capital = capital
			continue
		}
		out = append(out, CapitalPoint{Date: day, Capital: capital})
	}
	return out
}

// CapitalAsOf returns the capital of the latest point dated on or before day.
// Before the first point it returns the first point's capital.
func CapitalAsOf(series []CapitalPoint, day time.Time) decimal.Decimal {
	if len(series) == 0 {
		return decimal.Zero
	}
	capital := series[0].Capital
	for _, p := range series {
		if p.Date.After(day) {
			break
		}
		capital = p.Capital
	}
	return capital
}
