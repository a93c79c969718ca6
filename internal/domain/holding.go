package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Rounding applied to reconstructed holdings so persisted snapshots are stable.
const (
	UnitsPrecision   int32 = 6
	AvgCostPrecision int32 = 4
)

// Holding is the current position of one asset. It is always derived from
// the initial balance and the transaction log.
type Holding struct {
	AssetID string
	Units   decimal.Decimal
	AvgCost decimal.Decimal
}

// Cost returns units × average cost.
func (h Holding) Cost() decimal.Decimal {
	return h.Units.Mul(h.AvgCost)
}

// Apply replays one transaction on the holding.
func (h *Holding) Apply(tx Transaction) {
	switch tx.Kind {
	case KindBuy:
		h.applyBuy(tx)
	case KindSell:
		// Weighted-average convention: selling never changes the cost basis.
		h.Units = decimal.Max(decimal.Zero, h.Units.Sub(tx.Units))
	case KindValueAdjust:
		value := tx.Units
		if tx.CashAmount.IsPositive() {
			value = tx.CashAmount
		}
		h.Units = value
		h.AvgCost = decimal.NewFromInt(1)
	}
}

func (h *Holding) applyBuy(tx Transaction) {
	units := h.Units.Add(tx.Units)
	if !units.IsPositive() {
		return
	}
	cost := h.Cost().Add(tx.Units.Mul(tx.TradePrice()))
	h.AvgCost = cost.Div(units)
	h.Units = units
}

// Holdings maps asset IDs to holdings.
type Holdings map[string]Holding

// Sorted returns the holdings ordered by asset ID.
func (hs Holdings) Sorted() []Holding {
	out := make([]Holding, 0, len(hs))
	for _, h := range hs {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetID < out[j].AssetID })
	return out
}

// Clone returns a copy that can be handed out without sharing the map.
func (hs Holdings) Clone() Holdings {
	out := make(Holdings, len(hs))
	for id, h := range hs {
		out[id] = h
	}
	return out
}

// Reconstruct replays the transaction log over the initial balances and
// returns the current holdings. Transactions are applied in ascending date
// order; same-day transactions keep their log order.
func Reconstruct(balances []InitialBalance, txs []Transaction) Holdings {
	holdings := make(Holdings, len(balances))
	for _, b := range balances {
		holdings[b.AssetID] = Holding{AssetID: b.AssetID, Units: b.Units, AvgCost: b.AvgCost}
	}

	for _, tx := range SortTransactions(txs) {
		h, ok := holdings[tx.AssetID]
		if !ok {
			h = Holding{AssetID: tx.AssetID}
		}
		h.Apply(tx)
		holdings[tx.AssetID] = h
	}

	for id, h := range holdings {
		h.Units = h.Units.Round(UnitsPrecision)
		h.AvgCost = h.AvgCost.Round(AvgCostPrecision)
		holdings[id] = h
	}
	return holdings
}

// SortTransactions returns a copy of txs stably sorted by date.
func SortTransactions(txs []Transaction) []Transaction {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}
