package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestReconstruct_BuyWeightsAverageCost(t *testing.T) {
	txs := []Transaction{
		{Date: date(2024, 1, 1), AssetID: "fund", Kind: KindBuy, Units: d("10"), UnitPrice: d("100")},
		{Date: date(2024, 2, 1), AssetID: "fund", Kind: KindBuy, Units: d("10"), UnitPrice: d("200")},
	}

	h := Reconstruct(nil, txs)["fund"]
	assert.True(t, h.Units.Equal(d("20")), "units = %s", h.Units)
	assert.True(t, h.AvgCost.Equal(d("150")), "avg = %s", h.AvgCost)
}

func TestReconstruct_SellFloorsAtZeroAndKeepsAverage(t *testing.T) {
	balances := []InitialBalance{{AssetID: "fund", Units: d("5"), AvgCost: d("12.5")}}
	txs := []Transaction{
		{Date: date(2024, 3, 1), AssetID: "fund", Kind: KindSell, Units: d("8"), CashAmount: d("120")},
	}

	h := Reconstruct(balances, txs)["fund"]
	assert.True(t, h.Units.IsZero(), "units = %s", h.Units)
	assert.True(t, h.AvgCost.Equal(d("12.5")), "avg = %s", h.AvgCost)
}

func TestReconstruct_ValueAdjust(t *testing.T) {
	tests := []struct {
		name      string
		tx        Transaction
		wantUnits string
	}{
		{
			name:      "cash amount wins",
			tx:        Transaction{Kind: KindValueAdjust, Units: d("3"), CashAmount: d("2500")},
			wantUnits: "2500",
		},
		{
			name:      "units when no cash amount",
			tx:        Transaction{Kind: KindValueAdjust, Units: d("1800")},
			wantUnits: "1800",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := []InitialBalance{{AssetID: "cash", Units: d("1000"), AvgCost: d("1.7")}}
			tx := tt.tx
			tx.AssetID = "cash"
			tx.Date = date(2024, 1, 10)

			h := Reconstruct(balances, []Transaction{tx})["cash"]
			assert.True(t, h.Units.Equal(d(tt.wantUnits)), "units = %s", h.Units)
			assert.True(t, h.AvgCost.Equal(d("1")), "avg = %s", h.AvgCost)
		})
	}
}

func TestReconstruct_DerivesTradePrice(t *testing.T) {
	txs := []Transaction{
		{Date: date(2024, 1, 1), AssetID: "fund", Kind: KindBuy, Units: d("4"), CashAmount: d("50")},
	}

	h := Reconstruct(nil, txs)["fund"]
	assert.True(t, h.AvgCost.Equal(d("12.5")), "avg = %s", h.AvgCost)
}

func TestReconstruct_BuyWithoutPositiveUnitsIsSkipped(t *testing.T) {
	balances := []InitialBalance{{AssetID: "fund", Units: d("2"), AvgCost: d("10")}}
	txs := []Transaction{
		{Date: date(2024, 1, 1), AssetID: "fund", Kind: KindBuy, Units: d("-2"), UnitPrice: d("99")},
	}

	h := Reconstruct(balances, txs)["fund"]
	assert.True(t, h.Units.Equal(d("2")))
	assert.True(t, h.AvgCost.Equal(d("10")))
}

func TestReconstruct_EndToEnd(t *testing.T) {
	balances := []InitialBalance{{AssetID: "A", Units: d("10"), AvgCost: d("50")}}
	txs := []Transaction{
		{Date: date(2024, 1, 1), AssetID: "A", Kind: KindBuy, Units: d("5"), CashAmount: d("300"), UnitPrice: d("60")},
	}

	holdings := Reconstruct(balances, txs)
	require.Len(t, holdings, 1)
	h := holdings["A"]
	assert.True(t, h.Units.Equal(d("15")), "units = %s", h.Units)
	assert.True(t, h.AvgCost.Equal(d("53.3333")), "avg = %s", h.AvgCost)
}

func TestReconstruct_IsDeterministic(t *testing.T) {
	balances := []InitialBalance{
		{AssetID: "A", Units: d("3"), AvgCost: d("7")},
		{AssetID: "B", Units: d("1"), AvgCost: d("1000")},
	}
	txs := []Transaction{
		{Date: date(2024, 5, 1), AssetID: "A", Kind: KindSell, Units: d("1")},
		{Date: date(2024, 1, 1), AssetID: "A", Kind: KindBuy, Units: d("3"), UnitPrice: d("9.1")},
		{Date: date(2024, 1, 1), AssetID: "B", Kind: KindBuy, Units: d("0.5"), CashAmount: d("610")},
		{Date: date(2024, 3, 1), AssetID: "C", Kind: KindValueAdjust, CashAmount: d("400")},
	}

	first := Reconstruct(balances, txs)
	second := Reconstruct(balances, txs)
	require.Equal(t, len(first), len(second))
	for id, h := range first {
		assert.True(t, h.Units.Equal(second[id].Units), id)
		assert.True(t, h.AvgCost.Equal(second[id].AvgCost), id)
	}
}

func TestReconstruct_SameDayKeepsLogOrder(t *testing.T) {
	txs := []Transaction{
		{Date: date(2024, 1, 1), AssetID: "A", Kind: KindBuy, Units: d("10"), UnitPrice: d("10")},
		{Date: date(2024, 1, 1), AssetID: "A", Kind: KindSell, Units: d("10")},
		{Date: date(2024, 1, 1), AssetID: "A", Kind: KindBuy, Units: d("1"), UnitPrice: d("30")},
	}

	h := Reconstruct(nil, txs)["A"]
	assert.True(t, h.Units.Equal(d("1")))
	// Selling keeps avg 10, so the last buy weighs (0×10 + 1×30)/1.
	assert.True(t, h.AvgCost.Equal(d("30")), "avg = %s", h.AvgCost)
}

func TestReconstruct_RoundsOutput(t *testing.T) {
	txs := []Transaction{
		{Date: date(2024, 1, 1), AssetID: "A", Kind: KindBuy, Units: d("3"), CashAmount: d("10")},
		{Date: date(2024, 1, 2), AssetID: "A", Kind: KindBuy, Units: d("0.1234567")},
	}

	h := Reconstruct(nil, txs)["A"]
	assert.True(t, h.Units.Equal(d("3.123457")), "units = %s", h.Units)
	assert.LessOrEqual(t, -h.AvgCost.Exponent(), int32(AvgCostPrecision))
}

func TestHoldings_SortedAndClone(t *testing.T) {
	hs := Holdings{
		"b": {AssetID: "b", Units: d("1")},
		"a": {AssetID: "a", Units: d("2")},
	}

	sorted := hs.Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, "a", sorted[0].AssetID)

	clone := hs.Clone()
	clone["c"] = Holding{AssetID: "c"}
	assert.Len(t, hs, 2)
}

func TestParseTransactionKind(t *testing.T) {
	kind, err := ParseTransactionKind(" buy ")
	require.NoError(t, err)
	assert.Equal(t, KindBuy, kind)

	kind, err = ParseTransactionKind("value_adjust")
	require.NoError(t, err)
	assert.Equal(t, KindValueAdjust, kind)

	_, err = ParseTransactionKind("DIVIDEND")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
