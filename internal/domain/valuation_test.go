package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *AssetCatalog {
	return NewAssetCatalog([]Asset{
		{ID: "world", Name: "World Index", Class: "Equity"},
		{ID: "bond", Name: "Bond Fund", Class: "fixed income"},
		{ID: "eur", Name: "Current account", Class: "cash"},
	})
}

func TestValue_Summary(t *testing.T) {
	holdings := Holdings{
		"world": {AssetID: "world", Units: d("10"), AvgCost: d("100")},
		"bond":  {AssetID: "bond", Units: d("20"), AvgCost: d("10")},
		"eur":   {AssetID: "eur", Units: d("500"), AvgCost: d("1")},
	}
	prices := PriceSnapshot{"world": d("150"), "bond": d("10"), "eur": d("1")}

	s := Value(holdings, testCatalog(), prices)
	assertDecimal(t, "2200", s.NetWorth, "net worth")
	assertDecimal(t, "1700", s.TotalCost, "total cost")
	assertDecimal(t, "1500", s.EquityValue, "equity")
	assertDecimal(t, "700", s.StableValue, "stable")
	assertDecimal(t, "500", s.LiquidValue, "liquid")

	require.Len(t, s.Positions, 3)
	assert.Equal(t, "world", s.Positions[0].AssetID)
	assert.Equal(t, "World Index", s.Positions[0].Name)
	assertDecimal(t, "500", s.Positions[0].Gain, "gain")
	assertDecimal(t, "50", s.Positions[0].ReturnPct, "return")
}

func TestValue_MissingPriceAndAsset(t *testing.T) {
	holdings := Holdings{
		"ghost": {AssetID: "ghost", Units: d("3"), AvgCost: d("0")},
		"bond":  {AssetID: "bond", Units: d("1"), AvgCost: d("5")},
	}

	s := Value(holdings, testCatalog(), PriceSnapshot{})
	assert.True(t, s.NetWorth.IsZero())
	assert.True(t, s.RiskPct.IsZero())
	require.Len(t, s.Positions, 2)
	// Equal market values keep asset id order.
	assert.Equal(t, "bond", s.Positions[0].AssetID)
	assert.Empty(t, s.Positions[1].Name)
	assert.True(t, s.Positions[1].ReturnPct.IsZero())
}

func TestValueHistory(t *testing.T) {
	holdings := Holdings{
		"world": {AssetID: "world", Units: d("2")},
		"bond":  {AssetID: "bond", Units: d("10")},
	}
	history := []PricePoint{
		{Date: date(2024, 2, 1), AssetID: "world", Price: d("100")},
		{Date: date(2024, 1, 1), AssetID: "world", Price: d("90")},
		{Date: date(2024, 2, 1), AssetID: "bond", Price: d("10.555")},
		{Date: date(2024, 2, 1), AssetID: "sold", Price: d("7")},
	}
	capital := []CapitalPoint{{Date: date(2024, 1, 15), Capital: d("250")}}

	out := ValueHistory(history, holdings, capital)
	require.Len(t, out, 2)
	assert.Equal(t, date(2024, 1, 1), out[0].Date)
	assertDecimal(t, "180", out[0].Value, "jan value")
	assertDecimal(t, "250", out[0].Invested, "jan invested")
	assertDecimal(t, "0", out[0].Profit, "jan profit floored")
	assertDecimal(t, "305.55", out[1].Value, "feb value")
	assertDecimal(t, "55.55", out[1].Profit, "feb profit")

	assert.Nil(t, ValueHistory(nil, holdings, capital))
}
