package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const valuePrecision int32 = 2

// Position is a holding valued at the latest price.
type Position struct {
	AssetID     string          `json:"asset_id"`
	Name        string          `json:"name"`
	Class       string          `json:"class"`
	Units       decimal.Decimal `json:"units"`
	AvgCost     decimal.Decimal `json:"avg_cost"`
	Price       decimal.Decimal `json:"price"`
	MarketValue decimal.Decimal `json:"market_value"`
	Cost        decimal.Decimal `json:"cost"`
	Gain        decimal.Decimal `json:"gain"`
	ReturnPct   decimal.Decimal `json:"return_pct"`
}

// Summary aggregates positions into portfolio-level figures.
type Summary struct {
	NetWorth       decimal.Decimal `json:"net_worth"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalReturnPct decimal.Decimal `json:"total_return_pct"`
	EquityValue    decimal.Decimal `json:"equity_value"`
	StableValue    decimal.Decimal `json:"stable_value"`
	RiskPct        decimal.Decimal `json:"risk_pct"`
	LiquidValue    decimal.Decimal `json:"liquid_value"`
	RunwayMonths   decimal.Decimal `json:"runway_months"`
	SavingsRate    decimal.Decimal `json:"savings_rate"`
	Positions      []Position      `json:"positions"`
}

// Value joins holdings with the catalog and prices. Runway and savings rate
// are left for the caller, which owns the cash-flow averages.
func Value(holdings Holdings, catalog *AssetCatalog, prices PriceSnapshot) *Summary {
	s := &Summary{Positions: make([]Position, 0, len(holdings))}

	for _, h := range holdings.Sorted() {
		asset, _ := catalog.Get(h.AssetID)
		price := prices.Price(h.AssetID)

		p := Position{
			AssetID:     h.AssetID,
			Name:        asset.Name,
			Class:       asset.Class,
			Units:       h.Units,
			AvgCost:     h.AvgCost,
			Price:       price,
			MarketValue: h.Units.Mul(price),
			Cost:        h.Cost(),
		}
		p.Gain = p.MarketValue.Sub(p.Cost)
		p.ReturnPct = percentOf(p.Gain, p.Cost)
		s.Positions = append(s.Positions, p)

		s.NetWorth = s.NetWorth.Add(p.MarketValue)
		s.TotalCost = s.TotalCost.Add(p.Cost)
		if asset.IsRisk() {
			s.EquityValue = s.EquityValue.Add(p.MarketValue)
		}
		if asset.IsCash() {
			s.LiquidValue = s.LiquidValue.Add(p.MarketValue)
		}
	}

	s.StableValue = s.NetWorth.Sub(s.EquityValue)
	s.TotalReturnPct = percentOf(s.NetWorth.Sub(s.TotalCost), s.TotalCost)
	if s.NetWorth.IsPositive() {
		s.RiskPct = s.EquityValue.Div(s.NetWorth).Mul(hundred)
	}

	sort.SliceStable(s.Positions, func(i, j int) bool {
		return s.Positions[i].MarketValue.GreaterThan(s.Positions[j].MarketValue)
	})
	return s
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// ValuePoint is one day of the market value history.
type ValuePoint struct {
	Date     time.Time       `json:"date"`
	Value    decimal.Decimal `json:"value"`
	Invested decimal.Decimal `json:"invested"`
	Profit   decimal.Decimal `json:"profit"`
}

// ValueHistory values the current holdings at every historical price date and
// splits each value into invested capital and profit. Units are today's, so
// past values are an approximation.
func ValueHistory(history []PricePoint, holdings Holdings, capital []CapitalPoint) []ValuePoint {
	if len(history) == 0 {
		return nil
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, p := range history {
		day := Day(p.Date)
		units := holdings[p.AssetID].Units
		totals[day] = totals[day].Add(p.Price.Mul(units))
	}

	days := make([]time.Time, 0, len(totals))
	for day := range totals {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]ValuePoint, len(days))
	for i, day := range days {
		value := totals[day].Round(valuePrecision)
		invested := CapitalAsOf(capital, day).Round(valuePrecision)
		out[i] = ValuePoint{
			Date:     day,
			Value:    value,
			Invested: invested,
			Profit:   decimal.Max(decimal.Zero, value.Sub(invested)),
		}
	}
	return out
}
