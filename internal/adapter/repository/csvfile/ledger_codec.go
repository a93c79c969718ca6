package csvfile

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/domain"
)

var (
	errEmptyID      = errors.New("empty id")
	errEmptyAssetID = errors.New("empty asset_id")
)

// File names inside the data directory.
const (
	AssetsFile            = "assets.csv"
	InitialBalanceFile    = "initial_balance.csv"
	TransactionsFile      = "transactions.csv"
	IncomeFile            = "income.csv"
	ExpensesFile          = "expenses.csv"
	RecurringExpensesFile = "recurring_expenses.csv"
	HoldingsFile          = "holdings.csv"
	PriceHistoryFile      = "price_history.csv"
	LatestPricesFile      = "latest_prices.json"
)

const (
	assetColID     = 0
	assetColName   = 1
	assetColClass  = 2
	assetColLookup = 3
	assetColSource = 4
)

var assetCodec = codec[domain.Asset]{
	file:      AssetsFile,
	header:    []string{"id", "name", "class", "lookup_code", "source"},
	minFields: 4,
	assetCol:  assetColID,
	marshal:   MarshalAsset,
	unmarshal: UnmarshalAsset,
}

// MarshalAsset converts an Asset to a CSV row.
func MarshalAsset(a domain.Asset) []string {
	return []string{a.ID, a.Name, a.Class, a.LookupCode, a.Source}
}

// UnmarshalAsset converts a CSV row to an Asset.
func UnmarshalAsset(rec []string) (domain.Asset, error) {
	if rec[assetColID] == "" {
		return domain.Asset{}, errEmptyID
	}
	return domain.Asset{
		ID:         rec[assetColID],
		Name:       rec[assetColName],
		Class:      rec[assetColClass],
		LookupCode: rec[assetColLookup],
		Source:     field(rec, assetColSource),
	}, nil
}

const (
	balanceColAsset = 0
	balanceColUnits = 1
	balanceColAvg   = 2
)

var balanceCodec = codec[domain.InitialBalance]{
	file:      InitialBalanceFile,
	header:    []string{"asset_id", "units", "avg_cost"},
	minFields: 3,
	assetCol:  balanceColAsset,
	marshal:   MarshalInitialBalance,
	unmarshal: UnmarshalInitialBalance,
}

// MarshalInitialBalance converts an InitialBalance to a CSV row.
func MarshalInitialBalance(b domain.InitialBalance) []string {
	return []string{b.AssetID, formatDecimal(b.Units), formatDecimal(b.AvgCost)}
}

// UnmarshalInitialBalance converts a CSV row to an InitialBalance.
func UnmarshalInitialBalance(rec []string) (domain.InitialBalance, error) {
	units, avg, err := parsePosition(rec, balanceColAsset, balanceColUnits, balanceColAvg)
	if err != nil {
		return domain.InitialBalance{}, err
	}
	return domain.InitialBalance{AssetID: rec[balanceColAsset], Units: units, AvgCost: avg}, nil
}

var holdingCodec = codec[domain.Holding]{
	file:      HoldingsFile,
	header:    []string{"asset_id", "units", "avg_cost"},
	minFields: 3,
	assetCol:  balanceColAsset,
	marshal:   MarshalHolding,
	unmarshal: UnmarshalHolding,
}

// MarshalHolding converts a Holding to a CSV row.
func MarshalHolding(h domain.Holding) []string {
	return []string{h.AssetID, formatDecimal(h.Units), formatDecimal(h.AvgCost)}
}

// UnmarshalHolding converts a CSV row to a Holding.
func UnmarshalHolding(rec []string) (domain.Holding, error) {
	units, avg, err := parsePosition(rec, balanceColAsset, balanceColUnits, balanceColAvg)
	if err != nil {
		return domain.Holding{}, err
	}
	return domain.Holding{AssetID: rec[balanceColAsset], Units: units, AvgCost: avg}, nil
}

func parsePosition(rec []string, colAsset, colUnits, colAvg int) (units, avg decimal.Decimal, err error) {
	if rec[colAsset] == "" {
		return units, avg, errEmptyAssetID
	}
	if units, err = parseDecimal("units", rec[colUnits]); err != nil {
		return units, avg, err
	}
	if avg, err = parseDecimal("avg_cost", rec[colAvg]); err != nil {
		return units, avg, err
	}
	return units, avg, nil
}
