package csvfile

import (
	"github.com/iho/networth/internal/domain"
)

const (
	txColDate  = 0
	txColAsset = 1
	txColKind  = 2
	txColUnits = 3
	txColCash  = 4
	txColPrice = 5
)

var transactionCodec = codec[domain.Transaction]{
	file:      TransactionsFile,
	header:    []string{"date", "asset_id", "kind", "units", "cash_amount", "unit_price"},
	minFields: 5,
	assetCol:  txColAsset,
	marshal:   MarshalTransaction,
	unmarshal: UnmarshalTransaction,
}

// MarshalTransaction converts a Transaction to a CSV row. Zero cash amounts
// and unit prices are written as empty cells.
func MarshalTransaction(tx domain.Transaction) []string {
	row := make([]string, 6)
	row[txColDate] = tx.Date.Format(dateFormat)
	row[txColAsset] = tx.AssetID
	row[txColKind] = string(tx.Kind)
	row[txColUnits] = formatDecimal(tx.Units)
	if !tx.CashAmount.IsZero() {
		row[txColCash] = tx.CashAmount.String()
	}
	if !tx.UnitPrice.IsZero() {
		row[txColPrice] = tx.UnitPrice.String()
	}
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(rec []string) (domain.Transaction, error) {
	date, err := parseDate(rec[txColDate])
	if err != nil {
		return domain.Transaction{}, err
	}
	if rec[txColAsset] == "" {
		return domain.Transaction{}, errEmptyAssetID
	}
	kind, err := domain.ParseTransactionKind(rec[txColKind])
	if err != nil {
		return domain.Transaction{}, err
	}
	units, err := parseDecimal("units", rec[txColUnits])
	if err != nil {
		return domain.Transaction{}, err
	}
	cash, err := parseDecimal("cash_amount", rec[txColCash])
	if err != nil {
		return domain.Transaction{}, err
	}
	price, err := parseDecimal("unit_price", field(rec, txColPrice))
	if err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		Date:       date,
		AssetID:    rec[txColAsset],
		Kind:       kind,
		Units:      units,
		CashAmount: cash,
		UnitPrice:  price,
	}, nil
}
