package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the kind of a ledger transaction.
type TransactionKind string

const (
	KindBuy         TransactionKind = "BUY"
	KindSell        TransactionKind = "SELL"
	KindValueAdjust TransactionKind = "VALUE_ADJUST"
)

// ParseTransactionKind parses a kind, ignoring case and surrounding spaces.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch k := TransactionKind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindBuy, KindSell, KindValueAdjust:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// InitialBalance is the bootstrap position of one asset.
type InitialBalance struct {
	AssetID string
	Units   decimal.Decimal
	AvgCost decimal.Decimal
}

// Cost returns units × average cost.
func (b InitialBalance) Cost() decimal.Decimal {
	return b.Units.Mul(b.AvgCost)
}

// Transaction is an append-only ledger event. Absent numeric cells are zero.
type Transaction struct {
	Date       time.Time
	AssetID    string
	Kind       TransactionKind
	Units      decimal.Decimal
	CashAmount decimal.Decimal
	UnitPrice  decimal.Decimal
}

// TradePrice returns the unit price, deriving it from cash amount and units
// when it was not recorded.
func (t Transaction) TradePrice() decimal.Decimal {
	if t.UnitPrice.IsZero() && t.Units.IsPositive() && t.CashAmount.IsPositive() {
		return t.CashAmount.Div(t.Units)
	}
	return t.UnitPrice
}
