package report

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in currency, e.g. "€1,234.56". Unknown currency codes
// fall back to the plain amount followed by the code.
func Money(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2) + " " + currency
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	return money.New(amount.Mul(factor).Round(0).IntPart(), cur.Code).Display()
}

// Percent formats a percentage with two decimals.
func Percent(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
