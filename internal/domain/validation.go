package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAssetID  = errors.New("invalid asset id")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrInvalidDay      = errors.New("invalid day of month")
	ErrDuplicateAsset  = errors.New("duplicate asset id")
	ErrInvalidCategory = errors.New("invalid category")
)

// Validation constants
const (
	MaxAssetIDLength = 64
	MaxDayOfMonth    = 31
)

// ValidateAssetID validates an asset identifier.
func ValidateAssetID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrInvalidAssetID)
	}
	if len(id) > MaxAssetIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidAssetID, MaxAssetIDLength)
	}
	if strings.ContainsAny(id, ",\n\r") {
		return fmt.Errorf("%w: %q contains forbidden characters", ErrInvalidAssetID, id)
	}
	return nil
}

// ValidateNonNegative validates a unit count, price or cash amount.
func ValidateNonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s is %s", ErrNegativeAmount, field, v)
	}
	return nil
}

// ValidateTransaction validates a transaction row.
func ValidateTransaction(tx Transaction) error {
	if err := ValidateAssetID(tx.AssetID); err != nil {
		return err
	}
	if err := ValidateNonNegative("units", tx.Units); err != nil {
		return err
	}
	if err := ValidateNonNegative("cash_amount", tx.CashAmount); err != nil {
		return err
	}
	return ValidateNonNegative("unit_price", tx.UnitPrice)
}

// ValidateRecurringExpense validates a recurring-expense template.
func ValidateRecurringExpense(tpl RecurringExpense) error {
	if tpl.Day < 1 || tpl.Day > MaxDayOfMonth {
		return fmt.Errorf("%w: %d", ErrInvalidDay, tpl.Day)
	}
	if strings.TrimSpace(tpl.Category) == "" {
		return fmt.Errorf("%w: category cannot be empty", ErrInvalidCategory)
	}
	return nil
}

// ValidateCatalog reports assets with an invalid or repeated ID.
func ValidateCatalog(assets []Asset) []error {
	var errs []error
	seen := make(map[string]bool, len(assets))
	for _, a := range assets {
		if err := ValidateAssetID(a.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[a.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateAsset, a.ID))
		}
		seen[a.ID] = true
	}
	return errs
}
