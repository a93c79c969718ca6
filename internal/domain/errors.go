package domain

import (
	"errors"
	"fmt"
)

var (
	// Storage errors
	ErrMissingFile         = errors.New("ledger file not found")
	ErrAssetCatalogMissing = errors.New("asset catalog is missing")
	ErrParse               = errors.New("malformed ledger row")

	// Market errors
	ErrUpstreamUnavailable = errors.New("price source unavailable")

	// Integrity errors
	ErrIntegrityViolation = errors.New("reference to unknown asset")
	ErrUnknownKind        = errors.New("unknown transaction kind")
)

// RowError describes a ledger row that could not be decoded.
type RowError struct {
	File    string
	Line    int
	AssetID string // empty when the row was too broken to tell
	Err     error
}

func (e RowError) Error() string {
	if e.AssetID != "" {
		return fmt.Sprintf("%s:%d (%s): %v", e.File, e.Line, e.AssetID, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

// Unwrap allows errors.Is(err, ErrParse).
func (e RowError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
