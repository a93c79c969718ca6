package usecase

import "time"

const (
	// DefaultSourceName is used for assets that do not name a price source.
	DefaultSourceName = "quefondos"

	// BreakdownMonths is the trailing window of the expense breakdown.
	BreakdownMonths = 6

	// Default bounds of the random pause after each price fetch.
	DefaultThrottleMin = 500 * time.Millisecond
	DefaultThrottleMax = 1500 * time.Millisecond

	// Price fetch outcomes, used as metric labels and in refresh reports.
	FetchStatusOK     = "ok"
	FetchStatusFailed = "failed"
	FetchStatusCash   = "cash"
)
