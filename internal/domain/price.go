package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PriceSnapshot is the latest known price per asset ID.
type PriceSnapshot map[string]decimal.Decimal

// Price returns the price of an asset, zero when unknown.
func (s PriceSnapshot) Price(assetID string) decimal.Decimal {
	return s[assetID]
}

// PricePoint is one row of the price history.
type PricePoint struct {
	Date    time.Time
	AssetID string
	Price   decimal.Decimal
}

// PointsForDay turns a snapshot into history rows dated day, ordered by asset.
func (s PriceSnapshot) PointsForDay(day time.Time) []PricePoint {
	points := make([]PricePoint, 0, len(s))
	for id, p := range s {
		points = append(points, PricePoint{Date: Day(day), AssetID: id, Price: p})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].AssetID < points[j].AssetID })
	return points
}

// ReplaceDay drops every point dated day from history and appends points.
func ReplaceDay(history []PricePoint, day time.Time, points []PricePoint) []PricePoint {
	day = Day(day)
	out := make([]PricePoint, 0, len(history)+len(points))
	for _, p := range history {
		if !Day(p.Date).Equal(day) {
			out = append(out, p)
		}
	}
	return append(out, points...)
}
