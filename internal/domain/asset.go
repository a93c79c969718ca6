package domain

import "strings"

// Asset classes with a special meaning in the summary. Any other class is
// accepted and counted as stable value.
const (
	AssetClassCash   = "cash"
	AssetClassEquity = "equity"
)

var riskMarkers = []string{"equity", "stock", "variable", "acción", "accion"}

// Asset is a row of the asset catalog. It is reference data edited by the
// user and never written by the engine.
type Asset struct {
	ID         string
	Name       string
	Class      string
	LookupCode string // ISIN or ticker handed to the price source
	Source     string // price source name, empty means default
}

func normalizeClass(class string) string {
	return strings.ToLower(strings.TrimSpace(class))
}

// IsRisk reports whether the asset counts toward the equity (risk) bucket.
func (a Asset) IsRisk() bool {
	class := normalizeClass(a.Class)
	for _, marker := range riskMarkers {
		if strings.Contains(class, marker) {
			return true
		}
	}
	return false
}

// IsCash reports whether the asset is a liquid cash balance.
func (a Asset) IsCash() bool {
	return normalizeClass(a.Class) == AssetClassCash
}

// IsCashLike reports whether the asset is priced at 1.0 without asking a
// price source.
func (a Asset) IsCashLike() bool {
	if strings.Contains(normalizeClass(a.Class), AssetClassCash) {
		return true
	}
	return strings.Contains(strings.ToLower(a.LookupCode), "cash")
}

// AssetCatalog indexes assets by ID while keeping catalog order.
type AssetCatalog struct {
	assets []Asset
	byID   map[string]Asset
}

// NewAssetCatalog creates a catalog. Later duplicates replace earlier rows.
func NewAssetCatalog(assets []Asset) *AssetCatalog {
	byID := make(map[string]Asset, len(assets))
	for _, a := range assets {
		byID[a.ID] = a
	}
	return &AssetCatalog{assets: assets, byID: byID}
}

// All returns assets in catalog order.
func (c *AssetCatalog) All() []Asset {
	return c.assets
}

// Get returns an asset by ID.
func (c *AssetCatalog) Get(id string) (Asset, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Exists reports whether an asset ID is in the catalog.
func (c *AssetCatalog) Exists(id string) bool {
	_, ok := c.byID[id]
	return ok
}
