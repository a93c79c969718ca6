package pricesource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// YahooName is the asset source name of Yahoo Finance.
const YahooName = "yahoo"

// DefaultYahooURL is the chart endpoint; the ticker is appended to the path.
const DefaultYahooURL = "https://query1.finance.yahoo.com/v8/finance/chart"

const yahooPricePath = "$.chart.result[0].meta.regularMarketPrice"

// Yahoo reads the regular market price from the Yahoo Finance chart API.
type Yahoo struct {
	client  *Client
	baseURL string
}

// NewYahoo creates a Yahoo source. An empty baseURL uses the public API.
func NewYahoo(client *Client, baseURL string) *Yahoo {
	if baseURL == "" {
		baseURL = DefaultYahooURL
	}
	return &Yahoo{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Name returns the source name.
func (y *Yahoo) Name() string { return YahooName }

// FetchPrice returns the regular market price of ticker.
func (y *Yahoo) FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, bool, error) {
	if ticker == "" {
		return decimal.Zero, false, nil
	}

	body, err := y.client.get(ctx, y.baseURL+"/"+url.PathEscape(ticker)+"?interval=1d&range=1d")
	if errors.Is(err, errNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("yahoo %s: %w", ticker, err)
	}

	price, ok, err := ParseYahooChart(body)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("yahoo %s: %w", ticker, err)
	}
	return price, ok, nil
}

// ParseYahooChart extracts the regular market price from a chart response.
// A response without a result (unknown ticker) is not an error.
func ParseYahooChart(body []byte) (decimal.Decimal, bool, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return decimal.Zero, false, fmt.Errorf("decoding chart: %w", err)
	}

	val, err := jsonpath.Get(yahooPricePath, doc)
	if err != nil {
		return decimal.Zero, false, nil
	}
	// jsonpath may wrap a single answer in a list
	if list, ok := val.([]any); ok {
		if len(list) == 0 {
			return decimal.Zero, false, nil
		}
		val = list[0]
	}

	f, ok := val.(float64)
	if !ok || f <= 0 {
		return decimal.Zero, false, nil
	}
	return decimal.NewFromFloat(f), true, nil
}
