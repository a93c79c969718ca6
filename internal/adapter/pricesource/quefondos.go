package pricesource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// QueFondosName is the asset source name of QueFondos.
const QueFondosName = "quefondos"

// DefaultQueFondosURL is the fund page looked up by ISIN.
const DefaultQueFondosURL = "https://www.quefondos.com/es/fondos/ficha/index.html"

var numberPattern = regexp.MustCompile(`[\d.,]+`)

// QueFondos scrapes fund net asset values from quefondos.com.
type QueFondos struct {
	client  *Client
	baseURL string
}

// NewQueFondos creates a QueFondos source. An empty baseURL uses the public site.
func NewQueFondos(client *Client, baseURL string) *QueFondos {
	if baseURL == "" {
		baseURL = DefaultQueFondosURL
	}
	return &QueFondos{client: client, baseURL: baseURL}
}

// Name returns the source name.
func (q *QueFondos) Name() string { return QueFondosName }

// FetchPrice returns the price shown on the fund page of isin.
func (q *QueFondos) FetchPrice(ctx context.Context, isin string) (decimal.Decimal, bool, error) {
	if isin == "" {
		return decimal.Zero, false, nil
	}

	body, err := q.client.get(ctx, q.baseURL+"?isin="+url.QueryEscape(isin))
	if errors.Is(err, errNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("quefondos %s: %w", isin, err)
	}

	price, ok, err := ParseQueFondosPage(bytes.NewReader(body))
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("quefondos %s: %w", isin, err)
	}
	return price, ok, nil
}

// ParseQueFondosPage returns the first price found in a
// <span class="floatright"> holding an EUR or USD amount, e.g. "110,020000 EUR".
func ParseQueFondosPage(r io.Reader) (decimal.Decimal, bool, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parsing html: %w", err)
	}

	for _, text := range floatRightTexts(doc) {
		if !strings.Contains(text, "EUR") && !strings.Contains(text, "USD") {
			continue
		}
		if price, ok := ParseEuropeanNumber(text); ok {
			return price, true, nil
		}
	}
	return decimal.Zero, false, nil
}

// ParseEuropeanNumber reads the first number of s written with dot thousands
// and a decimal comma ("1.234,56" is 1234.56).
func ParseEuropeanNumber(s string) (decimal.Decimal, bool) {
	match := numberPattern.FindString(s)
	if match == "" {
		return decimal.Zero, false
	}
	clean := strings.ReplaceAll(strings.ReplaceAll(match, ".", ""), ",", ".")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func floatRightTexts(n *html.Node) []string {
	var texts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "span" && hasClass(n, "floatright") {
			texts = append(texts, strings.TrimSpace(textContent(n)))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return texts
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
