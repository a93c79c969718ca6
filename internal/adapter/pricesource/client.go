package pricesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

const maxBodyBytes = 4 << 20

var errNotFound = errors.New("instrument not found")

// Client performs GET requests against price sites.
type Client struct {
	http      *http.Client
	timeout   time.Duration
	userAgent string
	retrier   *Retrier
	logger    zerolog.Logger
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Timeout    time.Duration
	UserAgent  string
	MaxRetries int
}

// NewClient creates a new Client. httpClient may be nil.
func NewClient(httpClient *http.Client, cfg ClientConfig, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Client{
		http:      httpClient,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		retrier:   NewRetrier(cfg.MaxRetries, logger),
		logger:    logger,
	}
}

// get fetches url and returns its body. A 404 yields errNotFound.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.retrier.Retry(ctx, func() error {
		b, err := c.getOnce(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return body, nil
}
