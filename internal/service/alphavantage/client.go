package alphavantage

import (
	"context"
	"fmt"
	"time"

	"StratGen/internal/domain/models"
	xhttp "StratGen/pkg/http"
)

const defaultBaseURL = "https://www.alphavantage.co"

// Client implements service.OverviewProvider via the Alpha Vantage
// OVERVIEW function.
type Client struct {
	baseURL string
	client  *xhttp.Client
}

type config struct {
	baseURL string
	timeout time.Duration
}

// Option configures Client.
type Option func(*config)

// WithBaseURL overrides the API endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *config) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates an Alpha Vantage client.
func New(opts ...Option) *Client {
	cfg := &config{
		baseURL: defaultBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{
		baseURL: cfg.baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.timeout)),
	}
}

// Overview fetches company fundamentals for a ticker. Alpha Vantage
// answers unknown tickers with 200 and an empty object, which is surfaced
// as an error so callers do not cache junk.
func (c *Client) Overview(ctx context.Context, apiKey, ticker string) (*models.CompanyOverview, error) {
	var overview models.CompanyOverview
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/query",
		QueryParams: map[string][]string{
			"function": {"OVERVIEW"},
			"symbol":   {ticker},
			"apikey":   {apiKey},
		},
	}, &overview)
	if err != nil {
		return nil, fmt.Errorf("alphavantage overview: %w", err)
	}

	if overview.Symbol == "" {
		return nil, fmt.Errorf("alphavantage overview: no data for %s", ticker)
	}
	return &overview, nil
}
