package tavily

import (
	"context"
	"fmt"
	"time"

	"StratGen/internal/domain/models"
	xhttp "StratGen/pkg/http"
)

const defaultBaseURL = "https://api.tavily.com"

// Client implements service.NewsSearcher backed by the Tavily search API.
// The API key is passed per call; the client holds no credentials.
type Client struct {
	baseURL string
	client  *xhttp.Client
}

// New creates a Tavily client. timeout <= 0 falls back to 30s.
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

type searchRequest struct {
	Query             string `json:"query"`
	MaxResults        int    `json:"max_results"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
	IncludeImages     bool   `json:"include_images"`
}

type searchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// SearchNews queries recent news about the ticker. Results come back in
// provider rank order, which callers must preserve.
func (c *Client) SearchNews(ctx context.Context, apiKey, ticker string, maxResults int) ([]models.NewsArticle, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	var resp searchResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/search",
		Headers: map[string]string{
			"Authorization": "Bearer " + apiKey,
		},
		Body: searchRequest{
			Query:             fmt.Sprintf("Recent news about %s stock", ticker),
			MaxResults:        maxResults,
			SearchDepth:       "basic",
			IncludeAnswer:     false,
			IncludeRawContent: true,
			IncludeImages:     false,
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}

	articles := make([]models.NewsArticle, 0, len(resp.Results))
	for _, r := range resp.Results {
		articles = append(articles, models.NewsArticle{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
		})
	}
	return articles, nil
}
