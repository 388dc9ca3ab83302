package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"StratGen/internal/domain/models"
	xhttp "StratGen/pkg/http"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements service.NewsSummarizer and service.StrategyDecider via
// the OpenAI chat completions API. Keys are passed per call.
type Client struct {
	baseURL string
	model   string
	client  *xhttp.Client
}

type config struct {
	baseURL string
	model   string
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

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *config) {
		if model != "" {
			c.model = model
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

// New creates an OpenAI client.
func New(opts ...Option) *Client {
	cfg := &config{
		baseURL: defaultBaseURL,
		model:   "gpt-4o-mini",
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{
		baseURL: cfg.baseURL,
		model:   cfg.model,
		client:  xhttp.NewClient(xhttp.WithTimeout(cfg.timeout)),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) complete(ctx context.Context, apiKey string, req chatRequest) (string, error) {
	var resp chatResponse
	err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + apiKey,
		},
		Body: req,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// Summarize condenses news articles into insights relevant to an
// investment decision.
func (c *Client) Summarize(ctx context.Context, apiKey, ticker string, articles []models.NewsArticle) (string, error) {
	var sb strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&sb, "%d. %s (%s)\n%s\n\n", i+1, a.Title, a.URL, a.Content)
	}

	prompt := fmt.Sprintf(
		"Summarize the following news articles about %s stock:\n%s\nProvide key insights relevant to investment decisions.",
		ticker, sb.String(),
	)

	return c.complete(ctx, apiKey, chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
}

// decisionSchema constrains the model output to the response closed set.
var decisionSchema = json.RawMessage(`{
  "type": "json_schema",
  "json_schema": {
    "name": "investment_response",
    "strict": true,
    "schema": {
      "type": "object",
      "properties": {
        "suggested_action": {"type": "string", "enum": ["Buy", "Not Buy"]},
        "reasoning": {"type": "string"}
      },
      "required": ["suggested_action", "reasoning"],
      "additionalProperties": false
    }
  }
}`)

const deciderSystemPrompt = "You are a research assistant that helps users decide on investment strategies. " +
	"You will analyze recent news and fundamentals for a given ticker symbol. " +
	"Based on this information and the user's risk appetite, investment experience, and time horizon, " +
	"you will suggest an investment action: Buy or Not Buy. " +
	"Provide a detailed reasoning for your suggestion."

// Decide produces the structured recommendation.
func (c *Client) Decide(ctx context.Context, apiKey string, req *models.StrategyRequest, newsSummary string, overview *models.CompanyOverview) (*models.Decision, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Ticker Symbol: %s\n", req.Ticker)
	fmt.Fprintf(&sb, "Risk Appetite: %s\n", req.Risk)
	fmt.Fprintf(&sb, "Investment Experience: %s\n", req.Experience)
	fmt.Fprintf(&sb, "Time Horizon: %s\n", req.Horizon)
	if overview != nil {
		fmt.Fprintf(&sb, "Company: %s | Sector: %s | Industry: %s | Market Cap: %s | P/E: %s\n",
			overview.Name, overview.Sector, overview.Industry, overview.MarketCapitalization, overview.PERatio)
	}
	if newsSummary != "" {
		fmt.Fprintf(&sb, "Recent News: %s\n", newsSummary)
	}

	content, err := c.complete(ctx, apiKey, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: deciderSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
		ResponseFormat: decisionSchema,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		SuggestedAction string `json:"suggested_action"`
		Reasoning       string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("decode decision: %w", err)
	}

	action, err := models.ParseAction(out.SuggestedAction)
	if err != nil {
		return nil, fmt.Errorf("decision outside closed set: %w", err)
	}

	return &models.Decision{Action: action, Reasoning: out.Reasoning}, nil
}
