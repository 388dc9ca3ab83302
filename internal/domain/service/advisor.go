package service

import (
	"context"
	"errors"
	"fmt"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/models"
)

// ErrCapabilityUnavailable signals that the analysis capability cannot run
// at all, typically because no usable credential exists for a required
// function. Distinct from a capability that ran and failed.
var ErrCapabilityUnavailable = errors.New("analysis capability unavailable")

// CapabilityError wraps a failure inside the analysis capability. The
// underlying cause is for logs only and must not reach the caller.
type CapabilityError struct {
	Stage string
	Err   error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability stage %s: %v", e.Stage, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// Progress is invoked before each workflow stage with the stage name.
type Progress func(stage string)

// Advisor is the analysis capability: given a validated request and the
// resolved credentials for this call, produce a recommendation. Implementors
// own their timeout policy; the HTTP layer imposes none of its own.
type Advisor interface {
	Advise(ctx context.Context, req *models.StrategyRequest, creds credentials.Resolved) (*models.StrategyResponse, error)
}

// StreamingAdvisor additionally reports per-stage progress, used by the
// WebSocket transport.
type StreamingAdvisor interface {
	Advisor
	AdviseStream(ctx context.Context, req *models.StrategyRequest, creds credentials.Resolved, onStage Progress) (*models.StrategyResponse, error)
}

// NewsSearcher retrieves recent news about a ticker, ranked by the
// provider. Result order is preserved through to the response sources.
type NewsSearcher interface {
	SearchNews(ctx context.Context, apiKey, ticker string, maxResults int) ([]models.NewsArticle, error)
}

// NewsSummarizer condenses search results into key insights for the
// decision step.
type NewsSummarizer interface {
	Summarize(ctx context.Context, apiKey, ticker string, articles []models.NewsArticle) (string, error)
}

// StrategyDecider produces the final structured recommendation.
type StrategyDecider interface {
	Decide(ctx context.Context, apiKey string, req *models.StrategyRequest, newsSummary string, overview *models.CompanyOverview) (*models.Decision, error)
}

// OverviewProvider fetches fundamental data for a ticker.
type OverviewProvider interface {
	Overview(ctx context.Context, apiKey, ticker string) (*models.CompanyOverview, error)
}
