package usecase

import (
	"context"
	"fmt"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/models"
	"StratGen/internal/domain/service"
)

// StaticAdvisor is a placeholder capability that needs no credentials and
// always declines to recommend a purchase. It keeps the service runnable
// end to end before any real analysis is wired in, and doubles as the
// conservative fallback deployment mode.
type StaticAdvisor struct{}

// NewStaticAdvisor creates the placeholder advisor.
func NewStaticAdvisor() *StaticAdvisor {
	return &StaticAdvisor{}
}

// Advise implements service.Advisor.
func (a *StaticAdvisor) Advise(ctx context.Context, req *models.StrategyRequest, creds credentials.Resolved) (*models.StrategyResponse, error) {
	return a.AdviseStream(ctx, req, creds, nil)
}

// AdviseStream implements service.StreamingAdvisor.
func (a *StaticAdvisor) AdviseStream(ctx context.Context, req *models.StrategyRequest, _ credentials.Resolved, onStage service.Progress) (*models.StrategyResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if onStage != nil {
		onStage(StageDecision)
	}

	reasoning := fmt.Sprintf(
		"Based on your profile (Risk: %s, Experience: %s, Horizon: %s), this is a placeholder recommendation for %s. AI implementation coming soon.",
		req.Risk, req.Experience, req.Horizon, req.Ticker,
	)

	return &models.StrategyResponse{
		SuggestedAction: models.ActionNotBuy,
		Reasoning:       reasoning,
	}, nil
}
