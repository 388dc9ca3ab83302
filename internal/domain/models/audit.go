package models

import "time"

// StrategyEvent is the audit record emitted after a recommendation is
// produced. It carries no secrets and no reasoning text; it exists so an
// evaluation pipeline can replay decisions against later outcomes.
type StrategyEvent struct {
	Ticker      string    `json:"ticker"`
	Risk        string    `json:"risk_appetite"`
	Experience  string    `json:"investment_experience"`
	Horizon     string    `json:"time_horizon"`
	Action      string    `json:"suggested_action"`
	SourceCount int       `json:"source_count"`
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewStrategyEvent builds an audit event from a completed request.
func NewStrategyEvent(req *StrategyRequest, resp *StrategyResponse, took time.Duration) *StrategyEvent {
	return &StrategyEvent{
		Ticker:      req.Ticker,
		Risk:        string(req.Risk),
		Experience:  string(req.Experience),
		Horizon:     string(req.Horizon),
		Action:      string(resp.SuggestedAction),
		SourceCount: len(resp.Sources),
		DurationMS:  took.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}
}
