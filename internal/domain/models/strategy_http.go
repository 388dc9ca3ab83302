package models

import (
	"StratGen/pkg/util"
)

// GenerateStrategyRequest is the wire payload for POST /generate-strategy.
// Credential override fields are pointers: nil means "not sent", a pointer
// to "" means "sent but blank". Both fall through to the server default at
// resolution time, but the distinction is kept so a UI can always render
// the inputs without shadowing a working default. Unknown JSON fields are
// ignored for forward compatibility.
type GenerateStrategyRequest struct {
	TickerSymbol         string `json:"ticker_symbol" validate:"required"`
	RiskAppetite         string `json:"risk_appetite" validate:"required,oneof=Low Medium High"`
	InvestmentExperience string `json:"investment_experience" validate:"required,oneof=Beginner Intermediate Expert"`
	TimeHorizon          string `json:"time_horizon" validate:"required,oneof=Short-term Medium-term Long-term"`

	TavilyAPIKey       *string `json:"tavily_api_key,omitempty"`
	OpenAIAPIKey       *string `json:"openai_api_key,omitempty"`
	AlphaVantageAPIKey *string `json:"alpha_vantage_api_key,omitempty"`
}

// ToDomain converts an already tag-validated wire payload into the typed
// envelope. It is pure: the same payload always yields a structurally
// equal StrategyRequest. The enum parses are a second, explicit layer so
// the closed sets hold even for callers that bypass tag validation (the
// WebSocket path, tests).
func (r *GenerateStrategyRequest) ToDomain() (*StrategyRequest, error) {
	ticker := util.NormalizeTicker(r.TickerSymbol)
	if ticker == "" {
		return nil, missingField("ticker_symbol")
	}

	risk, err := ParseRiskAppetite(r.RiskAppetite)
	if err != nil {
		return nil, err
	}
	exp, err := ParseInvestmentExperience(r.InvestmentExperience)
	if err != nil {
		return nil, err
	}
	horizon, err := ParseTimeHorizon(r.TimeHorizon)
	if err != nil {
		return nil, err
	}

	return &StrategyRequest{
		Ticker:     ticker,
		Risk:       risk,
		Experience: exp,
		Horizon:    horizon,
	}, nil
}
