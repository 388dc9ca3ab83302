package models

import (
	"fmt"
	"strings"
)

// RiskAppetite is the caller's tolerance for risk. Closed set.
type RiskAppetite string

const (
	RiskLow    RiskAppetite = "Low"
	RiskMedium RiskAppetite = "Medium"
	RiskHigh   RiskAppetite = "High"
)

// InvestmentExperience is the caller's investing experience level. Closed set.
type InvestmentExperience string

const (
	ExperienceBeginner     InvestmentExperience = "Beginner"
	ExperienceIntermediate InvestmentExperience = "Intermediate"
	ExperienceExpert       InvestmentExperience = "Expert"
)

// TimeHorizon is the intended holding period. Closed set.
type TimeHorizon string

const (
	HorizonShort  TimeHorizon = "Short-term"
	HorizonMedium TimeHorizon = "Medium-term"
	HorizonLong   TimeHorizon = "Long-term"
)

// Action is the binary recommendation outcome. Closed set.
type Action string

const (
	ActionBuy    Action = "Buy"
	ActionNotBuy Action = "Not Buy"
)

// Allowed value lists, in declaration order. Used for error reporting and
// must stay in lockstep with the frontend's option values.
var (
	RiskAppetiteValues         = []string{string(RiskLow), string(RiskMedium), string(RiskHigh)}
	InvestmentExperienceValues = []string{string(ExperienceBeginner), string(ExperienceIntermediate), string(ExperienceExpert)}
	TimeHorizonValues          = []string{string(HorizonShort), string(HorizonMedium), string(HorizonLong)}
	ActionValues               = []string{string(ActionBuy), string(ActionNotBuy)}
)

// FieldError reports a single invalid or missing request field.
type FieldError struct {
	Field   string
	Code    string // ERR_REQUIRED or ERR_ONEOF
	Value   string
	Allowed []string
}

func (e *FieldError) Error() string {
	if e.Code == "ERR_REQUIRED" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s must be one of: %s (got %q)", e.Field, strings.Join(e.Allowed, ", "), e.Value)
}

func missingField(field string) *FieldError {
	return &FieldError{Field: field, Code: "ERR_REQUIRED"}
}

func invalidEnum(field, value string, allowed []string) *FieldError {
	return &FieldError{Field: field, Code: "ERR_ONEOF", Value: value, Allowed: allowed}
}

// parseEnum matches v exactly (case-sensitive) against allowed. No
// normalization, no fuzzy matching; frontend and backend option values are
// kept in lockstep and any drift surfaces as a validation error.
func parseEnum(field, v string, allowed []string) (string, error) {
	if v == "" {
		return "", missingField(field)
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", invalidEnum(field, v, allowed)
}

// ParseRiskAppetite parses a raw string into a RiskAppetite.
func ParseRiskAppetite(v string) (RiskAppetite, error) {
	s, err := parseEnum("risk_appetite", v, RiskAppetiteValues)
	return RiskAppetite(s), err
}

// ParseInvestmentExperience parses a raw string into an InvestmentExperience.
func ParseInvestmentExperience(v string) (InvestmentExperience, error) {
	s, err := parseEnum("investment_experience", v, InvestmentExperienceValues)
	return InvestmentExperience(s), err
}

// ParseTimeHorizon parses a raw string into a TimeHorizon.
func ParseTimeHorizon(v string) (TimeHorizon, error) {
	s, err := parseEnum("time_horizon", v, TimeHorizonValues)
	return TimeHorizon(s), err
}

// ParseAction parses a raw string into an Action.
func ParseAction(v string) (Action, error) {
	s, err := parseEnum("suggested_action", v, ActionValues)
	return Action(s), err
}

// StrategyRequest is the validated, typed request envelope. Credential
// overrides are carried separately so secrets never travel with the
// profile data.
type StrategyRequest struct {
	Ticker     string
	Risk       RiskAppetite
	Experience InvestmentExperience
	Horizon    TimeHorizon
}

// Source is a cited evidence item. Ordering is significant: the sequence
// produced by the search provider is preserved end-to-end.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// StrategyResponse is the response envelope returned to the frontend.
type StrategyResponse struct {
	SuggestedAction Action   `json:"suggested_action"`
	Reasoning       string   `json:"reasoning"`
	Sources         []Source `json:"sources,omitempty"`
}

// NewsArticle is one search result from the news provider.
type NewsArticle struct {
	Title   string
	URL     string
	Content string
}

// CompanyOverview is the fundamental data snapshot for a ticker. Fields
// mirror the Alpha Vantage OVERVIEW payload, which reports numerics as
// strings.
type CompanyOverview struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	DividendYield        string `json:"DividendYield"`
	Week52High           string `json:"52WeekHigh"`
	Week52Low            string `json:"52WeekLow"`
}

// Decision is the raw outcome of the decision step before response shaping.
type Decision struct {
	Action    Action
	Reasoning string
}
