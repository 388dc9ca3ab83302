package usecase

import (
	"context"
	"errors"
	"testing"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/models"
	"StratGen/internal/domain/service"
	"StratGen/pkg/cache"
)

type fakeMetrics struct{}

func (fakeMetrics) RecordRequest(string)               {}
func (fakeMetrics) RecordDecision(string)              {}
func (fakeMetrics) RecordError(string)                 {}
func (fakeMetrics) RecordStageLatency(string, float64) {}

type fakeSearcher struct {
	gotKey   string
	calls    int
	articles []models.NewsArticle
	err      error
}

func (f *fakeSearcher) SearchNews(_ context.Context, apiKey, _ string, _ int) ([]models.NewsArticle, error) {
	f.gotKey = apiKey
	f.calls++
	return f.articles, f.err
}

type fakeSummarizer struct {
	gotArticles []models.NewsArticle
	summary     string
	err         error
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ string, _ string, articles []models.NewsArticle) (string, error) {
	f.gotArticles = articles
	return f.summary, f.err
}

type fakeDecider struct {
	gotKey      string
	gotSummary  string
	gotOverview *models.CompanyOverview
	decision    *models.Decision
	err         error
}

func (f *fakeDecider) Decide(_ context.Context, apiKey string, _ *models.StrategyRequest, summary string, overview *models.CompanyOverview) (*models.Decision, error) {
	f.gotKey = apiKey
	f.gotSummary = summary
	f.gotOverview = overview
	return f.decision, f.err
}

type fakeOverviews struct {
	calls    int
	overview *models.CompanyOverview
	err      error
}

func (f *fakeOverviews) Overview(_ context.Context, _ string, _ string) (*models.CompanyOverview, error) {
	f.calls++
	return f.overview, f.err
}

var testReq = &models.StrategyRequest{
	Ticker:     "AAPL",
	Risk:       models.RiskMedium,
	Experience: models.ExperienceBeginner,
	Horizon:    models.HorizonLong,
}

func allCreds() credentials.Resolved {
	return credentials.Resolve(nil, credentials.Defaults{
		credentials.Tavily:       "tv-key",
		credentials.OpenAI:       "oa-key",
		credentials.AlphaVantage: "av-key",
	})
}

func newAdvisor(searcher *fakeSearcher, summarizer *fakeSummarizer, decider *fakeDecider, overviews *fakeOverviews, c cache.Service) *WorkflowAdvisor {
	return NewWorkflowAdvisor(searcher, summarizer, decider, overviews, c, fakeMetrics{}, nil, WorkflowConfig{})
}

func TestWorkflowFullPipeline(t *testing.T) {
	searcher := &fakeSearcher{articles: []models.NewsArticle{
		{Title: "a", URL: "https://n.example/a"},
		{Title: "b", URL: "https://n.example/b"},
		{Title: "c", URL: "https://n.example/c"},
	}}
	summarizer := &fakeSummarizer{summary: "mixed sentiment"}
	decider := &fakeDecider{decision: &models.Decision{Action: models.ActionBuy, Reasoning: "ok"}}
	overviews := &fakeOverviews{overview: &models.CompanyOverview{Symbol: "AAPL", Name: "Apple Inc"}}

	a := newAdvisor(searcher, summarizer, decider, overviews, cache.NewMemoryCache())

	var stages []string
	resp, err := a.AdviseStream(context.Background(), testReq, allCreds(), func(s string) {
		stages = append(stages, s)
	})
	if err != nil {
		t.Fatalf("AdviseStream: %v", err)
	}

	if resp.SuggestedAction != models.ActionBuy {
		t.Errorf("action = %q, want Buy", resp.SuggestedAction)
	}
	want := []string{StageOverview, StageNews, StageSummary, StageDecision}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", stages, want)
		}
	}

	// Sources mirror the provider's ranking.
	if len(resp.Sources) != 3 || resp.Sources[0].URL != "https://n.example/a" || resp.Sources[2].URL != "https://n.example/c" {
		t.Errorf("sources out of order: %+v", resp.Sources)
	}
	if searcher.gotKey != "tv-key" {
		t.Errorf("search key = %q, want tv-key", searcher.gotKey)
	}
	if decider.gotKey != "oa-key" {
		t.Errorf("decider key = %q, want oa-key", decider.gotKey)
	}
	if decider.gotSummary != "mixed sentiment" {
		t.Errorf("decider summary = %q", decider.gotSummary)
	}
	if decider.gotOverview == nil || decider.gotOverview.Symbol != "AAPL" {
		t.Errorf("decider overview = %+v", decider.gotOverview)
	}
}

func TestWorkflowRequiresOpenAIKey(t *testing.T) {
	a := newAdvisor(&fakeSearcher{}, &fakeSummarizer{}, &fakeDecider{}, &fakeOverviews{}, nil)

	creds := credentials.Resolve(nil, credentials.Defaults{credentials.Tavily: "tv-key"})
	_, err := a.Advise(context.Background(), testReq, creds)
	if !errors.Is(err, service.ErrCapabilityUnavailable) {
		t.Fatalf("err = %v, want ErrCapabilityUnavailable", err)
	}
}

func TestWorkflowSkipsSearchWithoutTavilyKey(t *testing.T) {
	searcher := &fakeSearcher{articles: []models.NewsArticle{{Title: "a", URL: "u"}}}
	summarizer := &fakeSummarizer{}
	decider := &fakeDecider{decision: &models.Decision{Action: models.ActionNotBuy, Reasoning: "no data"}}

	a := newAdvisor(searcher, summarizer, decider, &fakeOverviews{}, nil)

	creds := credentials.Resolve(nil, credentials.Defaults{credentials.OpenAI: "oa-key"})
	resp, err := a.Advise(context.Background(), testReq, creds)
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if searcher.calls != 0 {
		t.Error("searcher called without a credential")
	}
	if summarizer.gotArticles != nil {
		t.Error("summarizer called despite no articles")
	}
	if len(resp.Sources) != 0 {
		t.Errorf("sources = %+v, want none", resp.Sources)
	}
}

func TestWorkflowSearchFailureDegrades(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("upstream 500")}
	decider := &fakeDecider{decision: &models.Decision{Action: models.ActionNotBuy, Reasoning: "no evidence"}}

	a := newAdvisor(searcher, &fakeSummarizer{}, decider, &fakeOverviews{}, nil)

	resp, err := a.Advise(context.Background(), testReq, allCreds())
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("sources = %+v, want none after search failure", resp.Sources)
	}
	if decider.gotSummary != "" {
		t.Errorf("summary = %q, want empty", decider.gotSummary)
	}
}

func TestWorkflowSummaryFailure(t *testing.T) {
	searcher := &fakeSearcher{articles: []models.NewsArticle{{Title: "a", URL: "u"}}}
	summarizer := &fakeSummarizer{err: errors.New("model overloaded")}

	a := newAdvisor(searcher, summarizer, &fakeDecider{}, &fakeOverviews{}, nil)

	_, err := a.Advise(context.Background(), testReq, allCreds())
	var capErr *service.CapabilityError
	if !errors.As(err, &capErr) || capErr.Stage != StageSummary {
		t.Fatalf("err = %v, want CapabilityError at %s", err, StageSummary)
	}
}

func TestWorkflowDecisionFailure(t *testing.T) {
	decider := &fakeDecider{err: errors.New("schema violation")}

	a := newAdvisor(&fakeSearcher{}, &fakeSummarizer{}, decider, &fakeOverviews{}, nil)

	creds := credentials.Resolve(nil, credentials.Defaults{credentials.OpenAI: "oa-key"})
	_, err := a.Advise(context.Background(), testReq, creds)
	var capErr *service.CapabilityError
	if !errors.As(err, &capErr) || capErr.Stage != StageDecision {
		t.Fatalf("err = %v, want CapabilityError at %s", err, StageDecision)
	}
}

func TestWorkflowOverviewCached(t *testing.T) {
	overviews := &fakeOverviews{overview: &models.CompanyOverview{Symbol: "AAPL"}}
	decider := &fakeDecider{decision: &models.Decision{Action: models.ActionNotBuy, Reasoning: "r"}}

	a := newAdvisor(&fakeSearcher{}, &fakeSummarizer{}, decider, overviews, cache.NewMemoryCache())

	creds := allCreds()
	for i := 0; i < 3; i++ {
		if _, err := a.Advise(context.Background(), testReq, creds); err != nil {
			t.Fatalf("Advise #%d: %v", i, err)
		}
	}
	if overviews.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (cache should absorb repeats)", overviews.calls)
	}
}

func TestWorkflowOverviewFailureDegrades(t *testing.T) {
	overviews := &fakeOverviews{err: errors.New("rate limited")}
	decider := &fakeDecider{decision: &models.Decision{Action: models.ActionNotBuy, Reasoning: "r"}}

	a := newAdvisor(&fakeSearcher{}, &fakeSummarizer{}, decider, overviews, nil)

	if _, err := a.Advise(context.Background(), testReq, allCreds()); err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if decider.gotOverview != nil {
		t.Errorf("overview = %+v, want nil after provider failure", decider.gotOverview)
	}
}

func TestStaticAdvisorAlwaysNotBuy(t *testing.T) {
	a := NewStaticAdvisor()

	var stages []string
	resp, err := a.AdviseStream(context.Background(), testReq, credentials.Resolved{}, func(s string) {
		stages = append(stages, s)
	})
	if err != nil {
		t.Fatalf("AdviseStream: %v", err)
	}
	if resp.SuggestedAction != models.ActionNotBuy {
		t.Errorf("action = %q, want Not Buy", resp.SuggestedAction)
	}
	if resp.Reasoning == "" {
		t.Error("reasoning is empty")
	}
	if len(resp.Sources) != 0 {
		t.Errorf("sources = %+v, want none", resp.Sources)
	}
	if len(stages) != 1 || stages[0] != StageDecision {
		t.Errorf("stages = %v, want [%s]", stages, StageDecision)
	}
}
