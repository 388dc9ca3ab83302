package usecase

import (
	"context"
	"time"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/models"
	"StratGen/internal/domain/repository"
	"StratGen/internal/domain/service"
	"StratGen/pkg/cache"
	applogger "StratGen/pkg/logger"
)

// Workflow stage names, reported through the progress callback and used as
// metric labels.
const (
	StageOverview = "company_overview"
	StageNews     = "recent_news"
	StageSummary  = "news_summary"
	StageDecision = "decision"
)

const overviewKeyPrefix = "overview"

// WorkflowAdvisor implements the analysis capability as a staged pipeline:
// company overview (cached) -> recent news -> summarization -> structured
// decision. Stages backed by an absent credential are skipped; the decision
// step requires the openai credential and fails unavailable without it.
type WorkflowAdvisor struct {
	searcher   service.NewsSearcher
	summarizer service.NewsSummarizer
	decider    service.StrategyDecider
	overviews  service.OverviewProvider

	cache   cache.Service
	metrics repository.Metrics
	logger  *applogger.Logger

	maxResults  int
	timeout     time.Duration
	overviewTTL time.Duration
}

// WorkflowConfig holds tunables for the workflow pipeline.
type WorkflowConfig struct {
	SearchMaxResults int
	Timeout          time.Duration
	OverviewTTL      time.Duration
}

// NewWorkflowAdvisor creates the workflow advisor.
func NewWorkflowAdvisor(
	searcher service.NewsSearcher,
	summarizer service.NewsSummarizer,
	decider service.StrategyDecider,
	overviews service.OverviewProvider,
	cacheSvc cache.Service,
	metrics repository.Metrics,
	logger *applogger.Logger,
	cfg WorkflowConfig,
) *WorkflowAdvisor {
	if cfg.SearchMaxResults <= 0 {
		cfg.SearchMaxResults = 10
	}
	if cfg.OverviewTTL <= 0 {
		cfg.OverviewTTL = 7 * 24 * time.Hour
	}
	return &WorkflowAdvisor{
		searcher:    searcher,
		summarizer:  summarizer,
		decider:     decider,
		overviews:   overviews,
		cache:       cacheSvc,
		metrics:     metrics,
		logger:      logger,
		maxResults:  cfg.SearchMaxResults,
		timeout:     cfg.Timeout,
		overviewTTL: cfg.OverviewTTL,
	}
}

// Advise implements service.Advisor.
func (a *WorkflowAdvisor) Advise(ctx context.Context, req *models.StrategyRequest, creds credentials.Resolved) (*models.StrategyResponse, error) {
	return a.AdviseStream(ctx, req, creds, nil)
}

// AdviseStream implements service.StreamingAdvisor.
func (a *WorkflowAdvisor) AdviseStream(ctx context.Context, req *models.StrategyRequest, creds credentials.Resolved, onStage service.Progress) (*models.StrategyResponse, error) {
	openaiKey, ok := creds.Lookup(credentials.OpenAI)
	if !ok {
		return nil, service.ErrCapabilityUnavailable
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	emit := func(stage string) {
		if onStage != nil {
			onStage(stage)
		}
	}

	overview := a.fetchOverview(ctx, req.Ticker, creds, emit)
	articles := a.fetchNews(ctx, req.Ticker, creds, emit)

	summary := ""
	if len(articles) > 0 {
		emit(StageSummary)
		start := time.Now()
		var err error
		summary, err = a.summarizer.Summarize(ctx, openaiKey, req.Ticker, articles)
		a.metrics.RecordStageLatency(StageSummary, time.Since(start).Seconds())
		if err != nil {
			a.metrics.RecordError(StageSummary)
			return nil, &service.CapabilityError{Stage: StageSummary, Err: err}
		}
	}

	emit(StageDecision)
	start := time.Now()
	decision, err := a.decider.Decide(ctx, openaiKey, req, summary, overview)
	a.metrics.RecordStageLatency(StageDecision, time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordError(StageDecision)
		return nil, &service.CapabilityError{Stage: StageDecision, Err: err}
	}

	resp := &models.StrategyResponse{
		SuggestedAction: decision.Action,
		Reasoning:       decision.Reasoning,
		Sources:         sourcesFrom(articles),
	}
	return resp, nil
}

// fetchOverview reads fundamentals through the cache. Absent credential or
// provider trouble degrades to no overview; fundamentals are supporting
// context, not a required input.
func (a *WorkflowAdvisor) fetchOverview(ctx context.Context, ticker string, creds credentials.Resolved, emit service.Progress) *models.CompanyOverview {
	key, ok := creds.Lookup(credentials.AlphaVantage)
	if !ok || a.overviews == nil {
		return nil
	}

	emit(StageOverview)
	cacheKey := cache.GenerateKey(overviewKeyPrefix, ticker)

	var cached models.CompanyOverview
	if a.cache != nil {
		if err := a.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached
		}
	}

	start := time.Now()
	overview, err := a.overviews.Overview(ctx, key, ticker)
	a.metrics.RecordStageLatency(StageOverview, time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordError(StageOverview)
		if a.logger != nil {
			a.logger.Warn("overview fetch failed",
				applogger.String("ticker", ticker),
				applogger.Error(err),
			)
		}
		return nil
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, cacheKey, overview, a.overviewTTL); err != nil && a.logger != nil {
			a.logger.Warn("overview cache set failed", applogger.Error(err))
		}
	}
	return overview
}

// fetchNews runs the search stage. Absent credential skips the stage;
// a failed search degrades to a decision without cited evidence rather
// than failing the whole request.
func (a *WorkflowAdvisor) fetchNews(ctx context.Context, ticker string, creds credentials.Resolved, emit service.Progress) []models.NewsArticle {
	key, ok := creds.Lookup(credentials.Tavily)
	if !ok || a.searcher == nil {
		return nil
	}

	emit(StageNews)
	start := time.Now()
	articles, err := a.searcher.SearchNews(ctx, key, ticker, a.maxResults)
	a.metrics.RecordStageLatency(StageNews, time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordError(StageNews)
		if a.logger != nil {
			a.logger.Warn("news search failed",
				applogger.String("ticker", ticker),
				applogger.Error(err),
			)
		}
		return nil
	}
	return articles
}

func sourcesFrom(articles []models.NewsArticle) []models.Source {
	if len(articles) == 0 {
		return nil
	}
	sources := make([]models.Source, 0, len(articles))
	for _, a := range articles {
		sources = append(sources, models.Source{Title: a.Title, URL: a.URL})
	}
	return sources
}
