package di

import (
	"context"
	"fmt"
	"time"

	"StratGen/internal/credentials"
	"StratGen/internal/domain/repository"
	"StratGen/internal/domain/service"
	"StratGen/internal/handler/api"
	internalrepo "StratGen/internal/repository"
	"StratGen/internal/service/alphavantage"
	"StratGen/internal/service/openai"
	"StratGen/internal/service/ratelimit"
	"StratGen/internal/service/tavily"
	"StratGen/internal/usecase"
	"StratGen/pkg/cache"
	pkgch "StratGen/pkg/clickhouse"
	"StratGen/pkg/config"
	pkgkafka "StratGen/pkg/kafka"
	"StratGen/pkg/logger"
	"StratGen/pkg/metrics"
	"StratGen/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the cache backend for company overviews.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "memory", "":
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MaxSize),
		), nil
	case "redis":
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
	case "layered":
		redisCache, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
		)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(redisCache,
			cache.WithLayeredMemorySize(cfg.Cache.MaxSize),
		), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// ProvideKafkaProducer creates a Kafka producer, or nil when the audit
// backend does not use Kafka.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Audit.Backend != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideClickHouseClient creates a ClickHouse client with the audit
// schema in place, or nil when the audit backend does not use ClickHouse.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Audit.Backend != "clickhouse" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.SchemaStatements(cfg.ClickHouse.Table)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideAuditRecorder wires the configured audit sink.
func ProvideAuditRecorder(
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.AuditRecorder {
	var pub repository.AuditPublisher
	var store repository.AuditStorage

	switch cfg.Audit.Backend {
	case "kafka":
		pub = internalrepo.NewKafkaAuditPublisher(producer, cfg.Kafka.Topic)
	case "clickhouse":
		store = internalrepo.NewClickHouseAuditStorage(chClient.DB(), cfg.ClickHouse.Table)
	}
	return usecase.NewAuditRecorder(pub, store, m, cfg.Audit.Backend)
}

// ProvideAdvisor creates the analysis capability configured by
// advisor.type.
func ProvideAdvisor(
	cfg *config.Config,
	cacheSvc cache.Service,
	m repository.Metrics,
	log *logger.Logger,
) service.StreamingAdvisor {
	if cfg.Advisor.Type == "static" {
		return usecase.NewStaticAdvisor()
	}

	searcher := tavily.New()
	llm := openai.New(openai.WithModel(cfg.Advisor.Model))
	overviews := alphavantage.New()

	return usecase.NewWorkflowAdvisor(
		searcher,
		llm,
		llm,
		overviews,
		cacheSvc,
		m,
		log,
		usecase.WorkflowConfig{
			SearchMaxResults: cfg.Advisor.SearchMaxResults,
			Timeout:          cfg.Advisor.Timeout,
			OverviewTTL:      cfg.Advisor.OverviewTTL,
		},
	)
}

// ProvideDefaults maps server-side credentials into the resolver's
// default set. Empty values stay empty and resolve as absent.
func ProvideDefaults(cfg *config.Config) credentials.Defaults {
	return credentials.Defaults{
		credentials.Tavily:       cfg.Credentials.TavilyAPIKey,
		credentials.OpenAI:       cfg.Credentials.OpenAIAPIKey,
		credentials.AlphaVantage: cfg.Credentials.AlphaVantageAPIKey,
	}
}

// ProvideRateLimiter creates the per-client token bucket.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideStrategyHandler creates the HTTP handler.
func ProvideStrategyHandler(
	advisor service.StreamingAdvisor,
	recorder *usecase.AuditRecorder,
	limiter *ratelimit.Limiter,
	m repository.Metrics,
	log *logger.Logger,
	defaults credentials.Defaults,
	cfg *config.Config,
) *api.StrategyHandler {
	return api.NewStrategyHandler(advisor, recorder, limiter, m, log, defaults,
		api.RateLimitSettings{
			Enabled:      cfg.RateLimit.Enabled,
			Capacity:     cfg.RateLimit.Capacity,
			RefillPerSec: cfg.RateLimit.RefillPerSec,
		})
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler *api.StrategyHandler,
	log *logger.Logger,
	recorder *usecase.AuditRecorder,
	cacheSvc cache.Service,
) *server.App {
	return server.New(cfg, handler, log, recorder, cacheSvc)
}
