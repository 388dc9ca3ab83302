package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
server:
  port: 9000
`

func TestLoadFillsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Advisor.Type != "workflow" {
		t.Errorf("advisor.type = %q, want workflow", cfg.Advisor.Type)
	}
	if cfg.Advisor.Model != "gpt-4o-mini" {
		t.Errorf("advisor.model = %q", cfg.Advisor.Model)
	}
	if cfg.Advisor.SearchMaxResults != 10 {
		t.Errorf("search_max_results = %d, want 10", cfg.Advisor.SearchMaxResults)
	}
	if cfg.Advisor.OverviewTTL != 7*24*time.Hour {
		t.Errorf("overview_ttl = %v, want 168h", cfg.Advisor.OverviewTTL)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("cache.backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Audit.Backend != "none" {
		t.Errorf("audit.backend = %q, want none", cfg.Audit.Backend)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		t.Error("shutdown_timeout not defaulted")
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	if _, err := Load(writeConfig(t, "server:\n  port: 1\n")); err == nil {
		t.Fatal("Load accepted config without environment")
	}
}

func TestValidateAdvisorType(t *testing.T) {
	body := minimalConfig + `
advisor:
  type: oracle
`
	if _, err := Load(writeConfig(t, body)); err == nil {
		t.Fatal("Load accepted unknown advisor type")
	}
}

func TestValidateAuditBackend(t *testing.T) {
	t.Run("kafka requires brokers", func(t *testing.T) {
		body := minimalConfig + `
audit:
  backend: kafka
`
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatal("Load accepted kafka audit without brokers")
		}
	})

	t.Run("clickhouse defaults table", func(t *testing.T) {
		body := minimalConfig + `
audit:
  backend: clickhouse
clickhouse:
  host: localhost
`
		cfg, err := Load(writeConfig(t, body))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.ClickHouse.Table != "strategy_events" {
			t.Errorf("table = %q, want strategy_events", cfg.ClickHouse.Table)
		}
	})
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7777")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("TAVILY_API_KEY", "tv-env")
	t.Setenv("ADVISOR_TYPE", "static")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_ADDR", "redis-host:6380")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadWithEnv: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("port = %d, want 7777", cfg.Server.Port)
	}
	if cfg.Credentials.OpenAIAPIKey != "sk-env" || cfg.Credentials.TavilyAPIKey != "tv-env" {
		t.Errorf("credentials not overridden: %+v", cfg.Credentials)
	}
	if cfg.Advisor.Type != "static" {
		t.Errorf("advisor.type = %q, want static", cfg.Advisor.Type)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Cache.Redis.Host != "redis-host" || cfg.Cache.Redis.Port != 6380 {
		t.Errorf("redis = %s:%d", cfg.Cache.Redis.Host, cfg.Cache.Redis.Port)
	}
}
