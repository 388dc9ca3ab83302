//go:build wireinject
// +build wireinject

package di

import (
	"StratGen/pkg/config"
	"StratGen/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideKafkaProducer,
		ProvideClickHouseClient,

		// Domain
		ProvideDefaults,
		ProvideAdvisor,
		ProvideAuditRecorder,
		ProvideRateLimiter,

		// HTTP
		ProvideStrategyHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
