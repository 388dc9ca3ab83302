package repository

import (
	"context"

	"StratGen/internal/domain/models"
)

// AuditPublisher publishes strategy events to a message broker.
type AuditPublisher interface {
	Publish(ctx context.Context, ev *models.StrategyEvent) error
	Close() error
}

// AuditStorage persists strategy events to an analytical store.
type AuditStorage interface {
	Store(ctx context.Context, ev *models.StrategyEvent) error
	Close() error
}

// Metrics records operational metrics for the service.
type Metrics interface {
	RecordRequest(outcome string)
	RecordDecision(action string)
	RecordError(kind string)
	RecordStageLatency(stage string, seconds float64)
}
