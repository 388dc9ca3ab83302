package usecase

import (
	"context"
	"fmt"

	"StratGen/internal/domain/models"
	"StratGen/internal/domain/repository"
)

// AuditRecorder routes completed-recommendation events to the configured
// backend. Recording is best effort: callers log failures but never fail
// the originating request over them.
type AuditRecorder struct {
	pub     repository.AuditPublisher
	store   repository.AuditStorage
	metrics repository.Metrics
	backend string
}

// NewAuditRecorder creates an AuditRecorder. backend is one of "none",
// "kafka", "clickhouse"; the matching sink must be non-nil.
func NewAuditRecorder(pub repository.AuditPublisher, store repository.AuditStorage, metrics repository.Metrics, backend string) *AuditRecorder {
	return &AuditRecorder{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// Enabled reports whether events are routed anywhere.
func (r *AuditRecorder) Enabled() bool {
	return r.backend == "kafka" || r.backend == "clickhouse"
}

// Record routes one event to the configured backend.
func (r *AuditRecorder) Record(ctx context.Context, ev *models.StrategyEvent) error {
	if ev == nil {
		return fmt.Errorf("event is nil")
	}

	var err error
	switch r.backend {
	case "none", "":
		return nil
	case "kafka":
		err = r.pub.Publish(ctx, ev)
	case "clickhouse":
		err = r.store.Store(ctx, ev)
	default:
		err = fmt.Errorf("unknown audit backend: %s", r.backend)
	}

	if err != nil {
		r.metrics.RecordError("audit")
		return fmt.Errorf("record strategy event: %w", err)
	}
	return nil
}

// Close closes whichever sink is wired.
func (r *AuditRecorder) Close() error {
	if r.pub != nil {
		if err := r.pub.Close(); err != nil {
			return err
		}
	}
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
