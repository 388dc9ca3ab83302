package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"StratGen/internal/domain/models"
)

type fakeSink struct {
	events []*models.StrategyEvent
	err    error
	closed bool
}

func (f *fakeSink) Publish(_ context.Context, ev *models.StrategyEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeSink) Store(_ context.Context, ev *models.StrategyEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeSink) Close() error {
	f.closed = true
	return nil
}

func testEvent() *models.StrategyEvent {
	return models.NewStrategyEvent(
		&models.StrategyRequest{
			Ticker:     "MSFT",
			Risk:       models.RiskLow,
			Experience: models.ExperienceExpert,
			Horizon:    models.HorizonShort,
		},
		&models.StrategyResponse{
			SuggestedAction: models.ActionBuy,
			Reasoning:       "r",
			Sources:         []models.Source{{Title: "t", URL: "u"}},
		},
		250*time.Millisecond,
	)
}

func TestAuditRecorderRouting(t *testing.T) {
	t.Run("kafka", func(t *testing.T) {
		pub := &fakeSink{}
		r := NewAuditRecorder(pub, nil, fakeMetrics{}, "kafka")

		if !r.Enabled() {
			t.Fatal("Enabled() = false")
		}
		if err := r.Record(context.Background(), testEvent()); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if len(pub.events) != 1 {
			t.Fatalf("published %d events, want 1", len(pub.events))
		}
		ev := pub.events[0]
		if ev.Ticker != "MSFT" || ev.Action != "Buy" || ev.SourceCount != 1 || ev.DurationMS != 250 {
			t.Errorf("unexpected event: %+v", ev)
		}
	})

	t.Run("clickhouse", func(t *testing.T) {
		store := &fakeSink{}
		r := NewAuditRecorder(nil, store, fakeMetrics{}, "clickhouse")

		if err := r.Record(context.Background(), testEvent()); err != nil {
			t.Fatalf("Record: %v", err)
		}
		if len(store.events) != 1 {
			t.Fatalf("stored %d events, want 1", len(store.events))
		}
	})

	t.Run("none", func(t *testing.T) {
		r := NewAuditRecorder(nil, nil, fakeMetrics{}, "none")

		if r.Enabled() {
			t.Error("Enabled() = true for none backend")
		}
		if err := r.Record(context.Background(), testEvent()); err != nil {
			t.Errorf("Record: %v", err)
		}
	})

	t.Run("sink failure", func(t *testing.T) {
		pub := &fakeSink{err: errors.New("broker down")}
		r := NewAuditRecorder(pub, nil, fakeMetrics{}, "kafka")

		if err := r.Record(context.Background(), testEvent()); err == nil {
			t.Error("Record returned nil, want error")
		}
	})
}

func TestAuditRecorderClose(t *testing.T) {
	pub := &fakeSink{}
	store := &fakeSink{}
	r := NewAuditRecorder(pub, store, fakeMetrics{}, "kafka")

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pub.closed || !store.closed {
		t.Error("sinks not closed")
	}
}

func TestStrategyEventCarriesNoSecrets(t *testing.T) {
	ev := testEvent()
	if ev.Risk != "Low" || ev.Experience != "Expert" || ev.Horizon != "Short-term" {
		t.Errorf("profile fields wrong: %+v", ev)
	}
	if ev.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}
