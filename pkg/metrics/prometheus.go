package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	requests      *prometheus.CounterVec
	decisions     *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		requests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratgen_requests_total",
				Help: "Strategy requests by outcome",
			},
			[]string{"outcome"},
		),
		decisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratgen_decisions_total",
				Help: "Recommendations by suggested action",
			},
			[]string{"action"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stratgen_errors_total",
				Help: "Errors by kind",
			},
			[]string{"kind"},
		),
		stageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stratgen_stage_duration_seconds",
				Help:    "Duration of advisor workflow stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordRequest records a strategy request outcome (ok, validation_error,
// capability_error, rate_limited).
func (r *Recorder) RecordRequest(outcome string) {
	r.requests.WithLabelValues(outcome).Inc()
}

// RecordDecision records a produced recommendation.
func (r *Recorder) RecordDecision(action string) {
	r.decisions.WithLabelValues(action).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordStageLatency records an advisor stage latency in seconds.
func (r *Recorder) RecordStageLatency(stage string, seconds float64) {
	r.stageDuration.WithLabelValues(stage).Observe(seconds)
}
