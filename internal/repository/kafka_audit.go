package repository

import (
	"context"

	"StratGen/internal/domain/models"
	"StratGen/internal/domain/repository"
	pkgkafka "StratGen/pkg/kafka"
)

// KafkaAuditPublisher implements AuditPublisher on a Kafka topic. Events
// are keyed by ticker so per-ticker ordering survives partitioning.
type KafkaAuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaAuditPublisher creates a Kafka-backed audit publisher.
func NewKafkaAuditPublisher(producer *pkgkafka.Producer, topic string) repository.AuditPublisher {
	return &KafkaAuditPublisher{producer: producer, topic: topic}
}

func (p *KafkaAuditPublisher) Publish(ctx context.Context, ev *models.StrategyEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Ticker), ev)
}

func (p *KafkaAuditPublisher) Close() error {
	return p.producer.Close()
}
