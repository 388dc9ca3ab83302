package repository

import (
	"context"
	"database/sql"
	"fmt"

	"StratGen/internal/domain/models"
	"StratGen/internal/domain/repository"
)

// SchemaStatements returns the idempotent DDL for the audit table.
func SchemaStatements(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ticker String,
			risk_appetite String,
			investment_experience String,
			time_horizon String,
			suggested_action String,
			source_count UInt16,
			duration_ms Int64,
			created_at DateTime64(3, 'UTC')
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (ticker, created_at)`, table),
	}
}

// ClickHouseAuditStorage implements AuditStorage on a ClickHouse table.
type ClickHouseAuditStorage struct {
	db    *sql.DB
	table string
}

// NewClickHouseAuditStorage creates a ClickHouse-backed audit store.
func NewClickHouseAuditStorage(db *sql.DB, table string) repository.AuditStorage {
	return &ClickHouseAuditStorage{db: db, table: table}
}

func (s *ClickHouseAuditStorage) Store(ctx context.Context, ev *models.StrategyEvent) error {
	query := fmt.Sprintf(`INSERT INTO %s
		(ticker, risk_appetite, investment_experience, time_horizon,
		 suggested_action, source_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, s.table)

	_, err := s.db.ExecContext(ctx, query,
		ev.Ticker, ev.Risk, ev.Experience, ev.Horizon,
		ev.Action, uint16(ev.SourceCount), ev.DurationMS, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert strategy event: %w", err)
	}
	return nil
}

func (s *ClickHouseAuditStorage) Close() error {
	return nil
}
