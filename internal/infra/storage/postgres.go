// Package storage - postgres.go
// PostgreSQL implementation of JournalRepository, for deployments where
// the journal outlives the host.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// InitPostgres opens the journal database and ensures the schema.
func InitPostgres(dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres database: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS journal (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		event_type TEXT NOT NULL,
		actor_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		payload JSONB NOT NULL,
		sim_date TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// PostgresJournalRepository implements JournalRepository using PostgreSQL.
type PostgresJournalRepository struct {
	db *sql.DB
}

// NewPostgresJournalRepository creates a new PostgreSQL journal repository.
func NewPostgresJournalRepository(db *sql.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

// Append inserts a new entry into the immutable journal.
func (r *PostgresJournalRepository) Append(ctx context.Context, entry JournalEntry) error {
	payloadJSON, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO journal (id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.RunID, entry.Timestamp, entry.EventType, entry.ActorID,
		entry.TargetID, payloadJSON, entry.SimDate,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

func (r *PostgresJournalRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var payloadBytes []byte
		err := rows.Scan(
			&e.ID, &e.RunID, &e.Timestamp, &e.EventType, &e.ActorID,
			&e.TargetID, &payloadBytes, &e.SimDate,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payloadBytes, &e.Payload); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *PostgresJournalRepository) GetByRunID(ctx context.Context, runID string) ([]JournalEntry, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date FROM journal WHERE run_id = $1 ORDER BY timestamp ASC`
	return r.getMany(ctx, query, runID)
}

func (r *PostgresJournalRepository) GetByEventType(ctx context.Context, runID, eventType string) ([]JournalEntry, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date FROM journal WHERE run_id = $1 AND event_type = $2 ORDER BY timestamp ASC`
	return r.getMany(ctx, query, runID, eventType)
}

func (r *PostgresJournalRepository) GetBySimDate(ctx context.Context, runID, simDate string) ([]JournalEntry, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date FROM journal WHERE run_id = $1 AND sim_date = $2 ORDER BY timestamp ASC`
	return r.getMany(ctx, query, runID, simDate)
}
