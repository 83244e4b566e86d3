package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLiteJournalRepository implements JournalRepository for SQLite.
type SQLiteJournalRepository struct {
	db *sql.DB
}

func NewSQLiteJournalRepository(db *sql.DB) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{db: db}
}

func (r *SQLiteJournalRepository) Append(ctx context.Context, entry JournalEntry) error {
	payloadBytes, err := json.Marshal(entry.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO journal (id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.RunID, entry.Timestamp, entry.EventType, entry.ActorID,
		entry.TargetID, string(payloadBytes), entry.SimDate,
	)
	if err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

func (r *SQLiteJournalRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var payloadStr string
		err := rows.Scan(
			&e.ID, &e.RunID, &e.Timestamp, &e.EventType, &e.ActorID,
			&e.TargetID, &payloadStr, &e.SimDate,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *SQLiteJournalRepository) GetByRunID(ctx context.Context, runID string) ([]JournalEntry, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date FROM journal WHERE run_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, runID)
}

func (r *SQLiteJournalRepository) GetByEventType(ctx context.Context, runID, eventType string) ([]JournalEntry, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date FROM journal WHERE run_id = ? AND event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, runID, eventType)
}

func (r *SQLiteJournalRepository) GetBySimDate(ctx context.Context, runID, simDate string) ([]JournalEntry, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, sim_date FROM journal WHERE run_id = ? AND sim_date = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, runID, simDate)
}
