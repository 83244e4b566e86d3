// Package storage provides the durable journal for the simulation.
// This package implements the repository pattern to keep the domain
// pure: the engine writes through the events.EventPersister interface
// and never imports storage directly.
//
// The journal is an append-only audit trail. It is NOT a save file:
// runs are never restored from it.
package storage

import (
	"context"
	"time"
)

// JournalEntry mirrors the domain event structure for persistence.
// The domain package does NOT import this; adapters translate.
type JournalEntry struct {
	ID        string                 `json:"id" db:"id"`
	RunID     string                 `json:"run_id" db:"run_id"`
	Timestamp time.Time              `json:"timestamp" db:"timestamp"`
	EventType string                 `json:"event_type" db:"event_type"`
	ActorID   string                 `json:"actor_id" db:"actor_id"`
	TargetID  string                 `json:"target_id" db:"target_id"`
	Payload   map[string]interface{} `json:"payload" db:"payload"`
	SimDate   string                 `json:"sim_date" db:"sim_date"`
}

// JournalRepository defines the interface for journal persistence.
type JournalRepository interface {
	// Append adds a new entry to the immutable journal.
	Append(ctx context.Context, entry JournalEntry) error

	// GetByRunID retrieves all entries for one simulation run.
	GetByRunID(ctx context.Context, runID string) ([]JournalEntry, error)

	// GetByEventType retrieves all entries of a specific type.
	GetByEventType(ctx context.Context, runID, eventType string) ([]JournalEntry, error)

	// GetBySimDate retrieves all entries from one in-game date.
	GetBySimDate(ctx context.Context, runID, simDate string) ([]JournalEntry, error)
}
