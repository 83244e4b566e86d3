package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteJournalRepository {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteJournalRepository(db)
}

func entry(id, runID, eventType, simDate string) JournalEntry {
	return JournalEntry{
		ID:        id,
		RunID:     runID,
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		ActorID:   "PLAYER",
		TargetID:  "station-1",
		Payload:   map[string]interface{}{"price": float64(300)},
		SimDate:   simDate,
	}
}

func TestJournalAppendAndQuery(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	entries := []JournalEntry{
		entry("e1", "run-a", "STATION_PURCHASED", "2021-01-01"),
		entry("e2", "run-a", "TRAIN_DISPATCHED", "2021-01-01"),
		entry("e3", "run-a", "TRAIN_DISPATCHED", "2021-01-02"),
		entry("e4", "run-b", "STATION_PURCHASED", "2021-01-01"),
	}
	for _, e := range entries {
		if err := repo.Append(ctx, e); err != nil {
			t.Fatalf("Append %s failed: %v", e.ID, err)
		}
	}

	byRun, err := repo.GetByRunID(ctx, "run-a")
	if err != nil {
		t.Fatalf("GetByRunID failed: %v", err)
	}
	if len(byRun) != 3 {
		t.Errorf("run-a entries = %d, want 3", len(byRun))
	}

	byType, err := repo.GetByEventType(ctx, "run-a", "TRAIN_DISPATCHED")
	if err != nil {
		t.Fatalf("GetByEventType failed: %v", err)
	}
	if len(byType) != 2 {
		t.Errorf("run-a dispatch entries = %d, want 2", len(byType))
	}

	byDate, err := repo.GetBySimDate(ctx, "run-a", "2021-01-01")
	if err != nil {
		t.Fatalf("GetBySimDate failed: %v", err)
	}
	if len(byDate) != 2 {
		t.Errorf("run-a entries on 2021-01-01 = %d, want 2", len(byDate))
	}
}

func TestJournalPayloadSurvivesRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := entry("e1", "run-a", "STATION_PURCHASED", "2021-01-01")
	e.Payload = map[string]interface{}{"station_id": "abc", "price": float64(1350)}
	if err := repo.Append(ctx, e); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := repo.GetByRunID(ctx, "run-a")
	if err != nil {
		t.Fatalf("GetByRunID failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("entries = %d, want 1", len(got))
	}
	if got[0].Payload["station_id"] != "abc" {
		t.Errorf("payload station_id = %v, want abc", got[0].Payload["station_id"])
	}
	if got[0].Payload["price"] != float64(1350) {
		t.Errorf("payload price = %v, want 1350", got[0].Payload["price"])
	}
	if got[0].ActorID != "PLAYER" || got[0].SimDate != "2021-01-01" {
		t.Errorf("entry fields mangled: %+v", got[0])
	}
}
