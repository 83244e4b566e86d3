package events

import (
	"sync"
	"testing"
	"time"
)

type recordingPersister struct {
	mu     sync.Mutex
	events []GameEvent
}

func (p *recordingPersister) Append(event GameEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func TestAppendAndFilter(t *testing.T) {
	el := NewEventLog(nil)

	el.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeTimeTick, SimDate: "2021-01-01"})
	el.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeStationPurchased, SimDate: "2021-01-01"})
	el.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeTimeTick, SimDate: "2021-01-02"})

	if got := len(el.Replay()); got != 3 {
		t.Errorf("Replay returned %d events, want 3", got)
	}
	if got := len(el.GetByType(EventTypeTimeTick)); got != 2 {
		t.Errorf("tick events = %d, want 2", got)
	}
	if got := len(el.GetByDate("2021-01-01")); got != 2 {
		t.Errorf("events on 2021-01-01 = %d, want 2", got)
	}
	if got := len(el.GetByType(EventTypeBankruptcy)); got != 0 {
		t.Errorf("bankruptcy events = %d, want 0", got)
	}
}

func TestWriteThroughReachesPersister(t *testing.T) {
	p := &recordingPersister{}
	el := NewEventLog(p)

	el.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeTrainDispatched})

	// The write-through is asynchronous.
	deadline := time.Now().Add(2 * time.Second)
	for p.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("persister never saw the event")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestEventIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateEventID()
		if seen[id] {
			t.Fatalf("duplicate event ID %s", id)
		}
		seen[id] = true
	}
}
