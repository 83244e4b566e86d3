// Package events provides the append-only audit log of the simulation.
// Every economic mutation (tick, purchase, dispatch, arrival, upkeep,
// bankruptcy) is recorded here for observers and the journal.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a simulation event.
type EventType string

const (
	EventTypeTimeTick            EventType = "TIME_TICK"
	EventTypeStationPurchased    EventType = "STATION_PURCHASED"
	EventTypeTrainDispatched     EventType = "TRAIN_DISPATCHED"
	EventTypeTrainArrived        EventType = "TRAIN_ARRIVED"
	EventTypePassengersGenerated EventType = "PASSENGERS_GENERATED"
	EventTypeMaintenanceCharged  EventType = "MAINTENANCE_CHARGED"
	EventTypeBankruptcy          EventType = "BANKRUPTCY"
)

// GameEvent represents an immutable record of a simulation mutation.
type GameEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`  // who performed the action (PLAYER or SYSTEM_*)
	TargetID  string      `json:"target_id"` // affected entity (optional)
	Payload   interface{} `json:"payload"`   // event-specific data
	SimDate   string      `json:"sim_date"`  // in-game calendar date, YYYY-MM-DD
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of simulation events.
type EventLog struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
func (el *EventLog) Append(event GameEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(el.events, event)

	if el.persister != nil {
		// Write through to persistent storage off the tick path
		go func(e GameEvent) {
			_ = el.persister.Append(e)
		}(event)
	}
}

// GetByType returns all events of one category.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// GetByDate returns all events recorded on a specific in-game date.
func (el *EventLog) GetByDate(simDate string) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.SimDate == simDate {
			result = append(result, e)
		}
	}
	return result
}

// Replay returns the full history of events.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.events
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
