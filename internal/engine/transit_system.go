// Package engine - transit_system.go
// Advances in-flight trains and settles arrivals into ledger revenue.
package engine

import (
	"fmt"
	"time"

	"github.com/dgideas/railway-magnate/internal/domain/train"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
	"github.com/dgideas/railway-magnate/internal/platform/metrics"
)

// ArrivalPayload records a settled trip for audit.
type ArrivalPayload struct {
	TrainID       string `json:"train_id"`
	OriginID      string `json:"origin_id"`
	DestinationID string `json:"destination_id"`
	Passengers    int    `json:"passengers"`
	Revenue       int    `json:"revenue"`
}

// TransitSystem tracks trains in flight and resolves their arrivals.
type TransitSystem struct {
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewTransitSystem creates the transit tracker.
func NewTransitSystem(eventLog *events.EventLog, log *logger.Logger) *TransitSystem {
	return &TransitSystem{
		eventLog: eventLog,
		logger:   log,
	}
}

// Advance moves every train by one day and credits arrivals. A train
// arrives only when its travelled distance strictly exceeds the trip
// distance, so a trip of exactly n whole days of travel lands on day
// n+1. Returns the trains still in flight.
func (ts *TransitSystem) Advance(trains []*train.Train, ledger *Ledger, simDate string) []*train.Train {
	remaining := trains[:0]
	for _, t := range trains {
		t.Advance()
		if !t.Arrived() {
			remaining = append(remaining, t)
			continue
		}

		revenue := t.Revenue()
		ledger.Credit(revenue)
		metrics.Get().RecordArrival()

		ts.eventLog.Append(events.GameEvent{
			ID:       events.GenerateEventID(),
			Type:     events.EventTypeTrainArrived,
			ActorID:  "SYSTEM_TRANSIT",
			TargetID: t.ID,
			Payload: ArrivalPayload{
				TrainID:       t.ID,
				OriginID:      t.OriginID,
				DestinationID: t.DestinationID,
				Passengers:    t.Passengers,
				Revenue:       revenue,
			},
			SimDate:   simDate,
			Timestamp: time.Now(),
		})
		ts.logger.Event("ARRIVAL", "SYSTEM_TRANSIT", fmt.Sprintf("train %s delivered %d passengers for %d", t.ID, t.Passengers, revenue))
	}
	return remaining
}
