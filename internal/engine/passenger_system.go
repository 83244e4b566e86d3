// Package engine - passenger_system.go
// Daily demand generation: every ordered pair of owned stations accrues
// passengers drawn from the class-based route range.
package engine

import (
	"fmt"
	"time"

	"github.com/dgideas/railway-magnate/internal/domain/rules"
	"github.com/dgideas/railway-magnate/internal/domain/station"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
	"github.com/dgideas/railway-magnate/internal/platform/metrics"
	"github.com/dgideas/railway-magnate/internal/platform/rng"
)

// DemandPayload records one day of generated demand for audit.
type DemandPayload struct {
	Routes     int `json:"routes"`
	Passengers int `json:"passengers"`
}

// PassengerSystem accrues daily demand between owned stations.
type PassengerSystem struct {
	eventLog *events.EventLog
	logger   *logger.Logger
	random   rng.Source
}

// NewPassengerSystem creates the demand generator.
func NewPassengerSystem(eventLog *events.EventLog, log *logger.Logger, random rng.Source) *PassengerSystem {
	return &PassengerSystem{
		eventLog: eventLog,
		logger:   log,
		random:   random,
	}
}

// GenerateDaily draws demand for every ordered pair of distinct enabled
// stations and adds it to the origin's pending counter. Unowned stations
// neither originate nor receive demand. Iteration follows creation order
// so a seeded source reproduces runs exactly.
func (ps *PassengerSystem) GenerateDaily(stations []*station.Station, simDate string) int {
	total := 0
	routes := 0
	for _, origin := range stations {
		if !origin.Enabled() {
			continue
		}
		for _, dest := range stations {
			if dest.ID == origin.ID || !dest.Enabled() {
				continue
			}
			lo, hi := rules.DailyPassengerRange(origin.Class, dest.Class)
			count := 0
			if hi > lo {
				count = lo + ps.random.Intn(hi-lo)
			}
			origin.AddPending(dest.ID, count)
			total += count
			routes++
		}
	}

	if routes > 0 {
		metrics.Get().RecordPassengers(total)
		ps.eventLog.Append(events.GameEvent{
			ID:        events.GenerateEventID(),
			Type:      events.EventTypePassengersGenerated,
			ActorID:   "SYSTEM_DEMAND",
			Payload:   DemandPayload{Routes: routes, Passengers: total},
			SimDate:   simDate,
			Timestamp: time.Now(),
		})
		ps.logger.Event("DEMAND", "SYSTEM_DEMAND", fmt.Sprintf("%d passengers over %d routes", total, routes))
	}
	return total
}
