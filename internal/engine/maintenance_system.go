// Package engine - maintenance_system.go
// Monthly upkeep: each owned station is charged its class fee on the
// first day of the month.
package engine

import (
	"fmt"
	"time"

	"github.com/dgideas/railway-magnate/internal/domain/rules"
	"github.com/dgideas/railway-magnate/internal/domain/station"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
)

// MaintenancePayload records one month's upkeep charge for audit.
type MaintenancePayload struct {
	Stations int `json:"stations"`
	Total    int `json:"total"`
}

// MaintenanceSystem charges periodic station upkeep against the ledger.
type MaintenanceSystem struct {
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewMaintenanceSystem creates the upkeep system.
func NewMaintenanceSystem(eventLog *events.EventLog, log *logger.Logger) *MaintenanceSystem {
	return &MaintenanceSystem{
		eventLog: eventLog,
		logger:   log,
	}
}

// ChargeMonthly debits the maintenance fee for every enabled station.
// There is no station-level side effect beyond the ledger debit.
func (ms *MaintenanceSystem) ChargeMonthly(stations []*station.Station, ledger *Ledger, simDate string) int {
	total := 0
	charged := 0
	for _, s := range stations {
		if !s.Enabled() {
			continue
		}
		fee := rules.MaintenanceFee(s.Class)
		ledger.Debit(fee)
		total += fee
		charged++
	}

	if charged > 0 {
		ms.eventLog.Append(events.GameEvent{
			ID:        events.GenerateEventID(),
			Type:      events.EventTypeMaintenanceCharged,
			ActorID:   "SYSTEM_UPKEEP",
			Payload:   MaintenancePayload{Stations: charged, Total: total},
			SimDate:   simDate,
			Timestamp: time.Now(),
		})
		ms.logger.Event("UPKEEP", "SYSTEM_UPKEEP", fmt.Sprintf("charged %d for %d stations", total, charged))
	}
	return total
}
