// Package metrics provides observability for the simulation server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance and gameplay counters.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Gameplay metrics
	PassengersGenerated int64
	TrainsDispatched    int64
	TrainsArrived       int64
	StationsPurchased   int64

	// Journal metrics
	JournalWrites      int64
	JournalWriteLatSum int64
	JournalWriteLatMax int64
	JournalWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesOut       int64
	WSErrors            int64

	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordPassengers records demand generated in one tick.
func (c *Collector) RecordPassengers(count int) {
	atomic.AddInt64(&c.PassengersGenerated, int64(count))
}

// RecordDispatch records a train departure.
func (c *Collector) RecordDispatch() {
	atomic.AddInt64(&c.TrainsDispatched, 1)
}

// RecordArrival records a settled trip.
func (c *Collector) RecordArrival() {
	atomic.AddInt64(&c.TrainsArrived, 1)
}

// RecordPurchase records a station acquisition.
func (c *Collector) RecordPurchase() {
	atomic.AddInt64(&c.StationsPurchased, 1)
}

// RecordJournalWrite records an event write to the journal.
func (c *Collector) RecordJournalWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.JournalWrites, 1)
	atomic.AddInt64(&c.JournalWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.JournalWriteLatMax) {
		atomic.StoreInt64(&c.JournalWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.JournalWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records an outgoing WebSocket message.
func (c *Collector) RecordWSMessage() {
	atomic.AddInt64(&c.WSMessagesOut, 1)
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	journalWrites := atomic.LoadInt64(&c.JournalWrites)

	var tickAvg, journalAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}
	if journalWrites > 0 {
		journalAvg = float64(atomic.LoadInt64(&c.JournalWriteLatSum)) / float64(journalWrites) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"gameplay": map[string]interface{}{
			"passengers_generated": atomic.LoadInt64(&c.PassengersGenerated),
			"trains_dispatched":    atomic.LoadInt64(&c.TrainsDispatched),
			"trains_arrived":       atomic.LoadInt64(&c.TrainsArrived),
			"stations_purchased":   atomic.LoadInt64(&c.StationsPurchased),
		},

		"journal": map[string]interface{}{
			"writes":           journalWrites,
			"avg_write_lat_ms": journalAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.JournalWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.JournalWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP magnate_tick_count Total tick cycles\n")
		fmt.Fprintf(w, "# TYPE magnate_tick_count counter\n")
		fmt.Fprintf(w, "magnate_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP magnate_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE magnate_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "magnate_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP magnate_passengers_generated Total passengers generated\n")
		fmt.Fprintf(w, "# TYPE magnate_passengers_generated counter\n")
		fmt.Fprintf(w, "magnate_passengers_generated %d\n\n", atomic.LoadInt64(&c.PassengersGenerated))

		fmt.Fprintf(w, "# HELP magnate_trains_total Train lifecycle counters\n")
		fmt.Fprintf(w, "# TYPE magnate_trains_total counter\n")
		fmt.Fprintf(w, "magnate_trains_total{phase=\"dispatched\"} %d\n", atomic.LoadInt64(&c.TrainsDispatched))
		fmt.Fprintf(w, "magnate_trains_total{phase=\"arrived\"} %d\n\n", atomic.LoadInt64(&c.TrainsArrived))

		fmt.Fprintf(w, "# HELP magnate_stations_purchased Total stations purchased\n")
		fmt.Fprintf(w, "# TYPE magnate_stations_purchased counter\n")
		fmt.Fprintf(w, "magnate_stations_purchased %d\n\n", atomic.LoadInt64(&c.StationsPurchased))

		fmt.Fprintf(w, "# HELP magnate_journal_writes Total journal writes\n")
		fmt.Fprintf(w, "# TYPE magnate_journal_writes counter\n")
		fmt.Fprintf(w, "magnate_journal_writes %d\n\n", atomic.LoadInt64(&c.JournalWrites))

		fmt.Fprintf(w, "# HELP magnate_journal_write_errors Total journal write errors\n")
		fmt.Fprintf(w, "# TYPE magnate_journal_write_errors counter\n")
		fmt.Fprintf(w, "magnate_journal_write_errors %d\n\n", atomic.LoadInt64(&c.JournalWriteErrors))

		fmt.Fprintf(w, "# HELP magnate_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE magnate_ws_connections gauge\n")
		fmt.Fprintf(w, "magnate_ws_connections %d\n", atomic.LoadInt64(&c.WSConnectionsActive))
	}
}
