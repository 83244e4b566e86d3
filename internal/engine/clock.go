// Package engine contains the tick loop and simulation logic.
// This is the heartbeat of the railway economy.
//
// ARCHITECTURAL RULE: one tick = one simulated day. Every tick runs
// transit resolution, then the clock, then upkeep, then demand, then
// the solvency check. Strictly in that order, with no concurrency.
package engine

import "time"

// Clock tracks the current in-game calendar date. It knows nothing
// about stations or money, only time progression.
type Clock struct {
	current time.Time
}

// NewClock starts the calendar at the given date.
func NewClock(start time.Time) *Clock {
	return &Clock{current: start}
}

// Advance moves the calendar forward by exactly one day.
func (c *Clock) Advance() {
	c.current = c.current.AddDate(0, 0, 1)
}

// Now returns the current in-game date.
func (c *Clock) Now() time.Time {
	return c.current
}

// DateString formats the current date for event records.
func (c *Clock) DateString() string {
	return c.current.Format("2006-01-02")
}

// IsMaintenanceDay reports whether monthly upkeep is due. Upkeep runs
// on the first day of each month, right after the clock advances.
func (c *Clock) IsMaintenanceDay() bool {
	return c.current.Day() == 1
}
