// Package station defines the core domain entity for transit stations.
// This package is PURE and must NOT import any infrastructure packages
// (network, events, platform).
package station

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Status represents the ownership state of a station.
type Status string

const (
	StatusUnused  Status = "unused"
	StatusEnabled Status = "enabled" // owned by the player
	// StatusDisabled is defined by the rules but no transition reaches it
	// in the current revision. Do not invent behavior for it.
	StatusDisabled Status = "disabled"
)

// Class is one of 5 ordinal station sizes. Class 1 is the largest and
// most expensive, Class 5 the smallest.
type Class int

const (
	Class1 Class = 1
	Class2 Class = 2
	Class3 Class = 3
	Class4 Class = 4
	Class5 Class = 5
)

// Level inverts the class ordering so that larger stations carry higher
// values. All pricing and demand formulas work in levels.
func (c Class) Level() int {
	return 6 - int(c)
}

// Station represents a single transit station on the map.
type Station struct {
	ID     string `json:"id"`
	Name   string `json:"name"` // cosmetic, produced by the worldmap package
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Class  Class  `json:"class"`
	Status Status `json:"status"`

	// Price is fixed at creation and never changes.
	Price int `json:"price"`

	// Pending maps a destination station ID to the passenger count
	// accrued for it. Counts are non-negative; only a dispatch may
	// lower them.
	Pending map[string]int `json:"pending"`
}

// New creates a station at the given position with a realized
// acquisition price. The identity is stable for the station's lifetime.
func New(x, y int, class Class, price int) *Station {
	return &Station{
		ID:      uuid.NewString(),
		X:       x,
		Y:       y,
		Class:   class,
		Status:  StatusUnused,
		Price:   price,
		Pending: make(map[string]int),
	}
}

// Distance returns the Euclidean distance to another station.
func (s *Station) Distance(other *Station) float64 {
	dx := float64(s.X - other.X)
	dy := float64(s.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Enabled reports whether the station is owned by the player.
func (s *Station) Enabled() bool {
	return s.Status == StatusEnabled
}

// PendingTo returns the accrued passenger count toward a destination.
// Unseen destinations read as zero.
func (s *Station) PendingTo(destID string) int {
	return s.Pending[destID]
}

// AddPending accrues generated demand toward a destination.
func (s *Station) AddPending(destID string, count int) {
	if count <= 0 {
		return
	}
	if s.Pending == nil {
		s.Pending = make(map[string]int)
	}
	s.Pending[destID] += count
}

// DrainPending removes up to max passengers waiting for destID and
// returns how many were taken. The counter never goes negative.
func (s *Station) DrainPending(destID string, max int) int {
	waiting := s.Pending[destID]
	taken := waiting
	if taken > max {
		taken = max
	}
	if taken > 0 {
		s.Pending[destID] = waiting - taken
	}
	return taken
}

func (s *Station) String() string {
	return fmt.Sprintf("<Station %s(class %d) price: %d x: %d, y: %d>", s.Name, s.Class, s.Price, s.X, s.Y)
}
