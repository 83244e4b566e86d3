// Package train defines the in-flight train entity.
// This package is PURE and must NOT import any infrastructure packages.
package train

import "github.com/google/uuid"

// Train is a trip in progress between two stations. It exists only
// between dispatch and arrival; there are no partial or cancelled trips.
type Train struct {
	ID            string  `json:"id"`
	OriginID      string  `json:"origin_id"`
	DestinationID string  `json:"destination_id"`
	Speed         float64 `json:"speed"`    // distance units per day
	Capacity      int     `json:"capacity"` // maximum passengers carried
	TicketPrice   int     `json:"ticket_price"`
	Passengers    int     `json:"passengers"` // fixed at dispatch, <= Capacity

	// TripDistance is the Euclidean distance between origin and
	// destination, frozen at dispatch since stations never move.
	TripDistance float64 `json:"trip_distance"`
	Travelled    float64 `json:"travelled"`
}

// New creates a dispatched train at the start of its trip.
func New(originID, destID string, speed float64, capacity, ticketPrice, passengers int, tripDistance float64) *Train {
	return &Train{
		ID:            uuid.NewString(),
		OriginID:      originID,
		DestinationID: destID,
		Speed:         speed,
		Capacity:      capacity,
		TicketPrice:   ticketPrice,
		Passengers:    passengers,
		TripDistance:  tripDistance,
		Travelled:     0,
	}
}

// Advance moves the train by one day's travel.
func (t *Train) Advance() {
	t.Travelled += t.Speed
}

// Arrived reports whether the train has completed its trip. Arrival
// requires the travelled distance to strictly exceed the trip distance;
// merely reaching it keeps the train in flight one more day.
func (t *Train) Arrived() bool {
	return t.Travelled > t.TripDistance
}

// Revenue returns the ledger credit earned on arrival.
func (t *Train) Revenue() int {
	return t.TicketPrice * t.Passengers
}
