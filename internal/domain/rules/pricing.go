// Package rules contains the pure calculation logic for the economy.
// This package is PURE and must NOT import any infrastructure packages.
package rules

import "github.com/dgideas/railway-magnate/internal/domain/station"

// AcquisitionPriceRange returns the half-open [lo, hi) interval from
// which a station's buy price is drawn once at creation.
func AcquisitionPriceRange(class station.Class) (lo, hi int) {
	level := class.Level()
	base := level * 270
	return base, base + 100*level
}

// Capacity returns the passenger capacity constant for a station class.
// Train logic currently uses a separate fleet-wide constant; this lookup
// is kept for the station sheet and future per-class trains.
func Capacity(class station.Class) int {
	switch class {
	case station.Class1:
		return 1200
	case station.Class2:
		return 900
	case station.Class3:
		return 650
	case station.Class4:
		return 400
	case station.Class5:
		return 175
	}
	return 0
}

// MaintenanceFee returns the monthly upkeep charged per owned station.
func MaintenanceFee(class station.Class) int {
	switch class {
	case station.Class1:
		return 250
	case station.Class2:
		return 200
	case station.Class3:
		return 150
	case station.Class4:
		return 100
	case station.Class5:
		return 50
	}
	return 0
}

// DailyPassengerRange returns the half-open [lo, hi) range of passengers
// generated per day for the directed route from one station class to
// another.
//
// The branch is chosen by comparing the ORIGINAL from/to levels, not the
// swapped pair used for the base product: travel from a larger station
// toward a smaller one is the underserved "reverse commute" and draws
// from the lower band.
func DailyPassengerRange(from, to station.Class) (lo, hi int) {
	levelFrom := from.Level()
	levelTo := to.Level()

	low, high := levelFrom, levelTo
	if low > high {
		low, high = high, low
	}
	reverted := levelFrom > levelTo

	base := float64((1 + low) * high)
	if reverted {
		return int(base * 0.64), int(base * 0.8)
	}
	return int(base * 0.8), int(base * 1.2)
}
