package rules

import (
	"testing"

	"github.com/dgideas/railway-magnate/internal/domain/station"
)

func TestAcquisitionPriceRange(t *testing.T) {
	// Class 1 is the largest (level 5): base 1350, spread 500
	lo, hi := AcquisitionPriceRange(station.Class1)
	if lo != 1350 || hi != 1850 {
		t.Errorf("Class1 range = [%d, %d), want [1350, 1850)", lo, hi)
	}

	// Class 5 is the smallest (level 1): base 270, spread 100
	lo, hi = AcquisitionPriceRange(station.Class5)
	if lo != 270 || hi != 370 {
		t.Errorf("Class5 range = [%d, %d), want [270, 370)", lo, hi)
	}
}

func TestCapacityLookup(t *testing.T) {
	want := map[station.Class]int{
		station.Class1: 1200,
		station.Class2: 900,
		station.Class3: 650,
		station.Class4: 400,
		station.Class5: 175,
	}
	for class, capacity := range want {
		if got := Capacity(class); got != capacity {
			t.Errorf("Capacity(%d) = %d, want %d", class, got, capacity)
		}
	}
}

func TestMaintenanceFeeLookup(t *testing.T) {
	want := map[station.Class]int{
		station.Class1: 250,
		station.Class2: 200,
		station.Class3: 150,
		station.Class4: 100,
		station.Class5: 50,
	}
	for class, fee := range want {
		if got := MaintenanceFee(class); got != fee {
			t.Errorf("MaintenanceFee(%d) = %d, want %d", class, got, fee)
		}
	}
}

func TestDailyPassengerRangeSmallestPair(t *testing.T) {
	// Two class-5 stations: levels 1 and 1, base (1+1)*1 = 2, same
	// direction band: [floor(1.6), floor(2.4)) = [1, 2). Exactly one
	// passenger per day, no matter the draw.
	lo, hi := DailyPassengerRange(station.Class5, station.Class5)
	if lo != 1 || hi != 2 {
		t.Errorf("range = [%d, %d), want [1, 2)", lo, hi)
	}
}

func TestDailyPassengerRangeDirectionAsymmetry(t *testing.T) {
	// Small toward large: levels 1 -> 5, base (1+1)*5 = 10, full band.
	lo, hi := DailyPassengerRange(station.Class5, station.Class1)
	if lo != 8 || hi != 12 {
		t.Errorf("forward range = [%d, %d), want [8, 12)", lo, hi)
	}

	// Large toward small is the underserved reverse commute: same base,
	// lower band [floor(6.4), floor(8)) = [6, 8).
	lo, hi = DailyPassengerRange(station.Class1, station.Class5)
	if lo != 6 || hi != 8 {
		t.Errorf("reverse range = [%d, %d), want [6, 8)", lo, hi)
	}
}

func TestDailyPassengerRangeRevertedUsesOriginalLevels(t *testing.T) {
	// The band is chosen by comparing the original from/to levels, not
	// the swapped pair: class2 -> class4 is level 4 -> 2, reverted.
	lo, hi := DailyPassengerRange(station.Class2, station.Class4)
	// base = (1+2)*4 = 12; reverted band [floor(7.68), floor(9.6)) = [7, 9)
	if lo != 7 || hi != 9 {
		t.Errorf("class2->class4 range = [%d, %d), want [7, 9)", lo, hi)
	}

	lo, hi = DailyPassengerRange(station.Class4, station.Class2)
	// same base, forward band [floor(9.6), floor(14.4)) = [9, 14)
	if lo != 9 || hi != 14 {
		t.Errorf("class4->class2 range = [%d, %d), want [9, 14)", lo, hi)
	}
}
