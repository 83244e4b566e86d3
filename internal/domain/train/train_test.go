package train

import "testing"

func TestArrivalBoundaryIsStrict(t *testing.T) {
	tr := New("origin", "dest", 80, 240, 12, 100, 800)

	for day := 1; day <= 10; day++ {
		tr.Advance()
	}
	if tr.Travelled != 800 {
		t.Fatalf("travelled = %v, want 800", tr.Travelled)
	}
	if tr.Arrived() {
		t.Error("train arrived at exactly the trip distance")
	}

	tr.Advance()
	if !tr.Arrived() {
		t.Error("train not arrived after exceeding the trip distance")
	}
}

func TestZeroDistanceTripNeedsOneDay(t *testing.T) {
	tr := New("origin", "dest", 80, 240, 12, 10, 0)

	if tr.Arrived() {
		t.Error("train arrived before its first day of travel")
	}
	tr.Advance()
	if !tr.Arrived() {
		t.Error("zero-distance trip not complete after one day")
	}
}

func TestRevenue(t *testing.T) {
	tr := New("origin", "dest", 80, 240, 12, 240, 500)
	if got := tr.Revenue(); got != 2880 {
		t.Errorf("full train revenue = %d, want 2880", got)
	}

	empty := New("origin", "dest", 80, 240, 12, 0, 500)
	if got := empty.Revenue(); got != 0 {
		t.Errorf("empty train revenue = %d, want 0", got)
	}
}
