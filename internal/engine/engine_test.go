package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/dgideas/railway-magnate/internal/domain/station"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/config"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
	"github.com/dgideas/railway-magnate/internal/platform/rng"
)

// testConfig builds a world with no generated stations so each scenario
// can register exactly the stations it needs.
func testConfig() *config.Config {
	return &config.Config{
		MapWidth:     1024,
		MapHeight:    1024,
		MapSplitX:    4,
		MapSplitY:    4,
		StationCount: 0,

		InitialBalance:    2000,
		GasFeePerDistance: 0.46,
		TrainCapacity:     240,
		TrainTicketPrice:  12,
		TrainSpeedPerDay:  80,
		StartDate:         time.Date(2021, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func newTestEngine(cfg *config.Config) *Engine {
	return NewEngine(cfg, events.NewEventLog(nil), logger.NewLogger(), rng.NewSeeded(1))
}

func TestPurchaseEnablesStationAndDebitsExactPrice(t *testing.T) {
	e := newTestEngine(testConfig())
	s := station.New(10, 10, station.Class5, 300)
	e.RegisterStation(s)

	if err := e.Purchase(s.ID); err != nil {
		t.Fatalf("Purchase failed: %v", err)
	}
	if s.Status != station.StatusEnabled {
		t.Errorf("status after purchase = %v, want enabled", s.Status)
	}
	if got := e.Balance(); got != 2000-300 {
		t.Errorf("balance after purchase = %d, want 1700", got)
	}
}

func TestPurchaseUnknownStation(t *testing.T) {
	e := newTestEngine(testConfig())

	err := e.Purchase("no-such-station")
	if !errors.Is(err, ErrUnknownStation) {
		t.Errorf("expected ErrUnknownStation, got %v", err)
	}
}

func TestPurchaseAlreadyOwnedStation(t *testing.T) {
	e := newTestEngine(testConfig())
	s := station.New(10, 10, station.Class5, 300)
	e.RegisterStation(s)

	if err := e.Purchase(s.ID); err != nil {
		t.Fatalf("first purchase failed: %v", err)
	}
	err := e.Purchase(s.ID)
	if !errors.Is(err, ErrStationNotForSale) {
		t.Errorf("expected ErrStationNotForSale, got %v", err)
	}
	if got := e.Balance(); got != 1700 {
		t.Errorf("rejected purchase moved the balance: %d", got)
	}
}

func TestPurchaseInsufficientFundsLeavesStateUntouched(t *testing.T) {
	e := newTestEngine(testConfig())
	s := station.New(10, 10, station.Class1, 2001)
	e.RegisterStation(s)

	err := e.Purchase(s.ID)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
	if s.Status != station.StatusUnused {
		t.Errorf("rejected purchase changed station status to %v", s.Status)
	}
	if got := e.Balance(); got != 2000 {
		t.Errorf("rejected purchase moved the balance: %d", got)
	}
}

func TestPurchaseExactBalanceSucceeds(t *testing.T) {
	e := newTestEngine(testConfig())
	s := station.New(10, 10, station.Class1, 2000)
	e.RegisterStation(s)

	if err := e.Purchase(s.ID); err != nil {
		t.Fatalf("purchase at exact balance rejected: %v", err)
	}
	if got := e.Balance(); got != 0 {
		t.Errorf("balance = %d, want 0", got)
	}
}

func TestDispatchCostAndPassengerClamp(t *testing.T) {
	e := newTestEngine(testConfig())
	origin := station.New(0, 0, station.Class1, 300)
	origin.Status = station.StatusEnabled
	dest := station.New(0, 100, station.Class1, 300)
	dest.Status = station.StatusEnabled
	e.RegisterStation(origin)
	e.RegisterStation(dest)
	origin.AddPending(dest.ID, 500)

	tr, err := e.Dispatch(origin.ID, dest.ID)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	// Distance 100 at 0.46 per unit truncates to 46.
	if got := e.Balance(); got != 2000-46 {
		t.Errorf("balance after dispatch = %d, want 1954", got)
	}
	if tr.Passengers != 240 {
		t.Errorf("train boarded %d passengers, want capacity 240", tr.Passengers)
	}
	if got := origin.PendingTo(dest.ID); got != 260 {
		t.Errorf("pending after dispatch = %d, want 260", got)
	}
	if got := len(e.Trains()); got != 1 {
		t.Errorf("trains in flight = %d, want 1", got)
	}
}

func TestDispatchSameStationRejected(t *testing.T) {
	e := newTestEngine(testConfig())
	s := station.New(0, 0, station.Class1, 300)
	s.Status = station.StatusEnabled
	e.RegisterStation(s)

	if _, err := e.Dispatch(s.ID, s.ID); !errors.Is(err, ErrSameStation) {
		t.Errorf("expected ErrSameStation, got %v", err)
	}
}

func TestDispatchEmptyRouteStillCostsGas(t *testing.T) {
	e := newTestEngine(testConfig())
	origin := station.New(0, 0, station.Class1, 300)
	origin.Status = station.StatusEnabled
	dest := station.New(0, 100, station.Class1, 300)
	dest.Status = station.StatusEnabled
	e.RegisterStation(origin)
	e.RegisterStation(dest)

	tr, err := e.Dispatch(origin.ID, dest.ID)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if tr.Passengers != 0 {
		t.Errorf("empty route boarded %d passengers", tr.Passengers)
	}
	if got := e.Balance(); got != 1954 {
		t.Errorf("balance = %d, want 1954", got)
	}
}

func TestQuoteDispatchDoesNotMutate(t *testing.T) {
	e := newTestEngine(testConfig())
	origin := station.New(0, 0, station.Class1, 300)
	origin.Status = station.StatusEnabled
	dest := station.New(0, 100, station.Class1, 300)
	dest.Status = station.StatusEnabled
	e.RegisterStation(origin)
	e.RegisterStation(dest)
	origin.AddPending(dest.ID, 50)

	q, err := e.QuoteDispatch(origin.ID, dest.ID)
	if err != nil {
		t.Fatalf("QuoteDispatch failed: %v", err)
	}
	if q.Cost != 46 || q.Passengers != 50 {
		t.Errorf("quote = cost %d passengers %d, want 46 and 50", q.Cost, q.Passengers)
	}
	if got := e.Balance(); got != 2000 {
		t.Errorf("quote moved the balance: %d", got)
	}
	if got := origin.PendingTo(dest.ID); got != 50 {
		t.Errorf("quote drained pending: %d", got)
	}
	if got := len(e.Trains()); got != 0 {
		t.Errorf("quote dispatched a train: %d in flight", got)
	}
}

func TestMaintenanceChargedOnlyOnTheFirst(t *testing.T) {
	cfg := testConfig()
	cfg.StartDate = time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)
	e := newTestEngine(cfg)
	s := station.New(10, 10, station.Class5, 300)
	s.Status = station.StatusEnabled
	e.RegisterStation(s)

	// Dec 31 -> Jan 1: a class 5 station owes 50.
	if err := e.AdvanceTick(); err != nil {
		t.Fatalf("AdvanceTick failed: %v", err)
	}
	if got := e.Balance(); got != 2000-50 {
		t.Errorf("balance after month boundary = %d, want 1950", got)
	}

	// Jan 1 -> Jan 2: no further charge.
	if err := e.AdvanceTick(); err != nil {
		t.Fatalf("AdvanceTick failed: %v", err)
	}
	if got := e.Balance(); got != 1950 {
		t.Errorf("balance mid-month = %d, want 1950", got)
	}
}

func TestMaintenanceSkipsUnownedStations(t *testing.T) {
	cfg := testConfig()
	cfg.StartDate = time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)
	e := newTestEngine(cfg)
	e.RegisterStation(station.New(10, 10, station.Class1, 1500))

	if err := e.AdvanceTick(); err != nil {
		t.Fatalf("AdvanceTick failed: %v", err)
	}
	if got := e.Balance(); got != 2000 {
		t.Errorf("unowned station was charged upkeep: balance %d", got)
	}
}

func TestBankruptcyIsTerminal(t *testing.T) {
	cfg := testConfig()
	cfg.InitialBalance = 10
	cfg.StartDate = time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)
	e := newTestEngine(cfg)
	s := station.New(10, 10, station.Class1, 1500)
	s.Status = station.StatusEnabled
	e.RegisterStation(s)

	// Jan 1 upkeep of 250 drives the balance to -240.
	err := e.AdvanceTick()
	if !errors.Is(err, ErrBankrupt) {
		t.Fatalf("expected ErrBankrupt, got %v", err)
	}
	if !e.Bankrupt() {
		t.Error("engine not marked bankrupt")
	}
	if got := len(e.eventLog.GetByType(events.EventTypeBankruptcy)); got != 1 {
		t.Errorf("bankruptcy events = %d, want 1", got)
	}

	// The terminal state holds: further ticks are refused.
	balance := e.Balance()
	if err := e.AdvanceTick(); !errors.Is(err, ErrBankrupt) {
		t.Errorf("tick after bankruptcy returned %v", err)
	}
	if got := e.Balance(); got != balance {
		t.Errorf("tick after bankruptcy moved the balance: %d -> %d", balance, got)
	}
}

func TestZeroBalanceIsSolvent(t *testing.T) {
	cfg := testConfig()
	cfg.InitialBalance = 50
	cfg.StartDate = time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC)
	e := newTestEngine(cfg)
	s := station.New(10, 10, station.Class5, 300)
	s.Status = station.StatusEnabled
	e.RegisterStation(s)

	// Upkeep of 50 lands exactly on zero, which is still solvent.
	if err := e.AdvanceTick(); err != nil {
		t.Fatalf("AdvanceTick at zero balance returned %v", err)
	}
	if e.Bankrupt() {
		t.Error("engine bankrupt at balance zero")
	}
}

func TestTickEmitsTimeTickEvent(t *testing.T) {
	e := newTestEngine(testConfig())

	if err := e.AdvanceTick(); err != nil {
		t.Fatalf("AdvanceTick failed: %v", err)
	}
	ticks := e.eventLog.GetByType(events.EventTypeTimeTick)
	if len(ticks) != 1 {
		t.Fatalf("tick events = %d, want 1", len(ticks))
	}
	if ticks[0].SimDate != "2021-01-16" {
		t.Errorf("tick date = %s, want 2021-01-16", ticks[0].SimDate)
	}
	if got := e.CurrentDate().Format("2006-01-02"); got != "2021-01-16" {
		t.Errorf("clock = %s, want 2021-01-16", got)
	}
}

func TestGeneratedWorldHasConfiguredStationCount(t *testing.T) {
	cfg := testConfig()
	cfg.StationCount = 10
	e := newTestEngine(cfg)

	stations := e.Stations()
	if len(stations) != 10 {
		t.Fatalf("generated %d stations, want 10", len(stations))
	}
	for _, s := range stations {
		if s.Status != station.StatusUnused {
			t.Errorf("station %s generated with status %v", s.ID, s.Status)
		}
		if s.Class < station.Class1 || s.Class > station.Class5 {
			t.Errorf("station %s has class %d", s.ID, s.Class)
		}
		if s.X < 0 || s.X >= cfg.MapWidth || s.Y < 0 || s.Y >= cfg.MapHeight {
			t.Errorf("station %s at (%d, %d) is off the map", s.ID, s.X, s.Y)
		}
		if s.Name == "" {
			t.Errorf("station %s has no name", s.ID)
		}
	}
}
