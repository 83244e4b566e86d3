package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgideas/railway-magnate/internal/domain/rules"
	"github.com/dgideas/railway-magnate/internal/domain/station"
	"github.com/dgideas/railway-magnate/internal/domain/train"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/config"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
	"github.com/dgideas/railway-magnate/internal/platform/rng"
	"github.com/dgideas/railway-magnate/internal/worldmap"
)

// TickPayload is the data attached to each TimeTickEvent.
type TickPayload struct {
	Date           string `json:"date"`
	Balance        int    `json:"balance"`
	TrainsInFlight int    `json:"trains_in_flight"`
	StationsOwned  int    `json:"stations_owned"`
}

// PurchasePayload records a station acquisition for audit.
type PurchasePayload struct {
	StationID string `json:"station_id"`
	Price     int    `json:"price"`
	Balance   int    `json:"balance"`
}

// DispatchPayload records a train departure for audit.
type DispatchPayload struct {
	TrainID       string  `json:"train_id"`
	OriginID      string  `json:"origin_id"`
	DestinationID string  `json:"destination_id"`
	Cost          int     `json:"cost"`
	Passengers    int     `json:"passengers"`
	Distance      float64 `json:"distance"`
}

// BankruptcyPayload records the terminal insolvency for audit.
type BankruptcyPayload struct {
	Balance int    `json:"balance"`
	Date    string `json:"date"`
}

// PurchaseQuote is a read-only preview of a station acquisition.
type PurchaseQuote struct {
	StationID    string `json:"station_id"`
	Name         string `json:"name"`
	Price        int    `json:"price"`
	BalanceAfter int    `json:"balance_after"`
}

// DispatchQuote is a read-only preview of a train departure.
type DispatchQuote struct {
	OriginID      string  `json:"origin_id"`
	DestinationID string  `json:"destination_id"`
	Distance      float64 `json:"distance"`
	Cost          int     `json:"cost"`
	Passengers    int     `json:"passengers"`
	BalanceAfter  int     `json:"balance_after"`
}

// Engine is the simulation aggregate: it exclusively owns the station
// registry, the in-flight train set, the ledger and the clock, and
// advances them one day per tick.
type Engine struct {
	mu       sync.Mutex
	cfg      *config.Config
	eventLog *events.EventLog
	logger   *logger.Logger
	random   rng.Source

	world    *worldmap.Map
	stations []*station.Station
	byID     map[string]*station.Station
	trains   []*train.Train
	ledger   *Ledger
	clock    *Clock

	passengerSystem   *PassengerSystem
	transitSystem     *TransitSystem
	maintenanceSystem *MaintenanceSystem

	bankrupt bool
}

// NewEngine builds the simulation world and wires up the sub-systems.
func NewEngine(cfg *config.Config, eventLog *events.EventLog, log *logger.Logger, random rng.Source) *Engine {
	e := &Engine{
		cfg:      cfg,
		eventLog: eventLog,
		logger:   log,
		random:   random,

		world:  worldmap.New(cfg.MapWidth, cfg.MapHeight, cfg.MapSplitX, cfg.MapSplitY, random),
		byID:   make(map[string]*station.Station),
		ledger: NewLedger(cfg.InitialBalance),
		clock:  NewClock(cfg.StartDate),

		passengerSystem:   NewPassengerSystem(eventLog, log, random),
		transitSystem:     NewTransitSystem(eventLog, log),
		maintenanceSystem: NewMaintenanceSystem(eventLog, log),
	}

	e.generateStations()
	return e
}

// generateStations seeds the fixed station set: random positions and
// classes, prices drawn once from the class range, names from the map.
func (e *Engine) generateStations() {
	for i := 0; i < e.cfg.StationCount; i++ {
		x := e.random.Intn(e.cfg.MapWidth)
		y := e.random.Intn(e.cfg.MapHeight)
		class := station.Class(e.random.Intn(5) + 1)

		lo, hi := rules.AcquisitionPriceRange(class)
		price := lo + e.random.Intn(hi-lo)

		s := station.New(x, y, class, price)
		e.registerStationLocked(s)
	}
	e.logger.Info(fmt.Sprintf("World generated: %d stations on a %dx%d map", len(e.stations), e.cfg.MapWidth, e.cfg.MapHeight))
}

func (e *Engine) registerStationLocked(s *station.Station) {
	if s.Name == "" {
		s.Name = e.world.StationName(s.X, s.Y)
	}
	e.stations = append(e.stations, s)
	e.byID[s.ID] = s
}

// RegisterStation adds a station to the registry. World generation uses
// this internally; scenario bootstraps may inject prepared stations.
func (e *Engine) RegisterStation(s *station.Station) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registerStationLocked(s)
}

// Stations returns the registry in creation order.
func (e *Engine) Stations() []*station.Station {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stations
}

// StationByID resolves a station identifier.
func (e *Engine) StationByID(id string) (*station.Station, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.byID[id]
	return s, ok
}

// Trains returns a snapshot of the trains currently in flight.
func (e *Engine) Trains() []*train.Train {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*train.Train, len(e.trains))
	copy(out, e.trains)
	return out
}

// Balance returns the current ledger balance.
func (e *Engine) Balance() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Balance()
}

// CurrentDate returns the in-game calendar date.
func (e *Engine) CurrentDate() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clock.Now()
}

// Bankrupt reports whether the simulation has reached its terminal state.
func (e *Engine) Bankrupt() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bankrupt
}

// World exposes the display geography for the presentation layers.
func (e *Engine) World() *worldmap.Map {
	return e.world
}

// QuotePurchase previews a station acquisition without mutating state.
func (e *Engine) QuotePurchase(stationID string) (PurchaseQuote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.byID[stationID]
	if !ok {
		return PurchaseQuote{}, fmt.Errorf("purchase %s: %w", stationID, ErrUnknownStation)
	}
	if s.Status != station.StatusUnused {
		return PurchaseQuote{}, fmt.Errorf("purchase %s: %w", stationID, ErrStationNotForSale)
	}
	if !e.ledger.CanAfford(s.Price) {
		return PurchaseQuote{}, fmt.Errorf("purchase %s: %w", stationID, ErrInsufficientFunds)
	}
	return PurchaseQuote{
		StationID:    s.ID,
		Name:         s.Name,
		Price:        s.Price,
		BalanceAfter: e.ledger.Balance() - s.Price,
	}, nil
}

// Purchase acquires an unused station. Preconditions are re-checked
// under the lock; a rejection leaves the station and ledger untouched.
func (e *Engine) Purchase(stationID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.byID[stationID]
	if !ok {
		return fmt.Errorf("purchase %s: %w", stationID, ErrUnknownStation)
	}
	if s.Status != station.StatusUnused {
		return fmt.Errorf("purchase %s: %w", stationID, ErrStationNotForSale)
	}
	if !e.ledger.CanAfford(s.Price) {
		return fmt.Errorf("purchase %s: %w", stationID, ErrInsufficientFunds)
	}

	e.ledger.Debit(s.Price)
	s.Status = station.StatusEnabled

	e.eventLog.Append(events.GameEvent{
		ID:       events.GenerateEventID(),
		Type:     events.EventTypeStationPurchased,
		ActorID:  "PLAYER",
		TargetID: s.ID,
		Payload: PurchasePayload{
			StationID: s.ID,
			Price:     s.Price,
			Balance:   e.ledger.Balance(),
		},
		SimDate:   e.clock.DateString(),
		Timestamp: time.Now(),
	})
	e.logger.Event("PURCHASE", "PLAYER", fmt.Sprintf("station %s (%s) for %d", s.Name, s.ID, s.Price))
	return nil
}

// QuoteDispatch previews a train departure without mutating state.
func (e *Engine) QuoteDispatch(originID, destID string) (DispatchQuote, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quoteDispatchLocked(originID, destID)
}

func (e *Engine) quoteDispatchLocked(originID, destID string) (DispatchQuote, error) {
	origin, ok := e.byID[originID]
	if !ok {
		return DispatchQuote{}, fmt.Errorf("dispatch origin %s: %w", originID, ErrUnknownStation)
	}
	dest, ok := e.byID[destID]
	if !ok {
		return DispatchQuote{}, fmt.Errorf("dispatch destination %s: %w", destID, ErrUnknownStation)
	}
	if origin.ID == dest.ID {
		return DispatchQuote{}, ErrSameStation
	}

	distance := origin.Distance(dest)
	cost := int(e.cfg.GasFeePerDistance * distance)
	passengers := origin.PendingTo(dest.ID)
	if passengers > e.cfg.TrainCapacity {
		passengers = e.cfg.TrainCapacity
	}

	return DispatchQuote{
		OriginID:      origin.ID,
		DestinationID: dest.ID,
		Distance:      distance,
		Cost:          cost,
		Passengers:    passengers,
		BalanceAfter:  e.ledger.Balance() - cost,
	}, nil
}

// Dispatch sends a train from origin to destination: the gas fee is
// debited, pending passengers are drained up to the fleet capacity, and
// the train joins the in-flight set. Rejections mutate nothing.
func (e *Engine) Dispatch(originID, destID string) (*train.Train, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	quote, err := e.quoteDispatchLocked(originID, destID)
	if err != nil {
		return nil, err
	}
	origin := e.byID[quote.OriginID]

	e.ledger.Debit(quote.Cost)
	delivered := origin.DrainPending(quote.DestinationID, e.cfg.TrainCapacity)

	t := train.New(
		quote.OriginID, quote.DestinationID,
		e.cfg.TrainSpeedPerDay, e.cfg.TrainCapacity, e.cfg.TrainTicketPrice,
		delivered, quote.Distance,
	)
	e.trains = append(e.trains, t)

	e.eventLog.Append(events.GameEvent{
		ID:       events.GenerateEventID(),
		Type:     events.EventTypeTrainDispatched,
		ActorID:  "PLAYER",
		TargetID: t.ID,
		Payload: DispatchPayload{
			TrainID:       t.ID,
			OriginID:      t.OriginID,
			DestinationID: t.DestinationID,
			Cost:          quote.Cost,
			Passengers:    delivered,
			Distance:      quote.Distance,
		},
		SimDate:   e.clock.DateString(),
		Timestamp: time.Now(),
	})
	e.logger.Event("DISPATCH", "PLAYER", fmt.Sprintf("train %s with %d passengers, cost %d", t.ID, delivered, quote.Cost))
	return t, nil
}

// AdvanceTick processes one simulated day: settle yesterday's train
// positions, advance the calendar, charge upkeep on the first of the
// month, accrue demand, then check solvency. A negative balance at the
// end of the tick is terminal.
func (e *Engine) AdvanceTick() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.bankrupt {
		return ErrBankrupt
	}

	e.trains = e.transitSystem.Advance(e.trains, e.ledger, e.clock.DateString())

	e.clock.Advance()
	simDate := e.clock.DateString()

	if e.clock.IsMaintenanceDay() {
		e.maintenanceSystem.ChargeMonthly(e.stations, e.ledger, simDate)
	}

	e.passengerSystem.GenerateDaily(e.stations, simDate)

	owned := 0
	for _, s := range e.stations {
		if s.Enabled() {
			owned++
		}
	}
	e.eventLog.Append(events.GameEvent{
		ID:      events.GenerateEventID(),
		Type:    events.EventTypeTimeTick,
		ActorID: "SYSTEM_CLOCK",
		Payload: TickPayload{
			Date:           simDate,
			Balance:        e.ledger.Balance(),
			TrainsInFlight: len(e.trains),
			StationsOwned:  owned,
		},
		SimDate:   simDate,
		Timestamp: time.Now(),
	})

	if e.ledger.Insolvent() {
		e.bankrupt = true
		e.eventLog.Append(events.GameEvent{
			ID:      events.GenerateEventID(),
			Type:    events.EventTypeBankruptcy,
			ActorID: "SYSTEM_LEDGER",
			Payload: BankruptcyPayload{
				Balance: e.ledger.Balance(),
				Date:    simDate,
			},
			SimDate:   simDate,
			Timestamp: time.Now(),
		})
		e.logger.Error(fmt.Sprintf("BANKRUPTCY on %s with balance %d", simDate, e.ledger.Balance()))
		return ErrBankrupt
	}
	return nil
}
