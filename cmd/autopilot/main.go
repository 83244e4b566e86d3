// Package main - autopilot
// Headless batch runner: plays a greedy strategy against the engine
// until bankruptcy or a day limit, then prints a run report. Useful for
// balance tuning and regression comparisons with a fixed seed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/dgideas/railway-magnate/internal/console"
	"github.com/dgideas/railway-magnate/internal/engine"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/config"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
	"github.com/dgideas/railway-magnate/internal/platform/rng"
)

func main() {
	seed := flag.Int64("seed", 1, "world and demand seed")
	days := flag.Int("days", 365, "maximum days to simulate")
	flag.Parse()

	cfg := config.Load()
	appLogger := logger.NewLogger()
	eventLog := events.NewEventLog(nil)
	sim := engine.NewEngine(cfg, eventLog, appLogger, rng.NewSeeded(*seed))

	dispatched := 0
	purchased := 0
	day := 0
	bankrupt := false

	for ; day < *days; day++ {
		purchased += buyAffordable(sim)
		dispatched += dispatchProfitable(sim, cfg.TrainTicketPrice)

		if err := sim.AdvanceTick(); err != nil {
			if errors.Is(err, engine.ErrBankrupt) {
				bankrupt = true
				break
			}
			fmt.Fprintln(os.Stderr, "tick failed:", err)
			os.Exit(1)
		}
	}

	arrivals := len(eventLog.GetByType(events.EventTypeTrainArrived))

	fmt.Println("=== autopilot report ===")
	fmt.Printf("seed:               %d\n", *seed)
	fmt.Printf("days simulated:     %s\n", humanize.Comma(int64(day)))
	fmt.Printf("final date:         %s\n", sim.CurrentDate().Format("2006-01-02"))
	fmt.Printf("stations purchased: %d\n", purchased)
	fmt.Printf("trains dispatched:  %d (%d arrived)\n", dispatched, arrivals)
	fmt.Printf("final balance:      %s\n", console.Balance(sim.Balance()))
	if bankrupt {
		fmt.Println("outcome:            BANKRUPT")
		os.Exit(1)
	}
	fmt.Println("outcome:            solvent")
}

// buyAffordable picks up the cheapest unused station while it costs
// less than half the balance, keeping a cash buffer for upkeep.
func buyAffordable(sim *engine.Engine) int {
	bought := 0
	for {
		bestID := ""
		bestPrice := 0
		for _, s := range sim.Stations() {
			if s.Enabled() {
				continue
			}
			if quote, err := sim.QuotePurchase(s.ID); err == nil {
				if bestID == "" || quote.Price < bestPrice {
					bestID = s.ID
					bestPrice = quote.Price
				}
			}
		}
		if bestID == "" || bestPrice*2 > sim.Balance() {
			return bought
		}
		if err := sim.Purchase(bestID); err != nil {
			return bought
		}
		bought++
	}
}

// dispatchProfitable sends a train on every route whose fare revenue
// beats the gas fee.
func dispatchProfitable(sim *engine.Engine, ticketPrice int) int {
	sent := 0
	stations := sim.Stations()
	for _, origin := range stations {
		if !origin.Enabled() {
			continue
		}
		for _, dest := range stations {
			if dest.ID == origin.ID || !dest.Enabled() {
				continue
			}
			quote, err := sim.QuoteDispatch(origin.ID, dest.ID)
			if err != nil {
				continue
			}
			if quote.Passengers == 0 {
				continue
			}
			revenue := quote.Passengers * ticketPrice
			if revenue <= quote.Cost {
				continue
			}
			if _, err := sim.Dispatch(origin.ID, dest.ID); err == nil {
				sent++
			}
		}
	}
	return sent
}
