// Package main - magnate-cli
// Interactive console for a local simulation run. This is the thin text
// adapter over the engine: it parses commands, asks for confirmation,
// and calls the two mutating operations plus the tick advance.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dgideas/railway-magnate/internal/console"
	"github.com/dgideas/railway-magnate/internal/engine"
	"github.com/dgideas/railway-magnate/internal/events"
	"github.com/dgideas/railway-magnate/internal/platform/config"
	"github.com/dgideas/railway-magnate/internal/platform/logger"
	"github.com/dgideas/railway-magnate/internal/platform/rng"
)

func main() {
	seed := flag.Int64("seed", 0, "seed for a reproducible world (0 = secure random)")
	flag.Parse()

	cfg := config.Load()
	appLogger := logger.NewLogger()
	eventLog := events.NewEventLog(nil)

	var random rng.Source
	if *seed != 0 {
		random = rng.NewSeeded(*seed)
	} else {
		random = rng.NewSecure()
	}

	sim := engine.NewEngine(cfg, eventLog, appLogger, random)

	fmt.Println("Railway Magnate: build a transit empire before the money runs out.")
	fmt.Println("Commands: stations, trains, balance, buy <id>, dispatch <from> <to>, next, quit")
	fmt.Println("Any other command also advances the day.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s | %s] > ", sim.CurrentDate().Format("2006-01-02"), console.Balance(sim.Balance()))
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			fmt.Println("Goodbye.")
			return

		case "stations":
			fmt.Print(console.StationList(sim.Stations()))

		case "trains":
			fmt.Print(console.TrainList(sim.Trains()))

		case "balance":
			fmt.Println(console.Balance(sim.Balance()))

		case "buy":
			if len(fields) < 2 {
				fmt.Println("usage: buy <station-id>")
				continue
			}
			handleBuy(sim, scanner, fields[1])

		case "dispatch":
			if len(fields) < 3 {
				fmt.Println("usage: dispatch <origin-id> <destination-id>")
				continue
			}
			handleDispatch(sim, scanner, fields[1], fields[2])

		default:
			tick(sim)
		}
	}
}

// tick advances one day; a bankrupt run ends the process.
func tick(sim *engine.Engine) {
	if err := sim.AdvanceTick(); err != nil {
		fmt.Printf("BANKRUPT on %s with %s. The company is dissolved.\n",
			sim.CurrentDate().Format("2006-01-02"), console.Balance(sim.Balance()))
		os.Exit(1)
	}
	fmt.Printf("A new day dawns: %s\n", sim.CurrentDate().Format("2006-01-02"))
}

// resolveStation accepts a full UUID or an unambiguous prefix.
func resolveStation(sim *engine.Engine, ref string) (string, error) {
	if _, ok := sim.StationByID(ref); ok {
		return ref, nil
	}
	var match string
	for _, s := range sim.Stations() {
		if strings.HasPrefix(s.ID, ref) || strings.EqualFold(s.Name, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous station reference %q", ref)
			}
			match = s.ID
		}
	}
	if match == "" {
		return "", engine.ErrUnknownStation
	}
	return match, nil
}

func confirm(scanner *bufio.Scanner) bool {
	fmt.Print("Confirm? [y/N] ")
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func handleBuy(sim *engine.Engine, scanner *bufio.Scanner, ref string) {
	id, err := resolveStation(sim, ref)
	if err != nil {
		fmt.Println(err)
		return
	}
	quote, err := sim.QuotePurchase(id)
	if err != nil {
		printRejection(err)
		return
	}
	fmt.Printf("Buy %s for %s (balance after: %s)\n", quote.Name, console.Balance(quote.Price), console.Balance(quote.BalanceAfter))
	if !confirm(scanner) {
		fmt.Println("Purchase cancelled.")
		return
	}
	if err := sim.Purchase(id); err != nil {
		printRejection(err)
		return
	}
	fmt.Println("Station acquired.")
}

func handleDispatch(sim *engine.Engine, scanner *bufio.Scanner, fromRef, toRef string) {
	originID, err := resolveStation(sim, fromRef)
	if err != nil {
		fmt.Println(err)
		return
	}
	destID, err := resolveStation(sim, toRef)
	if err != nil {
		fmt.Println(err)
		return
	}
	quote, err := sim.QuoteDispatch(originID, destID)
	if err != nil {
		printRejection(err)
		return
	}
	fmt.Printf("Dispatch over %.0f units: cost %s, carrying %d passengers\n", quote.Distance, console.Balance(quote.Cost), quote.Passengers)
	if !confirm(scanner) {
		fmt.Println("Dispatch cancelled.")
		return
	}
	if _, err := sim.Dispatch(originID, destID); err != nil {
		printRejection(err)
		return
	}
	fmt.Println("Train dispatched.")
}

func printRejection(err error) {
	switch {
	case errors.Is(err, engine.ErrInsufficientFunds):
		fmt.Println("Not enough money.")
	case errors.Is(err, engine.ErrStationNotForSale):
		fmt.Println("That station is not for sale.")
	case errors.Is(err, engine.ErrUnknownStation):
		fmt.Println("No such station.")
	default:
		fmt.Println(err)
	}
}
