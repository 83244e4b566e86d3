// Package console formats engine state for the text interface. It holds
// a read-only view and never mutates the simulation.
package console

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/dgideas/railway-magnate/internal/domain/rules"
	"github.com/dgideas/railway-magnate/internal/domain/station"
	"github.com/dgideas/railway-magnate/internal/domain/train"
)

// Balance renders a ledger amount with thousands separators.
func Balance(amount int) string {
	return "$" + humanize.Comma(int64(amount))
}

// Station renders one station line for the prompt. Capacity is the
// class rating shown on the sheet; trains run a fleet-wide constant.
func Station(s *station.Station) string {
	return fmt.Sprintf("%-8s  %-22s class %d (cap %d)  %-8s price %-8s at (%d, %d)",
		ShortID(s.ID), s.Name, s.Class, rules.Capacity(s.Class), s.Status, Balance(s.Price), s.X, s.Y)
}

// StationList renders the whole registry, one line per station.
func StationList(stations []*station.Station) string {
	var b strings.Builder
	for _, s := range stations {
		b.WriteString(Station(s))
		b.WriteByte('\n')
	}
	return b.String()
}

// Train renders one in-flight train with its trip progress.
func Train(t *train.Train) string {
	progress := 0.0
	if t.TripDistance > 0 {
		progress = t.Travelled / t.TripDistance * 100
		if progress > 100 {
			progress = 100
		}
	}
	return fmt.Sprintf("%-8s  %s -> %s  %s passengers  %.0f%% of %.0f units",
		ShortID(t.ID), ShortID(t.OriginID), ShortID(t.DestinationID),
		humanize.Comma(int64(t.Passengers)), progress, t.TripDistance)
}

// TrainList renders the in-flight set, one line per train.
func TrainList(trains []*train.Train) string {
	if len(trains) == 0 {
		return "no trains in flight\n"
	}
	var b strings.Builder
	for _, t := range trains {
		b.WriteString(Train(t))
		b.WriteByte('\n')
	}
	return b.String()
}

// ShortID abbreviates a UUID for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
