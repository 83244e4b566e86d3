// Package worldmap produces the display geography of the simulation:
// named map regions and cosmetic station names. Nothing in here feeds
// back into pricing, demand, or transit numbers.
package worldmap

import (
	"fmt"

	"github.com/dgideas/railway-magnate/internal/platform/rng"
)

var regionNamePool = []string{
	"Bedok", "Maquanying", "Star Vista", "Xihongmen",
	"Dahongmen", "Jordan", "Tsim Sha Tsui", "Jiugong",
	"Xingong", "Majiapu", "Yishun", "Shunyi",
	"Chaoyang", "Workers Stadium", "Lakeside", "Raffles Place",
}

// Most draws yield no prefix/suffix; the blanks weight the pool.
var namePrefixes = []string{"", "", "", "", "", "", "", "", "", "", "New ", "Old "}

var nameSuffixes = []string{"", "", "", "", "", "", "", "", "", "", " East", " South", " West", " North"}

// Region is one named cell of the map grid.
type Region struct {
	StartX int    `json:"start_x"`
	StartY int    `json:"start_y"`
	Name   string `json:"name"`
}

// Map holds the region grid and hands out station names.
type Map struct {
	regions    []Region
	cellWidth  int
	cellHeight int
	usedNames  map[string]bool
	random     rng.Source
}

// New splits a width×height grid into splitX×splitY regions and names
// each from the pool without repeats.
func New(width, height, splitX, splitY int, random rng.Source) *Map {
	m := &Map{
		cellWidth:  width / splitX,
		cellHeight: height / splitY,
		usedNames:  make(map[string]bool),
		random:     random,
	}

	taken := make(map[string]bool, splitX*splitY)
	for x := 0; x < splitX; x++ {
		for y := 0; y < splitY; y++ {
			m.regions = append(m.regions, Region{
				StartX: m.cellWidth * x,
				StartY: m.cellHeight * y,
				Name:   pickUnused(regionNamePool, taken, random),
			})
		}
	}
	return m
}

// pickUnused draws a name not yet taken; once the pool is exhausted it
// numbers the overflow so oversized grids still terminate.
func pickUnused(pool []string, taken map[string]bool, random rng.Source) string {
	var free []string
	for _, name := range pool {
		if !taken[name] {
			free = append(free, name)
		}
	}
	if len(free) == 0 {
		name := fmt.Sprintf("%s %d", pool[random.Intn(len(pool))], len(taken))
		taken[name] = true
		return name
	}
	name := free[random.Intn(len(free))]
	taken[name] = true
	return name
}

// Regions returns the named grid cells.
func (m *Map) Regions() []Region {
	return m.regions
}

// RegionName returns the name of the region containing (x, y).
func (m *Map) RegionName(x, y int) string {
	canonicalX := x - (x % m.cellWidth)
	canonicalY := y - (y % m.cellHeight)
	for _, r := range m.regions {
		if r.StartX == canonicalX && r.StartY == canonicalY {
			return r.Name
		}
	}
	return ""
}

// StationName composes a unique display name for a station at (x, y):
// optional prefix, region name, optional directional suffix. Names whose
// first two characters repeat are rejected as unnatural, as are
// duplicates of names already handed out.
func (m *Map) StationName(x, y int) string {
	region := m.RegionName(x, y)
	for attempt := 0; attempt < 200; attempt++ {
		candidate := namePrefixes[m.random.Intn(len(namePrefixes))] + region + nameSuffixes[m.random.Intn(len(nameSuffixes))]
		runes := []rune(candidate)
		if len(runes) >= 2 && runes[0] == runes[1] {
			continue
		}
		if m.usedNames[candidate] {
			continue
		}
		m.usedNames[candidate] = true
		return candidate
	}
	// Every variant is taken; fall back to a numbered name.
	candidate := fmt.Sprintf("%s %d", region, len(m.usedNames))
	m.usedNames[candidate] = true
	return candidate
}
