// aviation/db.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"slices"
	"strings"
	"sync"

	"skylog/log"
	"skylog/util"

	"github.com/davecgh/go-spew/spew"
)

const (
	aircraftResource = "aircraft_db.json"
	airportsResource = "airports_db.json"
)

// Catalog indexes the two bundled reference datasets. It is read-only
// after LoadCatalog returns.
type Catalog struct {
	Aircraft []Aircraft // sorted by name, ascending
	Airports []Airport  // sorted by IATA code, ascending

	aircraftByID  map[string]int
	airportByIATA map[string]int
}

// LoadCatalog reads the aircraft and airport datasets from the given
// resources directory. A missing or malformed dataset degrades to an
// empty list with a logged warning; the app remains usable with an empty
// catalog.
func LoadCatalog(dir string, lg *log.Logger) *Catalog {
	var aircraft []Aircraft
	var airports []Airport

	var wg sync.WaitGroup
	wg.Add(1)
	go func() { aircraft = loadAircraft(dir, lg); wg.Done() }()
	wg.Add(1)
	go func() { airports = loadAirports(dir, lg); wg.Done() }()
	wg.Wait()

	return MakeCatalog(aircraft, airports)
}

// MakeCatalog builds a Catalog around already-loaded reference slices;
// mostly useful for tests that don't want on-disk datasets.
func MakeCatalog(aircraft []Aircraft, airports []Airport) *Catalog {
	c := &Catalog{Aircraft: aircraft, Airports: airports}

	c.aircraftByID = make(map[string]int, len(c.Aircraft))
	for i, ac := range c.Aircraft {
		if _, ok := c.aircraftByID[ac.ID]; !ok { // first match wins
			c.aircraftByID[ac.ID] = i
		}
	}
	c.airportByIATA = make(map[string]int, len(c.Airports))
	for i, ap := range c.Airports {
		code := strings.ToUpper(ap.IATA)
		if _, ok := c.airportByIATA[code]; !ok {
			c.airportByIATA[code] = i
		}
	}

	return c
}

func loadAircraft(dir string, lg *log.Logger) []Aircraft {
	b, err := util.LoadResource(dir, aircraftResource)
	if err != nil {
		lg.Warnf("%s: unable to read aircraft dataset: %v", aircraftResource, err)
		return nil
	}

	var aircraft []Aircraft
	if err := util.UnmarshalJSON(b, &aircraft); err != nil {
		lg.Warnf("%s: malformed aircraft dataset: %v", aircraftResource, err)
		return nil
	}

	slices.SortStableFunc(aircraft, func(a, b Aircraft) int { return strings.Compare(a.Name, b.Name) })
	return aircraft
}

func loadAirports(dir string, lg *log.Logger) []Airport {
	b, err := util.LoadResource(dir, airportsResource)
	if err != nil {
		lg.Warnf("%s: unable to read airport dataset: %v", airportsResource, err)
		return nil
	}

	var airports []Airport
	if err := util.UnmarshalJSON(b, &airports); err != nil {
		lg.Warnf("%s: malformed airport dataset: %v", airportsResource, err)
		return nil
	}

	slices.SortStableFunc(airports, func(a, b Airport) int { return strings.Compare(a.IATA, b.IATA) })
	return airports
}

// AircraftByID returns the first aircraft with the given id, if present.
func (c *Catalog) AircraftByID(id string) (*Aircraft, bool) {
	if i, ok := c.aircraftByID[id]; ok {
		return &c.Aircraft[i], true
	}
	return nil, false
}

// AirportByCode returns the airport with the given IATA code, matched
// case-insensitively, if present.
func (c *Catalog) AirportByCode(code string) (*Airport, bool) {
	if i, ok := c.airportByIATA[strings.ToUpper(code)]; ok {
		return &c.Airports[i], true
	}
	return nil, false
}

// CheckCatalog validates the loaded datasets, accumulating problems in the
// provided ErrorLogger so that one bad record doesn't hide the rest.
func (c *Catalog) CheckCatalog(e *util.ErrorLogger) {
	seen := make(map[string]struct{})
	for _, ac := range c.Aircraft {
		e.Push("Aircraft " + ac.ID)
		if ac.ID == "" {
			e.ErrorString("empty id")
		} else if _, dup := seen[ac.ID]; dup {
			e.ErrorString("duplicate id")
		}
		seen[ac.ID] = struct{}{}

		if v := ac.CruiseSpeedKMH; v != nil {
			limit := float64(1200)
			if ac.Category == CategorySupersonic {
				limit = 3500
			}
			if *v < 100 || *v > limit {
				e.ErrorString("aircraft's speed specification is questionable: %s", spew.Sdump(*v))
			}
		}
		if ac.RangeKM != nil && *ac.RangeKM <= 0 {
			e.ErrorString("aircraft's range specification is questionable: %s", spew.Sdump(*ac.RangeKM))
		}
		if ac.FuelBurnKGH != nil && *ac.FuelBurnKGH <= 0 {
			e.ErrorString("aircraft's fuel burn specification is questionable: %s", spew.Sdump(*ac.FuelBurnKGH))
		}
		e.Pop()
	}

	seenAp := make(map[string]struct{})
	for _, ap := range c.Airports {
		e.Push("Airport " + ap.IATA)
		if len(ap.IATA) != 3 {
			e.ErrorString("IATA code is not three characters")
		}
		code := strings.ToUpper(ap.IATA)
		if _, dup := seenAp[code]; dup {
			e.ErrorString("duplicate IATA code")
		}
		seenAp[code] = struct{}{}

		if ap.Latitude < -90 || ap.Latitude > 90 || ap.Longitude < -180 || ap.Longitude > 180 {
			e.ErrorString("location out of domain: (%f, %f)", ap.Latitude, ap.Longitude)
		}
		e.Pop()
	}
}
