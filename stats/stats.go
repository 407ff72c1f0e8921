// stats/stats.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package stats computes aggregate statistics over the user's flight log.
// Everything here is a pure function of the log and the reference catalog;
// nothing is cached, so results are always consistent with the current
// log.
package stats

import (
	"slices"
	"strings"

	"skylog/aviation"
	"skylog/logbook"
	"skylog/util"
)

type Stats struct {
	entries []logbook.Entry
	catalog *aviation.Catalog
}

func New(entries []logbook.Entry, catalog *aviation.Catalog) Stats {
	return Stats{entries: entries, catalog: catalog}
}

func (s Stats) TotalFlights() int { return len(s.entries) }

func (s Stats) TotalDistanceKM() float64 {
	return util.ReduceSlice(s.entries,
		func(e logbook.Entry, sum float64) float64 { return sum + e.DistanceKM }, 0)
}

// Bucket is one row of a keyed distance breakdown.
type Bucket struct {
	Key        string  `json:"key"`
	DistanceKM float64 `json:"distance_km"`
}

// Visits is one row of an airport visit-count breakdown.
type Visits struct {
	Code   string `json:"code"`
	Visits int    `json:"visits"`
}

// sortDescStable sorts descending by the given value, keeping first-seen
// order for ties so that breakdowns are reproducible run to run.
func sortDescStable[T any](rows []T, value func(T) float64) {
	slices.SortStableFunc(rows, func(a, b T) int {
		va, vb := value(a), value(b)
		if va > vb {
			return -1
		} else if va < vb {
			return 1
		}
		return 0
	})
}

// DistanceByManufacturer sums flown distance per manufacturer, descending.
// Flights whose aircraft isn't in the catalog are excluded; that is not an
// error, just a dangling reference.
func (s Stats) DistanceByManufacturer() []Bucket {
	index := make(map[string]int)
	var rows []Bucket
	for _, e := range s.entries {
		ac, ok := s.catalog.AircraftByID(e.AircraftID)
		if !ok {
			continue
		}
		i, seen := index[ac.Manufacturer]
		if !seen {
			i = len(rows)
			index[ac.Manufacturer] = i
			rows = append(rows, Bucket{Key: ac.Manufacturer})
		}
		rows[i].DistanceKM += e.DistanceKM
	}
	sortDescStable(rows, func(b Bucket) float64 { return b.DistanceKM })
	return rows
}

// AircraftDistance pairs a catalog aircraft with its summed flown
// distance.
type AircraftDistance struct {
	Aircraft   aviation.Aircraft `json:"aircraft"`
	DistanceKM float64           `json:"distance_km"`
}

// DistanceByAircraft sums flown distance per aircraft type, descending;
// aircraft not found in the catalog are excluded.
func (s Stats) DistanceByAircraft() []AircraftDistance {
	index := make(map[string]int)
	var rows []AircraftDistance
	for _, e := range s.entries {
		ac, ok := s.catalog.AircraftByID(e.AircraftID)
		if !ok {
			continue
		}
		i, seen := index[ac.ID]
		if !seen {
			i = len(rows)
			index[ac.ID] = i
			rows = append(rows, AircraftDistance{Aircraft: *ac})
		}
		rows[i].DistanceKM += e.DistanceKM
	}
	sortDescStable(rows, func(d AircraftDistance) float64 { return d.DistanceKM })
	return rows
}

// visitRows walks the log counting one visit per appearance of each
// airport code as origin and one as destination, in first-seen order.
func (s Stats) visitRows() []Visits {
	index := make(map[string]int)
	var rows []Visits
	count := func(code string) {
		code = strings.ToUpper(code)
		i, seen := index[code]
		if !seen {
			i = len(rows)
			index[code] = i
			rows = append(rows, Visits{Code: code})
		}
		rows[i].Visits++
	}
	for _, e := range s.entries {
		count(e.Origin)
		count(e.Destination)
	}
	return rows
}

// VisitsByAirport counts visits per airport code, descending. Codes are
// counted whether or not they resolve in the catalog.
func (s Stats) VisitsByAirport() []Visits {
	rows := s.visitRows()
	sortDescStable(rows, func(v Visits) float64 { return float64(v.Visits) })
	return rows
}

// DistanceByAirport sums the distance of every flight touching each
// airport (counted for both origin and destination), descending.
func (s Stats) DistanceByAirport() []Bucket {
	index := make(map[string]int)
	var rows []Bucket
	add := func(code string, km float64) {
		code = strings.ToUpper(code)
		i, seen := index[code]
		if !seen {
			i = len(rows)
			index[code] = i
			rows = append(rows, Bucket{Key: code})
		}
		rows[i].DistanceKM += km
	}
	for _, e := range s.entries {
		add(e.Origin, e.DistanceKM)
		add(e.Destination, e.DistanceKM)
	}
	sortDescStable(rows, func(b Bucket) float64 { return b.DistanceKM })
	return rows
}

// TopAirports returns the most-visited airports, at most limit of them.
func (s Stats) TopAirports(limit int) []Visits {
	rows := s.VisitsByAirport()
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// MostVisitedAirport returns the single most-visited airport; ties go to
// the airport first seen in the log.
func (s Stats) MostVisitedAirport() (Visits, bool) {
	rows := s.VisitsByAirport()
	if len(rows) == 0 {
		return Visits{}, false
	}
	return rows[0], true
}

func (s Stats) MaxSingleFlightKM() float64 {
	return util.ReduceSlice(s.entries,
		func(e logbook.Entry, m float64) float64 {
			if e.DistanceKM > m {
				return e.DistanceKM
			}
			return m
		}, 0)
}

func (s Stats) HasPremiumCabinFlight() bool {
	return slices.ContainsFunc(s.entries, func(e logbook.Entry) bool { return e.Cabin.Premium() })
}

// DistinctAircraftCount counts the distinct aircraft types flown,
// including dangling references (a type removed from the catalog was
// still flown).
func (s Stats) DistinctAircraftCount() int {
	ids := make(map[string]struct{})
	for _, e := range s.entries {
		if e.AircraftID != "" {
			ids[e.AircraftID] = struct{}{}
		}
	}
	return len(ids)
}

// DistinctAirportCount counts distinct airports visited, unioning origin
// and destination codes across all logged flights.
func (s Stats) DistinctAirportCount() int {
	return len(s.visitRows())
}

// TotalEstimatedFuelKG sums per-flight fuel estimates. Flights without a
// resolvable aircraft contribute nothing; their fuel use is undefined.
func (s Stats) TotalEstimatedFuelKG() float64 {
	var total float64
	for _, e := range s.entries {
		ac, _ := s.catalog.AircraftByID(e.AircraftID)
		if est := aviation.EstimateFlight(ac, e.DistanceKM); est.FuelKG != nil {
			total += *est.FuelKG
		}
	}
	return total
}

func (s Stats) TotalEstimatedCO2KG() float64 {
	var total float64
	for _, e := range s.entries {
		ac, _ := s.catalog.AircraftByID(e.AircraftID)
		if est := aviation.EstimateFlight(ac, e.DistanceKM); est.CO2KG != nil {
			total += *est.CO2KG
		}
	}
	return total
}

// CabinCount is the number of logged flights in one cabin class.
type CabinCount struct {
	Cabin   logbook.CabinClass `json:"cabin"`
	Flights int                `json:"flights"`
}

// CountByCabin returns flight counts for each cabin class in service-tier
// order; flights with no recorded cabin are omitted.
func (s Stats) CountByCabin() []CabinCount {
	counts := make(map[logbook.CabinClass]int)
	for _, e := range s.entries {
		if e.Cabin != "" {
			counts[e.Cabin]++
		}
	}

	var rows []CabinCount
	for _, c := range []logbook.CabinClass{logbook.CabinEconomy, logbook.CabinPremiumEconomy,
		logbook.CabinBusiness, logbook.CabinFirst} {
		if n := counts[c]; n > 0 {
			rows = append(rows, CabinCount{Cabin: c, Flights: n})
		}
	}
	return rows
}

// FlightsInCabin returns the logged flights in the given cabin class, in
// log order.
func (s Stats) FlightsInCabin(c logbook.CabinClass) []logbook.Entry {
	return util.FilterSlice(s.entries, func(e logbook.Entry) bool { return e.Cabin == c })
}
