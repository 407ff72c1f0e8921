// badge/badge.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package badge computes achievement badges from flight-log statistics
// and tracks which ones have been earned and shown to the user.
package badge

import (
	"fmt"

	"skylog/stats"
	"skylog/util"
)

// Badge is one achievement: a named milestone predicate over the user's
// flight history. The title is the stable logical key; two badges with
// the same title are the same badge.
type Badge struct {
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	Achieved bool   `json:"achieved"`
	Detail   string `json:"detail"`
}

var distanceMilestones = []struct {
	km    float64
	title string
}{
	{10000, "10k km Club"},
	{50000, "50k km Club"},
	{100000, "100k km Club"},
	{250000, "250k km Club"},
	{1000000, "1M km Club"},
}

var flightCountMilestones = []struct {
	count int
	title string
}{
	{10, "10 Flights"},
	{50, "50 Flights"},
	{100, "100 Flights"},
}

const (
	titleTypeCollector   = "Type Collector"
	titleAirportExplorer = "Airport Explorer"
	titleWorldExplorer   = "World Explorer"
	titleLongHaul        = "Long-Haul"
	titlePremiumCabin    = "Premium Cabin Flyer"
	titleHubRegular      = "Hub Regular"

	longHaulKM   = 5000
	hubVisits    = 10
	typeCount    = 10
	airportCount = 20
	worldCount   = 50
)

// Compute evaluates the fixed badge catalog against the given statistics.
// It is a pure function: identical inputs always yield an identical badge
// sequence, and it is safe to call repeatedly (it is used for both display
// and internally by the Tracker).
//
// Two checks are conditional on the log being non-empty: "Long-Haul" and
// "Hub Regular" are omitted entirely, not just unachieved, when there are
// no flights.
func Compute(s stats.Stats) []Badge {
	var badges []Badge

	total := s.TotalDistanceKM()
	for _, m := range distanceMilestones {
		b := Badge{Title: m.title, Icon: "distance", Achieved: total >= m.km}
		if b.Achieved {
			b.Detail = fmt.Sprintf("%.0f km flown", total)
		} else {
			b.Detail = fmt.Sprintf("%.0f of %.0f km flown", total, m.km)
		}
		badges = append(badges, b)
	}

	flights := s.TotalFlights()
	for _, m := range flightCountMilestones {
		b := Badge{Title: m.title, Icon: "flights", Achieved: flights >= m.count}
		if b.Achieved {
			b.Detail = fmt.Sprintf("%d flights logged", flights)
		} else {
			b.Detail = fmt.Sprintf("%d of %d flights logged", flights, m.count)
		}
		badges = append(badges, b)
	}

	types := s.DistinctAircraftCount()
	badges = append(badges, Badge{
		Title: titleTypeCollector, Icon: "collection",
		Achieved: types >= typeCount,
		Detail:   fmt.Sprintf("%d of %d aircraft types flown", types, typeCount),
	})

	airports := s.DistinctAirportCount()
	badges = append(badges, Badge{
		Title: titleAirportExplorer, Icon: "airports",
		Achieved: airports >= airportCount,
		Detail:   fmt.Sprintf("%d of %d airports visited", airports, airportCount),
	})
	badges = append(badges, Badge{
		Title: titleWorldExplorer, Icon: "airports",
		Achieved: airports >= worldCount,
		Detail:   fmt.Sprintf("%d of %d airports visited", airports, worldCount),
	})

	if flights > 0 {
		longest := s.MaxSingleFlightKM()
		b := Badge{Title: titleLongHaul, Icon: "record", Achieved: longest >= longHaulKM}
		if b.Achieved {
			b.Detail = fmt.Sprintf("longest flight %.0f km", longest)
		} else {
			b.Detail = fmt.Sprintf("longest flight %.0f of %.0f km", longest, float64(longHaulKM))
		}
		badges = append(badges, b)
	}

	premium := s.HasPremiumCabinFlight()
	badges = append(badges, Badge{
		Title: titlePremiumCabin, Icon: "cabin",
		Achieved: premium,
		Detail: util.Select(premium, "flown in business or first",
			"no business or first cabin flights yet"),
	})

	if top, ok := s.MostVisitedAirport(); ok {
		b := Badge{Title: titleHubRegular, Icon: "hub", Achieved: top.Visits >= hubVisits}
		if b.Achieved {
			b.Detail = fmt.Sprintf("%d visits to %s", top.Visits, top.Code)
		} else {
			b.Detail = fmt.Sprintf("%d of %d visits to %s", top.Visits, hubVisits, top.Code)
		}
		badges = append(badges, b)
	}

	return badges
}
