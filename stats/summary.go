// stats/summary.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package stats

import (
	"github.com/iancoleman/orderedmap"
)

// Summary builds a JSON-marshalable overview of the flight log. Breakdown
// maps are ordered so the descending sort survives serialization; plain Go
// maps would shuffle the keys.
func (s Stats) Summary() *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("total_flights", s.TotalFlights())
	o.Set("total_distance_km", s.TotalDistanceKM())
	o.Set("max_single_flight_km", s.MaxSingleFlightKM())
	o.Set("estimated_fuel_kg", s.TotalEstimatedFuelKG())
	o.Set("estimated_co2_kg", s.TotalEstimatedCO2KG())
	o.Set("distinct_aircraft", s.DistinctAircraftCount())
	o.Set("distinct_airports", s.DistinctAirportCount())

	man := orderedmap.New()
	for _, b := range s.DistanceByManufacturer() {
		man.Set(b.Key, b.DistanceKM)
	}
	o.Set("distance_by_manufacturer", man)

	visits := orderedmap.New()
	for _, v := range s.VisitsByAirport() {
		visits.Set(v.Code, v.Visits)
	}
	o.Set("visits_by_airport", visits)

	dist := orderedmap.New()
	for _, b := range s.DistanceByAirport() {
		dist.Set(b.Key, b.DistanceKM)
	}
	o.Set("distance_by_airport", dist)

	cabins := orderedmap.New()
	for _, c := range s.CountByCabin() {
		cabins.Set(string(c.Cabin), c.Flights)
	}
	o.Set("flights_by_cabin", cabins)

	return o
}
