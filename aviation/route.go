// aviation/route.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"errors"
	"fmt"
	"strings"

	"skylog/geo"

	lru "github.com/hashicorp/golang-lru/v2"
)

var ErrUnknownAirport = errors.New("airport not present in catalog")

// Route is a simulated great-circle route between two catalog airports.
type Route struct {
	Origin      Airport  `json:"origin"`
	Destination Airport  `json:"destination"`
	DistanceKM  float64  `json:"distance_km"`
	Estimate    Estimate `json:"estimate"`
}

// RoutePlanner resolves airport pairs to great-circle distances and
// per-aircraft estimates. Pair distances are cached; users tend to
// resimulate the same handful of routes while comparing aircraft.
type RoutePlanner struct {
	catalog   *Catalog
	distances *lru.Cache[[2]string, float64]
}

func NewRoutePlanner(c *Catalog) *RoutePlanner {
	cache, err := lru.New[[2]string, float64](512)
	if err != nil {
		panic(err) // only fails for non-positive size
	}
	return &RoutePlanner{catalog: c, distances: cache}
}

// DistanceKM returns the great-circle distance between the two airports
// given by IATA code, or an ErrUnknownAirport error wrapping the offending
// code.
func (p *RoutePlanner) DistanceKM(origin, dest string) (float64, error) {
	key := [2]string{strings.ToUpper(origin), strings.ToUpper(dest)}
	if d, ok := p.distances.Get(key); ok {
		return d, nil
	}

	o, ok := p.catalog.AirportByCode(origin)
	if !ok {
		return 0, fmt.Errorf("%s: %w", origin, ErrUnknownAirport)
	}
	d, ok := p.catalog.AirportByCode(dest)
	if !ok {
		return 0, fmt.Errorf("%s: %w", dest, ErrUnknownAirport)
	}

	dist := geo.DistanceKM(o.Latitude, o.Longitude, d.Latitude, d.Longitude)
	p.distances.Add(key, dist)
	return dist, nil
}

// Simulate builds a Route between two airports, with estimates for the
// given aircraft (which may be nil for a generic simulation).
func (p *RoutePlanner) Simulate(origin, dest string, ac *Aircraft) (Route, error) {
	dist, err := p.DistanceKM(origin, dest)
	if err != nil {
		return Route{}, err
	}

	// Lookups can't fail here; DistanceKM just resolved both codes.
	o, _ := p.catalog.AirportByCode(origin)
	d, _ := p.catalog.AirportByCode(dest)

	return Route{
		Origin:      *o,
		Destination: *d,
		DistanceKM:  dist,
		Estimate:    EstimateFlight(ac, dist),
	}, nil
}
