// geo/geo.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geo

import "math"

// EarthRadiusKM is the mean Earth radius used for great-circle distances.
const EarthRadiusKM = 6371.0

// DistanceKM returns the haversine great-circle distance in kilometers
// between two points given in decimal degrees. It is total: out-of-domain
// inputs produce a numeric result (possibly NaN) rather than an error;
// validating coordinates is the caller's responsibility.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	rad := func(d float64) float64 { return d / 180 * math.Pi }
	sqr := func(x float64) float64 { return x * x }

	phi1, lambda1 := rad(lat1), rad(lon1)
	phi2, lambda2 := rad(lat2), rad(lon2)
	dphi, dlambda := phi2-phi1, lambda2-lambda1

	x := sqr(math.Sin(dphi/2)) + math.Cos(phi1)*math.Cos(phi2)*sqr(math.Sin(dlambda/2))
	c := 2 * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))

	return EarthRadiusKM * c
}
