// aviation/estimate.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "math"

const (
	// Kilograms of CO2 emitted per kilogram of standard jet fuel burned.
	FuelCO2FactorKG = 3.16

	// Average burn rate for a jet whose dataset entry doesn't specify one.
	fallbackFuelBurnKGH = 2600

	defaultCruiseKMH   = 840
	regionalJetKMH     = 780
	turbopropCruiseKMH = 500
)

// Estimate holds derived time/fuel/CO2 figures for a flight of a known
// distance. FuelKG and CO2KG are nil when no aircraft is associated with
// the flight; without a burn rate they are undefined, not zero.
type Estimate struct {
	Minutes int      `json:"minutes"`
	FuelKG  *float64 `json:"fuel_kg,omitempty"`
	CO2KG   *float64 `json:"co2_kg,omitempty"`
}

// CruiseSpeedKMH resolves the cruise speed to use for estimates: the
// aircraft's explicit speed if it has one, else a category-based default.
// A nil aircraft gets the all-others default.
func CruiseSpeedKMH(ac *Aircraft) float64 {
	if ac != nil {
		if ac.CruiseSpeedKMH != nil && *ac.CruiseSpeedKMH > 0 {
			return *ac.CruiseSpeedKMH
		}
		switch ac.Category {
		case CategoryRegionalTurboprop:
			return turbopropCruiseKMH
		case CategoryRegionalJet:
			return regionalJetKMH
		}
	}
	return defaultCruiseKMH
}

// EstimateFlight derives time, fuel, and CO2 estimates for flying the
// given distance on the given aircraft (which may be nil).
func EstimateFlight(ac *Aircraft, distanceKM float64) Estimate {
	speed := CruiseSpeedKMH(ac)
	minutes := int(math.Round(distanceKM / speed * 60))
	est := Estimate{Minutes: minutes}

	if ac == nil {
		return est
	}

	burn := float64(fallbackFuelBurnKGH)
	if ac.FuelBurnKGH != nil && *ac.FuelBurnKGH > 0 {
		burn = *ac.FuelBurnKGH
	}
	fuel := burn * float64(minutes) / 60
	co2 := fuel * FuelCO2FactorKG
	est.FuelKG = &fuel
	est.CO2KG = &co2
	return est
}
