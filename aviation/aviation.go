// aviation/aviation.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"encoding/json"
	"strings"
)

// Aircraft is one entry in the bundled aircraft reference dataset. The
// dataset is loaded once at startup and never mutated.
type Aircraft struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Manufacturer        string           `json:"manufacturer"`
	IATA                string           `json:"iata_code,omitempty"`
	ICAO                string           `json:"icao_code,omitempty"`
	Category            AircraftCategory `json:"category"`
	Status              ProductionStatus `json:"production_status"`
	RangeKM             *float64         `json:"range_km,omitempty"`
	CruiseSpeedKMH      *float64         `json:"cruise_speed_kmh,omitempty"`
	Seating             string           `json:"seating,omitempty"`
	FirstFlightYear     *int             `json:"first_flight_year,omitempty"`
	ProductionStartYear *int             `json:"production_start_year,omitempty"`
	ProductionEndYear   *int             `json:"production_end_year,omitempty"`
	Intro               string           `json:"intro,omitempty"`
	FuelBurnKGH         *float64         `json:"fuel_burn_kgh,omitempty"`
	Images              []string         `json:"images,omitempty"`
}

// Airport is one entry in the bundled airport reference dataset; the IATA
// code doubles as its id.
type Airport struct {
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

///////////////////////////////////////////////////////////////////////////
// AircraftCategory

type AircraftCategory int

const (
	CategoryOther AircraftCategory = iota
	CategoryNarrowBody
	CategoryWideBody
	CategoryRegionalJet
	CategoryRegionalTurboprop
	CategoryBusinessJet
	CategoryFreighter
	CategorySupersonic
)

func (c AircraftCategory) String() string {
	switch c {
	case CategoryNarrowBody:
		return "narrow-body"
	case CategoryWideBody:
		return "wide-body"
	case CategoryRegionalJet:
		return "regional-jet"
	case CategoryRegionalTurboprop:
		return "regional-turboprop"
	case CategoryBusinessJet:
		return "business-jet"
	case CategoryFreighter:
		return "freighter"
	case CategorySupersonic:
		return "supersonic"
	default:
		return "other"
	}
}

// DecodeAircraftCategory maps a free-form category string to an
// AircraftCategory. The source datasets are inconsistent about spelling
// ("Regional_Turboprop", "regional turbo-prop", "cargo", ...), so matching
// is lenient: case and separators are ignored and substrings decide the
// category. Unrecognized values map to CategoryOther; decoding never
// fails.
func DecodeAircraftCategory(s string) AircraftCategory {
	n := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' {
			return r
		}
		return -1 // drop separators, digits, etc.
	}, s)

	switch {
	case strings.Contains(n, "supersonic"):
		return CategorySupersonic
	case strings.Contains(n, "freight"), strings.Contains(n, "cargo"):
		return CategoryFreighter
	case strings.Contains(n, "business"), strings.Contains(n, "bizjet"):
		return CategoryBusinessJet
	case strings.Contains(n, "narrow"):
		return CategoryNarrowBody
	case strings.Contains(n, "wide"):
		return CategoryWideBody
	case strings.Contains(n, "turbo"), strings.Contains(n, "prop"):
		return CategoryRegionalTurboprop
	case strings.Contains(n, "regional"):
		return CategoryRegionalJet
	default:
		return CategoryOther
	}
}

func (c AircraftCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *AircraftCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = DecodeAircraftCategory(s)
	return nil
}

///////////////////////////////////////////////////////////////////////////
// ProductionStatus

type ProductionStatus int

const (
	StatusInProduction ProductionStatus = iota
	StatusDiscontinued
)

func (p ProductionStatus) String() string {
	if p == StatusDiscontinued {
		return "discontinued"
	}
	return "in-production"
}

func DecodeProductionStatus(s string) ProductionStatus {
	n := strings.ToLower(s)
	if strings.Contains(n, "discontinu") || strings.Contains(n, "ended") {
		return StatusDiscontinued
	}
	return StatusInProduction
}

func (p ProductionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *ProductionStatus) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = DecodeProductionStatus(s)
	return nil
}
