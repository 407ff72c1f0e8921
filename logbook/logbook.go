// logbook/logbook.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package logbook

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CabinClass is the service tier of a logged flight.
type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium-economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// Premium reports whether the cabin counts as a premium cabin for badge
// purposes.
func (c CabinClass) Premium() bool {
	return c == CabinBusiness || c == CabinFirst
}

// Entry is a single user-logged flight. The id is generated at creation
// and stable thereafter; it is the dedup key for import merges. The
// aircraft id is a foreign reference into the catalog and may dangle if
// the aircraft is later removed from the reference dataset, so lookups
// must tolerate a miss. The distance is captured at creation time and not
// recomputed.
type Entry struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	AircraftID  string     `json:"aircraft_id"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	DistanceKM  float64    `json:"distance_km"`
	Note        string     `json:"note,omitempty"`
	Cabin       CabinClass `json:"cabin,omitempty"`
}

// NewEntry returns an Entry with a fresh unique id.
func NewEntry(date time.Time, aircraftID, origin, dest string, distanceKM float64) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Date:        date,
		AircraftID:  aircraftID,
		Origin:      origin,
		Destination: dest,
		DistanceKM:  distanceKM,
	}
}

// ParseError wraps a JSON decoding failure from an import buffer.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "parsing flight log: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

func marshalEntries(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{} // an empty log serializes as [], not null
	}
	return json.MarshalIndent(entries, "", "    ")
}
