// aviation/aviation_test.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"math"
	"testing"

	"skylog/util"
)

func TestDecodeAircraftCategory(t *testing.T) {
	type tc struct {
		s string
		c AircraftCategory
	}
	for _, test := range []tc{
		{s: "Regional Turboprop", c: CategoryRegionalTurboprop},
		{s: "regional_turbo", c: CategoryRegionalTurboprop},
		{s: "REGIONAL-TURBO-PROP", c: CategoryRegionalTurboprop},
		{s: "Regional Jet", c: CategoryRegionalJet},
		{s: "narrowbody", c: CategoryNarrowBody},
		{s: "Narrow-Body", c: CategoryNarrowBody},
		{s: "wide_body", c: CategoryWideBody},
		{s: "cargo", c: CategoryFreighter},
		{s: "Freighter", c: CategoryFreighter},
		{s: "Business Jet", c: CategoryBusinessJet},
		{s: "Supersonic", c: CategorySupersonic},
		{s: "Hypersonic Glider", c: CategoryOther},
		{s: "", c: CategoryOther},
	} {
		if got := DecodeAircraftCategory(test.s); got != test.c {
			t.Errorf("DecodeAircraftCategory(%q) = %v; expected %v", test.s, got, test.c)
		}
	}
}

func TestDecodeProductionStatus(t *testing.T) {
	if DecodeProductionStatus("Discontinued") != StatusDiscontinued {
		t.Errorf("expected discontinued")
	}
	if DecodeProductionStatus("In Production") != StatusInProduction {
		t.Errorf("expected in-production")
	}
}

func TestLoadCatalog(t *testing.T) {
	c := LoadCatalog("testdata", nil)

	if len(c.Aircraft) != 5 {
		t.Fatalf("loaded %d aircraft; expected 5", len(c.Aircraft))
	}
	// Sorted by name ascending.
	for i := 1; i < len(c.Aircraft); i++ {
		if c.Aircraft[i-1].Name > c.Aircraft[i].Name {
			t.Errorf("aircraft out of order: %q before %q", c.Aircraft[i-1].Name, c.Aircraft[i].Name)
		}
	}
	if len(c.Airports) != 5 {
		t.Fatalf("loaded %d airports; expected 5", len(c.Airports))
	}
	for i := 1; i < len(c.Airports); i++ {
		if c.Airports[i-1].IATA > c.Airports[i].IATA {
			t.Errorf("airports out of order: %q before %q", c.Airports[i-1].IATA, c.Airports[i].IATA)
		}
	}

	ac, ok := c.AircraftByID("dh8d")
	if !ok {
		t.Fatalf("dh8d not found")
	}
	if ac.Category != CategoryRegionalTurboprop {
		t.Errorf("dh8d category %v; expected regional turboprop", ac.Category)
	}
	if _, ok := c.AircraftByID("nonexistent"); ok {
		t.Errorf("unexpected match for bogus aircraft id")
	}

	for _, code := range []string{"JFK", "jfk", "Jfk"} {
		if ap, ok := c.AirportByCode(code); !ok {
			t.Errorf("AirportByCode(%q) not found", code)
		} else if ap.City != "New York" {
			t.Errorf("AirportByCode(%q) = %q", code, ap.Name)
		}
	}
	if _, ok := c.AirportByCode("XXX"); ok {
		t.Errorf("unexpected match for bogus airport code")
	}
}

func TestLoadCatalogMissing(t *testing.T) {
	// A bogus resources directory degrades to an empty catalog.
	c := LoadCatalog(t.TempDir(), nil)
	if len(c.Aircraft) != 0 || len(c.Airports) != 0 {
		t.Errorf("expected empty catalog, got %d aircraft, %d airports",
			len(c.Aircraft), len(c.Airports))
	}
	if _, ok := c.AircraftByID("a320"); ok {
		t.Errorf("unexpected aircraft lookup success in empty catalog")
	}
}

func TestCruiseSpeedResolution(t *testing.T) {
	v := float64(908)
	explicit := &Aircraft{Category: CategoryWideBody, CruiseSpeedKMH: &v}
	if s := CruiseSpeedKMH(explicit); s != 908 {
		t.Errorf("explicit cruise speed %v; expected 908", s)
	}

	type tc struct {
		ac   *Aircraft
		kmh  float64
		desc string
	}
	for _, test := range []tc{
		{ac: &Aircraft{Category: CategoryRegionalTurboprop}, kmh: 500, desc: "turboprop"},
		{ac: &Aircraft{Category: CategoryRegionalJet}, kmh: 780, desc: "regional jet"},
		{ac: &Aircraft{Category: CategoryWideBody}, kmh: 840, desc: "wide-body"},
		{ac: &Aircraft{Category: CategoryOther}, kmh: 840, desc: "other"},
		{ac: nil, kmh: 840, desc: "no aircraft"},
	} {
		if s := CruiseSpeedKMH(test.ac); s != test.kmh {
			t.Errorf("%s: cruise speed %v; expected %v", test.desc, s, test.kmh)
		}
	}
}

func TestEstimateFlight(t *testing.T) {
	// 840 km at 840 km/h is exactly 60 minutes.
	est := EstimateFlight(nil, 840)
	if est.Minutes != 60 {
		t.Errorf("didn't get 60 minutes for 840 km: %d", est.Minutes)
	}
	if est.FuelKG != nil || est.CO2KG != nil {
		t.Errorf("fuel/CO2 should be undefined with no aircraft")
	}

	// Fallback burn rate: 2600 kg over one hour, CO2 at 3.16x.
	ac := &Aircraft{Category: CategoryWideBody}
	est = EstimateFlight(ac, 840)
	if est.FuelKG == nil || math.Abs(*est.FuelKG-2600) > 1e-9 {
		t.Errorf("fuel estimate %v; expected 2600", est.FuelKG)
	}
	if est.CO2KG == nil || math.Abs(*est.CO2KG-2600*3.16) > 1e-9 {
		t.Errorf("CO2 estimate %v; expected %v", est.CO2KG, 2600*3.16)
	}

	// Explicit burn rate wins.
	burn := float64(1200)
	ac = &Aircraft{Category: CategoryWideBody, FuelBurnKGH: &burn}
	est = EstimateFlight(ac, 420) // 30 minutes
	if est.Minutes != 30 {
		t.Errorf("minutes %d; expected 30", est.Minutes)
	}
	if est.FuelKG == nil || math.Abs(*est.FuelKG-600) > 1e-9 {
		t.Errorf("fuel estimate %v; expected 600", est.FuelKG)
	}

	// Rounding: 100 km at 840 km/h is 7.14 minutes -> 7.
	if est := EstimateFlight(nil, 100); est.Minutes != 7 {
		t.Errorf("minutes %d; expected 7", est.Minutes)
	}
}

func TestRoutePlanner(t *testing.T) {
	c := LoadCatalog("testdata", nil)
	p := NewRoutePlanner(c)

	d, err := p.DistanceKM("JFK", "LHR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d < 5500 || d > 5600 {
		t.Errorf("JFK-LHR distance %v; expected about 5540 km", d)
	}

	// Second resolution hits the cache and must agree.
	d2, err := p.DistanceKM("jfk", "lhr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != d2 {
		t.Errorf("cached distance %v != %v", d2, d)
	}

	if _, err := p.DistanceKM("JFK", "XYZ"); err == nil {
		t.Errorf("expected error for unknown destination")
	}

	ac, _ := c.AircraftByID("a320")
	r, err := p.Simulate("AMS", "LHR", ac)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Origin.IATA != "AMS" || r.Destination.IATA != "LHR" {
		t.Errorf("route endpoints %s-%s", r.Origin.IATA, r.Destination.IATA)
	}
	if r.Estimate.Minutes <= 0 || r.Estimate.FuelKG == nil {
		t.Errorf("missing estimates in simulated route: %+v", r.Estimate)
	}
}

func TestCheckCatalog(t *testing.T) {
	var e util.ErrorLogger
	c := LoadCatalog("testdata", nil)
	c.CheckCatalog(&e)
	if e.HaveErrors() {
		t.Errorf("unexpected validation errors on test dataset:\n%s", e.String())
	}

	bad := float64(-100)
	c = &Catalog{
		Aircraft: []Aircraft{
			{ID: "x", Name: "X", RangeKM: &bad},
			{ID: "x", Name: "X again"},
		},
		Airports: []Airport{{IATA: "TOOLONG", Latitude: 91, Longitude: 10}},
	}
	e = util.ErrorLogger{}
	c.CheckCatalog(&e)
	if !e.HaveErrors() {
		t.Errorf("expected validation errors for malformed catalog")
	}
}
