// api/server_test.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skylog/aviation"
	"skylog/store"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	burn := float64(2400)
	catalog := aviation.MakeCatalog(
		[]aviation.Aircraft{
			{ID: "a320", Name: "Airbus A320", Manufacturer: "Airbus",
				Category: aviation.CategoryNarrowBody, FuelBurnKGH: &burn},
		},
		[]aviation.Airport{
			{IATA: "JFK", Latitude: 40.6413, Longitude: -73.7781},
			{IATA: "LHR", Latitude: 51.47, Longitude: -0.4543},
		})
	ds, err := store.New(catalog, t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return New(ds, nil)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string, out any) int {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if out != nil && w.Code < 300 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: bad JSON response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

func TestCatalogEndpoints(t *testing.T) {
	h := testServer(t)

	var aircraft []aviation.Aircraft
	if code := doJSON(t, h, "GET", "/aircraft", "", &aircraft); code != http.StatusOK {
		t.Fatalf("GET /aircraft: %d", code)
	}
	if len(aircraft) != 1 || aircraft[0].ID != "a320" {
		t.Errorf("unexpected aircraft list: %+v", aircraft)
	}

	if code := doJSON(t, h, "GET", "/aircraft/nope", "", nil); code != http.StatusNotFound {
		t.Errorf("unknown aircraft should 404, got %d", code)
	}
	if code := doJSON(t, h, "GET", "/airports/jfk", "", nil); code != http.StatusOK {
		t.Errorf("airport lookup should be case-insensitive, got %d", code)
	}
}

func TestFlightLifecycle(t *testing.T) {
	h := testServer(t)

	var added struct {
		Entry struct {
			ID         string  `json:"id"`
			DistanceKM float64 `json:"distance_km"`
		} `json:"entry"`
		BadgesUnlocked int `json:"badges_unlocked"`
	}
	body := `{"date":"2025-06-01","aircraft_id":"a320","origin":"JFK","destination":"LHR","cabin":"Business"}`
	if code := doJSON(t, h, "POST", "/flights", body, &added); code != http.StatusOK {
		t.Fatalf("POST /flights: %d", code)
	}
	if added.Entry.DistanceKM < 5500 || added.Entry.DistanceKM > 5600 {
		t.Errorf("distance should be filled in from airport coordinates, got %v", added.Entry.DistanceKM)
	}
	// 5540 km first flight earns Long-Haul and Premium Cabin Flyer.
	if added.BadgesUnlocked != 2 {
		t.Errorf("expected 2 unlocks, got %d", added.BadgesUnlocked)
	}

	var pending struct {
		Pending     bool `json:"pending"`
		Badge       struct{ Title string }
		Major       bool `json:"major"`
		MorePending bool `json:"more_pending"`
	}
	if code := doJSON(t, h, "GET", "/badges/pending", "", &pending); code != http.StatusOK {
		t.Fatalf("GET /badges/pending: %d", code)
	}
	if !pending.Pending || !pending.Major || !pending.MorePending {
		t.Errorf("first pending badge should be major with more pending: %+v", pending)
	}
	doJSON(t, h, "POST", "/badges/advance", "", &pending)
	if !pending.Pending || pending.Major || pending.MorePending {
		t.Errorf("second pending badge should be minor and last: %+v", pending)
	}
	doJSON(t, h, "GET", "/badges/pending", "", &pending)
	if pending.Pending {
		t.Errorf("queue should be drained")
	}

	if code := doJSON(t, h, "DELETE", "/flights/"+added.Entry.ID, "", nil); code != http.StatusOK {
		t.Errorf("DELETE known flight: %d", code)
	}
	if code := doJSON(t, h, "DELETE", "/flights/"+added.Entry.ID, "", nil); code != http.StatusNotFound {
		t.Errorf("DELETE unknown flight should 404, got %d", code)
	}

	if code := doJSON(t, h, "POST", "/flights", `{"date":"June 1"}`, nil); code != http.StatusBadRequest {
		t.Errorf("bad date should 400, got %d", code)
	}
}

func TestSimulateAndSummary(t *testing.T) {
	h := testServer(t)

	var route aviation.Route
	body := `{"origin":"JFK","destination":"LHR","aircraft_id":"a320"}`
	if code := doJSON(t, h, "POST", "/route/simulate", body, &route); code != http.StatusOK {
		t.Fatalf("POST /route/simulate: %d", code)
	}
	if route.Estimate.Minutes == 0 || route.Estimate.FuelKG == nil {
		t.Errorf("simulation missing estimate: %+v", route.Estimate)
	}
	if code := doJSON(t, h, "POST", "/route/simulate", `{"origin":"JFK","destination":"XXX"}`, nil); code != http.StatusBadRequest {
		t.Errorf("unknown airport should 400, got %d", code)
	}

	var summary map[string]any
	if code := doJSON(t, h, "GET", "/stats/summary", "", &summary); code != http.StatusOK {
		t.Fatalf("GET /stats/summary: %d", code)
	}
	if _, ok := summary["total_flights"]; !ok {
		t.Errorf("summary missing total_flights: %v", summary)
	}
}

func TestFavoritesEndpoints(t *testing.T) {
	h := testServer(t)

	if code := doJSON(t, h, "PUT", "/favorites/a320", "", nil); code != http.StatusNoContent {
		t.Fatalf("PUT /favorites: %d", code)
	}
	var favs []string
	doJSON(t, h, "GET", "/favorites", "", &favs)
	if len(favs) != 1 || favs[0] != "a320" {
		t.Errorf("favorites = %v", favs)
	}
	if code := doJSON(t, h, "DELETE", "/favorites/a320", "", nil); code != http.StatusNoContent {
		t.Errorf("DELETE /favorites: %d", code)
	}
	doJSON(t, h, "GET", "/favorites", "", &favs)
	if len(favs) != 0 {
		t.Errorf("favorites after delete = %v", favs)
	}
}
