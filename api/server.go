// api/server.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package api exposes the data store over a small local HTTP API, meant
// to be consumed by a UI running on the same machine.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"skylog/log"
	"skylog/logbook"
	"skylog/store"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	ds *store.DataStore
	lg *log.Logger
}

// New constructs the HTTP router wired to the data store.
func New(ds *store.DataStore, lg *log.Logger) http.Handler {
	s := &Server{ds: ds, lg: lg}
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/aircraft", s.handleAircraft)
	r.Get("/aircraft/{id}", s.handleAircraftByID)
	r.Get("/airports", s.handleAirports)
	r.Get("/airports/{code}", s.handleAirportByCode)

	r.Get("/flights", s.handleFlights)
	r.Post("/flights", s.handleAddFlight)
	r.Delete("/flights/{id}", s.handleDeleteFlight)
	r.Get("/flights/export", s.handleExport)
	r.Post("/flights/import", s.handleImport)

	r.Post("/route/simulate", s.handleSimulate)
	r.Get("/stats/summary", s.handleSummary)

	r.Get("/badges", s.handleBadges)
	r.Get("/badges/pending", s.handlePendingBadge)
	r.Post("/badges/advance", s.handleAdvanceBadge)

	r.Get("/favorites", s.handleFavorites)
	r.Put("/favorites/{id}", s.handleAddFavorite)
	r.Delete("/favorites/{id}", s.handleRemoveFavorite)

	return r
}

func (s *Server) handleAircraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Catalog().Aircraft)
}

func (s *Server) handleAircraftByID(w http.ResponseWriter, r *http.Request) {
	ac, ok := s.ds.Catalog().AircraftByID(chi.URLParam(r, "id"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown aircraft")
		return
	}
	writeJSON(w, ac)
}

func (s *Server) handleAirports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Catalog().Airports)
}

func (s *Server) handleAirportByCode(w http.ResponseWriter, r *http.Request) {
	ap, ok := s.ds.Catalog().AirportByCode(chi.URLParam(r, "code"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown airport")
		return
	}
	writeJSON(w, ap)
}

func (s *Server) handleFlights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Flights())
}

func (s *Server) handleAddFlight(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date       string  `json:"date"`
		AircraftID string  `json:"aircraft_id"`
		Origin     string  `json:"origin"`
		Dest       string  `json:"destination"`
		DistanceKM float64 `json:"distance_km"`
		Note       string  `json:"note"`
		Cabin      string  `json:"cabin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if req.DistanceKM <= 0 {
		// Fill in the great-circle distance when the client doesn't know it.
		route, err := s.ds.SimulateRoute(req.Origin, req.Dest, "")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.DistanceKM = route.DistanceKM
	}

	e := logbook.NewEntry(date, req.AircraftID, req.Origin, req.Dest, req.DistanceKM)
	e.Note = req.Note
	e.Cabin = logbook.CabinClass(strings.ToLower(req.Cabin))

	unlocked := s.ds.AppendFlight(e)
	writeJSON(w, map[string]any{"entry": e, "badges_unlocked": unlocked})
}

func (s *Server) handleDeleteFlight(w http.ResponseWriter, r *http.Request) {
	if n := s.ds.RemoveFlights(chi.URLParam(r, "id")); n == 0 {
		writeJSONError(w, http.StatusNotFound, "unknown flight")
		return
	}
	writeJSON(w, map[string]int{"removed": 1})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	b, err := s.ds.ExportFlights()
	if err != nil {
		s.lg.Errorf("flight log export: %v", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="flight_log.json"`)
	w.Write(b)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	added, unlocked, err := s.ds.ImportFlights(b)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, map[string]int{"added": added, "badges_unlocked": unlocked})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Origin     string `json:"origin"`
		Dest       string `json:"destination"`
		AircraftID string `json:"aircraft_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "bad request")
		return
	}
	route, err := s.ds.SimulateRoute(req.Origin, req.Dest, req.AircraftID)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, route)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Stats().Summary())
}

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Badges())
}

func (s *Server) handlePendingBadge(w http.ResponseWriter, r *http.Request) {
	u, ok := s.ds.PopBadge()
	if !ok {
		writeJSON(w, map[string]bool{"pending": false})
		return
	}
	writeJSON(w, map[string]any{
		"pending": true, "badge": u.Badge,
		"major": u.Major, "more_pending": u.MorePending,
	})
}

func (s *Server) handleAdvanceBadge(w http.ResponseWriter, r *http.Request) {
	u, ok := s.ds.AdvanceBadge()
	if !ok {
		writeJSON(w, map[string]bool{"pending": false})
		return
	}
	writeJSON(w, map[string]any{
		"pending": true, "badge": u.Badge,
		"major": u.Major, "more_pending": u.MorePending,
	})
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Favorites())
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	s.ds.AddFavorite(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	s.ds.RemoveFavorite(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ===== helpers =====

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
