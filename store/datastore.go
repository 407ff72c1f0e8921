// store/datastore.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"os"
	"path/filepath"
	"sync"

	"skylog/aviation"
	"skylog/badge"
	"skylog/log"
	"skylog/logbook"
	"skylog/stats"
)

const (
	flightLogFilename = "flight_log.json"
	userStateFilename = "user_state.msgpack"
)

// KV satisfies the badge tracker's persistence needs.
var _ badge.SetStore = (*KV)(nil)

// DataStore is the single serialized access point for all of the user's
// data: the immutable reference catalog, the flight log, favorites, and
// the badge tracker. All methods are safe for concurrent use; internally
// a single mutex orders every operation, so each mutation observes the
// state left by the previous one.
//
// Every flight-log mutation follows the same sequence: mutate, persist,
// recompute stats, feed the badge tracker. Badge notifications therefore
// only ever reflect fully-persisted state.
type DataStore struct {
	mu sync.Mutex
	lg *log.Logger

	catalog *aviation.Catalog
	planner *aviation.RoutePlanner

	kv        *KV
	flights   *logbook.Store
	favorites *Favorites
	tracker   *badge.Tracker
}

// New opens (or creates) the user's data directory and assembles the
// DataStore. Opening never fails on bad data: missing or corrupt files
// start the corresponding store empty. The badge tracker's baseline is
// established here, before any mutation, so badges already achieved by
// the persisted log don't produce notifications.
func New(catalog *aviation.Catalog, dataDir string, lg *log.Logger) (*DataStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}

	kv := OpenKV(filepath.Join(dataDir, userStateFilename), lg)
	d := &DataStore{
		lg:        lg,
		catalog:   catalog,
		planner:   aviation.NewRoutePlanner(catalog),
		kv:        kv,
		flights:   logbook.OpenStore(filepath.Join(dataDir, flightLogFilename), lg),
		favorites: OpenFavorites(kv, lg),
		tracker:   badge.NewTracker(kv, lg),
	}

	d.tracker.Initialize(badge.Compute(d.statsLocked()))
	return d, nil
}

func (d *DataStore) statsLocked() stats.Stats {
	return stats.New(d.flights.Entries(), d.catalog)
}

// updateBadgesLocked recomputes badges from current stats and feeds the
// tracker; it returns how many new unlocks were queued.
func (d *DataStore) updateBadgesLocked() int {
	return d.tracker.Update(badge.Compute(d.statsLocked()))
}

func (d *DataStore) Catalog() *aviation.Catalog { return d.catalog }

///////////////////////////////////////////////////////////////////////////
// Flight log

func (d *DataStore) Flights() []logbook.Entry {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flights.Entries()
}

// AppendFlight records a flight and returns the number of badge unlocks
// it queued.
func (d *DataStore) AppendFlight(e logbook.Entry) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.flights.Append(e)
	return d.updateBadgesLocked()
}

// RemoveFlights deletes the entries with the given ids; unknown ids are
// ignored. It returns how many entries were removed. Badges are
// re-evaluated afterwards (earned badges are never revoked, but the
// achieved/progress view changes).
func (d *DataStore) RemoveFlights(ids ...string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	n := d.flights.Remove(set)
	if n > 0 {
		d.updateBadgesLocked()
	}
	return n
}

// ImportFlights merges a JSON flight-log export into the log, skipping
// entries whose id is already present. It returns the number of entries
// added and of badge unlocks queued. On a decode error the log is
// untouched.
func (d *DataStore) ImportFlights(b []byte) (added, queued int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	added, err = d.flights.ImportMerge(b)
	if err != nil {
		return 0, 0, err
	}
	if added > 0 {
		queued = d.updateBadgesLocked()
	}
	return added, queued, nil
}

// ExportFlights returns the flight log as JSON, suitable for
// ImportFlights on another device.
func (d *DataStore) ExportFlights() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flights.Export()
}

///////////////////////////////////////////////////////////////////////////
// Stats and routes

func (d *DataStore) Stats() stats.Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statsLocked()
}

// SimulateRoute plans the route between two airports, optionally under a
// specific aircraft; an empty or unknown aircraft id yields distance and
// time from default assumptions with no fuel estimate.
func (d *DataStore) SimulateRoute(origin, destination, aircraftID string) (aviation.Route, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ac *aviation.Aircraft
	if aircraftID != "" {
		ac, _ = d.catalog.AircraftByID(aircraftID)
	}
	return d.planner.Simulate(origin, destination, ac)
}

///////////////////////////////////////////////////////////////////////////
// Badges

// Badges returns the full badge list, achieved and not, in catalog
// order.
func (d *DataStore) Badges() []badge.Badge {
	d.mu.Lock()
	defer d.mu.Unlock()
	return badge.Compute(d.statsLocked())
}

// PopBadge dequeues the next pending badge notification; ok is false
// when none are pending.
func (d *DataStore) PopBadge() (badge.Unlock, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.Pop()
}

// AdvanceBadge acknowledges the currently-shown notification and moves
// to the next one.
func (d *DataStore) AdvanceBadge() (badge.Unlock, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.Advance()
}

func (d *DataStore) PeekBadge() (badge.Badge, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.Peek()
}

func (d *DataStore) PendingBadges() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tracker.Pending()
}

///////////////////////////////////////////////////////////////////////////
// Favorites

func (d *DataStore) AddFavorite(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.favorites.Add(id)
}

func (d *DataStore) RemoveFavorite(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.favorites.Remove(id)
}

func (d *DataStore) IsFavorite(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.favorites.Contains(id)
}

func (d *DataStore) Favorites() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.favorites.All()
}
