// store/favorites.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"skylog/log"
	"skylog/util"
)

const favoritesKey = "favorite_aircraft_ids"

// Favorites is the user's set of favorite aircraft ids, persisted through
// the KV store. Ids are opaque strings; favoriting an id the catalog
// doesn't know is allowed and harmless.
type Favorites struct {
	kv  *KV
	lg  *log.Logger
	ids map[string]struct{}
}

func OpenFavorites(kv *KV, lg *log.Logger) *Favorites {
	return &Favorites{kv: kv, lg: lg, ids: kv.LoadSet(favoritesKey)}
}

// Add marks id as a favorite. Adding an existing favorite is a no-op.
func (f *Favorites) Add(id string) {
	if _, ok := f.ids[id]; ok {
		return
	}
	f.ids[id] = struct{}{}
	f.persist()
}

// Remove unmarks id. Removing an absent id is a no-op.
func (f *Favorites) Remove(id string) {
	if _, ok := f.ids[id]; !ok {
		return
	}
	delete(f.ids, id)
	f.persist()
}

func (f *Favorites) Contains(id string) bool {
	_, ok := f.ids[id]
	return ok
}

// All returns the favorite ids sorted; the returned slice is the
// caller's to keep.
func (f *Favorites) All() []string {
	return util.SortedMapKeys(f.ids)
}

func (f *Favorites) Len() int { return len(f.ids) }

func (f *Favorites) persist() {
	if err := f.kv.SaveSet(favoritesKey, f.ids); err != nil {
		f.lg.Errorf("unable to persist favorites: %v", err)
	}
}
