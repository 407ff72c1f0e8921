// store/kv.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package store holds the user's persisted mutable state: the flight-log
// file channel (via skylog/logbook), the key-value channel for favorites
// and badge tracking, and the DataStore that composes everything into one
// serialized access point.
package store

import (
	"bytes"
	"compress/flate"
	"os"

	"skylog/log"
	"skylog/util"

	"github.com/vmihailenco/msgpack/v5"
)

// KV is a small persistent key-value store holding string sets. The whole
// store is a single msgpack-encoded, flate-compressed snapshot file,
// rewritten atomically on every mutation. A missing or corrupt file opens
// as an empty store.
type KV struct {
	path string
	lg   *log.Logger
	sets map[string][]string
}

func OpenKV(path string, lg *log.Logger) *KV {
	kv := &KV{path: path, lg: lg, sets: make(map[string][]string)}

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			lg.Warnf("%s: unable to read state store: %v", path, err)
		}
		return kv
	}
	defer f.Close()

	fr := flate.NewReader(f)
	defer fr.Close()

	if err := msgpack.NewDecoder(fr).Decode(&kv.sets); err != nil {
		lg.Warnf("%s: corrupt state store, starting empty: %v", path, err)
		kv.sets = make(map[string][]string)
	}
	return kv
}

// LoadSet returns the string set stored under key; an absent key is an
// empty set.
func (kv *KV) LoadSet(key string) map[string]struct{} {
	set := make(map[string]struct{}, len(kv.sets[key]))
	for _, s := range kv.sets[key] {
		set[s] = struct{}{}
	}
	return set
}

// SaveSet replaces the set stored under key and rewrites the snapshot.
// Values are written sorted so the file is deterministic for a given
// state.
func (kv *KV) SaveSet(key string, set map[string]struct{}) error {
	kv.sets[key] = util.SortedMapKeys(set)
	return kv.persist()
}

func (kv *KV) persist() error {
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestSpeed)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(fw).Encode(kv.sets); err != nil {
		return err
	}
	if err := fw.Close(); err != nil {
		return err
	}
	return util.WriteFileAtomic(kv.path, buf.Bytes())
}
