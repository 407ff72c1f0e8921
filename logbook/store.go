// logbook/store.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package logbook

import (
	"fmt"
	"os"

	"skylog/log"
	"skylog/util"
)

// Store owns the persisted flight log: a JSON array in a single local
// file, rewritten atomically on every mutation. The in-memory slice is the
// source of truth for the session; a failed durable write is logged and
// swallowed rather than rolling back the mutation.
//
// Store does no locking of its own; callers serialize access (the
// DataStore holds the single mutex for all user state).
type Store struct {
	path    string
	lg      *log.Logger
	entries []Entry
	ids     map[string]struct{}
}

// OpenStore reads the flight log at path. A missing or corrupt file is
// treated the same as "no data yet": the store starts empty.
func OpenStore(path string, lg *log.Logger) *Store {
	s := &Store{path: path, lg: lg, ids: make(map[string]struct{})}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			lg.Warnf("%s: unable to read flight log: %v", path, err)
		}
		return s
	}

	var entries []Entry
	if err := util.UnmarshalJSON(b, &entries); err != nil {
		lg.Warnf("%s: corrupt flight log, starting empty: %v", path, err)
		return s
	}

	s.entries = entries
	for _, e := range entries {
		s.ids[e.ID] = struct{}{}
	}
	return s
}

// Entries returns a copy of the log in its current order.
func (s *Store) Entries() []Entry {
	return util.DuplicateSlice(s.entries)
}

func (s *Store) Len() int { return len(s.entries) }

// Append adds the entry to the end of the log and persists.
func (s *Store) Append(e Entry) {
	s.entries = append(s.entries, e)
	s.ids[e.ID] = struct{}{}
	s.persist()
}

// Remove deletes all entries whose id is in ids, persists, and returns
// the number removed.
func (s *Store) Remove(ids map[string]struct{}) int {
	before := len(s.entries)
	s.entries = util.FilterSlice(s.entries, func(e Entry) bool {
		_, drop := ids[e.ID]
		return !drop
	})
	for id := range ids {
		delete(s.ids, id)
	}

	removed := before - len(s.entries)
	if removed > 0 {
		s.persist()
	}
	return removed
}

// Export serializes the full log, in its current order, to a transportable
// JSON buffer. It returns an error rather than panicking if serialization
// fails.
func (s *Store) Export() ([]byte, error) {
	return marshalEntries(s.entries)
}

// ImportMerge deserializes an incoming JSON flight-log array and merges it
// by id: entries whose id already exists are skipped (first write wins, no
// overwrite), all others are appended in the incoming buffer's order. On a
// parse failure the store is left unmodified and a *ParseError is
// returned. Returns the number of entries appended.
func (s *Store) ImportMerge(b []byte) (int, error) {
	var incoming []Entry
	if err := util.UnmarshalJSON(b, &incoming); err != nil {
		return 0, &ParseError{Err: err}
	}

	added := 0
	for _, e := range incoming {
		if _, dup := s.ids[e.ID]; dup {
			continue
		}
		s.entries = append(s.entries, e)
		s.ids[e.ID] = struct{}{}
		added++
	}

	if added > 0 {
		s.persist()
	}
	return added, nil
}

// ImportFile reads the named file and merges it per ImportMerge. Read
// failures surface as plain IO errors, parse failures as *ParseError.
func (s *Store) ImportFile(path string) (int, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading flight log: %w", err)
	}
	return s.ImportMerge(b)
}

func (s *Store) persist() {
	b, err := marshalEntries(s.entries)
	if err != nil {
		s.lg.Errorf("%s: unable to encode flight log: %v", s.path, err)
		return
	}
	if err := util.WriteFileAtomic(s.path, b); err != nil {
		s.lg.Errorf("%s: unable to write flight log: %v", s.path, err)
	}
}
