// badge/tracker.go
// Copyright(c) 2025 skylog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package badge

import (
	"skylog/log"
	"skylog/util"
)

// Keys under which the tracking sets are persisted in the key-value
// store.
const (
	EarnedTitlesKey = "earned_badge_titles"
	ShownTitlesKey  = "displayed_badge_titles"
)

// SetStore is the persistence channel for the tracking sets. A missing or
// unreadable key loads as an empty set (treated the same as "no data
// yet").
type SetStore interface {
	LoadSet(key string) map[string]struct{}
	SaveSet(key string, set map[string]struct{}) error
}

// Tracker is the stateful side of the badge engine. It remembers which
// badge titles have ever been observed achieved (earned, monotonically
// growing) and which have been delivered to the user (shown), and it
// maintains the volatile queue of earned-but-unshown badges awaiting
// presentation.
//
// The pending queue is deliberately not persisted: shown-set gating means
// a restart mid-queue re-derives nothing incorrectly, though a badge
// whose display was interrupted before the shown persist completed is not
// re-queued (see Update).
type Tracker struct {
	store SetStore
	lg    *log.Logger

	earned map[string]struct{}
	shown  map[string]struct{}

	pending     []Badge
	newBatch    bool
	initialized bool
}

func NewTracker(store SetStore, lg *log.Logger) *Tracker {
	return &Tracker{
		store:  store,
		lg:     lg,
		earned: store.LoadSet(EarnedTitlesKey),
		shown:  store.LoadSet(ShownTitlesKey),
	}
}

// Initialize performs the one-time baseline reconciliation at startup:
// titles currently achieved are merged into the earned set and persisted,
// without queueing any notifications. Progress made before tracking
// existed (or while the app was closed) must never be announced as new.
// Until Initialize runs, Update is a no-op.
func (t *Tracker) Initialize(current []Badge) {
	changed := false
	for _, b := range current {
		if b.Achieved {
			if _, ok := t.earned[b.Title]; !ok {
				t.earned[b.Title] = struct{}{}
				changed = true
			}
		}
	}
	if changed {
		t.persistEarned()
	}
	t.initialized = true
}

// Update reconciles the tracker with a freshly computed badge set after a
// flight-log mutation. Newly earned titles are persisted into the earned
// set immediately, before anything is handed to the presentation layer,
// so a crash during display can never lose track of what was earned.
// Titles not yet shown are then appended to the pending queue in catalog
// order. Returns the number of badges queued.
//
// A title that is earned but already marked shown is skipped rather than
// re-queued; and a title earned in a previous run whose display never
// completed will not reappear here, since it is no longer newly earned.
func (t *Tracker) Update(current []Badge) int {
	if !t.initialized {
		return 0
	}

	var newly []Badge
	for _, b := range current {
		if b.Achieved {
			if _, ok := t.earned[b.Title]; !ok {
				newly = append(newly, b)
			}
		}
	}
	if len(newly) == 0 {
		return 0
	}

	for _, b := range newly {
		t.earned[b.Title] = struct{}{}
	}
	t.persistEarned()

	queued := 0
	for _, b := range newly {
		if _, seen := t.shown[b.Title]; seen {
			continue
		}
		if len(t.pending) == 0 {
			t.newBatch = true
		}
		t.pending = append(t.pending, b)
		queued++
	}
	return queued
}

// Unlock is one badge handed to the presentation layer.
type Unlock struct {
	Badge Badge
	// Major is set for the first badge of a batch, which is eligible for
	// celebratory treatment; followers in the same batch are not.
	Major bool
	// MorePending tells the caller to expect another Advance after this
	// badge is dismissed.
	MorePending bool
}

// Pop removes the head of the pending queue and returns it for display.
// The title is marked shown and persisted before the badge is returned,
// so a crash during presentation cannot cause a re-show.
func (t *Tracker) Pop() (Unlock, bool) {
	if len(t.pending) == 0 {
		return Unlock{}, false
	}

	b := t.pending[0]
	t.pending = t.pending[1:]

	t.shown[b.Title] = struct{}{}
	t.persistShown()

	u := Unlock{Badge: b, Major: t.newBatch, MorePending: len(t.pending) > 0}
	t.newBatch = false
	return u, true
}

// Advance is called after the user dismisses the current badge; it pops
// the next pending badge if there is one.
func (t *Tracker) Advance() (Unlock, bool) { return t.Pop() }

// Peek returns the head of the pending queue without consuming it.
func (t *Tracker) Peek() (Badge, bool) {
	if len(t.pending) == 0 {
		return Badge{}, false
	}
	return t.pending[0], true
}

func (t *Tracker) Pending() int { return len(t.pending) }

// EarnedTitles returns a copy of the earned set.
func (t *Tracker) EarnedTitles() map[string]struct{} {
	return util.DuplicateSet(t.earned)
}

// ShownTitles returns a copy of the shown set.
func (t *Tracker) ShownTitles() map[string]struct{} {
	return util.DuplicateSet(t.shown)
}

// Persistence failures are logged and swallowed: the in-memory sets
// remain authoritative for the session even if durability failed.
func (t *Tracker) persistEarned() {
	if err := t.store.SaveSet(EarnedTitlesKey, t.earned); err != nil {
		t.lg.Errorf("%s: unable to persist earned badges: %v", EarnedTitlesKey, err)
	}
}

func (t *Tracker) persistShown() {
	if err := t.store.SaveSet(ShownTitlesKey, t.shown); err != nil {
		t.lg.Errorf("%s: unable to persist shown badges: %v", ShownTitlesKey, err)
	}
}
