// SPDX-License-Identifier: GPL-3.0
// Copyright 2026 The pssa Authors

// Package update applies a fired wrapper to the data model: the
// consuming and producing steps, delayed-reaction scheduling, and the
// dependency-driven propensity refresh that follows (spec §4.4).
package update

import (
	"sort"

	"github.com/pssago/pssa/internal/model"
)

// DelayedEntry is one scheduled future firing (spec's DelayedReaction).
type DelayedEntry struct {
	Wrapper   model.WrapperID
	Subvolume model.SubvolumeID
	Time      float64
	// Producing is true if the producing step still needs to run when
	// this entry fires (consuming delays already ran their consuming
	// step at insertion time; non-consuming delays run both steps now).
	Producing bool
}

// DelayQueue is a min-ordered container keyed by firing time, kept
// sorted non-decreasing at all times (spec §3.2, §4.4.2). Insertions are
// infrequent, so a sorted slice with binary-search insertion suffices
// (spec §9's own sizing note).
type DelayQueue struct {
	entries []DelayedEntry
}

// NewDelayQueue returns an empty queue.
func NewDelayQueue() *DelayQueue {
	return &DelayQueue{}
}

// Len returns the number of queued entries.
func (q *DelayQueue) Len() int {
	return len(q.entries)
}

// Insert adds e in sorted position by firing time. Entries with equal
// firing times keep insertion order (spec §5's ordering guarantee).
func (q *DelayQueue) Insert(e DelayedEntry) {
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].Time > e.Time
	})
	if len(q.entries) == i {
		q.entries = append(q.entries, e)
		return
	}
	q.entries = append(q.entries[:i+1], q.entries[i:]...)
	q.entries[i] = e
}

// PeekEarliest returns the earliest-firing entry without removing it.
func (q *DelayQueue) PeekEarliest() (DelayedEntry, bool) {
	if len(q.entries) == 0 {
		return DelayedEntry{}, false
	}
	return q.entries[0], true
}

// PopEarliest removes and returns the earliest-firing entry.
func (q *DelayQueue) PopEarliest() (DelayedEntry, bool) {
	if len(q.entries) == 0 {
		return DelayedEntry{}, false
	}
	e := q.entries[0]
	q.entries = q.entries[1:]
	return e, true
}

// Sorted reports whether the queue is still non-decreasing by firing
// time, for use in invariant checks and tests.
func (q *DelayQueue) Sorted() bool {
	for i := 1; i < len(q.entries); i++ {
		if q.entries[i-1].Time > q.entries[i].Time {
			return false
		}
	}
	return true
}
