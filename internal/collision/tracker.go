// Package collision maps hashed keys to dense slot indices and detects hash collisions.
package collision

import (
	"github.com/arloliu/casestack/errs"
)

// Tracker assigns each distinct key a slot index in insertion order.
//
// Keys are looked up by their 64-bit hash first and then compared in full, so
// two keys sharing a hash are kept apart. The collision flag records that this
// happened at least once.
type Tracker struct {
	slots        map[uint64][]int // hash → slot indices
	keys         []string         // slot → key, in insertion order
	hasCollision bool
}

// NewTracker creates a new tracker.
func NewTracker() *Tracker {
	return &Tracker{
		slots: make(map[uint64][]int),
		keys:  make([]string, 0),
	}
}

// Track registers key under hash and returns its slot index.
// Returns ErrDuplicateTuple if the key is already tracked.
func (t *Tracker) Track(key string, hash uint64) (int, error) {
	bucket := t.slots[hash]
	for _, slot := range bucket {
		if t.keys[slot] == key {
			return slot, errs.ErrDuplicateTuple
		}
	}
	if len(bucket) > 0 {
		// Different key, same hash
		t.hasCollision = true
	}

	slot := len(t.keys)
	t.keys = append(t.keys, key)
	t.slots[hash] = append(bucket, slot)

	return slot, nil
}

// Lookup returns the slot index of key.
func (t *Tracker) Lookup(key string, hash uint64) (int, bool) {
	for _, slot := range t.slots[hash] {
		if t.keys[slot] == key {
			return slot, true
		}
	}

	return 0, false
}

// HasCollision returns true if two distinct keys shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Count returns the number of tracked keys.
func (t *Tracker) Count() int {
	return len(t.keys)
}

// Reset clears all tracked keys and collision state.
func (t *Tracker) Reset() {
	clear(t.slots)
	t.keys = t.keys[:0]
	t.hasCollision = false
}
