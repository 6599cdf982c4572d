// Package casemap provides the case-data mapping: case-tuple → per-case entry.
//
// Tuples are indexed by their 64-bit xxHash; distinct tuples sharing a hash are
// kept apart by full comparison. A Map is built once by the data provider and
// is read-only afterwards, at which point it is safe for concurrent readers.
package casemap

import (
	"fmt"

	"github.com/arloliu/casestack/cases"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/internal/collision"
	"github.com/arloliu/casestack/internal/hash"
	"github.com/arloliu/casestack/labeled"
)

// Source resolves case-tuples to per-case entries.
type Source interface {
	cases.Lookup
	Lookup(t cases.Tuple) (labeled.Entry, bool)
}

// Map is a hash-indexed case-data mapping. The zero value is an empty mapping
// ready to use.
type Map struct {
	tracker *collision.Tracker
	tuples  []cases.Tuple
	entries []labeled.Entry
}

var _ Source = (*Map)(nil)

// New returns an empty mapping.
func New() *Map {
	return &Map{tracker: collision.NewTracker()}
}

// Put stores the entry for t. The tuple is copied.
// Returns ErrDuplicateTuple if t is already present.
func (m *Map) Put(t cases.Tuple, e labeled.Entry) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: empty case-tuple", errs.ErrTupleLength)
	}

	if m.tracker == nil {
		m.tracker = collision.NewTracker()
	}
	if _, err := m.tracker.Track(t.Key(), hash.TupleID(t)); err != nil {
		return fmt.Errorf("%s: %w", t, err)
	}
	m.tuples = append(m.tuples, t.Clone())
	m.entries = append(m.entries, e)

	return nil
}

// MustPut is like Put but panics on error.
func (m *Map) MustPut(t cases.Tuple, e labeled.Entry) {
	if err := m.Put(t, e); err != nil {
		panic(err)
	}
}

// Lookup returns the entry stored for t.
func (m *Map) Lookup(t cases.Tuple) (labeled.Entry, bool) {
	slot, ok := m.slot(t)
	if !ok {
		return labeled.Entry{}, false
	}

	return m.entries[slot], true
}

// Has reports whether t is present.
func (m *Map) Has(t cases.Tuple) bool {
	_, ok := m.slot(t)
	return ok
}

func (m *Map) slot(t cases.Tuple) (int, bool) {
	if m.tracker == nil {
		return 0, false
	}

	return m.tracker.Lookup(t.Key(), hash.TupleID(t))
}

// Len returns the number of stored tuples.
func (m *Map) Len() int {
	if m.tracker == nil {
		return 0
	}

	return m.tracker.Count()
}

// Tuples returns the stored tuples in insertion order.
func (m *Map) Tuples() []cases.Tuple {
	out := make([]cases.Tuple, len(m.tuples))
	for i, t := range m.tuples {
		out[i] = t.Clone()
	}

	return out
}

// HasCollision reports whether two stored tuples shared a hash.
func (m *Map) HasCollision() bool {
	return m.tracker != nil && m.tracker.HasCollision()
}

// Reset removes every entry so the mapping can be refilled for another
// assembly.
func (m *Map) Reset() {
	if m.tracker != nil {
		m.tracker.Reset()
	}
	clear(m.entries)
	m.tuples = m.tuples[:0]
	m.entries = m.entries[:0]
}

// Func adapts a lookup function to a Source.
type Func func(t cases.Tuple) (labeled.Entry, bool)

var _ Source = Func(nil)

// Lookup calls f(t).
func (f Func) Lookup(t cases.Tuple) (labeled.Entry, bool) {
	return f(t)
}

// Has reports whether f resolves t.
func (f Func) Has(t cases.Tuple) bool {
	_, ok := f(t)
	return ok
}
