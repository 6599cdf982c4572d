package cases

import (
	"fmt"
	"iter"

	"github.com/arloliu/casestack/errs"
)

// Lookup reports whether a case-tuple is present in a case-data mapping.
type Lookup interface {
	Has(t Tuple) bool
}

// Space is an ordered collection of cases defining the full combinatorial design.
type Space struct {
	cases  []Case
	byName map[string]int
	shape  []int
	size   int
}

// NewSpace creates a case space from cases in the given order.
//
// Returns ErrEmptySpace when no cases are given and ErrDuplicateCase when two
// cases share a shortname.
func NewSpace(cs ...Case) (*Space, error) {
	if len(cs) == 0 {
		return nil, errs.ErrEmptySpace
	}

	s := &Space{
		cases:  make([]Case, len(cs)),
		byName: make(map[string]int, len(cs)),
		shape:  make([]int, len(cs)),
		size:   1,
	}
	for i, c := range cs {
		if c.Shortname == "" {
			return nil, errs.ErrInvalidCaseName
		}
		if c.Len() == 0 {
			return nil, fmt.Errorf("case %q: %w", c.Shortname, errs.ErrEmptyCaseValues)
		}
		if _, dup := s.byName[c.Shortname]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateCase, c.Shortname)
		}
		s.byName[c.Shortname] = i
		s.cases[i] = c
		s.shape[i] = c.Len()
		s.size *= c.Len()
	}

	return s, nil
}

// Cases returns the cases in declared order.
func (s *Space) Cases() []Case {
	out := make([]Case, len(s.cases))
	copy(out, s.cases)

	return out
}

// Case returns the case with the given shortname.
func (s *Space) Case(shortname string) (Case, bool) {
	i, ok := s.byName[shortname]
	if !ok {
		return Case{}, false
	}

	return s.cases[i], true
}

// Len returns the number of cases.
func (s *Space) Len() int {
	return len(s.cases)
}

// Names returns the case shortnames in declared order.
func (s *Space) Names() []string {
	names := make([]string, len(s.cases))
	for i, c := range s.cases {
		names[i] = c.Shortname
	}

	return names
}

// AllValues returns, per case, the ordered list of values.
func (s *Space) AllValues() [][]string {
	out := make([][]string, len(s.cases))
	for i, c := range s.cases {
		out[i] = c.Values()
	}

	return out
}

// Shape returns the number of values of each case.
func (s *Space) Shape() []int {
	out := make([]int, len(s.shape))
	copy(out, s.shape)

	return out
}

// Size returns the number of case-tuples in the product.
func (s *Space) Size() int {
	return s.size
}

// First returns the first case-tuple of the canonical enumeration.
func (s *Space) First() Tuple {
	return s.TupleAt(0)
}

// TupleAt returns the case-tuple at flat index i in canonical order.
// It panics if i is out of range.
func (s *Space) TupleAt(i int) Tuple {
	if i < 0 || i >= s.size {
		panic(fmt.Sprintf("cases: tuple index %d out of range [0, %d)", i, s.size))
	}

	o := NewOdometer(s)
	o.Seek(i)

	return o.Tuple()
}

// Offset returns the flat index of a multi-index given in case order.
func (s *Space) Offset(idx []int) (int, error) {
	if len(idx) != len(s.cases) {
		return 0, fmt.Errorf("%w: got %d indices for %d cases", errs.ErrTupleLength, len(idx), len(s.cases))
	}

	flat := 0
	for d, i := range idx {
		if i < 0 || i >= s.shape[d] {
			return 0, fmt.Errorf("%w: index %d out of range for case %q", errs.ErrUnknownCaseValue, i, s.cases[d].Shortname)
		}
		flat = flat*s.shape[d] + i
	}

	return flat, nil
}

// Index returns the flat index of a case-tuple in canonical order.
func (s *Space) Index(t Tuple) (int, error) {
	if len(t) != len(s.cases) {
		return 0, fmt.Errorf("%w: got %d values for %d cases", errs.ErrTupleLength, len(t), len(s.cases))
	}

	flat := 0
	for d, v := range t {
		i, ok := s.cases[d].IndexOf(v)
		if !ok {
			return 0, fmt.Errorf("%w: %q for case %q", errs.ErrUnknownCaseValue, v, s.cases[d].Shortname)
		}
		flat = flat*s.shape[d] + i
	}

	return flat, nil
}

// Tuple builds a case-tuple from a shortname → value assignment. Every case
// must be assigned a known value.
func (s *Space) Tuple(assign map[string]string) (Tuple, error) {
	if len(assign) != len(s.cases) {
		return nil, fmt.Errorf("%w: got %d assignments for %d cases", errs.ErrTupleLength, len(assign), len(s.cases))
	}

	t := make(Tuple, len(s.cases))
	for d, c := range s.cases {
		v, ok := assign[c.Shortname]
		if !ok {
			return nil, fmt.Errorf("%w: case %q not assigned", errs.ErrTupleLength, c.Shortname)
		}
		if _, known := c.IndexOf(v); !known {
			return nil, fmt.Errorf("%w: %q for case %q", errs.ErrUnknownCaseValue, v, c.Shortname)
		}
		t[d] = v
	}

	return t, nil
}

// Products returns the canonical enumeration of case-tuples. The sequence is
// lazy and may be iterated any number of times.
func (s *Space) Products() iter.Seq[Tuple] {
	return func(yield func(Tuple) bool) {
		for _, t := range s.Range(0, s.size) {
			if !yield(t) {
				return
			}
		}
	}
}

// Indexed is like Products but also yields the flat index of each tuple.
func (s *Space) Indexed() iter.Seq2[int, Tuple] {
	return s.Range(0, s.size)
}

// Range enumerates the case-tuples with flat index in [start, end), clamped
// to the product size.
func (s *Space) Range(start, end int) iter.Seq2[int, Tuple] {
	return func(yield func(int, Tuple) bool) {
		lo, hi := max(start, 0), min(end, s.size)
		if lo >= hi {
			return
		}

		o := NewOdometer(s)
		o.Seek(lo)
		for {
			if !yield(o.Flat(), o.Tuple()) {
				return
			}
			if o.Flat()+1 >= hi || !o.Next() {
				return
			}
		}
	}
}

// ValidateCoverage checks that every canonical case-tuple is present in m.
// It returns a *errs.CoverageError naming the first missing tuple.
func (s *Space) ValidateCoverage(m Lookup) error {
	for t := range s.Products() {
		if !m.Has(t) {
			return &errs.CoverageError{Missing: t}
		}
	}

	return nil
}
