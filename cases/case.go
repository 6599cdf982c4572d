package cases

import (
	"fmt"
	"slices"

	"github.com/arloliu/casestack/errs"
)

// Case is a named categorical dimension with an ordered list of values.
//
// The order of values is significant: it fixes the order of the case axis in
// every assembled master.
type Case struct {
	// Shortname is the unique identifier of the case, used as dimension and
	// coordinate name.
	Shortname string
	// Longname is a human-readable description stored as coordinate metadata.
	Longname string

	values []string
	index  map[string]int
}

// NewCase creates a case from an explicit list of values.
//
// Returns ErrInvalidCaseName for an empty shortname, ErrEmptyCaseValues when
// no values are given and ErrDuplicateCaseValue when a value repeats.
func NewCase(shortname, longname string, values ...string) (Case, error) {
	if shortname == "" {
		return Case{}, errs.ErrInvalidCaseName
	}
	if len(values) == 0 {
		return Case{}, fmt.Errorf("case %q: %w", shortname, errs.ErrEmptyCaseValues)
	}

	index := make(map[string]int, len(values))
	for i, v := range values {
		if _, dup := index[v]; dup {
			return Case{}, fmt.Errorf("case %q value %q: %w", shortname, v, errs.ErrDuplicateCaseValue)
		}
		index[v] = i
	}

	return Case{
		Shortname: shortname,
		Longname:  longname,
		values:    slices.Clone(values),
		index:     index,
	}, nil
}

// NewCaseFromAny creates a case from loosely typed values, such as those
// decoded from JSON or YAML. See Normalize for the accepted shapes.
func NewCaseFromAny(shortname, longname string, values any) (Case, error) {
	vals, err := Normalize(values)
	if err != nil {
		return Case{}, fmt.Errorf("case %q: %w", shortname, err)
	}

	return NewCase(shortname, longname, vals...)
}

// MustCase is like NewCase but panics on error. Intended for tests and
// package-level declarations.
func MustCase(shortname, longname string, values ...string) Case {
	c, err := NewCase(shortname, longname, values...)
	if err != nil {
		panic(err)
	}

	return c
}

// Values returns a copy of the case values in declared order.
func (c Case) Values() []string {
	return slices.Clone(c.values)
}

// Len returns the number of values.
func (c Case) Len() int {
	return len(c.values)
}

// Value returns the i-th value.
func (c Case) Value(i int) string {
	return c.values[i]
}

// IndexOf returns the position of v among the case values.
func (c Case) IndexOf(v string) (int, bool) {
	i, ok := c.index[v]
	return i, ok
}

func (c Case) String() string {
	return fmt.Sprintf("%s%v", c.Shortname, c.values)
}
