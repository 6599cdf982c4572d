package labeled

import "iter"

// Variables is an insertion-ordered collection of variables keyed by name.
//
// The zero value is ready to use. Setting a name that already exists replaces
// the variable in place, keeping its position.
type Variables struct {
	order []string
	byKey map[string]*Variable
}

// NewVariables returns an empty collection.
func NewVariables() *Variables {
	return &Variables{byKey: make(map[string]*Variable)}
}

// Set stores v under v.Name.
func (vs *Variables) Set(v *Variable) {
	if vs.byKey == nil {
		vs.byKey = make(map[string]*Variable)
	}
	if _, ok := vs.byKey[v.Name]; !ok {
		vs.order = append(vs.order, v.Name)
	}
	vs.byKey[v.Name] = v
}

// Get returns the variable named name.
func (vs *Variables) Get(name string) (*Variable, bool) {
	if vs == nil {
		return nil, false
	}
	v, ok := vs.byKey[name]

	return v, ok
}

// Has reports whether a variable named name exists.
func (vs *Variables) Has(name string) bool {
	_, ok := vs.Get(name)
	return ok
}

// Len returns the number of variables.
func (vs *Variables) Len() int {
	if vs == nil {
		return 0
	}

	return len(vs.order)
}

// Names returns variable names in insertion order.
func (vs *Variables) Names() []string {
	if vs == nil {
		return nil
	}
	out := make([]string, len(vs.order))
	copy(out, vs.order)

	return out
}

// All iterates name/variable pairs in insertion order.
func (vs *Variables) All() iter.Seq2[string, *Variable] {
	return func(yield func(string, *Variable) bool) {
		if vs == nil {
			return
		}
		for _, name := range vs.order {
			if !yield(name, vs.byKey[name]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of every variable.
func (vs *Variables) Clone() *Variables {
	out := NewVariables()
	for _, v := range vs.All() {
		out.Set(v.Clone())
	}

	return out
}
