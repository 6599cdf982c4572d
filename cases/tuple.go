package cases

import (
	"slices"
	"strconv"
	"strings"
)

// Tuple is one combination of case values, one value per case in space order.
type Tuple []string

// Key returns a canonical string form of the tuple that is unique for every
// distinct tuple, including tuples whose values contain separators.
func (t Tuple) Key() string {
	var b strings.Builder
	for _, v := range t {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}

	return b.String()
}

// Equal reports whether t and other hold the same values in the same order.
func (t Tuple) Equal(other Tuple) bool {
	return slices.Equal(t, other)
}

// Clone returns a copy of the tuple.
func (t Tuple) Clone() Tuple {
	return slices.Clone(t)
}

func (t Tuple) String() string {
	return "(" + strings.Join(t, ", ") + ")"
}
