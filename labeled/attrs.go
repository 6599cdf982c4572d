package labeled

import (
	"maps"
	"slices"
)

// Attrs holds key-value metadata annotations.
type Attrs map[string]any

// Clone returns a shallow copy of the attributes. A nil Attrs clones to nil.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}

	return maps.Clone(a)
}

// Get returns the value stored under key.
func (a Attrs) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}

// Keys returns the attribute keys in sorted order.
func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// setAttr writes key on *dst, allocating the map on first write.
func setAttr(dst *Attrs, key string, val any) {
	if *dst == nil {
		*dst = make(Attrs)
	}
	(*dst)[key] = val
}
