// Package hash computes 64-bit identifiers for case-tuples.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// TupleID computes the xxHash64 of a sequence of values.
//
// Each value is followed by a 0x00 byte so that ("ab", "c") and ("a", "bc")
// hash differently. Values that themselves contain 0x00 may still collide;
// callers resolve collisions by comparing the full values.
func TupleID(values []string) uint64 {
	d := xxhash.New()
	for _, v := range values {
		_, _ = d.WriteString(v)
		_, _ = d.Write(separator)
	}

	return d.Sum64()
}

var separator = []byte{0}
