// Package merge propagates metadata attributes between containers.
//
// Copies are shallow and last-writer-wins: for each key present in the source
// the destination value is overwritten, keys only in the destination are kept.
// Applying the same copy twice yields the same result as applying it once.
package merge

import (
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/labeled"
)

// CopyAttrs copies attributes from src onto dst.
//
// For a dataset source it copies the attributes of each data variable onto
// the same-named data variable or coordinate of dst, the attributes of each
// coordinate onto the same-named coordinate of dst, and the global attributes.
// For an array source it copies the array attributes and the attributes of
// every coordinate dst also carries. Variables absent from dst are skipped.
//
// src and dst must be of the same kind; otherwise a
// *errs.UnsupportedContainerError is returned and dst is untouched.
func CopyAttrs(src, dst labeled.Entry) error {
	if src.Kind() == labeled.KindInvalid {
		return &errs.UnsupportedContainerError{Kind: "source " + src.Kind().String()}
	}
	if dst.Kind() != src.Kind() {
		return &errs.UnsupportedContainerError{Kind: "destination " + dst.Kind().String() + " for " + src.Kind().String() + " source"}
	}

	switch src.Kind() {
	case labeled.KindDataset:
		copyDataset(src.Dataset(), dst.Dataset())
	case labeled.KindArray:
		copyArray(src.Array(), dst.Array())
	}

	return nil
}

func copyDataset(src, dst *labeled.Dataset) {
	for name, v := range src.Vars.All() {
		if target, ok := dst.Variable(name); ok {
			update(&target.Attrs, v.Attrs)
		}
	}
	for name, v := range src.Coords.All() {
		if target, ok := dst.Coords.Get(name); ok {
			update(&target.Attrs, v.Attrs)
		}
	}
	update(&dst.Attrs, src.Attrs)
}

func copyArray(src, dst *labeled.Array) {
	update(&dst.Attrs, src.Attrs)
	for name, v := range src.Coords.All() {
		if target, ok := dst.Coords.Get(name); ok {
			update(&target.Attrs, v.Attrs)
		}
	}
}

func update(dst *labeled.Attrs, src labeled.Attrs) {
	if len(src) == 0 {
		return
	}
	if *dst == nil {
		*dst = make(labeled.Attrs, len(src))
	}
	for k, v := range src {
		(*dst)[k] = v
	}
}
