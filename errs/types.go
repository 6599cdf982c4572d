package errs

import (
	"fmt"
	"strings"
)

// CoverageError reports the first canonical case-tuple absent from a mapping.
type CoverageError struct {
	// Missing is the missing case-tuple, one value per case in space order.
	Missing []string
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("%s: missing case-tuple %s", ErrCoverage, renderTuple(e.Missing))
}

func (e *CoverageError) Unwrap() error { return ErrCoverage }

// ShapeMismatchError reports the first leaf whose dimensionality differs from
// the representative entry.
type ShapeMismatchError struct {
	Tuple    []string
	Field    string // empty for single-array assembly
	WantDims []string
	GotDims  []string
	Want     []int
	Got      []int
}

func (e *ShapeMismatchError) Error() string {
	var b strings.Builder
	b.WriteString(ErrShapeMismatch.Error())
	b.WriteString(" at ")
	b.WriteString(renderTuple(e.Tuple))
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	if e.WantDims != nil || e.GotDims != nil {
		fmt.Fprintf(&b, ": dims %v, want %v", e.GotDims, e.WantDims)
	}
	fmt.Fprintf(&b, ": shape %v, want %v", e.Got, e.Want)

	return b.String()
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// UnsupportedContainerError reports an entry that is not a recognized container.
type UnsupportedContainerError struct {
	Tuple []string
	Kind  string
}

func (e *UnsupportedContainerError) Error() string {
	if e.Tuple == nil {
		return fmt.Sprintf("%s: %s", ErrUnsupportedContainer, e.Kind)
	}

	return fmt.Sprintf("%s: %s at %s", ErrUnsupportedContainer, e.Kind, renderTuple(e.Tuple))
}

func (e *UnsupportedContainerError) Unwrap() error { return ErrUnsupportedContainer }

// UnimplementedPathError reports a deliberately unsupported assembly path.
type UnimplementedPathError struct {
	Path string
}

func (e *UnimplementedPathError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnimplemented, e.Path)
}

func (e *UnimplementedPathError) Unwrap() error { return ErrUnimplemented }

func renderTuple(t []string) string {
	return "(" + strings.Join(t, ", ") + ")"
}
