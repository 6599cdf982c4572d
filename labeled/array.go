package labeled

import (
	"fmt"
	"slices"

	"github.com/arloliu/casestack/errs"
)

// Array is the single-array container: one numeric buffer with named
// dimensions, coordinate variables and attributes.
type Array struct {
	Name   string
	Dims   []string
	Shape  []int
	Data   []float64
	Coords *Variables
	Attrs  Attrs
}

// NewArray creates an array over data, which must hold ∏shape elements in
// row-major order. The data slice is used as-is.
func NewArray(name string, dims []string, shape []int, data []float64) (*Array, error) {
	if err := checkShape(name, dims, shape, len(data)); err != nil {
		return nil, err
	}
	if data == nil {
		data = []float64{}
	}

	return &Array{
		Name:   name,
		Dims:   slices.Clone(dims),
		Shape:  slices.Clone(shape),
		Data:   data,
		Coords: NewVariables(),
	}, nil
}

// SetCoord attaches a coordinate variable. Every dimension of the coordinate
// must be a dimension of the array with the same size.
func (a *Array) SetCoord(v *Variable) error {
	for i, d := range v.Dims {
		j := slices.Index(a.Dims, d)
		if j < 0 {
			return fmt.Errorf("%w: coordinate %q uses dimension %q not on array %q", errs.ErrInvalidShape, v.Name, d, a.Name)
		}
		if a.Shape[j] != v.Shape[i] {
			return fmt.Errorf("%w: coordinate %q dimension %q has size %d, array has %d",
				errs.ErrInvalidShape, v.Name, d, v.Shape[i], a.Shape[j])
		}
	}
	if a.Coords == nil {
		a.Coords = NewVariables()
	}
	a.Coords.Set(v)

	return nil
}

// Coord returns the coordinate named name.
func (a *Array) Coord(name string) (*Variable, bool) {
	return a.Coords.Get(name)
}

// SetAttr sets one attribute.
func (a *Array) SetAttr(key string, val any) {
	setAttr(&a.Attrs, key, val)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	return ShapeSize(a.Shape)
}

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) (float64, error) {
	off, err := flatOffset(a.Shape, idx)
	if err != nil {
		return 0, err
	}

	return a.Data[off], nil
}

// Slab returns the contiguous sub-buffer addressed by a leading multi-index.
// For an array of shape (2, 2, 3, 3), Slab(1, 0) returns the 3×3 block at
// [1, 0]. The returned slice aliases the array data.
func (a *Array) Slab(lead ...int) ([]float64, error) {
	if len(lead) > len(a.Shape) {
		return nil, fmt.Errorf("%w: %d indices for %d dimensions", errs.ErrInvalidShape, len(lead), len(a.Shape))
	}

	inner := ShapeSize(a.Shape[len(lead):])
	off, err := flatOffset(a.Shape[:len(lead)], lead)
	if err != nil {
		return nil, err
	}

	return a.Data[off*inner : (off+1)*inner], nil
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	out := &Array{
		Name:   a.Name,
		Dims:   slices.Clone(a.Dims),
		Shape:  slices.Clone(a.Shape),
		Data:   slices.Clone(a.Data),
		Coords: NewVariables(),
		Attrs:  a.Attrs.Clone(),
	}
	if a.Coords != nil {
		out.Coords = a.Coords.Clone()
	}

	return out
}

func flatOffset(shape, idx []int) (int, error) {
	if len(idx) != len(shape) {
		return 0, fmt.Errorf("%w: %d indices for %d dimensions", errs.ErrInvalidShape, len(idx), len(shape))
	}

	off := 0
	for d, i := range idx {
		if i < 0 || i >= shape[d] {
			return 0, fmt.Errorf("%w: index %d out of range for dimension %d of size %d", errs.ErrInvalidShape, i, d, shape[d])
		}
		off = off*shape[d] + i
	}

	return off, nil
}
