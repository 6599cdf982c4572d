package labeled

import (
	"fmt"
	"slices"

	"github.com/arloliu/casestack/errs"
)

// DType identifies the element type held by a Variable.
type DType uint8

const (
	Float64 DType = 0x1 // Float64 marks numeric data stored in Values.
	String  DType = 0x2 // String marks categorical data stored in Labels.
)

func (d DType) String() string {
	switch d {
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Variable is a named N-dimensional buffer with attributes.
type Variable struct {
	Name  string
	Dims  []string
	Shape []int
	// Values holds numeric data, row-major. Nil for String variables.
	Values []float64
	// Labels holds categorical data, row-major. Nil for Float64 variables.
	Labels []string
	Attrs  Attrs
}

// NewVariable creates a numeric variable. The data slice is used as-is.
func NewVariable(name string, dims []string, shape []int, values []float64) (*Variable, error) {
	if err := checkShape(name, dims, shape, len(values)); err != nil {
		return nil, err
	}
	if values == nil {
		values = []float64{}
	}

	return &Variable{
		Name:   name,
		Dims:   slices.Clone(dims),
		Shape:  slices.Clone(shape),
		Values: values,
	}, nil
}

// NewLabelVariable creates a categorical variable. The data slice is used as-is.
func NewLabelVariable(name string, dims []string, shape []int, labels []string) (*Variable, error) {
	if err := checkShape(name, dims, shape, len(labels)); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []string{}
	}

	return &Variable{
		Name:   name,
		Dims:   slices.Clone(dims),
		Shape:  slices.Clone(shape),
		Labels: labels,
	}, nil
}

// DType returns the element type of the variable.
func (v *Variable) DType() DType {
	if v.Labels != nil {
		return String
	}

	return Float64
}

// Ndim returns the number of dimensions.
func (v *Variable) Ndim() int {
	return len(v.Shape)
}

// Size returns the number of elements.
func (v *Variable) Size() int {
	return ShapeSize(v.Shape)
}

// SetAttr sets one attribute.
func (v *Variable) SetAttr(key string, val any) {
	setAttr(&v.Attrs, key, val)
}

// Clone returns a deep copy of the variable's buffers and a shallow copy of
// its attributes.
func (v *Variable) Clone() *Variable {
	return &Variable{
		Name:   v.Name,
		Dims:   slices.Clone(v.Dims),
		Shape:  slices.Clone(v.Shape),
		Values: slices.Clone(v.Values),
		Labels: slices.Clone(v.Labels),
		Attrs:  v.Attrs.Clone(),
	}
}

// ShapeSize returns the number of elements of a buffer with the given shape.
// The empty shape describes a scalar of size 1.
func ShapeSize(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}

func checkShape(name string, dims []string, shape []int, n int) error {
	if len(dims) != len(shape) {
		return fmt.Errorf("%w: %q has %d dims but %d sizes", errs.ErrInvalidShape, name, len(dims), len(shape))
	}
	for i, d := range shape {
		if d < 0 {
			return fmt.Errorf("%w: %q dimension %q has negative size %d", errs.ErrInvalidShape, name, dims[i], d)
		}
	}
	if want := ShapeSize(shape); want != n {
		return fmt.Errorf("%w: %q shape %v needs %d elements, got %d", errs.ErrInvalidShape, name, shape, want, n)
	}

	return nil
}
