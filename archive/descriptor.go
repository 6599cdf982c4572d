package archive

import (
	"github.com/arloliu/casestack/format"
	"github.com/arloliu/casestack/labeled"
)

// Variable roles in a descriptor.
const (
	RoleData  = "data"  // the buffer of a single-array container
	RoleCoord = "coord" // a coordinate variable
	RoleVar   = "var"   // a data variable of a dataset
)

// Descriptor is the JSON section of an archive.
type Descriptor struct {
	Kind      string               `json:"kind"`
	Name      string               `json:"name,omitempty"`
	Attrs     labeled.Attrs        `json:"attrs,omitempty"`
	Variables []VariableDescriptor `json:"variables"`
}

// VariableDescriptor describes one payload column.
type VariableDescriptor struct {
	Role     string              `json:"role"`
	Name     string              `json:"name"`
	Dims     []string            `json:"dims"`
	Shape    []int               `json:"shape"`
	DType    string              `json:"dtype"`
	Encoding format.EncodingType `json:"encoding"`
	Attrs    labeled.Attrs       `json:"attrs,omitempty"`
}

// Count returns the number of elements in the column.
func (v VariableDescriptor) Count() int {
	return labeled.ShapeSize(v.Shape)
}

// countWithin returns the element count of the column, or false when a
// dimension is negative or the count exceeds limit.
func (v VariableDescriptor) countWithin(limit int) (int, bool) {
	for _, d := range v.Shape {
		if d < 0 {
			return 0, false
		}
	}

	n := 1
	for _, d := range v.Shape {
		if d == 0 {
			return 0, true
		}
		if n > limit/d {
			return 0, false
		}
		n *= d
	}

	return n, n <= limit
}

func describe(role string, v *labeled.Variable) VariableDescriptor {
	d := VariableDescriptor{
		Role:     role,
		Name:     v.Name,
		Dims:     nonNil(v.Dims),
		Shape:    nonNil(v.Shape),
		DType:    v.DType().String(),
		Encoding: format.TypeRaw,
		Attrs:    v.Attrs,
	}
	if v.DType() == labeled.String {
		d.Encoding = format.TypeVarString
	}

	return d
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}

func orNil[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}

	return s
}
