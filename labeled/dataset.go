package labeled

import (
	"fmt"

	"github.com/arloliu/casestack/errs"
)

// Dataset is the multi-variable container: data variables and coordinate
// variables over shared named dimensions, plus global attributes.
type Dataset struct {
	Coords *Variables
	Vars   *Variables
	Attrs  Attrs
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Coords: NewVariables(),
		Vars:   NewVariables(),
	}
}

// SetCoord adds or replaces a coordinate variable. A data variable of the same
// name is an error.
func (ds *Dataset) SetCoord(v *Variable) error {
	if ds.Vars.Has(v.Name) {
		return fmt.Errorf("%w: %q is already a data variable", errs.ErrDimensionConflict, v.Name)
	}
	if err := ds.checkDims(v); err != nil {
		return err
	}
	ds.Coords.Set(v)

	return nil
}

// SetVar adds or replaces a data variable. A coordinate of the same name is an error.
func (ds *Dataset) SetVar(v *Variable) error {
	if ds.Coords.Has(v.Name) {
		return fmt.Errorf("%w: %q is already a coordinate", errs.ErrDimensionConflict, v.Name)
	}
	if err := ds.checkDims(v); err != nil {
		return err
	}
	ds.Vars.Set(v)

	return nil
}

// Variable returns the coordinate or data variable named name.
func (ds *Dataset) Variable(name string) (*Variable, bool) {
	if v, ok := ds.Coords.Get(name); ok {
		return v, true
	}

	return ds.Vars.Get(name)
}

// IsCoord reports whether name is a coordinate variable.
func (ds *Dataset) IsCoord(name string) bool {
	return ds.Coords.Has(name)
}

// SetAttr sets one global attribute.
func (ds *Dataset) SetAttr(key string, val any) {
	setAttr(&ds.Attrs, key, val)
}

// Dims returns the size of every dimension used by any variable.
func (ds *Dataset) Dims() (map[string]int, error) {
	dims := make(map[string]int)
	for _, vs := range []*Variables{ds.Coords, ds.Vars} {
		for _, v := range vs.All() {
			for i, d := range v.Dims {
				if n, ok := dims[d]; ok && n != v.Shape[i] {
					return nil, fmt.Errorf("%w: dimension %q is %d on %q, %d elsewhere", errs.ErrShapeMismatch, d, v.Shape[i], v.Name, n)
				}
				dims[d] = v.Shape[i]
			}
		}
	}

	return dims, nil
}

// Clone returns a deep copy of the dataset.
func (ds *Dataset) Clone() *Dataset {
	return &Dataset{
		Coords: ds.Coords.Clone(),
		Vars:   ds.Vars.Clone(),
		Attrs:  ds.Attrs.Clone(),
	}
}

func (ds *Dataset) checkDims(v *Variable) error {
	if ds.Coords == nil {
		ds.Coords = NewVariables()
	}
	if ds.Vars == nil {
		ds.Vars = NewVariables()
	}

	dims, err := ds.Dims()
	if err != nil {
		return err
	}
	for i, d := range v.Dims {
		if n, ok := dims[d]; ok && n != v.Shape[i] {
			return fmt.Errorf("%w: %q dimension %q has size %d, dataset has %d", errs.ErrShapeMismatch, v.Name, d, v.Shape[i], n)
		}
	}

	return nil
}
