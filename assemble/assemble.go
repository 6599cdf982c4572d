package assemble

import (
	"fmt"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arloliu/casestack/casemap"
	"github.com/arloliu/casestack/cases"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/internal/metrics"
	"github.com/arloliu/casestack/internal/options"
	"github.com/arloliu/casestack/labeled"
	"github.com/arloliu/casestack/merge"
	"github.com/arloliu/casestack/stack"
)

// Source resolves case-tuples to per-case entries. It must be safe for
// concurrent reads when the assembler uses more than one worker.
type Source = casemap.Source

// Assembler builds master containers. It is safe for concurrent use once
// created.
type Assembler struct {
	logger       *zap.Logger
	workers      int
	registerer   prometheus.Registerer
	aggregation  Aggregation
	longNameAttr string
	metrics      *metrics.Assembly
}

// New creates an Assembler.
func New(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		logger:       zap.NewNop(),
		workers:      1,
		aggregation:  AggregateStack,
		longNameAttr: DefaultLongNameAttr,
	}
	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	if a.registerer != nil {
		m, err := metrics.NewAssembly(a.registerer)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		a.metrics = m
	}

	return a, nil
}

// Assemble stacks the entries of every case-tuple of space into one master.
//
// Coverage is checked first: a missing tuple returns *errs.CoverageError and
// no entry is read. The representative entry at space.First() selects the
// container kind. For multi-variable entries, fields names the data variables
// to stack; names the representative lacks are skipped, and a stacked field
// missing from a later entry returns errs.ErrMissingField. fields is ignored
// for single-array entries.
//
// Neither the space nor any entry of src is modified.
func (a *Assembler) Assemble(space *cases.Space, src Source, fields ...string) (labeled.Entry, error) {
	start := time.Now()
	kind := "unknown"

	master, err := a.assemble(space, src, fields, &kind)
	a.metrics.Observe(kind, space.Size(), time.Since(start), err)
	if err != nil {
		a.logger.Debug("Assembly failed", zap.String("kind", kind), zap.Error(err))
		return labeled.Entry{}, err
	}

	a.logger.Debug("Assembled master",
		zap.String("kind", kind),
		zap.Int("cases", space.Len()),
		zap.Int("tuples", space.Size()),
		zap.Duration("elapsed", time.Since(start)))

	return master, nil
}

func (a *Assembler) assemble(space *cases.Space, src Source, fields []string, kind *string) (labeled.Entry, error) {
	if err := space.ValidateCoverage(src); err != nil {
		return labeled.Entry{}, err
	}

	first := space.First()
	rep, _ := src.Lookup(first)
	*kind = rep.Kind().String()

	switch rep.Kind() {
	case labeled.KindArray, labeled.KindDataset:
	default:
		return labeled.Entry{}, &errs.UnsupportedContainerError{Tuple: first, Kind: rep.Kind().String()}
	}

	if a.aggregation == AggregateOuter {
		return labeled.Entry{}, &errs.UnimplementedPathError{Path: rep.Kind().String() + "/" + a.aggregation.String()}
	}

	a.logger.Debug("Assembling master",
		zap.String("kind", *kind),
		zap.Strings("cases", space.Names()),
		zap.Strings("fields", fields),
		zap.Int("workers", a.workers))

	if rep.Kind() == labeled.KindArray {
		return a.assembleArray(space, src, rep.Array())
	}

	return a.assembleDataset(space, src, rep.Dataset(), fields)
}

// caseCoords builds one label coordinate per case, in case order.
func (a *Assembler) caseCoords(space *cases.Space) []*labeled.Variable {
	out := make([]*labeled.Variable, 0, space.Len())
	for _, c := range space.Cases() {
		v := &labeled.Variable{
			Name:   c.Shortname,
			Dims:   []string{c.Shortname},
			Shape:  []int{c.Len()},
			Labels: c.Values(),
		}
		v.SetAttr(a.longNameAttr, c.Longname)
		out = append(out, v)
	}

	return out
}

func checkConflicts(space *cases.Space, dims []string, taken func(string) bool) error {
	for _, name := range space.Names() {
		if slices.Contains(dims, name) || taken(name) {
			return fmt.Errorf("%w: case %q is already a dimension or variable", errs.ErrDimensionConflict, name)
		}
	}

	return nil
}

func (a *Assembler) assembleArray(space *cases.Space, src Source, rep *labeled.Array) (labeled.Entry, error) {
	if err := checkConflicts(space, rep.Dims, rep.Coords.Has); err != nil {
		return labeled.Entry{}, err
	}

	leaf := func(t cases.Tuple) (stack.Block[float64], error) {
		arr, err := arrayAt(src, t)
		if err != nil {
			return stack.Block[float64]{}, err
		}
		if !slices.Equal(arr.Dims, rep.Dims) || !slices.Equal(arr.Shape, rep.Shape) {
			return stack.Block[float64]{}, &errs.ShapeMismatchError{
				Tuple:    t,
				WantDims: slices.Clone(rep.Dims),
				GotDims:  slices.Clone(arr.Dims),
				Want:     slices.Clone(rep.Shape),
				Got:      slices.Clone(arr.Shape),
			}
		}

		return stack.Block[float64]{Shape: arr.Shape, Data: arr.Data}, nil
	}

	block, err := stack.Stack(space, leaf,
		stack.WithWorkers(a.workers),
		stack.WithLeafShape(rep.Shape...),
		stack.WithField(rep.Name))
	if err != nil {
		return labeled.Entry{}, err
	}

	master, err := labeled.NewArray(rep.Name, append(space.Names(), rep.Dims...), block.Shape, block.Data)
	if err != nil {
		return labeled.Entry{}, err
	}
	for _, v := range a.caseCoords(space) {
		if err := master.SetCoord(v); err != nil {
			return labeled.Entry{}, err
		}
	}
	for _, v := range rep.Coords.All() {
		if err := master.SetCoord(v.Clone()); err != nil {
			return labeled.Entry{}, err
		}
	}

	out := labeled.FromArray(master)
	if err := merge.CopyAttrs(labeled.FromArray(rep), out); err != nil {
		return labeled.Entry{}, err
	}

	return out, nil
}

func (a *Assembler) assembleDataset(space *cases.Space, src Source, rep *labeled.Dataset, fields []string) (labeled.Entry, error) {
	dims, err := rep.Dims()
	if err != nil {
		return labeled.Entry{}, err
	}
	taken := func(name string) bool {
		_, ok := dims[name]
		return ok || rep.Coords.Has(name) || rep.Vars.Has(name)
	}
	if err := checkConflicts(space, nil, taken); err != nil {
		return labeled.Entry{}, err
	}

	stacked := make(map[string]bool, len(fields))
	for _, f := range fields {
		if _, ok := rep.Variable(f); !ok {
			a.logger.Debug("Requested field not in entry, skipping", zap.String("field", f))
			continue
		}
		if rep.IsCoord(f) {
			a.logger.Warn("Requested field is a coordinate, copying it unstacked", zap.String("field", f))
			continue
		}
		stacked[f] = true
	}

	master := labeled.NewDataset()
	for _, v := range a.caseCoords(space) {
		if err := master.SetCoord(v); err != nil {
			return labeled.Entry{}, err
		}
	}
	for _, v := range rep.Coords.All() {
		if err := master.SetCoord(v.Clone()); err != nil {
			return labeled.Entry{}, err
		}
	}

	for name, v := range rep.Vars.All() {
		out := v.Clone()
		if stacked[name] {
			if out, err = a.stackVariable(space, src, v); err != nil {
				return labeled.Entry{}, err
			}
		}
		if err := master.SetVar(out); err != nil {
			return labeled.Entry{}, err
		}
	}

	entry := labeled.FromDataset(master)
	if err := merge.CopyAttrs(labeled.FromDataset(rep), entry); err != nil {
		return labeled.Entry{}, err
	}

	return entry, nil
}

func (a *Assembler) stackVariable(space *cases.Space, src Source, rep *labeled.Variable) (*labeled.Variable, error) {
	dims := append(space.Names(), rep.Dims...)

	var (
		out *labeled.Variable
		err error
	)
	if rep.DType() == labeled.String {
		var b stack.Block[string]
		b, err = stackField(a, space, src, rep, func(v *labeled.Variable) []string { return v.Labels })
		if err == nil {
			out, err = labeled.NewLabelVariable(rep.Name, dims, b.Shape, b.Data)
		}
	} else {
		var b stack.Block[float64]
		b, err = stackField(a, space, src, rep, func(v *labeled.Variable) []float64 { return v.Values })
		if err == nil {
			out, err = labeled.NewVariable(rep.Name, dims, b.Shape, b.Data)
		}
	}
	if err != nil {
		return nil, err
	}
	out.Attrs = rep.Attrs.Clone()

	return out, nil
}

func stackField[T any](a *Assembler, space *cases.Space, src Source, rep *labeled.Variable, data func(*labeled.Variable) []T) (stack.Block[T], error) {
	leaf := func(t cases.Tuple) (stack.Block[T], error) {
		ds, err := datasetAt(src, t)
		if err != nil {
			return stack.Block[T]{}, err
		}
		v, ok := ds.Vars.Get(rep.Name)
		if !ok {
			return stack.Block[T]{}, fmt.Errorf("%w: %q at %s", errs.ErrMissingField, rep.Name, t)
		}
		if v.DType() != rep.DType() {
			return stack.Block[T]{}, fmt.Errorf("%w: field %q at %s is %s, want %s",
				errs.ErrShapeMismatch, rep.Name, t, v.DType(), rep.DType())
		}
		if !slices.Equal(v.Dims, rep.Dims) || !slices.Equal(v.Shape, rep.Shape) {
			return stack.Block[T]{}, &errs.ShapeMismatchError{
				Tuple:    t,
				Field:    rep.Name,
				WantDims: slices.Clone(rep.Dims),
				GotDims:  slices.Clone(v.Dims),
				Want:     slices.Clone(rep.Shape),
				Got:      slices.Clone(v.Shape),
			}
		}

		return stack.Block[T]{Shape: v.Shape, Data: data(v)}, nil
	}

	return stack.Stack(space, leaf,
		stack.WithWorkers(a.workers),
		stack.WithLeafShape(rep.Shape...),
		stack.WithField(rep.Name))
}

func entryAt(src Source, t cases.Tuple) (labeled.Entry, error) {
	e, ok := src.Lookup(t)
	if !ok {
		return labeled.Entry{}, &errs.CoverageError{Missing: t}
	}

	return e, nil
}

func arrayAt(src Source, t cases.Tuple) (*labeled.Array, error) {
	e, err := entryAt(src, t)
	if err != nil {
		return nil, err
	}
	if e.Kind() != labeled.KindArray {
		return nil, &errs.UnsupportedContainerError{Tuple: t, Kind: e.Kind().String() + ", want array"}
	}

	return e.Array(), nil
}

func datasetAt(src Source, t cases.Tuple) (*labeled.Dataset, error) {
	e, err := entryAt(src, t)
	if err != nil {
		return nil, err
	}
	if e.Kind() != labeled.KindDataset {
		return nil, &errs.UnsupportedContainerError{Tuple: t, Kind: e.Kind().String() + ", want dataset"}
	}

	return e.Dataset(), nil
}
