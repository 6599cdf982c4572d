package stack

import (
	"fmt"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/casestack/cases"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/internal/options"
)

// chunksPerWorker controls parallel granularity.
const chunksPerWorker = 4

// Block is a dense row-major N-dimensional buffer.
type Block[T any] struct {
	Shape []int
	Data  []T
}

// Size returns the number of elements described by Shape.
func (b Block[T]) Size() int {
	return shapeSize(b.Shape)
}

// LeafFunc resolves the leaf block for one case-tuple.
//
// A LeafFunc used with WithWorkers must be safe for concurrent calls. The
// returned data is copied, so the callee may reuse its buffers.
type LeafFunc[T any] func(t cases.Tuple) (Block[T], error)

// Stack concatenates the leaves of every case-tuple of space into one block.
//
// The leaf shape is learned from the first canonical tuple unless fixed with
// WithLeafShape. A leaf whose shape differs returns *errs.ShapeMismatchError
// naming the first offending tuple in canonical order. Errors returned by leaf
// are passed through unchanged.
func Stack[T any](space *cases.Space, leaf LeafFunc[T], opts ...Option) (Block[T], error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return Block[T]{}, err
	}

	w := &walker[T]{space: space, leaf: leaf, field: cfg.field}
	start := 0
	if cfg.fixed {
		w.want = cfg.leafShape
		w.leafSize = shapeSize(w.want)
		w.out = make([]T, space.Size()*w.leafSize)
	} else {
		first := space.First()
		b, err := leaf(first)
		if err != nil {
			return Block[T]{}, err
		}
		w.want = slices.Clone(b.Shape)
		w.leafSize = shapeSize(w.want)
		if len(b.Data) != w.leafSize {
			return Block[T]{}, w.sizeError(first, len(b.Data))
		}
		w.out = make([]T, space.Size()*w.leafSize)
		copy(w.out, b.Data)
		start = 1
	}

	var err error
	if cfg.workers > 1 && space.Size()-start > 1 {
		chunks := cfg.chunks
		if chunks <= 0 {
			chunks = cfg.workers * chunksPerWorker
		}
		err = w.parallel(start, cfg.workers, chunks)
	} else {
		_, err = w.fill(start, space.Size())
	}
	if err != nil {
		return Block[T]{}, err
	}

	return Block[T]{
		Shape: append(space.Shape(), w.want...),
		Data:  w.out,
	}, nil
}

type walker[T any] struct {
	space    *cases.Space
	leaf     LeafFunc[T]
	field    string
	want     []int
	leafSize int
	out      []T
}

// fill resolves tuples [lo, hi) and returns the flat index of the first
// failure together with its error.
func (w *walker[T]) fill(lo, hi int) (int, error) {
	for i, t := range w.space.Range(lo, hi) {
		b, err := w.leaf(t)
		if err != nil {
			return i, err
		}
		if !slices.Equal(b.Shape, w.want) {
			return i, &errs.ShapeMismatchError{
				Tuple: t,
				Field: w.field,
				Want:  slices.Clone(w.want),
				Got:   slices.Clone(b.Shape),
			}
		}
		if len(b.Data) != w.leafSize {
			return i, w.sizeError(t, len(b.Data))
		}
		copy(w.out[i*w.leafSize:(i+1)*w.leafSize], b.Data)
	}

	return -1, nil
}

func (w *walker[T]) parallel(start, workers, chunks int) error {
	n := w.space.Size() - start
	chunks = min(chunks, n)
	step := (n + chunks - 1) / chunks

	type result struct {
		index int
		err   error
	}
	results := make([]result, chunks)

	// lowest failing index seen so far; chunks entirely above it are skipped
	var lowest atomic.Int64
	lowest.Store(int64(w.space.Size()))

	var g errgroup.Group
	g.SetLimit(workers)
	for c := range chunks {
		lo := start + c*step
		hi := min(lo+step, w.space.Size())
		if lo >= hi {
			break
		}
		g.Go(func() error {
			if int64(lo) > lowest.Load() {
				return nil
			}
			idx, err := w.fill(lo, hi)
			if err != nil {
				results[c] = result{index: idx, err: err}
				for {
					cur := lowest.Load()
					if int64(idx) >= cur || lowest.CompareAndSwap(cur, int64(idx)) {
						break
					}
				}
			}

			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.err != nil {
			return r.err
		}
	}

	return nil
}

func (w *walker[T]) sizeError(t cases.Tuple, got int) error {
	return fmt.Errorf("%w: leaf %s holds %d elements, shape %v needs %d",
		errs.ErrInvalidShape, t, got, w.want, w.leafSize)
}

func shapeSize(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}

	return n
}
