// Package stack implements case-product stacking.
//
// Stack walks every case-tuple of a cases.Space in canonical order, resolves a
// leaf block for each, and writes it into one pre-allocated row-major buffer
// at offset index*leafSize. The result has shape (c1, ..., cn, d1, ..., dm)
// where ci are the case value counts and dj the leaf shape.
//
// The walk is an iterative odometer, so stacking depth is bounded by the
// number of cases only through the index width, never through the call stack.
//
// Leaves may optionally be resolved in parallel with WithWorkers. Each worker
// owns a contiguous range of the canonical order and writes a disjoint region
// of the output, so the result and any error are identical to a serial walk.
package stack
