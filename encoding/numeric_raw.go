package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/casestack/endian"
	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/internal/pool"
)

// NumericRawEncoder writes float64 values in their IEEE 754 representation.
type NumericRawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[float64] = (*NumericRawEncoder)(nil)

// NewNumericRawEncoder creates an encoder using the given byte order.
func NewNumericRawEncoder(engine endian.EndianEngine) *NumericRawEncoder {
	return &NumericRawEncoder{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
}

// Write appends one value.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) Write(val float64) {
	e.mustOpen()
	e.count++
	e.engine.PutUint64(e.buf.Extend(8), math.Float64bits(val))
}

// WriteSlice appends values with a single buffer growth. It never fails.
//
// Panics if Finish has been called.
func (e *NumericRawEncoder) WriteSlice(values []float64) error {
	e.mustOpen()
	if len(values) == 0 {
		return nil
	}

	region := e.buf.Extend(len(values) * 8)
	for i, v := range values {
		e.engine.PutUint64(region[i*8:i*8+8], math.Float64bits(v))
	}
	e.count += len(values)

	return nil
}

// Bytes returns the encoded values.
func (e *NumericRawEncoder) Bytes() []byte {
	e.mustOpen()
	return e.buf.Bytes()
}

// Len returns the number of encoded values.
func (e *NumericRawEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *NumericRawEncoder) Size() int {
	e.mustOpen()
	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *NumericRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

func (e *NumericRawEncoder) mustOpen() {
	if e.buf == nil {
		panic("encoder already finished")
	}
}

// NumericRawDecoder decodes columns written by NumericRawEncoder.
type NumericRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[float64] = NumericRawDecoder{}

// NewNumericRawDecoder creates a decoder; engine must match the encoder's.
func NewNumericRawDecoder(engine endian.EndianEngine) NumericRawDecoder {
	return NumericRawDecoder{engine: engine}
}

// All yields count values. It yields nothing when data is too short.
func (d NumericRawDecoder) All(data []byte, count int) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if count <= 0 || count > len(data)/8 {
			return
		}
		for i := range count {
			if !yield(math.Float64frombits(d.engine.Uint64(data[i*8 : i*8+8]))) {
				return
			}
		}
	}
}

// At returns the value at index.
func (d NumericRawDecoder) At(data []byte, index, count int) (float64, bool) {
	if index < 0 || index >= count || index >= len(data)/8 {
		return 0, false
	}

	return math.Float64frombits(d.engine.Uint64(data[index*8 : index*8+8])), true
}

// Decode decodes exactly count values.
func (d NumericRawDecoder) Decode(data []byte, count int) ([]float64, int, error) {
	if count < 0 || count > len(data)/8 {
		return nil, 0, fmt.Errorf("%w: numeric column of %d values, have %d bytes", errs.ErrTruncatedPayload, count, len(data))
	}
	need := count * 8

	out := make([]float64, count)
	for i := range out {
		out[i] = math.Float64frombits(d.engine.Uint64(data[i*8 : i*8+8]))
	}

	return out, need, nil
}
