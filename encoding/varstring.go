package encoding

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/arloliu/casestack/errs"
	"github.com/arloliu/casestack/internal/pool"
)

// VarStringEncoder writes strings as a uvarint byte length followed by the
// string bytes. Lengths are byte-order independent.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[string] = (*VarStringEncoder)(nil)

// NewVarStringEncoder creates a string column encoder.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{buf: pool.GetColumnBuffer()}
}

// Write appends one string.
//
// Panics if Finish has been called.
func (e *VarStringEncoder) Write(text string) {
	e.mustOpen()
	e.buf.Grow(binary.MaxVarintLen64 + len(text))
	e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(text)))
	e.buf.B = append(e.buf.B, text...)
	e.count++
}

// WriteSlice appends texts. It never fails.
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	e.mustOpen()

	total := 0
	for _, s := range texts {
		total += uvarintLen(uint64(len(s))) + len(s)
	}
	e.buf.Grow(total)
	for _, s := range texts {
		e.buf.B = binary.AppendUvarint(e.buf.B, uint64(len(s)))
		e.buf.B = append(e.buf.B, s...)
	}
	e.count += len(texts)

	return nil
}

// Bytes returns the encoded strings.
func (e *VarStringEncoder) Bytes() []byte {
	e.mustOpen()
	return e.buf.Bytes()
}

// Len returns the number of encoded strings.
func (e *VarStringEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *VarStringEncoder) Size() int {
	e.mustOpen()
	return e.buf.Len()
}

// Finish returns the buffer to the pool.
func (e *VarStringEncoder) Finish() {
	if e.buf != nil {
		pool.PutColumnBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

func (e *VarStringEncoder) mustOpen() {
	if e.buf == nil {
		panic("encoder already finished")
	}
}

func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// VarStringDecoder decodes columns written by VarStringEncoder.
type VarStringDecoder struct{}

var _ ColumnarDecoder[string] = VarStringDecoder{}

// NewVarStringDecoder creates a string column decoder.
func NewVarStringDecoder() VarStringDecoder {
	return VarStringDecoder{}
}

// All yields up to count strings, stopping early on malformed input.
func (d VarStringDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		off := 0
		for range count {
			s, n, ok := readString(data[off:])
			if !ok || !yield(s) {
				return
			}
			off += n
		}
	}
}

// Decode decodes exactly count strings.
func (d VarStringDecoder) Decode(data []byte, count int) ([]string, int, error) {
	// every string takes at least its one-byte length prefix
	if count < 0 || count > len(data) {
		return nil, 0, fmt.Errorf("%w: string column of %d values, have %d bytes", errs.ErrTruncatedPayload, count, len(data))
	}

	out := make([]string, count)
	off := 0
	for i := range out {
		s, n, ok := readString(data[off:])
		if !ok {
			return nil, 0, fmt.Errorf("%w: string %d of %d at byte %d", errs.ErrTruncatedPayload, i, count, off)
		}
		out[i] = s
		off += n
	}

	return out, off, nil
}

func readString(data []byte) (string, int, bool) {
	length, n := binary.Uvarint(data)
	if n <= 0 || uint64(len(data)-n) < length {
		return "", 0, false
	}
	end := n + int(length)

	return string(data[n:end]), end, true
}
