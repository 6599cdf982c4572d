package encoding

import "iter"

// ColumnarEncoder encodes a column of values into a byte buffer.
type ColumnarEncoder[T any] interface {
	// Bytes returns the encoded column. The slice aliases the internal buffer
	// and is valid until the next write or Finish.
	Bytes() []byte
	// Len returns the number of encoded values.
	Len() int
	// Size returns the encoded size in bytes.
	Size() int
	// WriteSlice appends values to the column.
	WriteSlice(values []T) error
	// Finish releases the internal buffer; the encoder is unusable afterwards.
	Finish()
}

// ColumnarDecoder decodes a column produced by the matching encoder.
type ColumnarDecoder[T any] interface {
	// All yields count values from data.
	All(data []byte, count int) iter.Seq[T]
	// Decode decodes exactly count values and returns the number of bytes
	// consumed.
	Decode(data []byte, count int) ([]T, int, error)
}
