// Package encoding provides the column codecs used by archive payloads.
//
// Every variable of an archived container is written as one column:
//
//   - Numeric columns use NumericRawEncoder: fixed 8-byte IEEE 754 values in
//     the byte order of the supplied endian engine.
//   - Categorical columns use VarStringEncoder: each string is a uvarint byte
//     length followed by its UTF-8 bytes.
//
// Encoders draw their buffer from internal/pool and must be released with
// Finish once the bytes have been copied out. Decoders are stateless values.
//
//	enc := encoding.NewNumericRawEncoder(endian.GetLittleEndianEngine())
//	enc.WriteSlice(values)
//	payload = append(payload, enc.Bytes()...)
//	enc.Finish()
package encoding
