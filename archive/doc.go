// Package archive persists labeled containers as self-describing binary blobs.
//
// An archive is a 32-byte section.Header, a JSON descriptor of the container
// (kind, names, dimensions, shapes, attributes; one entry per variable in
// order) and a compressed payload holding one encoded column per variable.
// The header records the CRC-32 of the uncompressed payload, which Decode
// verifies.
//
//	data, err := archive.Encode(master, archive.WithCompression(format.CompressionZstd))
//	entry, err := archive.Decode(data)
//
// Attribute values round-trip through JSON: numbers decode as float64 and
// nested values as map[string]any or []any.
package archive
