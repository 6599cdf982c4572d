// Package compress provides the payload codecs used by archives.
//
// Archive payloads are the concatenated, already-encoded variable columns of
// one container; compression is applied to that payload as a whole. Four
// codecs are available:
//
//   - None (format.CompressionNone): passes bytes through.
//   - Zstd (format.CompressionZstd): best ratio; klauspost/compress by
//     default, valyala/gozstd when built with the gozstd tag and cgo.
//   - S2 (format.CompressionS2): klauspost/compress s2, fast with a fair ratio.
//   - LZ4 (format.CompressionLZ4): pierrec/lz4 block format, fastest decode.
//
// Decompression is told the original payload length, which the archive header
// records, so block formats decode into an exactly sized buffer.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(payload)
//	raw, err := codec.Decompress(packed, len(payload))
//
// All codecs are stateless values safe for concurrent use.
package compress
