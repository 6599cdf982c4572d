package compress

import (
	"fmt"

	"github.com/arloliu/casestack/format"
)

// Compressor compresses archive payloads.
type Compressor interface {
	// Compress returns the compressed form of data. The result may alias data
	// for codecs that do not transform it.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads produced by the matching Compressor.
type Decompressor interface {
	// Decompress returns the original bytes of data, whose decompressed length
	// is size.
	Decompress(data []byte, size int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns a new codec for compressionType. target names the
// payload in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in codec for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

func checkTarget(name string, size int) error {
	if size < 0 {
		return fmt.Errorf("%s: negative decompressed size %d", name, size)
	}

	return nil
}

func checkSize(name string, got []byte, size int) ([]byte, error) {
	if len(got) != size {
		return nil, fmt.Errorf("%s decompressed %d bytes, want %d", name, len(got), size)
	}

	return got, nil
}
