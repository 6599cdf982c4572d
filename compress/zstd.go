package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// zstdGrowth is the initial output capacity per input byte for frames that do
// not declare their content size.
const zstdGrowth = 4

// ZstdCompressor compresses payloads with Zstandard.
//
// The implementation is selected at build time: klauspost/compress/zstd by
// default, valyala/gozstd with the gozstd build tag and cgo enabled.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdCapacity returns the output capacity to reserve for the frame in data.
// A frame that declares its content size must declare exactly size.
func zstdCapacity(data []byte, size int) (int, error) {
	if err := checkTarget("zstd", size); err != nil {
		return 0, err
	}

	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return 0, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if h.HasFCS {
		if h.FrameContentSize != uint64(size) {
			return 0, fmt.Errorf("zstd frame holds %d bytes, want %d", h.FrameContentSize, size)
		}

		return size, nil
	}

	return min(size, len(data)*zstdGrowth), nil
}
