package compress

// NoOpCompressor passes payloads through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data as-is; the result aliases the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as-is after checking its length.
func (c NoOpCompressor) Decompress(data []byte, size int) ([]byte, error) {
	if err := checkTarget("noop", size); err != nil {
		return nil, err
	}

	return checkSize("noop", data, size)
}
